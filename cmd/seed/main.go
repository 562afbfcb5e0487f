// Command seed loads the upstream dataset into the configured store once and exits.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/salesboard/internal/amqp"
	"github.com/MrJamesThe3rd/salesboard/internal/backend"
	"github.com/MrJamesThe3rd/salesboard/internal/config"
	"github.com/MrJamesThe3rd/salesboard/internal/logging"
	"github.com/MrJamesThe3rd/salesboard/internal/seed"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	if _, err := logging.New(cfg.App.LogLevel, cfg.App.LogFormat); err != nil {
		slog.Error("failed to configure logging", "error", err)
		return 1
	}

	if cfg.DB.Driver == config.DriverMemory {
		slog.Warn("memory driver selected: seeded records are discarded on exit")
	}

	store, err := backend.Open(cfg, logging.For("backend"))
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.DB.Driver, "error", err)
		return 1
	}
	defer store.Cleanup()

	var opts []seed.Option

	if cfg.AMQP.URL != "" {
		client, err := amqp.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey)
		if err != nil {
			slog.Warn("failed to initialize AMQP client, continuing without seed events", "error", err)
		} else {
			defer client.Close()

			opts = append(opts, seed.WithNotifier(client))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := seed.NewService(store.Store, cfg.Seed.SourceURL, cfg.Seed.Timeout, opts...).Run(ctx)
	if err != nil {
		slog.Error("seed failed", "error", err)
		return 1
	}

	slog.Info("seed complete",
		"run_id", res.RunID,
		"fetched", res.Fetched,
		"inserted", res.Inserted,
		"skipped", res.Skipped)

	return 0
}
