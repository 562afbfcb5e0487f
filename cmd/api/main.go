package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/salesboard/internal/amqp"
	"github.com/MrJamesThe3rd/salesboard/internal/backend"
	"github.com/MrJamesThe3rd/salesboard/internal/config"
	salesHttp "github.com/MrJamesThe3rd/salesboard/internal/http"
	seedHandler "github.com/MrJamesThe3rd/salesboard/internal/http/seed"
	statsHandler "github.com/MrJamesThe3rd/salesboard/internal/http/stats"
	txHandler "github.com/MrJamesThe3rd/salesboard/internal/http/transaction"
	"github.com/MrJamesThe3rd/salesboard/internal/logging"
	"github.com/MrJamesThe3rd/salesboard/internal/seed"
	"github.com/MrJamesThe3rd/salesboard/internal/transaction"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if _, err := logging.New(cfg.App.LogLevel, cfg.App.LogFormat); err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}

	store, err := backend.Open(cfg, logging.For("backend"))
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}
	defer store.Cleanup()

	var seedOpts []seed.Option

	if cfg.AMQP.URL != "" {
		client, err := amqp.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey)
		if err != nil {
			slog.Warn("failed to initialize AMQP client, continuing without seed events", "error", err)
		} else {
			defer client.Close()

			seedOpts = append(seedOpts, seed.WithNotifier(client))
		}
	}

	var (
		transactionService = transaction.NewService(store.Store)
		seedService        = seed.NewService(store.Store, cfg.Seed.SourceURL, cfg.Seed.Timeout, seedOpts...)
	)

	router := salesHttp.New(
		cfg.CORS.AllowedOrigins,
		store.Store,
		seedHandler.NewHandler(seedService),
		txHandler.NewHandler(transactionService),
		statsHandler.NewHandler(transactionService),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "driver", store.Driver)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
