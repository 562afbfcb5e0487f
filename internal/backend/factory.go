// Package backend opens the record store selected by DB_DRIVER.
package backend

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/salesboard/internal/config"
	"github.com/MrJamesThe3rd/salesboard/internal/database"
	"github.com/MrJamesThe3rd/salesboard/internal/transaction"
	"github.com/MrJamesThe3rd/salesboard/internal/transaction/memory"
	"github.com/MrJamesThe3rd/salesboard/internal/transaction/store"
)

// Store is a record store that can report its health.
type Store interface {
	transaction.Repository
	Ping(ctx context.Context) error
}

type Result struct {
	Store   Store
	Driver  string
	Cleanup func() error
}

// Open connects to the configured store and applies migrations where the store has a schema.
func Open(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.DB.Driver {
	case database.DriverPostgres:
		return openPostgres(cfg, logger)
	case database.DriverSQLite:
		return openSQLite(cfg.DB.SQLitePath, logger)
	case config.DriverMemory:
		logger.Info("initialized memory backend")

		return &Result{
			Store:   memory.New(),
			Driver:  config.DriverMemory,
			Cleanup: func() error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DB.Driver)
	}
}

func openPostgres(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	connStr := cfg.ConnectionString()

	db, err := database.New(connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := database.MigratePostgres(connStr); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating postgres: %w", err)
	}

	logger.Info("initialized postgres backend", "host", cfg.DB.Host, "database", cfg.DB.Name)

	return sqlResult(db, store.Postgres, database.DriverPostgres), nil
}

func openSQLite(path string, logger *slog.Logger) (*Result, error) {
	db, err := database.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	if err := database.MigrateSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating sqlite: %w", err)
	}

	logger.Info("initialized sqlite backend", "db_path", path)

	return sqlResult(db, store.SQLite, database.DriverSQLite), nil
}

func sqlResult(db *sql.DB, dialect store.Dialect, driver string) *Result {
	return &Result{
		Store:   store.New(db, dialect),
		Driver:  driver,
		Cleanup: db.Close,
	}
}
