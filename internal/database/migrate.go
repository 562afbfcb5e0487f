package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// MigratePostgres applies the postgres migrations over a dedicated connection built from connStr.
func MigratePostgres(connStr string) error {
	src, err := iofs.New(migrationsFS, "migrations/"+DriverPostgres)
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	// The pgx/v5 migrate driver registers the pgx5 scheme.
	dbURL := "pgx5://" + strings.TrimPrefix(connStr, "postgres://")

	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// MigrateSQLite applies the sqlite migrations on db. db stays open: the store keeps using it.
func MigrateSQLite(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations/"+DriverSQLite)
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, DriverSQLite, driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	// m.Close is not called: it would close db along with the driver.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	return src.Close()
}
