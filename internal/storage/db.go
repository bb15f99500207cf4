package storage

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Supported backends.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Open applies pending migrations for driver and returns the matching KV
// backend. For sqlite, dsn is a file path; for postgres, a connection URL.
func Open(ctx context.Context, driver, dsn string) (KV, error) {
	switch driver {
	case DriverSQLite, "":
		// Create the file (and its directory) before migrate connects to it.
		kv, err := OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(DriverSQLite, "sqlite://"+dsn); err != nil {
			kv.Close()
			return nil, err
		}
		return kv, nil
	case DriverPostgres:
		if err := RunMigrations(DriverPostgres, dsn); err != nil {
			return nil, err
		}
		return NewPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// RunMigrations applies all pending embedded migrations for driver against databaseURL.
func RunMigrations(driver, databaseURL string) error {
	src, err := iofs.New(migrationsFS, "migrations/"+strings.ToLower(driver))
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
