package database

import (
	"context"
	"database/sql"
	"fmt"

	"shareit/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrator wraps goose over a plain database/sql connection. Production
// deployments apply versioned SQL migrations through it instead of relying
// on AutoMigrate.
type Migrator struct {
	db             *sql.DB
	migrationsPath string
}

// NewMigrator opens a migration connection for the configured database.
func NewMigrator(cfg *config.Config, migrationsPath string) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open migration connection: %w", err)
	}

	return &Migrator{db: db, migrationsPath: migrationsPath}, nil
}

// Up applies all pending migrations.
func (mg *Migrator) Up(ctx context.Context) error {
	if err := goose.UpContext(ctx, mg.db, mg.migrationsPath); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func (mg *Migrator) Down(ctx context.Context) error {
	if err := goose.DownContext(ctx, mg.db, mg.migrationsPath); err != nil {
		return fmt.Errorf("rollback migration: %w", err)
	}
	return nil
}

// Status prints the migration status table.
func (mg *Migrator) Status(ctx context.Context) error {
	if err := goose.StatusContext(ctx, mg.db, mg.migrationsPath); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return nil
}

// Version returns the current migration version.
func (mg *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, mg.db)
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return version, nil
}

// Close closes the migration connection.
func (mg *Migrator) Close() error {
	if mg.db != nil {
		return mg.db.Close()
	}
	return nil
}
