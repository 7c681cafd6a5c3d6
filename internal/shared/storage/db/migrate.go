package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

func prepareGoose() error {
	goose.SetBaseFS(migrationFiles)
	return goose.SetDialect("postgres")
}

// RunMigrations applies embedded SQL migrations via goose. If database is nil, it's a no-op.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	if err := prepareGoose(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, database, migrationsDir); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// RollbackMigration reverts the most recently applied migration.
func RollbackMigration(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	if err := prepareGoose(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, database, migrationsDir); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// MigrationVersion reports the current schema version.
func MigrationVersion(ctx context.Context, database *sql.DB) (int64, error) {
	if err := prepareGoose(); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, database)
}
