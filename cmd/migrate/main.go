package main

// Run database migrations:
//   go run ./cmd/migrate
//   go run ./cmd/migrate -down
//   go run ./cmd/migrate -status

import (
	"context"
	"flag"
	"log"
	"os"

	"skincare-backend/internal/shared/config"
	"skincare-backend/internal/shared/storage/db"
	"skincare-backend/internal/shared/telemetry"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration")
	status := flag.Bool("status", false, "print the current migration version")
	flag.Parse()

	cfg := config.Load()
	telemetry.Init(cfg.LogLevel)
	if cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is required")
		os.Exit(1)
	}
	ctx := context.Background()

	opts := db.MigrateOptions().WithConfig(cfg)
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	switch {
	case *status:
		version, err := db.MigrationVersion(ctx, sqlDB)
		if err != nil {
			log.Printf("failed to read migration version: %v", err)
			os.Exit(1)
		}
		telemetry.Info("migrate.status", map[string]any{"version": version})
	case *down:
		if err := db.RollbackMigration(ctx, sqlDB); err != nil {
			log.Printf("failed to roll back migration: %v", err)
			os.Exit(1)
		}
	default:
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			log.Printf("failed to run migrations: %v", err)
			os.Exit(1)
		}
	}
}
