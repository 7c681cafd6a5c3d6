package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"skincare-backend/internal/shared/config"
	"skincare-backend/internal/shared/telemetry"
)

const (
	defaultPingTimeout = 5 * time.Second

	readOnlyParam = "default_transaction_read_only"
)

// Options describes one pool. ReadOnly sessions reject writes at the server.
type Options struct {
	Purpose         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	ReadOnly        bool
}

var openDB = sql.Open

// CatalogOptions is the pool the analysis pipeline reads skin types and
// products through. Each analysis issues at most three short queries, so idle
// connections are kept at the open cap.
func CatalogOptions() Options {
	return Options{
		Purpose:         "catalog",
		MaxOpenConns:    8,
		MaxIdleConns:    8,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 10 * time.Minute,
		PingTimeout:     defaultPingTimeout,
		ReadOnly:        true,
	}
}

// MigrateOptions is a single writable connection for schema changes and seeds.
func MigrateOptions() Options {
	return Options{
		Purpose:      "migrate",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		PingTimeout:  defaultPingTimeout,
	}
}

// WithConfig applies the non-zero DB_* overrides from cfg.
func (o Options) WithConfig(cfg config.Config) Options {
	if cfg.DBMaxOpenConns > 0 {
		o.MaxOpenConns = cfg.DBMaxOpenConns
	}
	if cfg.DBMaxIdleConns > 0 {
		o.MaxIdleConns = cfg.DBMaxIdleConns
	}
	if cfg.DBConnMaxLifetime > 0 {
		o.ConnMaxLifetime = cfg.DBConnMaxLifetime
	}
	if cfg.DBConnMaxIdleTime > 0 {
		o.ConnMaxIdleTime = cfg.DBConnMaxIdleTime
	}
	if cfg.DBPingTimeout > 0 {
		o.PingTimeout = cfg.DBPingTimeout
	}
	if o.MaxIdleConns > o.MaxOpenConns && o.MaxOpenConns > 0 {
		o.MaxIdleConns = o.MaxOpenConns
	}
	return o
}

// Connect opens a pgx-backed pool for databaseURL and pings it.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	dsn := strings.TrimSpace(databaseURL)
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if opts.ReadOnly {
		var err error
		if dsn, err = withRuntimeParam(dsn, readOnlyParam, "on"); err != nil {
			return nil, err
		}
	}

	db, err := openDB("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", opts.Purpose, err)
	}
	applyOptions(db, opts)

	pingTimeout := opts.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", opts.Purpose, err)
	}

	stats := db.Stats()
	telemetry.Info("db.connected", map[string]any{
		"purpose":   opts.Purpose,
		"read_only": opts.ReadOnly,
		"open":      stats.OpenConnections,
		"idle":      stats.Idle,
		"max_open":  stats.MaxOpenConnections,
		"max_idle":  opts.MaxIdleConns,
	})
	return db, nil
}

func applyOptions(db *sql.DB, opts Options) {
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	if opts.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}
}

// withRuntimeParam adds a session setting to either DSN form pgx accepts.
// pgx forwards settings it does not recognize to the server as runtime params.
func withRuntimeParam(dsn, key, value string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		q := u.Query()
		q.Set(key, value)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
	return dsn + " " + key + "=" + value, nil
}
