package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// DB bundles the pgx pool (health checks) with a database/sql handle
// (repositories) backed by the same pool.
type DB struct {
	Pool *pgxpool.Pool
	SQL  *sql.DB
}

type Options struct {
	DSN      string
	MaxConns int
	MinConns int
}

func Open(ctx context.Context, opt Options) (*DB, error) {
	if opt.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg, err := pgxpool.ParseConfig(opt.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	if opt.MaxConns > 0 {
		cfg.MaxConns = int32(opt.MaxConns)
	}
	if opt.MinConns > 0 {
		cfg.MinConns = int32(opt.MinConns)
	}
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	// Fail fast
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return &DB{
		Pool: pool,
		SQL:  stdlib.OpenDBFromPool(pool),
	}, nil
}

func (d *DB) Close() {
	if d == nil {
		return
	}
	if d.SQL != nil {
		_ = d.SQL.Close()
	}
	if d.Pool != nil {
		d.Pool.Close()
	}
}
