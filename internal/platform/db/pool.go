package db

import (
	"context"
	"fmt"
	"fxconvert/internal/config"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName   = "fxconvert"
	healthCheckPeriod = 30 * time.Second
)

// CreatePoolAndPing opens the preferences pool and fails fast when Postgres is unreachable.
func CreatePoolAndPing(ctx context.Context, cfg config.DbServer) (*pgxpool.Pool, error) {
	poolCfg, err := newPoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping %s:%s: %w", cfg.Host, cfg.Port, err)
	}
	return pool, nil
}

// newPoolConfig only ever sees a handful of small preference rows, so the pool stays small.
func newPoolConfig(cfg config.DbServer) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to parse db config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.HealthCheckPeriod = healthCheckPeriod
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	return poolCfg, nil
}
