package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PoolSettings tune the pgx connection pool.
type PoolSettings struct {
	MaxConns          int
	IdleTimeoutSec    int
	ConnectTimeoutSec int
}

// NewPostgresPool creates a pgx connection pool for PostgreSQL.
func NewPostgresPool(ctx context.Context, dsn string, settings PoolSettings, logger *zap.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	if settings.MaxConns > 0 {
		config.MaxConns = int32(settings.MaxConns)
	}
	if settings.IdleTimeoutSec > 0 {
		config.MaxConnIdleTime = time.Duration(settings.IdleTimeoutSec) * time.Second
	}
	if settings.ConnectTimeoutSec > 0 {
		config.ConnConfig.ConnectTimeout = time.Duration(settings.ConnectTimeoutSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("PostgreSQL connection pool established", zap.Int("max_conns", settings.MaxConns))
	return pool, nil
}
