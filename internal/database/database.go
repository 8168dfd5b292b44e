// Package database owns the PostgreSQL connection pool and its schema.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/horsh321/teem-server/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ErrClosed is returned by Pool after Close.
var ErrClosed = errors.New("database handle is closed")

// Handle owns a connection pool for the lifetime of the process.
// Open is idempotent and Ensure reconnects when connections have gone bad.
type Handle struct {
	cfg    config.DatabaseConfig
	logger zerolog.Logger

	mu     sync.Mutex
	pool   *pgxpool.Pool
	closed bool
}

// NewHandle creates a handle. No connection is made until Open.
func NewHandle(cfg config.DatabaseConfig, logger zerolog.Logger) *Handle {
	return &Handle{
		cfg:    cfg,
		logger: logger.With().Str("component", "database").Logger(),
	}
}

// Open connects the pool if it is not connected yet.
func (h *Handle) Open(ctx context.Context) (*pgxpool.Pool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrClosed
	}
	if h.pool != nil {
		return h.pool, nil
	}

	pool, err := NewPool(ctx, h.cfg, h.logger)
	if err != nil {
		return nil, err
	}
	h.pool = pool
	return pool, nil
}

// Pool returns the connected pool.
func (h *Handle) Pool() (*pgxpool.Pool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrClosed
	}
	if h.pool == nil {
		return nil, errors.New("database handle is not open")
	}
	return h.pool, nil
}

// Ensure pings the pool, opening it first if needed. When the ping fails
// every pooled connection is dropped so the next acquire dials afresh, and
// the ping is retried once. The pool itself is never replaced, so callers
// holding it stay valid across outages.
func (h *Handle) Ensure(ctx context.Context) (*pgxpool.Pool, error) {
	h.mu.Lock()
	pool, closed := h.pool, h.closed
	h.mu.Unlock()

	if closed {
		return nil, ErrClosed
	}
	if pool == nil {
		return h.Open(ctx)
	}

	err := pool.Ping(ctx)
	if err == nil {
		return pool, nil
	}
	h.logger.Warn().Err(err).Msg("database ping failed, resetting connections")

	pool.Reset()
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}

	h.logger.Info().Msg("database connection restored")
	return pool, nil
}

// Close releases the pool. Further calls to Open fail with ErrClosed.
func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	if h.pool != nil {
		h.pool.Close()
		h.pool = nil
		h.logger.Info().Msg("database connection pool closed")
	}
}

// NewPool creates a new PostgreSQL connection pool and verifies it with a ping.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	logger.Info().
		Str("host", poolConfig.ConnConfig.Host).
		Uint16("port", poolConfig.ConnConfig.Port).
		Str("database", poolConfig.ConnConfig.Database).
		Int("max_connections", cfg.MaxConnections).
		Int("min_connections", cfg.MinConnections).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("database connection pool created successfully")

	return pool, nil
}
