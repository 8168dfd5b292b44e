// Package cache provides a small JSON key/value cache used to front hot lookups.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/horsh321/teem-server/internal/config"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// Store is a JSON cache. GetJSON reports false on a miss.
type Store interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// New returns a Redis-backed store when the cache is enabled and a no-op store otherwise.
func New(ctx context.Context, cfg config.CacheConfig, logger zerolog.Logger) (Store, error) {
	if !cfg.Enabled {
		logger.Info().Msg("cache disabled")
		return NewNoopStore(), nil
	}

	store := NewRedisStore(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}, logger)

	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("redis cache connected")
	return store, nil
}

// RedisStore stores JSON values in Redis.
type RedisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore creates a store from Redis client options.
func NewRedisStore(opts *redis.Options, logger zerolog.Logger) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(opts),
		logger: logger.With().Str("component", "redis-cache").Logger(),
	}
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) GetJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		_ = s.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (s *RedisStore) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

type noopStore struct{}

// NewNoopStore returns a store that never holds anything.
func NewNoopStore() Store {
	return noopStore{}
}

func (noopStore) GetJSON(context.Context, string, interface{}) (bool, error) { return false, nil }

func (noopStore) SetJSON(context.Context, string, interface{}, time.Duration) error { return nil }

func (noopStore) Delete(context.Context, ...string) error { return nil }

func (noopStore) Close() error { return nil }
