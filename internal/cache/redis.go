package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/narwhalmedia/storefront/internal/config"
	"github.com/narwhalmedia/storefront/pkg/interfaces"
)

// RedisStore keeps entries in Redis so that several API instances share one
// cache. Entries are written without expiration. Redis failures are logged and
// behave like misses.
type RedisStore struct {
	rdb    *redis.Client
	logger interfaces.Logger
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig, logger interfaces.Logger) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return NewRedisStoreFromClient(rdb, logger), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(rdb *redis.Client, logger interfaces.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, logger: logger}
}

// Has reports whether key exists.
func (s *RedisStore) Has(ctx context.Context, key string) bool {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		s.logger.Warn("redis EXISTS failed", interfaces.String("key", key), interfaces.Error(err))
		return false
	}
	return n == 1
}

// Get returns the value stored under key.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		s.logger.Warn("redis GET failed", interfaces.String("key", key), interfaces.Error(err))
		return "", false
	}
	return v, true
}

// Set stores value under key with no expiration.
func (s *RedisStore) Set(ctx context.Context, key, value string) {
	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		s.logger.Warn("redis SET failed", interfaces.String("key", key), interfaces.Error(err))
	}
}

// Delete removes keys in a single DEL.
func (s *RedisStore) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("redis DEL failed", interfaces.Strings("keys", keys), interfaces.Error(err))
	}
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
