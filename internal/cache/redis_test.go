package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narwhalmedia/storefront/internal/config"
	"github.com/narwhalmedia/storefront/pkg/logger"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	// Skip if Redis is not available
	store, err := NewRedisStore(ctx, config.RedisConfig{
		Addr:       "localhost:6379",
		DB:         15,
		PoolSize:   2,
		MaxRetries: 1,
	}, logger.NewNoop())
	if err != nil {
		t.Skip("Redis not available:", err)
	}
	defer store.Close()

	keys := []string{KeyLatestProducts, KeyCategories, ProductKey("p-1")}
	store.Delete(ctx, keys...)
	defer store.Delete(ctx, keys...)

	assert.False(t, store.Has(ctx, KeyCategories))
	_, ok := store.Get(ctx, KeyCategories)
	assert.False(t, ok)

	for _, key := range keys {
		store.Set(ctx, key, `"v"`)
	}
	assert.True(t, store.Has(ctx, KeyCategories))
	v, ok := store.Get(ctx, ProductKey("p-1"))
	require.True(t, ok)
	assert.Equal(t, `"v"`, v)

	store.Delete(ctx, KeyCategories, ProductKey("p-1"), "never-set")
	assert.False(t, store.Has(ctx, KeyCategories))
	assert.False(t, store.Has(ctx, ProductKey("p-1")))
	assert.True(t, store.Has(ctx, KeyLatestProducts))

	require.NoError(t, store.Ping(ctx))
}

func TestRedisStore_UnreachableBehavesLikeMiss(t *testing.T) {
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	store := NewRedisStoreFromClient(rdb, logger.NewNoop())
	defer store.Close()

	assert.False(t, store.Has(ctx, KeyCategories))
	_, ok := store.Get(ctx, KeyCategories)
	assert.False(t, ok)
	assert.NotPanics(t, func() {
		store.Set(ctx, KeyCategories, "[]")
		store.Delete(ctx, KeyCategories)
	})
	assert.Error(t, store.Ping(ctx))
}
