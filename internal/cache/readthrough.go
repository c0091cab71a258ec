package cache

import (
	"context"
	"encoding/json"

	"github.com/narwhalmedia/storefront/pkg/interfaces"
	"github.com/narwhalmedia/storefront/pkg/logger"
)

// Loader computes the fresh value for a key.
type Loader[T any] func(ctx context.Context) (T, error)

// ReadThrough returns the value cached under key, or computes it with load and
// caches the JSON encoding. Nothing is written when load fails. An entry that
// does not decode into T is treated as a miss.
func ReadThrough[T any](ctx context.Context, store interfaces.Cache, key string, load Loader[T]) (T, error) {
	if store.Has(ctx, key) {
		if raw, ok := store.Get(ctx, key); ok {
			var cached T
			err := json.Unmarshal([]byte(raw), &cached)
			if err == nil {
				return cached, nil
			}
			logger.FromContext(ctx).Warn("Discarding undecodable cache entry",
				interfaces.String("key", key),
				interfaces.Error(err))
		}
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to encode cache entry",
			interfaces.String("key", key),
			interfaces.Error(err))
		return value, nil
	}
	store.Set(ctx, key, string(encoded))

	return value, nil
}
