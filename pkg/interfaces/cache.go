package interfaces

import "context"

// Cache is a string key-value store for precomputed, serialized results.
// Entries never expire on their own; they live until deleted or until the
// process restarts. Implementations must not surface backend failures:
// a failed read is a miss and a failed write is dropped.
type Cache interface {
	// Has reports whether key is present
	Has(ctx context.Context, key string) bool

	// Get returns the stored value and whether it was present
	Get(ctx context.Context, key string) (string, bool)

	// Set stores value under key, overwriting any previous value
	Set(ctx context.Context, key, value string)

	// Delete removes the given keys. Absent keys are ignored.
	Delete(ctx context.Context, keys ...string)
}
