package ports

import (
	"context"
	"time"
)

// CacheRepository is the minimal cache surface used by the release/CI
// aggregation. Backed by Redis in production and an in-process map otherwise.
type CacheRepository interface {
	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value by key. Returns nil when the key is absent or
	// expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key.
	Delete(ctx context.Context, key string) error
}
