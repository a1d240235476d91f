package common

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// CacheInterface defines the contract for cache implementations. Values are
// stored JSON-encoded so both backends round-trip the same types.
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(ctx context.Context, key string, value interface{}, duration time.Duration) error

	// Get decodes the cached value into dest, or returns ErrCacheMiss
	Get(ctx context.Context, key string, dest interface{}) error

	// Delete removes values from cache by key
	Delete(ctx context.Context, keys ...string) error

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}

// GetOrSet retrieves a value from cache, or loads it using the loader function if not found.
// Cache failures fall through to the loader.
func GetOrSet[T any](ctx context.Context, c CacheInterface, key string, duration time.Duration, loader func() (T, error)) (T, error) {
	var val T
	if err := c.Get(ctx, key, &val); err == nil {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return val, err
	}

	_ = c.Set(ctx, key, val, duration)
	return val, nil
}
