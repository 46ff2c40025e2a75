// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"time"
)

// Cache defines the interface for cache operations.
// Implementations can be go-cache, Redis, SQLite, or any other caching solution.
//
// Example usage:
//
//	// Store serialized candidates for a normalized query
//	err := cache.Set(ctx, "search:v1:3:san pellegrino", data, 10*time.Minute)
//
//	// Retrieve them
//	data, err := cache.Get(ctx, "search:v1:3:san pellegrino")
//	if err != nil {
//		// cache miss
//	}
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns the cached data as []byte or an error if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
