// Package cache provides pluggable storage backends for raw fetch responses.
//
// Registry and doc-site fetchers cache the raw bytes they retrieve so that
// repeated lookups don't hammer upstream services. The backends here are
// deliberately dumb byte stores; structured document caching (TTL + LRU +
// single-flight) is handled by the docs engine on top of these.
//
// Backends:
//   - [MemoryCache]: process-local map, for tests and short-lived runs
//   - [FileCache]: sha256-keyed files under the user cache dir, for the CLI
//   - [RedisCache]: shared cache for multi-instance server deployments
//   - [NullCache]: disables caching entirely
package cache

import (
	"context"
	"time"
)

// Cache defines the contract for all storage backends.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
