// Package cache stores rendered simulation results keyed by a hash of the
// request that produced them.
//
// Rendering a session is deterministic: the same fixture, steps, format and
// options always produce the same bytes. The HTTP API and the CLI use a Cache
// to skip replaying identical requests.
//
// Backends:
//   - [NullCache]: never stores anything (caching disabled)
//   - [MemoryCache]: process-local, for a single server instance
//   - [FileCache]: entries as JSON files, for the CLI
//   - [RedisCache]: shared between server instances
//
// Keys come from [Key], which hashes its parts:
//
//	key := cache.Key("simulate", req.Fixture, req.Steps, format)
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
