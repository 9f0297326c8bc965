// Package cache stores rendered artifacts and word lists keyed by a hash of
// their inputs.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for a server shared between processes, and [NullCache] when caching is
// disabled. Keys come from a [Keyer] so that callers never build them by
// hand.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLWords    = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiration.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero means no expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
