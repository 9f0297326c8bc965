package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. It backs --no-cache.
type NullCache struct{}

// NewNullCache returns a NullCache.
func NewNullCache() Cache { return NullCache{} }

// Get implements Cache; it always misses.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set implements Cache.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete implements Cache.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close implements Cache.
func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
