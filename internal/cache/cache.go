package cache

import (
	"context"
	"time"
)

// Cache is a string key/value store with per-entry expiry. Handlers use it
// for short-lived lookups such as client existence checks; implementations
// must treat expired entries as absent.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}
