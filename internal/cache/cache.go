package cache

import (
	"context"
	"time"
)

// Cache is a small read-through response cache. The redis client backs it
// in production; the in-memory implementation stands in when no REDIS_URL
// is configured and in tests.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
