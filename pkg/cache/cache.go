package cache

import (
	"context"
	"time"
)

// Cache is a generic key-value cache with TTL support.
type Cache[V any] interface {
	// Get returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	// Close stops background work.
	Close() error
}

// LoadFunc computes a value on a miss and returns how long to keep it.
type LoadFunc[V any] func(ctx context.Context) (V, time.Duration, error)

// Option configures a Memory cache.
type Option func(*options)

type options struct {
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

func defaultOptions() options {
	return options{
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
	}
}

// WithDefaultTTL sets the expiration used for a zero TTL. Default: 1 hour.
func WithDefaultTTL(d time.Duration) Option {
	return func(o *options) { o.defaultTTL = d }
}

// WithCleanupInterval sets how often expired entries are swept.
// Zero disables the background sweep. Default: 1 minute.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) { o.cleanupInterval = d }
}

// WithMaxEntries bounds the cache; the least recently used entry is evicted
// at the limit. Zero means unlimited.
func WithMaxEntries(n int) Option {
	return func(o *options) { o.maxEntries = n }
}
