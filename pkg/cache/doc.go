// Package cache is a small in-memory TTL cache with optional LRU bounds.
//
// The intl modules use it for data that is expensive to derive and cheap to
// keep: the zone ID listing of a zone database and the reverse index from
// character names to code points.
//
// Loads go through GetOrSet, which collapses concurrent misses for the same
// key into one call of the loader:
//
//	ids, err := c.GetOrSet(ctx, "zones", func(ctx context.Context) ([]string, time.Duration, error) {
//		ids, err := walk(db)
//		return ids, 0, err
//	})
//
// TTL semantics for Set and loaders:
//   - Positive duration: item expires after this duration
//   - Zero: the cache default TTL
//   - Negative: item never expires
package cache
