package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type item[V any] struct {
	expiresAt time.Time
	value     V
	key       string
}

func (it *item[V]) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && now.After(it.expiresAt)
}

// Memory is an in-memory Cache. Entries live in a map for lookup and in a
// list ordered from most to least recently used.
type Memory[V any] struct {
	entries map[string]*list.Element
	lru     *list.List
	group   singleflight.Group
	done    chan struct{}
	opts    options
	mu      sync.Mutex
	closed  bool
}

// NewMemory creates a cache and starts its sweeper when a cleanup interval is set.
func NewMemory[V any](opts ...Option) *Memory[V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	m := &Memory[V]{
		entries: make(map[string]*list.Element),
		lru:     list.New(),
		done:    make(chan struct{}),
		opts:    o,
	}
	if o.cleanupInterval > 0 {
		go m.sweep()
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	el, ok := m.entries[key]
	if !ok {
		return zero, ErrNotFound
	}
	it := el.Value.(*item[V])
	if it.expired(time.Now()) {
		m.remove(el)
		return zero, ErrNotFound
	}
	m.lru.MoveToFront(el)
	return it.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if el, ok := m.entries[key]; ok {
		it := el.Value.(*item[V])
		it.value, it.expiresAt = value, expiresAt
		m.lru.MoveToFront(el)
		return nil
	}
	if m.opts.maxEntries > 0 && len(m.entries) >= m.opts.maxEntries {
		if last := m.lru.Back(); last != nil {
			m.remove(last)
		}
	}
	m.entries[key] = m.lru.PushFront(&item[V]{key: key, value: value, expiresAt: expiresAt})
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if el, ok := m.entries[key]; ok {
		m.remove(el)
	}
	return nil
}

func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.entries = make(map[string]*list.Element)
	m.lru.Init()
	return nil
}

// Len returns the number of stored entries, expired ones included until swept.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close stops the sweeper. Close is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

// GetOrSet returns the cached value for key or loads it with fn. Concurrent
// misses for one key share a single fn call. Errors are not cached.
func (m *Memory[V]) GetOrSet(ctx context.Context, key string, fn LoadFunc[V]) (V, error) {
	if v, err := m.Get(ctx, key); err == nil {
		return v, nil
	}

	type loaded struct {
		value V
		ttl   time.Duration
	}
	res, err, _ := m.group.Do(key, func() (any, error) {
		v, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return loaded{value: v, ttl: ttl}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	l := res.(loaded)
	_ = m.Set(ctx, key, l.value, l.ttl)
	return l.value, nil
}

func (m *Memory[V]) sweep() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for el := m.lru.Back(); el != nil; {
				prev := el.Prev()
				if el.Value.(*item[V]).expired(now) {
					m.remove(el)
				}
				el = prev
			}
			m.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (m *Memory[V]) remove(el *list.Element) {
	m.lru.Remove(el)
	delete(m.entries, el.Value.(*item[V]).key)
}

var _ Cache[any] = (*Memory[any])(nil)
