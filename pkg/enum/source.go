package enum

import (
	"iter"
	"slices"
	"sync"
)

// Source is an indexed, versioned sequence of strings. At reports false past
// the end. Version changes whenever the sequence changes.
type Source interface {
	At(i int) (string, bool, error)
	Version() uint64
}

// Counter is implemented by sources that know their length without walking.
type Counter interface {
	Count() (int, error)
}

// Strings is an immutable source.
type Strings []string

func (s Strings) At(i int) (string, bool, error) {
	if i < 0 || i >= len(s) {
		return "", false, nil
	}
	return s[i], true, nil
}

func (Strings) Version() uint64 { return 0 }

func (s Strings) Count() (int, error) { return len(s), nil }

// List is a mutable source. Every mutation bumps the version, which puts
// enumerations opened on it out of sync. Safe for concurrent use.
type List struct {
	items   []string
	version uint64
	mu      sync.RWMutex
}

// NewList creates a list holding a copy of items.
func NewList(items ...string) *List {
	return &List{items: slices.Clone(items)}
}

func (l *List) At(i int) (string, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.items) {
		return "", false, nil
	}
	return l.items[i], true, nil
}

func (l *List) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

func (l *List) Count() (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items), nil
}

// Append adds items.
func (l *List) Append(items ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, items...)
	l.version++
}

// Replace swaps the whole content.
func (l *List) Replace(items []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = slices.Clone(items)
	l.version++
}

// Snapshot returns a copy of the current items.
func (l *List) Snapshot() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.items)
}

// Lazy pulls items from an iterator on demand and remembers them, so the
// sequence is produced once however often it is rewound. Count drains it.
type Lazy struct {
	items []string
	next  func() (string, error, bool)
	stop  func()
	err   error
	done  bool
}

// NewLazy wraps seq. The iterator is not started until the first access.
func NewLazy(seq iter.Seq2[string, error]) *Lazy {
	l := &Lazy{}
	l.next, l.stop = iter.Pull2(seq)
	return l
}

func (l *Lazy) fill(n int) error {
	for !l.done && len(l.items) < n {
		item, err, ok := l.next()
		switch {
		case !ok:
			l.finish()
		case err != nil:
			l.err = err
			l.finish()
		default:
			l.items = append(l.items, item)
		}
	}
	return l.err
}

func (l *Lazy) finish() {
	l.done = true
	l.stop()
}

func (l *Lazy) At(i int) (string, bool, error) {
	if i < 0 {
		return "", false, nil
	}
	if err := l.fill(i + 1); err != nil && i >= len(l.items) {
		return "", false, err
	}
	if i >= len(l.items) {
		return "", false, nil
	}
	return l.items[i], true, nil
}

func (*Lazy) Version() uint64 { return 0 }

// Count materializes the remaining items.
func (l *Lazy) Count() (int, error) {
	for !l.done {
		if err := l.fill(len(l.items) + 64); err != nil {
			return 0, err
		}
	}
	return len(l.items), l.err
}

// Close stops the underlying iterator.
func (l *Lazy) Close() error {
	if !l.done {
		l.finish()
	}
	return nil
}

// Tracking lists items derived from a resource that can be replaced.
// Current reports the resource version. Items are loaded on first use and
// reloaded after the version moves, which an enumeration only allows after
// Reset.
type Tracking struct {
	load    func() ([]string, error)
	current func() uint64
	items   Strings
	loaded  uint64
	mu      sync.Mutex
	valid   bool
}

// NewTracking returns a Tracking source over load and current.
func NewTracking(load func() ([]string, error), current func() uint64) *Tracking {
	return &Tracking{load: load, current: current}
}

func (t *Tracking) sync() (Strings, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v := t.current(); !t.valid || t.loaded != v {
		items, err := t.load()
		if err != nil {
			return nil, err
		}
		t.items, t.loaded, t.valid = items, v, true
	}
	return t.items, nil
}

func (t *Tracking) At(i int) (string, bool, error) {
	items, err := t.sync()
	if err != nil {
		return "", false, err
	}
	return items.At(i)
}

func (t *Tracking) Version() uint64 { return t.current() }

func (t *Tracking) Count() (int, error) {
	items, err := t.sync()
	return len(items), err
}
