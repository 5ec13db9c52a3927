package handle

import (
	"fmt"
	"sync"

	"github.com/dmitrymomot/intl/pkg/status"
)

// ID is an opaque handle value of the flat surface. Zero is unbound.
type ID uint64

type slot struct {
	kind string
	v    any
}

// Table maps IDs to handle values. IDs are never reused. Safe for concurrent use.
type Table struct {
	items map[ID]slot
	next  ID
	mu    sync.RWMutex
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{items: make(map[ID]slot)}
}

// Put stores v and returns its new ID.
func (t *Table) Put(v any) ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.items[t.next] = slot{kind: fmt.Sprintf("%T", v), v: v}
	return t.next
}

func (t *Table) lookup(id ID, op string) (slot, error) {
	if id == 0 {
		return slot{}, Nil(op)
	}
	s, ok := t.items[id]
	if !ok {
		return slot{}, status.New(op, status.InvalidParameter, fmt.Errorf("%w: %d", ErrUnknownID, id))
	}
	return s, nil
}

// Get returns the value behind id as a T.
func Get[T any](t *Table, id ID, op string) (T, error) {
	var zero T
	t.mu.RLock()
	s, err := t.lookup(id, op)
	t.mu.RUnlock()
	if err != nil {
		return zero, err
	}
	v, ok := s.v.(T)
	if !ok {
		return zero, status.New(op, status.InvalidParameter,
			fmt.Errorf("%w: %d is %s, want %T", ErrKindMismatch, id, s.kind, zero))
	}
	return v, nil
}

// Take removes id from the table and returns its value as a T. The table is
// unchanged when the kind does not match.
func Take[T any](t *Table, id ID, op string) (T, error) {
	var zero T
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.lookup(id, op)
	if err != nil {
		return zero, err
	}
	v, ok := s.v.(T)
	if !ok {
		return zero, status.New(op, status.InvalidParameter,
			fmt.Errorf("%w: %d is %s, want %T", ErrKindMismatch, id, s.kind, zero))
	}
	delete(t.items, id)
	return v, nil
}

// Len returns the number of stored handles.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

// Kinds returns the number of stored handles per dynamic type.
func (t *Table) Kinds() map[string]int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]int)
	for _, s := range t.items {
		out[s.kind]++
	}
	return out
}
