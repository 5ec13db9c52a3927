// Package enum provides the cursor used by every listing operation: locale
// IDs, zone IDs, skeletons, keywords and so on.
//
// An Enumeration walks a Source. When the source reports a different version
// than the one seen at open or the last Reset, every cursor operation fails
// with EnumOutOfSync until Reset is called.
package enum

import (
	"errors"
	"io"
	"iter"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
)

// Kind is the handle kind of enumerations.
const Kind = "enumeration"

// ErrOutOfSync is returned when the source changed since the cursor synced.
var ErrOutOfSync = errors.New("enum: source changed since last reset")

// Enumeration is a stateful cursor over a Source. Not safe for concurrent use.
type Enumeration struct {
	src     Source
	units   []uint16
	lc      handle.Lifecycle
	pos     int
	version uint64
}

// New opens an enumeration over src.
func New(src Source) *Enumeration {
	e := &Enumeration{src: src, version: src.Version()}
	e.lc.Open(Kind)
	return e
}

// FromStrings opens an enumeration over a copy of items.
func FromStrings(items ...string) *Enumeration {
	return New(append(Strings(nil), items...))
}

// FromSeq opens an enumeration that pulls from seq on demand.
func FromSeq(seq iter.Seq[string]) *Enumeration {
	return New(NewLazy(func(yield func(string, error) bool) {
		for s := range seq {
			if !yield(s, nil) {
				return
			}
		}
	}))
}

func (e *Enumeration) live(op string) error {
	if e == nil {
		return handle.Nil(op)
	}
	if err := e.lc.Check(op); err != nil {
		return err
	}
	if e.src.Version() != e.version {
		return status.New(op, status.EnumOutOfSync, ErrOutOfSync)
	}
	return nil
}

// Count returns the number of items. It may have to walk or materialize the
// whole source, so callers that only iterate should not call it.
func (e *Enumeration) Count() (int, error) {
	if err := e.live("enum.Count"); err != nil {
		return 0, err
	}
	if c, ok := e.src.(Counter); ok {
		n, err := c.Count()
		if err != nil {
			return 0, status.New("enum.Count", status.Code(err), err)
		}
		return n, nil
	}
	n := 0
	for {
		_, ok, err := e.src.At(n)
		if err != nil {
			return 0, status.New("enum.Count", status.Code(err), err)
		}
		if !ok {
			return n, nil
		}
		n++
	}
}

// Next returns the next item. ok is false once the enumeration is exhausted.
func (e *Enumeration) Next() (item string, ok bool, err error) {
	if err := e.live("enum.Next"); err != nil {
		return "", false, err
	}
	item, ok, err = e.src.At(e.pos)
	if err != nil {
		return "", false, status.New("enum.Next", status.Code(err), err)
	}
	if ok {
		e.pos++
	}
	return item, ok, nil
}

// NextUnits is Next returning UTF-16. The slice is reused by the next call
// and invalid after Close.
func (e *Enumeration) NextUnits() ([]uint16, bool, error) {
	item, ok, err := e.Next()
	if err != nil || !ok {
		return nil, ok, err
	}
	e.units = append(e.units[:0], buffer.UTF16(item)...)
	return e.units, true, nil
}

// Reset rewinds to the first item and resyncs with the source.
func (e *Enumeration) Reset() error {
	if e == nil {
		return handle.Nil("enum.Reset")
	}
	if err := e.lc.Check("enum.Reset"); err != nil {
		return err
	}
	e.pos = 0
	e.version = e.src.Version()
	return nil
}

// Close releases the enumeration and the source when it is closable.
func (e *Enumeration) Close() error {
	if e == nil {
		return handle.Nil("enum.Close")
	}
	if err := e.lc.Release("enum.Close"); err != nil {
		return err
	}
	e.units = nil
	if c, ok := e.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// All returns a restartable sequence over every item from the first one. It
// does not move the cursor. An out of sync source ends the sequence with an
// error.
func (e *Enumeration) All() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for i := 0; ; i++ {
			if err := e.live("enum.All"); err != nil {
				yield("", err)
				return
			}
			item, ok, err := e.src.At(i)
			if err != nil {
				yield("", status.New("enum.All", status.Code(err), err))
				return
			}
			if !ok || !yield(item, nil) {
				return
			}
		}
	}
}

// Collect returns every item of e.
func Collect(e *Enumeration) ([]string, error) {
	var out []string
	for item, err := range e.All() {
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
