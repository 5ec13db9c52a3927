// Package format defines the interface shared by the number, date and
// measure formatters and the operations that dispatch on it.
package format

import (
	"errors"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/formattable"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/position"
	"github.com/dmitrymomot/intl/pkg/status"
)

var ErrNoParser = errors.New("format: formatter cannot parse")

// Formatter formats formattable values for one locale.
type Formatter interface {
	// Kind is the handle kind of the concrete formatter.
	Kind() string
	// Locale is the ID the formatter was opened for.
	Locale() string
	// Format formats v. When pos is non-nil it receives the span of its
	// field.
	Format(v *formattable.Formattable, pos *position.FieldPosition) (string, error)
	// CloneFormat returns an independent formatter of the same kind.
	CloneFormat() (Formatter, error)
	Close() error
}

// Parser is implemented by formatters that can also parse.
type Parser interface {
	Formatter
	// ParseObject parses text from pos and advances pos past the consumed
	// text. On failure the error index of pos is set.
	ParseObject(text string, pos *position.ParsePosition) (*formattable.Formattable, error)
}

// Clone copies any formatter. The copy has the dynamic type of f.
func Clone(f Formatter) (Formatter, error) {
	if f == nil {
		return nil, handle.Nil("format.Clone")
	}
	return f.CloneFormat()
}

// Format formats v with f.
func Format(f Formatter, v *formattable.Formattable, pos *position.FieldPosition) (string, error) {
	if f == nil {
		return "", handle.Nil("format.Format")
	}
	return f.Format(v, pos)
}

// FormatInto formats v into dst as NUL-terminated UTF-16 and returns the
// full length.
func FormatInto(f Formatter, v *formattable.Formattable, pos *position.FieldPosition, dst []uint16, capacity int) (int, error) {
	if err := buffer.Check(dst, capacity); err != nil {
		return 0, err
	}
	s, err := Format(f, v, pos)
	if err != nil {
		return 0, err
	}
	return buffer.FillUTF16(dst, capacity, s, buffer.NulTerminated)
}

// Parse parses text with f. Formatters without a parser fail with
// NotSupported.
func Parse(f Formatter, text string, pos *position.ParsePosition) (*formattable.Formattable, error) {
	if f == nil {
		return nil, handle.Nil("format.Parse")
	}
	p, ok := f.(Parser)
	if !ok {
		return nil, status.New("format.Parse", status.NotSupported, ErrNoParser)
	}
	return p.ParseObject(text, pos)
}
