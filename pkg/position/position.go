// Package position holds the positions formatters and parsers report: the
// span of a formatted field and the progress of a parse.
package position

import (
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
)

// Handle kinds.
const (
	FieldKind = "field_position"
	ParseKind = "parse_position"
)

// DontCare is the field of a FieldPosition that matches no field.
const DontCare = -1

// FieldPosition receives the span of one field of formatted text, in UTF-16
// units. Begin and end stay 0 when the field is absent.
type FieldPosition struct {
	lc    handle.Lifecycle
	field int
	begin int
	end   int
}

// NewField returns a position tracking field, a formatter specific field
// number or DontCare.
func NewField(field int) *FieldPosition {
	p := &FieldPosition{field: field}
	p.lc.Open(FieldKind)
	return p
}

func (p *FieldPosition) live(op string) error {
	if p == nil {
		return handle.Nil(op)
	}
	return p.lc.Check(op)
}

func (p *FieldPosition) Field() (int, error) {
	if err := p.live("position.Field"); err != nil {
		return 0, err
	}
	return p.field, nil
}

// SetField changes the tracked field and clears the span.
func (p *FieldPosition) SetField(field int) error {
	if err := p.live("position.SetField"); err != nil {
		return err
	}
	p.field, p.begin, p.end = field, 0, 0
	return nil
}

func (p *FieldPosition) BeginIndex() (int, error) {
	if err := p.live("position.BeginIndex"); err != nil {
		return 0, err
	}
	return p.begin, nil
}

func (p *FieldPosition) SetBeginIndex(i int) error {
	if err := p.live("position.SetBeginIndex"); err != nil {
		return err
	}
	if i < 0 {
		return status.Invalid("position.SetBeginIndex", "negative index %d", i)
	}
	p.begin = i
	return nil
}

func (p *FieldPosition) EndIndex() (int, error) {
	if err := p.live("position.EndIndex"); err != nil {
		return 0, err
	}
	return p.end, nil
}

func (p *FieldPosition) SetEndIndex(i int) error {
	if err := p.live("position.SetEndIndex"); err != nil {
		return err
	}
	if i < 0 {
		return status.Invalid("position.SetEndIndex", "negative index %d", i)
	}
	p.end = i
	return nil
}

// Record stores the span of field when it is the tracked one and no span has
// been recorded yet. Formatters call it for every field they emit.
func (p *FieldPosition) Record(field, begin, end int) {
	if p == nil || !p.lc.Live() || p.field != field || p.end != 0 {
		return
	}
	p.begin, p.end = begin, end
}

// Clone returns an independent copy.
func (p *FieldPosition) Clone() (*FieldPosition, error) {
	if err := p.live("position.Clone"); err != nil {
		return nil, err
	}
	out := &FieldPosition{field: p.field, begin: p.begin, end: p.end}
	out.lc.Open(FieldKind)
	return out, nil
}

func (p *FieldPosition) Close() error {
	if p == nil {
		return handle.Nil("position.Close")
	}
	return p.lc.Release("position.Close")
}

// ParsePosition is the cursor of a parse: where parsing starts and, after a
// failure, where it stopped. ErrorIndex is -1 while no error occurred.
type ParsePosition struct {
	lc       handle.Lifecycle
	index    int
	errIndex int
}

// NewParse returns a position at index.
func NewParse(index int) (*ParsePosition, error) {
	if index < 0 {
		return nil, status.Invalid("position.NewParse", "negative index %d", index)
	}
	p := &ParsePosition{index: index, errIndex: -1}
	p.lc.Open(ParseKind)
	return p, nil
}

func (p *ParsePosition) live(op string) error {
	if p == nil {
		return handle.Nil(op)
	}
	return p.lc.Check(op)
}

func (p *ParsePosition) Index() (int, error) {
	if err := p.live("position.Index"); err != nil {
		return 0, err
	}
	return p.index, nil
}

func (p *ParsePosition) SetIndex(i int) error {
	if err := p.live("position.SetIndex"); err != nil {
		return err
	}
	if i < 0 {
		return status.Invalid("position.SetIndex", "negative index %d", i)
	}
	p.index = i
	return nil
}

func (p *ParsePosition) ErrorIndex() (int, error) {
	if err := p.live("position.ErrorIndex"); err != nil {
		return 0, err
	}
	return p.errIndex, nil
}

// SetErrorIndex records where a parse failed; -1 clears it.
func (p *ParsePosition) SetErrorIndex(i int) error {
	if err := p.live("position.SetErrorIndex"); err != nil {
		return err
	}
	if i < -1 {
		return status.Invalid("position.SetErrorIndex", "index %d", i)
	}
	p.errIndex = i
	return nil
}

// Clone returns an independent copy.
func (p *ParsePosition) Clone() (*ParsePosition, error) {
	if err := p.live("position.Clone"); err != nil {
		return nil, err
	}
	out := &ParsePosition{index: p.index, errIndex: p.errIndex}
	out.lc.Open(ParseKind)
	return out, nil
}

func (p *ParsePosition) Close() error {
	if p == nil {
		return handle.Nil("position.Close")
	}
	return p.lc.Release("position.Close")
}
