package measure

import (
	"errors"

	"github.com/dmitrymomot/intl/pkg/formattable"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
)

// Kind is the handle kind of measures.
const Kind = "measure"

var _ formattable.Cloner = (*Measure)(nil)

// Measure is a number with a unit.
type Measure struct {
	number handle.Ref[*formattable.Formattable]
	unit   handle.Ref[*Unit]
	lc     handle.Lifecycle
}

// New creates a measure of a copy of number in unit. The measure adopts
// unit: it is closed with the measure, also when New fails.
func New(number *formattable.Formattable, unit *Unit) (*Measure, error) {
	const op = "measure.New"
	if err := unit.live(op); err != nil {
		return nil, err
	}
	numeric, err := number.IsNumeric()
	if err != nil {
		_ = unit.Close()
		return nil, err
	}
	if !numeric {
		_ = unit.Close()
		return nil, status.New(op, status.InvalidParameter, ErrNotNumeric)
	}
	n, err := number.Clone()
	if err != nil {
		_ = unit.Close()
		return nil, err
	}
	m := &Measure{number: handle.Own(n), unit: handle.Own(unit)}
	m.lc.Open(Kind)
	return m, nil
}

func (m *Measure) live(op string) error {
	if m == nil {
		return handle.Nil(op)
	}
	return m.lc.Check(op)
}

// Number returns a copy of the amount.
func (m *Measure) Number() (*formattable.Formattable, error) {
	if err := m.live("measure.Number"); err != nil {
		return nil, err
	}
	return m.number.Get().Clone()
}

// Unit returns a copy of the unit.
func (m *Measure) Unit() (*Unit, error) {
	if err := m.live("measure.Unit"); err != nil {
		return nil, err
	}
	return m.unit.Get().Clone()
}

// Equal reports whether both measures have equal numbers and units.
func (m *Measure) Equal(o *Measure) (bool, error) {
	const op = "measure.Equal"
	if err := m.live(op); err != nil {
		return false, err
	}
	if err := o.live(op); err != nil {
		return false, err
	}
	same, err := m.unit.Get().Equal(o.unit.Get())
	if err != nil || !same {
		return false, err
	}
	return m.number.Get().Equal(o.number.Get())
}

// Clone returns a deep copy with its own number and unit.
func (m *Measure) Clone() (*Measure, error) {
	if err := m.live("measure.Clone"); err != nil {
		return nil, err
	}
	n, err := m.number.Get().Clone()
	if err != nil {
		return nil, err
	}
	u, err := m.unit.Get().Clone()
	if err != nil {
		_ = n.Close()
		return nil, err
	}
	c := &Measure{number: handle.Own(n), unit: handle.Own(u)}
	c.lc.Open(Kind)
	return c, nil
}

// CloneObject lets a formattable holding the measure be cloned.
func (m *Measure) CloneObject() (handle.Closer, error) {
	return m.Clone()
}

// Close releases the measure with its number and unit.
func (m *Measure) Close() error {
	if m == nil {
		return handle.Nil("measure.Close")
	}
	if err := m.lc.Release("measure.Close"); err != nil {
		return err
	}
	return errors.Join(m.number.Release(), m.unit.Release())
}
