// Package measure formats quantities with units: "3 meters", "5 km",
// "1:05:00".
//
// A Measure owns its number and the Unit it was created with; closing the
// measure closes the unit. A Format owns the number format and plural rules
// it formats with.
package measure

import (
	"slices"

	"github.com/dmitrymomot/intl/pkg/enum"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
)

// UnitKind is the handle kind of units.
const UnitKind = "measure_unit"

// Unit is a measure unit such as length/meter.
type Unit struct {
	typ     string
	subtype string
	lc      handle.Lifecycle
}

// NewUnit opens the unit subtype of typ ("length", "meter").
func NewUnit(typ, subtype string) (*Unit, error) {
	const op = "measure.NewUnit"
	c, err := loadCatalog()
	if err != nil {
		return nil, status.New(op, status.MissingResource, err)
	}
	if !slices.Contains(c.Types[typ], subtype) {
		return nil, status.New(op, status.InvalidParameter, ErrUnknownUnit)
	}
	u := &Unit{typ: typ, subtype: subtype}
	u.lc.Open(UnitKind)
	return u, nil
}

// UnitFor opens a unit by subtype alone ("meter").
func UnitFor(subtype string) (*Unit, error) {
	const op = "measure.UnitFor"
	c, err := loadCatalog()
	if err != nil {
		return nil, status.New(op, status.MissingResource, err)
	}
	typ, ok := c.typeOf[subtype]
	if !ok {
		return nil, status.New(op, status.InvalidParameter, ErrUnknownUnit)
	}
	return NewUnit(typ, subtype)
}

func (u *Unit) live(op string) error {
	if u == nil {
		return handle.Nil(op)
	}
	return u.lc.Check(op)
}

// Type returns the unit type, such as "length".
func (u *Unit) Type() (string, error) {
	if err := u.live("measure.Unit.Type"); err != nil {
		return "", err
	}
	return u.typ, nil
}

// Subtype returns the unit name within its type, such as "meter".
func (u *Unit) Subtype() (string, error) {
	if err := u.live("measure.Unit.Subtype"); err != nil {
		return "", err
	}
	return u.subtype, nil
}

// Equal reports whether u and o name the same unit.
func (u *Unit) Equal(o *Unit) (bool, error) {
	const op = "measure.Unit.Equal"
	if err := u.live(op); err != nil {
		return false, err
	}
	if err := o.live(op); err != nil {
		return false, err
	}
	return u.typ == o.typ && u.subtype == o.subtype, nil
}

func (u *Unit) Clone() (*Unit, error) {
	if err := u.live("measure.Unit.Clone"); err != nil {
		return nil, err
	}
	c := &Unit{typ: u.typ, subtype: u.subtype}
	c.lc.Open(UnitKind)
	return c, nil
}

func (u *Unit) Close() error {
	if u == nil {
		return handle.Nil("measure.Unit.Close")
	}
	return u.lc.Release("measure.Unit.Close")
}

// OpenTypes enumerates the unit types in alphabetical order.
func OpenTypes() (*enum.Enumeration, error) {
	c, err := loadCatalog()
	if err != nil {
		return nil, status.New("measure.OpenTypes", status.MissingResource, err)
	}
	return enum.FromStrings(c.types()...), nil
}

// OpenAvailable enumerates the subtypes of typ. An unknown type yields an
// empty enumeration.
func OpenAvailable(typ string) (*enum.Enumeration, error) {
	c, err := loadCatalog()
	if err != nil {
		return nil, status.New("measure.OpenAvailable", status.MissingResource, err)
	}
	return enum.FromStrings(c.Types[typ]...), nil
}
