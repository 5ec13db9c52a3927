// Package formattable implements the tagged value passed to and returned by
// the formatters: a number, a date, a string, an array of values or an
// arbitrary object.
package formattable

import (
	"errors"
	"math"

	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
)

// Kind is the handle kind of formattables.
const Kind = "formattable"

var (
	// ErrTypeMismatch is returned when a getter does not match the stored type.
	ErrTypeMismatch = errors.New("formattable: value has another type")

	// ErrOverflow is returned when a numeric value does not fit the requested type.
	ErrOverflow = errors.New("formattable: value does not fit the requested type")

	// ErrNotCloneable is returned when an Object value does not implement Cloner.
	ErrNotCloneable = errors.New("formattable: object cannot be cloned")
)

// Type is the type of the held value.
type Type int

const (
	Date Type = iota // milliseconds since the epoch
	Double
	Long // 32-bit integer
	String
	Array
	Int64
	Object
)

func (t Type) String() string {
	switch t {
	case Date:
		return "date"
	case Double:
		return "double"
	case Long:
		return "long"
	case String:
		return "string"
	case Array:
		return "array"
	case Int64:
		return "int64"
	case Object:
		return "object"
	}
	return "unknown"
}

// Cloner is implemented by objects that can be copied together with the
// formattable holding them.
type Cloner interface {
	handle.Closer
	CloneObject() (handle.Closer, error)
}

// Formattable holds one value. Array elements and objects are owned and
// released with the holder. Not safe for concurrent use.
type Formattable struct {
	obj handle.Ref[handle.Closer]
	str string
	arr []*Formattable
	lc  handle.Lifecycle
	num float64
	i   int64
	typ Type
}

func open(typ Type) *Formattable {
	f := &Formattable{typ: typ}
	f.lc.Open(Kind)
	return f
}

// New returns a formattable holding the long 0.
func New() *Formattable { return open(Long) }

func NewDouble(v float64) *Formattable {
	f := open(Double)
	f.num = v
	return f
}

func NewLong(v int32) *Formattable {
	f := open(Long)
	f.i = int64(v)
	return f
}

func NewInt64(v int64) *Formattable {
	f := open(Int64)
	f.i = v
	return f
}

// NewDate holds a date given in milliseconds since the epoch.
func NewDate(ms int64) *Formattable {
	f := open(Date)
	f.i = ms
	return f
}

func NewString(s string) *Formattable {
	f := open(String)
	f.str = s
	return f
}

// NewArray holds deep copies of items.
func NewArray(items ...*Formattable) (*Formattable, error) {
	arr, err := cloneAll("formattable.NewArray", items)
	if err != nil {
		return nil, err
	}
	f := open(Array)
	f.arr = arr
	return f, nil
}

// NewObject adopts obj; closing the formattable closes obj.
func NewObject(obj handle.Closer) (*Formattable, error) {
	if obj == nil {
		return nil, status.Invalid("formattable.NewObject", "nil object")
	}
	f := open(Object)
	f.obj = handle.Own(obj)
	return f, nil
}

func (f *Formattable) live(op string) error {
	if f == nil {
		return handle.Nil(op)
	}
	return f.lc.Check(op)
}

// Type returns the type of the held value.
func (f *Formattable) Type() (Type, error) {
	if err := f.live("formattable.Type"); err != nil {
		return 0, err
	}
	return f.typ, nil
}

// IsNumeric reports whether the value is a double, long or int64.
func (f *Formattable) IsNumeric() (bool, error) {
	if err := f.live("formattable.IsNumeric"); err != nil {
		return false, err
	}
	return f.numeric(), nil
}

func (f *Formattable) numeric() bool {
	return f.typ == Double || f.typ == Long || f.typ == Int64
}

func mismatch(op string) error {
	return status.New(op, status.InvalidFormat, ErrTypeMismatch)
}

// Double returns a numeric value as a float64.
func (f *Formattable) Double() (float64, error) {
	if err := f.live("formattable.Double"); err != nil {
		return 0, err
	}
	switch f.typ {
	case Double:
		return f.num, nil
	case Long, Int64:
		return float64(f.i), nil
	}
	return 0, mismatch("formattable.Double")
}

// Long returns a numeric value as an int32. Doubles are truncated; values
// out of range fail with InvalidFormat.
func (f *Formattable) Long() (int32, error) {
	const op = "formattable.Long"
	if err := f.live(op); err != nil {
		return 0, err
	}
	v, err := f.int64(op)
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, status.New(op, status.InvalidFormat, ErrOverflow)
	}
	return int32(v), nil
}

// Int64 returns a numeric value as an int64. Doubles are truncated.
func (f *Formattable) Int64() (int64, error) {
	const op = "formattable.Int64"
	if err := f.live(op); err != nil {
		return 0, err
	}
	return f.int64(op)
}

func (f *Formattable) int64(op string) (int64, error) {
	switch f.typ {
	case Long, Int64:
		return f.i, nil
	case Double:
		if math.IsNaN(f.num) || f.num < math.MinInt64 || f.num >= math.MaxInt64 {
			return 0, status.New(op, status.InvalidFormat, ErrOverflow)
		}
		return int64(f.num), nil
	}
	return 0, mismatch(op)
}

// Date returns a date value in milliseconds since the epoch.
func (f *Formattable) Date() (int64, error) {
	if err := f.live("formattable.Date"); err != nil {
		return 0, err
	}
	if f.typ != Date {
		return 0, mismatch("formattable.Date")
	}
	return f.i, nil
}

// StringValue returns a string value.
func (f *Formattable) StringValue() (string, error) {
	if err := f.live("formattable.StringValue"); err != nil {
		return "", err
	}
	if f.typ != String {
		return "", mismatch("formattable.StringValue")
	}
	return f.str, nil
}

// Array returns the elements of an array value. They stay owned by f.
func (f *Formattable) Array() ([]*Formattable, error) {
	if err := f.live("formattable.Array"); err != nil {
		return nil, err
	}
	if f.typ != Array {
		return nil, mismatch("formattable.Array")
	}
	return f.arr, nil
}

// ArrayItem returns element i of an array value.
func (f *Formattable) ArrayItem(i int) (*Formattable, error) {
	arr, err := f.Array()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(arr) {
		return nil, status.Invalid("formattable.ArrayItem", "index %d out of range [0,%d)", i, len(arr))
	}
	return arr[i], nil
}

// Object returns an object value. It stays owned by f.
func (f *Formattable) Object() (handle.Closer, error) {
	if err := f.live("formattable.Object"); err != nil {
		return nil, err
	}
	if f.typ != Object {
		return nil, mismatch("formattable.Object")
	}
	return f.obj.Get(), nil
}

// reset releases the current value and switches to typ.
func (f *Formattable) reset(typ Type) error {
	err := f.obj.Release()
	err = errors.Join(err, closeAll(f.arr))
	*f = Formattable{lc: f.lc, typ: typ}
	return err
}

func (f *Formattable) SetDouble(v float64) error {
	if err := f.live("formattable.SetDouble"); err != nil {
		return err
	}
	err := f.reset(Double)
	f.num = v
	return err
}

func (f *Formattable) SetLong(v int32) error {
	if err := f.live("formattable.SetLong"); err != nil {
		return err
	}
	err := f.reset(Long)
	f.i = int64(v)
	return err
}

func (f *Formattable) SetInt64(v int64) error {
	if err := f.live("formattable.SetInt64"); err != nil {
		return err
	}
	err := f.reset(Int64)
	f.i = v
	return err
}

func (f *Formattable) SetDate(ms int64) error {
	if err := f.live("formattable.SetDate"); err != nil {
		return err
	}
	err := f.reset(Date)
	f.i = ms
	return err
}

func (f *Formattable) SetString(s string) error {
	if err := f.live("formattable.SetString"); err != nil {
		return err
	}
	err := f.reset(String)
	f.str = s
	return err
}

// SetArray replaces the value with deep copies of items.
func (f *Formattable) SetArray(items ...*Formattable) error {
	const op = "formattable.SetArray"
	if err := f.live(op); err != nil {
		return err
	}
	arr, err := cloneAll(op, items)
	if err != nil {
		return err
	}
	err = f.reset(Array)
	f.arr = arr
	return err
}

// SetObject replaces the value with obj, which f adopts.
func (f *Formattable) SetObject(obj handle.Closer) error {
	const op = "formattable.SetObject"
	if err := f.live(op); err != nil {
		return err
	}
	if obj == nil {
		return status.Invalid(op, "nil object")
	}
	err := f.reset(Object)
	f.obj = handle.Own(obj)
	return err
}

// Equal reports whether both hold the same type and value. Arrays compare
// element-wise, objects by identity.
func (f *Formattable) Equal(o *Formattable) (bool, error) {
	if err := f.live("formattable.Equal"); err != nil {
		return false, err
	}
	if err := o.live("formattable.Equal"); err != nil {
		return false, err
	}
	return f.equal(o), nil
}

func (f *Formattable) equal(o *Formattable) bool {
	if f.typ != o.typ {
		return false
	}
	switch f.typ {
	case Double:
		return f.num == o.num
	case String:
		return f.str == o.str
	case Object:
		return f.obj.Get() == o.obj.Get()
	case Array:
		if len(f.arr) != len(o.arr) {
			return false
		}
		for i := range f.arr {
			if !f.arr[i].equal(o.arr[i]) {
				return false
			}
		}
		return true
	}
	return f.i == o.i
}

// Clone returns a deep copy. Objects are copied through Cloner; other
// objects fail with NotSupported.
func (f *Formattable) Clone() (*Formattable, error) {
	const op = "formattable.Clone"
	if err := f.live(op); err != nil {
		return nil, err
	}
	out := &Formattable{typ: f.typ, num: f.num, i: f.i, str: f.str}
	switch f.typ {
	case Array:
		arr, err := cloneAll(op, f.arr)
		if err != nil {
			return nil, err
		}
		out.arr = arr
	case Object:
		c, ok := f.obj.Get().(Cloner)
		if !ok {
			return nil, status.New(op, status.NotSupported, ErrNotCloneable)
		}
		obj, err := c.CloneObject()
		if err != nil {
			return nil, err
		}
		out.obj = handle.Own(obj)
	}
	out.lc.Open(Kind)
	return out, nil
}

// Close releases f, its array elements and its object.
func (f *Formattable) Close() error {
	if f == nil {
		return handle.Nil("formattable.Close")
	}
	if err := f.lc.Release("formattable.Close"); err != nil {
		return err
	}
	err := f.obj.Release()
	err = errors.Join(err, closeAll(f.arr))
	f.arr = nil
	return err
}

func cloneAll(op string, items []*Formattable) ([]*Formattable, error) {
	out := make([]*Formattable, 0, len(items))
	for _, it := range items {
		if err := it.live(op); err != nil {
			_ = closeAll(out)
			return nil, err
		}
		c, err := it.Clone()
		if err != nil {
			_ = closeAll(out)
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func closeAll(items []*Formattable) error {
	var errs []error
	for _, it := range items {
		if err := it.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
