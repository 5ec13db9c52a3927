package measure

import (
	"errors"
	"strings"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/format"
	"github.com/dmitrymomot/intl/pkg/formattable"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/numfmt"
	"github.com/dmitrymomot/intl/pkg/plural"
	"github.com/dmitrymomot/intl/pkg/position"
	"github.com/dmitrymomot/intl/pkg/status"
)

// FormatKind is the handle kind of measure formats.
const FormatKind = "measure_format"

// Width selects how much of a unit name is spelled out.
type Width int

const (
	// Wide spells units out: "3 meters".
	Wide Width = iota
	// Short abbreviates: "3 m".
	Short
	// Narrow abbreviates tightly: "3m".
	Narrow
	// Numeric writes durations as clock time: "1:05:00". Other units are
	// written as Short.
	Numeric
)

func (w Width) String() string {
	switch w {
	case Wide:
		return "wide"
	case Short:
		return "short"
	case Narrow:
		return "narrow"
	case Numeric:
		return "numeric"
	}
	return "unknown"
}

var _ format.Formatter = (*Format)(nil)

// Format formats measures for one locale. Not safe for concurrent use.
type Format struct {
	nf    handle.Ref[*numfmt.Formatter]
	rules handle.Ref[*plural.Rules]
	cat   *catalog
	id    string
	lc    handle.Lifecycle
	width Width
}

// NewFormat opens a measure format for the locale id ("" is the default).
func NewFormat(id string, width Width) (*Format, error) {
	const op = "measure.NewFormat"
	if width < Wide || width > Numeric {
		return nil, status.New(op, status.InvalidParameter, ErrInvalidWidth)
	}
	cat, err := loadCatalog()
	if err != nil {
		return nil, status.New(op, status.MissingResource, err)
	}
	tag, err := locale.Resolve(id)
	if err != nil {
		return nil, err
	}
	f := &Format{cat: cat, id: locale.ID(tag), width: width}
	nf, err := numfmt.New(numfmt.Decimal, "", f.id)
	if err != nil {
		return nil, err
	}
	rules, err := plural.New(f.id, plural.Cardinal)
	if err != nil {
		_ = nf.Close()
		return nil, err
	}
	f.nf = handle.Own(nf)
	f.rules = handle.Own(rules)
	f.lc.Open(FormatKind)
	return f, nil
}

func (f *Format) live(op string) error {
	if f == nil {
		return handle.Nil(op)
	}
	return f.lc.Check(op)
}

// Kind returns the handle kind.
func (f *Format) Kind() string { return FormatKind }

// Locale returns the canonical ID the format was opened for.
func (f *Format) Locale() string { return f.id }

func (f *Format) Width() Width { return f.width }

// NumberFormat returns a copy of the number format.
func (f *Format) NumberFormat() (*numfmt.Formatter, error) {
	if err := f.live("measure.NumberFormat"); err != nil {
		return nil, err
	}
	return f.nf.Get().Clone()
}

// SetNumberFormat replaces the number format with a copy of nf.
func (f *Format) SetNumberFormat(nf *numfmt.Formatter) error {
	if err := f.live("measure.SetNumberFormat"); err != nil {
		return err
	}
	clone, err := nf.Clone()
	if err != nil {
		return err
	}
	return f.nf.Replace(handle.Own(clone))
}

// FormatMeasure formats one measure. pos, when not nil, receives the span of
// a number field.
func (f *Format) FormatMeasure(m *Measure, pos *position.FieldPosition) (string, error) {
	const op = "measure.FormatMeasure"
	if err := f.live(op); err != nil {
		return "", err
	}
	if err := m.live(op); err != nil {
		return "", err
	}
	var b strings.Builder
	if err := f.write(&b, f.width, m, pos); err != nil {
		return "", err
	}
	return b.String(), nil
}

// FormatMeasures formats a list of measures, "5 feet, 3 inches". With the
// Numeric width, hours, minutes and seconds in that order become "5:03:07".
func (f *Format) FormatMeasures(ms []*Measure, pos *position.FieldPosition) (string, error) {
	const op = "measure.FormatMeasures"
	if err := f.live(op); err != nil {
		return "", err
	}
	if len(ms) == 0 {
		return "", nil
	}
	for _, m := range ms {
		if err := m.live(op); err != nil {
			return "", err
		}
	}
	if f.width == Numeric && clockUnits(ms) {
		return f.clock(ms, pos)
	}
	sep := ", "
	if f.width == Narrow {
		sep = " "
	}
	var b strings.Builder
	for i, m := range ms {
		if i > 0 {
			b.WriteString(sep)
		}
		if err := f.write(&b, f.width, m, pos); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// Format formats a formattable holding a *Measure, or an array of them.
func (f *Format) Format(v *formattable.Formattable, pos *position.FieldPosition) (string, error) {
	const op = "measure.Format"
	if err := f.live(op); err != nil {
		return "", err
	}
	typ, err := v.Type()
	if err != nil {
		return "", err
	}
	switch typ {
	case formattable.Object:
		m, err := measureOf(op, v)
		if err != nil {
			return "", err
		}
		return f.FormatMeasure(m, pos)
	case formattable.Array:
		items, err := v.Array()
		if err != nil {
			return "", err
		}
		ms := make([]*Measure, 0, len(items))
		for _, item := range items {
			m, err := measureOf(op, item)
			if err != nil {
				return "", err
			}
			ms = append(ms, m)
		}
		return f.FormatMeasures(ms, pos)
	}
	return "", status.New(op, status.InvalidParameter, ErrNotMeasure)
}

func measureOf(op string, v *formattable.Formattable) (*Measure, error) {
	obj, err := v.Object()
	if err != nil {
		return nil, status.New(op, status.InvalidParameter, ErrNotMeasure)
	}
	m, ok := obj.(*Measure)
	if !ok {
		return nil, status.New(op, status.InvalidParameter, ErrNotMeasure)
	}
	return m, nil
}

// write appends m with the unit pattern of width.
func (f *Format) write(b *strings.Builder, width Width, m *Measure, pos *position.FieldPosition) error {
	num := m.number.Get()
	keyword, err := f.keyword(num)
	if err != nil {
		return err
	}
	before, after := split(f.cat.pattern(f.id, m.unit.Get().subtype, width, keyword))
	b.WriteString(before)
	digits, err := f.number(f.nf.Get(), num, pos, buffer.Len16(b.String()))
	if err != nil {
		return err
	}
	b.WriteString(digits)
	b.WriteString(after)
	return nil
}

// number formats num with nf and moves the recorded span of pos by offset
// UTF-16 units.
func (f *Format) number(nf *numfmt.Formatter, num *formattable.Formattable, pos *position.FieldPosition, offset int) (string, error) {
	if pos == nil {
		return nf.Format(num, nil)
	}
	field, err := pos.Field()
	if err != nil {
		return "", err
	}
	sub := position.NewField(field)
	defer func() { _ = sub.Close() }()
	s, err := nf.Format(num, sub)
	if err != nil {
		return "", err
	}
	begin, _ := sub.BeginIndex()
	end, _ := sub.EndIndex()
	if end > 0 {
		pos.Record(field, offset+begin, offset+end)
	}
	return s, nil
}

func (f *Format) keyword(num *formattable.Formattable) (string, error) {
	typ, err := num.Type()
	if err != nil {
		return "", err
	}
	if typ == formattable.Double {
		v, err := num.Double()
		if err != nil {
			return "", err
		}
		return f.rules.Get().Select(v)
	}
	v, err := num.Int64()
	if err != nil {
		return "", err
	}
	return f.rules.Get().SelectInt(v)
}

var clockOrder = map[string]int{"hour": 0, "minute": 1, "second": 2}

// clockUnits reports whether ms are distinct hours, minutes and seconds in
// descending order.
func clockUnits(ms []*Measure) bool {
	last := -1
	for _, m := range ms {
		u := m.unit.Get()
		rank, ok := clockOrder[u.subtype]
		if u.typ != "duration" || !ok || rank <= last {
			return false
		}
		last = rank
	}
	return true
}

func (f *Format) clock(ms []*Measure, pos *position.FieldPosition) (string, error) {
	padded, err := f.nf.Get().Clone()
	if err != nil {
		return "", err
	}
	defer func() { _ = padded.Close() }()
	if err := padded.SetAttribute(numfmt.MinIntegerDigits, 2); err != nil {
		return "", err
	}
	var b strings.Builder
	for i, m := range ms {
		nf := f.nf.Get()
		if i > 0 {
			b.WriteByte(':')
			nf = padded
		}
		s, err := f.number(nf, m.number.Get(), pos, buffer.Len16(b.String()))
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// Clone returns an independent format with copies of the number format and
// rules.
func (f *Format) Clone() (*Format, error) {
	if err := f.live("measure.Format.Clone"); err != nil {
		return nil, err
	}
	nf, err := f.nf.Get().Clone()
	if err != nil {
		return nil, err
	}
	rules, err := f.rules.Get().Clone()
	if err != nil {
		_ = nf.Close()
		return nil, err
	}
	c := &Format{nf: handle.Own(nf), rules: handle.Own(rules), cat: f.cat, id: f.id, width: f.width}
	c.lc.Open(FormatKind)
	return c, nil
}

func (f *Format) CloneFormat() (format.Formatter, error) {
	c, err := f.Clone()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Close releases the format with its number format and rules.
func (f *Format) Close() error {
	if f == nil {
		return handle.Nil("measure.Format.Close")
	}
	if err := f.lc.Release("measure.Format.Close"); err != nil {
		return err
	}
	return errors.Join(f.nf.Release(), f.rules.Release())
}
