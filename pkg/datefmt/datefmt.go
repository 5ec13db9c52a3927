// Package datefmt formats and parses dates with ICU date patterns
// ("EEEE, MMMM d, y", "HH:mm:ss zzzz") or the locale's predefined styles.
//
// A Formatter owns a Gregorian calendar, which carries the zone and the
// leniency, and a number format for its digits. Names of months, weekdays,
// eras and day periods come from pkg/localedata.
package datefmt

import (
	"slices"
	"time"

	"github.com/dmitrymomot/intl/pkg/calendar"
	"github.com/dmitrymomot/intl/pkg/format"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/localedata"
	"github.com/dmitrymomot/intl/pkg/numfmt"
	"github.com/dmitrymomot/intl/pkg/status"
)

// Kind is the handle kind of date formats.
const Kind = "date_format"

// Style selects a predefined pattern length.
type Style = localedata.Style

const (
	Full    = localedata.Full
	Long    = localedata.Long
	Medium  = localedata.Medium
	Short   = localedata.Short
	Default = localedata.DefaultStyle
	None    = localedata.None
	// Pattern, for both styles, formats with the pattern given to New.
	Pattern Style = -2
	// Relative is a flag on date styles ("yesterday", "today").
	Relative Style = 1 << 7
)

// SymbolType selects a list of names SetSymbol and Symbols work on.
type SymbolType int

const (
	Eras SymbolType = iota
	Months
	ShortMonths
	Weekdays
	ShortWeekdays
	AmPms
)

var _ format.Parser = (*Formatter)(nil)

// Formatter is a date format. Not safe for concurrent use.
type Formatter struct {
	cal      handle.Ref[*calendar.Calendar]
	nf       handle.Ref[*numfmt.Formatter]
	id       string
	pattern  string
	items    []item
	data     localedata.Data
	lc       handle.Lifecycle
	yearFrom int64
}

func validStyle(s Style) bool { return s >= Full && s <= Short || s == None }

// New opens a date format for the locale id and the zone zoneID (""
// selects the defaults). With Pattern for both styles it formats with
// pattern; otherwise the locale patterns of the two styles are combined and
// pattern is ignored.
func New(timeStyle, dateStyle Style, id, zoneID, pattern string) (*Formatter, error) {
	const op = "datefmt.New"
	if dateStyle >= 0 && dateStyle&Relative != 0 {
		return nil, status.New(op, status.NotSupported, ErrRelativeStyle)
	}
	if (timeStyle == Pattern) != (dateStyle == Pattern) {
		return nil, status.New(op, status.InvalidParameter, ErrStyleMismatch)
	}
	if timeStyle != Pattern && (!validStyle(timeStyle) || !validStyle(dateStyle) || timeStyle == None && dateStyle == None) {
		return nil, status.New(op, status.InvalidParameter, ErrInvalidStyle)
	}
	tag, err := locale.Resolve(id)
	if err != nil {
		return nil, err
	}
	f := &Formatter{id: locale.ID(tag), yearFrom: defaultYearStart()}
	f.data, err = localedata.Default().Lookup(f.id)
	if err != nil {
		return nil, err
	}
	if timeStyle != Pattern {
		d, err := f.data.Date.Get(dateStyle)
		if err != nil {
			return nil, err
		}
		t, err := f.data.Time.Get(timeStyle)
		if err != nil {
			return nil, err
		}
		pattern = f.data.DateTimePattern(d, t)
	}
	if f.items, err = compile(pattern); err != nil {
		return nil, err
	}
	f.pattern = pattern

	cal, err := calendar.New(zoneID, f.id, calendar.Traditional)
	if err != nil {
		return nil, err
	}
	nf, err := numfmt.New(numfmt.PatternDecimal, "0", f.id)
	if err != nil {
		_ = cal.Close()
		return nil, err
	}
	f.cal = handle.Own(cal)
	f.nf = handle.Own(nf)
	f.lc.Open(Kind)
	return f, nil
}

// defaultYearStart places two-digit years within 80 years before and 20
// years after now.
func defaultYearStart() int64 {
	return time.Now().AddDate(-80, 0, 0).UnixMilli()
}

func (f *Formatter) live(op string) error {
	if f == nil {
		return handle.Nil(op)
	}
	return f.lc.Check(op)
}

// Kind returns the handle kind.
func (f *Formatter) Kind() string { return Kind }

// Locale returns the canonical ID the format was opened for.
func (f *Formatter) Locale() string { return f.id }

// Pattern returns the pattern. Pattern letters are the same in every
// locale, so localized and canonical patterns are equal.
func (f *Formatter) Pattern(localized bool) (string, error) {
	if err := f.live("datefmt.Pattern"); err != nil {
		return "", err
	}
	return f.pattern, nil
}

// ApplyPattern replaces the pattern.
func (f *Formatter) ApplyPattern(pattern string, localized bool) error {
	if err := f.live("datefmt.ApplyPattern"); err != nil {
		return err
	}
	items, err := compile(pattern)
	if err != nil {
		return err
	}
	f.items, f.pattern = items, pattern
	return nil
}

// Calendar returns a copy of the calendar for the caller to close.
func (f *Formatter) Calendar() (*calendar.Calendar, error) {
	if err := f.live("datefmt.Calendar"); err != nil {
		return nil, err
	}
	return f.cal.Get().Clone()
}

// SetCalendar replaces the calendar with a copy of cal.
func (f *Formatter) SetCalendar(cal *calendar.Calendar) error {
	if err := f.live("datefmt.SetCalendar"); err != nil {
		return err
	}
	clone, err := cal.Clone()
	if err != nil {
		return err
	}
	return f.cal.Replace(handle.Own(clone))
}

// NumberFormat returns a copy of the number format used for digits.
func (f *Formatter) NumberFormat() (*numfmt.Formatter, error) {
	if err := f.live("datefmt.NumberFormat"); err != nil {
		return nil, err
	}
	return f.nf.Get().Clone()
}

// SetNumberFormat replaces the digit format with a copy of nf.
func (f *Formatter) SetNumberFormat(nf *numfmt.Formatter) error {
	if err := f.live("datefmt.SetNumberFormat"); err != nil {
		return err
	}
	clone, err := nf.Clone()
	if err != nil {
		return err
	}
	return f.nf.Replace(handle.Own(clone))
}

// IsLenient reports whether parsing accepts out-of-range fields and loose
// literals.
func (f *Formatter) IsLenient() (bool, error) {
	if err := f.live("datefmt.IsLenient"); err != nil {
		return false, err
	}
	v, err := f.cal.Get().Attribute(calendar.Lenient)
	return v != 0, err
}

// SetLenient changes the leniency of the calendar.
func (f *Formatter) SetLenient(lenient bool) error {
	if err := f.live("datefmt.SetLenient"); err != nil {
		return err
	}
	v := 0
	if lenient {
		v = 1
	}
	return f.cal.Get().SetAttribute(calendar.Lenient, v)
}

// TwoDigitYearStart returns the start of the 100-year window two-digit
// years are parsed into, in milliseconds since the epoch.
func (f *Formatter) TwoDigitYearStart() (int64, error) {
	if err := f.live("datefmt.TwoDigitYearStart"); err != nil {
		return 0, err
	}
	return f.yearFrom, nil
}

// SetTwoDigitYearStart moves the two-digit year window.
func (f *Formatter) SetTwoDigitYearStart(ms int64) error {
	if err := f.live("datefmt.SetTwoDigitYearStart"); err != nil {
		return err
	}
	f.yearFrom = ms
	return nil
}

func (f *Formatter) symbolList(t SymbolType) (*[]string, error) {
	switch t {
	case Eras:
		return &f.data.Eras, nil
	case Months:
		return &f.data.Months, nil
	case ShortMonths:
		return &f.data.MonthsShort, nil
	case Weekdays:
		return &f.data.Weekdays, nil
	case ShortWeekdays:
		return &f.data.WeekdaysShort, nil
	case AmPms:
		return &f.data.AmPm, nil
	}
	return nil, status.New("datefmt.Symbols", status.InvalidParameter, ErrInvalidSymbol)
}

// Symbols returns the names of type t. Weekdays start with Sunday.
func (f *Formatter) Symbols(t SymbolType) ([]string, error) {
	if err := f.live("datefmt.Symbols"); err != nil {
		return nil, err
	}
	list, err := f.symbolList(t)
	if err != nil {
		return nil, err
	}
	return slices.Clone(*list), nil
}

// SetSymbol replaces one name of type t.
func (f *Formatter) SetSymbol(t SymbolType, i int, v string) error {
	if err := f.live("datefmt.SetSymbol"); err != nil {
		return err
	}
	list, err := f.symbolList(t)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(*list) {
		return status.New("datefmt.SetSymbol", status.IndexOutOfBounds, ErrInvalidSymbol)
	}
	*list = slices.Clone(*list)
	(*list)[i] = v
	return nil
}

// Clone returns an independent copy with its own calendar and number
// format.
func (f *Formatter) Clone() (*Formatter, error) {
	if err := f.live("datefmt.Clone"); err != nil {
		return nil, err
	}
	cal, err := f.cal.Get().Clone()
	if err != nil {
		return nil, err
	}
	nf, err := f.nf.Get().Clone()
	if err != nil {
		_ = cal.Close()
		return nil, err
	}
	out := &Formatter{
		cal:      handle.Own(cal),
		nf:       handle.Own(nf),
		id:       f.id,
		pattern:  f.pattern,
		items:    f.items,
		data:     f.data,
		yearFrom: f.yearFrom,
	}
	out.lc.Open(Kind)
	return out, nil
}

// CloneFormat implements format.Formatter.
func (f *Formatter) CloneFormat() (format.Formatter, error) {
	out, err := f.Clone()
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases the format with its calendar and number format.
func (f *Formatter) Close() error {
	if f == nil {
		return handle.Nil("datefmt.Close")
	}
	if err := f.lc.Release("datefmt.Close"); err != nil {
		return err
	}
	errCal := f.cal.Release()
	errNum := f.nf.Release()
	if errCal != nil {
		return errCal
	}
	return errNum
}
