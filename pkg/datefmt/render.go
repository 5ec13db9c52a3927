package datefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/calendar"
	"github.com/dmitrymomot/intl/pkg/formattable"
	"github.com/dmitrymomot/intl/pkg/numfmt"
	"github.com/dmitrymomot/intl/pkg/position"
	"github.com/dmitrymomot/intl/pkg/status"
	"github.com/dmitrymomot/intl/pkg/timezone"
)

// FormatMillis formats the instant ms (milliseconds since the epoch).
func (f *Formatter) FormatMillis(ms int64, pos *position.FieldPosition) (string, error) {
	const op = "datefmt.FormatMillis"
	if err := f.live(op); err != nil {
		return "", err
	}
	cal := f.cal.Get()
	if err := cal.SetMillis(ms); err != nil {
		return "", err
	}
	return f.render(cal, pos)
}

// FormatTime formats t.
func (f *Formatter) FormatTime(t time.Time, pos *position.FieldPosition) (string, error) {
	return f.FormatMillis(t.UnixMilli(), pos)
}

// FormatCalendar formats the instant of cal in the zone of cal.
func (f *Formatter) FormatCalendar(cal *calendar.Calendar, pos *position.FieldPosition) (string, error) {
	if err := f.live("datefmt.FormatCalendar"); err != nil {
		return "", err
	}
	return f.render(cal, pos)
}

// FormatInto formats ms into dst as NUL-terminated UTF-16 and returns the
// full length.
func (f *Formatter) FormatInto(ms int64, pos *position.FieldPosition, dst []uint16, capacity int) (int, error) {
	if err := buffer.Check(dst, capacity); err != nil {
		return 0, err
	}
	s, err := f.FormatMillis(ms, pos)
	if err != nil {
		return 0, err
	}
	return buffer.FillUTF16(dst, capacity, s, buffer.NulTerminated)
}

// Format formats a Date formattable, or a number as milliseconds.
func (f *Formatter) Format(v *formattable.Formattable, pos *position.FieldPosition) (string, error) {
	const op = "datefmt.Format"
	if err := f.live(op); err != nil {
		return "", err
	}
	typ, err := v.Type()
	if err != nil {
		return "", err
	}
	var ms int64
	switch typ {
	case formattable.Date:
		ms, err = v.Date()
	case formattable.Long, formattable.Int64:
		ms, err = v.Int64()
	case formattable.Double:
		var d float64
		d, err = v.Double()
		ms = int64(d)
	default:
		return "", status.New(op, status.InvalidParameter, ErrNotDate)
	}
	if err != nil {
		return "", err
	}
	return f.FormatMillis(ms, pos)
}

// fieldReader reads calendar fields for one rendering.
type fieldReader struct {
	cal *calendar.Calendar
	err error
}

func (r *fieldReader) get(field calendar.Field) int {
	v, err := r.cal.Get(field)
	if err != nil && r.err == nil {
		r.err = err
	}
	return v
}

func (f *Formatter) render(cal *calendar.Calendar, pos *position.FieldPosition) (string, error) {
	t, err := cal.Time()
	if err != nil {
		return "", err
	}
	zero := '0'
	if z, err := f.nf.Get().Symbol(numfmt.ZeroDigit); err == nil {
		if r, size := utf8.DecodeRuneInString(z); size == len(z) {
			zero = r
		}
	}
	fr := &fieldReader{cal: cal}
	var (
		b   strings.Builder
		n16 int
	)
	for _, it := range f.items {
		if it.letter == 0 {
			b.WriteString(it.lit)
			n16 += buffer.Len16(it.lit)
			continue
		}
		s := f.field(fr, t, it)
		if it.numeric() && zero != '0' {
			s = localize(s, zero)
		}
		begin := n16
		b.WriteString(s)
		n16 += buffer.Len16(s)
		pos.Record(letterFields[it.letter], begin, n16)
	}
	if fr.err != nil {
		return "", fr.err
	}
	return b.String(), nil
}

func localize(s string, zero rune) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return zero + (r - '0')
		}
		return r
	}, s)
}

func pad(v, n int) string {
	s := strconv.Itoa(v)
	neg := v < 0
	if neg {
		s = s[1:]
	}
	if len(s) < n {
		s = strings.Repeat("0", n-len(s)) + s
	}
	if neg {
		return "-" + s
	}
	return s
}

func name(list []string, i int) string {
	if i < 0 || i >= len(list) {
		return strconv.Itoa(i)
	}
	return list[i]
}

func narrow(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(r)
}

// text picks the abbreviated, wide or narrow form by letter count.
func text(count int, short, wide []string, i int) string {
	switch {
	case count == 4:
		return name(wide, i)
	case count == 5:
		return narrow(name(wide, i))
	}
	return name(short, i)
}

var quarterOrdinals = [...]string{"1st quarter", "2nd quarter", "3rd quarter", "4th quarter"}

func (f *Formatter) field(fr *fieldReader, t time.Time, it item) string {
	n := it.count
	switch it.letter {
	case 'G':
		return text(n, f.data.Eras, f.data.Eras, fr.get(calendar.Era))
	case 'y', 'Y':
		field := calendar.Year
		if it.letter == 'Y' {
			field = calendar.YearWOY
		}
		y := fr.get(field)
		if n == 2 {
			return pad(y%100, 2)
		}
		return pad(y, n)
	case 'u', 'r', 'U':
		return pad(fr.get(calendar.ExtendedYear), n)
	case 'Q', 'q':
		q := fr.get(calendar.Month)/3 + 1
		switch n {
		case 1, 2:
			return pad(q, n)
		case 3:
			return "Q" + strconv.Itoa(q)
		case 4:
			return quarterOrdinals[q-1]
		}
		return strconv.Itoa(q)
	case 'M', 'L':
		m := fr.get(calendar.Month)
		if n <= 2 {
			return pad(m+1, n)
		}
		return text(n, f.data.MonthsShort, f.data.Months, m)
	case 'w':
		return pad(fr.get(calendar.WeekOfYear), n)
	case 'W':
		return pad(fr.get(calendar.WeekOfMonth), n)
	case 'd':
		return pad(fr.get(calendar.Date), n)
	case 'D':
		return pad(fr.get(calendar.DayOfYear), n)
	case 'F':
		return pad(fr.get(calendar.DayOfWeekInMonth), n)
	case 'g':
		return pad(fr.get(calendar.JulianDay), n)
	case 'e', 'c':
		if n <= 2 {
			return pad(fr.get(calendar.DOWLocal), n)
		}
		fallthrough
	case 'E':
		dow := fr.get(calendar.DayOfWeek) - 1
		if n == 6 {
			n = 3
		}
		return text(n, f.data.WeekdaysShort, f.data.Weekdays, dow)
	case 'a', 'b', 'B':
		return name(f.data.AmPm, fr.get(calendar.AmPm))
	case 'h':
		h := fr.get(calendar.Hour)
		if h == 0 {
			h = 12
		}
		return pad(h, n)
	case 'K':
		return pad(fr.get(calendar.Hour), n)
	case 'H':
		return pad(fr.get(calendar.HourOfDay), n)
	case 'k':
		h := fr.get(calendar.HourOfDay)
		if h == 0 {
			h = 24
		}
		return pad(h, n)
	case 'm':
		return pad(fr.get(calendar.Minute), n)
	case 's':
		return pad(fr.get(calendar.Second), n)
	case 'S':
		ms := pad(fr.get(calendar.Millisecond), 3)
		if n <= 3 {
			return ms[:n]
		}
		return ms + strings.Repeat("0", n-3)
	case 'A':
		return pad(fr.get(calendar.MillisecondsInDay), n)
	}
	offset := (fr.get(calendar.ZoneOffset) + fr.get(calendar.DSTOffset)) / 1000
	dst := fr.get(calendar.DSTOffset) != 0
	switch it.letter {
	case 'Z':
		switch {
		case n <= 3:
			return isoOffset(offset, false, false)
		case n == 4:
			return gmtOffset(offset, true)
		}
		return isoOffset(offset, true, true)
	case 'O':
		return gmtOffset(offset, n == 4)
	case 'X', 'x':
		s := isoOffsetWidth(offset, n)
		if it.letter == 'X' && offset == 0 {
			return "Z"
		}
		return s
	case 'z':
		if n == 4 {
			return f.zoneName(fr, dst, timezone.Long, offset)
		}
		abbr, _ := t.Zone()
		if abbr == "" || strings.ContainsAny(abbr[:1], "+-0123456789") {
			return gmtOffset(offset, false)
		}
		return abbr
	case 'v':
		style := timezone.Short
		if n == 4 {
			style = timezone.Long
		}
		return f.zoneName(fr, false, style, offset)
	case 'V':
		id, err := fr.cal.TimeZoneID()
		if err != nil {
			return gmtOffset(offset, true)
		}
		city := id
		if i := strings.LastIndexByte(id, '/'); i >= 0 {
			city = id[i+1:]
		}
		city = strings.ReplaceAll(city, "_", " ")
		switch n {
		case 3:
			return city
		case 4:
			return city + " Time"
		}
		return id
	}
	return ""
}

func (f *Formatter) zoneName(fr *fieldReader, daylight bool, style timezone.DisplayStyle, offset int) string {
	z, err := fr.cal.TimeZone()
	if err != nil {
		return gmtOffset(offset, true)
	}
	defer func() { _ = z.Close() }()
	s, err := z.DisplayName(f.id, daylight, style)
	if err != nil {
		return gmtOffset(offset, true)
	}
	return s
}

func splitOffset(sec int) (sign byte, h, m, s int) {
	sign = '+'
	if sec < 0 {
		sign, sec = '-', -sec
	}
	return sign, sec / 3600, sec / 60 % 60, sec % 60
}

// gmtOffset renders "GMT-8" or, long, "GMT-08:00". Zero is "GMT".
func gmtOffset(sec int, long bool) string {
	if sec == 0 {
		return "GMT"
	}
	sign, h, m, _ := splitOffset(sec)
	switch {
	case long:
		return fmt.Sprintf("GMT%c%02d:%02d", sign, h, m)
	case m != 0:
		return fmt.Sprintf("GMT%c%d:%02d", sign, h, m)
	}
	return fmt.Sprintf("GMT%c%d", sign, h)
}

// isoOffset renders "+0530" or, extended, "+05:30"; zero may be "Z".
func isoOffset(sec int, extended, z bool) string {
	if sec == 0 && z {
		return "Z"
	}
	sign, h, m, _ := splitOffset(sec)
	if extended {
		return fmt.Sprintf("%c%02d:%02d", sign, h, m)
	}
	return fmt.Sprintf("%c%02d%02d", sign, h, m)
}

// isoOffsetWidth renders the ISO 8601 offset forms selected by the count of
// X or x.
func isoOffsetWidth(sec, n int) string {
	sign, h, m, s := splitOffset(sec)
	switch n {
	case 1:
		if m != 0 {
			return fmt.Sprintf("%c%02d%02d", sign, h, m)
		}
		return fmt.Sprintf("%c%02d", sign, h)
	case 2:
		return fmt.Sprintf("%c%02d%02d", sign, h, m)
	case 3:
		return fmt.Sprintf("%c%02d:%02d", sign, h, m)
	case 4:
		if s != 0 {
			return fmt.Sprintf("%c%02d%02d%02d", sign, h, m, s)
		}
		return fmt.Sprintf("%c%02d%02d", sign, h, m)
	}
	if s != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}
