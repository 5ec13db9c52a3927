package datefmt

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/calendar"
	"github.com/dmitrymomot/intl/pkg/formattable"
	"github.com/dmitrymomot/intl/pkg/numfmt"
	"github.com/dmitrymomot/intl/pkg/position"
	"github.com/dmitrymomot/intl/pkg/status"
)

// parsed holds the fields read from text. Unset fields keep the values of
// 1970-01-01 00:00:00.000.
type parsed struct {
	year, month, day         int
	hour, minute, second, ms int
	offset                   int
	hourLetter               rune
	bc, pm, hasPM, hasOffset bool
	twoDigitYear             bool
}

// scanner walks text and reports UTF-16 offsets.
type scanner struct {
	text  string
	at    int
	base  int
	zero  rune
	loose bool
}

func (s *scanner) rest() string { return s.text[s.at:] }

func (s *scanner) offset() int { return s.base + buffer.Len16(s.text[:s.at]) }

func (s *scanner) digit(r rune) (int, bool) {
	if r >= '0' && r <= '9' {
		return int(r - '0'), true
	}
	if d := r - s.zero; s.zero != '0' && d >= 0 && d <= 9 {
		return int(d), true
	}
	return 0, false
}

// number reads up to limit digits, or any number of them when limit is 0.
func (s *scanner) number(limit int) (v, n int, ok bool) {
	for s.at < len(s.text) && (limit == 0 || n < limit) && n < 10 {
		r, size := utf8.DecodeRuneInString(s.rest())
		d, isDigit := s.digit(r)
		if !isDigit {
			break
		}
		v = v*10 + d
		n++
		s.at += size
	}
	return v, n, n > 0
}

// match consumes the longest candidate that prefixes the text, ignoring
// case, and returns its index.
func (s *scanner) match(lists ...[]string) (int, bool) {
	best, bestLen := -1, 0
	rest := s.rest()
	for _, list := range lists {
		for i, cand := range list {
			if cand == "" || len(cand) <= bestLen || len(cand) > len(rest) {
				continue
			}
			if strings.EqualFold(rest[:len(cand)], cand) {
				best, bestLen = i, len(cand)
			}
		}
	}
	if best < 0 {
		return 0, false
	}
	s.at += bestLen
	return best, true
}

func (s *scanner) skipSpace() int {
	n := 0
	for s.at < len(s.text) {
		r, size := utf8.DecodeRuneInString(s.rest())
		if !unicode.IsSpace(r) {
			break
		}
		s.at += size
		n++
	}
	return n
}

// literal matches pattern text. Spaces in the pattern match any run of
// white space; a lenient scanner also accepts none and ignores case.
func (s *scanner) literal(lit string) bool {
	for _, r := range lit {
		if unicode.IsSpace(r) {
			if s.skipSpace() == 0 && !s.loose {
				return false
			}
			continue
		}
		got, size := utf8.DecodeRuneInString(s.rest())
		if size == 0 {
			return false
		}
		if got != r && !(s.loose && unicode.ToLower(got) == unicode.ToLower(r)) {
			if s.loose && unicode.IsPunct(r) {
				continue
			}
			return false
		}
		s.at += size
	}
	return true
}

// zone reads a zone offset: "Z", "GMT", "UTC", "GMT+3", "+05:30", "-0800".
func (s *scanner) zone() (int, bool) {
	rest := s.rest()
	if strings.HasPrefix(rest, "Z") {
		s.at++
		return 0, true
	}
	gmt := false
	for _, p := range []string{"GMT", "UTC", "UT"} {
		if strings.HasPrefix(rest, p) {
			s.at += len(p)
			gmt = true
			break
		}
	}
	rest = s.rest()
	if rest == "" || (rest[0] != '+' && rest[0] != '-') {
		return 0, gmt
	}
	sign := 1
	if rest[0] == '-' {
		sign = -1
	}
	s.at++
	start := s.at
	h, n, ok := s.number(2)
	if !ok {
		s.at = start - 1
		return 0, gmt
	}
	m := 0
	switch {
	case strings.HasPrefix(s.rest(), ":"):
		s.at++
		if m, _, ok = s.number(2); !ok {
			return 0, false
		}
	case n == 2:
		if v, k, ok := s.number(2); ok && k == 2 {
			m = v
		}
	}
	return sign * (h*3600 + m*60), true
}

// Parse reads a date at the index of pos (0 when pos is nil) and returns it
// in milliseconds since the epoch. On failure pos gets the error index.
func (f *Formatter) Parse(text string, pos *position.ParsePosition) (int64, error) {
	const op = "datefmt.Parse"
	if err := f.live(op); err != nil {
		return 0, err
	}
	return f.parse(op, f.cal.Get(), text, pos)
}

// ParseCalendar reads a date into cal, interpreting it in the zone of cal.
func (f *Formatter) ParseCalendar(cal *calendar.Calendar, text string, pos *position.ParsePosition) error {
	const op = "datefmt.ParseCalendar"
	if err := f.live(op); err != nil {
		return err
	}
	ms, err := f.parse(op, cal, text, pos)
	if err != nil {
		return err
	}
	return cal.SetMillis(ms)
}

// ParseObject implements format.Parser with a Date formattable.
func (f *Formatter) ParseObject(text string, pos *position.ParsePosition) (*formattable.Formattable, error) {
	ms, err := f.Parse(text, pos)
	if err != nil {
		return nil, err
	}
	return formattable.NewDate(ms), nil
}

func (f *Formatter) parse(op string, cal *calendar.Calendar, text string, pos *position.ParsePosition) (int64, error) {
	start := 0
	if pos != nil {
		var err error
		if start, err = pos.Index(); err != nil {
			return 0, err
		}
	}
	lenient, err := cal.Attribute(calendar.Lenient)
	if err != nil {
		return 0, err
	}
	now, err := cal.Time()
	if err != nil {
		return 0, err
	}
	at, ok := byteOffset(text, start)
	if !ok {
		return 0, f.parseFailed(op, pos, start)
	}
	s := &scanner{text: text[at:], base: start, zero: '0', loose: lenient != 0}
	if z, err := f.nf.Get().Symbol(numfmt.ZeroDigit); err == nil {
		if r, size := utf8.DecodeRuneInString(z); size == len(z) {
			s.zero = r
		}
	}

	p := parsed{year: 1970, day: 1}
	for i, it := range f.items {
		if it.letter == 0 {
			if !s.literal(it.lit) {
				return 0, f.parseFailed(op, pos, s.offset())
			}
			continue
		}
		limit := 0
		if i+1 < len(f.items) && f.items[i+1].numeric() && it.numeric() {
			limit = max(it.count, 1)
			if it.letter == 'y' && it.count <= 2 {
				limit = 2
			}
		}
		if !f.parseField(s, it, limit, &p) {
			return 0, f.parseFailed(op, pos, s.offset())
		}
	}

	t, ok := f.compose(p, now.Location(), lenient != 0)
	if !ok {
		return 0, f.parseFailed(op, pos, start)
	}
	if pos != nil {
		_ = pos.SetIndex(s.offset())
	}
	return t.UnixMilli(), nil
}

func (f *Formatter) parseFailed(op string, pos *position.ParsePosition, at int) error {
	if pos != nil {
		_ = pos.SetErrorIndex(at)
	}
	return status.New(op, status.Parse, ErrParse)
}

func byteOffset(text string, units int) (int, bool) {
	at, n := 0, 0
	for at < len(text) && n < units {
		r, size := utf8.DecodeRuneInString(text[at:])
		n += max(utf16.RuneLen(r), 1)
		at += size
	}
	return at, n == units
}

func (f *Formatter) parseField(s *scanner, it item, limit int, p *parsed) bool {
	if it.numeric() {
		if it.letter == 'S' {
			v, n, ok := s.number(limit)
			if !ok {
				return false
			}
			for ; n < 3; n++ {
				v *= 10
			}
			for ; n > 3; n-- {
				v /= 10
			}
			p.ms = v
			return true
		}
		v, n, ok := s.number(limit)
		if !ok {
			return false
		}
		switch it.letter {
		case 'y', 'Y', 'u', 'r', 'U':
			p.year = v
			p.twoDigitYear = it.letter == 'y' && it.count <= 2 && n == 2
		case 'M', 'L':
			p.month = v - 1
		case 'd':
			p.day = v
		case 'h', 'K':
			p.hour, p.hourLetter = v%12, it.letter
		case 'H':
			p.hour, p.hourLetter = v, 'H'
		case 'k':
			p.hour, p.hourLetter = v%24, 'H'
		case 'm':
			p.minute = v
		case 's':
			p.second = v
		case 'Q', 'q':
			if p.month == 0 && v >= 1 && v <= 4 {
				p.month = (v - 1) * 3
			}
		}
		return true
	}
	switch it.letter {
	case 'M', 'L':
		i, ok := s.match(f.data.Months, f.data.MonthsShort)
		p.month = i
		return ok
	case 'E', 'e', 'c':
		_, ok := s.match(f.data.Weekdays, f.data.WeekdaysShort)
		return ok
	case 'a', 'b', 'B':
		i, ok := s.match(f.data.AmPm)
		p.pm, p.hasPM = i == 1, ok
		return ok
	case 'G':
		i, ok := s.match(f.data.Eras)
		p.bc = ok && i == 0
		return ok
	case 'Q', 'q':
		if q, ok := s.match([]string{"Q1", "Q2", "Q3", "Q4"}, quarterOrdinals[:]); ok {
			p.month = q * 3
			return true
		}
		return false
	case 'V':
		rest := s.rest()
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			end = len(rest)
		}
		loc, err := time.LoadLocation(rest[:end])
		if err != nil || end == 0 {
			return false
		}
		s.at += end
		_, off := time.Date(p.year, time.Month(p.month+1), p.day, 12, 0, 0, 0, loc).Zone()
		p.offset, p.hasOffset = off, true
		return true
	case 'z', 'v':
		if off, ok := s.zone(); ok {
			p.offset, p.hasOffset = off, true
			return true
		}
		// Zone abbreviations of the calendar zone are accepted as is.
		rest := s.rest()
		end := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsLetter(r) })
		if end < 0 {
			end = len(rest)
		}
		s.at += end
		return end > 0
	}
	off, ok := s.zone()
	p.offset, p.hasOffset = off, ok
	return ok
}

// compose turns parsed fields into an instant. A strict parse rejects
// fields that do not read back unchanged.
func (f *Formatter) compose(p parsed, loc *time.Location, lenient bool) (time.Time, bool) {
	year := p.year
	if p.twoDigitYear {
		from := time.UnixMilli(f.yearFrom).In(loc).Year()
		year = from/100*100 + year
		if year < from {
			year += 100
		}
	}
	if p.bc {
		year = 1 - year
	}
	hour := p.hour
	if p.hasPM && p.pm && p.hourLetter != 'H' {
		hour += 12
	}
	zone := loc
	if p.hasOffset {
		zone = time.FixedZone("", p.offset)
	}
	t := time.Date(year, time.Month(p.month+1), p.day, hour, p.minute, p.second, p.ms*1e6, zone)
	if !lenient {
		if p.month < 0 || p.month > 11 || t.Day() != p.day || t.Hour() != hour ||
			t.Minute() != p.minute || t.Second() != p.second {
			return time.Time{}, false
		}
	}
	return t, true
}
