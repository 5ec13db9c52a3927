package patterngen

import (
	"strings"

	"github.com/dmitrymomot/intl/pkg/status"
)

// group is a kind of calendar field; a skeleton holds at most one letter
// run per group.
type group int

const (
	groupEra group = iota
	groupYear
	groupQuarter
	groupMonth
	groupWeek
	groupWeekOfMonth
	groupWeekday
	groupDayOfYear
	groupDayOfWeekInMonth
	groupDay
	groupJulianDay
	groupDayPeriod
	groupHour
	groupMinute
	groupSecond
	groupFraction
	groupMillisInDay
	groupZone

	groupCount
)

// firstTimeGroup splits date groups from time groups.
const firstTimeGroup = groupDayPeriod

var letterGroups = map[rune]group{
	'G': groupEra,
	'y': groupYear, 'Y': groupYear, 'u': groupYear, 'U': groupYear, 'r': groupYear,
	'Q': groupQuarter, 'q': groupQuarter,
	'M': groupMonth, 'L': groupMonth,
	'w': groupWeek, 'W': groupWeekOfMonth,
	'E': groupWeekday, 'e': groupWeekday, 'c': groupWeekday,
	'D': groupDayOfYear, 'F': groupDayOfWeekInMonth, 'd': groupDay, 'g': groupJulianDay,
	'a': groupDayPeriod, 'b': groupDayPeriod, 'B': groupDayPeriod,
	'h': groupHour, 'H': groupHour, 'K': groupHour, 'k': groupHour,
	'j': groupHour, 'J': groupHour, 'C': groupHour,
	'm': groupMinute, 's': groupSecond, 'S': groupFraction, 'A': groupMillisInDay,
	'z': groupZone, 'Z': groupZone, 'O': groupZone, 'v': groupZone, 'V': groupZone,
	'X': groupZone, 'x': groupZone,
}

type field struct {
	letter rune
	count  int
}

func (f field) text() bool {
	switch f.letter {
	case 'M', 'L', 'Q', 'q', 'e', 'c':
		return f.count >= 3
	case 'G', 'E', 'a', 'b', 'B', 'z', 'Z', 'O', 'v', 'V', 'X', 'x':
		return true
	}
	return false
}

func (f field) String() string { return strings.Repeat(string(f.letter), f.count) }

// skeleton is the set of fields of a pattern in canonical order.
type skeleton [groupCount]field

func (s skeleton) String() string {
	var b strings.Builder
	for _, f := range s {
		if f.count > 0 {
			b.WriteString(f.String())
		}
	}
	return b.String()
}

func (s skeleton) empty() bool { return s == skeleton{} }

// base drops the widths of numeric fields, keeping the text forms apart.
func (s skeleton) base() skeleton {
	var out skeleton
	for g, f := range s {
		if f.count == 0 {
			continue
		}
		switch {
		case group(g) == groupMonth || group(g) == groupQuarter:
			if f.count < 3 {
				f.count = 1
			}
		default:
			f.count = 1
		}
		out[g] = f
	}
	return out
}

func (s skeleton) split() (date, time skeleton) {
	for g, f := range s {
		if group(g) < firstTimeGroup {
			date[g] = f
		} else {
			time[g] = f
		}
	}
	return date, time
}

// token is a letter run or raw literal text, quotes included.
type token struct {
	raw   string
	field field
}

// tokenize splits a pattern, keeping literals byte for byte.
func tokenize(op, pattern string) ([]token, error) {
	var (
		tokens []token
		lit    strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, token{raw: lit.String()})
			lit.Reset()
		}
	}
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\'':
			lit.WriteRune(r)
			closed := false
			for i++; i < len(runes); i++ {
				lit.WriteRune(runes[i])
				if runes[i] == '\'' {
					closed = true
					break
				}
			}
			if !closed {
				return nil, status.New(op, status.PatternSyntax, ErrUnterminatedQuote)
			}
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			if _, ok := letterGroups[r]; !ok {
				return nil, status.New(op, status.InvalidFormat, ErrUnknownLetter)
			}
			flush()
			n := 1
			for i+1 < len(runes) && runes[i+1] == r {
				n++
				i++
			}
			tokens = append(tokens, token{field: field{letter: r, count: n}})
		default:
			lit.WriteRune(r)
		}
	}
	flush()
	return tokens, nil
}

func render(tokens []token) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.field.count > 0 {
			b.WriteString(t.field.String())
		} else {
			b.WriteString(t.raw)
		}
	}
	return b.String()
}

// skeletonOf collects the fields of tokens. Standalone letters fold into
// their format forms; the first run of a group wins.
func skeletonOf(tokens []token) skeleton {
	var s skeleton
	for _, t := range tokens {
		f := t.field
		if f.count == 0 {
			continue
		}
		switch f.letter {
		case 'L':
			f.letter = 'M'
		case 'c':
			f.letter = 'e'
		case 'q':
			f.letter = 'Q'
		}
		g := letterGroups[f.letter]
		if s[g].count == 0 {
			s[g] = f
		}
	}
	return s
}

func parseSkeleton(op, src string) (skeleton, error) {
	tokens, err := tokenize(op, src)
	if err != nil {
		return skeleton{}, err
	}
	return skeletonOf(tokens), nil
}

const (
	extraField   = 0x10000
	missingField = 0x1000
	mismatch     = 0x100
)

// distance scores how well a stored skeleton serves a request; missing
// fields can be appended later, extra fields cannot be removed.
func distance(want, have skeleton) (d int, missing skeleton) {
	for g := range want {
		w, h := want[g], have[g]
		switch {
		case w.count == 0 && h.count == 0:
		case w.count == 0:
			d += extraField
		case h.count == 0:
			d += missingField
			missing[g] = w
		default:
			if w.letter != h.letter || w.text() != h.text() {
				d += mismatch
			}
			d += abs(w.count - h.count)
		}
	}
	return d, missing
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
