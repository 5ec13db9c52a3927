package datefmt

import (
	"strings"

	"github.com/dmitrymomot/intl/pkg/status"
)

// Fields reported through position.FieldPosition, one per pattern letter.
const (
	EraField = iota
	YearField
	MonthField
	DateField
	HourOfDay1Field
	HourOfDay0Field
	MinuteField
	SecondField
	FractionalSecondField
	DayOfWeekField
	DayOfYearField
	DayOfWeekInMonthField
	WeekOfYearField
	WeekOfMonthField
	AmPmField
	Hour1Field
	Hour0Field
	TimezoneField
	YearWOYField
	DOWLocalField
	ExtendedYearField
	JulianDayField
	MillisecondsInDayField
	TimezoneRFCField
	TimezoneGenericField
	StandaloneDayField
	StandaloneMonthField
	QuarterField
	StandaloneQuarterField
	TimezoneSpecialField
	YearNameField
	TimezoneLocalizedGMTField
	TimezoneISOField
	TimezoneISOLocalField
	RelatedYearField
	AmPmMidnightNoonField
	FlexibleDayPeriodField
)

var letterFields = map[rune]int{
	'G': EraField, 'y': YearField, 'M': MonthField, 'd': DateField,
	'k': HourOfDay1Field, 'H': HourOfDay0Field, 'm': MinuteField,
	's': SecondField, 'S': FractionalSecondField, 'E': DayOfWeekField,
	'D': DayOfYearField, 'F': DayOfWeekInMonthField, 'w': WeekOfYearField,
	'W': WeekOfMonthField, 'a': AmPmField, 'h': Hour1Field, 'K': Hour0Field,
	'z': TimezoneField, 'Y': YearWOYField, 'e': DOWLocalField,
	'u': ExtendedYearField, 'g': JulianDayField, 'A': MillisecondsInDayField,
	'Z': TimezoneRFCField, 'v': TimezoneGenericField, 'c': StandaloneDayField,
	'L': StandaloneMonthField, 'Q': QuarterField, 'q': StandaloneQuarterField,
	'V': TimezoneSpecialField, 'U': YearNameField,
	'O': TimezoneLocalizedGMTField, 'X': TimezoneISOField,
	'x': TimezoneISOLocalField, 'r': RelatedYearField,
	'b': AmPmMidnightNoonField, 'B': FlexibleDayPeriodField,
}

// item is a run of one pattern letter, or literal text when letter is 0.
type item struct {
	lit    string
	letter rune
	count  int
}

// numeric reports whether the item renders as digits.
func (it item) numeric() bool {
	switch it.letter {
	case 0, 'G', 'E', 'a', 'b', 'B', 'z', 'Z', 'v', 'V', 'O', 'X', 'x':
		return false
	case 'M', 'L', 'Q', 'q', 'e', 'c':
		return it.count <= 2
	}
	return true
}

func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

// compile splits a pattern into letter runs and literals. Quoted text is
// literal and a doubled quote stands for one quote.
func compile(pattern string) ([]item, error) {
	const op = "datefmt.ApplyPattern"
	var (
		items []item
		lit   strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			items = append(items, item{lit: lit.String()})
			lit.Reset()
		}
	}
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\'':
			if i+1 < len(runes) && runes[i+1] == '\'' {
				lit.WriteRune('\'')
				i++
				continue
			}
			closed := false
			for i++; i < len(runes); i++ {
				if runes[i] == '\'' {
					if i+1 < len(runes) && runes[i+1] == '\'' {
						lit.WriteRune('\'')
						i++
						continue
					}
					closed = true
					break
				}
				lit.WriteRune(runes[i])
			}
			if !closed {
				return nil, status.New(op, status.PatternSyntax, ErrUnterminatedQuote)
			}
		case isLetter(r):
			if _, ok := letterFields[r]; !ok {
				return nil, status.New(op, status.InvalidFormat, ErrUnknownLetter)
			}
			flush()
			n := 1
			for i+1 < len(runes) && runes[i+1] == r {
				n++
				i++
			}
			items = append(items, item{letter: r, count: n})
		default:
			lit.WriteRune(r)
		}
	}
	flush()
	return items, nil
}
