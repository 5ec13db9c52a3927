// Package localedata supplies per-locale date and time patterns and symbols:
// the CLDR subset that golang.org/x/text does not ship.
//
// A Registry starts from the embedded predefined set and can be overlaid with
// YAML or JSON files. Lookups walk the ICU fallback chain (de_AT, de, root)
// and merge fields, so an override file only needs the fields it changes.
package localedata

import (
	"maps"
	"slices"

	"github.com/dmitrymomot/intl/pkg/status"
)

// Style selects one of the four predefined pattern lengths.
type Style int

const (
	None   Style = -1
	Full   Style = 0
	Long   Style = 1
	Medium Style = 2
	Short  Style = 3

	DefaultStyle = Medium
)

func (s Style) String() string {
	switch s {
	case None:
		return "none"
	case Full:
		return "full"
	case Long:
		return "long"
	case Medium:
		return "medium"
	case Short:
		return "short"
	}
	return "invalid"
}

// Styles holds one pattern per style.
type Styles struct {
	Full   string `yaml:"full" json:"full"`
	Long   string `yaml:"long" json:"long"`
	Medium string `yaml:"medium" json:"medium"`
	Short  string `yaml:"short" json:"short"`
}

// Get returns the pattern for style. None yields "".
func (s Styles) Get(style Style) (string, error) {
	switch style {
	case None:
		return "", nil
	case Full:
		return s.Full, nil
	case Long:
		return s.Long, nil
	case Medium:
		return s.Medium, nil
	case Short:
		return s.Short, nil
	}
	return "", status.New("localedata.Styles.Get", status.InvalidParameter, ErrInvalidStyle)
}

func (s Styles) merge(parent Styles) Styles {
	return Styles{
		Full:   or(s.Full, parent.Full),
		Long:   or(s.Long, parent.Long),
		Medium: or(s.Medium, parent.Medium),
		Short:  or(s.Short, parent.Short),
	}
}

// NumberPatterns holds the number format patterns of a locale.
type NumberPatterns struct {
	Decimal    string `yaml:"decimal" json:"decimal"`
	Percent    string `yaml:"percent" json:"percent"`
	Currency   string `yaml:"currency" json:"currency"`
	Scientific string `yaml:"scientific" json:"scientific"`
}

func (n NumberPatterns) merge(parent NumberPatterns) NumberPatterns {
	return NumberPatterns{
		Decimal:    or(n.Decimal, parent.Decimal),
		Percent:    or(n.Percent, parent.Percent),
		Currency:   or(n.Currency, parent.Currency),
		Scientific: or(n.Scientific, parent.Scientific),
	}
}

// Data is the date, time and number pattern data of one locale.
type Data struct {
	Skeletons     map[string]string `yaml:"skeletons" json:"skeletons"`
	Number        NumberPatterns    `yaml:"number" json:"number"`
	Date          Styles            `yaml:"date" json:"date"`
	Time          Styles            `yaml:"time" json:"time"`
	DateTime      string            `yaml:"datetime" json:"datetime"`
	Months        []string          `yaml:"months" json:"months"`
	MonthsShort   []string          `yaml:"months_short" json:"months_short"`
	Weekdays      []string          `yaml:"weekdays" json:"weekdays"`
	WeekdaysShort []string          `yaml:"weekdays_short" json:"weekdays_short"`
	AmPm          []string          `yaml:"am_pm" json:"am_pm"`
	Eras          []string          `yaml:"eras" json:"eras"`
	// FirstDay is the first day of the week, 1 = Sunday through 7 = Saturday.
	FirstDay int `yaml:"first_day" json:"first_day"`
	// MinDays is the minimal number of days in the first week of a year.
	MinDays int `yaml:"min_days" json:"min_days"`
}

// DateTimePattern combines a date and a time pattern with the locale glue.
func (d Data) DateTimePattern(date, time string) string {
	switch {
	case date == "":
		return time
	case time == "":
		return date
	}
	glue := or(d.DateTime, "{1} {0}")
	out := make([]byte, 0, len(glue)+len(date)+len(time))
	for i := 0; i < len(glue); i++ {
		if i+2 < len(glue) && glue[i] == '{' && glue[i+2] == '}' {
			switch glue[i+1] {
			case '0':
				out = append(out, time...)
				i += 2
				continue
			case '1':
				out = append(out, date...)
				i += 2
				continue
			}
		}
		out = append(out, glue[i])
	}
	return string(out)
}

// merge returns d with every unset field taken from parent.
func (d Data) merge(parent Data) Data {
	out := Data{
		Date:          d.Date.merge(parent.Date),
		Time:          d.Time.merge(parent.Time),
		Number:        d.Number.merge(parent.Number),
		DateTime:      or(d.DateTime, parent.DateTime),
		Months:        orSlice(d.Months, parent.Months),
		MonthsShort:   orSlice(d.MonthsShort, parent.MonthsShort),
		Weekdays:      orSlice(d.Weekdays, parent.Weekdays),
		WeekdaysShort: orSlice(d.WeekdaysShort, parent.WeekdaysShort),
		AmPm:          orSlice(d.AmPm, parent.AmPm),
		Eras:          orSlice(d.Eras, parent.Eras),
		FirstDay:      d.FirstDay,
		MinDays:       d.MinDays,
	}
	if out.FirstDay == 0 {
		out.FirstDay = parent.FirstDay
	}
	if out.MinDays == 0 {
		out.MinDays = parent.MinDays
	}
	out.Skeletons = maps.Clone(parent.Skeletons)
	if out.Skeletons == nil {
		out.Skeletons = make(map[string]string, len(d.Skeletons))
	}
	maps.Copy(out.Skeletons, d.Skeletons)
	return out
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func orSlice(v, fallback []string) []string {
	if len(v) > 0 {
		return slices.Clone(v)
	}
	return slices.Clone(fallback)
}
