package numfmt

import (
	"context"
	"math"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/dmitrymomot/intl/pkg/cache"
)

// Symbol identifies a number format symbol.
type Symbol int

const (
	DecimalSeparator Symbol = iota
	GroupingSeparator
	PatternSeparator
	PercentSymbol
	ZeroDigit
	DigitSymbol
	MinusSign
	PlusSign
	CurrencySymbol
	IntlCurrencySymbol
	MonetarySeparator
	ExponentialSymbol
	PermillSymbol
	PadEscape
	InfinitySymbol
	NaNSymbol
	SignificantDigitSymbol
	MonetaryGroupingSeparator

	symbolCount
)

type symbols [symbolCount]string

// localeSymbols are read back from golang.org/x/text/number output, which
// formats with CLDR symbols but does not export them. The exponent symbol
// stays "E": x/text only renders exponents in superscript form.
var localeSymbols = cache.NewMemory[symbols](cache.WithCleanupInterval(0), cache.WithMaxEntries(256))

func symbolsFor(tag language.Tag) symbols {
	s, err := localeSymbols.GetOrSet(context.Background(), tag.String(),
		func(context.Context) (symbols, time.Duration, error) {
			return readSymbols(tag), -1, nil
		})
	if err != nil {
		return readSymbols(tag)
	}
	return s
}

func readSymbols(tag language.Tag) symbols {
	p := message.NewPrinter(tag)
	s := symbols{
		DecimalSeparator:       ".",
		GroupingSeparator:      ",",
		PatternSeparator:       ";",
		PercentSymbol:          "%",
		ZeroDigit:              "0",
		DigitSymbol:            "#",
		MinusSign:              "-",
		PlusSign:               "+",
		ExponentialSymbol:      "E",
		PermillSymbol:          "‰",
		PadEscape:              "*",
		InfinitySymbol:         "∞",
		NaNSymbol:              "NaN",
		SignificantDigitSymbol: "@",
	}

	if zero := []rune(p.Sprint(number.Decimal(0))); len(zero) == 1 && unicode.IsDigit(zero[0]) {
		s[ZeroDigit] = string(zero)
	}
	if runs := separators(p.Sprint(number.Decimal(12345678.5))); len(runs) >= 2 {
		s[GroupingSeparator] = runs[0]
		s[DecimalSeparator] = runs[len(runs)-1]
	} else if len(runs) == 1 {
		s[DecimalSeparator] = runs[0]
	}
	if neg := p.Sprint(number.Decimal(-5)); !strings.HasPrefix(neg, "5") {
		if i := strings.IndexFunc(neg, unicode.IsDigit); i > 0 {
			s[MinusSign] = neg[:i]
		}
	}
	if sym := symbolOf(p.Sprint(number.Percent(0.05))); sym != "" {
		s[PercentSymbol] = sym
	}
	if sym := symbolOf(p.Sprint(number.PerMille(0.005))); sym != "" {
		s[PermillSymbol] = sym
	}
	if sym := p.Sprint(number.Decimal(math.Inf(1))); sym != "" && !strings.ContainsFunc(sym, unicode.IsDigit) {
		s[InfinitySymbol] = sym
	}
	if sym := p.Sprint(number.Decimal(math.NaN())); sym != "" && !strings.ContainsFunc(sym, unicode.IsDigit) {
		s[NaNSymbol] = sym
	}
	s[MonetarySeparator] = s[DecimalSeparator]
	s[MonetaryGroupingSeparator] = s[GroupingSeparator]
	return s
}

// separators returns the runs of non-digit runes between digits.
func separators(s string) []string {
	var (
		runs []string
		cur  strings.Builder
		seen bool
	)
	for _, r := range s {
		if unicode.IsDigit(r) {
			if seen && cur.Len() > 0 {
				runs = append(runs, cur.String())
			}
			cur.Reset()
			seen = true
			continue
		}
		if seen {
			cur.WriteRune(r)
		}
	}
	return runs
}

// symbolOf strips digits and spacing from formatted output.
func symbolOf(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.Is(unicode.Bidi_Control, r)
	})
}

// currencyFor returns the currency of a locale: its "cu" keyword or the
// currency of its region.
func currencyFor(tag language.Tag) currency.Unit {
	if code := tag.TypeForKey("cu"); code != "" {
		if u, err := currency.ParseISO(strings.ToUpper(code)); err == nil {
			return u
		}
	}
	if u, conf := currency.FromTag(tag); conf != language.No {
		return u
	}
	return currency.XXX
}

func currencySymbol(tag language.Tag, u currency.Unit) string {
	if u == currency.XXX {
		return "¤"
	}
	return message.NewPrinter(tag).Sprint(currency.Symbol(u))
}
