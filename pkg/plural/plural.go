// Package plural selects CLDR plural keywords through
// golang.org/x/text/feature/plural.
package plural

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/intl/pkg/enum"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/status"
)

// Kind is the handle kind of plural rules.
const Kind = "plural_rules"

// Keywords in CLDR order.
const (
	Zero  = "zero"
	One   = "one"
	Two   = "two"
	Few   = "few"
	Many  = "many"
	Other = "other"
)

var ErrInvalidNumber = errors.New("plural: invalid decimal number")

// Type selects cardinal (1 file, 2 files) or ordinal (1st, 2nd) rules.
type Type int

const (
	Cardinal Type = iota
	Ordinal
)

// Rules selects plural keywords for one locale. Not safe for concurrent use.
type Rules struct {
	rules *plural.Rules
	tag   language.Tag
	id    string
	lc    handle.Lifecycle
	typ   Type
}

// New opens the rules of typ for the locale id ("" is the default locale).
func New(id string, typ Type) (*Rules, error) {
	tag, err := locale.Resolve(id)
	if err != nil {
		return nil, err
	}
	r := &Rules{tag: tag, id: locale.ID(tag), typ: typ}
	switch typ {
	case Cardinal:
		r.rules = plural.Cardinal
	case Ordinal:
		r.rules = plural.Ordinal
	default:
		return nil, status.Invalid("plural.New", "unknown rule type %d", typ)
	}
	r.lc.Open(Kind)
	return r, nil
}

func (r *Rules) live(op string) error {
	if r == nil {
		return handle.Nil(op)
	}
	return r.lc.Check(op)
}

// Locale returns the canonical ID the rules were opened for.
func (r *Rules) Locale() string { return r.id }

func (r *Rules) Type() Type { return r.typ }

// SelectInt returns the keyword for an integer.
func (r *Rules) SelectInt(n int64) (string, error) {
	if err := r.live("plural.SelectInt"); err != nil {
		return "", err
	}
	return r.match(operandsFor(strconv.FormatInt(n, 10))), nil
}

// Select returns the keyword for n written with its shortest representation,
// so 1.5 has one visible fraction digit.
func (r *Rules) Select(n float64) (string, error) {
	if err := r.live("plural.Select"); err != nil {
		return "", err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return Other, nil
	}
	return r.match(operandsFor(strconv.FormatFloat(n, 'f', -1, 64))), nil
}

// SelectDecimal returns the keyword for a decimal string. Trailing zeros are
// significant: "1" is one in English, "1.0" is other.
func (r *Rules) SelectDecimal(s string) (string, error) {
	if err := r.live("plural.SelectDecimal"); err != nil {
		return "", err
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return "", status.New("plural.SelectDecimal", status.InvalidParameter, ErrInvalidNumber)
	}
	return r.match(operandsFor(s)), nil
}

func (r *Rules) match(op operands) string {
	return keyword(r.rules.MatchPlural(r.tag, op.i, op.v, op.w, op.f, op.t))
}

// Keywords returns the keywords the locale uses, in CLDR order.
func (r *Rules) Keywords() ([]string, error) {
	if err := r.live("plural.Keywords"); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, 6)
	for i := range 1000 {
		seen[r.match(operandsFor(strconv.Itoa(i)))] = true
	}
	for _, s := range []string{"0.0", "0.1", "0.5", "1.0", "1.5", "2.0", "2.5", "3.5", "0.01", "1.01", "10.0", "1000000"} {
		seen[r.match(operandsFor(s))] = true
	}
	out := make([]string, 0, len(seen))
	for _, k := range []string{Zero, One, Two, Few, Many, Other} {
		if seen[k] {
			out = append(out, k)
		}
	}
	return out, nil
}

// OpenKeywords enumerates Keywords.
func (r *Rules) OpenKeywords() (*enum.Enumeration, error) {
	kws, err := r.Keywords()
	if err != nil {
		return nil, err
	}
	return enum.FromStrings(kws...), nil
}

// Clone returns independent rules for the same locale and type.
func (r *Rules) Clone() (*Rules, error) {
	if err := r.live("plural.Clone"); err != nil {
		return nil, err
	}
	c := &Rules{rules: r.rules, tag: r.tag, id: r.id, typ: r.typ}
	c.lc.Open(Kind)
	return c, nil
}

func (r *Rules) Close() error {
	if r == nil {
		return handle.Nil("plural.Close")
	}
	return r.lc.Release("plural.Close")
}

func keyword(f plural.Form) string {
	switch f {
	case plural.Zero:
		return Zero
	case plural.One:
		return One
	case plural.Two:
		return Two
	case plural.Few:
		return Few
	case plural.Many:
		return Many
	}
	return Other
}

// operands are the CLDR plural operands of a decimal: integer digits i,
// visible fraction digit count v and value f, and the same without trailing
// zeros w and t.
type operands struct {
	i, v, w, f, t int
}

func operandsFor(s string) operands {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	intPart, frac, _ := strings.Cut(s, ".")
	var op operands
	op.i = reduce(intPart)
	op.v = len(frac)
	op.f = reduce(frac)
	trimmed := strings.TrimRight(frac, "0")
	op.w = len(trimmed)
	op.t = reduce(trimmed)
	return op
}

// reduce parses a digit string, folding values past a million while keeping
// the low digits the rules test.
func reduce(digits string) int {
	if digits == "" {
		return 0
	}
	if len(digits) > 9 {
		n, _ := strconv.Atoi(digits[len(digits)-6:])
		return n + 1_000_000
	}
	n, _ := strconv.Atoi(digits)
	return n
}
