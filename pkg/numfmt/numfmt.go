// Package numfmt formats and parses numbers, percentages and currency
// amounts with locale symbols and ICU-style decimal patterns.
//
// Symbols, currency symbols and currency digits come from
// golang.org/x/text (number, message, currency); default patterns come from
// pkg/localedata. Patterns follow the ICU DecimalFormat syntax: "#,##0.00",
// "0.###E0", "@@#", "¤#,##0.00;(¤#,##0.00)".
package numfmt

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/intl/pkg/format"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/localedata"
	"github.com/dmitrymomot/intl/pkg/status"
)

// Kind is the handle kind of number formats.
const Kind = "number_format"

// Style selects the kind of format New opens.
type Style int

const (
	PatternDecimal Style = iota
	Decimal
	Currency
	Percent
	Scientific
	Spellout
	Ordinal
	Duration
	NumberingSystemStyle
	PatternRuleBased
	CurrencyISO
	CurrencyPlural
	CurrencyAccounting
	CashCurrency
	CompactShort
	CompactLong
	CurrencyStandard
)

// Attribute is a numeric setting of a format.
type Attribute int

const (
	ParseIntOnly Attribute = iota
	GroupingUsed
	DecimalAlwaysShown
	MaxIntegerDigits
	MinIntegerDigits
	IntegerDigits
	MaxFractionDigits
	MinFractionDigits
	FractionDigits
	Multiplier
	GroupingSize
	Rounding
	RoundingIncrement
	FormatWidth
	PaddingPosition
	SecondaryGroupingSize
	SignificantDigitsUsed
	MinSignificantDigits
	MaxSignificantDigits
	LenientParse
)

// TextAttribute is a textual setting of a format.
type TextAttribute int

const (
	PositivePrefix TextAttribute = iota
	PositiveSuffix
	NegativePrefix
	NegativeSuffix
	PaddingCharacter
	CurrencyCode
	DefaultRuleset
	PublicRulesets
)

// Fields reported through position.FieldPosition.
const (
	IntegerField = iota
	FractionField
	DecimalSeparatorField
	ExponentSymbolField
	ExponentSignField
	ExponentField
	GroupingSeparatorField
	CurrencyField
	PercentField
	PermillField
	SignField
)

var fallbackPatterns = localedata.NumberPatterns{
	Decimal:    "#,##0.###",
	Percent:    "#,##0%",
	Currency:   "¤#,##0.00",
	Scientific: "#E0",
}

var _ format.Parser = (*Formatter)(nil)

// Formatter is a number format. Not safe for concurrent use.
type Formatter struct {
	tag      language.Tag
	cur      currency.Unit
	id       string
	sym      symbols
	pat      pattern
	lc       handle.Lifecycle
	style    Style
	rounding RoundingMode
	digits   [10]rune

	parseIntOnly bool
	lenient      bool
	fracSet      bool
}

// New opens a format of style for the locale id ("" is the default
// locale). pat is required for PatternDecimal and ignored otherwise.
// Rule-based, compact and plural currency styles are NotSupported.
func New(style Style, pat, id string) (*Formatter, error) {
	const op = "numfmt.New"
	if style < PatternDecimal || style > CurrencyStandard {
		return nil, status.Invalid(op, "unknown style %d", style)
	}
	tag, err := locale.Resolve(id)
	if err != nil {
		return nil, err
	}
	f := &Formatter{
		tag:      tag,
		id:       locale.ID(tag),
		style:    style,
		sym:      symbolsFor(tag),
		cur:      currencyFor(tag),
		rounding: RoundHalfEven,
	}
	f.setCurrency(f.cur)
	f.setNumberingSystem(tag.TypeForKey("nu"))

	patterns := fallbackPatterns
	if d, err := localedata.Default().Lookup(f.id); err == nil {
		patterns = withFallback(d.Number)
	}
	var src string
	switch style {
	case PatternDecimal:
		if pat == "" {
			return nil, status.Invalid(op, "pattern required")
		}
		src = pat
		f.fracSet = true
	case Decimal:
		src = patterns.Decimal
	case Percent:
		src = patterns.Percent
	case Scientific:
		src = patterns.Scientific
	case Currency, CurrencyISO, CurrencyAccounting, CashCurrency, CurrencyStandard:
		src = patterns.Currency
	default:
		return nil, status.New(op, status.NotSupported, ErrUnsupportedStyle)
	}
	p, err := parsePattern(src)
	if err != nil {
		return nil, err
	}
	switch style {
	case CurrencyISO:
		for _, a := range []*affix{&p.posPrefix, &p.posSuffix, &p.negPrefix, &p.negSuffix} {
			*a = isoAffix(*a)
		}
	case CurrencyAccounting:
		if !p.hasNeg {
			p.negPrefix = append(affix{{kind: affixLiteral, text: "("}}, p.posPrefix...)
			p.negSuffix = append(append(affix{}, p.posSuffix...), affixPart{kind: affixLiteral, text: ")"})
			p.hasNeg = true
		}
	}
	f.pat = p
	f.applyCurrencyDigits(&f.pat, f.cur)
	f.lc.Open(Kind)
	return f, nil
}

func withFallback(n localedata.NumberPatterns) localedata.NumberPatterns {
	or := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return localedata.NumberPatterns{
		Decimal:    or(n.Decimal, fallbackPatterns.Decimal),
		Percent:    or(n.Percent, fallbackPatterns.Percent),
		Currency:   or(n.Currency, fallbackPatterns.Currency),
		Scientific: or(n.Scientific, fallbackPatterns.Scientific),
	}
}

func isoAffix(a affix) affix {
	out := make(affix, len(a))
	for i, part := range a {
		if part.kind == affixCurrency {
			part.kind = affixCurrencyISO
		}
		out[i] = part
	}
	return out
}

func (f *Formatter) setCurrency(u currency.Unit) {
	f.cur = u
	f.sym[CurrencySymbol] = currencySymbol(f.tag, u)
	f.sym[IntlCurrencySymbol] = u.String()
}

func (f *Formatter) setNumberingSystem(name string) {
	if digits, ok := digitsOf(name); ok {
		f.digits = digits
		f.sym[ZeroDigit] = string(digits[0])
		return
	}
	if name, ok := systemByZero(f.sym[ZeroDigit]); ok {
		f.digits, _ = digitsOf(name)
		return
	}
	f.digits, _ = digitsOf("latn")
}

func (f *Formatter) currencyStyle() bool {
	switch f.style {
	case Currency, CurrencyISO, CurrencyAccounting, CashCurrency, CurrencyStandard:
		return true
	}
	return false
}

// applyCurrencyDigits sets the fraction digits of currency styles to those
// of u unless the caller chose them.
func (f *Formatter) applyCurrencyDigits(p *pattern, u currency.Unit) {
	if !f.currencyStyle() || f.fracSet {
		return
	}
	kind := currency.Standard
	if f.style == CashCurrency {
		kind = currency.Cash
	}
	scale, _ := kind.Rounding(u)
	p.minFrac, p.maxFrac = scale, scale
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

// Style returns the style the format was opened with.
func (f *Formatter) Style() Style { return f.style }

// Clone returns an independent copy.
func (f *Formatter) Clone() (*Formatter, error) {
	if err := f.live("numfmt.Clone"); err != nil {
		return nil, err
	}
	out := *f
	out.lc = handle.Lifecycle{}
	out.lc.Open(Kind)
	return &out, nil
}

// CloneFormat implements format.Formatter.
func (f *Formatter) CloneFormat() (format.Formatter, error) {
	out, err := f.Clone()
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *Formatter) Close() error {
	if f == nil {
		return handle.Nil("numfmt.Close")
	}
	return f.lc.Release("numfmt.Close")
}

// Pattern returns the pattern of the format.
func (f *Formatter) Pattern() (string, error) {
	if err := f.live("numfmt.Pattern"); err != nil {
		return "", err
	}
	return f.pat.String(), nil
}

// LocalizedPattern returns the pattern with the locale symbols in place of
// the pattern characters.
func (f *Formatter) LocalizedPattern() (string, error) {
	if err := f.live("numfmt.LocalizedPattern"); err != nil {
		return "", err
	}
	return f.localizer(false).Replace(f.pat.String()), nil
}

// ApplyPattern replaces the pattern. A localized pattern uses the locale
// symbols. The fraction digits of the pattern override currency digits.
func (f *Formatter) ApplyPattern(pat string, localized bool) error {
	if err := f.live("numfmt.ApplyPattern"); err != nil {
		return err
	}
	if localized {
		pat = f.localizer(true).Replace(pat)
	}
	p, err := parsePattern(pat)
	if err != nil {
		return err
	}
	f.pat = p
	f.fracSet = true
	return nil
}

// localizer maps pattern characters to locale symbols, or back when
// reverse is set.
func (f *Formatter) localizer(reverse bool) *strings.Replacer {
	pairs := []string{
		".", f.sym[DecimalSeparator],
		",", f.sym[GroupingSeparator],
		";", f.sym[PatternSeparator],
		"%", f.sym[PercentSymbol],
		"‰", f.sym[PermillSymbol],
		"-", f.sym[MinusSign],
		"E", f.sym[ExponentialSymbol],
	}
	for i, r := range f.digits {
		pairs = append(pairs, string(rune('0'+i)), string(r))
	}
	if reverse {
		for i := 0; i < len(pairs); i += 2 {
			pairs[i], pairs[i+1] = pairs[i+1], pairs[i]
		}
	}
	return strings.NewReplacer(pairs...)
}

// Symbol returns a symbol of the format.
func (f *Formatter) Symbol(s Symbol) (string, error) {
	if err := f.live("numfmt.Symbol"); err != nil {
		return "", err
	}
	if s < 0 || s >= symbolCount {
		return "", status.New("numfmt.Symbol", status.InvalidParameter, ErrInvalidSymbol)
	}
	return f.sym[s], nil
}

// SetSymbol overrides a symbol. Setting the zero digit switches all ten
// digits to the run starting at it.
func (f *Formatter) SetSymbol(s Symbol, v string) error {
	const op = "numfmt.SetSymbol"
	if err := f.live(op); err != nil {
		return err
	}
	if s < 0 || s >= symbolCount {
		return status.New(op, status.InvalidParameter, ErrInvalidSymbol)
	}
	if s == ZeroDigit {
		r, size := utf8.DecodeRuneInString(v)
		if size == 0 || size != len(v) {
			return status.Invalid(op, "zero digit must be one character")
		}
		for i := range f.digits {
			f.digits[i] = r + rune(i)
		}
	}
	f.sym[s] = v
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Attribute returns a numeric setting.
func (f *Formatter) Attribute(a Attribute) (int, error) {
	const op = "numfmt.Attribute"
	if err := f.live(op); err != nil {
		return 0, err
	}
	p := &f.pat
	switch a {
	case ParseIntOnly:
		return boolInt(f.parseIntOnly), nil
	case GroupingUsed:
		return boolInt(p.groupingUsed), nil
	case DecimalAlwaysShown:
		return boolInt(p.decimalShown), nil
	case MaxIntegerDigits:
		return p.maxInt, nil
	case MinIntegerDigits, IntegerDigits:
		return p.minInt, nil
	case MaxFractionDigits:
		return p.maxFrac, nil
	case MinFractionDigits, FractionDigits:
		return p.minFrac, nil
	case Multiplier:
		return p.multiplier, nil
	case GroupingSize:
		return p.grouping, nil
	case SecondaryGroupingSize:
		return p.grouping2, nil
	case Rounding:
		return int(f.rounding), nil
	case SignificantDigitsUsed:
		return boolInt(p.sigUsed), nil
	case MinSignificantDigits:
		return p.minSig, nil
	case MaxSignificantDigits:
		return p.maxSig, nil
	case LenientParse:
		return boolInt(f.lenient), nil
	case RoundingIncrement, FormatWidth, PaddingPosition:
		return 0, status.New(op, status.NotSupported, ErrInvalidAttribute)
	}
	return 0, status.New(op, status.InvalidParameter, ErrInvalidAttribute)
}

// SetAttribute changes a numeric setting. Digit limits keep min <= max by
// moving the other bound.
func (f *Formatter) SetAttribute(a Attribute, v int) error {
	const op = "numfmt.SetAttribute"
	if err := f.live(op); err != nil {
		return err
	}
	p := &f.pat
	switch a {
	case ParseIntOnly:
		f.parseIntOnly = v != 0
		return nil
	case GroupingUsed:
		p.groupingUsed = v != 0
		if p.groupingUsed && p.grouping == 0 {
			p.grouping = 3
		}
		return nil
	case DecimalAlwaysShown:
		p.decimalShown = v != 0
		return nil
	case LenientParse:
		f.lenient = v != 0
		return nil
	case SignificantDigitsUsed:
		p.sigUsed = v != 0
		if p.sigUsed && p.maxSig == 0 {
			p.minSig, p.maxSig = 1, 6
		}
		return nil
	case Rounding:
		if v < int(RoundCeiling) || v > int(RoundUnnecessary) {
			return status.New(op, status.InvalidParameter, ErrAttributeValue)
		}
		f.rounding = RoundingMode(v)
		return nil
	case Multiplier:
		if v == 0 {
			return status.New(op, status.InvalidParameter, ErrAttributeValue)
		}
		p.multiplier = v
		return nil
	case RoundingIncrement, FormatWidth, PaddingPosition:
		return status.New(op, status.NotSupported, ErrInvalidAttribute)
	}
	if v < 0 {
		return status.New(op, status.InvalidParameter, ErrAttributeValue)
	}
	switch a {
	case MaxIntegerDigits:
		p.maxInt, p.minInt = v, min(p.minInt, v)
	case MinIntegerDigits:
		p.minInt, p.maxInt = v, max(p.maxInt, v)
	case IntegerDigits:
		p.minInt, p.maxInt = v, v
	case MaxFractionDigits:
		p.maxFrac, p.minFrac = v, min(p.minFrac, v)
		f.fracSet = true
	case MinFractionDigits:
		p.minFrac, p.maxFrac = v, max(p.maxFrac, v)
		f.fracSet = true
	case FractionDigits:
		p.minFrac, p.maxFrac = v, v
		f.fracSet = true
	case GroupingSize:
		p.grouping = v
	case SecondaryGroupingSize:
		p.grouping2 = v
	case MinSignificantDigits:
		if v == 0 {
			return status.New(op, status.InvalidParameter, ErrAttributeValue)
		}
		p.minSig, p.maxSig = v, max(p.maxSig, v)
	case MaxSignificantDigits:
		if v == 0 {
			return status.New(op, status.InvalidParameter, ErrAttributeValue)
		}
		p.maxSig, p.minSig = v, min(p.minSig, v)
	default:
		return status.New(op, status.InvalidParameter, ErrInvalidAttribute)
	}
	return nil
}

// TextAttribute returns an affix as it is rendered, or the ISO code of the
// format currency.
func (f *Formatter) TextAttribute(a TextAttribute) (string, error) {
	const op = "numfmt.TextAttribute"
	if err := f.live(op); err != nil {
		return "", err
	}
	switch a {
	case PositivePrefix:
		return f.affixText(f.pat.posPrefix, f.cur), nil
	case PositiveSuffix:
		return f.affixText(f.pat.posSuffix, f.cur), nil
	case NegativePrefix:
		return f.affixText(f.pat.negPrefix, f.cur), nil
	case NegativeSuffix:
		return f.affixText(f.pat.negSuffix, f.cur), nil
	case CurrencyCode:
		return f.cur.String(), nil
	case PaddingCharacter, DefaultRuleset, PublicRulesets:
		return "", status.New(op, status.NotSupported, ErrInvalidAttribute)
	}
	return "", status.New(op, status.InvalidParameter, ErrInvalidAttribute)
}

// SetTextAttribute sets an affix to literal text, or the format currency by
// ISO code.
func (f *Formatter) SetTextAttribute(a TextAttribute, v string) error {
	const op = "numfmt.SetTextAttribute"
	if err := f.live(op); err != nil {
		return err
	}
	switch a {
	case PositivePrefix:
		f.pat.posPrefix = literal(v)
	case PositiveSuffix:
		f.pat.posSuffix = literal(v)
	case NegativePrefix:
		f.pat.negPrefix = literal(v)
	case NegativeSuffix:
		f.pat.negSuffix = literal(v)
	case CurrencyCode:
		u, err := currency.ParseISO(strings.ToUpper(v))
		if err != nil {
			return status.New(op, status.InvalidParameter, ErrUnknownCurrency)
		}
		f.setCurrency(u)
		f.applyCurrencyDigits(&f.pat, u)
	case PaddingCharacter, DefaultRuleset, PublicRulesets:
		return status.New(op, status.NotSupported, ErrInvalidAttribute)
	default:
		return status.New(op, status.InvalidParameter, ErrInvalidAttribute)
	}
	return nil
}
