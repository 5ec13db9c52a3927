package numfmt

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/currency"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/formattable"
	"github.com/dmitrymomot/intl/pkg/position"
	"github.com/dmitrymomot/intl/pkg/status"
)

const currencySpace = "\u00a0"

// output accumulates formatted text and records field spans in UTF-16
// offsets.
type output struct {
	pos *position.FieldPosition
	b   strings.Builder
	n16 int
}

func (o *output) write(s string) {
	o.b.WriteString(s)
	o.n16 += buffer.Len16(s)
}

func (o *output) field(field int, s string) {
	begin := o.n16
	o.write(s)
	o.pos.Record(field, begin, o.n16)
}

// FormatInt64 formats v. pos, when not nil, receives the span of its field.
func (f *Formatter) FormatInt64(v int64, pos *position.FieldPosition) (string, error) {
	const op = "numfmt.FormatInt64"
	if err := f.live(op); err != nil {
		return "", err
	}
	return f.render(op, fromInt(v), &f.pat, f.cur, "", pos)
}

// FormatDouble formats v, including infinities and NaN.
func (f *Formatter) FormatDouble(v float64, pos *position.FieldPosition) (string, error) {
	const op = "numfmt.FormatDouble"
	if err := f.live(op); err != nil {
		return "", err
	}
	return f.formatFloat(op, v, &f.pat, f.cur, pos)
}

// FormatDecimal formats a decimal number string such as "-1234.5678e2"
// without passing through float64.
func (f *Formatter) FormatDecimal(s string, pos *position.FieldPosition) (string, error) {
	const op = "numfmt.FormatDecimal"
	if err := f.live(op); err != nil {
		return "", err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nan":
		return f.formatFloat(op, math.NaN(), &f.pat, f.cur, pos)
	case "infinity", "inf", "+infinity", "+inf":
		return f.formatFloat(op, math.Inf(1), &f.pat, f.cur, pos)
	case "-infinity", "-inf":
		return f.formatFloat(op, math.Inf(-1), &f.pat, f.cur, pos)
	}
	d, ok := parseDecimal(strings.TrimSpace(s))
	if !ok {
		return "", status.New(op, status.DecimalNumberSyntax, ErrParse)
	}
	return f.render(op, d, &f.pat, f.cur, "", pos)
}

// FormatCurrency formats an amount of the currency with ISO code, or of
// the format currency when code is empty. Currency styles use the digits
// of that currency.
func (f *Formatter) FormatCurrency(v float64, code string, pos *position.FieldPosition) (string, error) {
	const op = "numfmt.FormatCurrency"
	if err := f.live(op); err != nil {
		return "", err
	}
	cur := f.cur
	if code != "" {
		u, err := currency.ParseISO(strings.ToUpper(code))
		if err != nil {
			return "", status.New(op, status.InvalidParameter, ErrUnknownCurrency)
		}
		cur = u
	}
	p := f.pat
	f.applyCurrencyDigits(&p, cur)
	return f.formatFloat(op, v, &p, cur, pos)
}

// Format formats a numeric formattable.
func (f *Formatter) Format(v *formattable.Formattable, pos *position.FieldPosition) (string, error) {
	const op = "numfmt.Format"
	if err := f.live(op); err != nil {
		return "", err
	}
	typ, err := v.Type()
	if err != nil {
		return "", err
	}
	switch typ {
	case formattable.Long, formattable.Int64:
		n, err := v.Int64()
		if err != nil {
			return "", err
		}
		return f.render(op, fromInt(n), &f.pat, f.cur, "", pos)
	case formattable.Double:
		x, err := v.Double()
		if err != nil {
			return "", err
		}
		return f.formatFloat(op, x, &f.pat, f.cur, pos)
	}
	return "", status.New(op, status.InvalidParameter, ErrNotNumeric)
}

func (f *Formatter) formatFloat(op string, v float64, p *pattern, cur currency.Unit, pos *position.FieldPosition) (string, error) {
	switch {
	case math.IsNaN(v):
		return f.render(op, decimal{}, p, cur, f.sym[NaNSymbol], pos)
	case math.IsInf(v, 0):
		return f.render(op, decimal{neg: v < 0}, p, cur, f.sym[InfinitySymbol], pos)
	}
	return f.render(op, fromFloat(v), p, cur, "", pos)
}

func (p *pattern) monetary() bool {
	for _, a := range []affix{p.posPrefix, p.posSuffix, p.negPrefix, p.negSuffix} {
		if a.has(affixCurrency) || a.has(affixCurrencyISO) {
			return true
		}
	}
	return false
}

// affixText renders an affix with the format symbols.
func (f *Formatter) affixText(a affix, cur currency.Unit) string {
	var b strings.Builder
	for _, part := range a {
		_, s := f.affixPart(part, cur)
		b.WriteString(s)
	}
	return b.String()
}

func (f *Formatter) affixPart(part affixPart, cur currency.Unit) (field int, s string) {
	switch part.kind {
	case affixMinus:
		return SignField, f.sym[MinusSign]
	case affixPlus:
		return SignField, f.sym[PlusSign]
	case affixPercent:
		return PercentField, f.sym[PercentSymbol]
	case affixPermill:
		return PermillField, f.sym[PermillSymbol]
	case affixCurrency:
		if cur == f.cur {
			return CurrencyField, f.sym[CurrencySymbol]
		}
		return CurrencyField, currencySymbol(f.tag, cur)
	case affixCurrencyISO:
		return CurrencyField, cur.String()
	}
	return -1, part.text
}

// currencySpaced reports whether a currency at the number side of affix a
// renders as a non-symbol, such as an ISO code, and needs a space before
// the digits.
func (f *Formatter) currencySpaced(a affix, cur currency.Unit, prefix bool) bool {
	if len(a) == 0 {
		return false
	}
	part := a[0]
	if prefix {
		part = a[len(a)-1]
	}
	if part.kind != affixCurrency && part.kind != affixCurrencyISO {
		return false
	}
	_, s := f.affixPart(part, cur)
	r, _ := utf8.DecodeRuneInString(s)
	if prefix {
		r, _ = utf8.DecodeLastRuneInString(s)
	}
	return !unicode.IsSymbol(r) && !unicode.IsSpace(r)
}

func (f *Formatter) writeAffix(o *output, a affix, cur currency.Unit) {
	for _, part := range a {
		field, s := f.affixPart(part, cur)
		if field < 0 {
			o.write(s)
			continue
		}
		o.field(field, s)
	}
}

// roundFixed rounds to the fraction or significant digits of p and reports
// whether digits were dropped.
func (f *Formatter) roundFixed(d *decimal, p *pattern) bool {
	if p.sigUsed {
		return d.round(p.maxSig, f.rounding)
	}
	return d.round(d.point+p.maxFrac, f.rounding)
}

// scale rounds d for scientific notation and moves its point so the
// mantissa has the integer digits of p. It returns the exponent.
func (f *Formatter) scale(d *decimal, p *pattern) (exp int, inexact bool) {
	if d.isZero() {
		return 0, false
	}
	sig := p.minInt + p.maxFrac
	if p.sigUsed {
		sig = p.maxSig
	}
	if sig > 0 {
		inexact = d.round(sig, f.rounding)
	}
	if d.isZero() {
		return 0, inexact
	}
	mag := d.point - 1
	if p.maxInt > p.minInt && p.maxInt > 1 {
		exp = floorDiv(mag, p.maxInt) * p.maxInt
	} else {
		exp = mag - (max(p.minInt, 1) - 1)
	}
	d.point -= exp
	return exp, inexact
}

func (f *Formatter) localDigits(s string) string {
	if f.digits[0] == '0' {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return f.digits[r-'0']
		}
		return r
	}, s)
}

// render writes d with pattern p. A non-empty special replaces the number
// (infinity or NaN).
func (f *Formatter) render(op string, d decimal, p *pattern, cur currency.Unit, special string, pos *position.FieldPosition) (string, error) {
	decSep, grpSep := f.sym[DecimalSeparator], f.sym[GroupingSeparator]
	if p.monetary() {
		decSep, grpSep = f.sym[MonetarySeparator], f.sym[MonetaryGroupingSeparator]
	}

	exp := 0
	if special == "" {
		d.mul(int64(p.multiplier))
		var inexact bool
		if p.exponent {
			exp, inexact = f.scale(&d, p)
		} else {
			inexact = f.roundFixed(&d, p)
		}
		if inexact && f.rounding == RoundUnnecessary {
			return "", status.New(op, status.FormatInexact, ErrRoundingNeeded)
		}
	}

	o := &output{pos: pos}
	prefix, suffix := p.posPrefix, p.posSuffix
	if d.neg {
		prefix, suffix = p.negPrefix, p.negSuffix
	}
	f.writeAffix(o, prefix, cur)

	if special != "" {
		o.field(IntegerField, special)
		f.writeAffix(o, suffix, cur)
		return o.b.String(), nil
	}
	if f.currencySpaced(prefix, cur, true) {
		o.write(currencySpace)
	}

	intDigits, frac := d.intString(), d.fracString()
	minInt := p.minInt
	if p.sigUsed {
		minInt = 1
		shown := len(d.digits)
		if d.point > 0 {
			shown = max(d.point, shown)
		}
		if pad := p.minSig - shown; pad > 0 {
			frac += strings.Repeat("0", pad)
		}
	} else if len(frac) < p.minFrac {
		frac += strings.Repeat("0", p.minFrac-len(frac))
	}
	if !p.exponent && !p.sigUsed && len(intDigits) > p.maxInt {
		intDigits = intDigits[len(intDigits)-p.maxInt:]
	}
	if len(intDigits) < minInt {
		intDigits = strings.Repeat("0", minInt-len(intDigits)) + intDigits
	}
	if intDigits == "" && frac == "" {
		intDigits = "0"
	}

	intBegin := o.n16
	grouped := p.groupingUsed && p.grouping > 0 && !p.exponent
	for i, c := range intDigits {
		o.write(f.localDigits(string(c)))
		if right := len(intDigits) - 1 - i; grouped && right > 0 && p.groupSeparatorAt(right) {
			o.field(GroupingSeparatorField, grpSep)
		}
	}
	o.pos.Record(IntegerField, intBegin, o.n16)

	if frac != "" || p.decimalShown {
		o.field(DecimalSeparatorField, decSep)
	}
	if frac != "" {
		o.field(FractionField, f.localDigits(frac))
	}

	if p.exponent {
		o.field(ExponentSymbolField, f.sym[ExponentialSymbol])
		if exp < 0 {
			o.field(ExponentSignField, f.sym[MinusSign])
			exp = -exp
		} else if p.expSign {
			o.field(ExponentSignField, f.sym[PlusSign])
		}
		digits := strconv.Itoa(exp)
		if len(digits) < p.minExp {
			digits = strings.Repeat("0", p.minExp-len(digits)) + digits
		}
		o.field(ExponentField, f.localDigits(digits))
	}

	if f.currencySpaced(suffix, cur, false) {
		o.write(currencySpace)
	}
	f.writeAffix(o, suffix, cur)
	return o.b.String(), nil
}
