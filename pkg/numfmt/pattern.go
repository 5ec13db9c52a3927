package numfmt

import (
	"strings"

	"github.com/dmitrymomot/intl/pkg/status"
)

// maxDigits bounds the integer digits of a pattern without an exponent.
const maxDigits = 309

type affixKind uint8

const (
	affixLiteral affixKind = iota
	affixMinus
	affixPlus
	affixPercent
	affixPermill
	affixCurrency
	affixCurrencyISO
)

type affixPart struct {
	text string
	kind affixKind
}

// affix is a prefix or suffix: literal text and symbol placeholders.
type affix []affixPart

func literal(s string) affix {
	if s == "" {
		return nil
	}
	return affix{{kind: affixLiteral, text: s}}
}

func (a affix) has(k affixKind) bool {
	for _, p := range a {
		if p.kind == k {
			return true
		}
	}
	return false
}

func (a affix) equal(b affix) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// pattern is the parsed form of a decimal format pattern such as
// "#,##0.00;(#,##0.00)" or "0.###E0".
type pattern struct {
	posPrefix, posSuffix affix
	negPrefix, negSuffix affix

	minInt, maxInt   int
	minFrac, maxFrac int
	minSig, maxSig   int
	grouping         int
	grouping2        int
	minExp           int
	multiplier       int

	hasNeg       bool
	groupingUsed bool
	decimalShown bool
	sigUsed      bool
	exponent     bool
	expSign      bool
}

func syntaxError(code status.ErrorCode, cause error) error {
	return status.New("numfmt.ApplyPattern", code, cause)
}

// splitSubpatterns splits at the first unquoted ';'.
func splitSubpatterns(src string) (pos, neg string, hasNeg bool) {
	quoted := false
	for i, r := range src {
		switch {
		case r == '\'':
			quoted = !quoted
		case r == ';' && !quoted:
			return src[:i], src[i+1:], true
		}
	}
	return src, "", false
}

func parsePattern(src string) (pattern, error) {
	posSrc, negSrc, hasNeg := splitSubpatterns(src)
	pre, num, suf, err := splitSubpattern(posSrc)
	if err != nil {
		return pattern{}, err
	}
	p := pattern{posPrefix: pre, posSuffix: suf, multiplier: 1}
	if err := p.parseNumber(num); err != nil {
		return pattern{}, err
	}
	if hasNeg {
		npre, _, nsuf, err := splitSubpattern(negSrc)
		if err != nil {
			return pattern{}, err
		}
		p.negPrefix, p.negSuffix, p.hasNeg = npre, nsuf, true
	} else {
		p.negPrefix = append(affix{{kind: affixMinus}}, pre...)
		p.negSuffix = suf
	}

	percents, permills := 0, 0
	for _, a := range []affix{p.posPrefix, p.posSuffix} {
		for _, part := range a {
			switch part.kind {
			case affixPercent:
				percents++
			case affixPermill:
				permills++
			}
		}
	}
	switch {
	case percents > 1:
		return pattern{}, syntaxError(status.MultiplePercentSymbols, ErrMultiplePercents)
	case permills > 1:
		return pattern{}, syntaxError(status.MultiplePermillSymbols, ErrMultiplePermills)
	case percents == 1 && permills == 1:
		return pattern{}, syntaxError(status.PatternSyntax, ErrPatternSyntax)
	case percents == 1:
		p.multiplier = 100
	case permills == 1:
		p.multiplier = 1000
	}
	return p, nil
}

func isNumberStart(r rune) bool {
	return r == '#' || r == '@' || r == ',' || r == '.' || (r >= '0' && r <= '9')
}

// splitSubpattern separates prefix, number part and suffix.
func splitSubpattern(src string) (prefix affix, number string, suffix affix, err error) {
	runes := []rune(src)
	var (
		num   strings.Builder
		phase int
		lit   strings.Builder
		cur   affix
	)
	flush := func() {
		if lit.Len() > 0 {
			cur = append(cur, affixPart{kind: affixLiteral, text: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if phase == 1 {
			switch {
			case isNumberStart(r) || r == 'E':
				num.WriteRune(r)
				continue
			case r == '+' && i > 0 && runes[i-1] == 'E':
				num.WriteRune(r)
				continue
			}
			phase = 2
		}
		if phase == 0 && isNumberStart(r) {
			flush()
			prefix, cur = cur, nil
			phase = 1
			num.WriteRune(r)
			continue
		}
		if phase == 2 && isNumberStart(r) {
			return nil, "", nil, syntaxError(status.UnexpectedToken, ErrPatternSyntax)
		}
		switch r {
		case '\'':
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
				return nil, "", nil, syntaxError(status.PatternSyntax, ErrUnterminatedQuote)
			}
		case '%', '‰', '-', '+', '¤':
			flush()
			part := affixPart{}
			switch r {
			case '%':
				part.kind = affixPercent
			case '‰':
				part.kind = affixPermill
			case '-':
				part.kind = affixMinus
			case '+':
				part.kind = affixPlus
			default:
				part.kind = affixCurrency
				for i+1 < len(runes) && runes[i+1] == '¤' {
					part.kind = affixCurrencyISO
					i++
				}
			}
			cur = append(cur, part)
		default:
			lit.WriteRune(r)
		}
	}
	flush()
	if phase == 0 {
		return nil, "", nil, syntaxError(status.PatternSyntax, ErrPatternSyntax)
	}
	return prefix, num.String(), cur, nil
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r == '#' || r == '@' || (r >= '0' && r <= '9') {
			n++
		}
	}
	return n
}

// parseNumber reads the digit layout of the number part.
func (p *pattern) parseNumber(num string) error {
	mantissa, exp, hasExp := strings.Cut(num, "E")
	if strings.Contains(exp, "E") {
		return syntaxError(status.MultipleExponentialSymbols, ErrMultipleExponents)
	}
	if strings.Count(mantissa, ".") > 1 {
		return syntaxError(status.MultipleDecimalSeparators, ErrMultipleDecimals)
	}
	intPart, frac, hasDot := strings.Cut(mantissa, ".")
	if strings.Contains(frac, ",") {
		return syntaxError(status.PatternSyntax, ErrPatternSyntax)
	}

	if strings.Contains(mantissa, "@") {
		if hasDot || strings.ContainsAny(mantissa, "0123456789") {
			return syntaxError(status.PatternSyntax, ErrPatternSyntax)
		}
		digits := strings.TrimLeft(strings.ReplaceAll(intPart, ",", ""), "#")
		sig := strings.TrimLeft(digits, "@")
		if strings.Trim(sig, "#") != "" {
			return syntaxError(status.PatternSyntax, ErrPatternSyntax)
		}
		p.sigUsed = true
		p.minSig = len(digits) - len(sig)
		p.maxSig = len(digits)
		p.minInt = 1
	} else {
		zero := false
		for _, r := range intPart {
			switch {
			case r == '#' && zero:
				return syntaxError(status.PatternSyntax, ErrPatternSyntax)
			case r >= '0' && r <= '9':
				zero = true
				p.minInt++
			}
		}
		hash := false
		for _, r := range frac {
			switch {
			case r == '#':
				hash = true
				p.maxFrac++
			case r >= '0' && r <= '9':
				if hash {
					return syntaxError(status.PatternSyntax, ErrPatternSyntax)
				}
				p.minFrac++
				p.maxFrac++
			}
		}
		p.decimalShown = hasDot && frac == ""
	}

	if last := strings.LastIndexByte(intPart, ','); last >= 0 {
		p.grouping = countDigits(intPart[last+1:])
		if p.grouping == 0 {
			return syntaxError(status.PatternSyntax, ErrPatternSyntax)
		}
		if prev := strings.LastIndexByte(intPart[:last], ','); prev >= 0 {
			if g2 := countDigits(intPart[prev+1 : last]); g2 != p.grouping {
				p.grouping2 = g2
			}
		}
		p.groupingUsed = true
	}

	intDigits := countDigits(intPart)
	if intDigits == 0 && p.maxFrac == 0 {
		return syntaxError(status.PatternSyntax, ErrPatternSyntax)
	}
	p.maxInt = maxDigits
	if hasExp {
		p.exponent = true
		if e, ok := strings.CutPrefix(exp, "+"); ok {
			p.expSign, exp = true, e
		}
		if exp == "" || strings.Trim(exp, "0") != "" {
			return syntaxError(status.MalformedExponentialPattern, ErrMalformedExponent)
		}
		p.minExp = len(exp)
		p.maxInt = intDigits
		if p.sigUsed {
			p.maxInt = 1
		}
	}
	return nil
}

// String renders the pattern back to its canonical text.
func (p pattern) String() string {
	var b strings.Builder
	num := p.numberString()
	writeAffix(&b, p.posPrefix)
	b.WriteString(num)
	writeAffix(&b, p.posSuffix)
	implied := append(affix{{kind: affixMinus}}, p.posPrefix...)
	if !p.negPrefix.equal(implied) || !p.negSuffix.equal(p.posSuffix) {
		b.WriteByte(';')
		writeAffix(&b, p.negPrefix)
		b.WriteString(num)
		writeAffix(&b, p.negSuffix)
	}
	return b.String()
}

func (p pattern) numberString() string {
	var b strings.Builder
	if p.sigUsed {
		n := p.maxSig
		if p.groupingUsed && p.grouping > 0 {
			n = max(n, p.grouping+1)
		}
		for i := n - 1; i >= 0; i-- {
			k := n - 1 - i
			if k >= n-p.maxSig && k < n-p.maxSig+p.minSig {
				b.WriteByte('@')
			} else {
				b.WriteByte('#')
			}
			if p.groupingUsed && i > 0 && p.groupSeparatorAt(i) {
				b.WriteByte(',')
			}
		}
	} else {
		n := max(p.minInt, 1)
		if p.exponent {
			n = max(p.maxInt, 1)
		}
		if p.groupingUsed && p.grouping > 0 {
			n = max(n, p.grouping+1)
			if p.grouping2 > 0 {
				n = max(n, p.grouping+p.grouping2+1)
			}
		}
		for i := n - 1; i >= 0; i-- {
			if i < p.minInt {
				b.WriteByte('0')
			} else {
				b.WriteByte('#')
			}
			if p.groupingUsed && i > 0 && p.groupSeparatorAt(i) {
				b.WriteByte(',')
			}
		}
		if p.maxFrac > 0 || p.decimalShown {
			b.WriteByte('.')
			b.WriteString(strings.Repeat("0", p.minFrac))
			b.WriteString(strings.Repeat("#", p.maxFrac-p.minFrac))
		}
	}
	if p.exponent {
		b.WriteByte('E')
		if p.expSign {
			b.WriteByte('+')
		}
		b.WriteString(strings.Repeat("0", max(p.minExp, 1)))
	}
	return b.String()
}

// groupSeparatorAt reports whether a separator follows the digit with i
// digits to its right.
func (p pattern) groupSeparatorAt(i int) bool {
	if p.grouping <= 0 {
		return false
	}
	if i == p.grouping {
		return true
	}
	if i < p.grouping {
		return false
	}
	g := p.grouping2
	if g <= 0 {
		g = p.grouping
	}
	return (i-p.grouping)%g == 0
}

func writeAffix(b *strings.Builder, a affix) {
	for _, part := range a {
		switch part.kind {
		case affixMinus:
			b.WriteByte('-')
		case affixPlus:
			b.WriteByte('+')
		case affixPercent:
			b.WriteByte('%')
		case affixPermill:
			b.WriteRune('‰')
		case affixCurrency:
			b.WriteRune('¤')
		case affixCurrencyISO:
			b.WriteString("¤¤")
		default:
			writeLiteral(b, part.text)
		}
	}
}

func writeLiteral(b *strings.Builder, s string) {
	if !strings.ContainsAny(s, "#0123456789@,.;%‰¤-+E'") {
		b.WriteString(s)
		return
	}
	b.WriteByte('\'')
	b.WriteString(strings.ReplaceAll(s, "'", "''"))
	b.WriteByte('\'')
}
