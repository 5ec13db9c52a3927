package numfmt

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/formattable"
	"github.com/dmitrymomot/intl/pkg/position"
	"github.com/dmitrymomot/intl/pkg/status"
)

// parsed is a number read from text. num is an ASCII decimal string
// before the multiplier is removed.
type parsed struct {
	num  string
	neg  bool
	inf  bool
	nan  bool
	end  int
	errs int
}

func (f *Formatter) digitValue(r rune) (byte, bool) {
	if r >= '0' && r <= '9' {
		return byte(r - '0'), true
	}
	if off := r - f.digits[0]; off >= 0 && off <= 9 && f.digits[off] == r {
		return byte(off), true
	}
	return 0, false
}

func startOf(pos *position.ParsePosition) (int, error) {
	if pos == nil {
		return 0, nil
	}
	return pos.Index()
}

// parse reads a number from text at the UTF-16 offset start. On failure
// ok is false and errs holds the offset where reading stopped.
func (f *Formatter) parse(text string, start int) (p parsed, ok bool) {
	p.errs = start
	// Convert the UTF-16 offset to a byte offset.
	at, n16 := 0, 0
	for at < len(text) && n16 < start {
		r, size := utf8.DecodeRuneInString(text[at:])
		n16 += max(utf16.RuneLen(r), 1)
		at += size
	}
	if n16 != start {
		return p, false
	}
	rest := text[at:]
	offset := func(s string) int { return start + buffer.Len16(text[at:len(text)-len(s)]) }

	np := f.affixText(f.pat.negPrefix, f.cur)
	pp := f.affixText(f.pat.posPrefix, f.cur)
	matchNeg := np != "" && strings.HasPrefix(rest, np)
	matchPos := strings.HasPrefix(rest, pp)
	switch {
	case matchNeg && (!matchPos || len(np) > len(pp)):
		p.neg = true
		rest = rest[len(np):]
	case matchPos:
		rest = rest[len(pp):]
	case f.lenient:
		rest = strings.TrimLeft(rest, " \u00a0")
		for _, minus := range []string{f.sym[MinusSign], "-"} {
			if r, ok := strings.CutPrefix(rest, minus); ok {
				p.neg, rest = true, r
				break
			}
		}
		if !p.neg {
			if r, ok := strings.CutPrefix(rest, pp); ok {
				rest = r
			}
		}
	default:
		return p, false
	}
	if f.lenient {
		rest = strings.TrimLeft(rest, " \u00a0")
	}

	decSep, grpSep := f.sym[DecimalSeparator], f.sym[GroupingSeparator]
	if f.pat.monetary() {
		decSep, grpSep = f.sym[MonetarySeparator], f.sym[MonetaryGroupingSeparator]
	}
	var (
		num     strings.Builder
		digits  int
		decimal bool
	)
scan:
	for rest != "" {
		r, size := utf8.DecodeRuneInString(rest)
		if v, ok := f.digitValue(r); ok {
			num.WriteByte('0' + v)
			digits++
			rest = rest[size:]
			continue
		}
		switch {
		case !decimal && !f.parseIntOnly && strings.HasPrefix(rest, decSep):
			decimal = true
			num.WriteByte('.')
			rest = rest[len(decSep):]
		case f.pat.groupingUsed && !decimal && digits > 0 && grpSep != "" && strings.HasPrefix(rest, grpSep):
			next, _ := utf8.DecodeRuneInString(rest[len(grpSep):])
			if _, ok := f.digitValue(next); !ok {
				break scan
			}
			rest = rest[len(grpSep):]
		case digits > 0 && !f.parseIntOnly && strings.HasPrefix(rest, f.sym[ExponentialSymbol]):
			exp, tail, ok := f.exponent(rest[len(f.sym[ExponentialSymbol]):])
			if !ok {
				break scan
			}
			num.WriteString("e" + exp)
			rest = tail
			break scan
		default:
			break scan
		}
	}
	if digits == 0 {
		switch {
		case strings.HasPrefix(rest, f.sym[InfinitySymbol]):
			p.inf = true
			rest = rest[len(f.sym[InfinitySymbol]):]
		case strings.HasPrefix(rest, f.sym[NaNSymbol]):
			p.nan = true
			rest = rest[len(f.sym[NaNSymbol]):]
		default:
			p.errs = offset(rest)
			return p, false
		}
	}

	suffix := f.affixText(f.pat.posSuffix, f.cur)
	if p.neg {
		suffix = f.affixText(f.pat.negSuffix, f.cur)
	}
	if suffix != "" {
		if f.pat.monetary() && !strings.HasPrefix(rest, suffix) {
			rest = strings.TrimPrefix(rest, currencySpace)
		}
		switch {
		case strings.HasPrefix(rest, suffix):
			rest = rest[len(suffix):]
		case f.lenient:
			if s := strings.TrimSpace(suffix); s != "" && strings.HasPrefix(strings.TrimLeft(rest, " \u00a0"), s) {
				rest = strings.TrimLeft(rest, " \u00a0")[len(s):]
			}
		default:
			p.errs = offset(rest)
			return p, false
		}
	}
	p.num = num.String()
	p.end = offset(rest)
	return p, true
}

// exponent reads an optionally signed exponent.
func (f *Formatter) exponent(s string) (exp, rest string, ok bool) {
	sign := ""
	switch {
	case strings.HasPrefix(s, f.sym[MinusSign]):
		sign, s = "-", s[len(f.sym[MinusSign]):]
	case strings.HasPrefix(s, "-"):
		sign, s = "-", s[1:]
	case strings.HasPrefix(s, f.sym[PlusSign]):
		s = s[len(f.sym[PlusSign]):]
	}
	var b strings.Builder
	for s != "" {
		r, size := utf8.DecodeRuneInString(s)
		v, isDigit := f.digitValue(r)
		if !isDigit {
			break
		}
		b.WriteByte('0' + v)
		s = s[size:]
	}
	if b.Len() == 0 {
		return "", "", false
	}
	return sign + b.String(), s, true
}

func (f *Formatter) run(op string, text string, pos *position.ParsePosition) (parsed, error) {
	if err := f.live(op); err != nil {
		return parsed{}, err
	}
	start, err := startOf(pos)
	if err != nil {
		return parsed{}, err
	}
	p, ok := f.parse(text, start)
	if !ok {
		if pos != nil {
			_ = pos.SetErrorIndex(p.errs)
		}
		return parsed{}, status.New(op, status.Parse, ErrParse)
	}
	if pos != nil {
		_ = pos.SetIndex(p.end)
	}
	return p, nil
}

func (f *Formatter) float(p parsed) float64 {
	switch {
	case p.nan:
		return math.NaN()
	case p.inf && p.neg:
		return math.Inf(-1)
	case p.inf:
		return math.Inf(1)
	}
	v, _ := strconv.ParseFloat(p.num, 64)
	if p.neg {
		v = -v
	}
	if m := f.pat.multiplier; m != 1 && m != 0 {
		v /= float64(m)
	}
	return v
}

// ParseDouble reads a number at the index of pos (0 when pos is nil) and
// advances pos past it. On failure pos gets the error index.
func (f *Formatter) ParseDouble(text string, pos *position.ParsePosition) (float64, error) {
	p, err := f.run("numfmt.ParseDouble", text, pos)
	if err != nil {
		return 0, err
	}
	return f.float(p), nil
}

// ParseInt64 reads a number and truncates it toward zero.
func (f *Formatter) ParseInt64(text string, pos *position.ParsePosition) (int64, error) {
	const op = "numfmt.ParseInt64"
	p, err := f.run(op, text, pos)
	if err != nil {
		return 0, err
	}
	if p.nan || p.inf {
		return 0, status.New(op, status.InvalidFormat, ErrOverflow)
	}
	return f.int64(op, p)
}

func (f *Formatter) int64(op string, p parsed) (int64, error) {
	d, ok := parseDecimal(p.num)
	if !ok {
		return 0, status.New(op, status.Parse, ErrParse)
	}
	if m := f.pat.multiplier; m != 1 {
		v := math.Trunc(f.float(p))
		if v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, status.New(op, status.InvalidFormat, ErrOverflow)
		}
		return int64(v), nil
	}
	s := d.intString()
	if s == "" {
		return 0, nil
	}
	if p.neg {
		s = "-" + s
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, status.New(op, status.InvalidFormat, ErrOverflow)
	}
	return v, nil
}

// ParseObject reads a number as a formattable: Int64 when it is integral
// and fits, otherwise Double.
func (f *Formatter) ParseObject(text string, pos *position.ParsePosition) (*formattable.Formattable, error) {
	const op = "numfmt.ParseObject"
	p, err := f.run(op, text, pos)
	if err != nil {
		return nil, err
	}
	if !p.nan && !p.inf {
		if d, ok := parseDecimal(p.num); ok && d.fracString() == "" && !(d.isZero() && p.neg) {
			if f.pat.multiplier == 1 || f.float(p) == math.Trunc(f.float(p)) {
				if v, err := f.int64(op, p); err == nil {
					return formattable.NewInt64(v), nil
				}
			}
		}
	}
	return formattable.NewDouble(f.float(p)), nil
}

// ParseCurrency reads an amount in the format currency and returns it
// with the ISO code.
func (f *Formatter) ParseCurrency(text string, pos *position.ParsePosition) (float64, string, error) {
	p, err := f.run("numfmt.ParseCurrency", text, pos)
	if err != nil {
		return 0, "", err
	}
	return f.float(p), f.cur.String(), nil
}
