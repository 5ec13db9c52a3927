package numfmt

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// RoundingMode selects how dropped digits round the kept ones.
type RoundingMode int

const (
	RoundCeiling RoundingMode = iota
	RoundFloor
	RoundDown
	RoundUp
	RoundHalfEven
	RoundHalfDown
	RoundHalfUp
	// RoundUnnecessary fails with FormatInexact when rounding would be
	// needed.
	RoundUnnecessary
)

// decimal is the value 0.digits × 10^point. digits holds ASCII digits with
// no leading or trailing zeros and is empty for zero.
type decimal struct {
	digits []byte
	point  int
	neg    bool
}

func fromFloat(v float64) decimal {
	d := decimal{neg: math.Signbit(v)}
	v = math.Abs(v)
	if v == 0 {
		return d
	}
	mant, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	e, _ := strconv.Atoi(exp)
	d.digits = []byte(strings.Replace(mant, ".", "", 1))
	d.point = e + 1
	d.trim()
	return d
}

func fromInt(v int64) decimal {
	d := decimal{neg: v < 0}
	u := uint64(v)
	if v < 0 {
		u = uint64(-(v + 1)) + 1
	}
	s := strconv.FormatUint(u, 10)
	d.digits = []byte(s)
	d.point = len(s)
	d.trim()
	return d
}

// parseDecimal reads a plain decimal string such as "-1234.5e-3".
func parseDecimal(s string) (decimal, bool) {
	var d decimal
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		d.neg, s = true, rest
	} else {
		s = strings.TrimPrefix(s, "+")
	}
	mant, exp, hasExp := strings.Cut(strings.ToLower(s), "e")
	e := 0
	if hasExp {
		n, err := strconv.Atoi(exp)
		if err != nil {
			return decimal{}, false
		}
		e = n
	}
	intPart, frac, _ := strings.Cut(mant, ".")
	if intPart == "" && frac == "" {
		return decimal{}, false
	}
	for _, c := range intPart + frac {
		if c < '0' || c > '9' {
			return decimal{}, false
		}
	}
	d.digits = []byte(intPart + frac)
	d.point = len(intPart) + e
	d.trim()
	return d, true
}

func (d *decimal) trim() {
	lead := 0
	for lead < len(d.digits) && d.digits[lead] == '0' {
		lead++
	}
	d.digits = d.digits[lead:]
	d.point -= lead
	end := len(d.digits)
	for end > 0 && d.digits[end-1] == '0' {
		end--
	}
	d.digits = d.digits[:end]
	if len(d.digits) == 0 {
		d.point = 0
	}
}

func (d decimal) isZero() bool { return len(d.digits) == 0 }

// mul multiplies by m.
func (d *decimal) mul(m int64) {
	if m < 0 {
		d.neg = !d.neg
		m = -m
	}
	if d.isZero() || m == 1 {
		return
	}
	for p, n := int64(10), 1; n <= 18 && p <= m; p, n = p*10, n+1 {
		if p == m {
			d.point += n
			return
		}
	}
	x, _ := new(big.Int).SetString(string(d.digits), 10)
	s := x.Mul(x, big.NewInt(m)).String()
	d.point += len(s) - len(d.digits)
	d.digits = []byte(s)
	d.trim()
}

// round keeps the first n digits and reports whether digits were dropped.
func (d *decimal) round(n int, mode RoundingMode) bool {
	if n >= len(d.digits) {
		return false
	}
	if mode == RoundUnnecessary {
		return true
	}
	if n < 0 {
		d.digits = append([]byte(strings.Repeat("0", -n)), d.digits...)
		d.point -= n
		n = 0
	}
	first := d.digits[n]
	rest := n+1 < len(d.digits)
	odd := n > 0 && (d.digits[n-1]-'0')%2 == 1

	var up bool
	switch mode {
	case RoundUp:
		up = true
	case RoundCeiling:
		up = !d.neg
	case RoundFloor:
		up = d.neg
	case RoundHalfUp:
		up = first >= '5'
	case RoundHalfDown:
		up = first > '5' || (first == '5' && rest)
	case RoundHalfEven:
		up = first > '5' || (first == '5' && (rest || odd))
	}

	d.digits = d.digits[:n]
	if up {
		i := n - 1
		for i >= 0 && d.digits[i] == '9' {
			d.digits[i] = '0'
			i--
		}
		if i < 0 {
			d.digits = append([]byte{'1'}, d.digits...)
			d.point++
		} else {
			d.digits[i]++
		}
	}
	d.trim()
	return true
}

func (d decimal) intString() string {
	switch {
	case d.point <= 0:
		return ""
	case d.point >= len(d.digits):
		return string(d.digits) + strings.Repeat("0", d.point-len(d.digits))
	}
	return string(d.digits[:d.point])
}

func (d decimal) fracString() string {
	switch {
	case d.point >= len(d.digits):
		return ""
	case d.point < 0:
		return strings.Repeat("0", -d.point) + string(d.digits)
	}
	return string(d.digits[d.point:])
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
