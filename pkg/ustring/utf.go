package ustring

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/status"
)

// decodeUTF8 converts src to UTF-16. With sub < 0 the first ill-formed
// sequence fails the conversion, otherwise it is replaced by sub and counted.
func decodeUTF8(op string, src []byte, sub rune) ([]uint16, int, error) {
	if sub >= 0 && !utf8.ValidRune(sub) {
		return nil, 0, status.New(op, status.InvalidParameter, ErrInvalidSubstitute)
	}
	out := make([]uint16, 0, len(src))
	subs := 0
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size <= 1 {
			if sub < 0 {
				if !utf8.FullRune(src[i:]) {
					return nil, 0, status.New(op, status.TruncatedCharFound, ErrTruncatedUTF8)
				}
				return nil, 0, status.New(op, status.InvalidCharFound, ErrInvalidUTF8)
			}
			r, size = sub, 1
			subs++
		}
		out = utf16.AppendRune(out, r)
		i += size
	}
	return out, subs, nil
}

// FromUTF8 converts UTF-8 to UTF-16. Ill-formed input is InvalidCharFound,
// or TruncatedCharFound when it ends in an incomplete sequence.
func FromUTF8(src []byte) ([]uint16, error) {
	out, _, err := decodeUTF8("ustring.FromUTF8", src, -1)
	return out, err
}

// FromUTF8Into is FromUTF8 into a caller buffer.
func FromUTF8Into(dst []uint16, capacity int, src []byte) (int, error) {
	if err := buffer.Check(dst, capacity); err != nil {
		return 0, err
	}
	out, _, err := decodeUTF8("ustring.FromUTF8Into", src, -1)
	if err != nil {
		return 0, err
	}
	return buffer.Fill(dst, capacity, out, buffer.NulTerminated)
}

// FromUTF8WithSub converts UTF-8 to UTF-16 replacing each ill-formed byte with
// sub and returns the number of substitutions. A negative sub behaves like
// FromUTF8.
func FromUTF8WithSub(src []byte, sub rune) ([]uint16, int, error) {
	return decodeUTF8("ustring.FromUTF8WithSub", src, sub)
}

// FromUTF8WithSubInto is FromUTF8WithSub into a caller buffer.
func FromUTF8WithSubInto(dst []uint16, capacity int, src []byte, sub rune) (int, int, error) {
	if err := buffer.Check(dst, capacity); err != nil {
		return 0, 0, err
	}
	out, subs, err := decodeUTF8("ustring.FromUTF8WithSubInto", src, sub)
	if err != nil {
		return 0, 0, err
	}
	n, err := buffer.Fill(dst, capacity, out, buffer.NulTerminated)
	return n, subs, err
}

func encodeUTF8(op string, src []uint16) ([]byte, error) {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); i++ {
		c := rune(src[i])
		switch {
		case utf16.IsSurrogate(c):
			if c >= 0xdc00 || i+1 >= len(src) {
				return nil, status.New(op, status.InvalidCharFound, ErrLoneSurrogate)
			}
			r := utf16.DecodeRune(c, rune(src[i+1]))
			if r == utf8.RuneError {
				return nil, status.New(op, status.InvalidCharFound, ErrLoneSurrogate)
			}
			out = utf8.AppendRune(out, r)
			i++
		default:
			out = utf8.AppendRune(out, c)
		}
	}
	return out, nil
}

// ToUTF8 converts UTF-16 to UTF-8. An unpaired surrogate is InvalidCharFound.
func ToUTF8(src []uint16) ([]byte, error) {
	return encodeUTF8("ustring.ToUTF8", src)
}

// ToUTF8Into is ToUTF8 from srcLength units of src (-1 when terminated) into
// a caller buffer.
func ToUTF8Into(dst []byte, capacity int, src []uint16, srcLength int) (int, error) {
	if err := buffer.Check(dst, capacity); err != nil {
		return 0, err
	}
	if srcLength == -1 {
		srcLength = len(src)
		for i, u := range src {
			if u == 0 {
				srcLength = i
				break
			}
		}
	}
	if srcLength < 0 || srcLength > len(src) {
		return 0, status.Invalid("ustring.ToUTF8Into", "invalid source length %d", srcLength)
	}
	out, err := encodeUTF8("ustring.ToUTF8Into", src[:srcLength])
	if err != nil {
		return 0, err
	}
	return buffer.Fill(dst, capacity, out, buffer.NulTerminated)
}

// CountChar32 returns the number of code points in s. Unpaired surrogates
// count as one code point each.
func CountChar32(s []uint16) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if utf16.IsSurrogate(rune(s[i])) && s[i] < 0xdc00 && i+1 < len(s) && s[i+1] >= 0xdc00 && s[i+1] <= 0xdfff {
			i++
		}
		n++
	}
	return n
}

// HasMoreChar32Than reports whether s holds more than n code points.
func HasMoreChar32Than(s []uint16, n int) bool {
	if n < 0 {
		return true
	}
	if len(s) <= n {
		return false
	}
	if len(s) > 2*n {
		return true
	}
	return CountChar32(s) > n
}

// CompareCodePointOrder compares UTF-16 strings in code point order rather
// than code unit order, so supplementary characters sort after U+FFFF.
func CompareCodePointOrder(a, b []uint16) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		ca, cb := a[i], b[i]
		if ca == cb {
			continue
		}
		if ca >= 0xd800 && cb >= 0xd800 {
			ca, cb = rotate(ca), rotate(cb)
		}
		if ca < cb {
			return -1
		}
		return 1
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// rotate moves surrogates above the rest of the BMP.
func rotate(c uint16) uint16 {
	if c >= 0xe000 {
		return c - 0x800
	}
	return c + 0x2000
}

// CaseCompare compares the case folded forms of a and b in code point order.
func CaseCompare(a, b string) int {
	fa, fb := FoldCase(a), FoldCase(b)
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	}
	return 0
}
