package abi

import (
	"context"

	"github.com/dmitrymomot/intl/internal/native"
	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/normalizer"
	"github.com/dmitrymomot/intl/pkg/status"
	"github.com/dmitrymomot/intl/pkg/uchar"
	"github.com/dmitrymomot/intl/pkg/ustring"
)

// StrToUpper writes the uppercase mapping of src under locale id into dst.
func (s *Surface) StrToUpper(dst []uint16, capacity int, src []uint16, srcLength int, id string) (int, ErrorCode) {
	n, err := ustring.ToUpperInto(dst, capacity, src, srcLength, id)
	return n, code(err)
}

// StrToLower writes the lowercase mapping of src under locale id into dst.
func (s *Surface) StrToLower(dst []uint16, capacity int, src []uint16, srcLength int, id string) (int, ErrorCode) {
	n, err := ustring.ToLowerInto(dst, capacity, src, srcLength, id)
	return n, code(err)
}

// StrToTitle writes the titlecase mapping of src under locale id into dst.
func (s *Surface) StrToTitle(dst []uint16, capacity int, src []uint16, srcLength int, id string) (int, ErrorCode) {
	n, err := ustring.ToTitleInto(dst, capacity, src, srcLength, id)
	return n, code(err)
}

// StrFoldCase writes the case folding of src into dst.
func (s *Surface) StrFoldCase(dst []uint16, capacity int, src []uint16, srcLength int) (int, ErrorCode) {
	n, err := ustring.FoldCaseInto(dst, capacity, src, srcLength)
	return n, code(err)
}

// StrFromUTF8 converts UTF-8 src into UTF-16 dst. Ill-formed input is
// InvalidChar.
func (s *Surface) StrFromUTF8(dst []uint16, capacity int, src []byte) (int, ErrorCode) {
	n, err := ustring.FromUTF8Into(dst, capacity, src)
	return n, code(err)
}

// StrFromUTF8Chained is StrFromUTF8 for callers that thread one native
// status through a sequence of calls: nothing happens when in is already a
// failure, and a warning in survives a successful conversion.
func (s *Surface) StrFromUTF8Chained(dst []uint16, capacity int, src []byte, in ErrorCode) (int, ErrorCode) {
	n := 0
	out := native.Chain(status.ToNative(in), func() error {
		var err error
		n, err = ustring.FromUTF8Into(dst, capacity, src)
		return err
	})
	return n, status.ToFacade(out)
}

// StrFromUTF8WithSub converts src replacing ill-formed sequences with sub,
// and returns the number of substitutions.
func (s *Surface) StrFromUTF8WithSub(dst []uint16, capacity int, src []byte, sub rune) (n, subs int, c ErrorCode) {
	n, subs, err := ustring.FromUTF8WithSubInto(dst, capacity, src, sub)
	return n, subs, code(err)
}

// StrToUTF8 converts UTF-16 src into UTF-8 dst.
func (s *Surface) StrToUTF8(dst []byte, capacity int, src []uint16, srcLength int) (int, ErrorCode) {
	n, err := ustring.ToUTF8Into(dst, capacity, src, srcLength)
	return n, code(err)
}

// StrCountChar32 counts the code points of src.
func (s *Surface) StrCountChar32(ctx context.Context, src []uint16) int {
	return record(ctx, ustring.CountChar32(src), nil)
}

// StrCompareCodePointOrder compares a and b in code point order.
func (s *Surface) StrCompareCodePointOrder(ctx context.Context, a, b []uint16) int {
	return record(ctx, ustring.CompareCodePointOrder(a, b), nil)
}

// Normalize writes src in the normalization form of mode into dst.
func (s *Surface) Normalize(mode normalizer.Mode, src []uint16, srcLength int, dst []uint16, capacity int) (int, ErrorCode) {
	nz, err := normalizer.Instance(mode)
	if err != nil {
		return 0, code(err)
	}
	in, err := buffer.Input16(src, srcLength)
	if err != nil {
		return 0, code(err)
	}
	n, err := nz.NormalizeInto(in, dst, capacity)
	return n, code(err)
}

// NormalizeQuickCheck reports whether src is in the form of mode without
// normalizing it.
func (s *Surface) NormalizeQuickCheck(mode normalizer.Mode, src []uint16, srcLength int) (normalizer.QuickCheckResult, ErrorCode) {
	nz, err := normalizer.Instance(mode)
	if err != nil {
		return normalizer.No, code(err)
	}
	in, err := buffer.Input16(src, srcLength)
	if err != nil {
		return normalizer.No, code(err)
	}
	r, err := nz.QuickCheck(in)
	return r, code(err)
}

// NormalizeAppend normalizes second and appends it to the normalized
// first firstLength units of dst.
func (s *Surface) NormalizeAppend(mode normalizer.Mode, dst []uint16, firstLength, capacity int, second []uint16, secondLength int) (int, ErrorCode) {
	nz, err := normalizer.Instance(mode)
	if err != nil {
		return 0, code(err)
	}
	in, err := buffer.Input16(second, secondLength)
	if err != nil {
		return 0, code(err)
	}
	n, err := nz.NormalizeSecondAndAppendInto(dst, firstLength, capacity, in)
	return n, code(err)
}

// CharName writes the name of r into dst.
func (s *Surface) CharName(r rune, choice uchar.NameChoice, dst []byte, capacity int) (int, ErrorCode) {
	n, err := uchar.CharNameInto(r, choice, dst, capacity)
	return n, code(err)
}

// CharFromName returns the code point named name, or -1 with
// InvalidCharFound.
func (s *Surface) CharFromName(name string) (rune, ErrorCode) {
	r, err := uchar.CharFromName(name)
	if err != nil {
		return -1, code(err)
	}
	return r, status.Success
}
