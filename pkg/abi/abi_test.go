package abi_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/abi"
	"github.com/dmitrymomot/intl/pkg/brkiter"
	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/collator"
	"github.com/dmitrymomot/intl/pkg/datefmt"
	"github.com/dmitrymomot/intl/pkg/normalizer"
	"github.com/dmitrymomot/intl/pkg/numfmt"
	"github.com/dmitrymomot/intl/pkg/search"
	"github.com/dmitrymomot/intl/pkg/status"
	"github.com/dmitrymomot/intl/pkg/uchar"
)

func u16(s string) ([]uint16, int) {
	u := buffer.UTF16(s)
	return u, len(u)
}

func TestCollator(t *testing.T) {
	t.Parallel()

	s := abi.New()
	ctx, cell := status.WithCell(context.Background())

	h, c := s.CollatorOpen("en")
	require.Equal(t, status.Success, c)

	a, an := u16("a")
	b, bn := u16("b")
	assert.Equal(t, collator.Less, s.CollatorCompare(ctx, h, a, an, b, bn))
	assert.Equal(t, status.Success, cell.Last())

	upper, un := u16("A")
	assert.False(t, s.CollatorEqual(ctx, h, a, an, upper, un))
	require.Equal(t, status.Success, s.CollatorSetStrength(h, collator.Primary))
	assert.True(t, s.CollatorEqual(ctx, h, a, an, upper, un))
	assert.Equal(t, collator.Primary, s.CollatorStrength(ctx, h))

	dup, c := s.CollatorClone(h)
	require.Equal(t, status.Success, c)
	require.Equal(t, status.Success, s.CollatorSetStrength(dup, collator.Tertiary))
	assert.Equal(t, collator.Primary, s.CollatorStrength(ctx, h))

	t.Run("sort key preflight", func(t *testing.T) {
		n := s.CollatorSortKey(ctx, h, a, an, nil, 0)
		assert.Positive(t, n)
		assert.Equal(t, status.WarnSortKeyTooShort, cell.Last())

		key := make([]byte, n)
		assert.Equal(t, n, s.CollatorSortKey(ctx, h, a, an, key, n))
		assert.Equal(t, status.Success, cell.Last())
	})

	t.Run("NUL-terminated input", func(t *testing.T) {
		x := append(buffer.UTF16("abc"), 0)
		y := append(buffer.UTF16("abd"), 0)
		assert.Equal(t, collator.Less, s.CollatorCompare(ctx, dup, x, -1, y, -1))

		assert.Equal(t, collator.Equal, s.CollatorCompare(ctx, dup, buffer.UTF16("abc"), -1, y, -1))
		assert.Equal(t, status.InvalidParameter, cell.Last())
	})

	require.Equal(t, status.Success, s.CollatorClose(dup))
	require.Equal(t, status.Success, s.CollatorClose(h))
	assert.Empty(t, s.Live())
}

func TestHandles(t *testing.T) {
	t.Parallel()

	s := abi.New()
	ctx, cell := status.WithCell(context.Background())

	t.Run("unbound", func(t *testing.T) {
		assert.Equal(t, status.InvalidParameter, s.CollatorClose(0))
		s.CollatorStrength(ctx, 0)
		assert.Equal(t, status.InvalidParameter, cell.Last())
	})

	t.Run("destroyed", func(t *testing.T) {
		h, c := s.CollatorOpen("")
		require.Equal(t, status.Success, c)
		require.Equal(t, status.Success, s.CollatorClose(h))
		assert.Equal(t, status.InvalidParameter, s.CollatorClose(h))
		assert.Equal(t, status.InvalidParameter, s.CollatorSetStrength(h, collator.Primary))
	})

	t.Run("kind mismatch keeps the handle", func(t *testing.T) {
		z, c := s.ZoneOpen("UTC")
		require.Equal(t, status.Success, c)
		assert.Equal(t, status.InvalidParameter, s.CollatorClose(z))
		assert.Equal(t, 0, s.ZoneRawOffset(ctx, z))
		assert.Equal(t, status.Success, cell.Last())
		require.Equal(t, status.Success, s.ZoneClose(z))
	})

	t.Run("open failure creates nothing", func(t *testing.T) {
		h, c := s.ZoneOpen("Mars/Olympus_Mons")
		assert.Equal(t, abi.Handle(0), h)
		assert.True(t, c.Failed())
	})

	assert.Empty(t, s.Live())
}

func TestEnumerations(t *testing.T) {
	t.Parallel()

	s := abi.New()
	ctx, cell := status.WithCell(context.Background())

	h := s.EnumOpenStrings(ctx, []string{"a", "b"})
	assert.Equal(t, 2, s.EnumCount(ctx, h))

	item, ok := s.EnumNext(ctx, h)
	require.True(t, ok)
	assert.Equal(t, "a", item)
	assert.Equal(t, buffer.UTF16("b"), s.EnumUnext(ctx, h))
	assert.Nil(t, s.EnumUnext(ctx, h))
	assert.Equal(t, status.Success, cell.Last())

	require.Equal(t, status.Success, s.EnumReset(h))
	item, ok = s.EnumNext(ctx, h)
	require.True(t, ok)
	assert.Equal(t, "a", item)
	require.Equal(t, status.Success, s.EnumClose(h))

	locales := s.LocaleOpenAvailable(ctx)
	assert.Equal(t, s.LocaleCountAvailable(ctx), s.EnumCount(ctx, locales))
	require.Equal(t, status.Success, s.EnumClose(locales))

	assert.Empty(t, s.LocaleAvailable(ctx, s.LocaleCountAvailable(ctx)))
	assert.Equal(t, status.IndexOutOfBounds, cell.Last())
}

func TestResultCell_ClearedBySuccess(t *testing.T) {
	t.Parallel()

	s := abi.New()
	tests := []struct {
		name string
		call func(t *testing.T, ctx context.Context)
	}{
		{"locale count", func(t *testing.T, ctx context.Context) { assert.Positive(t, s.LocaleCountAvailable(ctx)) }},
		{"collator count", func(t *testing.T, ctx context.Context) { assert.Positive(t, s.CollatorCountAvailable(ctx)) }},
		{"count code points", func(t *testing.T, ctx context.Context) {
			assert.Equal(t, 2, s.StrCountChar32(ctx, buffer.UTF16("a\U0001F600")))
		}},
		{"code point order", func(t *testing.T, ctx context.Context) {
			assert.Negative(t, s.StrCompareCodePointOrder(ctx, buffer.UTF16("a"), buffer.UTF16("b")))
		}},
		{"open strings", func(t *testing.T, ctx context.Context) {
			assert.Equal(t, status.Success, s.EnumClose(s.EnumOpenStrings(ctx, []string{"x"})))
		}},
		{"open locales", func(t *testing.T, ctx context.Context) {
			assert.Equal(t, status.Success, s.EnumClose(s.LocaleOpenAvailable(ctx)))
		}},
		{"open zone ids", func(t *testing.T, ctx context.Context) {
			assert.Equal(t, status.Success, s.EnumClose(s.ZoneOpenIDs(ctx, "")))
		}},
		{"open zone ids by offset", func(t *testing.T, ctx context.Context) {
			assert.Equal(t, status.Success, s.EnumClose(s.ZoneOpenIDsByOffset(ctx, 0)))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cell := status.WithCell(context.Background())
			s.LocaleAvailable(ctx, s.LocaleCountAvailable(ctx))
			require.Equal(t, status.IndexOutOfBounds, cell.Last())

			tt.call(t, ctx)
			assert.Equal(t, status.Success, cell.Last())
		})
	}
}

func TestBuffers(t *testing.T) {
	t.Parallel()

	s := abi.New()
	h, c := s.NumberFormatOpen(numfmt.Decimal, nil, 0, "en_US")
	require.Equal(t, status.Success, c)
	t.Cleanup(func() { _ = s.NumberFormatClose(h) })

	n, c := s.NumberFormatInt64(h, 1234, nil, 0)
	assert.Equal(t, 5, n)
	assert.Equal(t, status.BufferOverflow, c)

	dst := make([]uint16, 8)
	n, c = s.NumberFormatInt64(h, 1234, dst, len(dst))
	require.Equal(t, status.Success, c)
	assert.Equal(t, "1,234", buffer.String16(dst[:n]))
	assert.Equal(t, uint16(0), dst[n])

	n, c = s.NumberFormatInt64(h, 1234, dst, 5)
	assert.Equal(t, 5, n)
	assert.Equal(t, status.WarnStringNotTerminated, c)

	_, c = s.NumberFormatInt64(h, 1234, dst, len(dst)+1)
	assert.Equal(t, status.InvalidParameter, c)

	ctx, cell := status.WithCell(context.Background())
	src, sn := u16("x 1,234.5")
	pos := 2
	assert.InDelta(t, 1234.5, s.NumberParseDouble(ctx, h, src, sn, &pos), 1e-9)
	assert.Equal(t, status.Success, cell.Last())
	assert.Equal(t, 9, pos)
}

func TestDateFormat(t *testing.T) {
	t.Parallel()

	s := abi.New()
	pattern, pn := u16("yyyy-MM-dd HH:mm")
	h, c := s.DateFormatOpen(datefmt.Pattern, datefmt.Pattern, "en_US", "UTC", pattern, pn)
	require.Equal(t, status.Success, c)
	t.Cleanup(func() { _ = s.DateFormatClose(h) })

	date := time.Date(2024, 1, 31, 15, 4, 0, 0, time.UTC).UnixMilli()
	dst := make([]uint16, 32)
	n, c := s.DateFormat(h, date, dst, len(dst))
	require.Equal(t, status.Success, c)
	assert.Equal(t, "2024-01-31 15:04", buffer.String16(dst[:n]))

	n, c = s.DateFormatToPattern(h, false, dst, len(dst))
	require.Equal(t, status.Success, c)
	assert.Equal(t, "yyyy-MM-dd HH:mm", buffer.String16(dst[:n]))

	ctx, cell := status.WithCell(context.Background())
	src, sn := u16("2024-01-31 15:04")
	assert.Equal(t, date, s.DateParse(ctx, h, src, sn, nil))
	assert.Equal(t, status.Success, cell.Last())

	dup, c := s.DateFormatClone(h)
	require.Equal(t, status.Success, c)
	require.Equal(t, status.Success, s.DateFormatClose(dup))
}

func TestSearch(t *testing.T) {
	t.Parallel()

	s := abi.New()
	ctx, cell := status.WithCell(context.Background())

	coll, c := s.CollatorOpen("en")
	require.Equal(t, status.Success, c)

	pattern, pn := u16("abc")
	text, tn := u16("xxabcxxabc")
	h, c := s.SearchOpenFromCollator(pattern, pn, text, tn, coll)
	require.Equal(t, status.Success, c)

	assert.Equal(t, 2, s.SearchFirst(ctx, h))
	assert.Equal(t, 7, s.SearchNext(ctx, h))
	assert.Equal(t, 3, s.SearchMatchedLength(ctx, h))
	dst := make([]uint16, 8)
	n, c := s.SearchMatchedText(h, dst, len(dst))
	require.Equal(t, status.Success, c)
	assert.Equal(t, "abc", buffer.String16(dst[:n]))
	assert.Equal(t, search.Done, s.SearchNext(ctx, h))
	assert.Equal(t, status.Success, cell.Last())

	require.Equal(t, status.Success, s.SearchClose(h))
	assert.Equal(t, collator.Tertiary, s.CollatorStrength(ctx, coll))
	require.Equal(t, status.Success, s.CollatorClose(coll))
}

func TestBreakIterator(t *testing.T) {
	t.Parallel()

	s := abi.New()
	ctx, cell := status.WithCell(context.Background())

	text, tn := u16("Hello, world 42")
	h, c := s.BreakOpen(brkiter.Word, "en", text, tn)
	require.Equal(t, status.Success, c)

	var got []int
	for pos := s.BreakFirst(ctx, h); pos != brkiter.Done; pos = s.BreakNext(ctx, h) {
		got = append(got, pos)
	}
	assert.Equal(t, []int{0, 5, 6, 7, 12, 13, 15}, got)
	assert.Equal(t, status.Success, cell.Last())

	dup, c := s.BreakSafeClone(h)
	require.Equal(t, status.Success, c)
	assert.Equal(t, 12, s.BreakFollowing(ctx, dup, 7))
	assert.Equal(t, brkiter.WordLetter, s.BreakRuleStatus(ctx, dup))
	assert.Equal(t, 15, s.BreakCurrent(ctx, h))

	require.Equal(t, status.Success, s.BreakClose(dup))
	require.Equal(t, status.Success, s.BreakClose(h))
	assert.Equal(t, brkiter.Done, s.BreakNext(ctx, h))
	assert.Equal(t, status.InvalidParameter, cell.Last())
}

func TestStrings(t *testing.T) {
	t.Parallel()

	s := abi.New()

	src, sn := u16("straße")
	n, c := s.StrToUpper(nil, 0, src, sn, "de")
	assert.Equal(t, status.BufferOverflow, c)
	dst := make([]uint16, n+1)
	n, c = s.StrToUpper(dst, len(dst), src, sn, "de")
	require.Equal(t, status.Success, c)
	assert.Equal(t, "STRASSE", buffer.String16(dst[:n]))

	out := make([]byte, 16)
	n, c = s.StrToUTF8(out, len(out), src, sn)
	require.Equal(t, status.Success, c)
	assert.Equal(t, "straße", string(out[:n]))

	t.Run("chained status", func(t *testing.T) {
		dst := make([]uint16, 8)
		n, c := s.StrFromUTF8Chained(dst, len(dst), []byte("hi"), status.BufferOverflow)
		assert.Equal(t, 0, n)
		assert.Equal(t, status.BufferOverflow, c)

		n, c = s.StrFromUTF8Chained(dst, len(dst), []byte("hi"), status.WarnSortKeyTooShort)
		assert.Equal(t, 2, n)
		assert.Equal(t, status.WarnSortKeyTooShort, c)

		n, c = s.StrFromUTF8Chained(dst, 1, []byte("hi"), status.Success)
		assert.Equal(t, 2, n)
		assert.Equal(t, status.BufferOverflow, c)
	})

	t.Run("normalization", func(t *testing.T) {
		dst := make([]uint16, 8)
		src, sn := u16("café")
		n, c := s.Normalize(normalizer.NFC, src, sn, dst, len(dst))
		require.Equal(t, status.Success, c)
		assert.Equal(t, "café", buffer.String16(dst[:n]))
	})

	t.Run("character names", func(t *testing.T) {
		dst := make([]byte, 32)
		n, c := s.CharName('A', uchar.UnicodeName, dst, len(dst))
		require.Equal(t, status.Success, c)
		assert.Equal(t, "LATIN CAPITAL LETTER A", string(dst[:n]))

		r, c := s.CharFromName("latin small letter a")
		require.Equal(t, status.Success, c)
		assert.Equal(t, 'a', r)

		r, c = s.CharFromName("NO SUCH CHARACTER")
		assert.Equal(t, rune(-1), r)
		assert.Equal(t, status.InvalidCharFound, c)
	})
}
