package normalizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/normalizer"
	"github.com/dmitrymomot/intl/pkg/status"
)

func instance(t *testing.T, m normalizer.Mode) *normalizer.Normalizer {
	t.Helper()
	n, err := normalizer.Instance(m)
	require.NoError(t, err)
	return n
}

func TestInstance(t *testing.T) {
	t.Parallel()

	a := instance(t, normalizer.NFC)
	b := instance(t, normalizer.NFC)
	assert.Same(t, a, b, "instances are shared")
	assert.Equal(t, normalizer.NFC, a.Mode())

	_, err := normalizer.Instance(normalizer.Mode(42))
	assert.ErrorIs(t, err, status.InvalidParameter)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode normalizer.Mode
		in   string
		want string
	}{
		{normalizer.NFC, "e\u0301", "\u00e9"},
		{normalizer.NFD, "\u00e9", "e\u0301"},
		{normalizer.NFKC, "ﬁ", "fi"},
		{normalizer.NFKD, "①", "1"},
		{normalizer.NFKCCasefold, "Straße", "strasse"},
		{normalizer.NFKCCasefold, "Ａ", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String()+"/"+tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := instance(t, tt.mode).Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsNormalizedAndQuickCheck(t *testing.T) {
	t.Parallel()

	nfc := instance(t, normalizer.NFC)

	ok, err := nfc.IsNormalized("caf\u00e9")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = nfc.IsNormalized("cafe\u0301")
	require.NoError(t, err)
	assert.False(t, ok)

	q, err := nfc.QuickCheck("abc")
	require.NoError(t, err)
	assert.Equal(t, normalizer.Yes, q)
	q, err = nfc.QuickCheck("cafe\u0301")
	require.NoError(t, err)
	assert.NotEqual(t, normalizer.Yes, q)

	nfd := instance(t, normalizer.NFD)
	q, err = nfd.QuickCheck("\u00e9")
	require.NoError(t, err)
	assert.Equal(t, normalizer.No, q)
}

func TestSpanQuickCheckYes(t *testing.T) {
	t.Parallel()

	nfd := instance(t, normalizer.NFD)
	n, err := nfd.SpanQuickCheckYes("ab\u00e9cd")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = nfd.SpanQuickCheckYes("abc")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestNormalizeSecondAndAppend(t *testing.T) {
	t.Parallel()

	nfc := instance(t, normalizer.NFC)
	got, err := nfc.NormalizeSecondAndAppend("cafe", "\u0301!")
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9!", got, "the seam is renormalized")

	dst := make([]uint16, 16)
	copy(dst, buffer.UTF16("cafe"))
	n, err := nfc.NormalizeSecondAndAppendInto(dst, 4, len(dst), "\u0301")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "caf\u00e9", buffer.String16(dst[:n]))
}

func TestNormalizeInto(t *testing.T) {
	t.Parallel()

	nfd := instance(t, normalizer.NFD)

	n, err := nfd.NormalizeInto("\u00e9", nil, 0)
	assert.ErrorIs(t, err, status.BufferOverflow)
	assert.Equal(t, 2, n)

	dst := make([]uint16, n)
	n, err = nfd.NormalizeInto("\u00e9", dst, len(dst))
	assert.ErrorIs(t, err, status.WarnStringNotTerminated)
	assert.False(t, status.Failed(err))
	assert.Equal(t, []uint16{'e', 0x301}, dst[:n])

	out, err := buffer.Grow(func(dst []uint16, c int) (int, error) {
		return nfd.NormalizeInto("\u00c5", dst, c)
	})
	require.NoError(t, err)
	assert.Equal(t, "A\u030a", buffer.String16(out))
}
