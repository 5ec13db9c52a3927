package buffer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/status"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	require.NoError(t, buffer.Check[byte](nil, 0))
	require.NoError(t, buffer.Check(make([]uint16, 4), 2))
	require.ErrorIs(t, buffer.Check[byte](nil, 3), buffer.ErrNilBuffer)
	require.ErrorIs(t, buffer.Check(make([]byte, 2), -1), buffer.ErrNegativeCapacity)
	require.ErrorIs(t, buffer.Check(make([]byte, 2), 3), status.InvalidParameter)
}

func TestFill(t *testing.T) {
	t.Parallel()

	src := buffer.UTF16("Grüße")

	t.Run("preflight with nil buffer", func(t *testing.T) {
		t.Parallel()

		n, err := buffer.Fill(nil, 0, src, buffer.NulTerminated)
		require.ErrorIs(t, err, status.BufferOverflow)
		assert.Equal(t, len(src), n)
	})

	t.Run("empty content fits a nil buffer", func(t *testing.T) {
		t.Parallel()

		n, err := buffer.Fill[uint16](nil, 0, nil, buffer.Unterminated)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("exact size is idempotent with a larger buffer", func(t *testing.T) {
		t.Parallel()

		n, _ := buffer.Fill(nil, 0, src, buffer.Unterminated)

		exact := make([]uint16, n)
		got, err := buffer.Fill(exact, n, src, buffer.Unterminated)
		require.NoError(t, err)
		assert.Equal(t, n, got)

		large := make([]uint16, n+10)
		got, err = buffer.Fill(large, len(large), src, buffer.Unterminated)
		require.NoError(t, err)
		assert.Equal(t, n, got)
		assert.Equal(t, exact, large[:n])
	})

	t.Run("exact fill under nul termination warns", func(t *testing.T) {
		t.Parallel()

		dst := make([]uint16, len(src))
		n, err := buffer.Fill(dst, len(dst), src, buffer.NulTerminated)
		require.ErrorIs(t, err, status.WarnStringNotTerminated)
		assert.False(t, status.Failed(err))
		assert.Equal(t, len(src), n)
		assert.Equal(t, src, dst)
	})

	t.Run("terminator written when room remains", func(t *testing.T) {
		t.Parallel()

		dst := []uint16{9, 9, 9, 9, 9, 9, 9}
		n, err := buffer.Fill(dst, len(dst), src, buffer.NulTerminated)
		require.NoError(t, err)
		assert.Equal(t, uint16(0), dst[n])
		assert.Equal(t, uint16(9), dst[n+1])
	})

	t.Run("overflow never writes past capacity", func(t *testing.T) {
		t.Parallel()

		out := []byte("hello world")
		for capacity := range len(out) {
			dst := []byte(strings.Repeat("#", len(out)+2))
			n, err := buffer.Fill(dst, capacity, out, buffer.NulTerminated)
			require.ErrorIs(t, err, status.BufferOverflow)
			assert.Equal(t, len(out), n)
			assert.Equal(t, out[:capacity], dst[:capacity])
			assert.Equal(t, strings.Repeat("#", len(dst)-capacity), string(dst[capacity:]))
		}
	})

	t.Run("invalid buffer", func(t *testing.T) {
		t.Parallel()

		_, err := buffer.FillString(nil, 4, "abc", buffer.Unterminated)
		require.ErrorIs(t, err, status.InvalidParameter)
	})
}

func TestGrow(t *testing.T) {
	t.Parallel()

	calls := 0
	fill := func(dst []uint16, capacity int) (int, error) {
		calls++
		return buffer.FillUTF16(dst, capacity, "naïve 😀", buffer.NulTerminated)
	}
	out, err := buffer.Grow(fill)
	require.NoError(t, err)
	assert.Equal(t, "naïve 😀", buffer.String16(out))
	assert.Equal(t, 2, calls)

	empty, err := buffer.Grow(func(dst []byte, capacity int) (int, error) {
		return buffer.FillString(dst, capacity, "", buffer.NulTerminated)
	})
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = buffer.Grow(func([]byte, int) (int, error) {
		return 0, status.New("op", status.Parse, nil)
	})
	require.ErrorIs(t, err, status.Parse)
}

func TestInput16(t *testing.T) {
	t.Parallel()

	units := append(buffer.UTF16("abc"), 0, 'x')

	s, err := buffer.Input16(units, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	s, err = buffer.Input16(units, 2)
	require.NoError(t, err)
	assert.Equal(t, "ab", s)

	_, err = buffer.Input16(units[:3], -1)
	require.ErrorIs(t, err, status.InvalidParameter)
	_, err = buffer.Input16(units, 99)
	require.ErrorIs(t, err, status.InvalidParameter)
	_, err = buffer.Input16(units, -2)
	require.ErrorIs(t, err, status.InvalidParameter)

	assert.Equal(t, 3, buffer.Len16("a😀"))
}
