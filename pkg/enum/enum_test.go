package enum_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/enum"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
)

func drain(t *testing.T, e *enum.Enumeration) []string {
	t.Helper()
	var out []string
	for {
		item, ok, err := e.Next()
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, item)
	}
}

func TestEnumeration_Exhaustion(t *testing.T) {
	t.Parallel()

	e := enum.FromStrings("en", "fr", "de_CH")
	t.Cleanup(func() { _ = e.Close() })

	n, err := e.Count()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	for i := range n {
		_, ok, err := e.Next()
		require.NoError(t, err)
		require.True(t, ok, "item %d", i)
	}
	_, ok, err := e.Next()
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, _ = e.Next()
	assert.False(t, ok)

	require.NoError(t, e.Reset())
	first, ok, err := e.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "en", first)
}

func TestEnumeration_NextUnits(t *testing.T) {
	t.Parallel()

	e := enum.FromStrings("Europe/Zürich", "UTC")
	defer e.Close()

	u, ok, err := e.NextUnits()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Europe/Zürich", buffer.String16(u))

	u, ok, err = e.NextUnits()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "UTC", buffer.String16(u))

	u, ok, err = e.NextUnits()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, u)
}

func TestEnumeration_OutOfSync(t *testing.T) {
	t.Parallel()

	list := enum.NewList("a", "b")
	e := enum.New(list)
	defer e.Close()

	item, ok, err := e.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", item)

	list.Append("c")

	_, _, err = e.Next()
	require.ErrorIs(t, err, status.EnumOutOfSync)
	require.ErrorIs(t, err, enum.ErrOutOfSync)
	_, err = e.Count()
	require.ErrorIs(t, err, status.EnumOutOfSync)
	_, err = enum.Collect(e)
	require.ErrorIs(t, err, status.EnumOutOfSync)

	require.NoError(t, e.Reset())
	assert.Equal(t, []string{"a", "b", "c"}, drain(t, e))
}

func TestEnumeration_Tracking(t *testing.T) {
	t.Parallel()

	var version uint64
	items := []string{"x"}
	loads := 0
	src := enum.NewTracking(func() ([]string, error) {
		loads++
		return items, nil
	}, func() uint64 { return version })

	e := enum.New(src)
	defer e.Close()
	assert.Equal(t, []string{"x"}, drain(t, e))

	version++
	items = []string{"y", "z"}
	_, _, err := e.Next()
	require.ErrorIs(t, err, status.EnumOutOfSync)

	require.NoError(t, e.Reset())
	assert.Equal(t, []string{"y", "z"}, drain(t, e), "reset picks up the replaced resource")
	assert.Equal(t, 2, loads)
}

func TestEnumeration_Lazy(t *testing.T) {
	t.Parallel()

	t.Run("pulls on demand", func(t *testing.T) {
		t.Parallel()

		pulled := 0
		e := enum.FromSeq(func(yield func(string) bool) {
			for _, s := range []string{"one", "two", "three"} {
				pulled++
				if !yield(s) {
					return
				}
			}
		})
		defer e.Close()

		item, ok, err := e.Next()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "one", item)
		assert.Equal(t, 1, pulled)

		n, err := e.Count()
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, 3, pulled)

		require.NoError(t, e.Reset())
		assert.Equal(t, []string{"one", "two", "three"}, drain(t, e))
		assert.Equal(t, 3, pulled)
	})

	t.Run("source error", func(t *testing.T) {
		t.Parallel()

		boom := status.New("zones", status.FileAccess, errors.New("disk"))
		e := enum.New(enum.NewLazy(func(yield func(string, error) bool) {
			if !yield("first", nil) {
				return
			}
			yield("", boom)
		}))
		defer e.Close()

		_, ok, err := e.Next()
		require.NoError(t, err)
		require.True(t, ok)
		_, _, err = e.Next()
		require.ErrorIs(t, err, status.FileAccess)
	})

	t.Run("close stops the iterator early", func(t *testing.T) {
		t.Parallel()

		stopped := false
		e := enum.FromSeq(func(yield func(string) bool) {
			defer func() { stopped = true }()
			for {
				if !yield("again") {
					return
				}
			}
		})
		_, _, err := e.Next()
		require.NoError(t, err)
		require.NoError(t, e.Close())
		assert.True(t, stopped)
	})
}

func TestEnumeration_All(t *testing.T) {
	t.Parallel()

	e := enum.FromStrings("a", "b", "c")
	defer e.Close()

	_, _, err := e.Next()
	require.NoError(t, err)

	var first, second []string
	for s, err := range e.All() {
		require.NoError(t, err)
		first = append(first, s)
	}
	for s, err := range e.All() {
		require.NoError(t, err)
		second = append(second, s)
		if len(second) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b", "c"}, first)
	assert.Equal(t, []string{"a", "b"}, second)

	item, ok, err := e.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", item, "All does not move the cursor")

	got, err := enum.Collect(e)
	require.NoError(t, err)
	assert.True(t, slices.Equal(first, got))
}

func TestEnumeration_Lifecycle(t *testing.T) {
	t.Parallel()

	e := enum.FromStrings("a")
	require.NoError(t, e.Close())
	_, _, err := e.Next()
	require.ErrorIs(t, err, handle.ErrDestroyed)
	require.ErrorIs(t, e.Reset(), handle.ErrDestroyed)
	require.ErrorIs(t, e.Close(), status.InvalidParameter)

	var nilEnum *enum.Enumeration
	_, err = nilEnum.Count()
	require.ErrorIs(t, err, handle.ErrNil)
}
