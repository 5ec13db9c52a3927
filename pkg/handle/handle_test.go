package handle_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
)

type widget struct {
	lc   handle.Lifecycle
	name string
}

func newWidget(kind, name string) *widget {
	w := &widget{name: name}
	w.lc.Open(kind)
	return w
}

func (w *widget) Close() error {
	if w == nil {
		return handle.Nil("widget.Close")
	}
	return w.lc.Release("widget.Close")
}

func TestLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("zero value is unbound", func(t *testing.T) {
		t.Parallel()

		var lc handle.Lifecycle
		assert.Equal(t, handle.Unbound, lc.State())
		assert.Equal(t, uuid.Nil, lc.TraceID())
		err := lc.Check("op")
		require.ErrorIs(t, err, status.InvalidParameter)
		require.ErrorIs(t, err, handle.ErrNil)
	})

	t.Run("open then release", func(t *testing.T) {
		t.Parallel()

		w := newWidget("test.open", "a")
		require.NoError(t, w.lc.Check("op"))
		assert.True(t, w.lc.Live())
		assert.Equal(t, "test.open", w.lc.Kind())
		assert.NotEqual(t, uuid.Nil, w.lc.TraceID())

		require.NoError(t, w.Close())
		assert.Equal(t, handle.Destroyed, w.lc.State())
		assert.Equal(t, "destroyed", w.lc.State().String())
	})

	t.Run("double release is a checked error", func(t *testing.T) {
		t.Parallel()

		w := newWidget("test.double", "a")
		require.NoError(t, w.Close())
		err := w.Close()
		require.ErrorIs(t, err, status.InvalidParameter)
		require.ErrorIs(t, err, handle.ErrDestroyed)
		require.ErrorIs(t, w.lc.Check("use"), handle.ErrDestroyed)
	})

	t.Run("nil handle", func(t *testing.T) {
		t.Parallel()

		var w *widget
		require.ErrorIs(t, w.Close(), handle.ErrNil)
		var lc *handle.Lifecycle
		require.ErrorIs(t, lc.Check("op"), handle.ErrNil)
		assert.Equal(t, handle.Unbound, lc.State())
	})

	t.Run("clones have independent lifetimes", func(t *testing.T) {
		t.Parallel()

		a := newWidget("test.clone", "a")
		b := newWidget("test.clone", a.name)
		assert.NotEqual(t, a.lc.TraceID(), b.lc.TraceID())

		require.NoError(t, b.Close())
		require.NoError(t, a.lc.Check("op"))
		require.NoError(t, a.Close())
	})
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	const kind = "test.snapshot"
	a := newWidget(kind, "a")
	b := newWidget(kind, "b")
	assert.Equal(t, int64(2), handle.LiveCount(kind))
	assert.Equal(t, int64(2), handle.Snapshot()[kind])

	require.NoError(t, a.Close())
	assert.Equal(t, int64(1), handle.LiveCount(kind))
	require.NoError(t, b.Close())
	_, ok := handle.Snapshot()[kind]
	assert.False(t, ok)
}

func TestRef(t *testing.T) {
	t.Parallel()

	t.Run("owned ref releases", func(t *testing.T) {
		t.Parallel()

		w := newWidget("test.ref", "owned")
		r := handle.Own(w)
		assert.True(t, r.Owned())
		assert.Same(t, w, r.Get())
		require.NoError(t, r.Release())
		assert.Equal(t, handle.Destroyed, w.lc.State())
		assert.False(t, r.Bound())
		require.NoError(t, r.Release())
	})

	t.Run("borrowed ref leaves the handle usable", func(t *testing.T) {
		t.Parallel()

		w := newWidget("test.ref", "borrowed")
		r := handle.Borrow(w)
		require.NoError(t, r.Release())
		require.NoError(t, w.lc.Check("op"))
		require.NoError(t, w.Close())
	})

	t.Run("replace releases the previous owned handle", func(t *testing.T) {
		t.Parallel()

		first := newWidget("test.ref", "first")
		second := newWidget("test.ref", "second")
		r := handle.Own(first)
		require.NoError(t, r.Replace(handle.Borrow(second)))
		assert.Equal(t, handle.Destroyed, first.lc.State())
		assert.Same(t, second, r.Get())
		assert.False(t, r.Owned())
		require.NoError(t, second.Close())
	})
}

func TestTable(t *testing.T) {
	t.Parallel()

	tbl := handle.NewTable()
	w := newWidget("test.table", "a")
	id := tbl.Put(w)
	require.NotZero(t, id)
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, 1, tbl.Kinds()["*handle_test.widget"])

	t.Run("get returns the stored value", func(t *testing.T) {
		got, err := handle.Get[*widget](tbl, id, "op")
		require.NoError(t, err)
		assert.Same(t, w, got)
	})

	t.Run("kind mismatch", func(t *testing.T) {
		_, err := handle.Get[string](tbl, id, "op")
		require.ErrorIs(t, err, status.InvalidParameter)
		require.ErrorIs(t, err, handle.ErrKindMismatch)
		_, err = handle.Take[int](tbl, id, "op")
		require.ErrorIs(t, err, handle.ErrKindMismatch)
		assert.Equal(t, 1, tbl.Len())
	})

	t.Run("zero and unknown ids", func(t *testing.T) {
		_, err := handle.Get[*widget](tbl, 0, "op")
		require.ErrorIs(t, err, handle.ErrNil)
		_, err = handle.Get[*widget](tbl, 9999, "op")
		require.ErrorIs(t, err, handle.ErrUnknownID)
	})

	t.Run("take removes and ids are not reused", func(t *testing.T) {
		got, err := handle.Take[*widget](tbl, id, "op")
		require.NoError(t, err)
		require.NoError(t, got.Close())
		_, err = handle.Get[*widget](tbl, id, "op")
		require.True(t, errors.Is(err, handle.ErrUnknownID))

		next := tbl.Put("x")
		assert.Greater(t, next, id)
	})
}
