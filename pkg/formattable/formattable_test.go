package formattable_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/formattable"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
)

type object struct {
	closed int
	clones int
}

func (o *object) Close() error {
	o.closed++
	return nil
}

type cloneable struct{ object }

func (c *cloneable) CloneObject() (handle.Closer, error) {
	c.clones++
	return &cloneable{}, nil
}

func TestFormattable_Types(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		f       *formattable.Formattable
		typ     formattable.Type
		numeric bool
	}{
		{"default", formattable.New(), formattable.Long, true},
		{"double", formattable.NewDouble(1.5), formattable.Double, true},
		{"long", formattable.NewLong(7), formattable.Long, true},
		{"int64", formattable.NewInt64(1 << 40), formattable.Int64, true},
		{"date", formattable.NewDate(86_400_000), formattable.Date, false},
		{"string", formattable.NewString("abc"), formattable.String, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			defer tt.f.Close()
			typ, err := tt.f.Type()
			require.NoError(t, err)
			assert.Equal(t, tt.typ, typ)
			numeric, err := tt.f.IsNumeric()
			require.NoError(t, err)
			assert.Equal(t, tt.numeric, numeric)
		})
	}
}

func TestFormattable_Getters(t *testing.T) {
	t.Parallel()

	t.Run("numeric conversions", func(t *testing.T) {
		t.Parallel()
		f := formattable.NewDouble(-42.9)
		defer f.Close()

		d, err := f.Double()
		require.NoError(t, err)
		assert.InDelta(t, -42.9, d, 1e-9)
		l, err := f.Long()
		require.NoError(t, err)
		assert.Equal(t, int32(-42), l)
		i, err := f.Int64()
		require.NoError(t, err)
		assert.Equal(t, int64(-42), i)
	})

	t.Run("long overflow", func(t *testing.T) {
		t.Parallel()
		f := formattable.NewInt64(math.MaxInt32 + 1)
		defer f.Close()
		_, err := f.Long()
		assert.ErrorIs(t, err, status.InvalidFormat)
		assert.ErrorIs(t, err, formattable.ErrOverflow)

		require.NoError(t, f.SetDouble(math.NaN()))
		_, err = f.Int64()
		assert.ErrorIs(t, err, formattable.ErrOverflow)
	})

	t.Run("type mismatch", func(t *testing.T) {
		t.Parallel()
		f := formattable.NewString("x")
		defer f.Close()
		_, err := f.Double()
		assert.ErrorIs(t, err, status.InvalidFormat)
		_, err = f.Date()
		assert.ErrorIs(t, err, formattable.ErrTypeMismatch)
		_, err = f.Array()
		assert.ErrorIs(t, err, status.InvalidFormat)
		_, err = f.Object()
		assert.ErrorIs(t, err, status.InvalidFormat)

		s, err := f.StringValue()
		require.NoError(t, err)
		assert.Equal(t, "x", s)
	})

	t.Run("date", func(t *testing.T) {
		t.Parallel()
		f := formattable.NewDate(1_700_000_000_000)
		defer f.Close()
		ms, err := f.Date()
		require.NoError(t, err)
		assert.Equal(t, int64(1_700_000_000_000), ms)
		_, err = f.Double()
		assert.ErrorIs(t, err, status.InvalidFormat)
	})
}

func TestFormattable_Setters(t *testing.T) {
	t.Parallel()

	f := formattable.New()
	defer f.Close()

	require.NoError(t, f.SetString("hello"))
	typ, _ := f.Type()
	assert.Equal(t, formattable.String, typ)

	require.NoError(t, f.SetInt64(5))
	_, err := f.StringValue()
	assert.ErrorIs(t, err, status.InvalidFormat)
	v, err := f.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	obj := &object{}
	require.NoError(t, f.SetObject(obj))
	got, err := f.Object()
	require.NoError(t, err)
	assert.Same(t, obj, got)

	require.NoError(t, f.SetDate(10))
	assert.Equal(t, 1, obj.closed, "replacing an object releases it")

	assert.ErrorIs(t, f.SetObject(nil), status.InvalidParameter)
}

func TestFormattable_Array(t *testing.T) {
	t.Parallel()

	a := formattable.NewLong(1)
	b := formattable.NewString("two")
	arr, err := formattable.NewArray(a, b)
	require.NoError(t, err)
	defer arr.Close()

	require.NoError(t, a.Close())
	require.NoError(t, b.Close())

	items, err := arr.Array()
	require.NoError(t, err)
	require.Len(t, items, 2)
	s, err := items[1].StringValue()
	require.NoError(t, err)
	assert.Equal(t, "two", s)

	item, err := arr.ArrayItem(0)
	require.NoError(t, err)
	l, err := item.Long()
	require.NoError(t, err)
	assert.Equal(t, int32(1), l)

	_, err = arr.ArrayItem(2)
	assert.ErrorIs(t, err, status.InvalidParameter)

	_, err = formattable.NewArray(a)
	assert.ErrorIs(t, err, handle.ErrDestroyed)

	require.NoError(t, arr.SetDouble(1))
	assert.ErrorIs(t, item.Close(), handle.ErrDestroyed, "elements are released with the array value")
}

func TestFormattable_Equal(t *testing.T) {
	t.Parallel()

	x, err := formattable.NewArray(formattable.NewLong(1), formattable.NewString("a"))
	require.NoError(t, err)
	defer x.Close()
	y, err := x.Clone()
	require.NoError(t, err)
	defer y.Close()

	eq, err := x.Equal(y)
	require.NoError(t, err)
	assert.True(t, eq)

	items, err := y.Array()
	require.NoError(t, err)
	require.NoError(t, items[1].SetString("b"))
	eq, err = x.Equal(y)
	require.NoError(t, err)
	assert.False(t, eq)

	l, i := formattable.NewLong(3), formattable.NewInt64(3)
	defer l.Close()
	defer i.Close()
	eq, err = l.Equal(i)
	require.NoError(t, err)
	assert.False(t, eq, "types differ")
}

func TestFormattable_Object(t *testing.T) {
	t.Parallel()

	t.Run("clone through cloner", func(t *testing.T) {
		t.Parallel()
		obj := &cloneable{}
		f, err := formattable.NewObject(obj)
		require.NoError(t, err)
		c, err := f.Clone()
		require.NoError(t, err)
		assert.Equal(t, 1, obj.clones)

		got, err := c.Object()
		require.NoError(t, err)
		assert.NotSame(t, obj, got)

		require.NoError(t, f.Close())
		assert.Equal(t, 1, obj.closed)
		require.NoError(t, c.Close())
		assert.Equal(t, 1, got.(*cloneable).closed)
	})

	t.Run("plain object cannot be cloned", func(t *testing.T) {
		t.Parallel()
		f, err := formattable.NewObject(&object{})
		require.NoError(t, err)
		defer f.Close()
		_, err = f.Clone()
		assert.ErrorIs(t, err, status.NotSupported)
	})
}

func TestFormattable_Lifecycle(t *testing.T) {
	t.Parallel()

	f := formattable.NewDouble(1)
	c, err := f.Clone()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = f.Double()
	assert.ErrorIs(t, err, handle.ErrDestroyed)
	assert.ErrorIs(t, f.Close(), handle.ErrDestroyed)

	d, err := c.Double()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d, 0)
	require.NoError(t, c.Close())

	var nilF *formattable.Formattable
	_, err = nilF.Type()
	assert.ErrorIs(t, err, handle.ErrNil)
	assert.ErrorIs(t, nilF.Close(), handle.ErrNil)
}
