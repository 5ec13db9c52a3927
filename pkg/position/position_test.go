package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/position"
	"github.com/dmitrymomot/intl/pkg/status"
)

func TestFieldPosition(t *testing.T) {
	t.Parallel()

	p := position.NewField(3)
	defer p.Close()

	p.Record(2, 0, 4)
	end, err := p.EndIndex()
	require.NoError(t, err)
	assert.Zero(t, end, "other fields are ignored")

	p.Record(3, 5, 9)
	p.Record(3, 12, 14)
	begin, err := p.BeginIndex()
	require.NoError(t, err)
	end, err = p.EndIndex()
	require.NoError(t, err)
	assert.Equal(t, []int{5, 9}, []int{begin, end}, "first occurrence wins")

	c, err := p.Clone()
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, p.SetField(position.DontCare))
	begin, _ = p.BeginIndex()
	assert.Zero(t, begin)
	field, err := c.Field()
	require.NoError(t, err)
	assert.Equal(t, 3, field)
	begin, _ = c.BeginIndex()
	assert.Equal(t, 5, begin)

	require.NoError(t, p.SetBeginIndex(1))
	require.NoError(t, p.SetEndIndex(2))
	assert.ErrorIs(t, p.SetBeginIndex(-1), status.InvalidParameter)
}

func TestParsePosition(t *testing.T) {
	t.Parallel()

	_, err := position.NewParse(-1)
	require.ErrorIs(t, err, status.InvalidParameter)

	p, err := position.NewParse(2)
	require.NoError(t, err)
	defer p.Close()

	idx, err := p.Index()
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	errIdx, err := p.ErrorIndex()
	require.NoError(t, err)
	assert.Equal(t, -1, errIdx)

	require.NoError(t, p.SetIndex(7))
	require.NoError(t, p.SetErrorIndex(4))
	c, err := p.Clone()
	require.NoError(t, err)
	require.NoError(t, p.SetErrorIndex(-1))

	errIdx, _ = c.ErrorIndex()
	assert.Equal(t, 4, errIdx)
	idx, _ = c.Index()
	assert.Equal(t, 7, idx)
	require.NoError(t, c.Close())

	assert.ErrorIs(t, p.SetErrorIndex(-2), status.InvalidParameter)
	assert.ErrorIs(t, p.SetIndex(-1), status.InvalidParameter)
}

func TestPosition_Lifecycle(t *testing.T) {
	t.Parallel()

	f := position.NewField(0)
	require.NoError(t, f.Close())
	_, err := f.Field()
	assert.ErrorIs(t, err, handle.ErrDestroyed)
	f.Record(0, 1, 2)

	p, err := position.NewParse(0)
	require.NoError(t, err)
	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.Close(), handle.ErrDestroyed)

	var nilF *position.FieldPosition
	assert.ErrorIs(t, nilF.Close(), handle.ErrNil)
	nilF.Record(0, 0, 1)
	var nilP *position.ParsePosition
	_, err = nilP.Index()
	assert.ErrorIs(t, err, handle.ErrNil)
}
