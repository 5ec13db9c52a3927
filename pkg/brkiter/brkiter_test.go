package brkiter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/brkiter"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
)

func open(t *testing.T, typ brkiter.Type, text string) *brkiter.Iterator {
	t.Helper()
	it, err := brkiter.New(typ, "en_US", text)
	require.NoError(t, err)
	t.Cleanup(func() { _ = it.Close() })
	return it
}

func forward(t *testing.T, it *brkiter.Iterator) []int {
	t.Helper()
	pos, err := it.First()
	require.NoError(t, err)
	out := []int{pos}
	for {
		pos, err = it.Next()
		require.NoError(t, err)
		if pos == brkiter.Done {
			return out
		}
		out = append(out, pos)
	}
}

func TestBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  brkiter.Type
		text string
		want []int
	}{
		{"characters with combining mark and emoji", brkiter.Character, "e\u0301\U0001F600", []int{0, 2, 4}},
		{"words", brkiter.Word, "Hello, world 42", []int{0, 5, 6, 7, 12, 13, 15}},
		{"lines", brkiter.Line, "Hello world", []int{0, 6, 11}},
		{"sentences", brkiter.Sentence, "Hi there. How are you?", []int{0, 10, 22}},
		{"empty text", brkiter.Word, "", []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, forward(t, open(t, tt.typ, tt.text)))
		})
	}
}

func TestRuleStatus(t *testing.T) {
	t.Parallel()

	t.Run("words", func(t *testing.T) {
		t.Parallel()

		it := open(t, brkiter.Word, "Hello, world 42")
		want := map[int]int{5: brkiter.WordLetter, 6: brkiter.WordNone, 12: brkiter.WordLetter, 15: brkiter.WordNumber}
		for off, rule := range want {
			ok, err := it.IsBoundary(off)
			require.NoError(t, err)
			require.True(t, ok)
			got, err := it.RuleStatus()
			require.NoError(t, err)
			assert.Equal(t, rule, got, "boundary %d", off)
		}
	})

	t.Run("hard line break", func(t *testing.T) {
		t.Parallel()

		it := open(t, brkiter.Line, "a\nb c")
		pos, err := it.Following(0)
		require.NoError(t, err)
		assert.Equal(t, 2, pos)
		rule, err := it.RuleStatus()
		require.NoError(t, err)
		assert.Equal(t, brkiter.LineHard, rule)

		pos, err = it.Next()
		require.NoError(t, err)
		assert.Equal(t, 4, pos)
		rule, err = it.RuleStatus()
		require.NoError(t, err)
		assert.Equal(t, brkiter.LineSoft, rule)
	})
}

func TestNavigation(t *testing.T) {
	t.Parallel()

	it := open(t, brkiter.Word, "Hello, world 42")

	pos, err := it.Last()
	require.NoError(t, err)
	assert.Equal(t, 15, pos)
	pos, err = it.Next()
	require.NoError(t, err)
	assert.Equal(t, brkiter.Done, pos)
	pos, err = it.Current()
	require.NoError(t, err)
	assert.Equal(t, 15, pos, "position stays at the end")

	pos, err = it.Previous()
	require.NoError(t, err)
	assert.Equal(t, 13, pos)

	pos, err = it.Following(8)
	require.NoError(t, err)
	assert.Equal(t, 12, pos)
	pos, err = it.Preceding(8)
	require.NoError(t, err)
	assert.Equal(t, 7, pos)
	pos, err = it.Preceding(0)
	require.NoError(t, err)
	assert.Equal(t, brkiter.Done, pos)
	pos, err = it.Following(15)
	require.NoError(t, err)
	assert.Equal(t, brkiter.Done, pos)

	ok, err := it.IsBoundary(3)
	require.NoError(t, err)
	assert.False(t, ok)
	pos, err = it.Current()
	require.NoError(t, err)
	assert.Equal(t, 5, pos, "moved to the following boundary")
}

func TestSetText(t *testing.T) {
	t.Parallel()

	it := open(t, brkiter.Word, "one two")
	_, err := it.Last()
	require.NoError(t, err)

	require.NoError(t, it.SetText("x"))
	pos, err := it.Current()
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
	assert.Equal(t, []int{0, 1}, forward(t, it))
}

func TestClone(t *testing.T) {
	t.Parallel()

	it := open(t, brkiter.Word, "one two three")
	_, err := it.Following(4)
	require.NoError(t, err)

	c, err := it.Clone()
	require.NoError(t, err)
	pos, err := c.Current()
	require.NoError(t, err)
	assert.Equal(t, 7, pos, "clone keeps the position")

	require.NoError(t, it.Close())
	assert.Equal(t, []int{0, 3, 4, 7, 8, 13}, forward(t, c), "clone outlives the original")
	require.NoError(t, c.Close())
}

func TestSafeClone(t *testing.T) {
	t.Parallel()

	it := open(t, brkiter.Sentence, "One. Two. Three.")
	want := forward(t, it)

	var wg sync.WaitGroup
	for range 4 {
		c, err := it.SafeClone()
		require.NoError(t, err)
		wg.Go(func() {
			defer func() { _ = c.Close() }()
			var got []int
			for pos, _ := c.First(); pos != brkiter.Done; pos, _ = c.Next() {
				got = append(got, pos)
			}
			assert.Equal(t, want, got)
		})
	}
	wg.Wait()
}

func TestErrors(t *testing.T) {
	t.Parallel()

	_, err := brkiter.New(brkiter.Type(9), "en", "x")
	assert.ErrorIs(t, err, status.InvalidParameter)

	it, err := brkiter.New(brkiter.Character, "", "x")
	require.NoError(t, err)
	require.NoError(t, it.Close())
	_, err = it.Next()
	assert.ErrorIs(t, err, handle.ErrDestroyed)

	var nilIt *brkiter.Iterator
	_, err = nilIt.First()
	assert.ErrorIs(t, err, handle.ErrNil)
}
