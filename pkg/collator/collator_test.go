package collator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/collator"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
)

func newCollator(t *testing.T, id string) *collator.Collator {
	t.Helper()
	c, err := collator.New(id)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func compare(t *testing.T, c *collator.Collator, a, b string) collator.Result {
	t.Helper()
	r, err := c.Compare(a, b)
	require.NoError(t, err)
	return r
}

func TestCompare_Tertiary(t *testing.T) {
	t.Parallel()

	c := newCollator(t, "en_US")
	require.NoError(t, c.SetStrength(collator.Tertiary))

	assert.Equal(t, collator.Less, compare(t, c, "a", "b"))
	assert.Equal(t, collator.Less, compare(t, c, "a", "A"))
	assert.Equal(t, collator.Greater, compare(t, c, "b", "A"))
	assert.Equal(t, collator.Equal, compare(t, c, "abc", "abc"))
	assert.Equal(t, collator.Equal, compare(t, c, "\u00e9", "e\u0301"), "canonical equivalents")

	ok, err := c.Greater("b", "a")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.GreaterOrEqual("a", "a")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.Equal("a", "A")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompare_LocaleRules(t *testing.T) {
	t.Parallel()

	sv := newCollator(t, "sv_SE")
	de := newCollator(t, "de_DE")

	assert.Equal(t, collator.Greater, compare(t, sv, "ä", "z"), "Swedish sorts ä after z")
	assert.Equal(t, collator.Less, compare(t, de, "ä", "z"), "German sorts ä with a")
}

func TestStrength(t *testing.T) {
	t.Parallel()

	c := newCollator(t, "en")
	s, err := c.Strength()
	require.NoError(t, err)
	assert.Equal(t, collator.Tertiary, s)

	require.NoError(t, c.SetStrength(collator.Secondary))
	assert.Equal(t, collator.Equal, compare(t, c, "a", "A"))
	assert.Equal(t, collator.Less, compare(t, c, "a", "á"))

	require.NoError(t, c.SetStrength(collator.Primary))
	assert.Equal(t, collator.Equal, compare(t, c, "a", "á"))

	v, err := c.Attribute(collator.StrengthAttribute)
	require.NoError(t, err)
	assert.Equal(t, collator.PrimaryV, v)

	require.NoError(t, c.SetStrength(collator.Identical))
	assert.Equal(t, collator.Equal, compare(t, c, "\u00e9", "e\u0301"))
	assert.Equal(t, collator.Less, compare(t, c, "a", "A"))

	require.ErrorIs(t, c.SetStrength(collator.Strength(7)), collator.ErrInvalidStrength)

	ks := newCollator(t, "en@colstrength=primary")
	s, err = ks.Strength()
	require.NoError(t, err)
	assert.Equal(t, collator.Primary, s)
}

func TestAttributes(t *testing.T) {
	t.Parallel()

	c := newCollator(t, "en")

	assert.Equal(t, collator.Less, compare(t, c, "item10", "item9"))
	require.NoError(t, c.SetAttribute(collator.NumericCollation, collator.On))
	assert.Equal(t, collator.Greater, compare(t, c, "item10", "item9"))
	v, err := c.Attribute(collator.NumericCollation)
	require.NoError(t, err)
	assert.Equal(t, collator.On, v)

	require.NoError(t, c.SetAttribute(collator.NumericCollation, collator.Default))
	assert.Equal(t, collator.Less, compare(t, c, "item10", "item9"))

	require.NoError(t, c.SetAttribute(collator.CaseFirst, collator.UpperFirst))
	require.NoError(t, c.SetAttribute(collator.AlternateHandling, collator.Shifted))
	require.NoError(t, c.SetAttribute(collator.NormalizationMode, collator.On))
	v, err = c.Attribute(collator.NormalizationMode)
	require.NoError(t, err)
	assert.Equal(t, collator.On, v)

	require.ErrorIs(t, c.SetAttribute(collator.CaseLevel, collator.Shifted), status.InvalidParameter)
	require.ErrorIs(t, c.SetAttribute(collator.Attribute(99), collator.On), collator.ErrInvalidAttribute)
	_, err = c.Attribute(collator.Attribute(99))
	require.ErrorIs(t, err, status.InvalidParameter)

	kn := newCollator(t, "en@colnumeric=yes")
	assert.Equal(t, collator.Greater, compare(t, kn, "2023-10", "2023-9"))
}

func TestSortKey(t *testing.T) {
	t.Parallel()

	c := newCollator(t, "en")
	words := []string{"apple", "Apple", "banana", "ápple"}
	for _, a := range words {
		for _, b := range words {
			ka, err := c.SortKey(a)
			require.NoError(t, err)
			kb, err := c.SortKey(b)
			require.NoError(t, err)
			assert.Equal(t, compare(t, c, a, b), collator.CompareKeys(ka, kb), "%q vs %q", a, b)
		}
	}

	t.Run("preflight then fill", func(t *testing.T) {
		t.Parallel()

		c := newCollator(t, "en")
		want, err := c.SortKey("hello")
		require.NoError(t, err)

		n, err := c.SortKeyInto("hello", nil, 0)
		require.ErrorIs(t, err, status.WarnSortKeyTooShort)
		require.False(t, status.Failed(err))
		require.Equal(t, len(want), n)

		short := make([]byte, n-1)
		n, err = c.SortKeyInto("hello", short, len(short))
		require.ErrorIs(t, err, status.WarnSortKeyTooShort)
		assert.Equal(t, want[:len(short)], short)

		dst := make([]byte, n)
		n, err = c.SortKeyInto("hello", dst, n)
		require.NoError(t, err)
		assert.Equal(t, want, dst[:n])
	})
}

func TestSort(t *testing.T) {
	t.Parallel()

	c := newCollator(t, "en")
	items := []string{"b", "A", "c", "a"}
	require.NoError(t, c.Sort(items))
	assert.Equal(t, []string{"a", "A", "b", "c"}, items)
}

func TestCloneAndClose(t *testing.T) {
	t.Parallel()

	c, err := collator.New("en")
	require.NoError(t, err)

	clone, err := c.Clone()
	require.NoError(t, err)
	require.NoError(t, clone.SetStrength(collator.Primary))

	assert.Equal(t, collator.Less, compare(t, c, "a", "A"), "original keeps tertiary")
	assert.Equal(t, collator.Equal, compare(t, clone, "a", "A"))

	require.NoError(t, c.Close())
	assert.Equal(t, collator.Equal, compare(t, clone, "a", "A"), "clone outlives original")
	require.NoError(t, clone.Close())

	_, err = c.Compare("a", "b")
	require.ErrorIs(t, err, handle.ErrDestroyed)
	require.ErrorIs(t, c.Close(), status.InvalidParameter)

	var nilColl *collator.Collator
	require.ErrorIs(t, nilColl.Close(), handle.ErrNil)

	_, err = collator.New("??")
	require.ErrorIs(t, err, status.InvalidParameter)
}

func TestAvailable(t *testing.T) {
	t.Parallel()

	n := collator.CountAvailable()
	require.Positive(t, n)
	_, err := collator.Available(n - 1)
	require.NoError(t, err)
	_, err = collator.Available(n)
	require.ErrorIs(t, err, status.IndexOutOfBounds)

	e := collator.OpenAvailable()
	defer e.Close()
	count, err := e.Count()
	require.NoError(t, err)
	assert.Equal(t, n, count)
}
