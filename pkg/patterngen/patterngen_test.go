package patterngen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/enum"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/patterngen"
	"github.com/dmitrymomot/intl/pkg/status"
)

func open(t *testing.T, id string) *patterngen.Generator {
	t.Helper()
	g, err := patterngen.New(id)
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func TestGenerator_BestPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       string
		skeleton string
		want     string
	}{
		{"en_US", "yMMMd", "MMM d, y"},
		{"en_US", "yMMMMd", "MMMM d, y"},
		{"en_US", "MMMMd", "MMMM d"},
		{"en_US", "yyyyMMdd", "MM/dd/yyyy"},
		{"en_US", "jm", "h:mm a"},
		{"en_US", "jmm", "h:mm a"},
		{"en_US", "Hms", "HH:mm:ss"},
		{"en_US", "HmsSSS", "HH:mm:ss.SSS"},
		{"en_US", "yMMMdHm", "MMM d, y, HH:mm"},
		{"en_US", "yMMMEd", "E, MMM d, y"},
		{"en_US", "yMMMEEEEd", "EEEE, MMM d, y"},
		{"de_DE", "yMd", "d.M.y"},
		{"de_DE", "yyyyMMdd", "dd.MM.yyyy"},
		{"de_DE", "jm", "HH:mm"},
		{"de_DE", "HmsSSS", "HH:mm:ss,SSS"},
		{"de_DE", "yMMMdjm", "d. MMM y, HH:mm"},
	}
	for _, tt := range tests {
		t.Run(tt.id+"/"+tt.skeleton, func(t *testing.T) {
			t.Parallel()
			g := open(t, tt.id)
			got, err := g.BestPattern(tt.skeleton)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerator_BestPattern_Errors(t *testing.T) {
	t.Parallel()

	g := open(t, "en_US")

	_, err := g.BestPattern("")
	assert.ErrorIs(t, err, status.InvalidParameter)
	assert.ErrorIs(t, err, patterngen.ErrEmptySkeleton)

	_, err = g.BestPattern("yMMMdT")
	assert.ErrorIs(t, err, status.InvalidFormat)

	_, err = g.BestPattern("y'MM")
	assert.ErrorIs(t, err, status.PatternSyntax)
}

func TestGenerator_Skeletons(t *testing.T) {
	t.Parallel()

	g := open(t, "en_US")

	tests := []struct {
		pattern string
		full    string
		base    string
	}{
		{"dd-MMM", "MMMdd", "MMMd"},
		{"h:mm a", "ahmm", "ahm"},
		{"EEEE, MMMM d, y", "yMMMMEEEEd", "yMMMMEd"},
		{"'at' HH:mm", "HHmm", "Hm"},
		{"LLL yyyy", "yyyyMMM", "yMMM"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			t.Parallel()
			full, err := g.Skeleton(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.full, full)
			base, err := g.BaseSkeleton(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.base, base)
		})
	}
}

func TestGenerator_AddPattern(t *testing.T) {
	t.Parallel()

	g := open(t, "en_US")

	skeletons, err := g.OpenSkeletons()
	require.NoError(t, err)
	defer func() { _ = skeletons.Close() }()
	before, err := skeletons.Count()
	require.NoError(t, err)

	conflicting, conflict, err := g.AddPattern("d 'of' MMMM", false)
	require.NoError(t, err)
	assert.Equal(t, patterngen.NoConflict, conflict)
	assert.Empty(t, conflicting)

	got, err := g.BestPattern("MMMMd")
	require.NoError(t, err)
	assert.Equal(t, "d 'of' MMMM", got)

	p, err := g.PatternForSkeleton("MMMMd")
	require.NoError(t, err)
	assert.Equal(t, "d 'of' MMMM", p)

	_, _, err = skeletons.Next()
	assert.ErrorIs(t, err, enum.ErrOutOfSync)
	require.NoError(t, skeletons.Reset())
	after, err := skeletons.Count()
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	t.Run("kept without override", func(t *testing.T) {
		conflicting, conflict, err := g.AddPattern("MMMM/d", false)
		require.NoError(t, err)
		assert.Equal(t, patterngen.BaseConflict, conflict)
		assert.Equal(t, "d 'of' MMMM", conflicting)

		p, err := g.PatternForSkeleton("MMMMd")
		require.NoError(t, err)
		assert.Equal(t, "d 'of' MMMM", p)
	})

	t.Run("replaced with override", func(t *testing.T) {
		conflicting, conflict, err := g.AddPattern("MMMM/d", true)
		require.NoError(t, err)
		assert.Equal(t, patterngen.Conflict, conflict)
		assert.Equal(t, "d 'of' MMMM", conflicting)

		p, err := g.PatternForSkeleton("MMMMd")
		require.NoError(t, err)
		assert.Equal(t, "MMMM/d", p)
	})

	t.Run("invalid", func(t *testing.T) {
		_, _, err := g.AddPattern("', '", false)
		assert.ErrorIs(t, err, status.InvalidParameter)
		_, _, err = g.AddPattern("d 'of", false)
		assert.ErrorIs(t, err, status.PatternSyntax)
	})

	missing, err := g.PatternForSkeleton("GGGGQQQQ")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestGenerator_BaseSkeletons(t *testing.T) {
	t.Parallel()

	g := open(t, "en_US")
	bases, err := g.OpenBaseSkeletons()
	require.NoError(t, err)
	defer func() { _ = bases.Close() }()

	all, err := enum.Collect(bases)
	require.NoError(t, err)
	assert.Contains(t, all, "yMMMd")
	assert.Contains(t, all, "Hm")
	assert.NotContains(t, all, "yyMd")
}

func TestGenerator_Settings(t *testing.T) {
	t.Parallel()

	g := open(t, "en_US")

	glue, err := g.DateTimeFormat()
	require.NoError(t, err)
	assert.Equal(t, "{1}, {0}", glue)

	require.NoError(t, g.SetDateTimeFormat("{1} 'at' {0}"))
	got, err := g.BestPattern("yMMMdHm")
	require.NoError(t, err)
	assert.Equal(t, "MMM d, y 'at' HH:mm", got)
	assert.ErrorIs(t, g.SetDateTimeFormat("{1}"), status.InvalidParameter)

	dec, err := g.Decimal()
	require.NoError(t, err)
	assert.Equal(t, ".", dec)
	require.NoError(t, g.SetDecimal(","))
	got, err = g.BestPattern("HmsSS")
	require.NoError(t, err)
	assert.Equal(t, "HH:mm:ss,SS", got)

	replaced, err := g.ReplaceFieldTypes("d.M.y", "ddMMyyyy")
	require.NoError(t, err)
	assert.Equal(t, "dd.MM.yyyy", replaced)
	replaced, err = g.ReplaceFieldTypes("d MMM y", "dMMMMy")
	require.NoError(t, err)
	assert.Equal(t, "d MMMM y", replaced)
}

func TestGenerator_Lifecycle(t *testing.T) {
	t.Parallel()

	g, err := patterngen.New("en_US")
	require.NoError(t, err)
	assert.Equal(t, patterngen.Kind, g.Kind())

	c, err := g.Clone()
	require.NoError(t, err)
	_, _, err = c.AddPattern("d 'of' MMMM", false)
	require.NoError(t, err)

	p, err := g.PatternForSkeleton("MMMMd")
	require.NoError(t, err)
	assert.Empty(t, p)
	p, err = c.PatternForSkeleton("MMMMd")
	require.NoError(t, err)
	assert.Equal(t, "d 'of' MMMM", p)

	require.NoError(t, c.Close())
	require.NoError(t, g.Close())
	_, err = g.BestPattern("yMd")
	assert.ErrorIs(t, err, handle.ErrDestroyed)
	assert.ErrorIs(t, g.Close(), handle.ErrDestroyed)

	var nilGen *patterngen.Generator
	_, err = nilGen.BestPattern("yMd")
	assert.ErrorIs(t, err, handle.ErrNil)
}
