package uset_test

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
	"github.com/dmitrymomot/intl/pkg/uset"
)

func pattern(t *testing.T, p string) *uset.Set {
	t.Helper()
	s, err := uset.NewPattern(p)
	require.NoError(t, err, p)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func contains(t *testing.T, s *uset.Set, r rune) bool {
	t.Helper()
	ok, err := s.Contains(r)
	require.NoError(t, err)
	return ok
}

func TestNewPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		in      []rune
		out     []rune
	}{
		{"[a-z]", []rune{'a', 'm', 'z'}, []rune{'A', '{'}},
		{"[^a-z]", []rune{'A', '0', 0x10ffff}, []rune{'a', 'z'}},
		{`[A-C x]`, []rune{'A', 'B', 'C', 'x'}, []rune{'D', ' '}},
		{`\p{Lu}`, []rune{'A', 'Ω'}, []rune{'a', '1'}},
		{`\P{L}`, []rune{'1', ' '}, []rune{'a'}},
		{"[:Greek:]", []rune{'α', 'Ω'}, []rune{'a'}},
		{"[[:^Greek:]&[a-c]]", []rune{'a', 'c'}, []rune{'α', 'd'}},
		{`[\p{sc=Cyrillic}]`, []rune{'я'}, []rune{'a'}},
		{"[[a-z]-[aeiou]]", []rune{'b', 'z'}, []rune{'a', 'e'}},
		{"[-a]", []rune{'-', 'a'}, []rune{'b'}},
		{`[\N{EURO SIGN}]`, []rune{0x20ac}, []rune{'E'}},
		{"[[:White_Space:]]", []rune{' ', '\n'}, []rune{'x'}},
		{`[\x{1F600}]`, []rune{0x1f600}, []rune{0x1f601}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			t.Parallel()

			s := pattern(t, tt.pattern)
			for _, r := range tt.in {
				assert.True(t, contains(t, s, r), "U+%04X in %s", r, tt.pattern)
			}
			for _, r := range tt.out {
				assert.False(t, contains(t, s, r), "U+%04X not in %s", r, tt.pattern)
			}
		})
	}
}

func TestNewPattern_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		code    status.ErrorCode
	}{
		{"[a-z", status.PatternSyntax},
		{"a-z]", status.PatternSyntax},
		{"[z-a]", status.PatternSyntax},
		{"[a]x", status.PatternSyntax},
		{`[\u12]`, status.IllegalEscapeSequence},
		{`[\N{NOT A NAME}]`, status.IllegalEscapeSequence},
		{`\p{NoSuchProperty}`, status.InvalidParameter},
	}
	for _, tt := range tests {
		_, err := uset.NewPattern(tt.pattern)
		assert.ErrorIs(t, err, tt.code, tt.pattern)
	}
}

func TestStrings(t *testing.T) {
	t.Parallel()

	s := pattern(t, "[a{ch}{ll}]")
	ok, err := s.ContainsString("ch")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.ContainsString("a")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.ContainsString("c")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, s.RemoveString("ll"))
	require.NoError(t, s.AddString("b"))
	p, err := s.ToPattern(false)
	require.NoError(t, err)
	assert.Equal(t, "[ab{ch}]", p)
}

func TestMutation(t *testing.T) {
	t.Parallel()

	s := uset.New()
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.AddRange('a', 'f'))
	require.NoError(t, s.Add('h'))
	require.NoError(t, s.Remove('c'))
	require.NoError(t, s.RemoveRange('e', 'e'))

	count, err := s.ItemCount()
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	var got [][2]rune
	for lo, hi := range s.All() {
		got = append(got, [2]rune{lo, hi})
	}
	assert.Equal(t, [][2]rune{{'a', 'b'}, {'d', 'd'}, {'f', 'f'}, {'h', 'h'}}, got)

	lo, hi, str, err := s.Item(0)
	require.NoError(t, err)
	assert.Equal(t, 'a', lo)
	assert.Equal(t, 'b', hi)
	assert.Empty(t, str)
	_, _, _, err = s.Item(4)
	assert.ErrorIs(t, err, status.IndexOutOfBounds)

	ok, err := s.ContainsRange('a', 'b')
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.ContainsRange('a', 'd')
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Complement())
	assert.False(t, contains(t, s, 'a'))
	assert.True(t, contains(t, s, 'c'))

	require.NoError(t, s.Clear())
	empty, err := s.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)

	assert.ErrorIs(t, s.Add(-1), status.InvalidParameter)
}

func TestNewRange(t *testing.T) {
	t.Parallel()

	s, err := uset.NewRange('0', '9')
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	n, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	empty, err := uset.NewRange('9', '0')
	require.NoError(t, err)
	t.Cleanup(func() { _ = empty.Close() })
	n, err = empty.Size()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestToPattern(t *testing.T) {
	t.Parallel()

	s := pattern(t, "[ a - c ]")
	p, err := s.ToPattern(false)
	require.NoError(t, err)
	assert.Equal(t, "[ a - c ]", p, "unmodified sets keep their source pattern")

	require.NoError(t, s.Add('-'))
	require.NoError(t, s.Add(0xe9))
	p, err = s.ToPattern(false)
	require.NoError(t, err)
	assert.Equal(t, `[\-a-cé]`, p)

	p, err = s.ToPattern(true)
	require.NoError(t, err)
	assert.Equal(t, `[\-a-c\u00E9]`, p)

	back := pattern(t, p)
	for _, r := range []rune{'-', 'a', 'b', 'c', 0xe9} {
		assert.True(t, contains(t, back, r))
	}
}

func TestFreeze(t *testing.T) {
	t.Parallel()

	s := pattern(t, "[a-z]")
	require.NoError(t, s.Freeze())
	assert.True(t, s.IsFrozen())

	assert.ErrorIs(t, s.Add('0'), status.NoWritePermission)
	assert.ErrorIs(t, s.Clear(), status.NoWritePermission)
	assert.ErrorIs(t, s.Complement(), status.NoWritePermission)
	assert.True(t, contains(t, s, 'q'), "reads still work")

	frozen, err := s.Clone()
	require.NoError(t, err)
	t.Cleanup(func() { _ = frozen.Close() })
	assert.True(t, frozen.IsFrozen())

	thawed, err := s.CloneAsThawed()
	require.NoError(t, err)
	t.Cleanup(func() { _ = thawed.Close() })
	assert.False(t, thawed.IsFrozen())
	require.NoError(t, thawed.Add('0'))
	assert.False(t, contains(t, s, '0'), "clones are independent")
}

func TestRangeTable(t *testing.T) {
	t.Parallel()

	s := pattern(t, `[a-c\U0001F600-\U0001F602]`)
	rt, err := s.RangeTable()
	require.NoError(t, err)
	assert.True(t, unicode.Is(rt, 'b'))
	assert.True(t, unicode.Is(rt, 0x1f601))
	assert.False(t, unicode.Is(rt, 'd'))

	from, err := uset.NewFromTable(unicode.Greek)
	require.NoError(t, err)
	t.Cleanup(func() { _ = from.Close() })
	assert.True(t, contains(t, from, 'λ'))
}

func TestClosed(t *testing.T) {
	t.Parallel()

	s := uset.New()
	require.NoError(t, s.Close())
	_, err := s.Contains('a')
	assert.ErrorIs(t, err, handle.ErrDestroyed)
	assert.ErrorIs(t, s.Add('a'), handle.ErrDestroyed)
}
