package native_test

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/intl/internal/native"
	"github.com/dmitrymomot/intl/pkg/status"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	_, langErr := language.Parse("en-XXXXXXXXX")
	require.Error(t, langErr)
	_, numErr := strconv.Atoi("12x")
	_, rangeErr := strconv.ParseInt("99999999999999999999", 10, 64)

	tests := []struct {
		name string
		err  error
		want status.Native
	}{
		{"nil", nil, status.ZeroError},
		{"facade error", status.New("op", status.BufferOverflow, nil), status.BufferOverflowError},
		{"bare code", fmt.Errorf("x: %w", status.IndexOutOfBounds), status.IndexOutOfBoundsError},
		{"not exist", fmt.Errorf("open: %w", fs.ErrNotExist), status.MissingResourceError},
		{"permission", fs.ErrPermission, status.FileAccessError},
		{"number syntax", numErr, status.ParseError},
		{"number range", rangeErr, status.InvalidFormatError},
		{"unknown", errors.New("strange"), status.InternalProgramError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, native.Classify(tt.err, status.InternalProgramError))
		})
	}

	assert.NotEqual(t, status.ZeroError, native.Classify(langErr, status.IllegalArgumentError))
}

func TestWrap(t *testing.T) {
	t.Parallel()

	require.NoError(t, native.Wrap("op", nil, status.InternalProgramError))

	err := native.Wrap("locale.Parse", fs.ErrNotExist, status.InternalProgramError)
	require.ErrorIs(t, err, status.MissingResource)
	require.ErrorIs(t, err, fs.ErrNotExist)

	orig := status.New("op", status.Parse, nil)
	require.Same(t, orig, native.Wrap("other", orig, status.InternalProgramError))

	err = native.Wrap("op", errors.New("x"), status.InputTooLongError)
	require.ErrorIs(t, err, status.Unknown)
}

func TestChain(t *testing.T) {
	t.Parallel()

	called := false
	got := native.Chain(status.BufferOverflowError, func() error { called = true; return nil })
	assert.Equal(t, status.BufferOverflowError, got)
	assert.False(t, called)

	assert.Equal(t, status.ZeroError, native.Chain(status.ZeroError, func() error { return nil }))
	assert.Equal(t, status.UsingDefaultWarning, native.Chain(status.UsingDefaultWarning, func() error { return nil }))
	assert.Equal(t, status.ParseError, native.Chain(status.ZeroError, func() error { return status.Parse }))
}
