// Package native turns errors returned by the wrapped libraries into native
// status codes, so every module reports through the same translation table.
package native

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"strconv"

	"github.com/dmitrymomot/intl/internal/diag"
	"github.com/dmitrymomot/intl/pkg/status"
)

// subtagError is implemented by golang.org/x/text/language.ValueError.
type subtagError interface {
	error
	Subtag() string
}

// Classify returns the native status for err. Errors the classifier does not
// recognize get fallback.
func Classify(err error, fallback status.Native) status.Native {
	if err == nil {
		return status.ZeroError
	}

	var se *status.Error
	if errors.As(err, &se) {
		return status.ToNative(se.Code)
	}
	var code status.ErrorCode
	if errors.As(err, &code) {
		return status.ToNative(code)
	}

	var ve subtagError
	var ne *strconv.NumError
	switch {
	case errors.As(err, &ve):
		return status.IllegalArgumentError
	case errors.Is(err, fs.ErrNotExist):
		return status.MissingResourceError
	case errors.Is(err, fs.ErrPermission):
		return status.FileAccessError
	case errors.Is(err, fs.ErrInvalid):
		return status.IllegalArgumentError
	case errors.As(err, &ne):
		if errors.Is(ne.Err, strconv.ErrRange) {
			return status.InvalidFormatError
		}
		return status.ParseError
	}
	return fallback
}

// Wrap classifies err and returns the translated facade error for op, or nil.
func Wrap(op string, err error, fallback status.Native) error {
	if err == nil {
		return nil
	}
	var se *status.Error
	if errors.As(err, &se) {
		return err
	}
	n := Classify(err, fallback)
	if !status.Mapped(n) {
		diag.Warn(context.Background(), "native status has no facade mapping",
			slog.String("op", op), slog.Int("native", int(n)))
	}
	return status.FromNative(op, n, err)
}

// Chain runs fn only when the pre-seeded status in is not a failure, the way
// chained native calls pass one status through a sequence. A warning in is
// kept unless fn fails.
func Chain(in status.Native, fn func() error) status.Native {
	if in.Failure() {
		return in
	}
	if n := Classify(fn(), status.InternalProgramError); n != status.ZeroError {
		return n
	}
	return in
}
