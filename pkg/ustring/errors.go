package ustring

import "errors"

var (
	ErrInvalidUTF8   = errors.New("ustring: invalid UTF-8 sequence")
	ErrTruncatedUTF8 = errors.New("ustring: truncated UTF-8 sequence")

	// ErrLoneSurrogate is returned when UTF-16 input holds an unpaired surrogate.
	ErrLoneSurrogate = errors.New("ustring: unpaired surrogate")

	// ErrInvalidSubstitute is returned when the substitution character is not a valid code point.
	ErrInvalidSubstitute = errors.New("ustring: substitute is not a valid code point")
)
