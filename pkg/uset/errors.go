package uset

import "errors"

var (
	// ErrSyntax is returned for a malformed set pattern.
	ErrSyntax = errors.New("uset: malformed set pattern")

	// ErrEscape is returned for an invalid escape sequence in a pattern.
	ErrEscape = errors.New("uset: invalid escape sequence")

	// ErrUnknownProperty is returned for a property name or value that is not known.
	ErrUnknownProperty = errors.New("uset: unknown property")

	// ErrFrozen is returned when a frozen set is modified.
	ErrFrozen = errors.New("uset: set is frozen")

	// ErrIndex is returned for an item index past the end of the set.
	ErrIndex = errors.New("uset: item index out of range")

	// ErrCodePoint is returned for a value outside 0..10FFFF.
	ErrCodePoint = errors.New("uset: invalid code point")
)
