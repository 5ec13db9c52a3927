package patterngen

import "errors"

var (
	// ErrEmptySkeleton is returned when a skeleton contains no pattern fields.
	ErrEmptySkeleton = errors.New("patterngen: skeleton has no fields")

	// ErrUnknownLetter is returned for a pattern letter with no date field.
	ErrUnknownLetter = errors.New("patterngen: unknown pattern letter")

	// ErrUnterminatedQuote is returned when a quoted literal is not closed.
	ErrUnterminatedQuote = errors.New("patterngen: unterminated quote in pattern")
)
