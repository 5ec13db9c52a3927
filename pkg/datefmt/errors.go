package datefmt

import "errors"

var (
	// ErrInvalidStyle is returned for an unknown date or time style.
	ErrInvalidStyle = errors.New("datefmt: invalid style")

	// ErrStyleMismatch is returned when only one of the two styles is Pattern.
	ErrStyleMismatch = errors.New("datefmt: pattern style must be used for both date and time")

	// ErrRelativeStyle is returned for date styles carrying the Relative flag.
	ErrRelativeStyle = errors.New("datefmt: relative styles are not supported")

	// ErrUnknownLetter is returned for an unquoted pattern letter with no field.
	ErrUnknownLetter = errors.New("datefmt: unknown pattern letter")

	// ErrUnterminatedQuote is returned when a quoted literal is not closed.
	ErrUnterminatedQuote = errors.New("datefmt: unterminated quote in pattern")

	// ErrNotDate is returned when a formattable does not hold a date.
	ErrNotDate = errors.New("datefmt: value is not a date")

	// ErrParse is returned when text does not match the pattern.
	ErrParse = errors.New("datefmt: text does not match the pattern")

	// ErrInvalidSymbol is returned for an unknown symbol type or an index past its end.
	ErrInvalidSymbol = errors.New("datefmt: invalid symbol type or index")
)
