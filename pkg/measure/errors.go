package measure

import "errors"

var (
	// ErrUnknownUnit is returned for a unit type or subtype that is not known.
	ErrUnknownUnit = errors.New("measure: unknown unit")

	// ErrNotNumeric is returned when a measure number is not numeric.
	ErrNotNumeric = errors.New("measure: number is not numeric")

	// ErrNotMeasure is returned when a formattable does not hold a measure.
	ErrNotMeasure = errors.New("measure: value is not a measure")

	// ErrInvalidWidth is returned for an unknown format width.
	ErrInvalidWidth = errors.New("measure: invalid width")
)
