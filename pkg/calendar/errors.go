package calendar

import "errors"

var (
	// ErrInvalidField is returned for an unknown calendar field.
	ErrInvalidField = errors.New("calendar: invalid field")

	// ErrFieldValue is returned when a field value is out of range in non-lenient mode.
	ErrFieldValue = errors.New("calendar: field value out of range")

	// ErrUnsupportedType is returned for calendars other than Gregorian.
	ErrUnsupportedType = errors.New("calendar: only the Gregorian calendar is supported")

	// ErrInvalidAttribute is returned for an unknown attribute.
	ErrInvalidAttribute = errors.New("calendar: invalid attribute")
)
