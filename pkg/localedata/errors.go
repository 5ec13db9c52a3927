package localedata

import "errors"

var (
	// ErrInvalidFile is returned when a data file cannot be decoded.
	ErrInvalidFile = errors.New("localedata: invalid data file")

	// ErrInvalidStyle is returned for a style with no pattern.
	ErrInvalidStyle = errors.New("localedata: invalid format style")
)
