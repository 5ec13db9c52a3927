package timezone

import "errors"

var (
	// ErrUnknownZone is returned when no zone has the requested ID.
	ErrUnknownZone = errors.New("timezone: unknown zone")

	// ErrInvalidID is returned for a malformed zone ID.
	ErrInvalidID = errors.New("timezone: invalid zone ID")

	// ErrInvalidOffset is returned when a custom GMT offset is out of range.
	ErrInvalidOffset = errors.New("timezone: custom offset out of range")

	// ErrInvalidStyle is returned for an unknown display name style.
	ErrInvalidStyle = errors.New("timezone: invalid display style")
)
