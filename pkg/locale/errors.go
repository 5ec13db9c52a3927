package locale

import "errors"

var (
	// ErrEmptyID is returned when a locale ID is required but empty.
	ErrEmptyID = errors.New("locale: empty locale id")

	// ErrMalformedID is returned for a locale ID that cannot be parsed.
	ErrMalformedID = errors.New("locale: malformed locale id")

	// ErrUnknownKeyword is returned for a keyword with no BCP 47 extension key.
	ErrUnknownKeyword = errors.New("locale: keyword has no BCP 47 form")

	// ErrInvalidKeyword is returned for a keyword value that is not valid.
	ErrInvalidKeyword = errors.New("locale: invalid keyword value")

	// ErrNoAvailableList is returned when Accept-Language matching gets no available locales.
	ErrNoAvailableList = errors.New("locale: no available locales to match against")
)
