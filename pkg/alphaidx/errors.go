package alphaidx

import "errors"

var (
	// ErrNoBucket is returned when bucket accessors run without a current bucket.
	ErrNoBucket = errors.New("alphaidx: no current bucket")

	// ErrNoRecord is returned when record accessors run without a current record.
	ErrNoRecord = errors.New("alphaidx: no current record")

	// ErrOutOfSync is returned when the index changes during iteration.
	ErrOutOfSync = errors.New("alphaidx: index changed since iteration started")

	// ErrMaxLabelCount is returned for a label count limit below one.
	ErrMaxLabelCount = errors.New("alphaidx: label count limit must be positive")
)
