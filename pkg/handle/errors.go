package handle

import "errors"

var (
	// ErrNil is returned when an operation receives an unbound handle.
	ErrNil = errors.New("handle: unbound handle")

	// ErrDestroyed is returned when a handle is used after it was released.
	ErrDestroyed = errors.New("handle: handle already destroyed")

	// ErrUnknownID is returned for IDs never issued by, or already removed from, a Table.
	ErrUnknownID = errors.New("handle: unknown handle id")

	// ErrKindMismatch is returned when an ID refers to a value of another type.
	ErrKindMismatch = errors.New("handle: handle kind mismatch")
)
