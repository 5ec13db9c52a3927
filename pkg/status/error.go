package status

import (
	"errors"
	"fmt"
)

// Error is a failure or warning carrying its facade code, the operation that
// produced it and an optional cause.
type Error struct {
	Code ErrorCode
	Op   string
	Err  error
}

// New returns an *Error for op with the given code and cause.
func New(op string, code ErrorCode, cause error) *Error {
	return &Error{Code: code, Op: op, Err: cause}
}

// Invalid returns an InvalidParameter error for op.
func Invalid(op, format string, args ...any) *Error {
	return &Error{Code: InvalidParameter, Op: op, Err: fmt.Errorf(format, args...)}
}

// FromNative translates a native status into an error for op.
// It returns nil when n translates to Success.
func FromNative(op string, n Native, cause error) error {
	c := ToFacade(n)
	if c == Success {
		return nil
	}
	return &Error{Code: c, Op: op, Err: cause}
}

func (e *Error) Error() string {
	msg := e.Code.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches ErrorCode targets so errors.Is(err, status.BufferOverflow) works.
func (e *Error) Is(target error) bool {
	c, ok := target.(ErrorCode)
	return ok && c == e.Code
}

// Code returns the facade code of err. A nil error is Success, an error that
// carries no code is Unknown.
func Code(err error) ErrorCode {
	if err == nil {
		return Success
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	var c ErrorCode
	if errors.As(err, &c) {
		return c
	}
	return Unknown
}

// Failed reports whether err is a failure. Nil and warnings are not failures.
func Failed(err error) bool {
	return Code(err).Failed()
}
