// Package buffer implements preflight-then-fill output into caller buffers.
//
// A text-producing operation computes its full result, then Fill copies at
// most capacity units into the caller's slice and reports the total size.
// Passing a nil slice with capacity 0 is a pure size query:
//
//	n, err := buffer.Fill(nil, 0, out, buffer.NulTerminated) // err is BufferOverflow, n is the size
//	dst := make([]uint16, n+1)
//	n, err = buffer.Fill(dst, len(dst), out, buffer.NulTerminated)
//
// Grow collapses both calls into one for callers that just want the result.
package buffer

import (
	"errors"

	"github.com/dmitrymomot/intl/pkg/status"
)

// Unit is an output code unit: a byte for narrow text, a uint16 for UTF-16.
type Unit interface {
	~byte | ~uint16
}

// Convention selects whether output is terminated when room remains.
type Convention uint8

const (
	// Unterminated output never gets a terminator.
	Unterminated Convention = iota
	// NulTerminated output gets a zero unit after the content when it fits.
	// Content that exactly fills the buffer yields WarnStringNotTerminated.
	NulTerminated
)

var (
	// ErrNegativeCapacity is returned for a capacity below zero.
	ErrNegativeCapacity = errors.New("buffer: negative capacity")

	// ErrNilBuffer is returned when a nil buffer comes with a positive capacity.
	ErrNilBuffer = errors.New("buffer: nil buffer with non-zero capacity")

	// ErrShortBuffer is returned when the capacity is larger than the buffer.
	ErrShortBuffer = errors.New("buffer: capacity exceeds buffer length")
)

// Check validates a caller buffer. The only valid nil buffer has capacity 0.
func Check[T Unit](dst []T, capacity int) error {
	switch {
	case capacity < 0:
		return status.New("buffer.Check", status.InvalidParameter, ErrNegativeCapacity)
	case dst == nil && capacity > 0:
		return status.New("buffer.Check", status.InvalidParameter, ErrNilBuffer)
	case capacity > len(dst):
		return status.New("buffer.Check", status.InvalidParameter, ErrShortBuffer)
	}
	return nil
}

// Fill copies min(len(src), capacity) units of src into dst and returns
// len(src). It reports BufferOverflow when src does not fit, and
// WarnStringNotTerminated when src exactly fills capacity under NulTerminated.
// Nothing is written past capacity.
func Fill[T Unit](dst []T, capacity int, src []T, conv Convention) (int, error) {
	if err := Check(dst, capacity); err != nil {
		return 0, err
	}
	n := len(src)
	copy(dst[:capacity], src)
	switch {
	case n > capacity:
		return n, status.New("buffer.Fill", status.BufferOverflow, nil)
	case n == capacity:
		if conv == NulTerminated {
			return n, status.New("buffer.Fill", status.WarnStringNotTerminated, nil)
		}
	case conv == NulTerminated:
		dst[n] = 0
	}
	return n, nil
}

// FillString is Fill for narrow text.
func FillString(dst []byte, capacity int, src string, conv Convention) (int, error) {
	return Fill(dst, capacity, []byte(src), conv)
}

// FillUTF16 is Fill for UTF-16 output of a Go string.
func FillUTF16(dst []uint16, capacity int, src string, conv Convention) (int, error) {
	return Fill(dst, capacity, UTF16(src), conv)
}

// Grow runs a buffer-filling function twice, once to learn the size and once
// into an exactly sized buffer, and returns the content without terminator.
func Grow[T Unit](fn func(dst []T, capacity int) (int, error)) ([]T, error) {
	n, err := fn(nil, 0)
	if status.Failed(err) && !errors.Is(err, status.BufferOverflow) {
		return nil, err
	}
	if n == 0 {
		return []T{}, nil
	}
	dst := make([]T, n)
	n, err = fn(dst, n)
	if status.Failed(err) {
		return nil, err
	}
	return dst[:n], nil
}
