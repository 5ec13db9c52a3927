// Package abi is the flat surface of the library: one method per operation,
// opaque integer handles instead of pointers, status codes instead of Go
// errors and caller-provided buffers for text.
//
// Methods either return an ErrorCode next to their results, or return a
// plain value and record the status in the result cell carried by ctx (see
// status.WithCell). Text goes in as UTF-16 with a length, -1 meaning
// NUL-terminated, and comes out through dst and capacity with the full
// length returned, so a call with capacity 0 preflights the size.
package abi

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/intl/internal/diag"
	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
)

// Handle is an opaque handle. Zero is unbound.
type Handle = handle.ID

// ErrorCode is the status every operation reports.
type ErrorCode = status.ErrorCode

// Surface owns the handle table of one caller. Safe for concurrent use;
// the handles themselves are not.
type Surface struct {
	table *handle.Table
}

// New creates a surface with an empty handle table.
func New() *Surface {
	return &Surface{table: handle.NewTable()}
}

// Live returns the number of handles created and not yet destroyed, by Go
// type.
func (s *Surface) Live() map[string]int { return s.table.Kinds() }

// code maps err to its status code.
func code(err error) ErrorCode { return status.Code(err) }

func (s *Surface) put(op string, v handle.Closer) Handle {
	h := s.table.Put(v)
	diag.Debug(context.Background(), "handle created", slog.String("op", op), slog.Uint64("handle", uint64(h)))
	return h
}

// create stores the result of a constructor.
func create[T handle.Closer](s *Surface, op string, v T, err error) (Handle, ErrorCode) {
	if err != nil {
		return 0, code(err)
	}
	return s.put(op, v), status.Success
}

// destroy removes h and closes its value.
func destroy[T handle.Closer](s *Surface, op string, h Handle) ErrorCode {
	v, err := handle.Take[T](s.table, h, op)
	if err != nil {
		return code(err)
	}
	diag.Debug(context.Background(), "handle destroyed", slog.String("op", op), slog.Uint64("handle", uint64(h)))
	return code(v.Close())
}

// text fills dst with s as UTF-16 under the NUL-terminated convention.
func text(dst []uint16, capacity int, s string, err error) (int, ErrorCode) {
	if err != nil {
		return 0, code(err)
	}
	n, err := buffer.FillUTF16(dst, capacity, s, buffer.NulTerminated)
	return n, code(err)
}

// chars fills dst with the bytes of s under the NUL-terminated convention.
func chars(dst []byte, capacity int, s string, err error) (int, ErrorCode) {
	if err != nil {
		return 0, code(err)
	}
	n, err := buffer.FillString(dst, capacity, s, buffer.NulTerminated)
	return n, code(err)
}

// record stores the status of err in the cell of ctx and returns v.
func record[T any](ctx context.Context, v T, err error) T {
	status.Record(ctx, err)
	if status.Failed(err) {
		var zero T
		return zero
	}
	return v
}
