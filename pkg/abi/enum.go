package abi

import (
	"context"

	"github.com/dmitrymomot/intl/pkg/enum"
	"github.com/dmitrymomot/intl/pkg/handle"
)

// EnumOpenStrings enumerates a copy of items.
func (s *Surface) EnumOpenStrings(ctx context.Context, items []string) Handle {
	return record(ctx, s.put("abi.EnumOpenStrings", enum.FromStrings(items...)), nil)
}

// EnumCount returns the number of items of h. The count of an enumeration
// whose source changed records EnumOutOfSync.
func (s *Surface) EnumCount(ctx context.Context, h Handle) int {
	e, err := handle.Get[*enum.Enumeration](s.table, h, "abi.EnumCount")
	if err != nil {
		return record(ctx, 0, err)
	}
	n, err := e.Count()
	return record(ctx, n, err)
}

// EnumNext returns the next item of h, or ok false at the end.
func (s *Surface) EnumNext(ctx context.Context, h Handle) (item string, ok bool) {
	e, err := handle.Get[*enum.Enumeration](s.table, h, "abi.EnumNext")
	if err != nil {
		return record(ctx, "", err), false
	}
	item, ok, err = e.Next()
	return record(ctx, item, err), ok && err == nil
}

// EnumUnext is EnumNext returning UTF-16. The end of the enumeration is a
// nil slice.
func (s *Surface) EnumUnext(ctx context.Context, h Handle) []uint16 {
	e, err := handle.Get[*enum.Enumeration](s.table, h, "abi.EnumUnext")
	if err != nil {
		return record[[]uint16](ctx, nil, err)
	}
	u, _, err := e.NextUnits()
	return record(ctx, u, err)
}

// EnumReset rewinds h and resynchronizes it with its source.
func (s *Surface) EnumReset(h Handle) ErrorCode {
	e, err := handle.Get[*enum.Enumeration](s.table, h, "abi.EnumReset")
	if err != nil {
		return code(err)
	}
	return code(e.Reset())
}

// EnumClose destroys h.
func (s *Surface) EnumClose(h Handle) ErrorCode {
	return destroy[*enum.Enumeration](s, "abi.EnumClose", h)
}
