package abi

import (
	"context"

	"github.com/dmitrymomot/intl/pkg/brkiter"
	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
)

// BreakOpen creates a boundary iterator of typ for locale id over text.
// Offsets are UTF-16 indexes into text.
func (s *Surface) BreakOpen(typ brkiter.Type, id string, src []uint16, srcLength int) (Handle, ErrorCode) {
	t, err := buffer.Input16(src, srcLength)
	if err != nil {
		return 0, code(err)
	}
	it, err := brkiter.New(typ, id, t)
	return create(s, "abi.BreakOpen", it, err)
}

// BreakSafeClone creates an iterator sharing the boundaries of h, for use on
// another goroutine.
func (s *Surface) BreakSafeClone(h Handle) (Handle, ErrorCode) {
	it, err := handle.Get[*brkiter.Iterator](s.table, h, "abi.BreakSafeClone")
	if err != nil {
		return 0, code(err)
	}
	dup, err := it.SafeClone()
	return create(s, "abi.BreakSafeClone", dup, err)
}

// BreakClose destroys h.
func (s *Surface) BreakClose(h Handle) ErrorCode {
	return destroy[*brkiter.Iterator](s, "abi.BreakClose", h)
}

// BreakSetText points h at new text and rewinds it.
func (s *Surface) BreakSetText(h Handle, src []uint16, srcLength int) ErrorCode {
	it, err := handle.Get[*brkiter.Iterator](s.table, h, "abi.BreakSetText")
	if err != nil {
		return code(err)
	}
	t, err := buffer.Input16(src, srcLength)
	if err != nil {
		return code(err)
	}
	return code(it.SetText(t))
}

// BreakFirst moves h to the start of the text.
func (s *Surface) BreakFirst(ctx context.Context, h Handle) int {
	return s.boundary(ctx, h, "abi.BreakFirst", (*brkiter.Iterator).First)
}

// BreakLast moves h to the end of the text.
func (s *Surface) BreakLast(ctx context.Context, h Handle) int {
	return s.boundary(ctx, h, "abi.BreakLast", (*brkiter.Iterator).Last)
}

// BreakNext moves h to the next boundary, or returns brkiter.Done.
func (s *Surface) BreakNext(ctx context.Context, h Handle) int {
	return s.boundary(ctx, h, "abi.BreakNext", (*brkiter.Iterator).Next)
}

// BreakPrevious moves h to the previous boundary.
func (s *Surface) BreakPrevious(ctx context.Context, h Handle) int {
	return s.boundary(ctx, h, "abi.BreakPrevious", (*brkiter.Iterator).Previous)
}

// BreakCurrent returns the boundary h is at.
func (s *Surface) BreakCurrent(ctx context.Context, h Handle) int {
	return s.boundary(ctx, h, "abi.BreakCurrent", (*brkiter.Iterator).Current)
}

// BreakFollowing moves h to the first boundary after offset.
func (s *Surface) BreakFollowing(ctx context.Context, h Handle, offset int) int {
	return s.boundary(ctx, h, "abi.BreakFollowing", func(it *brkiter.Iterator) (int, error) {
		return it.Following(offset)
	})
}

// BreakPreceding moves h to the last boundary before offset.
func (s *Surface) BreakPreceding(ctx context.Context, h Handle, offset int) int {
	return s.boundary(ctx, h, "abi.BreakPreceding", func(it *brkiter.Iterator) (int, error) {
		return it.Preceding(offset)
	})
}

// BreakRuleStatus returns the status of the rule that produced the current
// boundary.
func (s *Surface) BreakRuleStatus(ctx context.Context, h Handle) int {
	return s.boundary(ctx, h, "abi.BreakRuleStatus", (*brkiter.Iterator).RuleStatus)
}

func (s *Surface) boundary(ctx context.Context, h Handle, op string, fn func(*brkiter.Iterator) (int, error)) int {
	it, err := handle.Get[*brkiter.Iterator](s.table, h, op)
	if err != nil {
		status.Record(ctx, err)
		return brkiter.Done
	}
	pos, err := fn(it)
	status.Record(ctx, err)
	return pos
}
