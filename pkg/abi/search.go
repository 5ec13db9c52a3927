package abi

import (
	"context"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/collator"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/search"
	"github.com/dmitrymomot/intl/pkg/status"
)

// SearchOpen creates a searcher for pattern in text with a collator of
// locale id that the searcher owns.
func (s *Surface) SearchOpen(pattern []uint16, patternLength int, text []uint16, textLength int, id string) (Handle, ErrorCode) {
	p, t, err := inputs(pattern, patternLength, text, textLength)
	if err != nil {
		return 0, code(err)
	}
	sr, err := search.New(p, t, id)
	return create(s, "abi.SearchOpen", sr, err)
}

// SearchOpenFromCollator creates a searcher borrowing the collator behind
// coll. The collator handle must outlive the searcher.
func (s *Surface) SearchOpenFromCollator(pattern []uint16, patternLength int, text []uint16, textLength int, coll Handle) (Handle, ErrorCode) {
	c, err := handle.Get[*collator.Collator](s.table, coll, "abi.SearchOpenFromCollator")
	if err != nil {
		return 0, code(err)
	}
	p, t, err := inputs(pattern, patternLength, text, textLength)
	if err != nil {
		return 0, code(err)
	}
	sr, err := search.NewWithCollator(p, t, c)
	return create(s, "abi.SearchOpenFromCollator", sr, err)
}

// SearchClose destroys h. A borrowed collator stays open.
func (s *Surface) SearchClose(h Handle) ErrorCode {
	return destroy[*search.Searcher](s, "abi.SearchClose", h)
}

// SearchFirst moves h to the first match and returns its UTF-16 start, or
// search.Done.
func (s *Surface) SearchFirst(ctx context.Context, h Handle) int {
	return s.cursor(ctx, h, "abi.SearchFirst", (*search.Searcher).First)
}

// SearchNext moves h to the next match.
func (s *Surface) SearchNext(ctx context.Context, h Handle) int {
	return s.cursor(ctx, h, "abi.SearchNext", (*search.Searcher).Next)
}

// SearchLast moves h to the last match.
func (s *Surface) SearchLast(ctx context.Context, h Handle) int {
	return s.cursor(ctx, h, "abi.SearchLast", (*search.Searcher).Last)
}

// SearchPrevious moves h to the previous match.
func (s *Surface) SearchPrevious(ctx context.Context, h Handle) int {
	return s.cursor(ctx, h, "abi.SearchPrevious", (*search.Searcher).Previous)
}

// SearchFollowing moves h to the first match at or after pos.
func (s *Surface) SearchFollowing(ctx context.Context, h Handle, pos int) int {
	return s.cursor(ctx, h, "abi.SearchFollowing", func(sr *search.Searcher) (int, error) {
		return sr.Following(pos)
	})
}

// SearchMatchedStart returns the start of the current match, or search.Done.
func (s *Surface) SearchMatchedStart(ctx context.Context, h Handle) int {
	return s.cursor(ctx, h, "abi.SearchMatchedStart", (*search.Searcher).MatchedStart)
}

// SearchMatchedLength returns the UTF-16 length of the current match.
func (s *Surface) SearchMatchedLength(ctx context.Context, h Handle) int {
	return s.cursor(ctx, h, "abi.SearchMatchedLength", (*search.Searcher).MatchedLength)
}

// SearchMatchedText writes the current match into dst.
func (s *Surface) SearchMatchedText(h Handle, dst []uint16, capacity int) (int, ErrorCode) {
	sr, err := handle.Get[*search.Searcher](s.table, h, "abi.SearchMatchedText")
	if err != nil {
		return 0, code(err)
	}
	m, err := sr.MatchedText()
	return text(dst, capacity, m, err)
}

// SearchSetText replaces the searched text and rewinds h.
func (s *Surface) SearchSetText(h Handle, src []uint16, srcLength int) ErrorCode {
	sr, err := handle.Get[*search.Searcher](s.table, h, "abi.SearchSetText")
	if err != nil {
		return code(err)
	}
	t, err := buffer.Input16(src, srcLength)
	if err != nil {
		return code(err)
	}
	return code(sr.SetText(t))
}

// SearchReset rewinds h and picks up collator changes.
func (s *Surface) SearchReset(h Handle) ErrorCode {
	sr, err := handle.Get[*search.Searcher](s.table, h, "abi.SearchReset")
	if err != nil {
		return code(err)
	}
	return code(sr.Reset())
}

func (s *Surface) cursor(ctx context.Context, h Handle, op string, fn func(*search.Searcher) (int, error)) int {
	sr, err := handle.Get[*search.Searcher](s.table, h, op)
	if err != nil {
		status.Record(ctx, err)
		return search.Done
	}
	pos, err := fn(sr)
	status.Record(ctx, err)
	return pos
}

func inputs(a []uint16, aLength int, b []uint16, bLength int) (string, string, error) {
	x, err := buffer.Input16(a, aLength)
	if err != nil {
		return "", "", err
	}
	y, err := buffer.Input16(b, bLength)
	if err != nil {
		return "", "", err
	}
	return x, y, nil
}
