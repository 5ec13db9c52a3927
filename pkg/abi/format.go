package abi

import (
	"context"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/datefmt"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/numfmt"
	"github.com/dmitrymomot/intl/pkg/position"
)

// DateFormatOpen creates a date formatter. With both styles datefmt.Pattern
// the formatter uses pattern; otherwise pattern must be empty. An empty
// zoneID is the default zone.
func (s *Surface) DateFormatOpen(timeStyle, dateStyle datefmt.Style, id, zoneID string, pattern []uint16, patternLength int) (Handle, ErrorCode) {
	p := ""
	if pattern != nil {
		var err error
		if p, err = buffer.Input16(pattern, patternLength); err != nil {
			return 0, code(err)
		}
	}
	f, err := datefmt.New(timeStyle, dateStyle, id, zoneID, p)
	return create(s, "abi.DateFormatOpen", f, err)
}

// DateFormatClone creates an independent copy of h.
func (s *Surface) DateFormatClone(h Handle) (Handle, ErrorCode) {
	f, err := handle.Get[*datefmt.Formatter](s.table, h, "abi.DateFormatClone")
	if err != nil {
		return 0, code(err)
	}
	dup, err := f.Clone()
	return create(s, "abi.DateFormatClone", dup, err)
}

// DateFormatClose destroys h.
func (s *Surface) DateFormatClose(h Handle) ErrorCode {
	return destroy[*datefmt.Formatter](s, "abi.DateFormatClose", h)
}

// DateFormat writes date, in milliseconds since the Unix epoch, into dst.
func (s *Surface) DateFormat(h Handle, date int64, dst []uint16, capacity int) (int, ErrorCode) {
	f, err := handle.Get[*datefmt.Formatter](s.table, h, "abi.DateFormat")
	if err != nil {
		return 0, code(err)
	}
	n, err := f.FormatInto(date, nil, dst, capacity)
	return n, code(err)
}

// DateParse reads a date from src starting at *parsePos and advances it.
// A nil parsePos parses from the start.
func (s *Surface) DateParse(ctx context.Context, h Handle, src []uint16, srcLength int, parsePos *int) int64 {
	f, err := handle.Get[*datefmt.Formatter](s.table, h, "abi.DateParse")
	if err != nil {
		return record(ctx, int64(0), err)
	}
	t, pos, err := parseInputs(src, srcLength, parsePos)
	if err != nil {
		return record(ctx, int64(0), err)
	}
	ms, err := f.Parse(t, pos)
	advance(pos, parsePos)
	return record(ctx, ms, err)
}

// DateFormatToPattern writes the pattern of h into dst.
func (s *Surface) DateFormatToPattern(h Handle, localized bool, dst []uint16, capacity int) (int, ErrorCode) {
	f, err := handle.Get[*datefmt.Formatter](s.table, h, "abi.DateFormatToPattern")
	if err != nil {
		return 0, code(err)
	}
	p, err := f.Pattern(localized)
	return text(dst, capacity, p, err)
}

// NumberFormatOpen creates a number formatter. Pattern styles read pattern;
// other styles require it empty.
func (s *Surface) NumberFormatOpen(style numfmt.Style, pattern []uint16, patternLength int, id string) (Handle, ErrorCode) {
	p := ""
	if pattern != nil {
		var err error
		if p, err = buffer.Input16(pattern, patternLength); err != nil {
			return 0, code(err)
		}
	}
	f, err := numfmt.New(style, p, id)
	return create(s, "abi.NumberFormatOpen", f, err)
}

// NumberFormatClone creates an independent copy of h.
func (s *Surface) NumberFormatClone(h Handle) (Handle, ErrorCode) {
	f, err := handle.Get[*numfmt.Formatter](s.table, h, "abi.NumberFormatClone")
	if err != nil {
		return 0, code(err)
	}
	dup, err := f.Clone()
	return create(s, "abi.NumberFormatClone", dup, err)
}

// NumberFormatClose destroys h.
func (s *Surface) NumberFormatClose(h Handle) ErrorCode {
	return destroy[*numfmt.Formatter](s, "abi.NumberFormatClose", h)
}

// NumberFormatInt64 writes v into dst.
func (s *Surface) NumberFormatInt64(h Handle, v int64, dst []uint16, capacity int) (int, ErrorCode) {
	f, err := handle.Get[*numfmt.Formatter](s.table, h, "abi.NumberFormatInt64")
	if err != nil {
		return 0, code(err)
	}
	out, err := f.FormatInt64(v, nil)
	return text(dst, capacity, out, err)
}

// NumberFormatDouble writes v into dst.
func (s *Surface) NumberFormatDouble(h Handle, v float64, dst []uint16, capacity int) (int, ErrorCode) {
	f, err := handle.Get[*numfmt.Formatter](s.table, h, "abi.NumberFormatDouble")
	if err != nil {
		return 0, code(err)
	}
	out, err := f.FormatDouble(v, nil)
	return text(dst, capacity, out, err)
}

// NumberParseDouble reads a number from src starting at *parsePos and
// advances it.
func (s *Surface) NumberParseDouble(ctx context.Context, h Handle, src []uint16, srcLength int, parsePos *int) float64 {
	f, err := handle.Get[*numfmt.Formatter](s.table, h, "abi.NumberParseDouble")
	if err != nil {
		return record(ctx, 0.0, err)
	}
	t, pos, err := parseInputs(src, srcLength, parsePos)
	if err != nil {
		return record(ctx, 0.0, err)
	}
	v, err := f.ParseDouble(t, pos)
	advance(pos, parsePos)
	return record(ctx, v, err)
}

// NumberFormatSymbol writes symbol sym of h into dst.
func (s *Surface) NumberFormatSymbol(h Handle, sym numfmt.Symbol, dst []uint16, capacity int) (int, ErrorCode) {
	f, err := handle.Get[*numfmt.Formatter](s.table, h, "abi.NumberFormatSymbol")
	if err != nil {
		return 0, code(err)
	}
	v, err := f.Symbol(sym)
	return text(dst, capacity, v, err)
}

// NumberFormatSetAttribute changes a numeric attribute of h.
func (s *Surface) NumberFormatSetAttribute(h Handle, a numfmt.Attribute, v int) ErrorCode {
	f, err := handle.Get[*numfmt.Formatter](s.table, h, "abi.NumberFormatSetAttribute")
	if err != nil {
		return code(err)
	}
	return code(f.SetAttribute(a, v))
}

func parseInputs(src []uint16, srcLength int, parsePos *int) (string, *position.ParsePosition, error) {
	t, err := buffer.Input16(src, srcLength)
	if err != nil {
		return "", nil, err
	}
	if parsePos == nil {
		return t, nil, nil
	}
	pos, err := position.NewParse(*parsePos)
	return t, pos, err
}

// advance copies the parse index back to the caller.
func advance(pos *position.ParsePosition, parsePos *int) {
	if pos == nil {
		return
	}
	if i, err := pos.Index(); err == nil {
		*parsePos = i
	}
	_ = pos.Close()
}
