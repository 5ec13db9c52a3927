package abi

import (
	"context"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/collator"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
)

// CollatorOpen creates a collator for locale id. An empty id is the root.
func (s *Surface) CollatorOpen(id string) (Handle, ErrorCode) {
	c, err := collator.New(id)
	return create(s, "abi.CollatorOpen", c, err)
}

// CollatorClose destroys h. A zero or already destroyed handle reports
// InvalidParameter.
func (s *Surface) CollatorClose(h Handle) ErrorCode {
	return destroy[*collator.Collator](s, "abi.CollatorClose", h)
}

// CollatorClone creates an independent copy of h.
func (s *Surface) CollatorClone(h Handle) (Handle, ErrorCode) {
	c, err := handle.Get[*collator.Collator](s.table, h, "abi.CollatorClone")
	if err != nil {
		return 0, code(err)
	}
	dup, err := c.Clone()
	return create(s, "abi.CollatorClone", dup, err)
}

// CollatorStrength reads the comparison strength of h.
func (s *Surface) CollatorStrength(ctx context.Context, h Handle) collator.Strength {
	c, err := handle.Get[*collator.Collator](s.table, h, "abi.CollatorStrength")
	if err != nil {
		return record(ctx, collator.DefaultStrength, err)
	}
	v, err := c.Strength()
	return record(ctx, v, err)
}

// CollatorSetStrength changes the comparison strength of h.
func (s *Surface) CollatorSetStrength(h Handle, v collator.Strength) ErrorCode {
	c, err := handle.Get[*collator.Collator](s.table, h, "abi.CollatorSetStrength")
	if err != nil {
		return code(err)
	}
	return code(c.SetStrength(v))
}

// CollatorSetAttribute changes one attribute of h.
func (s *Surface) CollatorSetAttribute(h Handle, a collator.Attribute, v collator.Value) ErrorCode {
	c, err := handle.Get[*collator.Collator](s.table, h, "abi.CollatorSetAttribute")
	if err != nil {
		return code(err)
	}
	return code(c.SetAttribute(a, v))
}

// CollatorCompare orders a before or after b under h.
func (s *Surface) CollatorCompare(ctx context.Context, h Handle, a []uint16, aLength int, b []uint16, bLength int) collator.Result {
	c, x, y, err := s.collatorInputs("abi.CollatorCompare", h, a, aLength, b, bLength)
	if err != nil {
		return record(ctx, collator.Equal, err)
	}
	r, err := c.Compare(x, y)
	return record(ctx, r, err)
}

// CollatorEqual reports whether a and b compare equal under h.
func (s *Surface) CollatorEqual(ctx context.Context, h Handle, a []uint16, aLength int, b []uint16, bLength int) bool {
	c, x, y, err := s.collatorInputs("abi.CollatorEqual", h, a, aLength, b, bLength)
	if err != nil {
		return record(ctx, false, err)
	}
	eq, err := c.Equal(x, y)
	return record(ctx, eq, err)
}

// CollatorSortKey writes the sort key of src into dst. A key longer than
// capacity is truncated and reported with WarnSortKeyTooShort, never an
// error, so the return value is always the full key length.
func (s *Surface) CollatorSortKey(ctx context.Context, h Handle, src []uint16, srcLength int, dst []byte, capacity int) int {
	c, err := handle.Get[*collator.Collator](s.table, h, "abi.CollatorSortKey")
	if err != nil {
		return record(ctx, 0, err)
	}
	str, err := buffer.Input16(src, srcLength)
	if err != nil {
		return record(ctx, 0, err)
	}
	n, err := c.SortKeyInto(str, dst, capacity)
	status.Record(ctx, err)
	return n
}

// CollatorCountAvailable returns the number of locales with a tailoring.
func (s *Surface) CollatorCountAvailable(ctx context.Context) int {
	return record(ctx, collator.CountAvailable(), nil)
}

// CollatorAvailable writes the i-th available collation locale into dst.
func (s *Surface) CollatorAvailable(i int, dst []byte, capacity int) (int, ErrorCode) {
	id, err := collator.Available(i)
	return chars(dst, capacity, id, err)
}

func (s *Surface) collatorInputs(op string, h Handle, a []uint16, aLength int, b []uint16, bLength int) (*collator.Collator, string, string, error) {
	c, err := handle.Get[*collator.Collator](s.table, h, op)
	if err != nil {
		return nil, "", "", err
	}
	x, y, err := inputs(a, aLength, b, bLength)
	if err != nil {
		return nil, "", "", err
	}
	return c, x, y, nil
}
