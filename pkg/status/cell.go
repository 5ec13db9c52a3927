package status

import "context"

// Cell holds the status of the most recent value-returning operation made
// through a context. A Cell belongs to one goroutine and is not synchronized.
type Cell struct {
	last ErrorCode
	set  bool
}

type cellKey struct{}

// WithCell returns a child context carrying a fresh Cell.
func WithCell(ctx context.Context) (context.Context, *Cell) {
	c := &Cell{}
	return context.WithValue(ctx, cellKey{}, c), c
}

// CellFrom returns the Cell carried by ctx, or nil.
func CellFrom(ctx context.Context) *Cell {
	if ctx == nil {
		return nil
	}
	c, _ := ctx.Value(cellKey{}).(*Cell)
	return c
}

// Set stores code as the last result.
func (c *Cell) Set(code ErrorCode) {
	c.last = code
	c.set = true
}

// Last returns the last stored result, Success if none was stored.
func (c *Cell) Last() ErrorCode {
	if c == nil {
		return Success
	}
	return c.last
}

// Recorded reports whether any result has been stored.
func (c *Cell) Recorded() bool { return c != nil && c.set }

// Reset restores the initial Success state.
func (c *Cell) Reset() { *c = Cell{} }

// Record stores the code of err in the Cell carried by ctx and returns it.
// It is a no-op on the cell when ctx carries none.
func Record(ctx context.Context, err error) ErrorCode {
	code := Code(err)
	if c := CellFrom(ctx); c != nil {
		c.Set(code)
	}
	return code
}

// LastResult returns the last result recorded through ctx.
func LastResult(ctx context.Context) ErrorCode {
	return CellFrom(ctx).Last()
}
