// Package handle implements the lifecycle and ownership rules shared by every
// handle type of the facade.
//
// Each handle type embeds a Lifecycle. Constructors call Open, every
// operation calls Check, and Close calls Release. Using a nil or released
// handle is a checked InvalidParameter failure, never undefined behaviour.
package handle

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/intl/internal/diag"
	"github.com/dmitrymomot/intl/pkg/status"
)

// State is the lifecycle state of a handle.
type State uint8

const (
	Unbound State = iota
	Live
	Destroyed
)

func (s State) String() string {
	switch s {
	case Live:
		return "live"
	case Destroyed:
		return "destroyed"
	default:
		return "unbound"
	}
}

// Lifecycle tracks the state of one handle. The zero value is Unbound.
type Lifecycle struct {
	kind  string
	id    uuid.UUID
	state State
}

// Open marks the handle live and registers it with the tracker.
func (l *Lifecycle) Open(kind string) {
	l.kind = kind
	l.id = uuid.New()
	l.state = Live
	track(kind, 1)
	diag.Debug(context.Background(), "handle opened",
		slog.String("kind", kind), slog.String("trace_id", l.id.String()))
}

// Check returns nil when the handle is live.
func (l *Lifecycle) Check(op string) error {
	if l == nil {
		return Nil(op)
	}
	switch l.state {
	case Live:
		return nil
	case Destroyed:
		return status.New(op, status.InvalidParameter, ErrDestroyed)
	default:
		return status.New(op, status.InvalidParameter, ErrNil)
	}
}

// Release checks the handle and marks it destroyed.
func (l *Lifecycle) Release(op string) error {
	if err := l.Check(op); err != nil {
		return err
	}
	l.state = Destroyed
	track(l.kind, -1)
	diag.Debug(context.Background(), "handle released",
		slog.String("kind", l.kind), slog.String("trace_id", l.id.String()))
	return nil
}

func (l *Lifecycle) State() State {
	if l == nil {
		return Unbound
	}
	return l.state
}

func (l *Lifecycle) Live() bool { return l.State() == Live }

func (l *Lifecycle) Kind() string { return l.kind }

// TraceID identifies the handle in diagnostics. It is uuid.Nil until Open.
func (l *Lifecycle) TraceID() uuid.UUID { return l.id }

// Nil is the error for an operation invoked on a nil handle.
func Nil(op string) error {
	return status.New(op, status.InvalidParameter, ErrNil)
}
