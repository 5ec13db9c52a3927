// Package diag holds the logger used by library internals. It discards
// everything until a runtime installs a real logger.
package diag

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/dmitrymomot/intl/pkg/logger"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(logger.NewNope())
}

// SetLogger installs l. A nil logger restores the no-op logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = logger.NewNope()
	}
	current.Store(l)
}

// Logger returns the installed logger.
func Logger() *slog.Logger { return current.Load() }

func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	current.Load().LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	current.Load().LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	current.Load().LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}
