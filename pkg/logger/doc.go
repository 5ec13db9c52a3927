// Package logger builds the slog loggers used by the intl runtime.
//
// A logger is a JSON or text handler wrapped in a decorator that pulls
// attributes out of the call context on every record, so the status of the
// last value-returning call made through that context is attached to
// diagnostics without threading it by hand:
//
//	lastResult := func(ctx context.Context) (slog.Attr, bool) {
//		if c := status.CellFrom(ctx); c.Recorded() {
//			return slog.String("last_result", c.Last().String()), true
//		}
//		return slog.Attr{}, false
//	}
//	log := logger.New(logger.Config{Level: slog.LevelDebug}, lastResult)
//
// NewWithSentry additionally forwards warnings and errors to Sentry and falls
// back to local output when no DSN is configured or Sentry cannot start.
//
// NewNope returns a logger that drops everything. Library internals use it
// until a runtime installs a real one.
package logger
