package intl

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/dmitrymomot/intl/internal/diag"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/localedata"
	"github.com/dmitrymomot/intl/pkg/logger"
	"github.com/dmitrymomot/intl/pkg/status"
	"github.com/dmitrymomot/intl/pkg/timezone"
	"github.com/dmitrymomot/intl/pkg/uchar"
)

const sentryFlushTimeout = 2 * time.Second

var active atomic.Pointer[Runtime]

// Runtime owns the process-wide state of the library between New and Close.
// Only one runtime is installed at a time.
type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	extractors []logger.ContextExtractor
	zoneinfo   fs.FS
	localedata fs.FS

	zones      *timezone.Database
	prevZones  *timezone.Database
	prevLocale string
	prevZone   string
	ownsData   bool

	closeOnce sync.Once
	closeErr  error
}

// New installs a runtime. It fails when another runtime is installed or a
// configured resource cannot be loaded; nothing is left installed then.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{cfg: Config{}.withDefaults()}
	for _, opt := range opts {
		opt(r)
	}
	if !active.CompareAndSwap(nil, r) {
		return nil, ErrRuntimeRunning
	}
	if err := r.install(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

func (r *Runtime) install() error {
	if r.logger == nil {
		ex := append([]logger.ContextExtractor{ResultExtractor()}, r.extractors...)
		r.logger = logger.NewWithSentry(r.cfg.loggerConfig(), r.cfg.Sentry, ex...)
	}
	diag.SetLogger(r.logger)

	r.prevLocale = locale.Default()
	r.prevZone = timezone.DefaultID()

	r.zones = r.database()
	r.prevZones = timezone.SetDatabase(r.zones)
	uchar.SetNameIndexTTL(r.cfg.CacheTTL)

	data := r.localedata
	if data == nil && r.cfg.LocaleDataDir != "" {
		data = os.DirFS(r.cfg.LocaleDataDir)
	}
	if data != nil {
		reg, err := localedata.New(localedata.WithYAMLDir(data))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLocaleData, err)
		}
		localedata.SetDefault(reg)
		r.ownsData = true
	}

	if r.cfg.Locale != "" {
		if err := locale.SetDefault(r.cfg.Locale); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrDefaultLocale, r.cfg.Locale, err)
		}
	}
	if r.cfg.TimeZone != "" {
		if err := timezone.SetDefault(r.cfg.TimeZone); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrDefaultZone, r.cfg.TimeZone, err)
		}
	}

	r.logger.Info("intl runtime started",
		slog.String("locale", locale.Default()),
		slog.String("timezone", timezone.DefaultID()),
		slog.String("zoneinfo", r.zones.Label()))
	return nil
}

func (r *Runtime) database() *timezone.Database {
	opts := []timezone.DatabaseOption{timezone.WithCacheTTL(r.cfg.CacheTTL)}
	switch {
	case r.zoneinfo != nil:
		return timezone.NewDatabase(r.zoneinfo, append(opts, timezone.WithLabel("custom"))...)
	case r.cfg.ZoneInfoDir != "":
		return timezone.NewDatabase(os.DirFS(r.cfg.ZoneInfoDir), append(opts, timezone.WithLabel(r.cfg.ZoneInfoDir))...)
	}
	return timezone.SystemDatabase(opts...)
}

// Config returns the configuration in effect.
func (r *Runtime) Config() Config { return r.cfg }

// Logger returns the logger installed for library internals.
func (r *Runtime) Logger() *slog.Logger { return r.logger }

// ReloadZones drops cached zone data so the next lookups read the zoneinfo
// tree again.
func (r *Runtime) ReloadZones(ctx context.Context) error {
	if active.Load() != r {
		return ErrClosed
	}
	return timezone.Reload(ctx)
}

// Leaks returns the number of live handles per kind.
func (r *Runtime) Leaks() map[string]int64 { return handle.Snapshot() }

// Close reports leaked handles, restores the process state found by New and
// uninstalls the runtime. Further calls return the first result.
func (r *Runtime) Close() error {
	r.closeOnce.Do(func() {
		r.closeErr = r.shutdown()
	})
	return r.closeErr
}

func (r *Runtime) shutdown() error {
	ctx := context.Background()
	if r.logger != nil {
		leaks := handle.Snapshot()
		for _, kind := range slices.Sorted(maps.Keys(leaks)) {
			r.logger.WarnContext(ctx, "leaked handles",
				slog.String("kind", kind), slog.Int64("count", leaks[kind]))
		}
	}

	var errs []error
	if r.zones != nil {
		timezone.SetDatabase(r.prevZones)
		errs = append(errs, r.zones.Close())
	}
	if r.prevLocale != "" {
		errs = append(errs, locale.SetDefault(r.prevLocale))
	}
	if r.prevZone != "" {
		errs = append(errs, timezone.SetDefault(r.prevZone))
	}
	if r.ownsData {
		localedata.SetDefault(nil)
	}
	uchar.SetNameIndexTTL(-1)

	if r.cfg.Sentry.DSN != "" {
		sentry.Flush(sentryFlushTimeout)
	}
	diag.SetLogger(nil)
	active.CompareAndSwap(r, nil)
	return errors.Join(errs...)
}

// ResultExtractor adds the last result recorded in the status cell of the
// context, if any, to log records as "result".
func ResultExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		c := status.CellFrom(ctx)
		if !c.Recorded() {
			return slog.Attr{}, false
		}
		return slog.String("result", c.Last().String()), true
	}
}
