package timezone

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"slices"
	"strings"
	"sync/atomic"
	"time"
	_ "time/tzdata"

	"github.com/dmitrymomot/intl/internal/diag"
	"github.com/dmitrymomot/intl/internal/native"
	"github.com/dmitrymomot/intl/pkg/cache"
	"github.com/dmitrymomot/intl/pkg/status"
)

//go:embed zones.tab
var builtinTab []byte

// DefaultZoneinfoDir is read when ZONEINFO is unset.
const DefaultZoneinfoDir = "/usr/share/zoneinfo"

// Database resolves zone IDs to rules and lists the known IDs. It is safe
// for concurrent use.
//
// A database over a zoneinfo directory lists every TZif file in it and reads
// country assignments from zone1970.tab or zone.tab. A database without one
// uses the zone data compiled into the binary and a built-in listing.
type Database struct {
	fsys  fs.FS
	locs  *cache.Memory[*time.Location]
	ids   *cache.Memory[[]string]
	byCC  *cache.Memory[map[string][]string]
	label string
	ttl   time.Duration
}

// DatabaseOption configures a Database.
type DatabaseOption func(*Database)

// WithCacheTTL sets how long listings and loaded zones are cached. A negative
// value caches them until the database is closed.
func WithCacheTTL(d time.Duration) DatabaseOption {
	return func(db *Database) { db.ttl = d }
}

// WithLabel names the database in logs.
func WithLabel(label string) DatabaseOption {
	return func(db *Database) { db.label = label }
}

// NewDatabase returns a database over fsys, the root of a zoneinfo tree. A nil
// fsys uses the compiled-in zone data.
func NewDatabase(fsys fs.FS, opts ...DatabaseOption) *Database {
	db := &Database{fsys: fsys, ttl: -1, label: "builtin"}
	if fsys != nil {
		db.label = "fs"
	}
	for _, opt := range opts {
		opt(db)
	}
	db.locs = cache.NewMemory[*time.Location](cache.WithCleanupInterval(0), cache.WithMaxEntries(1024))
	db.ids = cache.NewMemory[[]string](cache.WithCleanupInterval(0))
	db.byCC = cache.NewMemory[map[string][]string](cache.WithCleanupInterval(0))
	return db
}

// SystemDatabase returns a database over $ZONEINFO or DefaultZoneinfoDir when
// either is a directory, otherwise over the compiled-in data.
func SystemDatabase(opts ...DatabaseOption) *Database {
	for _, dir := range []string{os.Getenv("ZONEINFO"), DefaultZoneinfoDir} {
		if dir == "" {
			continue
		}
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return NewDatabase(os.DirFS(dir), append([]DatabaseOption{WithLabel(dir)}, opts...)...)
		}
	}
	return NewDatabase(nil, opts...)
}

// Close drops the caches.
func (db *Database) Close() error {
	return errors.Join(db.locs.Close(), db.ids.Close(), db.byCC.Close())
}

// Label names the database.
func (db *Database) Label() string { return db.label }

// Load returns the rules of the zone id.
func (db *Database) Load(ctx context.Context, id string) (*time.Location, error) {
	if id == "" || id == "Local" || !fs.ValidPath(id) {
		return nil, status.New("timezone.Load", status.InvalidParameter, ErrInvalidID)
	}
	return db.locs.GetOrSet(ctx, id, func(context.Context) (*time.Location, time.Duration, error) {
		loc, err := db.load(id)
		if err != nil {
			return nil, 0, native.Wrap("timezone.Load", err, status.MissingResourceError)
		}
		return loc, db.ttl, nil
	})
}

func (db *Database) load(id string) (*time.Location, error) {
	if db.fsys == nil {
		loc, err := time.LoadLocation(id)
		if err != nil {
			return nil, errors.Join(ErrUnknownZone, err)
		}
		return loc, nil
	}
	data, err := fs.ReadFile(db.fsys, id)
	if err != nil {
		return nil, err
	}
	if !isTZif(data) {
		return nil, status.New("timezone.Load", status.MissingResource, ErrUnknownZone)
	}
	return time.LoadLocationFromTZData(id, data)
}

func isTZif(data []byte) bool { return bytes.HasPrefix(data, []byte("TZif")) }

// IDs returns the sorted zone IDs.
func (db *Database) IDs(ctx context.Context) ([]string, error) {
	return db.ids.GetOrSet(ctx, "ids", func(ctx context.Context) ([]string, time.Duration, error) {
		start := time.Now()
		ids, err := db.scan()
		if err != nil {
			return nil, 0, native.Wrap("timezone.IDs", err, status.FileAccessError)
		}
		diag.Debug(ctx, "zone ids listed",
			slog.String("database", db.label), slog.Int("zones", len(ids)),
			slog.Duration("took", time.Since(start)))
		return ids, db.ttl, nil
	})
}

var skipDirs = []string{"posix", "right"}

func (db *Database) scan() ([]string, error) {
	if db.fsys == nil {
		var ids []string
		for _, e := range parseTab(builtinTab, false) {
			ids = append(ids, e.id)
		}
		slices.Sort(ids)
		return slices.Compact(ids), nil
	}
	var ids []string
	err := fs.WalkDir(db.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if slices.Contains(skipDirs, p) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.Contains(path.Base(p), ".") || p == "localtime" || p == "posixrules" || p == "Factory" {
			return nil
		}
		f, err := db.fsys.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		var head [4]byte
		if n, _ := f.Read(head[:]); n == 4 && isTZif(head[:]) {
			ids = append(ids, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(ids)
	return ids, nil
}

// CountryIDs returns the zones used in country, an ISO 3166 code. An empty
// country returns every zone.
func (db *Database) CountryIDs(ctx context.Context, country string) ([]string, error) {
	if country == "" {
		return db.IDs(ctx)
	}
	byCC, err := db.byCC.GetOrSet(ctx, "countries", func(context.Context) (map[string][]string, time.Duration, error) {
		tab, iana := builtinTab, false
		if db.fsys != nil {
			if data, err := fs.ReadFile(db.fsys, "zone1970.tab"); err == nil {
				tab, iana = data, true
			} else if data, err := fs.ReadFile(db.fsys, "zone.tab"); err == nil {
				tab, iana = data, true
			}
		}
		out := make(map[string][]string)
		for _, e := range parseTab(tab, iana) {
			for _, cc := range e.countries {
				out[cc] = append(out[cc], e.id)
			}
		}
		for cc := range out {
			slices.Sort(out[cc])
		}
		return out, db.ttl, nil
	})
	if err != nil {
		return nil, err
	}
	return byCC[strings.ToUpper(country)], nil
}

type tabEntry struct {
	id        string
	countries []string
}

// parseTab reads the built-in listing, or with iana set the IANA zone.tab
// and zone1970.tab layout (codes, coordinates, ID, comment).
func parseTab(data []byte, iana bool) []tabEntry {
	var out []tabEntry
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		e := tabEntry{}
		switch {
		case iana && len(fields) >= 3:
			e.id = fields[2]
		case !iana && len(fields) >= 2:
			e.id = fields[1]
		default:
			continue
		}
		if fields[0] != "-" {
			e.countries = strings.Split(fields[0], ",")
		}
		out = append(out, e)
	}
	return out
}

var (
	current    atomic.Pointer[Database]
	generation atomic.Uint64
)

// CurrentDatabase returns the process database, a SystemDatabase until
// SetDatabase is called.
func CurrentDatabase() *Database {
	if db := current.Load(); db != nil {
		return db
	}
	db := SystemDatabase()
	if current.CompareAndSwap(nil, db) {
		return db
	}
	_ = db.Close()
	return current.Load()
}

// SetDatabase replaces the process database. Open ID enumerations become out
// of sync. The previous database is returned for the caller to close.
func SetDatabase(db *Database) *Database {
	if db == nil {
		db = SystemDatabase()
	}
	prev := current.Swap(db)
	generation.Add(1)
	diag.Info(context.Background(), "zone database replaced", slog.String("database", db.label))
	return prev
}

// Reload drops the cached listings and zones of the process database. Open
// ID enumerations become out of sync.
func Reload(ctx context.Context) error {
	db := CurrentDatabase()
	err := errors.Join(db.locs.Clear(ctx), db.ids.Clear(ctx), db.byCC.Clear(ctx))
	generation.Add(1)
	diag.Info(ctx, "zone database reloaded", slog.String("database", db.label))
	return err
}

// Generation counts database replacements and reloads.
func Generation() uint64 { return generation.Load() }
