// Package timezone exposes time zones by IANA ID or custom "GMT+hh:mm" ID,
// backed by Go's time package and a replaceable zone Database.
//
// Offsets are in milliseconds, as in the rest of the date and calendar API.
package timezone

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/intl/internal/diag"
	"github.com/dmitrymomot/intl/pkg/enum"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
)

// Kind is the handle kind of zones.
const Kind = "timezone"

// UnknownID is the ID of the zone reported for unusable defaults.
const UnknownID = "Etc/Unknown"

const msPerHour = int(time.Hour / time.Millisecond)

// Zone is a time zone. Not safe for concurrent mutation; zones are read-only
// once opened, so concurrent reads are fine.
type Zone struct {
	loc *time.Location
	id  string
	lc  handle.Lifecycle
}

// New opens the zone id: an ID of the process database or a custom
// "GMT[+-]hh[:mm]" offset. An empty id opens the default zone. Unknown IDs
// fail with MissingResource.
func New(id string) (*Zone, error) {
	if id == "" {
		id = DefaultID()
	}
	if loc, norm, ok, err := parseCustom(id); ok || err != nil {
		if err != nil {
			return nil, err
		}
		return open(norm, loc), nil
	}
	loc, err := CurrentDatabase().Load(context.Background(), id)
	if err != nil {
		return nil, err
	}
	return open(id, loc), nil
}

// FromLocation opens a zone for loc.
func FromLocation(loc *time.Location) (*Zone, error) {
	if loc == nil {
		return nil, status.Invalid("timezone.FromLocation", "nil location")
	}
	return open(loc.String(), loc), nil
}

func open(id string, loc *time.Location) *Zone {
	z := &Zone{id: id, loc: loc}
	z.lc.Open(Kind)
	return z
}

// parseCustom recognizes GMT, UTC and UT offset IDs and returns a fixed zone
// with the normalized "GMT+hh:mm" ID. ok is false when id is not custom.
func parseCustom(id string) (*time.Location, string, bool, error) {
	var rest string
	for _, prefix := range []string{"GMT", "UTC", "UT"} {
		if r, found := strings.CutPrefix(id, prefix); found && r != "" && (r[0] == '+' || r[0] == '-') {
			rest = r
			break
		}
	}
	if rest == "" {
		return nil, "", false, nil
	}
	sign, digits := rest[0], rest[1:]
	var hh, mm string
	switch {
	case strings.Contains(digits, ":"):
		hh, mm, _ = strings.Cut(digits, ":")
	case len(digits) <= 2:
		hh, mm = digits, "0"
	case len(digits) <= 4:
		hh, mm = digits[:len(digits)-2], digits[len(digits)-2:]
	}
	h, herr := strconv.Atoi(hh)
	m, merr := strconv.Atoi(mm)
	if herr != nil || merr != nil || h > 23 || m > 59 || h < 0 || m < 0 {
		return nil, "", true, status.New("timezone.New", status.InvalidParameter, ErrInvalidOffset)
	}
	offset := (h*60 + m) * 60
	if sign == '-' {
		offset = -offset
	}
	norm := formatGMT(offset*1000, true)
	return time.FixedZone(norm, offset), norm, true, nil
}

// formatGMT renders an offset in milliseconds as "GMT+hh:mm" (long) or
// "+hhmm" (short). A zero offset is "GMT" in the long form.
func formatGMT(ms int, long bool) string {
	sign := '+'
	if ms < 0 {
		sign, ms = '-', -ms
	}
	mins := ms / 60000
	if long {
		if mins == 0 {
			return "GMT"
		}
		return fmt.Sprintf("GMT%c%02d:%02d", sign, mins/60, mins%60)
	}
	return fmt.Sprintf("%c%02d%02d", sign, mins/60, mins%60)
}

func (z *Zone) live(op string) error {
	if z == nil {
		return handle.Nil(op)
	}
	return z.lc.Check(op)
}

// ID returns the zone ID.
func (z *Zone) ID() (string, error) {
	if err := z.live("timezone.ID"); err != nil {
		return "", err
	}
	return z.id, nil
}

// Location returns the rules of the zone.
func (z *Zone) Location() (*time.Location, error) {
	if err := z.live("timezone.Location"); err != nil {
		return nil, err
	}
	return z.loc, nil
}

func (z *Zone) at(t time.Time) (offset int, dst bool) {
	tt := t.In(z.loc)
	_, off := tt.Zone()
	return off * 1000, tt.IsDST()
}

// raw returns the standard offset in effect at t.
func (z *Zone) raw(t time.Time) int {
	off, dst := z.at(t)
	if !dst {
		return off
	}
	start, end := t.In(z.loc).ZoneBounds()
	if !end.IsZero() {
		if o, d := z.at(end); !d {
			return o
		}
	}
	if !start.IsZero() {
		if o, d := z.at(start.Add(-time.Second)); !d {
			return o
		}
	}
	return off - msPerHour
}

// RawOffset returns the current standard offset from UTC.
func (z *Zone) RawOffset() (int, error) {
	if err := z.live("timezone.RawOffset"); err != nil {
		return 0, err
	}
	return z.raw(time.Now()), nil
}

// Offset returns the standard offset and the daylight saving amount in effect
// at t. Their sum is the total offset from UTC.
func (z *Zone) Offset(t time.Time) (raw, dst int, err error) {
	if err := z.live("timezone.Offset"); err != nil {
		return 0, 0, err
	}
	total, _ := z.at(t)
	raw = z.raw(t)
	return raw, total - raw, nil
}

// transitions returns the rule changes in (from, to].
func (z *Zone) transitions(from, to time.Time) []time.Time {
	var out []time.Time
	for t := from; len(out) < 64; {
		_, end := t.In(z.loc).ZoneBounds()
		if end.IsZero() || end.After(to) {
			break
		}
		out = append(out, end)
		t = end
	}
	return out
}

// dstPeriod returns a time within the coming year at which daylight saving
// time is observed.
func (z *Zone) dstPeriod(now time.Time) (time.Time, bool) {
	if _, dst := z.at(now); dst {
		return now, true
	}
	for _, t := range z.transitions(now, now.AddDate(1, 0, 0)) {
		if _, dst := z.at(t); dst {
			return t, true
		}
	}
	return time.Time{}, false
}

// UseDaylightTime reports whether the zone observes daylight saving time now
// or within the coming year.
func (z *Zone) UseDaylightTime() (bool, error) {
	if err := z.live("timezone.UseDaylightTime"); err != nil {
		return false, err
	}
	_, ok := z.dstPeriod(time.Now())
	return ok, nil
}

// InDaylightTime reports whether daylight saving time is in effect at t.
func (z *Zone) InDaylightTime(t time.Time) (bool, error) {
	if err := z.live("timezone.InDaylightTime"); err != nil {
		return false, err
	}
	_, dst := z.at(t)
	return dst, nil
}

// DSTSavings returns the daylight saving amount, 0 for zones without
// daylight saving time.
func (z *Zone) DSTSavings() (int, error) {
	if err := z.live("timezone.DSTSavings"); err != nil {
		return 0, err
	}
	t, ok := z.dstPeriod(time.Now())
	if !ok {
		return 0, nil
	}
	total, _ := z.at(t)
	return total - z.raw(t), nil
}

// HasSameRules reports whether o has the same offsets and daylight saving
// transitions as z from a year ago to two years ahead. IDs are not compared.
func (z *Zone) HasSameRules(o *Zone) (bool, error) {
	if err := z.live("timezone.HasSameRules"); err != nil {
		return false, err
	}
	if err := o.live("timezone.HasSameRules"); err != nil {
		return false, err
	}
	now := time.Now()
	from, to := now.AddDate(-1, 0, 0), now.AddDate(2, 0, 0)
	points := append([]time.Time{from}, z.transitions(from, to)...)
	points = append(points, o.transitions(from, to)...)
	for _, t := range points {
		zo, zd := z.at(t)
		oo, od := o.at(t)
		if zo != oo || zd != od {
			return false, nil
		}
	}
	return true, nil
}

// Clone returns an independent zone with the same ID and rules.
func (z *Zone) Clone() (*Zone, error) {
	if err := z.live("timezone.Clone"); err != nil {
		return nil, err
	}
	return open(z.id, z.loc), nil
}

// Close releases the zone.
func (z *Zone) Close() error {
	if z == nil {
		return handle.Nil("timezone.Close")
	}
	return z.lc.Release("timezone.Close")
}

var (
	defaultMu sync.RWMutex
	defaultID string
)

func detectDefault() string {
	if tz := strings.TrimPrefix(os.Getenv("TZ"), ":"); tz != "" {
		return tz
	}
	if target, err := filepath.EvalSymlinks("/etc/localtime"); err == nil {
		if _, id, ok := strings.Cut(target, "zoneinfo/"); ok {
			return id
		}
	}
	return "UTC"
}

// DefaultID returns the ID of the process default zone, initially taken from
// TZ or /etc/localtime.
func DefaultID() string {
	defaultMu.RLock()
	id := defaultID
	defaultMu.RUnlock()
	if id != "" {
		return id
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultID == "" {
		defaultID = detectDefault()
	}
	return defaultID
}

// Default opens the process default zone. A default that cannot be loaded
// yields a GMT zone with UnknownID.
func Default() (*Zone, error) {
	z, err := New(DefaultID())
	if err != nil {
		return open(UnknownID, time.UTC), nil
	}
	return z, nil
}

// SetDefault changes the process default zone. Callers serialize it with
// other process default changes.
func SetDefault(id string) error {
	z, err := New(id)
	if err != nil {
		return err
	}
	norm := z.id
	_ = z.Close()

	defaultMu.Lock()
	prev := defaultID
	defaultID = norm
	defaultMu.Unlock()
	diag.Info(context.Background(), "default time zone changed",
		slog.String("from", prev), slog.String("to", norm))
	return nil
}

func tracking(load func(context.Context) ([]string, error)) *enum.Enumeration {
	return enum.New(enum.NewTracking(func() ([]string, error) {
		return load(context.Background())
	}, Generation))
}

// OpenIDs enumerates the zone IDs of the process database. The enumeration
// goes out of sync when the database is replaced or reloaded.
func OpenIDs() *enum.Enumeration {
	return tracking(func(ctx context.Context) ([]string, error) {
		return CurrentDatabase().IDs(ctx)
	})
}

// OpenCountryIDs enumerates the zones of an ISO 3166 country; "" lists all.
func OpenCountryIDs(country string) *enum.Enumeration {
	return tracking(func(ctx context.Context) ([]string, error) {
		return CurrentDatabase().CountryIDs(ctx, country)
	})
}

// OpenIDsByOffset enumerates the zones whose current standard offset is
// rawOffset milliseconds.
func OpenIDsByOffset(rawOffset int) *enum.Enumeration {
	return tracking(func(ctx context.Context) ([]string, error) {
		db := CurrentDatabase()
		ids, err := db.IDs(ctx)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		var out []string
		for _, id := range ids {
			loc, err := db.Load(ctx, id)
			if err != nil {
				continue
			}
			z := Zone{id: id, loc: loc}
			if z.raw(now) == rawOffset {
				out = append(out, id)
			}
		}
		return out, nil
	})
}
