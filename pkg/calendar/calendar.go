// Package calendar implements a Gregorian calendar over a time zone: field
// access and arithmetic on an instant held as milliseconds since the epoch.
//
// A Calendar owns its zone. Week numbering follows the first day of week and
// minimal days in the first week of the locale.
package calendar

import (
	"time"

	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/localedata"
	"github.com/dmitrymomot/intl/pkg/status"
	"github.com/dmitrymomot/intl/pkg/timezone"
)

// Kind is the handle kind of calendars.
const Kind = "calendar"

// Calendar is a Gregorian calendar. Not safe for concurrent use.
type Calendar struct {
	zone     handle.Ref[*timezone.Zone]
	loc      *time.Location
	id       string
	lc       handle.Lifecycle
	ms       int64
	firstDay int
	minDays  int
	lenient  bool
}

// Now returns the current time in milliseconds since the epoch.
func Now() int64 { return time.Now().UnixMilli() }

// New opens a calendar for the zone zoneID ("" is the default zone) and the
// locale id, set to the current time. Calendar types other than Gregorian,
// including through the locale's calendar keyword, are NotSupported.
func New(zoneID, id string, typ Type) (*Calendar, error) {
	if err := checkType(typ, id); err != nil {
		return nil, err
	}
	z, err := timezone.New(zoneID)
	if err != nil {
		return nil, err
	}
	c, err := newCalendar(z, id)
	if err != nil {
		_ = z.Close()
		return nil, err
	}
	return c, nil
}

// NewWithZone is New with a zone the calendar clones.
func NewWithZone(z *timezone.Zone, id string, typ Type) (*Calendar, error) {
	if err := checkType(typ, id); err != nil {
		return nil, err
	}
	clone, err := z.Clone()
	if err != nil {
		return nil, err
	}
	c, err := newCalendar(clone, id)
	if err != nil {
		_ = clone.Close()
		return nil, err
	}
	return c, nil
}

func checkType(typ Type, id string) error {
	if typ != Traditional && typ != Gregorian {
		return status.New("calendar.New", status.NotSupported, ErrUnsupportedType)
	}
	tag, err := locale.Resolve(id)
	if err != nil {
		return err
	}
	switch tag.TypeForKey("ca") {
	case "", "gregory", "gregorian":
		return nil
	}
	return status.New("calendar.New", status.NotSupported, ErrUnsupportedType)
}

func newCalendar(z *timezone.Zone, id string) (*Calendar, error) {
	tag, err := locale.Resolve(id)
	if err != nil {
		return nil, err
	}
	loc, err := z.Location()
	if err != nil {
		return nil, err
	}
	c := &Calendar{
		zone:     handle.Own(z),
		loc:      loc,
		id:       locale.ID(tag),
		ms:       Now(),
		lenient:  true,
		firstDay: Sunday,
		minDays:  1,
	}
	if d, err := localedata.Default().Lookup(c.id); err == nil {
		if d.FirstDay >= Sunday && d.FirstDay <= Saturday {
			c.firstDay = d.FirstDay
		}
		if d.MinDays >= 1 && d.MinDays <= 7 {
			c.minDays = d.MinDays
		}
	}
	c.lc.Open(Kind)
	return c, nil
}

func (c *Calendar) live(op string) error {
	if c == nil {
		return handle.Nil(op)
	}
	return c.lc.Check(op)
}

func (c *Calendar) local() time.Time { return time.UnixMilli(c.ms).In(c.loc) }

func (c *Calendar) setTime(t time.Time) { c.ms = t.UnixMilli() }

// Locale returns the locale the calendar was opened for.
func (c *Calendar) Locale() string { return c.id }

// Millis returns the instant in milliseconds since the epoch.
func (c *Calendar) Millis() (int64, error) {
	if err := c.live("calendar.Millis"); err != nil {
		return 0, err
	}
	return c.ms, nil
}

// SetMillis sets the instant.
func (c *Calendar) SetMillis(ms int64) error {
	if err := c.live("calendar.SetMillis"); err != nil {
		return err
	}
	c.ms = ms
	return nil
}

// Time returns the instant in the calendar's zone.
func (c *Calendar) Time() (time.Time, error) {
	if err := c.live("calendar.Time"); err != nil {
		return time.Time{}, err
	}
	return c.local(), nil
}

// SetTime sets the instant from t.
func (c *Calendar) SetTime(t time.Time) error {
	if err := c.live("calendar.SetTime"); err != nil {
		return err
	}
	c.setTime(t)
	return nil
}

// SetDate sets year, month (0-based) and day of month, keeping the time of
// day.
func (c *Calendar) SetDate(year, month, date int) error {
	if err := c.live("calendar.SetDate"); err != nil {
		return err
	}
	t := c.local()
	return c.compose("calendar.SetDate", year, month, date, t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1e6,
		map[Field]int{ExtendedYear: year, Month: month, Date: date})
}

// SetDateTime sets the date and the time of day. Milliseconds are kept.
func (c *Calendar) SetDateTime(year, month, date, hour, minute, second int) error {
	if err := c.live("calendar.SetDateTime"); err != nil {
		return err
	}
	return c.compose("calendar.SetDateTime", year, month, date, hour, minute, second, c.local().Nanosecond()/1e6,
		map[Field]int{ExtendedYear: year, Month: month, Date: date, HourOfDay: hour, Minute: minute, Second: second})
}

// compose sets the local date and time. A non-lenient calendar rejects
// values that do not read back unchanged.
func (c *Calendar) compose(op string, year, month, date, hour, minute, second, milli int, check map[Field]int) error {
	prev := c.ms
	c.setTime(time.Date(year, time.Month(month+1), date, hour, minute, second, milli*1e6, c.loc))
	if c.lenient {
		return nil
	}
	for f, v := range check {
		if c.get(f) != v {
			c.ms = prev
			return status.New(op, status.InvalidParameter, ErrFieldValue)
		}
	}
	return nil
}

// Clear resets the calendar to 1970-01-01 00:00 local time.
func (c *Calendar) Clear() error {
	if err := c.live("calendar.Clear"); err != nil {
		return err
	}
	c.setTime(time.Date(1970, time.January, 1, 0, 0, 0, 0, c.loc))
	return nil
}

// Attribute returns a calendar setting; Lenient reads as 0 or 1.
func (c *Calendar) Attribute(a Attribute) (int, error) {
	if err := c.live("calendar.Attribute"); err != nil {
		return 0, err
	}
	switch a {
	case Lenient:
		if c.lenient {
			return 1, nil
		}
		return 0, nil
	case FirstDayOfWeek:
		return c.firstDay, nil
	case MinimalDaysInFirstWeek:
		return c.minDays, nil
	}
	return 0, status.New("calendar.Attribute", status.InvalidParameter, ErrInvalidAttribute)
}

// SetAttribute changes a calendar setting.
func (c *Calendar) SetAttribute(a Attribute, v int) error {
	if err := c.live("calendar.SetAttribute"); err != nil {
		return err
	}
	switch a {
	case Lenient:
		c.lenient = v != 0
	case FirstDayOfWeek:
		if v < Sunday || v > Saturday {
			return status.New("calendar.SetAttribute", status.InvalidParameter, ErrFieldValue)
		}
		c.firstDay = v
	case MinimalDaysInFirstWeek:
		if v < 1 || v > 7 {
			return status.New("calendar.SetAttribute", status.InvalidParameter, ErrFieldValue)
		}
		c.minDays = v
	default:
		return status.New("calendar.SetAttribute", status.InvalidParameter, ErrInvalidAttribute)
	}
	return nil
}

// TimeZoneID returns the ID of the calendar's zone.
func (c *Calendar) TimeZoneID() (string, error) {
	if err := c.live("calendar.TimeZoneID"); err != nil {
		return "", err
	}
	return c.zone.Get().ID()
}

// TimeZone returns a copy of the calendar's zone for the caller to close.
func (c *Calendar) TimeZone() (*timezone.Zone, error) {
	if err := c.live("calendar.TimeZone"); err != nil {
		return nil, err
	}
	return c.zone.Get().Clone()
}

// SetTimeZone switches to the zone zoneID ("" is the default zone). The
// instant is kept.
func (c *Calendar) SetTimeZone(zoneID string) error {
	if err := c.live("calendar.SetTimeZone"); err != nil {
		return err
	}
	z, err := timezone.New(zoneID)
	if err != nil {
		return err
	}
	return c.adopt(z)
}

// SetZone switches to a copy of z.
func (c *Calendar) SetZone(z *timezone.Zone) error {
	if err := c.live("calendar.SetZone"); err != nil {
		return err
	}
	clone, err := z.Clone()
	if err != nil {
		return err
	}
	return c.adopt(clone)
}

func (c *Calendar) adopt(z *timezone.Zone) error {
	loc, err := z.Location()
	if err != nil {
		return err
	}
	if err := c.zone.Replace(handle.Own(z)); err != nil {
		return err
	}
	c.loc = loc
	return nil
}

// Equivalent reports whether o has the same settings and zone, ignoring the
// instant.
func (c *Calendar) Equivalent(o *Calendar) (bool, error) {
	if err := c.live("calendar.Equivalent"); err != nil {
		return false, err
	}
	if err := o.live("calendar.Equivalent"); err != nil {
		return false, err
	}
	cz, _ := c.zone.Get().ID()
	oz, _ := o.zone.Get().ID()
	return cz == oz && c.lenient == o.lenient && c.firstDay == o.firstDay && c.minDays == o.minDays, nil
}

// Before reports whether c's instant is before o's.
func (c *Calendar) Before(o *Calendar) (bool, error) {
	if err := c.live("calendar.Before"); err != nil {
		return false, err
	}
	if err := o.live("calendar.Before"); err != nil {
		return false, err
	}
	return c.ms < o.ms, nil
}

// After reports whether c's instant is after o's.
func (c *Calendar) After(o *Calendar) (bool, error) {
	if err := c.live("calendar.After"); err != nil {
		return false, err
	}
	if err := o.live("calendar.After"); err != nil {
		return false, err
	}
	return c.ms > o.ms, nil
}

// Clone returns an independent calendar with its own copy of the zone.
func (c *Calendar) Clone() (*Calendar, error) {
	if err := c.live("calendar.Clone"); err != nil {
		return nil, err
	}
	z, err := c.zone.Get().Clone()
	if err != nil {
		return nil, err
	}
	out := &Calendar{
		zone:     handle.Own(z),
		loc:      c.loc,
		id:       c.id,
		ms:       c.ms,
		firstDay: c.firstDay,
		minDays:  c.minDays,
		lenient:  c.lenient,
	}
	out.lc.Open(Kind)
	return out, nil
}

// Close releases the calendar and its zone.
func (c *Calendar) Close() error {
	if c == nil {
		return handle.Nil("calendar.Close")
	}
	if err := c.lc.Release("calendar.Close"); err != nil {
		return err
	}
	return c.zone.Release()
}
