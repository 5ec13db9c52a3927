package calendar

import (
	"time"

	"github.com/dmitrymomot/intl/pkg/status"
)

// Get returns the value of field f.
func (c *Calendar) Get(f Field) (int, error) {
	if err := c.live("calendar.Get"); err != nil {
		return 0, err
	}
	if !f.Valid() {
		return 0, status.New("calendar.Get", status.InvalidParameter, ErrInvalidField)
	}
	return c.get(f), nil
}

func (c *Calendar) get(f Field) int {
	t := c.local()
	y := t.Year()
	dow := int(t.Weekday()) + 1
	switch f {
	case Era:
		if y > 0 {
			return 1
		}
		return 0
	case Year:
		if y > 0 {
			return y
		}
		return 1 - y
	case ExtendedYear:
		return y
	case Month:
		return int(t.Month()) - 1
	case WeekOfYear:
		woy, _ := c.weekOfYear(t)
		return woy
	case YearWOY:
		_, wy := c.weekOfYear(t)
		return wy
	case WeekOfMonth:
		return c.weekNumber(t.Day(), dow)
	case Date:
		return t.Day()
	case DayOfYear:
		return t.YearDay()
	case DayOfWeek:
		return dow
	case DOWLocal:
		return (dow-c.firstDay+7)%7 + 1
	case DayOfWeekInMonth:
		return (t.Day()-1)/7 + 1
	case AmPm:
		return t.Hour() / 12
	case Hour:
		return t.Hour() % 12
	case HourOfDay:
		return t.Hour()
	case Minute:
		return t.Minute()
	case Second:
		return t.Second()
	case Millisecond:
		return t.Nanosecond() / 1e6
	case ZoneOffset, DSTOffset:
		raw, dst, _ := c.zone.Get().Offset(t)
		if f == ZoneOffset {
			return raw
		}
		return dst
	case JulianDay:
		return int(civilDays(y, t.Month(), t.Day())) + julianEpochDay
	case MillisecondsInDay:
		return ((t.Hour()*60+t.Minute())*60+t.Second())*1000 + t.Nanosecond()/1e6
	}
	return 0
}

// civilDays returns the days from 1970-01-01 to the given date.
func civilDays(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// weekNumber numbers the week containing dayOfPeriod (1-based) of a period
// such as a month or a year.
func (c *Calendar) weekNumber(dayOfPeriod, dayOfWeek int) int {
	periodStart := (dayOfWeek - c.firstDay - dayOfPeriod + 1) % 7
	if periodStart < 0 {
		periodStart += 7
	}
	week := (dayOfPeriod + periodStart - 1) / 7
	if 7-periodStart >= c.minDays {
		week++
	}
	return week
}

// weekOfYear returns the week of year of t and the year the week belongs to,
// which differs from t's year around the new year.
func (c *Calendar) weekOfYear(t time.Time) (week, year int) {
	y, doy := t.Year(), t.YearDay()
	dow := int(t.Weekday()) + 1
	week = c.weekNumber(doy, dow)
	if week == 0 {
		prevLen := daysInYear(y - 1)
		return c.weekNumber(doy+prevLen, dow), y - 1
	}
	last := daysInYear(y)
	if doy >= last-5 {
		relDow := (dow + 7 - c.firstDay) % 7
		lastRelDow := (relDow + last - doy) % 7
		if 6-lastRelDow >= c.minDays && doy+7-relDow > last {
			return 1, y + 1
		}
	}
	return week, y
}

func daysInYear(y int) int {
	return time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

func daysInMonth(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Set changes field f. Lenient calendars normalize overflowing values
// (month 12 is January of the next year); non-lenient ones reject them.
func (c *Calendar) Set(f Field, v int) error {
	if err := c.live("calendar.Set"); err != nil {
		return err
	}
	t := c.local()
	y, mo, d := t.Year(), int(t.Month())-1, t.Day()
	h, mi, s, ms := t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1e6
	dow := int(t.Weekday()) + 1

	switch f {
	case Era:
		if (v == 0) == (y > 0) {
			y = 1 - y
		}
	case Year:
		if y > 0 {
			y = v
		} else {
			y = 1 - v
		}
	case ExtendedYear:
		y = v
	case Month:
		mo = v
	case Date:
		d = v
	case DayOfYear:
		mo, d = 0, v
	case DayOfWeek:
		d += (v-c.firstDay+7)%7 - (dow-c.firstDay+7)%7
	case DOWLocal:
		d += (v - 1) - (dow-c.firstDay+7)%7
	case WeekOfYear:
		cur, _ := c.weekOfYear(t)
		d += 7 * (v - cur)
	case WeekOfMonth:
		d += 7 * (v - c.weekNumber(t.Day(), dow))
	case DayOfWeekInMonth:
		d += 7 * (v - ((t.Day()-1)/7 + 1))
	case AmPm:
		h = h%12 + 12*v
	case Hour:
		h = (h/12)*12 + v
	case HourOfDay:
		h = v
	case Minute:
		mi = v
	case Second:
		s = v
	case Millisecond:
		ms = v
	case JulianDay:
		jd := time.Unix(int64(v-julianEpochDay)*86400, 0).UTC()
		y, mo, d = jd.Year(), int(jd.Month())-1, jd.Day()
	case MillisecondsInDay:
		h, mi, s, ms = 0, 0, 0, v
	case ZoneOffset, DSTOffset, YearWOY:
		return status.New("calendar.Set", status.NotSupported, ErrInvalidField)
	default:
		return status.New("calendar.Set", status.InvalidParameter, ErrInvalidField)
	}
	return c.compose("calendar.Set", y, mo, d, h, mi, s, ms, map[Field]int{f: v})
}

// Add adds amount to field f. Adding months or years keeps the day of month
// where possible and pins it to the last day otherwise (January 31 plus one
// month is the end of February). Time fields add elapsed time.
func (c *Calendar) Add(f Field, amount int) error {
	if err := c.live("calendar.Add"); err != nil {
		return err
	}
	t := c.local()
	switch f {
	case Year, ExtendedYear:
		t = addMonths(t, 12*amount)
	case Month:
		t = addMonths(t, amount)
	case WeekOfYear, WeekOfMonth, DayOfWeekInMonth:
		t = t.AddDate(0, 0, 7*amount)
	case Date, DayOfYear, DayOfWeek, DOWLocal, JulianDay:
		t = t.AddDate(0, 0, amount)
	case AmPm:
		t = t.Add(time.Duration(amount) * 12 * time.Hour)
	case Hour, HourOfDay:
		t = t.Add(time.Duration(amount) * time.Hour)
	case Minute:
		t = t.Add(time.Duration(amount) * time.Minute)
	case Second:
		t = t.Add(time.Duration(amount) * time.Second)
	case Millisecond, MillisecondsInDay:
		t = t.Add(time.Duration(amount) * time.Millisecond)
	case Era, ZoneOffset, DSTOffset, YearWOY:
		return status.New("calendar.Add", status.NotSupported, ErrInvalidField)
	default:
		return status.New("calendar.Add", status.InvalidParameter, ErrInvalidField)
	}
	c.setTime(t)
	return nil
}

func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	d := min(t.Day(), daysInMonth(first.Year(), first.Month()))
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
