package calendar

// Field identifies a calendar field.
type Field int

const (
	Era Field = iota
	Year
	Month // 0-based: January is 0
	WeekOfYear
	WeekOfMonth
	Date // day of month
	DayOfYear
	DayOfWeek // 1 is Sunday, 7 is Saturday
	DayOfWeekInMonth
	AmPm
	Hour // 0-11
	HourOfDay
	Minute
	Second
	Millisecond
	ZoneOffset
	DSTOffset
	YearWOY
	DOWLocal
	ExtendedYear
	JulianDay
	MillisecondsInDay

	fieldCount
)

var fieldNames = [...]string{
	"era", "year", "month", "week_of_year", "week_of_month", "date",
	"day_of_year", "day_of_week", "day_of_week_in_month", "am_pm", "hour",
	"hour_of_day", "minute", "second", "millisecond", "zone_offset",
	"dst_offset", "year_woy", "dow_local", "extended_year", "julian_day",
	"milliseconds_in_day",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "invalid"
	}
	return fieldNames[f]
}

// Valid reports whether f is a known field.
func (f Field) Valid() bool { return f >= 0 && f < fieldCount }

// Months.
const (
	January = iota
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

// Days of the week.
const (
	Sunday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Attribute is a calendar setting other than the time.
type Attribute int

const (
	Lenient Attribute = iota
	FirstDayOfWeek
	MinimalDaysInFirstWeek
)

// Type selects the calendar system.
type Type int

const (
	// Traditional is the calendar of the locale.
	Traditional Type = iota
	// Gregorian is the proleptic Gregorian calendar.
	Gregorian
)

const julianEpochDay = 2440588 // Julian day of 1970-01-01
