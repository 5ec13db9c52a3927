// Package utmscale converts between platform time scales and the universal
// time scale: 100 ns ticks since 0001-01-01 00:00 UTC (the .NET DateTime
// scale).
package utmscale

import (
	"errors"
	"math"
	"math/big"
	"time"

	"github.com/dmitrymomot/intl/pkg/status"
)

var (
	// ErrInvalidScale is returned for a Scale outside the defined constants.
	ErrInvalidScale = errors.New("utmscale: invalid time scale")
	// ErrInvalidValue is returned by ScaleValue for an unknown Value.
	ErrInvalidValue = errors.New("utmscale: invalid scale value")
	// ErrOutOfRange is returned when a conversion would overflow int64.
	ErrOutOfRange = errors.New("utmscale: time out of range for the scale")
)

// Scale is a platform time scale.
type Scale int

const (
	// Java counts milliseconds since 1970-01-01.
	Java Scale = iota
	// Unix counts seconds since 1970-01-01.
	Unix
	// ICU4C counts milliseconds since 1970-01-01.
	ICU4C
	// WindowsFileTime counts 100 ns ticks since 1601-01-01.
	WindowsFileTime
	// DotNet counts 100 ns ticks since 0001-01-01; it is the universal scale.
	DotNet
	// MacOld counts seconds since 1904-01-01.
	MacOld
	// Mac counts seconds since 2001-01-01.
	Mac
	// Excel counts days since 1899-12-31.
	Excel
	// DB2 counts days since 1899-12-31.
	DB2
	// UnixMicroseconds counts microseconds since 1970-01-01.
	UnixMicroseconds

	scaleCount
)

func (s Scale) String() string {
	switch s {
	case Java:
		return "java"
	case Unix:
		return "unix"
	case ICU4C:
		return "icu4c"
	case WindowsFileTime:
		return "windows_file_time"
	case DotNet:
		return "dotnet"
	case MacOld:
		return "mac_old"
	case Mac:
		return "mac"
	case Excel:
		return "excel"
	case DB2:
		return "db2"
	case UnixMicroseconds:
		return "unix_microseconds"
	}
	return "unknown"
}

// Value selects a constant of a scale.
type Value int

const (
	// Units is the number of universal ticks per scale unit.
	Units Value = iota
	// EpochOffset is the scale's epoch in scale units before 0001-01-01.
	EpochOffset
	// FromMin and FromMax bound the scale values FromInt64 accepts.
	FromMin
	FromMax
	// ToMin and ToMax bound the universal values ToInt64 accepts.
	ToMin
	ToMax

	valueCount
)

type scaleData struct {
	units, epochOffset           int64
	fromMin, fromMax             int64
	toMin, toMax                 int64
	unitsRound                   int64
	minRound, maxRound           int64
	epochOffsetP1, epochOffsetM1 int64
}

var scales = func() [scaleCount]scaleData {
	base := [scaleCount][2]int64{
		Java:             {10_000, 62_135_596_800_000},
		Unix:             {10_000_000, 62_135_596_800},
		ICU4C:            {10_000, 62_135_596_800_000},
		WindowsFileTime:  {1, 504_911_232_000_000_000},
		DotNet:           {1, 0},
		MacOld:           {10_000_000, 60_052_752_000},
		Mac:              {10_000_000, 63_113_904_000},
		Excel:            {864_000_000_000, 693_594},
		DB2:              {864_000_000_000, 693_594},
		UnixMicroseconds: {10, 62_135_596_800_000_000},
	}
	var out [scaleCount]scaleData
	for s, b := range base {
		units, offset := b[0], b[1]
		d := scaleData{
			units:         units,
			epochOffset:   offset,
			unitsRound:    units / 2,
			epochOffsetP1: offset + 1,
			epochOffsetM1: offset - 1,
		}
		d.minRound = math.MinInt64 + d.unitsRound
		d.maxRound = math.MaxInt64 - d.unitsRound
		bu, bo := big.NewInt(units), big.NewInt(offset)
		d.fromMin = clamp(new(big.Int).Sub(new(big.Int).Quo(big.NewInt(math.MinInt64), bu), bo))
		d.fromMax = clamp(new(big.Int).Sub(new(big.Int).Quo(big.NewInt(math.MaxInt64), bu), bo))
		d.toMin = clamp(new(big.Int).Mul(big.NewInt(math.MinInt64+offset), big.NewInt(units)))
		d.toMax = clamp(new(big.Int).Mul(new(big.Int).Add(big.NewInt(math.MaxInt64), big.NewInt(offset)), big.NewInt(units)))
		out[s] = d
	}
	return out
}()

func clamp(v *big.Int) int64 {
	switch {
	case v.Cmp(big.NewInt(math.MinInt64)) < 0:
		return math.MinInt64
	case v.Cmp(big.NewInt(math.MaxInt64)) > 0:
		return math.MaxInt64
	}
	return v.Int64()
}

func lookup(op string, s Scale) (*scaleData, error) {
	if s < 0 || s >= scaleCount {
		return nil, status.New(op, status.InvalidParameter, ErrInvalidScale)
	}
	return &scales[s], nil
}

// ScaleValue returns a constant of the scale s.
func ScaleValue(s Scale, v Value) (int64, error) {
	const op = "utmscale.ScaleValue"
	d, err := lookup(op, s)
	if err != nil {
		return 0, err
	}
	switch v {
	case Units:
		return d.units, nil
	case EpochOffset:
		return d.epochOffset, nil
	case FromMin:
		return d.fromMin, nil
	case FromMax:
		return d.fromMax, nil
	case ToMin:
		return d.toMin, nil
	case ToMax:
		return d.toMax, nil
	}
	return 0, status.New(op, status.InvalidParameter, ErrInvalidValue)
}

// FromInt64 converts a time of the scale s to the universal scale.
func FromInt64(t int64, s Scale) (int64, error) {
	const op = "utmscale.FromInt64"
	d, err := lookup(op, s)
	if err != nil {
		return 0, err
	}
	if t < d.fromMin || t > d.fromMax {
		return 0, status.New(op, status.InvalidParameter, ErrOutOfRange)
	}
	return (t + d.epochOffset) * d.units, nil
}

// ToInt64 converts a universal time to the scale s, rounding to the nearest
// scale unit with halves away from zero.
func ToInt64(u int64, s Scale) (int64, error) {
	const op = "utmscale.ToInt64"
	d, err := lookup(op, s)
	if err != nil {
		return 0, err
	}
	if u < d.toMin || u > d.toMax {
		return 0, status.New(op, status.InvalidParameter, ErrOutOfRange)
	}
	if u < 0 {
		if u < d.minRound {
			return (u+d.unitsRound)/d.units - d.epochOffsetP1, nil
		}
		return (u-d.unitsRound)/d.units - d.epochOffset, nil
	}
	if u > d.maxRound {
		return (u-d.unitsRound)/d.units - d.epochOffsetM1, nil
	}
	return (u+d.unitsRound)/d.units - d.epochOffset, nil
}

// universalEpoch is 0001-01-01 00:00 UTC.
var universalEpoch = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// FromTime returns the universal time of t, truncated to 100 ns.
func FromTime(t time.Time) (int64, error) {
	const op = "utmscale.FromTime"
	secs := t.Unix() - universalEpoch.Unix()
	if secs > math.MaxInt64/10_000_000-1 || secs < math.MinInt64/10_000_000+1 {
		return 0, status.New(op, status.InvalidParameter, ErrOutOfRange)
	}
	return secs*10_000_000 + int64(t.Nanosecond()/100), nil
}

// ToTime returns the UTC time of a universal time.
func ToTime(u int64) time.Time {
	secs, ticks := u/10_000_000, u%10_000_000
	if ticks < 0 {
		secs--
		ticks += 10_000_000
	}
	return time.Unix(universalEpoch.Unix()+secs, ticks*100).UTC()
}
