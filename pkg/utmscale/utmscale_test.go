package utmscale_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/status"
	"github.com/dmitrymomot/intl/pkg/utmscale"
)

// unixEpoch is 1970-01-01 on the universal scale.
const unixEpoch int64 = 621_355_968_000_000_000

func TestScaleValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scale utmscale.Scale
		value utmscale.Value
		want  int64
	}{
		{utmscale.Java, utmscale.Units, 10_000},
		{utmscale.Java, utmscale.EpochOffset, 62_135_596_800_000},
		{utmscale.Java, utmscale.FromMin, -984_472_800_485_477},
		{utmscale.Java, utmscale.FromMax, 860_201_606_885_477},
		{utmscale.Unix, utmscale.Units, 10_000_000},
		{utmscale.WindowsFileTime, utmscale.EpochOffset, 504_911_232_000_000_000},
		{utmscale.WindowsFileTime, utmscale.ToMin, math.MinInt64 + 504_911_232_000_000_000},
		{utmscale.DotNet, utmscale.ToMin, math.MinInt64},
		{utmscale.DotNet, utmscale.ToMax, math.MaxInt64},
		{utmscale.Excel, utmscale.Units, 864_000_000_000},
		{utmscale.UnixMicroseconds, utmscale.Units, 10},
	}
	for _, tt := range tests {
		t.Run(tt.scale.String(), func(t *testing.T) {
			t.Parallel()
			got, err := utmscale.ScaleValue(tt.scale, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := utmscale.ScaleValue(utmscale.Scale(99), utmscale.Units)
	assert.ErrorIs(t, err, status.InvalidParameter)
	assert.ErrorIs(t, err, utmscale.ErrInvalidScale)
	_, err = utmscale.ScaleValue(utmscale.Java, utmscale.Value(42))
	assert.ErrorIs(t, err, utmscale.ErrInvalidValue)
}

func TestConversions(t *testing.T) {
	t.Parallel()

	epochs := map[utmscale.Scale]int64{
		utmscale.Java:             0,
		utmscale.Unix:             0,
		utmscale.ICU4C:            0,
		utmscale.UnixMicroseconds: 0,
		utmscale.DotNet:           unixEpoch,
		utmscale.WindowsFileTime:  116_444_736_000_000_000,
		utmscale.Mac:              -978_307_200,
		utmscale.MacOld:           2_082_844_800,
		utmscale.Excel:            25_568,
		utmscale.DB2:              25_568,
	}
	for scale, at := range epochs {
		t.Run(scale.String(), func(t *testing.T) {
			t.Parallel()
			u, err := utmscale.FromInt64(at, scale)
			require.NoError(t, err)
			assert.Equal(t, unixEpoch, u)
			back, err := utmscale.ToInt64(u, scale)
			require.NoError(t, err)
			assert.Equal(t, at, back)
		})
	}
}

func TestToInt64_Rounding(t *testing.T) {
	t.Parallel()

	got, err := utmscale.ToInt64(unixEpoch+5_000, utmscale.Java)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	got, err = utmscale.ToInt64(unixEpoch+4_999, utmscale.Java)
	require.NoError(t, err)
	assert.Zero(t, got)

	got, err = utmscale.ToInt64(-5_000, utmscale.Java)
	require.NoError(t, err)
	assert.Equal(t, int64(-62_135_596_800_001), got)

	got, err = utmscale.ToInt64(math.MinInt64, utmscale.Java)
	require.NoError(t, err)
	assert.Equal(t, int64(-984_472_800_485_478), got)
}

func TestRange(t *testing.T) {
	t.Parallel()

	fromMax, err := utmscale.ScaleValue(utmscale.Unix, utmscale.FromMax)
	require.NoError(t, err)
	_, err = utmscale.FromInt64(fromMax, utmscale.Unix)
	require.NoError(t, err)
	_, err = utmscale.FromInt64(fromMax+1, utmscale.Unix)
	assert.ErrorIs(t, err, status.InvalidParameter)
	assert.ErrorIs(t, err, utmscale.ErrOutOfRange)

	_, err = utmscale.ToInt64(math.MinInt64, utmscale.WindowsFileTime)
	assert.ErrorIs(t, err, utmscale.ErrOutOfRange)

	_, err = utmscale.FromInt64(0, utmscale.Scale(-1))
	assert.ErrorIs(t, err, utmscale.ErrInvalidScale)
}

func TestWindowsFileTime_Bounds(t *testing.T) {
	t.Parallel()

	fromMin, err := utmscale.ScaleValue(utmscale.WindowsFileTime, utmscale.FromMin)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), fromMin)
	fromMax, err := utmscale.ScaleValue(utmscale.WindowsFileTime, utmscale.FromMax)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64-504_911_232_000_000_000), fromMax)

	for _, ft := range []int64{math.MinInt64, 0, 116_444_736_000_000_000, fromMax} {
		u, err := utmscale.FromInt64(ft, utmscale.WindowsFileTime)
		require.NoError(t, err, ft)
		back, err := utmscale.ToInt64(u, utmscale.WindowsFileTime)
		require.NoError(t, err, ft)
		assert.Equal(t, ft, back)
	}

	_, err = utmscale.FromInt64(fromMax+1, utmscale.WindowsFileTime)
	assert.ErrorIs(t, err, utmscale.ErrOutOfRange)

	got, err := utmscale.ToInt64(math.MaxInt64, utmscale.WindowsFileTime)
	require.NoError(t, err)
	assert.Equal(t, fromMax, got)
}

func TestTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.January, 31, 15, 4, 5, 678_912_300, time.UTC)
	u, err := utmscale.FromTime(at)
	require.NoError(t, err)

	ms, err := utmscale.ToInt64(u, utmscale.Java)
	require.NoError(t, err)
	assert.Equal(t, int64(1706713445679), ms)
	assert.True(t, at.Equal(utmscale.ToTime(u)))

	u, err = utmscale.FromTime(time.Unix(0, 0))
	require.NoError(t, err)
	assert.Equal(t, unixEpoch, u)
	assert.Equal(t, time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC), utmscale.ToTime(0))
}
