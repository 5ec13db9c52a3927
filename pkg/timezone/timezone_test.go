package timezone_test

import (
	"context"
	"encoding/binary"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/enum"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
	"github.com/dmitrymomot/intl/pkg/timezone"
)

// tzif builds a version 1 TZif file for a zone with one fixed offset.
func tzif(abbr string, offset int32) []byte {
	buf := []byte("TZif")
	buf = append(buf, make([]byte, 16)...)
	for _, n := range []uint32{0, 0, 0, 0, 1, uint32(len(abbr) + 1)} {
		buf = binary.BigEndian.AppendUint32(buf, n)
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(offset))
	buf = append(buf, 0, 0)
	buf = append(buf, abbr...)
	return append(buf, 0)
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"Test/Fixed":       {Data: tzif("TFX", 3*3600)},
		"Test/Other":       {Data: tzif("TOT", -5*3600)},
		"Test/notes":       {Data: []byte("not a zone")},
		"posix/Test/Fixed": {Data: tzif("TFX", 3*3600)},
		"zone1970.tab":     {Data: []byte("# comment\nXX\t+0000+00000\tTest/Fixed\tonly zone\n")},
	}
}

func openZone(t *testing.T, id string) *timezone.Zone {
	t.Helper()
	z, err := timezone.New(id)
	require.NoError(t, err, id)
	t.Cleanup(func() { _ = z.Close() })
	return z
}

func useDatabase(t *testing.T, db *timezone.Database) {
	t.Helper()
	prev := timezone.SetDatabase(db)
	t.Cleanup(func() {
		timezone.SetDatabase(prev)
		_ = db.Close()
	})
}

func collect(t *testing.T, e *enum.Enumeration) []string {
	t.Helper()
	items, err := enum.Collect(e)
	require.NoError(t, err)
	return items
}

func TestDatabase(t *testing.T) {
	t.Parallel()

	db := timezone.NewDatabase(testFS())
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()

	ids, err := db.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Test/Fixed", "Test/Other"}, ids)

	cc, err := db.CountryIDs(ctx, "xx")
	require.NoError(t, err)
	assert.Equal(t, []string{"Test/Fixed"}, cc)

	loc, err := db.Load(ctx, "Test/Fixed")
	require.NoError(t, err)
	name, off := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).In(loc).Zone()
	assert.Equal(t, "TFX", name)
	assert.Equal(t, 3*3600, off)

	_, err = db.Load(ctx, "Test/Missing")
	assert.ErrorIs(t, err, status.MissingResource)
	_, err = db.Load(ctx, "Test/notes")
	assert.ErrorIs(t, err, status.MissingResource)
	_, err = db.Load(ctx, "../etc/passwd")
	assert.ErrorIs(t, err, status.InvalidParameter)
}

func TestBuiltinDatabase(t *testing.T) {
	t.Parallel()

	db := timezone.NewDatabase(nil)
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()

	ids, err := db.IDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "Europe/Berlin")
	assert.IsIncreasing(t, ids)

	de, err := db.CountryIDs(ctx, "DE")
	require.NoError(t, err)
	assert.Contains(t, de, "Europe/Berlin")

	_, err = db.Load(ctx, "Asia/Tokyo")
	require.NoError(t, err)
	_, err = db.Load(ctx, "Nowhere/Special")
	assert.ErrorIs(t, err, status.MissingResource)
}

func TestEnumerations_FollowDatabase(t *testing.T) {
	useDatabase(t, timezone.NewDatabase(testFS()))

	e := timezone.OpenIDs()
	t.Cleanup(func() { _ = e.Close() })
	assert.Equal(t, []string{"Test/Fixed", "Test/Other"}, collect(t, e))

	byOffset := timezone.OpenIDsByOffset(-5 * 3600 * 1000)
	t.Cleanup(func() { _ = byOffset.Close() })
	assert.Equal(t, []string{"Test/Other"}, collect(t, byOffset))

	next := fstest.MapFS{"Only/One": {Data: tzif("ONE", 0)}}
	useDatabase(t, timezone.NewDatabase(next))

	require.NoError(t, e.Reset())
	_, _, err := e.Next()
	require.NoError(t, err)

	useDatabase(t, timezone.NewDatabase(next))
	_, _, err = e.Next()
	assert.ErrorIs(t, err, status.EnumOutOfSync, "replacing the database invalidates cursors")

	require.NoError(t, e.Reset())
	assert.Equal(t, []string{"Only/One"}, collect(t, e))

	require.NoError(t, timezone.Reload(context.Background()))
	_, _, err = e.Next()
	assert.ErrorIs(t, err, status.EnumOutOfSync, "reloading invalidates cursors")
}

func TestNew_FromDatabase(t *testing.T) {
	useDatabase(t, timezone.NewDatabase(testFS()))

	z := openZone(t, "Test/Fixed")
	id, err := z.ID()
	require.NoError(t, err)
	assert.Equal(t, "Test/Fixed", id)

	raw, err := z.RawOffset()
	require.NoError(t, err)
	assert.Equal(t, 3*3600*1000, raw)

	_, err = timezone.New("Test/Missing")
	assert.ErrorIs(t, err, status.MissingResource)
}

func TestNew_Custom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id     string
		want   string
		offset int
	}{
		{"GMT+5:30", "GMT+05:30", 19800000},
		{"GMT-8", "GMT-08:00", -28800000},
		{"UTC+0100", "GMT+01:00", 3600000},
		{"GMT+00:00", "GMT", 0},
	}
	for _, tt := range tests {
		z := openZone(t, tt.id)
		id, err := z.ID()
		require.NoError(t, err)
		assert.Equal(t, tt.want, id)
		raw, err := z.RawOffset()
		require.NoError(t, err)
		assert.Equal(t, tt.offset, raw)
	}

	for _, bad := range []string{"GMT+24", "GMT+05:60", "GMT+", "GMT+123456"} {
		_, err := timezone.New(bad)
		assert.ErrorIs(t, err, status.InvalidParameter, bad)
	}
}

func TestDaylightSaving(t *testing.T) {
	t.Parallel()

	ny := openZone(t, "America/New_York")
	winter := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	summer := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	raw, dst, err := ny.Offset(winter)
	require.NoError(t, err)
	assert.Equal(t, -5*3600*1000, raw)
	assert.Zero(t, dst)

	raw, dst, err = ny.Offset(summer)
	require.NoError(t, err)
	assert.Equal(t, -5*3600*1000, raw)
	assert.Equal(t, 3600*1000, dst)

	in, err := ny.InDaylightTime(summer)
	require.NoError(t, err)
	assert.True(t, in)

	uses, err := ny.UseDaylightTime()
	require.NoError(t, err)
	assert.True(t, uses)
	savings, err := ny.DSTSavings()
	require.NoError(t, err)
	assert.Equal(t, 3600*1000, savings)

	tokyo := openZone(t, "Asia/Tokyo")
	uses, err = tokyo.UseDaylightTime()
	require.NoError(t, err)
	assert.False(t, uses)
	savings, err = tokyo.DSTSavings()
	require.NoError(t, err)
	assert.Zero(t, savings)
}

func TestHasSameRules(t *testing.T) {
	t.Parallel()

	ny := openZone(t, "America/New_York")
	same, err := ny.HasSameRules(openZone(t, "America/Toronto"))
	require.NoError(t, err)
	assert.True(t, same)

	same, err = ny.HasSameRules(openZone(t, "America/Chicago"))
	require.NoError(t, err)
	assert.False(t, same)

	same, err = openZone(t, "GMT+09:00").HasSameRules(openZone(t, "Asia/Tokyo"))
	require.NoError(t, err)
	assert.True(t, same)
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	ny := openZone(t, "America/New_York")
	tests := []struct {
		id       string
		daylight bool
		style    timezone.DisplayStyle
		want     string
	}{
		{"en_US", false, timezone.Long, "Eastern Standard Time"},
		{"en_US", true, timezone.Long, "Eastern Daylight Time"},
		{"en_US", false, timezone.Short, "EST"},
		{"en_US", false, timezone.ShortGMT, "-0500"},
		{"en_US", true, timezone.LongGMT, "GMT-04:00"},
		{"de_DE", false, timezone.Long, "GMT-05:00"},
	}
	for _, tt := range tests {
		got, err := ny.DisplayName(tt.id, tt.daylight, tt.style)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	custom := openZone(t, "GMT+05:30")
	got, err := custom.DisplayName("en", false, timezone.Short)
	require.NoError(t, err)
	assert.Equal(t, "GMT+05:30", got)

	_, err = ny.DisplayName("en", false, timezone.DisplayStyle(9))
	assert.ErrorIs(t, err, status.InvalidParameter)
}

func TestDefault(t *testing.T) {
	prev := timezone.DefaultID()
	t.Cleanup(func() { _ = timezone.SetDefault(prev) })

	require.NoError(t, timezone.SetDefault("Europe/Paris"))
	assert.Equal(t, "Europe/Paris", timezone.DefaultID())

	z, err := timezone.Default()
	require.NoError(t, err)
	defer z.Close()
	id, err := z.ID()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", id)

	empty := openZone(t, "")
	id, err = empty.ID()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", id)

	assert.ErrorIs(t, timezone.SetDefault("Nowhere/Special"), status.MissingResource)
	assert.Equal(t, "Europe/Paris", timezone.DefaultID())
}

func TestZoneLifecycle(t *testing.T) {
	t.Parallel()

	z, err := timezone.New("Europe/London")
	require.NoError(t, err)
	c, err := z.Clone()
	require.NoError(t, err)
	require.NoError(t, z.Close())

	_, err = z.ID()
	assert.ErrorIs(t, err, handle.ErrDestroyed)
	id, err := c.ID()
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", id, "clones outlive the original")
	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Close(), handle.ErrDestroyed)
}
