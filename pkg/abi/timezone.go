package abi

import (
	"context"
	"time"

	"github.com/dmitrymomot/intl/pkg/enum"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/timezone"
)

// ZoneOpen opens the zone with Olson or custom GMT id.
func (s *Surface) ZoneOpen(id string) (Handle, ErrorCode) {
	z, err := timezone.New(id)
	return create(s, "abi.ZoneOpen", z, err)
}

// ZoneOpenDefault opens the process default zone.
func (s *Surface) ZoneOpenDefault() (Handle, ErrorCode) {
	z, err := timezone.Default()
	return create(s, "abi.ZoneOpenDefault", z, err)
}

// ZoneClose destroys h.
func (s *Surface) ZoneClose(h Handle) ErrorCode {
	return destroy[*timezone.Zone](s, "abi.ZoneClose", h)
}

// ZoneDefault writes the ID of the process default zone into dst.
func (s *Surface) ZoneDefault(dst []byte, capacity int) (int, ErrorCode) {
	return chars(dst, capacity, timezone.DefaultID(), nil)
}

// ZoneSetDefault replaces the process default zone.
func (s *Surface) ZoneSetDefault(id string) ErrorCode {
	return code(timezone.SetDefault(id))
}

// ZoneRawOffset returns the standard offset of h in milliseconds.
func (s *Surface) ZoneRawOffset(ctx context.Context, h Handle) int {
	z, err := handle.Get[*timezone.Zone](s.table, h, "abi.ZoneRawOffset")
	if err != nil {
		return record(ctx, 0, err)
	}
	v, err := z.RawOffset()
	return record(ctx, v, err)
}

// ZoneInDaylightTime reports whether daylight time is in effect in h at
// date, in milliseconds since the Unix epoch.
func (s *Surface) ZoneInDaylightTime(ctx context.Context, h Handle, date int64) bool {
	z, err := handle.Get[*timezone.Zone](s.table, h, "abi.ZoneInDaylightTime")
	if err != nil {
		return record(ctx, false, err)
	}
	v, err := z.InDaylightTime(time.UnixMilli(date))
	return record(ctx, v, err)
}

// ZoneDisplayName writes the name of h in locale id into dst as UTF-16.
func (s *Surface) ZoneDisplayName(h Handle, id string, daylight bool, style timezone.DisplayStyle, dst []uint16, capacity int) (int, ErrorCode) {
	z, err := handle.Get[*timezone.Zone](s.table, h, "abi.ZoneDisplayName")
	if err != nil {
		return 0, code(err)
	}
	name, err := z.DisplayName(id, daylight, style)
	return text(dst, capacity, name, err)
}

// ZoneOpenIDs enumerates the zone IDs of the current database. An empty
// country enumerates all of them.
func (s *Surface) ZoneOpenIDs(ctx context.Context, country string) Handle {
	var e *enum.Enumeration
	if country == "" {
		e = timezone.OpenIDs()
	} else {
		e = timezone.OpenCountryIDs(country)
	}
	return record(ctx, s.put("abi.ZoneOpenIDs", e), nil)
}

// ZoneOpenIDsByOffset enumerates the zones with raw offset ms.
func (s *Surface) ZoneOpenIDsByOffset(ctx context.Context, ms int) Handle {
	return record(ctx, s.put("abi.ZoneOpenIDsByOffset", timezone.OpenIDsByOffset(ms)), nil)
}
