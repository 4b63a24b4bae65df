package metadata

import (
	"math"
	"time"
	_ "time/tzdata"

	"github.com/takeshy/reshape/internal/model"
)

// hourZones holds one representative zone per whole-hour offset, -12..+12.
//
// Resolving a zone from longitude alone ignores political boundaries and DST
// rules; it is a coarse heuristic, not a geographic lookup.
var hourZones = [25]string{
	"Etc/GMT+12",
	"Pacific/Pago_Pago",
	"Pacific/Honolulu",
	"America/Anchorage",
	"America/Los_Angeles",
	"America/Denver",
	"America/Chicago",
	"America/New_York",
	"America/Halifax",
	"America/Sao_Paulo",
	"Atlantic/South_Georgia",
	"Atlantic/Azores",
	"Europe/London",
	"Europe/Berlin",
	"Europe/Athens",
	"Europe/Moscow",
	"Asia/Dubai",
	"Asia/Karachi",
	"Asia/Dhaka",
	"Asia/Bangkok",
	"Asia/Shanghai",
	"Asia/Tokyo",
	"Australia/Sydney",
	"Pacific/Noumea",
	"Pacific/Auckland",
}

// ResolveTimezone approximates an IANA zone from a position using
// round(longitude / 15) as the hour offset.
func ResolveTimezone(lat, lon float64) (string, bool) {
	if math.IsNaN(lat) || math.IsNaN(lon) || lon < -180 || lon > 180 {
		return "", false
	}
	offset := int(math.Round(lon / 15.0))
	if offset < -12 {
		offset = -12
	}
	if offset > 12 {
		offset = 12
	}
	return hourZones[offset+12], true
}

// ToUTC interprets the wall clock of local in the zone resolved from gps and
// returns the UTC instant. Without a position, or if the zone cannot be
// loaded, the wall clock is taken as UTC.
func ToUTC(local time.Time, gps *model.GPSCoordinates) time.Time {
	wall := time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
	if gps == nil {
		return wall
	}
	name, ok := ResolveTimezone(gps.Latitude, gps.Longitude)
	if !ok {
		return wall
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return wall
	}
	return time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), loc).UTC()
}
