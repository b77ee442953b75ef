// Package solar computes the sun annotations attached to /geotime
// responses: sunrise, sunset and solar noon for the queried coordinate on
// the reference date, expressed as wall-clock times in the resolved zone.
//
// The calculations use the go-sampa library, an implementation of the NOAA
// Solar Position Algorithm accurate to within a minute for dates between
// 1950 and 2050. Failures (polar day or night, out-of-range dates) degrade
// to a nil annotation; the time response itself is unaffected.
package solar

import (
	"time"

	"github.com/hablullah/go-sampa"

	"github.com/megatih/GeoTimeZone/internal/domain"
	"github.com/megatih/GeoTimeZone/internal/timeutil"
)

// Annotate returns the sun times for a coordinate on the day of the zone's
// reference instant, or nil when they cannot be computed.
//
// Synthesised zones still work: the calculation only needs the coordinate
// and the effective offset, not an IANA identifier, so a fixed-offset
// location stands in for the zone.
func Annotate(tz *domain.TimeZone, lat, lng float64) *domain.SunTimes {
	if tz == nil || tz.RefUnix == nil {
		return nil
	}
	loc := time.FixedZone(tz.Abbreviation, tz.GmtOffset)
	ref := time.Unix(*tz.RefUnix, 0).In(loc)
	date := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)

	events, err := sampa.GetSunEvents(date, sampa.Location{
		Latitude:  lat,
		Longitude: lng,
	}, nil)
	if err != nil {
		return nil
	}

	sun := &domain.SunTimes{}
	if !events.Sunrise.DateTime.IsZero() {
		sun.Sunrise = events.Sunrise.DateTime.In(loc).Format(timeutil.ISOFormat)
	}
	if !events.Sunset.DateTime.IsZero() {
		sun.Sunset = events.Sunset.DateTime.In(loc).Format(timeutil.ISOFormat)
	}
	if !events.Transit.DateTime.IsZero() {
		sun.SolarNoon = events.Transit.DateTime.In(loc).Format(timeutil.ISOFormat)
	}
	if sun.Sunrise == "" && sun.Sunset == "" && sun.SolarNoon == "" {
		return nil
	}
	return sun
}
