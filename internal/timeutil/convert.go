// Package timeutil provides the datetime conversions used throughout the
// service: Unix seconds, Julian days, ISO-8601-like strings and natural
// (solar) offsets derived from longitude.
//
// All conversions treat instants as UTC. Formatted datetimes use the
// ISO layout "2006-01-02T15:04:05" with a T separator and no zone suffix.
//
// # Fuzzy parsing
//
// IsoStringToDatetime accepts YYYY-mm-dd HH:MM:SS separated by a space or
// the letter T, with or without month, day, hours, minutes or seconds.
// Missing date parts default to 01 and missing time parts to 00, so
// "2022-06-23" parses as 2022-06-23 00:00:00 UTC. Unparseable input yields
// the Unix epoch, which callers use as a parse-failed marker.
//
// # Julian days
//
// The Julian day number of the Unix epoch is 2440587.5 (noon-based day
// count). Values below 100 are treated as numeric literals that probably
// represent something else, not Julian days.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ISOFormat is the canonical datetime layout emitted by this package.
const ISOFormat = "2006-01-02T15:04:05"

// julianDayUnixEpoch is the Julian day at 1970-01-01T00:00:00 UTC.
const julianDayUnixEpoch = 2440587.5

// minJulianDay is the threshold below which a numeric value is not
// interpreted as a Julian day.
const minJulianDay = 100.0

// UnixtimeToUTC formats Unix seconds as an ISO datetime string without a
// timezone suffix.
func UnixtimeToUTC(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(ISOFormat)
}

// IsoStringToDatetime parses an ISO-8601-like datetime string fuzzily.
//
// Rules: any fractional-seconds suffix is dropped, a T separator is treated
// as a space, missing month/day default to 01 and missing time components
// to 00. On unparseable input the Unix epoch is returned.
func IsoStringToDatetime(dt string) time.Time {
	base := dt
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	clean := strings.TrimSpace(strings.ReplaceAll(base, "T", " "))

	datePart := clean
	timePart := ""
	if i := strings.IndexByte(clean, ' '); i >= 0 {
		datePart = clean[:i]
		timePart = strings.TrimSpace(clean[i+1:])
	}

	dateParts := []string{"2000", "01", "01"}
	if len(datePart) > 1 {
		dateParts = strings.Split(datePart, "-")
	}
	for len(dateParts) < 3 {
		dateParts = append(dateParts, "01")
	}

	timeParts := []string{"00", "00", "00"}
	if len(timePart) > 1 {
		timeParts = strings.Split(timePart, ":")
	}
	for len(timeParts) < 3 {
		timeParts = append(timeParts, "00")
	}

	formatted := fmt.Sprintf("%s-%s-%s %s:%s:%s",
		dateParts[0], pad2(dateParts[1]), pad2(dateParts[2]),
		pad2(timeParts[0]), pad2(timeParts[1]), pad2(timeParts[2]))
	parsed, err := time.Parse("2006-01-02 15:04:05", formatted)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return parsed
}

// pad2 left-pads a numeric component to two digits so single-digit months,
// days or hours still parse against the fixed layout.
func pad2(part string) string {
	if len(part) == 1 {
		return "0" + part
	}
	return part
}

// IsoStringToUnixtime parses a fuzzy datetime string straight to Unix
// seconds.
func IsoStringToUnixtime(dt string) int64 {
	return IsoStringToDatetime(dt).Unix()
}

// MatchUnixTsFromFuzzyDatetime parses a datetime string to Unix seconds with
// the fuzzy rules of IsoStringToDatetime, falling back to the current time
// when the string is empty or does not parse (the epoch sentinel). This is
// the resolver's entry conversion: a missing or malformed reference datetime
// means "now".
func MatchUnixTsFromFuzzyDatetime(dt string) int64 {
	if strings.TrimSpace(dt) == "" {
		return time.Now().Unix()
	}
	parsed := IsoStringToDatetime(dt).Unix()
	if parsed == 0 {
		return time.Now().Unix()
	}
	return parsed
}

// UnixtimeToJulianDay converts Unix seconds to a Julian day number.
func UnixtimeToJulianDay(ts int64) float64 {
	return float64(ts)/86400 + julianDayUnixEpoch
}

// JulianDayToUnixtime converts a Julian day number to Unix seconds.
func JulianDayToUnixtime(jd float64) int64 {
	return int64((jd - julianDayUnixEpoch) * 86400)
}

// JulianDayToIsoDatetime renders a Julian day as an ISO datetime string.
//
// Values below 100 are treated as numeric literals rather than Julian days:
// non-zero values round-trip as their decimal representation and zero as the
// empty string.
func JulianDayToIsoDatetime(jd float64) string {
	if jd >= minJulianDay {
		return UnixtimeToUTC(JulianDayToUnixtime(jd))
	}
	if jd != 0 {
		return strconv.FormatFloat(jd, 'f', -1, 64)
	}
	return ""
}

// DatetimeToJulianDay parses a fuzzy datetime string and converts it to a
// Julian day number.
func DatetimeToJulianDay(dt string) float64 {
	return UnixtimeToJulianDay(IsoStringToUnixtime(dt))
}

// CurrentTimestamp returns the current Unix time in seconds.
func CurrentTimestamp() int64 {
	return time.Now().Unix()
}

// CurrentDatetimeString returns the current UTC time as an ISO datetime
// string.
func CurrentDatetimeString() string {
	return UnixtimeToUTC(CurrentTimestamp())
}

// UnixtimeToWeekday returns the ISO weekday number (Mon=1..Sun=7) and the
// English three-letter abbreviation for an instant. Callers pass local
// instants (UTC seconds plus the zone offset) to obtain the local weekday.
func UnixtimeToWeekday(ts int64) (int, string) {
	t := time.Unix(ts, 0).UTC()
	iso := int(t.Weekday())
	if iso == 0 {
		iso = 7
	}
	return iso, t.Format("Mon")
}

// NaturalTzOffsetFromUtc returns the second-accurate solar mean time offset
// for a longitude: four minutes per degree, normalised to [-180°, +180°).
func NaturalTzOffsetFromUtc(lng float64) int {
	lng360 := mod360(lng + 540)
	lng180 := lng360 - 180
	return int(lng180 * 4 * 60)
}

// NaturalHoursOffsetFromUtc buckets a longitude into a whole-hour offset.
// Each hourly bucket is centred on its nominal meridian, with longitudes of
// 172.5° and beyond pinned to +12.
func NaturalHoursOffsetFromUtc(lng float64) int {
	zoneDegOffset := 7.5
	if lng < 7.5 {
		zoneDegOffset = -7.5
	}
	secs := 12 * 3600
	if lng < 172.5 {
		secs = NaturalTzOffsetFromUtc(lng + zoneDegOffset)
	}
	return secs / 3600
}

// mod360 is a floored modulus keeping the result in [0, 360) for negative
// inputs as well.
func mod360(v float64) float64 {
	m := v - 360*float64(int(v/360))
	if m < 0 {
		m += 360
	}
	return m
}
