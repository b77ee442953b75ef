package domain

import (
	"fmt"

	"github.com/megatih/GeoTimeZone/internal/timeutil"
)

// TimeZonePeriod describes the transition interval a zone is currently in:
// the instant the active offset took effect, the instant it ends (when a
// successor transition is known) and the offset that applies from the end
// onward.
//
// Invariant: when End is set, Start < End, and NextGmtOffset is the offset
// active from End onward.
type TimeZonePeriod struct {
	// Start is the Unix second at which the current offset took effect.
	Start int64 `json:"start"`

	// StartUtc is Start rendered as an ISO datetime string.
	StartUtc string `json:"startUtc,omitempty"`

	// End is the Unix second of the next transition, when one is known.
	End *int64 `json:"end,omitempty"`

	// EndUtc is End rendered as an ISO datetime string.
	EndUtc string `json:"endUtc,omitempty"`

	// NextGmtOffset is the offset in seconds east of UTC that applies from
	// End onward.
	NextGmtOffset *int `json:"nextGmtOffset,omitempty"`
}

// TimeZone is the unit the zone resolver returns: a named zone with the
// offset currently in effect, its transition period, and annotations tied to
// the reference instant once one has been set.
//
// Synthesised zones (abbreviation "SOL" or "LOC") carry names that are not
// IANA identifiers. Consumers must treat ZoneName as opaque and rely on
// GmtOffset and Utc for arithmetic; a synthesised name must never be fed
// back into the transition store.
type TimeZone struct {
	// ZoneName is an IANA-style Region/City identifier, or a synthesised
	// name such as "North_Atlantic/02W" for points outside tzdb coverage.
	ZoneName string `json:"zoneName"`

	// CountryCode is the ISO-3166 two-letter code, or "-" when synthesised.
	CountryCode string `json:"countryCode"`

	// Abbreviation is the short zone label, e.g. "BST", "PST", "SOL", "LOC".
	Abbreviation string `json:"abbreviation"`

	// GmtOffset is the offset in seconds east of UTC currently in effect.
	GmtOffset int `json:"gmtOffset"`

	// Dst reports whether daylight-saving time is in effect.
	Dst bool `json:"dst"`

	// Period is the transition interval bracketing the reference instant.
	Period TimeZonePeriod `json:"period"`

	// LocalDt is the wall-clock datetime at the reference instant.
	LocalDt string `json:"localDt,omitempty"`

	// Utc is the reference instant as a UTC datetime string.
	Utc string `json:"utc,omitempty"`

	// RefUnix is the reference instant in Unix seconds.
	RefUnix *int64 `json:"refUnix,omitempty"`

	// RefJd is the reference instant as a Julian day number.
	RefJd *float64 `json:"refJd,omitempty"`

	// WeekDay is the weekday of the reference instant in local time.
	WeekDay *WeekdayCode `json:"weekDay,omitempty"`

	// SolarUtcOffset is the second-accurate solar mean time offset for the
	// request longitude, set whenever a longitude is known.
	SolarUtcOffset *int `json:"solarUtcOffset,omitempty"`
}

// NewTimeZone builds a TimeZone from a transition row.
func NewTimeZone(zoneName, countryCode, abbreviation string, timeStart int64, gmtOffset int, dst bool) TimeZone {
	return TimeZone{
		ZoneName:     zoneName,
		CountryCode:  countryCode,
		Abbreviation: abbreviation,
		GmtOffset:    gmtOffset,
		Dst:          dst,
		Period: TimeZonePeriod{
			Start:    timeStart,
			StartUtc: timeutil.UnixtimeToUTC(timeStart),
		},
	}
}

// NewOceanTimeZone synthesises a zone for a point in open ocean. The name is
// built from the basin name and the absolute whole-hour offset, e.g.
// "North_Atlantic/02W", with the offset bucketed to whole hours.
func NewOceanTimeZone(basin string, lng float64) TimeZone {
	hours := timeutil.NaturalHoursOffsetFromUtc(lng)
	letter := "E"
	if lng < 0 {
		letter = "W"
	}
	abs := hours
	if abs < 0 {
		abs = -abs
	}
	solar := timeutil.NaturalTzOffsetFromUtc(lng)
	return TimeZone{
		ZoneName:       fmt.Sprintf("%s/%02d%s", basin, abs, letter),
		CountryCode:    "-",
		Abbreviation:   "LOC",
		GmtOffset:      hours * 3600,
		SolarUtcOffset: &solar,
	}
}

// AddEnd records the successor transition, closing the period.
func (tz *TimeZone) AddEnd(endTs int64, nextGmtOffset int) {
	tz.Period.End = &endTs
	tz.Period.EndUtc = timeutil.UnixtimeToUTC(endTs)
	tz.Period.NextGmtOffset = &nextGmtOffset
}

// SetRefTime stamps the reference-instant annotations: Unix seconds, Julian
// day, the UTC datetime, the local wall-clock datetime and the local
// weekday.
func (tz *TimeZone) SetRefTime(refTs int64) {
	jd := timeutil.UnixtimeToJulianDay(refTs)
	tz.RefUnix = &refTs
	tz.RefJd = &jd
	tz.Utc = timeutil.UnixtimeToUTC(refTs)
	localTs := refTs + int64(tz.GmtOffset)
	tz.LocalDt = timeutil.UnixtimeToUTC(localTs)
	iso, abbr := timeutil.UnixtimeToWeekday(localTs)
	wd := NewWeekdayCode(iso, abbr)
	tz.WeekDay = &wd
}

// SetNaturalOffset records the solar mean time offset for a longitude.
func (tz *TimeZone) SetNaturalOffset(lng float64) {
	solar := timeutil.NaturalTzOffsetFromUtc(lng)
	tz.SolarUtcOffset = &solar
}

// NextOffset returns the offset that applies after the period ends, falling
// back to the current offset when no successor transition is known.
func (tz *TimeZone) NextOffset() int {
	if tz.Period.NextGmtOffset != nil {
		return *tz.Period.NextGmtOffset
	}
	return tz.GmtOffset
}

// NextDiffOffset returns the signed difference between the current offset
// and the next one. Zero when no successor transition is known.
func (tz *TimeZone) NextDiffOffset() int {
	return tz.GmtOffset - tz.NextOffset()
}

// SecsToEnd returns the seconds between an instant and the period end, or a
// negative sentinel when the period is open-ended.
func (tz *TimeZone) SecsToEnd(ts int64) int64 {
	if tz.Period.End == nil {
		return -1
	}
	return *tz.Period.End - ts
}

// SecsSinceStart returns the seconds elapsed between the period start and an
// instant.
func (tz *TimeZone) SecsSinceStart(ts int64) int64 {
	return ts - tz.Period.Start
}

// OverlapAt reports whether an instant falls inside the transition window
// bracketed by the offset difference to the successor period: either within
// |diff| seconds of the period end (offset about to rise) or within |diff|
// seconds of the period start (offset due to fall at the period end).
func (tz *TimeZone) OverlapAt(ts int64) bool {
	diff := int64(tz.NextDiffOffset())
	if diff == 0 {
		return false
	}
	abs := diff
	if abs < 0 {
		abs = -abs
	}
	if diff < 0 && tz.Period.End != nil && tz.SecsToEnd(ts) < abs {
		return true
	}
	if diff > 0 && tz.SecsSinceStart(ts) < abs {
		return true
	}
	return false
}

// IsOverlapPeriod reports whether the reference instant lies in an overlap
// window. Always false before a reference time has been set.
func (tz *TimeZone) IsOverlapPeriod() bool {
	if tz.RefUnix == nil {
		return false
	}
	return tz.OverlapAt(*tz.RefUnix)
}

// OverlapExtraAt applies the overlap test to an instant shifted back by the
// current offset, ignoring the direction of the jump. The local-time
// reconciler uses this when the reference string was a wall-clock time
// interpreted as UTC, so the window has to be tested at the candidate UTC
// instant rather than at the raw reference.
func (tz *TimeZone) OverlapExtraAt(ts int64) bool {
	diff := int64(tz.NextDiffOffset())
	if diff == 0 {
		return false
	}
	abs := diff
	if abs < 0 {
		abs = -abs
	}
	candidate := ts - int64(tz.GmtOffset)
	if tz.Period.End != nil {
		if toEnd := tz.SecsToEnd(candidate); toEnd >= 0 && toEnd < abs {
			return true
		}
	}
	if since := tz.SecsSinceStart(candidate); since >= 0 && since < abs {
		return true
	}
	return false
}

// IsOverlapPeriodExtra applies OverlapExtraAt to the reference instant.
func (tz *TimeZone) IsOverlapPeriodExtra() bool {
	if tz.RefUnix == nil {
		return false
	}
	return tz.OverlapExtraAt(*tz.RefUnix)
}

// IsSynthesised reports whether the zone was fabricated from longitude alone
// rather than resolved from the transition store.
func (tz *TimeZone) IsSynthesised() bool {
	return tz.Abbreviation == "SOL" || tz.Abbreviation == "LOC"
}
