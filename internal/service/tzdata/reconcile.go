package tzdata

import (
	"context"

	"github.com/megatih/GeoTimeZone/internal/domain"
	"github.com/megatih/GeoTimeZone/internal/timeutil"
)

// ZoneAtFunc resolves the zone that applies at the request location for a
// given reference datetime string. The /timezone handler resolves by zone
// name; the geo handlers resolve via coordinates. Returning nil means the
// zone could not be determined and the datetime is passed through
// unadjusted.
type ZoneAtFunc func(ctx context.Context, dateStr string) *domain.TimeZone

// AdjustedDateStr converts a wall-clock datetime that the caller declared
// to be local at the request location into the corresponding UTC datetime
// string.
//
// Three regimes apply. In the normal regime the zone offset is simply
// subtracted. Around a backward jump the wall-clock reading is ambiguous:
// enforceDst true selects the earlier UTC instant (daylight reading),
// false the later one. Inside a spring-forward gap the wall-clock time
// never existed and the result lands after the jump.
//
// The candidate instant is first derived by interpreting the wall-clock
// string as UTC and subtracting the offset in effect then. When that
// candidate crosses the period boundary (the local time belongs to the
// neighbouring period, or never existed), the zone is re-resolved at the
// shifted candidate and the corrected offset applied to the original
// reading.
func AdjustedDateStr(ctx context.Context, zoneAt ZoneAtFunc, dateStr string, enforceDst bool) string {
	tz := zoneAt(ctx, dateStr)
	if tz == nil {
		return dateStr
	}
	ts := timeutil.IsoStringToUnixtime(dateStr)
	off := int64(tz.GmtOffset)
	diff := int64(tz.NextDiffOffset())

	candidate := ts - off
	candidateNext := candidate + diff

	beforeStart := candidateNext <= tz.Period.Start
	beyondEnd := false
	if tz.Period.End != nil {
		boundary := candidateNext
		if enforceDst {
			boundary = candidate
		}
		beyondEnd = boundary >= *tz.Period.End
	}

	var result int64
	if !beforeStart && !beyondEnd {
		result = candidate
	} else {
		// The wall-clock reading belongs to the neighbouring period (or,
		// in a spring-forward gap, to no period at all): re-resolve at the
		// shifted candidate and correct the offset against the original
		// reading.
		abs := diff
		if abs < 0 {
			abs = -abs
		}
		// The reading is ambiguous only when the neighbouring-period
		// interpretation lands within the jump width of the boundary.
		ambiguous := false
		if beforeStart {
			ambiguous = tz.Period.Start-candidateNext < abs
		} else if tz.Period.End != nil {
			ambiguous = candidateNext-*tz.Period.End < abs
		}

		refOffset := off
		if tzi := zoneAt(ctx, timeutil.UnixtimeToUTC(candidateNext)); tzi != nil {
			refOffset = int64(tzi.GmtOffset)
			if !enforceDst && ambiguous {
				nextDiff := int64(tzi.NextDiffOffset())
				if nextDiff < 0 {
					nextDiff = -nextDiff
				}
				refOffset -= nextDiff
			}
		}
		result = ts - refOffset
	}

	// West of UTC the later (standard-time) reading of a fall-back overlap
	// still needs the jump applied on top of the re-resolved offset.
	if !enforceDst && off < 0 && tz.OverlapExtraAt(ts) {
		result -= diff
	}

	return timeutil.UnixtimeToUTC(result)
}
