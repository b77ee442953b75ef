// Package tzdata assembles civil time zones from the historical transition
// table and reconciles local wall-clock datetimes with UTC.
//
// The resolver answers "which offset applies in this zone at this instant":
// it pairs the transition in effect at a reference instant with its
// successor so the period's end and next offset are known, applies the
// caller's DST preference around backward jumps, and stamps the
// reference-instant annotations.
//
// For points the transition table cannot cover (open ocean, instants before
// 1900) the package fabricates a natural zone from longitude alone; see
// natural.go.
//
// # DST preference
//
// A wall-clock time during a fall-back overlap corresponds to two UTC
// instants and one during a spring-forward gap to none. The enforceDst flag
// selects the earlier reading (true) or the later one (false); the
// correction is carried in a per-request OffsetOverride so every TimeZone
// built for the same request reports a consistent effective offset.
package tzdata

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/megatih/GeoTimeZone/internal/domain"
	"github.com/megatih/GeoTimeZone/internal/store"
	"github.com/megatih/GeoTimeZone/internal/timeutil"
)

// TransitionSource yields the transition row nearest to an instant. The
// MySQL store implements it; tests substitute an in-memory table. Absence
// (unknown zone, instant before the first transition, store failure) is nil.
type TransitionSource interface {
	NearestTransition(ctx context.Context, zone string, ts int64, dir store.Direction) *domain.TimeZone
}

// OffsetOverride is the per-request scratch recording a DST-overlap
// correction so later TimeZone constructions in the same request inherit
// the effective offset. Handlers create a fresh value per request; it must
// never be shared across requests.
type OffsetOverride struct {
	active bool
	offset int
}

// Set records the effective offset for the remainder of the request.
func (o *OffsetOverride) Set(offset int) {
	o.active = true
	o.offset = offset
}

// Reset clears the override.
func (o *OffsetOverride) Reset() {
	o.active = false
	o.offset = 0
}

// Apply returns the effective offset: the override when one is recorded,
// the given offset otherwise.
func (o *OffsetOverride) Apply(offset int) int {
	if o != nil && o.active {
		return o.offset
	}
	return offset
}

// Resolver assembles TimeZone values from a TransitionSource.
type Resolver struct {
	src TransitionSource
	log *log.Logger
}

// NewResolver returns a resolver reading from the given transition source.
func NewResolver(src TransitionSource, logger *log.Logger) *Resolver {
	return &Resolver{src: src, log: logger}
}

// Resolve assembles the TimeZone for a zone name at a reference datetime.
//
// The datetime string is parsed fuzzily; a missing or malformed value means
// "now". When the transition table has no row for the zone at the instant
// and a longitude is known, a natural zone is synthesised instead; with no
// longitude the result is nil.
//
// The enforceDst policy applies inside the transition window reported by
// TimeZone.OverlapAt: with enforceDst false and the instant inside that
// window, the offset in effect a day later is adopted as the effective
// offset and recorded in the request's OffsetOverride.
func (r *Resolver) Resolve(ctx context.Context, zone, dateStr string, lng *float64, enforceDst bool, ov *OffsetOverride) *domain.TimeZone {
	ts := timeutil.MatchUnixTsFromFuzzyDatetime(dateStr)

	curr := r.src.NearestTransition(ctx, zone, ts, store.AtOrBefore)
	if curr == nil {
		if lng == nil {
			return nil
		}
		// Country code of the zone's latest known transition, if any.
		cc := "-"
		if latest := r.src.NearestTransition(ctx, zone, timeutil.CurrentTimestamp(), store.AtOrBefore); latest != nil {
			cc = latest.CountryCode
		}
		return BuildNaturalTimezone(zone, dateStr, *lng, cc)
	}

	if next := r.src.NearestTransition(ctx, zone, ts, store.After); next != nil {
		curr.AddEnd(next.Period.Start, next.GmtOffset)
	}

	if !enforceDst && curr.OverlapAt(ts) {
		if later := r.src.NearestTransition(ctx, zone, ts+86400, store.AtOrBefore); later != nil {
			ov.Set(later.GmtOffset)
		}
	}
	curr.GmtOffset = ov.Apply(curr.GmtOffset)

	curr.SetRefTime(ts)
	if lng != nil {
		curr.SetNaturalOffset(*lng)
	}
	return curr
}
