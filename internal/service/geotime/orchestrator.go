// Package geotime contains the two orchestrators that tie the stores, the
// offline boundary lookup, the remote geocoding client and the zone
// resolver together.
//
// The geo→zone orchestrator turns a coordinate into a placename chain and a
// resolved TimeZone, trying sources cheapest-first: the local toponym
// table, then the embedded boundary index, then the remote provider, and
// finally longitude-based synthesis so every coordinate gets an answer.
//
// The name→geo orchestrator turns a place-name query into ranked locations,
// choosing between the local city table and the remote fuzzy search on
// quality signals (hit count, query length, the caller's fuzziness hint).
package geotime

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/megatih/GeoTimeZone/internal/domain"
	"github.com/megatih/GeoTimeZone/internal/service/geonames"
	"github.com/megatih/GeoTimeZone/internal/service/tzdata"
	"github.com/megatih/GeoTimeZone/internal/service/tzlookup"
	"github.com/megatih/GeoTimeZone/internal/timeutil"
)

// Proximity search tolerances in degrees. The first pass is tight; a miss
// widens the box once, further still on the /geotz path where a place row
// is optional anyway.
const (
	proximityTolerance      = 1.25
	proximityToleranceRetry = 2.5
	proximityToleranceGeoTz = 3.0
)

// ToponymSource is the slice of the local store the orchestrators consume.
type ToponymSource interface {
	Proximity(ctx context.Context, lat, lng, toleranceDeg float64) *domain.GeoNameNearby
	LocalitiesByName(ctx context.Context, text, cc string, limit int) []domain.Locality
}

// GeoClient is the slice of the remote geocoding client the orchestrators
// consume.
type GeoClient interface {
	FetchTimezone(ctx context.Context, lat, lng float64) *geonames.TimeZoneInfo
	FetchExtendedNearby(ctx context.Context, lat, lng float64) []domain.GeoNameRow
	FetchNearbyPlace(ctx context.Context, lat, lng float64) []domain.GeoNameRow
	Search(ctx context.Context, opts geonames.SearchOptions) []domain.GeoNameRow
}

// Service is the orchestrator facade used by the HTTP handlers.
type Service struct {
	store    ToponymSource
	geo      GeoClient
	resolver *tzdata.Resolver

	// zoneAt is the offline boundary lookup, injectable for tests.
	zoneAt func(lat, lng float64) string

	log *log.Logger
}

// New wires the orchestrators.
func New(store ToponymSource, geo GeoClient, resolver *tzdata.Resolver, logger *log.Logger) *Service {
	return &Service{
		store:    store,
		geo:      geo,
		resolver: resolver,
		zoneAt:   tzlookup.FromCoordinates,
		log:      logger,
	}
}

// nearbyToponym runs the tolerance ladder over the local toponym table.
// Open-ocean coordinates skip the widened retry; nothing sensible lies
// within a few degrees anyway.
func (s *Service) nearbyToponym(ctx context.Context, lat, lng, retryTolerance float64) *domain.GeoNameNearby {
	nb := s.store.Proximity(ctx, lat, lng, proximityTolerance)
	if nb == nil && !tzdata.IsInOceanZone(lat, lng) {
		nb = s.store.Proximity(ctx, lat, lng, retryTolerance)
	}
	return nb
}

// Nearby is the /nearby lookup: the closest local toponym within the given
// tolerance in degrees.
func (s *Service) Nearby(ctx context.Context, lat, lng, toleranceDeg float64) *domain.GeoNameNearby {
	if toleranceDeg <= 0 {
		toleranceDeg = proximityTolerance
	}
	return s.store.Proximity(ctx, lat, lng, toleranceDeg)
}

// resolveZoneName finds the zone identifier for a coordinate without the
// remote provider: the local toponym hit first, the embedded boundary
// index second.
func (s *Service) resolveZoneName(nb *domain.GeoNameNearby, lat, lng float64) string {
	if nb != nil && nb.ZoneName != "" {
		return nb.ZoneName
	}
	return s.zoneAt(lat, lng)
}

// timeFromZoneInfo resolves a remote timezoneJSON answer into a TimeZone.
// A synthesised identifier is never fed back into the transition store;
// it goes straight to longitude-based fabrication.
func (s *Service) timeFromZoneInfo(ctx context.Context, tzi *geonames.TimeZoneInfo, utcString string, lng float64, enforceDst bool, ov *tzdata.OffsetOverride) *domain.TimeZone {
	if tzi == nil || len(tzi.Tz) <= 2 {
		return nil
	}
	if tzi.Synthesised {
		return tzdata.BuildNaturalTimezone(tzi.Tz, utcString, lng, "-")
	}
	return s.resolver.Resolve(ctx, tzi.Tz, utcString, &lng, enforceDst, ov)
}

// GeoTimeInfo answers /geotime: the placename chain for a coordinate plus
// the zone in effect there at the reference datetime.
func (s *Service) GeoTimeInfo(ctx context.Context, lat, lng float64, utcString string, enforceDst bool, ov *tzdata.OffsetOverride) domain.GeoTimeInfo {
	nb := s.nearbyToponym(ctx, lat, lng, proximityToleranceRetry)
	if nb != nil {
		if zoneName := s.resolveZoneName(nb, lat, lng); zoneName != "" {
			tz := s.resolver.Resolve(ctx, zoneName, utcString, &lng, enforceDst, ov)
			return domain.GeoTimeInfo{
				Placenames: nb.ToRows(),
				Time:       tz,
				Sun:        sunFor(tz, lat, lng),
			}
		}
	}

	// Remote fall-back: hierarchy for the placenames, then the provider's
	// zone lookup at the most specific chain entry, then synthesis.
	placenames := s.geo.FetchExtendedNearby(ctx, lat, lng)

	var tz *domain.TimeZone
	if zoneName := s.zoneAt(lat, lng); zoneName != "" {
		tz = s.resolver.Resolve(ctx, zoneName, utcString, &lng, enforceDst, ov)
	}
	if tz == nil {
		blat, blng := lat, lng
		if len(placenames) > 0 {
			best := placenames[len(placenames)-1]
			blat, blng = best.Lat, best.Lng
		}
		tz = s.timeFromZoneInfo(ctx, s.geo.FetchTimezone(ctx, blat, blng), utcString, lng, enforceDst, ov)
	}
	if tz == nil {
		basin := ""
		if len(placenames) > 0 {
			basin = tzdata.OceanName(placenames[0].Name)
		}
		tz = tzdata.BuildOceanTimezone(basin, lat, lng)
		tz.SetRefTime(timeutil.IsoStringToUnixtime(utcString))
	}

	return domain.GeoTimeInfo{
		Placenames: placenames,
		Time:       tz,
		Sun:        sunFor(tz, lat, lng),
	}
}

// GeoTzInfo answers /geotz: like GeoTimeInfo but with the single nearest
// place instead of the full chain, and a wider second proximity pass.
func (s *Service) GeoTzInfo(ctx context.Context, lat, lng float64, utcString string, enforceDst bool, ov *tzdata.OffsetOverride) domain.GeoTzInfo {
	nb := s.nearbyToponym(ctx, lat, lng, proximityToleranceGeoTz)
	tz := s.TimeInfoFromCoords(ctx, lat, lng, utcString, enforceDst, ov)
	return domain.GeoTzInfo{Place: nb, Time: tz}
}

// TimeInfoFromCoords resolves just the TimeZone for a coordinate at a
// reference datetime, walking the same source ladder as GeoTimeInfo. Every
// coordinate yields a zone; open ocean synthesises one.
func (s *Service) TimeInfoFromCoords(ctx context.Context, lat, lng float64, utcString string, enforceDst bool, ov *tzdata.OffsetOverride) *domain.TimeZone {
	nb := s.nearbyToponym(ctx, lat, lng, proximityToleranceGeoTz)
	if zoneName := s.resolveZoneName(nb, lat, lng); zoneName != "" {
		if tz := s.resolver.Resolve(ctx, zoneName, utcString, &lng, enforceDst, ov); tz != nil {
			return tz
		}
	}
	if tz := s.timeFromZoneInfo(ctx, s.geo.FetchTimezone(ctx, lat, lng), utcString, lng, enforceDst, ov); tz != nil {
		return tz
	}
	tz := tzdata.BuildOceanTimezone("", lat, lng)
	tz.SetRefTime(timeutil.IsoStringToUnixtime(utcString))
	return tz
}

// AdjustedDateStr reconciles a wall-clock datetime declared local at the
// coordinate into UTC, honouring the DST preference.
func (s *Service) AdjustedDateStr(ctx context.Context, lat, lng float64, dateStr string, enforceDst bool, ov *tzdata.OffsetOverride) string {
	zoneAt := func(ctx context.Context, ref string) *domain.TimeZone {
		return s.TimeInfoFromCoords(ctx, lat, lng, ref, enforceDst, ov)
	}
	return tzdata.AdjustedDateStr(ctx, zoneAt, dateStr, enforceDst)
}

// sunFor computes the solar annotation when the zone resolved and the
// coordinate is plausible.
func sunFor(tz *domain.TimeZone, lat, lng float64) *domain.SunTimes {
	if tz == nil || !domain.NewCoords(lat, lng).IsValid() {
		return nil
	}
	return solarAnnotate(tz, lat, lng)
}
