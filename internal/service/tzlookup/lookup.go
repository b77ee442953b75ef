// Package tzlookup provides offline geographic coordinate to timezone
// mapping.
//
// The package uses the tzf library, which embeds the IANA timezone boundary
// polygons and answers point-in-polygon queries without touching the
// network or the database. The geo→zone orchestrator consults it after the
// local toponym table and before the remote geocoding provider: a boundary
// hit saves a network round-trip, and over open ocean the lookup simply
// misses and the caller falls through to synthesis.
//
// # Fallback behaviour
//
// A miss is reported as the empty string rather than being mapped to a UTC
// default, so callers can distinguish "no zone here" from a real answer and
// pick their own fallback.
package tzlookup

import (
	"github.com/ringsaturn/tzf"
)

// finder is initialized once at package load time and reused for all
// lookups; the embedded boundary data makes construction failure a sign of
// a corrupted binary, so it panics at startup rather than during requests.
var finder tzf.F

func init() {
	var err error
	finder, err = tzf.NewDefaultFinder()
	if err != nil {
		panic("failed to initialize timezone finder: " + err.Error())
	}
}

// FromCoordinates returns the IANA timezone identifier containing the given
// point, or the empty string when the point lies outside every boundary
// (open ocean, some polar areas).
//
// Note: tzf uses (lon, lat) order, which is geographic convention (x, y)
// but opposite of the (lat, lng) order used elsewhere in this service.
func FromCoordinates(lat, lng float64) string {
	return finder.GetTimezoneName(lng, lat)
}
