package tzdata

import (
	"strings"

	"github.com/megatih/GeoTimeZone/internal/domain"
	"github.com/megatih/GeoTimeZone/internal/timeutil"
)

// Basin tokens produced by the classifier. Synthesised zone names are not
// IANA identifiers; consumers rely on the offset fields for arithmetic.
const (
	BasinArctic             = "Arctic"
	BasinNorthPacific       = "North_Pacific"
	BasinSouthPacific       = "South_Pacific"
	BasinNorthAtlantic      = "North_Atlantic"
	BasinSouthAtlantic      = "South_Atlantic"
	BasinIndian             = "Indian"
	BasinSouthern           = "Southern"
	BasinNorthAmerica       = "North_America"
	BasinNorthernHemisphere = "Northern_Hemisphere"
	BasinSouthernHemisphere = "Southern_Hemisphere"
)

// BuildNaturalTimezone fabricates a zone for a point without transition
// table coverage. Instants before 1900 get second-accurate solar mean time
// ("SOL"); later instants get the whole-hour bucket for the longitude
// ("LOC").
func BuildNaturalTimezone(zone, dateStr string, lng float64, cc string) *domain.TimeZone {
	dt := timeutil.IsoStringToDatetime(dateStr)
	before1900 := dt.Year() < 1900

	abbr := "LOC"
	gmtOffset := timeutil.NaturalHoursOffsetFromUtc(lng) * 3600
	if before1900 {
		abbr = "SOL"
		gmtOffset = timeutil.NaturalTzOffsetFromUtc(lng)
	}

	tz := domain.NewTimeZone(zone, cc, abbr, dt.Unix(), gmtOffset, false)
	tz.SetNaturalOffset(lng)
	tz.SetRefTime(dt.Unix())
	return &tz
}

// BuildOceanTimezone synthesises a zone for a point in open ocean from a
// basin name and longitude, e.g. "North_Atlantic/02W". An empty basin falls
// back to the box classifier.
func BuildOceanTimezone(basin string, lat, lng float64) *domain.TimeZone {
	if basin == "" {
		basin = OceanBasin(lat, lng)
	}
	tz := domain.NewOceanTimeZone(basin, lng)
	return &tz
}

// OceanName extracts a basin name from a placename, skipping directional
// words so "South Atlantic Ocean" and "Atlantic Ocean" share a token.
// Returns the empty string when every word is directional.
func OceanName(placename string) string {
	for _, word := range strings.Fields(placename) {
		switch strings.ToLower(word) {
		case "north", "south", "east", "west":
			continue
		default:
			return word
		}
	}
	return ""
}

// OceanBasin classifies a coordinate into one of the ten basin tokens.
// The boxes are deliberately coarse: they only have to produce a plausible
// label for points no toponym or remote lookup could name, and every
// coordinate maps to exactly one token.
func OceanBasin(lat, lng float64) string {
	switch {
	case lat > 66:
		return BasinArctic
	case lat < -60:
		return BasinSouthern
	}
	// The Pacific wraps the antimeridian.
	if lng > 150 || lng < -130 {
		if lat >= 0 {
			return BasinNorthPacific
		}
		return BasinSouthPacific
	}
	if lng >= -70 && lng < 20 {
		if lat >= 0 {
			return BasinNorthAtlantic
		}
		return BasinSouthAtlantic
	}
	if lng >= 20 && lng <= 150 && lat < 30 {
		return BasinIndian
	}
	if lng >= -130 && lng < -70 && lat >= 0 {
		return BasinNorthAmerica
	}
	if lat >= 0 {
		return BasinNorthernHemisphere
	}
	return BasinSouthernHemisphere
}

// IsInOceanZone reports whether a coordinate lies in the open-ocean
// longitude band where widening a toponym search is pointless: east of the
// Pacific's western margin or west of its eastern one.
func IsInOceanZone(lat, lng float64) bool {
	return lng > 150 || lng < -130
}
