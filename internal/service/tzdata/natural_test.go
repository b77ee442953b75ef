package tzdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var basinTokens = map[string]bool{
	BasinArctic:             true,
	BasinNorthPacific:       true,
	BasinSouthPacific:       true,
	BasinNorthAtlantic:      true,
	BasinSouthAtlantic:      true,
	BasinIndian:             true,
	BasinSouthern:           true,
	BasinNorthAmerica:       true,
	BasinNorthernHemisphere: true,
	BasinSouthernHemisphere: true,
}

// Every coordinate classifies to exactly one of the ten tokens.
func TestOceanBasinTotality(t *testing.T) {
	for lat := -90.0; lat <= 90.0; lat += 7.5 {
		for lng := -180.0; lng <= 180.0; lng += 7.5 {
			basin := OceanBasin(lat, lng)
			assert.True(t, basinTokens[basin], "(%f,%f) -> %q", lat, lng, basin)
		}
	}
}

func TestOceanBasinKnownPoints(t *testing.T) {
	assert.Equal(t, BasinNorthAtlantic, OceanBasin(0, -30))
	assert.Equal(t, BasinSouthAtlantic, OceanBasin(-25, -15))
	assert.Equal(t, BasinNorthPacific, OceanBasin(30, 170))
	assert.Equal(t, BasinSouthPacific, OceanBasin(-20, -150))
	assert.Equal(t, BasinIndian, OceanBasin(-10, 80))
	assert.Equal(t, BasinArctic, OceanBasin(80, 0))
	assert.Equal(t, BasinSouthern, OceanBasin(-70, 100))
	assert.Equal(t, BasinNorthAmerica, OceanBasin(40, -100))
}

func TestBuildOceanTimezone(t *testing.T) {
	tz := BuildOceanTimezone("North_Atlantic", 0, -30)
	require.NotNil(t, tz)
	assert.Equal(t, "North_Atlantic/02W", tz.ZoneName)
	assert.Equal(t, -7200, tz.GmtOffset)
	assert.Equal(t, "LOC", tz.Abbreviation)

	// Empty basin falls back to the classifier.
	classified := BuildOceanTimezone("", 0, -30)
	require.NotNil(t, classified)
	assert.Equal(t, "North_Atlantic/02W", classified.ZoneName)
}

func TestOceanNameSkipsDirectionalWords(t *testing.T) {
	assert.Equal(t, "Atlantic", OceanName("North Atlantic Ocean"))
	assert.Equal(t, "Pacific", OceanName("South Pacific Ocean"))
	assert.Equal(t, "Indian", OceanName("Indian Ocean"))
	assert.Equal(t, "", OceanName("North South"))
	assert.Equal(t, "", OceanName(""))
}

func TestIsInOceanZoneUsesDisjunction(t *testing.T) {
	assert.True(t, IsInOceanZone(0, 160))
	assert.True(t, IsInOceanZone(0, -140))
	assert.False(t, IsInOceanZone(0, 0))
	assert.False(t, IsInOceanZone(51.5, -0.12))
}

func TestBuildNaturalTimezoneRegimes(t *testing.T) {
	sol := BuildNaturalTimezone("Mid/Atlantic", "1850-06-01T00:00:00", -30.25, "-")
	require.NotNil(t, sol)
	assert.Equal(t, "SOL", sol.Abbreviation)
	assert.Equal(t, -7260, sol.GmtOffset)

	loc := BuildNaturalTimezone("Mid/Atlantic", "2023-06-01T00:00:00", -30.25, "-")
	require.NotNil(t, loc)
	assert.Equal(t, "LOC", loc.Abbreviation)
	assert.Equal(t, -7200, loc.GmtOffset)
	require.NotNil(t, loc.SolarUtcOffset)
	assert.Equal(t, -7260, *loc.SolarUtcOffset)
}
