package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocStringToCoords(t *testing.T) {
	assert.Equal(t, Coords{Lat: 51.5, Lng: -0.12}, LocStringToCoords("51.5,-0.12"))
	assert.Equal(t, Coords{Lat: 51.5, Lng: -0.12}, LocStringToCoords("51.5, -0.12, 11"))
	assert.Equal(t, ZeroCoords(), LocStringToCoords("51.5"))
	assert.Equal(t, ZeroCoords(), LocStringToCoords("abc,def"))
	// A parseable pair survives one junk part.
	assert.Equal(t, Coords{Lat: 1, Lng: 2}, LocStringToCoords("junk,1,2"))
}

func TestCoordsValidity(t *testing.T) {
	assert.True(t, ZeroCoords().IsZero())
	assert.True(t, NewCoords(0, 0).IsValid(), "the sentinel is a real place in the Gulf of Guinea")
	assert.False(t, NewCoords(91, 0).IsValid())
	assert.False(t, NewCoords(0, 181).IsValid())
}

func TestWeightedPop(t *testing.T) {
	city := GeoNameRow{Fcode: "PPLA", Pop: 1000}
	region := GeoNameRow{Fcode: "ADM1", Pop: 1000}
	country := GeoNameRow{Fcode: "PCLI", Pop: 1000}
	assert.Equal(t, int64(8000), city.WeightedPop())
	assert.Equal(t, int64(1000), region.WeightedPop())
	assert.Equal(t, int64(1000), country.WeightedPop(), "PCLI is political, not populated-place class")
}

func TestNearbyToRows(t *testing.T) {
	nb := GeoNameNearby{
		GeoNameRow: GeoNameRow{
			Lat: 48.8, Lng: 2.35, Name: "Paris", Toponym: "Paris",
			Fcode: "PPLC", Pop: 2000000, CountryCode: "FR", AdminName: "Paris",
		},
		Distance:    3.2,
		Region:      "Ile-de-France",
		CountryName: "France",
		ZoneName:    "Europe/Paris",
	}
	rows := nb.ToRows()
	assert.Len(t, rows, 3, "admin level equal to the place name collapses")
	assert.Equal(t, "PCLI", rows[0].Fcode)
	assert.Equal(t, "France", rows[0].Name)
	assert.Equal(t, "ADM1", rows[1].Fcode)
	assert.Equal(t, "Ile-de-France", rows[1].Name)
	assert.Equal(t, "PPLC", rows[2].Fcode)
	assert.Equal(t, "Paris", rows[2].Name)
}

func TestFeatureCodePredicates(t *testing.T) {
	assert.True(t, FeatureCode("PPL").IsPopulatedPlace())
	assert.True(t, FeatureCode("PPLA2").IsPopulatedPlace())
	assert.False(t, FeatureCode("PCLI").IsPopulatedPlace())
	assert.False(t, FeatureCode("ADM1").IsPopulatedPlace())
	assert.True(t, FeatureCode("AIRP").IsProximityExcluded())
	assert.False(t, FeatureCode("PPL").IsProximityExcluded())
}
