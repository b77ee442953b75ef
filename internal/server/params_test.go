package server

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optsFrom(raw string) InputOptions {
	q, _ := url.ParseQuery(raw)
	return parseInput(q)
}

func TestIsValidDateString(t *testing.T) {
	assert.True(t, isValidDateString("2023-06-15"))
	assert.True(t, isValidDateString("2023-06-15T12:00:00"))
	assert.False(t, isValidDateString("20230615"), "no dash")
	assert.False(t, isValidDateString("1-2-3"), "too short")
	assert.False(t, isValidDateString("yesterday-ish"), "too few digits")
}

func TestDatetimePrecedenceDtWins(t *testing.T) {
	dtStr, local := matchDatetimeFromParams(optsFrom("dt=2023-06-15T12:00:00&dtl=2023-01-01T00:00:00&jd=2451545&un=0"))
	assert.Equal(t, "2023-06-15T12:00:00", dtStr)
	assert.False(t, local)
}

func TestDatetimePrecedenceDtlSetsLocalFlag(t *testing.T) {
	dtStr, local := matchDatetimeFromParams(optsFrom("dtl=2023-10-29T01:30:00"))
	assert.Equal(t, "2023-10-29T01:30:00", dtStr)
	assert.True(t, local)
}

func TestDatetimePrecedenceJulianDay(t *testing.T) {
	dtStr, local := matchDatetimeFromParams(optsFrom("jd=2451545"))
	assert.Equal(t, "2000-01-01T12:00:00", dtStr)
	assert.False(t, local)

	// Below the plausibility threshold the value is ignored.
	dtStr, _ = matchDatetimeFromParams(optsFrom("jd=1999&un=946684800"))
	assert.Equal(t, "2000-01-01T00:00:00", dtStr)
}

func TestDatetimePrecedenceUnixSeconds(t *testing.T) {
	dtStr, local := matchDatetimeFromParams(optsFrom("un=946684800"))
	assert.Equal(t, "2000-01-01T00:00:00", dtStr)
	assert.False(t, local)

	// Out-of-range unix values fall through to "now".
	dtStr, _ = matchDatetimeFromParams(optsFrom("un=5000000000"))
	assert.Len(t, dtStr, 19)
	assert.NotEqual(t, "1970-01-01T00:00:00", dtStr)
}

func TestDatetimeDefaultsToNow(t *testing.T) {
	dtStr, local := matchDatetimeFromParams(optsFrom(""))
	require.Len(t, dtStr, 19)
	assert.False(t, local)
	assert.Contains(t, dtStr, "T")
}

func TestFuzzyDateStringNormalisation(t *testing.T) {
	dtStr, _ := matchDatetimeFromParams(optsFrom("dt=2023-06-15"))
	assert.Equal(t, "2023-06-15T00:00:00", dtStr)

	dtStr, _ = matchDatetimeFromParams(optsFrom("dt=2023-06-15+12%3A00%3A00.250"))
	assert.Equal(t, "2023-06-15T12:00:00", dtStr)
}

func TestMatchCoordsFromParams(t *testing.T) {
	coords := matchCoordsFromParams(optsFrom("loc=51.5,-0.12"))
	require.NotNil(t, coords)
	assert.Equal(t, 51.5, coords.Lat)
	assert.Equal(t, -0.12, coords.Lng)

	assert.Nil(t, matchCoordsFromParams(optsFrom("")))
	assert.Nil(t, matchCoordsFromParams(optsFrom("loc=51.5")))
}

func TestIsValidZoneName(t *testing.T) {
	assert.True(t, isValidZoneName("Europe/London"))
	assert.True(t, isValidZoneName("America/Argentina/Ushuaia"))
	assert.False(t, isValidZoneName("UTC"))
	assert.False(t, isValidZoneName("/Lima"))
	assert.False(t, isValidZoneName("Europe/"))
	assert.False(t, isValidZoneName("CET"))
}

func TestParseInputDefaults(t *testing.T) {
	opts := optsFrom("")
	assert.True(t, opts.EnforceDst, "dst defaults on")
	assert.True(t, opts.Included)
	assert.Zero(t, opts.Fuzzy)
	assert.Zero(t, opts.Max)

	opts = optsFrom("dst=0&included=0&fuzzy=120&max=7")
	assert.False(t, opts.EnforceDst)
	assert.False(t, opts.Included)
	assert.Equal(t, 120, opts.Fuzzy)
	assert.Equal(t, 7, opts.Max)
}
