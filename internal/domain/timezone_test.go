package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// London fixtures: BST from 2023-03-26T01:00Z to 2023-10-29T01:00Z.
const (
	bstStart2023 = int64(1679792400)
	bstEnd2023   = int64(1698541200)
)

func bst2023() TimeZone {
	tz := NewTimeZone("Europe/London", "GB", "BST", bstStart2023, 3600, true)
	tz.AddEnd(bstEnd2023, 0)
	return tz
}

func TestNewTimeZoneSetsPeriodStart(t *testing.T) {
	tz := bst2023()
	assert.Equal(t, bstStart2023, tz.Period.Start)
	assert.Equal(t, "2023-03-26T01:00:00", tz.Period.StartUtc)
	require.NotNil(t, tz.Period.End)
	assert.Equal(t, bstEnd2023, *tz.Period.End)
	assert.Equal(t, "2023-10-29T01:00:00", tz.Period.EndUtc)
	require.NotNil(t, tz.Period.NextGmtOffset)
	assert.Equal(t, 0, *tz.Period.NextGmtOffset)
}

func TestSetRefTimeAnnotations(t *testing.T) {
	tz := bst2023()
	tz.SetRefTime(1686830400) // 2023-06-15T12:00:00Z, a Thursday

	require.NotNil(t, tz.RefUnix)
	assert.Equal(t, int64(1686830400), *tz.RefUnix)
	assert.Equal(t, "2023-06-15T12:00:00", tz.Utc)
	assert.Equal(t, "2023-06-15T13:00:00", tz.LocalDt)
	require.NotNil(t, tz.WeekDay)
	assert.Equal(t, 4, tz.WeekDay.Iso)
	assert.Equal(t, 5, tz.WeekDay.Sun)
	assert.Equal(t, "Thu", tz.WeekDay.Abbr)
	require.NotNil(t, tz.RefJd)
	assert.InDelta(t, 2460111.0, *tz.RefJd, 0.001)
}

// Period containment: once a reference time inside the period is set,
// start <= ref < end.
func TestPeriodContainment(t *testing.T) {
	tz := bst2023()
	for _, ts := range []int64{bstStart2023, bstStart2023 + 1, 1686830400, bstEnd2023 - 1} {
		tz.SetRefTime(ts)
		assert.LessOrEqual(t, tz.Period.Start, *tz.RefUnix)
		assert.Less(t, *tz.RefUnix, *tz.Period.End)
	}
}

func TestNextDiffOffset(t *testing.T) {
	tz := bst2023()
	assert.Equal(t, 3600, tz.NextDiffOffset())

	open := NewTimeZone("Europe/London", "GB", "BST", bstStart2023, 3600, true)
	assert.Equal(t, 0, open.NextDiffOffset(), "no successor means no difference")
	assert.Equal(t, 3600, open.NextOffset())
}

// The overlap window brackets the transition by the offset difference:
// within |diff| of the period end when the offset rises next, within
// |diff| of the period start when it falls next.
func TestOverlapDetection(t *testing.T) {
	// GMT period right after the 2023 fall-back, next change is the
	// spring forward (diff < 0).
	gmt := NewTimeZone("Europe/London", "GB", "GMT", bstEnd2023, 0, false)
	gmt.AddEnd(1711846800, 3600)

	gmt.SetRefTime(1711846800 - 1800) // 30 min before the spring forward
	assert.True(t, gmt.IsOverlapPeriod())
	gmt.SetRefTime(1711846800 - 7200) // 2 h before: outside the window
	assert.False(t, gmt.IsOverlapPeriod())

	// BST period: offset falls at the period end (diff > 0), so the
	// window sits just after the period start.
	bst := bst2023()
	bst.SetRefTime(bstStart2023 + 1800)
	assert.True(t, bst.IsOverlapPeriod())
	bst.SetRefTime(bstStart2023 + 7200)
	assert.False(t, bst.IsOverlapPeriod())

	// No successor: no window at all.
	open := NewTimeZone("Europe/London", "GB", "GMT", bstEnd2023, 0, false)
	open.SetRefTime(bstEnd2023 + 60)
	assert.False(t, open.IsOverlapPeriod())
}

func TestOverlapExtraShiftsByOffset(t *testing.T) {
	// PDT period ending with the 2024-11-03 fall-back at 09:00Z.
	pdt := NewTimeZone("America/Los_Angeles", "US", "PDT", 1710064800, -25200, true)
	pdt.AddEnd(1730624400, -28800)

	// Local 01:30 on 2024-11-03 read as UTC (01:30Z): shifting back by the
	// PDT offset lands the candidate at 08:30Z, 30 min before the jump.
	assert.True(t, pdt.OverlapExtraAt(1730597400))

	// A midsummer instant sits nowhere near the window.
	assert.False(t, pdt.OverlapExtraAt(1718452800))
}

func TestOceanZoneNaming(t *testing.T) {
	tz := NewOceanTimeZone("North_Atlantic", -30)
	assert.Equal(t, "North_Atlantic/02W", tz.ZoneName)
	assert.Equal(t, -7200, tz.GmtOffset)
	assert.Equal(t, "LOC", tz.Abbreviation)
	assert.Equal(t, "-", tz.CountryCode)
	assert.False(t, tz.Dst)
	require.NotNil(t, tz.SolarUtcOffset)
	assert.Equal(t, -7200, *tz.SolarUtcOffset)
	assert.True(t, tz.IsSynthesised())

	east := NewOceanTimeZone("Indian", 75)
	assert.Equal(t, "Indian/05E", east.ZoneName)
	assert.Equal(t, 5*3600, east.GmtOffset)
}

func TestTimeZoneJSONShape(t *testing.T) {
	tz := bst2023()
	tz.SetRefTime(1686830400)
	body, err := json.Marshal(tz)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "Europe/London", decoded["zoneName"])
	assert.Equal(t, "GB", decoded["countryCode"])
	assert.Equal(t, float64(3600), decoded["gmtOffset"])
	assert.Equal(t, "2023-06-15T13:00:00", decoded["localDt"])
	period, ok := decoded["period"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(bstStart2023), period["start"])
	assert.Equal(t, float64(0), period["nextGmtOffset"])
	// Annotations absent before a reference time is set must stay omitted.
	bare, _ := json.Marshal(NewTimeZone("Europe/London", "GB", "GMT", bstEnd2023, 0, false))
	assert.NotContains(t, string(bare), "localDt")
	assert.NotContains(t, string(bare), "refUnix")
}
