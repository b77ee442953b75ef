package tzdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megatih/GeoTimeZone/internal/domain"
	"github.com/megatih/GeoTimeZone/internal/timeutil"
)

// zoneAtByName builds the reconciler callback the /timezone handler uses:
// resolution by zone name with a per-test override scratch.
func zoneAtByName(r *Resolver, zone string, enforceDst bool) ZoneAtFunc {
	ov := &OffsetOverride{}
	return func(ctx context.Context, ref string) *domain.TimeZone {
		return r.Resolve(ctx, zone, ref, nil, enforceDst, ov)
	}
}

func adjustLondon(t *testing.T, dateStr string, enforceDst bool) string {
	t.Helper()
	r := testResolver()
	return AdjustedDateStr(context.Background(), zoneAtByName(r, "Europe/London", enforceDst), dateStr, enforceDst)
}

func adjustLA(t *testing.T, dateStr string, enforceDst bool) string {
	t.Helper()
	r := testResolver()
	return AdjustedDateStr(context.Background(), zoneAtByName(r, "America/Los_Angeles", enforceDst), dateStr, enforceDst)
}

func TestAdjustUnambiguousLocalTime(t *testing.T) {
	// Midsummer London: local 13:00 is UTC 12:00 under either policy.
	assert.Equal(t, "2023-06-15T12:00:00", adjustLondon(t, "2023-06-15T13:00:00", true))
	assert.Equal(t, "2023-06-15T12:00:00", adjustLondon(t, "2023-06-15T13:00:00", false))

	// Midwinter: GMT, no shift at all.
	assert.Equal(t, "2023-12-15T09:00:00", adjustLondon(t, "2023-12-15T09:00:00", true))

	// Los Angeles midsummer: local 12:00 PDT is 19:00 UTC.
	assert.Equal(t, "2024-06-15T19:00:00", adjustLA(t, "2024-06-15T12:00:00", true))
	assert.Equal(t, "2024-06-15T19:00:00", adjustLA(t, "2024-06-15T12:00:00", false))
}

// London 2023-10-29 01:30 happens twice. enforceDst selects the earlier
// (BST) reading, its absence the later (GMT) one.
func TestAdjustFallBackOverlapLondon(t *testing.T) {
	earlier := adjustLondon(t, "2023-10-29T01:30:00", true)
	later := adjustLondon(t, "2023-10-29T01:30:00", false)

	assert.Equal(t, "2023-10-29T00:30:00", earlier)
	assert.Equal(t, "2023-10-29T01:30:00", later)
	assert.Less(t, earlier, later, "the daylight reading precedes the standard one")
}

// The same ambiguity west of UTC: Los Angeles 2024-11-03 01:30.
func TestAdjustFallBackOverlapLosAngeles(t *testing.T) {
	earlier := adjustLA(t, "2024-11-03T01:30:00", true)
	later := adjustLA(t, "2024-11-03T01:30:00", false)

	assert.Equal(t, "2024-11-03T08:30:00", earlier, "PDT reading")
	assert.Equal(t, "2024-11-03T09:30:00", later, "PST reading")
	assert.Less(t, earlier, later)
}

// Local times shortly after a fall-back that are NOT inside the repeated
// hour must convert identically under both policies.
func TestAdjustUnambiguousJustAfterFallBack(t *testing.T) {
	// Los Angeles 02:30 on 2024-11-03: the repeated hour was 01:00-02:00,
	// so this reading is plain PST.
	assert.Equal(t, "2024-11-03T10:30:00", adjustLA(t, "2024-11-03T02:30:00", true))
	assert.Equal(t, "2024-11-03T10:30:00", adjustLA(t, "2024-11-03T02:30:00", false))

	// London 02:30 on 2023-10-29: plain GMT.
	assert.Equal(t, "2023-10-29T02:30:00", adjustLondon(t, "2023-10-29T02:30:00", true))
	assert.Equal(t, "2023-10-29T02:30:00", adjustLondon(t, "2023-10-29T02:30:00", false))

	// And just before the repeated hour: plain daylight time either way.
	assert.Equal(t, "2024-11-03T07:30:00", adjustLA(t, "2024-11-03T00:30:00", true))
	assert.Equal(t, "2024-11-03T07:30:00", adjustLA(t, "2024-11-03T00:30:00", false))
}

// Los Angeles 2024-03-10 02:30 never happened; the reconciler lands after
// the jump.
func TestAdjustSpringForwardGap(t *testing.T) {
	got := adjustLA(t, "2024-03-10T02:30:00", true)
	assert.Equal(t, "2024-03-10T10:30:00", got)

	// The result must not precede the transition instant.
	gotTs := timeutil.IsoStringToUnixtime(got)
	assert.GreaterOrEqual(t, gotTs, laPDT2024)
}

// End-to-end consistency: re-resolving the adjusted UTC string reports the
// offset the caller asked for.
func TestAdjustThenResolveReportsChosenOffset(t *testing.T) {
	r := testResolver()
	ctx := context.Background()

	cases := []struct {
		dateStr    string
		enforceDst bool
		wantUtc    string
		wantOffset int
	}{
		{"2023-10-29T01:30:00", false, "2023-10-29T01:30:00", 0},
		{"2023-10-29T01:30:00", true, "2023-10-29T00:30:00", 3600},
	}
	for _, tc := range cases {
		adjusted := adjustLondon(t, tc.dateStr, tc.enforceDst)
		require.Equal(t, tc.wantUtc, adjusted)

		ov := &OffsetOverride{}
		tz := r.Resolve(ctx, "Europe/London", adjusted, nil, tc.enforceDst, ov)
		require.NotNil(t, tz)
		assert.Equal(t, tc.wantOffset, tz.GmtOffset)
		assert.Equal(t, tc.wantUtc, tz.Utc)
	}
}

func TestAdjustPassesThroughWhenZoneUnknown(t *testing.T) {
	zoneAt := func(context.Context, string) *domain.TimeZone { return nil }
	got := AdjustedDateStr(context.Background(), zoneAt, "2023-06-15T13:00:00", true)
	assert.Equal(t, "2023-06-15T13:00:00", got)
}
