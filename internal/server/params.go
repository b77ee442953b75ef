package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/megatih/GeoTimeZone/internal/domain"
	"github.com/megatih/GeoTimeZone/internal/timeutil"
)

// Datetime parameter bounds: a Julian day below two million or a Unix value
// outside (-5e9, 4e9] is assumed to be some other number and ignored.
const (
	minValidJulianDay = 2_000_000.0
	maxUnixTs         = 4_000_000_000
	minUnixTs         = -5_000_000_000
)

// InputOptions is the normalised query-string parameter set shared by all
// endpoints.
type InputOptions struct {
	Dt    string // reference datetime, UTC
	Dtl   string // reference datetime, local to the queried location
	Jd    float64
	Un    int64
	Zn    string
	Loc   string
	Place string
	Cc    string
	Reg   string
	Mode  string

	// EnforceDst selects the earlier UTC reading of an ambiguous local
	// time (the daylight interpretation). Defaults to true.
	EnforceDst bool

	Fuzzy    int
	Max      int
	Included bool
}

// parseInput reads the supported query parameters, applying defaults.
func parseInput(q url.Values) InputOptions {
	opts := InputOptions{
		Dt:         q.Get("dt"),
		Dtl:        q.Get("dtl"),
		Zn:         q.Get("zn"),
		Loc:        q.Get("loc"),
		Place:      q.Get("place"),
		Cc:         q.Get("cc"),
		Reg:        q.Get("reg"),
		Mode:       q.Get("mode"),
		EnforceDst: q.Get("dst") != "0",
		Included:   q.Get("included") != "0",
		Un:         minUnixTs,
	}
	if jd, err := strconv.ParseFloat(q.Get("jd"), 64); err == nil {
		opts.Jd = jd
	}
	if un, err := strconv.ParseInt(q.Get("un"), 10, 64); err == nil {
		opts.Un = un
	}
	if fuzzy, err := strconv.Atoi(q.Get("fuzzy")); err == nil && fuzzy > 0 {
		opts.Fuzzy = fuzzy
	}
	if max, err := strconv.Atoi(q.Get("max")); err == nil && max > 0 {
		opts.Max = max
	}
	return opts
}

// isValidDateString applies the fuzzy-parse gate: a plausible datetime has
// a dash, more than six characters and at least six digits. Anything less
// falls through to the next datetime parameter.
func isValidDateString(dt string) bool {
	if !strings.Contains(dt, "-") || len(dt) <= 6 {
		return false
	}
	digits := 0
	for _, c := range dt {
		if c >= '0' && c <= '9' {
			digits++
		}
	}
	return digits >= 6
}

// matchDatetimeFromParams picks the reference datetime with the documented
// precedence dt > dtl > jd > un > now, returning the canonical UTC string
// and whether the caller declared it to be local time at the location.
func matchDatetimeFromParams(opts InputOptions) (string, bool) {
	dtStr := opts.Dt
	hasDt := isValidDateString(dtStr)
	local := false
	if !hasDt {
		dtStr = opts.Dtl
		hasDt = isValidDateString(dtStr)
		local = hasDt
	}
	if !hasDt {
		switch {
		case opts.Jd > minValidJulianDay:
			dtStr = timeutil.JulianDayToIsoDatetime(opts.Jd)
		case opts.Un > minUnixTs && opts.Un <= maxUnixTs:
			dtStr = timeutil.UnixtimeToUTC(opts.Un)
		default:
			dtStr = timeutil.CurrentDatetimeString()
		}
	}
	return timeutil.IsoStringToDatetime(dtStr).Format(timeutil.ISOFormat), local
}

// matchCoordsFromParams parses loc=lat,lng. Nil means the parameter was
// absent or carried no comma at all; malformed numerics inside a present
// parameter fall back to the (0,0) sentinel.
func matchCoordsFromParams(opts InputOptions) *domain.Coords {
	if !strings.Contains(opts.Loc, ",") {
		return nil
	}
	coords := domain.LocStringToCoords(opts.Loc)
	return &coords
}

// isValidZoneName gates the zn parameter: long enough to be Region/City
// and with an interior slash.
func isValidZoneName(zn string) bool {
	return len(zn) > 4 && strings.Contains(zn, "/") &&
		!strings.HasPrefix(zn, "/") && !strings.HasSuffix(zn, "/")
}
