package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/megatih/GeoTimeZone/internal/domain"
)

// Direction selects which side of the reference instant a transition query
// looks at.
type Direction int

const (
	// AtOrBefore matches the transition in effect at the instant: the
	// nearest row with time_start <= ts.
	AtOrBefore Direction = iota

	// After matches the successor: the nearest row with time_start > ts.
	After
)

// transitionRow mirrors the time_zone table columns.
type transitionRow struct {
	ZoneName     string `db:"zone_name"`
	CountryCode  string `db:"country_code"`
	Abbreviation string `db:"abbreviation"`
	TimeStart    int64  `db:"time_start"`
	GmtOffset    int    `db:"gmt_offset"`
	Dst          bool   `db:"dst"`
}

// NearestTransition returns the single transition row for the zone nearest
// to the instant in the given direction, as an un-annotated TimeZone.
//
// Absence is not an error: both "no such zone" and "instant before the first
// transition" return nil, and a failed query degrades to nil after logging,
// so the resolver can fall through to synthesis.
func (s *Store) NearestTransition(ctx context.Context, zone string, ts int64, dir Direction) *domain.TimeZone {
	comparator, order := "<=", "DESC"
	if dir == After {
		comparator, order = ">", "ASC"
	}
	query := `SELECT zone_name, country_code, abbreviation, time_start, gmt_offset,
		IF(dst = '1', 1, 0) AS dst
		FROM time_zone
		WHERE zone_name = ? AND time_start ` + comparator + ` ?
		ORDER BY time_start ` + order + ` LIMIT 1`

	var row transitionRow
	err := s.db.GetContext(ctx, &row, query, zone, ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.log.Warn("transition lookup failed", "zone", zone, "err", err)
		return nil
	}
	tz := domain.NewTimeZone(row.ZoneName, row.CountryCode, row.Abbreviation,
		row.TimeStart, row.GmtOffset, row.Dst)
	return &tz
}
