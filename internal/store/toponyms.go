package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/megatih/GeoTimeZone/internal/domain"
)

// toponymRow mirrors the toponyms table joined against country names.
type toponymRow struct {
	Name        string          `db:"name"`
	Lat         float64         `db:"lat"`
	Lng         float64         `db:"lng"`
	Cc          string          `db:"cc"`
	Region      sql.NullString  `db:"region"`
	AdminName   sql.NullString  `db:"admin_name"`
	ZoneName    sql.NullString  `db:"zone_name"`
	Fcode       string          `db:"fcode"`
	Population  int64           `db:"population"`
	Distance    float64         `db:"distance"`
	CountryName sql.NullString  `db:"country_name"`
}

// Proximity returns the nearest toponym to a point within a bounding box of
// the given tolerance in degrees, ordered by great-circle distance.
//
// Country rows, large administrative divisions and airfields are excluded:
// they say nothing useful about the locality a point belongs to. A miss or
// a query failure returns nil.
func (s *Store) Proximity(ctx context.Context, lat, lng, toleranceDeg float64) *domain.GeoNameNearby {
	excluded := "'" + strings.Join(domain.ProximityExcludedCodes(), "','") + "'"
	query := `SELECT t.name, t.lat, t.lng, t.cc, t.region, t.admin_name, t.zone_name,
		t.fcode, t.population,
		(6371 * ACOS(
			COS(RADIANS(?)) * COS(RADIANS(t.lat)) * COS(RADIANS(t.lng) - RADIANS(?))
			+ SIN(RADIANS(?)) * SIN(RADIANS(t.lat))
		)) AS distance,
		c.country_name
		FROM toponyms t
		LEFT JOIN country c ON c.country_code = t.cc
		WHERE t.lat BETWEEN ? AND ? AND t.lng BETWEEN ? AND ?
		AND t.fcode NOT IN (` + excluded + `)
		ORDER BY distance ASC LIMIT 1`

	var row toponymRow
	err := s.db.GetContext(ctx, &row, query,
		lat, lng, lat,
		lat-toleranceDeg, lat+toleranceDeg,
		lng-toleranceDeg, lng+toleranceDeg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.log.Warn("toponym proximity lookup failed", "lat", lat, "lng", lng, "err", err)
		return nil
	}
	return &domain.GeoNameNearby{
		GeoNameRow: domain.GeoNameRow{
			Lat:         row.Lat,
			Lng:         row.Lng,
			Name:        row.Name,
			Toponym:     row.Name,
			Fcode:       row.Fcode,
			Pop:         row.Population,
			CountryCode: row.Cc,
			AdminName:   row.AdminName.String,
		},
		Distance:    row.Distance,
		Region:      row.Region.String,
		CountryName: row.CountryName.String,
		ZoneName:    row.ZoneName.String,
	}
}

// LocalitiesByName matches city rows whose name or ascii_name contains the
// search text on a word boundary, optionally filtered by country code.
//
// The ordering is total to keep results deterministic: population
// descending, then ascii_name ascending. Failures degrade to an empty
// slice.
func (s *Store) LocalitiesByName(ctx context.Context, text, cc string, limit int) []domain.Locality {
	if limit < 1 {
		limit = 20
	}
	pattern := `\b` + regexp.QuoteMeta(strings.ToLower(strings.TrimSpace(text)))
	query := `SELECT name, ascii_name, admin_name, lat, lng, cc, population, zone_name
		FROM cities
		WHERE (LOWER(name) REGEXP ? OR LOWER(ascii_name) REGEXP ?)`
	args := []any{pattern, pattern}
	if cc != "" {
		query += ` AND cc = ?`
		args = append(args, strings.ToUpper(cc))
	}
	query += ` ORDER BY population DESC, ascii_name ASC LIMIT ?`
	args = append(args, limit)

	var rows []struct {
		Name       string         `db:"name"`
		AsciiName  string         `db:"ascii_name"`
		AdminName  sql.NullString `db:"admin_name"`
		Lat        float64        `db:"lat"`
		Lng        float64        `db:"lng"`
		Cc         string         `db:"cc"`
		Population int64          `db:"population"`
		ZoneName   sql.NullString `db:"zone_name"`
	}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		s.log.Warn("locality search failed", "text", text, "err", err)
		return nil
	}
	localities := make([]domain.Locality, 0, len(rows))
	for _, r := range rows {
		localities = append(localities, domain.Locality{
			Name:       r.Name,
			AsciiName:  r.AsciiName,
			AdminName:  r.AdminName.String,
			Lat:        r.Lat,
			Lng:        r.Lng,
			Cc:         r.Cc,
			Population: r.Population,
			ZoneName:   r.ZoneName.String,
		})
	}
	return localities
}
