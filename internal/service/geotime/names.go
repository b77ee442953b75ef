package geotime

import (
	"context"
	"sort"
	"strings"

	"github.com/megatih/GeoTimeZone/internal/domain"
	"github.com/megatih/GeoTimeZone/internal/service/geonames"
)

// preferRemoteFuzzy is the caller fuzziness value at which the local city
// table is skipped entirely.
const preferRemoteFuzzy = 150

// SearchByFuzzyNames performs a remote fuzzy place search. A region is
// space-joined onto the query; short queries get a prefix hint so the
// provider's fuzzy matcher does not wander.
func (s *Service) SearchByFuzzyNames(ctx context.Context, q, cc, region string, fuzzy int, allClasses, included bool, max int) []domain.GeoNameRow {
	query := strings.TrimSpace(q)
	if region != "" {
		query = query + " " + strings.TrimSpace(region)
	}
	opts := geonames.SearchOptions{
		Query:          query,
		Country:        CorrectedCountryCode(cc),
		Fuzzy:          apiFuzzy(fuzzy),
		AllClasses:     allClasses,
		IsNameRequired: included,
		MaxRows:        max,
	}
	if len(q) < 4 && len(q) > 0 {
		prefixLen := 2
		if len(q) < 2 {
			prefixLen = 1
		}
		opts.NameStartsWith = q[:prefixLen]
	}
	return s.geo.Search(ctx, opts)
}

// apiFuzzy converts the request-side fuzziness hint (0..150, where values
// of 150 and above mean "prefer remote") to the provider's 0..1 scale.
func apiFuzzy(fuzzy int) float64 {
	if fuzzy <= 0 {
		return 0
	}
	if fuzzy >= 100 {
		return 1
	}
	return float64(fuzzy) / 100
}

// ListByFuzzyLocalities is the /lookup entry point: a place-name query to
// ranked locations, served from the local city table when it answers well
// enough and from the remote search otherwise.
//
// Historical and localised variants are folded to their canonical names
// first, so "Madras" surfaces Chennai whenever the store knows it.
func (s *Service) ListByFuzzyLocalities(ctx context.Context, q, cc, region string, fuzzy, max int) []domain.GeoNameSimple {
	if max < 1 {
		max = 20
	}
	query := CanonicalName(strings.TrimSpace(q))
	country := CorrectedCountryCode(cc)

	var local []domain.Locality
	if fuzzy < preferRemoteFuzzy {
		local = rankLocalities(s.store.LocalitiesByName(ctx, query, country, max*2), query)
		if len(local) >= localHitThreshold(query, local) {
			return simpleFromLocalities(local, max)
		}
	}

	remote := s.SearchByFuzzyNames(ctx, query, country, region, fuzzy, false, true, max)
	return mergeSimple(local, remote, max)
}

// Localities is the /localities entry point: the local city table alone,
// ranked.
func (s *Service) Localities(ctx context.Context, q, cc string, max int) []domain.Locality {
	if max < 1 {
		max = 20
	}
	query := CanonicalName(strings.TrimSpace(q))
	ranked := rankLocalities(s.store.LocalitiesByName(ctx, query, CorrectedCountryCode(cc), max*2), query)
	if len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}

// localHitThreshold decides how many local hits are enough to skip the
// remote search. Longer queries are more specific, so fewer hits satisfy
// them, and a first hit whose name barely exceeds the query length is
// treated as the intended match.
func localHitThreshold(q string, local []domain.Locality) int {
	threshold := 5
	switch {
	case len(q) > 7:
		threshold = 2
	case len(q) > 4:
		threshold = 3
	}
	if len(local) > 0 && len(local[0].Name) <= len(q)+1 {
		threshold = 1
	}
	return threshold
}

// localityWeight scores a city row against a lowercased, folded search
// string. Population carries the weight, scaled by where and how cleanly
// the match sits in the name.
func localityWeight(loc domain.Locality, search string) float64 {
	posAscii := foldedIndex(loc.AsciiName, search)
	posName := foldedIndex(loc.Name, search)
	pos := posAscii
	if pos < 0 || (posName >= 0 && posName < pos) {
		pos = posName
	}
	if pos < 0 || pos >= 20 {
		return 0
	}

	// Rank against whichever name matched; when neither matched near the
	// front, the display name wins.
	refName := loc.Name
	if posAscii >= 0 && posAscii <= 12 && (posName < 0 || posAscii <= posName) {
		refName = loc.AsciiName
	}

	startIdx := wordStartIndex(refName, search)
	if startIdx < 0 || startIdx >= 10 {
		startIdx = 10
	}
	mainIdx := longestWordIndex(refName)

	exactMatch := 2.0
	if FoldName(refName) == FoldName(search) {
		if len(search) > 3 {
			exactMatch = 4
		} else {
			exactMatch = 3
		}
	}
	startW := 1.0
	if startIdx == mainIdx {
		startW = 2
	}
	posW := float64(20 - pos)

	return float64((loc.Population+5000)/800) * posW * startW * exactMatch
}

// rankLocalities orders rows by weight descending with a total tiebreak
// (population descending, then ascii name ascending) so equal weights
// never reorder between runs. Zero-weight rows are dropped.
func rankLocalities(rows []domain.Locality, search string) []domain.Locality {
	type weighted struct {
		loc    domain.Locality
		weight float64
	}
	ranked := make([]weighted, 0, len(rows))
	for _, row := range rows {
		if w := localityWeight(row, search); w > 0 {
			ranked = append(ranked, weighted{loc: row, weight: w})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].weight != ranked[j].weight {
			return ranked[i].weight > ranked[j].weight
		}
		if ranked[i].loc.Population != ranked[j].loc.Population {
			return ranked[i].loc.Population > ranked[j].loc.Population
		}
		return ranked[i].loc.AsciiName < ranked[j].loc.AsciiName
	})
	out := make([]domain.Locality, len(ranked))
	for i, r := range ranked {
		out[i] = r.loc
	}
	return out
}

func simpleFromLocalities(rows []domain.Locality, max int) []domain.GeoNameSimple {
	out := make([]domain.GeoNameSimple, 0, len(rows))
	for _, row := range rows {
		if len(out) >= max {
			break
		}
		out = append(out, domain.GeoNameSimple{
			Lat:  row.Lat,
			Lng:  row.Lng,
			Name: row.Name,
			Cc:   row.Cc,
			Pop:  row.Population,
		})
	}
	return out
}

// mergeSimple unions ranked local rows with remote rows, local first,
// deduplicating on folded name plus country.
func mergeSimple(local []domain.Locality, remote []domain.GeoNameRow, max int) []domain.GeoNameSimple {
	seen := make(map[string]bool, len(local)+len(remote))
	out := make([]domain.GeoNameSimple, 0, max)
	add := func(row domain.GeoNameSimple) {
		key := FoldName(row.Name) + "|" + strings.ToUpper(row.Cc)
		if seen[key] || len(out) >= max {
			return
		}
		seen[key] = true
		out = append(out, row)
	}
	for _, row := range local {
		add(domain.GeoNameSimple{Lat: row.Lat, Lng: row.Lng, Name: row.Name, Cc: row.Cc, Pop: row.Population})
	}
	for _, row := range remote {
		add(domain.GeoNameSimple{Lat: row.Lat, Lng: row.Lng, Name: row.Name, Cc: row.CountryCode, Pop: row.Pop})
	}
	return out
}
