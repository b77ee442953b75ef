package geonames

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/megatih/GeoTimeZone/internal/domain"
)

// SearchOptions are the knobs exposed by searchJSON that the name→geo
// orchestrator uses.
type SearchOptions struct {
	// Query is the free-text place name, possibly with a region appended.
	Query string

	// Country restricts matches to an ISO country code when non-empty.
	Country string

	// Fuzzy is the provider-side fuzziness in its native 0..1 scale.
	Fuzzy float64

	// AllClasses widens the feature classes from populated places only
	// to places and administrative records.
	AllClasses bool

	// IsNameRequired asks the provider to match the name fields rather
	// than any searchable attribute.
	IsNameRequired bool

	// NameStartsWith is the short-query prefix hint.
	NameStartsWith string

	// MaxRows caps the result count.
	MaxRows int
}

// Search performs a free-text place search via searchJSON and returns the
// rows ranked by weighted population: populated places count eight times
// their population, so a town outranks an enclosing region unless the
// region's population is more than eight times the town's.
func (c *Client) Search(ctx context.Context, opts SearchOptions) []domain.GeoNameRow {
	params := url.Values{}
	params.Set("q", opts.Query)
	params.Set("featureClass", "P")
	if opts.AllClasses {
		params.Add("featureClass", "A")
	}
	params.Set("orderby", "population")
	if opts.Fuzzy > 0 && opts.Fuzzy <= 1 {
		params.Set("fuzzy", strconv.FormatFloat(opts.Fuzzy, 'f', 2, 64))
	}
	if opts.Country != "" {
		params.Set("country", strings.ToUpper(opts.Country))
	}
	if opts.IsNameRequired {
		params.Set("isNameRequired", "true")
	}
	if opts.NameStartsWith != "" {
		params.Set("name_startsWith", opts.NameStartsWith)
	}
	maxRows := opts.MaxRows
	if maxRows < 1 {
		maxRows = 20
	}
	params.Set("maxRows", strconv.Itoa(maxRows))

	data := c.fetch(ctx, "searchJSON", params)
	if data == nil {
		return nil
	}
	items, ok := data["geonames"].([]any)
	if !ok {
		return nil
	}
	rows := make([]domain.GeoNameRow, 0, len(items))
	for _, item := range items {
		if rowMap, ok := item.(map[string]any); ok {
			rows = append(rows, rowFromMap(rowMap))
		}
	}
	sortByWeightedPop(rows)
	return rows
}

// sortByWeightedPop orders rows by weighted population descending with a
// name tiebreak so equal populations keep a stable order.
func sortByWeightedPop(rows []domain.GeoNameRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		wi, wj := rows[i].WeightedPop(), rows[j].WeightedPop()
		if wi != wj {
			return wi > wj
		}
		return rows[i].Name < rows[j].Name
	})
}
