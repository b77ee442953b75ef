package geotime

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// alternativeNames maps historical and localised name variants to the
// canonical names the datasets carry. The remote provider usually matches
// such variants in its search but omits them from result rows, so a query
// for "Madras" would otherwise never surface Chennai. Keys are stored
// folded and lowercased. Should this set grow beyond a few hundred
// entries it belongs in the database instead.
var alternativeNames = map[string]string{
	"madras":      "Chennai",
	"bombay":      "Mumbai",
	"brussel":     "Brussels",
	"bruxelles":   "Brussels",
	"calcutta":    "Kolkata",
	"lakhnau":     "Lucknow",
	"helsingfors": "Helsinki",
	"venezia":     "Venice",
	"peking":      "Beijing",
	"munchen":     "Munich",
	"muenchen":    "Munich",
}

// correctedCountryCodes rewrites ISO codes that drift between the local
// and remote datasets, mostly legacy codes still common in user input.
var correctedCountryCodes = map[string]string{
	"UK": "GB",
	"EL": "GR",
	"BU": "MM",
	"TP": "TL",
	"ZR": "CD",
}

// CanonicalName resolves a historical or localised variant to the
// canonical place name, or returns the input unchanged.
func CanonicalName(name string) string {
	if canonical, ok := alternativeNames[FoldName(name)]; ok {
		return canonical
	}
	return name
}

// CorrectedCountryCode normalises a country code, rewriting known drifted
// codes to their current ISO form.
func CorrectedCountryCode(cc string) string {
	upper := strings.ToUpper(strings.TrimSpace(cc))
	if corrected, ok := correctedCountryCodes[upper]; ok {
		return corrected
	}
	return upper
}

// foldTransformer strips combining marks after canonical decomposition, so
// "München" folds to "Munchen".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldName lowercases a name and strips diacritics for comparison.
func FoldName(name string) string {
	folded, _, err := transform.String(foldTransformer, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// foldedIndex returns the byte index of the folded needle inside the
// folded haystack, or -1.
func foldedIndex(haystack, needle string) int {
	return strings.Index(FoldName(haystack), FoldName(needle))
}

// wordStartIndex returns the index of the first word in the name that
// starts with the search string after folding, or -1 when none does.
func wordStartIndex(name, search string) int {
	folded := FoldName(search)
	for i, word := range strings.Fields(FoldName(name)) {
		if strings.HasPrefix(word, folded) {
			return i
		}
	}
	return -1
}

// longestWordIndex returns the index of the longest word in a name.
func longestWordIndex(name string) int {
	longest, idx := 0, 0
	for i, word := range strings.Fields(name) {
		if len(word) > longest {
			longest = len(word)
			idx = i
		}
	}
	return idx
}
