package domain

import "strings"

// FeatureCode is a Geonames feature code: a short string classifying a
// geographic record. The codes form a stable external vocabulary shared by
// the remote API and the local toponym table.
type FeatureCode string

// Feature codes the service inspects by name.
const (
	FcodeCountry   FeatureCode = "PCLI"  // independent political entity
	FcodeAdmin1    FeatureCode = "ADM1"  // first-order administrative division
	FcodeAdmin2    FeatureCode = "ADM2"  // second-order administrative division
	FcodeAnsSite   FeatureCode = "ANS"   // ancient site
	FcodeAirfield  FeatureCode = "AIRF"  // airfield
	FcodeAirport   FeatureCode = "AIRP"  // airport
	FcodeAbAirport FeatureCode = "AIRQ"  // abandoned airfield
	FcodeArea      FeatureCode = "AREA"  // area
	FcodeContinent FeatureCode = "CONT"  // continent
	FcodeOcean     FeatureCode = "OCEAN" // ocean
	FcodePlace     FeatureCode = "PPL"   // populated place
)

// IsPopulatedPlace reports whether the code denotes a populated place
// (the P class: PPL, PPLA, PPLC and variants).
func (fc FeatureCode) IsPopulatedPlace() bool {
	return strings.HasPrefix(string(fc), "P") && fc != FcodeCountry
}

// proximityExcluded lists codes skipped by the toponym proximity search:
// countries and large administrative divisions say nothing useful about the
// nearest locality, and airfields tend to shadow the towns they serve.
var proximityExcluded = map[FeatureCode]bool{
	FcodeCountry:   true,
	FcodeAdmin1:    true,
	FcodeAdmin2:    true,
	FcodeAnsSite:   true,
	FcodeAirfield:  true,
	FcodeAirport:   true,
	FcodeAbAirport: true,
}

// IsProximityExcluded reports whether the code is skipped by the toponym
// proximity search.
func (fc FeatureCode) IsProximityExcluded() bool {
	return proximityExcluded[fc]
}

// ProximityExcludedCodes returns the excluded codes in a stable order for
// use in SQL NOT IN clauses.
func ProximityExcludedCodes() []string {
	return []string{"PCLI", "ADM1", "ADM2", "ANS", "AIRF", "AIRP", "AIRQ"}
}
