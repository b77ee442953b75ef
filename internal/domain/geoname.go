package domain

// GeoNameRow is a single place record as returned by the Geonames API or
// expanded from the local toponym table: coordinates, the localised and
// official names, the classifying feature code and the population count.
type GeoNameRow struct {
	Lng         float64 `json:"lng"`
	Lat         float64 `json:"lat"`
	Name        string  `json:"name"`
	Toponym     string  `json:"toponym"`
	Fcode       string  `json:"fcode"`
	Pop         int64   `json:"pop"`
	CountryCode string  `json:"countryCode,omitempty"`
	AdminName   string  `json:"adminName,omitempty"`
}

// NewOceanRow builds the single synthetic row used when a point lies in
// open ocean and the nearby searches return nothing but the ocean name.
func NewOceanRow(name string, lat, lng float64) GeoNameRow {
	return GeoNameRow{
		Lat:     lat,
		Lng:     lng,
		Name:    name,
		Toponym: name,
		Fcode:   string(FcodeOcean),
	}
}

// WeightedPop is the ranking key for remote search results: populated
// places count eight times their population, other records once.
func (r GeoNameRow) WeightedPop() int64 {
	if FeatureCode(r.Fcode).IsPopulatedPlace() {
		return r.Pop * 8
	}
	return r.Pop
}

// GeoNameNearby is a toponym proximity hit: a GeoNameRow plus the
// great-circle distance from the query point and the administrative context
// needed to expand it into a placename chain.
type GeoNameNearby struct {
	GeoNameRow
	Distance    float64 `json:"distance"`
	Region      string  `json:"region,omitempty"`
	CountryName string  `json:"countryName,omitempty"`
	ZoneName    string  `json:"zoneName,omitempty"`
}

// ToRows expands a nearby hit into the placename chain
// [country, region, admin, place], skipping levels with no name.
func (n GeoNameNearby) ToRows() []GeoNameRow {
	rows := make([]GeoNameRow, 0, 4)
	if n.CountryName != "" {
		rows = append(rows, GeoNameRow{
			Lat:         n.Lat,
			Lng:         n.Lng,
			Name:        n.CountryName,
			Toponym:     n.CountryName,
			Fcode:       string(FcodeCountry),
			CountryCode: n.CountryCode,
		})
	}
	if n.Region != "" {
		rows = append(rows, GeoNameRow{
			Lat:         n.Lat,
			Lng:         n.Lng,
			Name:        n.Region,
			Toponym:     n.Region,
			Fcode:       string(FcodeAdmin1),
			CountryCode: n.CountryCode,
		})
	}
	if n.AdminName != "" && n.AdminName != n.Name {
		rows = append(rows, GeoNameRow{
			Lat:         n.Lat,
			Lng:         n.Lng,
			Name:        n.AdminName,
			Toponym:     n.AdminName,
			Fcode:       string(FcodeAdmin2),
			CountryCode: n.CountryCode,
		})
	}
	rows = append(rows, GeoNameRow{
		Lat:         n.Lat,
		Lng:         n.Lng,
		Name:        n.Name,
		Toponym:     n.Toponym,
		Fcode:       n.Fcode,
		Pop:         n.Pop,
		CountryCode: n.CountryCode,
		AdminName:   n.AdminName,
	})
	return rows
}

// Locality is a row from the local city table used by the name→geo
// orchestrator. The db tags match the cities schema.
type Locality struct {
	Name       string  `json:"name" db:"name"`
	AsciiName  string  `json:"asciiName" db:"ascii_name"`
	AdminName  string  `json:"adminName,omitempty" db:"admin_name"`
	Lat        float64 `json:"lat" db:"lat"`
	Lng        float64 `json:"lng" db:"lng"`
	Cc         string  `json:"cc" db:"cc"`
	Population int64   `json:"population" db:"population"`
	ZoneName   string  `json:"zoneName,omitempty" db:"zone_name"`
}

// GeoNameSimple is the compact row shape returned by the /lookup endpoint.
type GeoNameSimple struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
	Cc   string  `json:"cc,omitempty"`
	Pop  int64   `json:"pop,omitempty"`
}

// SunTimes carries the solar annotations attached to /geotime responses:
// sunrise, sunset and solar noon as local wall-clock datetime strings.
type SunTimes struct {
	Sunrise   string `json:"sunrise,omitempty"`
	Sunset    string `json:"sunset,omitempty"`
	SolarNoon string `json:"solarNoon,omitempty"`
}

// GeoTimeInfo is the /geotime response body: the placename chain for the
// queried point and, when one could be resolved or synthesised, its time
// zone with reference-instant annotations.
type GeoTimeInfo struct {
	Placenames []GeoNameRow `json:"placenames"`
	Time       *TimeZone    `json:"time,omitempty"`
	Sun        *SunTimes    `json:"sun,omitempty"`
}

// GeoTzInfo is the /geotz response body: the nearest place (when known) and
// the resolved zone, without the full placename chain.
type GeoTzInfo struct {
	Place *GeoNameNearby `json:"place,omitempty"`
	Time  *TimeZone      `json:"time,omitempty"`
}
