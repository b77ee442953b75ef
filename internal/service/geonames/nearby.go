package geonames

import (
	"context"
	"fmt"
	"math"
	"net/url"

	"github.com/megatih/GeoTimeZone/internal/domain"
	"github.com/megatih/GeoTimeZone/internal/service/tzdata"
)

// TimeZoneInfo is the distilled timezoneJSON response: the country code and
// zone identifier for a coordinate. Synthesised is set when the provider
// had no zone identifier and the name was fabricated from the ocean basin
// and the provider's raw offset.
type TimeZoneInfo struct {
	Cc          string
	Tz          string
	GmtOffset   float64
	Synthesised bool
}

// rowFromMap converts one geonames result object into a GeoNameRow.
func rowFromMap(row map[string]any) domain.GeoNameRow {
	return domain.GeoNameRow{
		Lat:         extractF64(row, "lat"),
		Lng:         extractF64(row, "lng"),
		Name:        extractString(row, "name"),
		Toponym:     extractString(row, "toponymName"),
		Fcode:       extractString(row, "fcode"),
		Pop:         extractI64(row, "population"),
		CountryCode: extractString(row, "countryCode"),
		AdminName:   extractString(row, "adminName1"),
	}
}

// FetchTimezone resolves a coordinate to a zone identifier via
// timezoneJSON. When the response carries no timezoneId (open ocean), a
// basin-based name is synthesised from the classifier and the provider's
// gmtOffset field so the caller still gets a usable label.
func (c *Client) FetchTimezone(ctx context.Context, lat, lng float64) *TimeZoneInfo {
	data := c.fetchAt(ctx, "timezoneJSON", lat, lng)
	if data == nil {
		return nil
	}
	info := &TimeZoneInfo{
		Cc:        extractString(data, "countryCode"),
		Tz:        extractString(data, "timezoneId"),
		GmtOffset: extractF64(data, "gmtOffset"),
	}
	if info.Tz == "" {
		hours := int(math.Round(info.GmtOffset))
		letter := "E"
		if hours < 0 {
			letter = "W"
			hours = -hours
		}
		info.Tz = fmt.Sprintf("%s/%02d%s", tzdata.OceanBasin(lat, lng), hours, letter)
		info.Synthesised = true
	}
	return info
}

// FetchExtendedNearby returns the placename hierarchy for a coordinate via
// extendedFindNearbyJSON.
//
// AREA rows are dropped, and CONT rows too once the hierarchy has three or
// more entries. Over open water the endpoint answers with an ocean object
// instead of a hierarchy; in that case the nearest populated place chain is
// tried, and when that still yields fewer than two rows a single OCEAN row
// carrying the ocean name is synthesised.
func (c *Client) FetchExtendedNearby(ctx context.Context, lat, lng float64) []domain.GeoNameRow {
	data := c.fetchAt(ctx, "extendedFindNearbyJSON", lat, lng)
	if data == nil {
		return nil
	}

	if items, ok := data["geonames"].([]any); ok {
		rows := make([]domain.GeoNameRow, 0, len(items))
		for _, item := range items {
			rowMap, ok := item.(map[string]any)
			if !ok {
				continue
			}
			row := rowFromMap(rowMap)
			if row.Fcode == string(domain.FcodeArea) {
				continue
			}
			if row.Fcode == string(domain.FcodeContinent) && len(items) >= 3 {
				continue
			}
			rows = append(rows, row)
		}
		return rows
	}

	if oceanMap, ok := data["ocean"].(map[string]any); ok {
		oceanName := extractString(oceanMap, "name")
		rows := c.FetchNearbyPlace(ctx, lat, lng)
		if len(rows) < 2 {
			rows = []domain.GeoNameRow{domain.NewOceanRow(oceanName, lat, lng)}
		}
		return rows
	}
	return nil
}

// FetchNearbyPlace finds the nearest populated place within the configured
// radius via findNearbyJSON and expands it into a [country, region, place]
// chain. An empty slice means nothing lay within the radius.
func (c *Client) FetchNearbyPlace(ctx context.Context, lat, lng float64) []domain.GeoNameRow {
	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lng", formatCoord(lng))
	params.Set("featureClass", "P")
	params.Set("radius", fmt.Sprintf("%.0f", c.radiusKm))
	data := c.fetch(ctx, "findNearbyJSON", params)
	if data == nil {
		return nil
	}
	items, ok := data["geonames"].([]any)
	if !ok || len(items) == 0 {
		return nil
	}
	first, ok := items[0].(map[string]any)
	if !ok {
		return nil
	}
	place := rowFromMap(first)
	if dist := extractF64(first, "distance"); dist > c.radiusKm {
		return nil
	}

	rows := make([]domain.GeoNameRow, 0, 3)
	if countryName := extractString(first, "countryName"); countryName != "" {
		rows = append(rows, domain.GeoNameRow{
			Lat:         place.Lat,
			Lng:         place.Lng,
			Name:        countryName,
			Toponym:     countryName,
			Fcode:       string(domain.FcodeCountry),
			CountryCode: place.CountryCode,
		})
	}
	if place.AdminName != "" {
		rows = append(rows, domain.GeoNameRow{
			Lat:         place.Lat,
			Lng:         place.Lng,
			Name:        place.AdminName,
			Toponym:     place.AdminName,
			Fcode:       string(domain.FcodeAdmin1),
			CountryCode: place.CountryCode,
		})
	}
	rows = append(rows, place)
	return rows
}
