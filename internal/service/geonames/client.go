// Package geonames provides the client for the Geonames-compatible
// geocoding API.
//
// Four endpoints are used: timezoneJSON (coordinates to zone identifier),
// extendedFindNearbyJSON (coordinates to a placename hierarchy),
// findNearbyJSON (nearest populated place within a radius) and searchJSON
// (free-text place search). All requests are GET and all responses are
// cached on disk keyed by URL, with freshness controlled by the upstream
// response headers.
//
// The client follows the service's best-effort doctrine: network failures
// and unparseable payloads are logged and surfaced as nil/empty results so
// the orchestrators can fall through to synthesis.
//
// # Response decoding
//
// Geonames payloads are loosely typed: numeric fields arrive as strings or
// numbers depending on the endpoint. Responses are therefore decoded into
// generic maps and read through the extract helpers in extract.go rather
// than through rigid struct tags.
package geonames

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"

	"github.com/megatih/GeoTimeZone/internal/config"
)

// Client calls the Geonames-compatible API through a shared disk-backed
// HTTP cache. Safe for concurrent use.
type Client struct {
	http     *http.Client
	base     string
	username string

	// radiusKm bounds findNearbyJSON lookups.
	radiusKm float64

	log *log.Logger
}

// New builds a Client from the application configuration. The HTTP
// transport caches responses under cfg.CacheDir; cache hits never touch
// the network.
func New(cfg *config.Config) *Client {
	transport := httpcache.NewTransport(diskcache.New(cfg.CacheDir))
	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   config.DefaultHTTPTimeout,
		},
		base:     config.GeonamesAPIBase,
		username: cfg.GeonamesUser,
		radiusKm: cfg.MaxNearbyRadius,
		log:      cfg.Logger,
	}
}

// fetch performs a GET against an API method with the given parameters
// (plus the account username) and decodes the JSON body into a generic
// map. Failures return nil.
func (c *Client) fetch(ctx context.Context, method string, params url.Values) map[string]any {
	params.Set("username", c.username)
	reqURL := c.base + "/" + method + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("geonames request failed", "method", method, "err", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("geonames returned non-200", "method", method, "status", resp.StatusCode)
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("geonames read failed", "method", method, "err", err)
		return nil
	}
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		c.log.Warn("geonames payload unparseable", "method", method, "err", err)
		return nil
	}
	return data
}

// fetchAt performs a coordinate-keyed GET.
func (c *Client) fetchAt(ctx context.Context, method string, lat, lng float64) map[string]any {
	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lng", formatCoord(lng))
	return c.fetch(ctx, method, params)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
