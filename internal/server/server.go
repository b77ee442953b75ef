// Package server is the HTTP shell: routing, parameter normalisation and
// JSON serialisation around the orchestrators.
//
// Every endpoint is a GET returning JSON with status 200; failures degrade
// to {"valid":false, ...} bodies rather than HTTP errors, including the
// catch-all for unknown routes. Each handler that resolves a time zone
// starts with a fresh OffsetOverride so a DST correction recorded while serving one request
// can never leak into another.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/megatih/GeoTimeZone/internal/config"
	"github.com/megatih/GeoTimeZone/internal/domain"
	"github.com/megatih/GeoTimeZone/internal/service/geotime"
	"github.com/megatih/GeoTimeZone/internal/service/tzdata"
)

// Server wires the HTTP routes to the orchestrators.
type Server struct {
	svc      *geotime.Service
	resolver *tzdata.Resolver
	log      *log.Logger
	port     int
}

// New builds the server.
func New(cfg *config.Config, svc *geotime.Service, resolver *tzdata.Resolver) *Server {
	return &Server{
		svc:      svc,
		resolver: resolver,
		log:      cfg.Logger,
		port:     cfg.WebPort,
	}
}

// Router assembles the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Get("/", s.handleWelcome)
	r.Get("/geotime", s.handleGeoTime)
	r.Get("/geotz", s.handleGeoTz)
	r.Get("/timezone", s.handleTimezone)
	r.Get("/nearby", s.handleNearby)
	r.Get("/search", s.handleSearch)
	r.Get("/lookup", s.handleLookup)
	r.Get("/localities", s.handleLocalities)
	r.NotFound(s.handleNotFound)
	return r
}

// ListenAndServe binds the configured port and serves until the listener
// fails. Failure to bind is the service's only fatal runtime error.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("request", "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) handleWelcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"message": "Welcome to GeoTImeZone"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{"valid": false, "error": "route not found"})
}

// requestCoords resolves the queried coordinate: an explicit loc wins, then
// a place lookup, then the (0,0) sentinel.
func (s *Server) requestCoords(ctx context.Context, opts InputOptions) domain.Coords {
	if coords := matchCoordsFromParams(opts); coords != nil {
		return *coords
	}
	if opts.Place != "" {
		if hits := s.svc.ListByFuzzyLocalities(ctx, opts.Place, opts.Cc, opts.Reg, opts.Fuzzy, 1); len(hits) > 0 {
			return domain.NewCoords(hits[0].Lat, hits[0].Lng)
		}
	}
	return domain.ZeroCoords()
}

// referenceDatetime normalises the datetime parameters, reconciling a
// local wall-clock reading against the coordinate when the caller used
// dtl.
func (s *Server) referenceDatetime(ctx context.Context, opts InputOptions, coords domain.Coords, ov *tzdata.OffsetOverride) string {
	dtStr, local := matchDatetimeFromParams(opts)
	if local {
		dtStr = s.svc.AdjustedDateStr(ctx, coords.Lat, coords.Lng, dtStr, opts.EnforceDst, ov)
	}
	return dtStr
}

func (s *Server) handleGeoTime(w http.ResponseWriter, r *http.Request) {
	opts := parseInput(r.URL.Query())
	ov := &tzdata.OffsetOverride{}
	ctx := r.Context()
	coords := s.requestCoords(ctx, opts)
	dtStr := s.referenceDatetime(ctx, opts, coords, ov)
	writeJSON(w, s.svc.GeoTimeInfo(ctx, coords.Lat, coords.Lng, dtStr, opts.EnforceDst, ov))
}

func (s *Server) handleGeoTz(w http.ResponseWriter, r *http.Request) {
	opts := parseInput(r.URL.Query())
	ov := &tzdata.OffsetOverride{}
	ctx := r.Context()
	coords := s.requestCoords(ctx, opts)
	dtStr := s.referenceDatetime(ctx, opts, coords, ov)
	writeJSON(w, s.svc.GeoTzInfo(ctx, coords.Lat, coords.Lng, dtStr, opts.EnforceDst, ov))
}

func (s *Server) handleTimezone(w http.ResponseWriter, r *http.Request) {
	opts := parseInput(r.URL.Query())
	ov := &tzdata.OffsetOverride{}
	ctx := r.Context()

	var tz *domain.TimeZone
	switch {
	case isValidZoneName(opts.Zn):
		dtStr, local := matchDatetimeFromParams(opts)
		if local {
			zoneAt := func(ctx context.Context, ref string) *domain.TimeZone {
				return s.resolver.Resolve(ctx, opts.Zn, ref, nil, opts.EnforceDst, ov)
			}
			dtStr = tzdata.AdjustedDateStr(ctx, zoneAt, dtStr, opts.EnforceDst)
		}
		tz = s.resolver.Resolve(ctx, opts.Zn, dtStr, nil, opts.EnforceDst, ov)
	case matchCoordsFromParams(opts) != nil || opts.Place != "":
		coords := s.requestCoords(ctx, opts)
		dtStr := s.referenceDatetime(ctx, opts, coords, ov)
		tz = s.svc.TimeInfoFromCoords(ctx, coords.Lat, coords.Lng, dtStr, opts.EnforceDst, ov)
	}

	if tz == nil {
		writeJSON(w, map[string]any{
			"valid":   false,
			"message": "Cannot identify a time zone from the query parameters",
		})
		return
	}
	writeJSON(w, tz)
}

func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	opts := parseInput(r.URL.Query())
	coords := domain.ZeroCoords()
	if c := matchCoordsFromParams(opts); c != nil {
		coords = *c
	}
	// For /nearby the fuzzy parameter is a search tolerance in degrees, so
	// fractional values are meaningful.
	tolerance, _ := strconv.ParseFloat(r.URL.Query().Get("fuzzy"), 64)
	nb := s.svc.Nearby(r.Context(), coords.Lat, coords.Lng, tolerance)
	if nb == nil {
		writeJSON(w, map[string]any{"valid": false, "message": "No nearby place found"})
		return
	}
	writeJSON(w, nb)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	opts := parseInput(r.URL.Query())
	rows := s.svc.SearchByFuzzyNames(r.Context(), opts.Place, opts.Cc, opts.Reg,
		opts.Fuzzy, opts.Mode == "all", opts.Included, opts.Max)
	message := "ok"
	if len(rows) == 0 {
		message = "no matches"
	}
	writeJSON(w, map[string]any{
		"count":   len(rows),
		"message": message,
		"results": rows,
	})
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	opts := parseInput(r.URL.Query())
	rows := s.svc.ListByFuzzyLocalities(r.Context(), opts.Place, opts.Cc, opts.Reg, opts.Fuzzy, opts.Max)
	writeJSON(w, rows)
}

func (s *Server) handleLocalities(w http.ResponseWriter, r *http.Request) {
	opts := parseInput(r.URL.Query())
	writeJSON(w, s.svc.Localities(r.Context(), opts.Place, opts.Cc, opts.Max))
}
