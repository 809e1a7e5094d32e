// Package server exposes the postal code map over HTTP.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/petakode/petakode/internal/config"
	"github.com/petakode/petakode/internal/dataset"
	"github.com/petakode/petakode/internal/geospatial"
	"github.com/petakode/petakode/internal/maprender"
)

// defaultZoomLevel is used when the zoom_level query parameter is absent.
const defaultZoomLevel = 1

// Server holds the immutable record set and renderer shared by all requests.
// Records are read-only after construction; each request aggregates into its
// own transient group set, so handlers need no coordination.
type Server struct {
	cfg      *config.Config
	records  []dataset.Record
	renderer *maprender.Renderer
}

// New creates a Server over an already-loaded record set.
func New(cfg *config.Config, records []dataset.Record) *Server {
	return &Server{
		cfg:      cfg,
		records:  records,
		renderer: maprender.New(cfg.Map),
	}
}

// Router builds the HTTP routing stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))
	if s.cfg.Server.RateLimitRPS > 0 {
		r.Use(rateLimiter(s.cfg.Server.RateLimitRPS, s.cfg.Server.RateLimitBurst))
	}

	r.Get("/", s.handleMap)
	r.Get("/regions.geojson", s.handleGeoJSON)
	r.Get("/health", s.handleHealth)

	return r
}

// aggregateRequest parses zoom_level and aggregates the record set. On
// failure it writes the error response and reports ok=false.
func (s *Server) aggregateRequest(w http.ResponseWriter, r *http.Request) (groups []geospatial.Group, zoomLevel int, ok bool) {
	zoomLevel, err := parseZoomLevel(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, 0, false
	}

	groups, err = geospatial.Aggregate(s.records, zoomLevel, s.cfg.Aggregate.OutlierMultiplier)
	if err != nil {
		if eris.Is(err, geospatial.ErrInvalidZoomLevel) {
			http.Error(w, fmt.Sprintf("zoom_level must be between %d and %d", geospatial.MinZoomLevel, geospatial.MaxZoomLevel), http.StatusBadRequest)
			return nil, 0, false
		}
		s.serverError(w, r, err)
		return nil, 0, false
	}
	return groups, zoomLevel, true
}

// handleMap serves the rendered map page.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	groups, zoomLevel, ok := s.aggregateRequest(w, r)
	if !ok {
		return
	}

	page, err := s.renderer.Render(groups, zoomLevel)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// handleGeoJSON serves the aggregated groups as a GeoJSON feature collection.
func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	groups, _, ok := s.aggregateRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(maprender.ToFeatureCollection(groups)); err != nil {
		zap.L().Error("encode geojson response", zap.Error(err))
	}
}

// handleHealth reports server liveness and the loaded record count.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"records": len(s.records),
	})
}

// serverError logs the failure and returns a 500. Render failures are
// request-scoped; other requests are unaffected.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	zap.L().Error("request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// parseZoomLevel reads the optional zoom_level query parameter. Range
// validation happens in the aggregator; this only rejects non-integers.
func parseZoomLevel(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("zoom_level")
	if raw == "" {
		return defaultZoomLevel, nil
	}
	zoomLevel, err := strconv.Atoi(raw)
	if err != nil {
		return 0, eris.Errorf("zoom_level must be an integer, got %q", raw)
	}
	return zoomLevel, nil
}

// requestLogger logs one line per request with status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// rateLimiter returns middleware enforcing a process-wide request rate.
func rateLimiter(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
