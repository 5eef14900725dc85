// Package httpapi exposes health, readiness, and metrics endpoints plus a
// small read API over the latest normalized snapshot.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robho/nobil-etl-service/internal/availability"
	"github.com/robho/nobil-etl-service/internal/domain"
	"github.com/robho/nobil-etl-service/internal/observability"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// StationIndex provides the latest normalized stations.
type StationIndex interface {
	All() ([]*domain.Station, time.Time)
	ByID(id int64) (*domain.Station, bool)
}

// AvailabilitySource resolves live availability for one station.
type AvailabilitySource interface {
	Supports(st *domain.Station) bool
	Fetch(ctx context.Context, st *domain.Station) (*domain.StationAvailability, error)
}

// Server exposes the service's HTTP surface.
type Server struct {
	httpServer *http.Server
	stations   StationIndex
	detector   AvailabilitySource
	cache      *gocache.Cache
	cacheTTL   time.Duration
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with health, metrics, and station routes.
// Availability responses are cached for cacheTTL; the detector itself stays
// uncached.
func NewServer(addr string, ready ReadinessChecker, stations StationIndex, detector AvailabilitySource, cacheTTL time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		stations: stations,
		detector: detector,
		cache:    gocache.New(cacheTTL, 2*cacheTTL),
		cacheTTL: cacheTTL,
		metrics:  metrics,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/stations", s.handleStations)
	mux.HandleFunc("GET /v1/stations/{id}", s.handleStation)
	mux.HandleFunc("GET /v1/stations/{id}/availability", s.handleAvailability)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// stationSummary is the list-view projection of a station.
type stationSummary struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Coordinates domain.Coordinate `json:"coordinates"`
	Address     domain.Address    `json:"address"`
	Connectors  []domain.Connector `json:"connectors"` // merged view
	MaxPower    float64           `json:"max_power"`
	MultiPlug   bool              `json:"multi_plug"`
	Verified    bool              `json:"verified"`
}

func (s *Server) handleStations(w http.ResponseWriter, _ *http.Request) {
	stations, updatedAt := s.stations.All()

	summaries := make([]stationSummary, len(stations))
	for i, st := range stations {
		summaries[i] = stationSummary{
			ID:          st.ID,
			Name:        st.Name,
			Coordinates: st.Coordinates,
			Address:     st.Address,
			Connectors:  st.ConnectorsMerged(),
			MaxPower:    st.MaxPower(nil),
			MultiPlug:   st.IsMultiPlug(nil),
			Verified:    st.Verified,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stations":   summaries,
		"updated_at": updatedAt,
	})
}

func (s *Server) handleStation(w http.ResponseWriter, r *http.Request) {
	st, ok := s.lookupStation(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// availabilityResponse pairs a poll result with the instant it was fetched,
// so cached responses are distinguishable from fresh ones.
type availabilityResponse struct {
	StationID    int64                       `json:"station_id"`
	FetchedAt    time.Time                   `json:"fetched_at"`
	Availability *domain.StationAvailability `json:"availability"`
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	st, ok := s.lookupStation(w, r)
	if !ok {
		return
	}

	if !s.detector.Supports(st) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "live availability is not supported for this station",
		})
		return
	}

	cacheKey := strconv.FormatInt(st.ID, 10)
	if cached, found := s.cache.Get(cacheKey); found {
		s.metrics.AvailabilityCache.WithLabelValues("hit").Inc()
		writeJSON(w, http.StatusOK, cached.(availabilityResponse))
		return
	}
	s.metrics.AvailabilityCache.WithLabelValues("miss").Inc()

	avail, err := s.detector.Fetch(r.Context(), st)
	if err != nil {
		if errors.Is(err, availability.ErrUnsupportedCountry) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		s.logger.Error("availability fetch failed", "station_id", st.ID, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "live status fetch failed"})
		return
	}

	resp := availabilityResponse{
		StationID:    st.ID,
		FetchedAt:    time.Now().UTC(),
		Availability: avail,
	}
	s.cache.Set(cacheKey, resp, s.cacheTTL)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) lookupStation(w http.ResponseWriter, r *http.Request) (*domain.Station, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid station id"})
		return nil, false
	}
	st, ok := s.stations.ByID(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "station not found"})
		return nil, false
	}
	return st, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
