// Package query is the HTTP read surface: batch and featured ratings,
// bulk trading windows, and calendar moments, all wrapped in a uniform
// success/error envelope.
package query

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"TradeScope/internal/engine"
	"TradeScope/internal/metrics"
	"TradeScope/internal/model"
	"TradeScope/internal/store"
	"TradeScope/internal/windows"
)

// RatingSource is the slice of the engine the ratings endpoint needs.
type RatingSource interface {
	Batch(ctx context.Context, opts engine.BatchOptions) []model.TickerRating
}

// WindowSource is the slice of the detector the windows endpoint needs.
type WindowSource interface {
	DetectBulk(ctx context.Context, opts windows.BulkOptions) windows.BulkResult
}

// Server holds the handler collaborators.
type Server struct {
	ratings  RatingSource
	windows  WindowSource
	featured store.FeaturedStore
	base     engine.BatchOptions // deployment-wide worker/lookback settings
	log      zerolog.Logger
}

// NewServer wires the query layer. The featured store may be a
// NoopStore, in which case featured mode always falls through to a
// live batch. base carries the configured worker count and lookback;
// per-request parameters are layered on top of it.
func NewServer(ratings RatingSource, win WindowSource, featured store.FeaturedStore, base engine.BatchOptions, log zerolog.Logger) *Server {
	metrics.Register()
	return &Server{
		ratings:  ratings,
		windows:  win,
		featured: featured,
		base:     base,
		log:      log.With().Str("component", "query").Logger(),
	}
}

// Router builds the mux with all routes and middleware attached.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.instrument)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/ratings", s.handleRatings).Methods(http.MethodGet).Name("ratings")
	api.HandleFunc("/windows", s.handleWindows).Methods(http.MethodGet).Name("windows")
	api.HandleFunc("/moments", s.handleMoments).Methods(http.MethodGet).Name("moments")

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet).Name("healthz")
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet).Name("metrics")
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusWriter captures the response code for the access log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// instrument tags every request with an id, logs it, and records
// latency and error counters per named route.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)
		elapsed := time.Since(start)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if name := route.GetName(); name != "" {
				endpoint = name
			}
		}
		metrics.QueryLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
		if sw.status >= http.StatusBadRequest {
			metrics.QueryErrors.WithLabelValues(endpoint).Inc()
		}

		s.log.Info().
			Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("elapsed", elapsed).
			Msg("request")
	})
}
