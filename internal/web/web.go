// Package web serves the HTTP API for serve mode: health, the aggregated
// event list, free-text asks, and Prometheus metrics.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"mtlfest/internal/assistant"
	"mtlfest/internal/config"
	appLog "mtlfest/internal/log"
	"mtlfest/internal/model"
)

// eventsCacheTTL bounds how stale /api/events may get between cron
// refreshes when requests arrive first.
const eventsCacheTTL = 5 * time.Minute

type eventsCache struct {
	events    []model.Event
	fetchedAt time.Time
}

// Server provides the HTTP API. /api/events responses are cached in memory
// so every HTTP request does not trigger a full source fan-out; the ask
// endpoint intentionally bypasses the cache and aggregates fresh.
type Server struct {
	cfg  *config.Config
	asst *assistant.Assistant
	mux  *http.ServeMux

	eventsMu    sync.RWMutex
	eventsCache *eventsCache
}

// NewServer constructs a new Server.
func NewServer(cfg *config.Config, asst *assistant.Assistant) *Server {
	s := &Server{
		cfg:  cfg,
		asst: asst,
		mux:  http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/events", s.handleEvents)
	s.mux.HandleFunc("/api/ongoing", s.handleOngoing)
	s.mux.HandleFunc("/api/ask", s.handleAsk)
	s.mux.Handle("/metrics", promhttp.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, map[string]any{
		"events": s.cachedEvents(r.Context()),
	})
}

func (s *Server) handleOngoing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	matcher := s.asst.Matcher()

	ongoing := make([]model.Event, 0)
	for _, ev := range s.cachedEvents(r.Context()) {
		if matcher.Ongoing(ev) {
			ongoing = append(ongoing, ev)
		}
	}
	writeJSON(w, map[string]any{
		"events": ongoing,
	})
}

type askRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	result := s.asst.Ask(r.Context(), req.Query)
	writeJSON(w, result)
}

// cachedEvents returns the cached aggregation, refreshing when stale.
func (s *Server) cachedEvents(ctx context.Context) []model.Event {
	s.eventsMu.RLock()
	cache := s.eventsCache
	s.eventsMu.RUnlock()

	if cache != nil && time.Since(cache.fetchedAt) < eventsCacheTTL {
		return cache.events
	}
	return s.refreshEvents(ctx)
}

// refreshEvents runs a full aggregation and replaces the cache.
func (s *Server) refreshEvents(ctx context.Context) []model.Event {
	events := s.asst.Events(ctx)

	s.eventsMu.Lock()
	s.eventsCache = &eventsCache{events: events, fetchedAt: time.Now()}
	s.eventsMu.Unlock()

	return events
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to encode response", err)
	}
}

// Run starts the HTTP server and a cron-scheduled cache refresh, and
// blocks until ctx is canceled or the server fails.
func (s *Server) Run(ctx context.Context) error {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(s.cfg.RefreshCron, func() {
		appLog.Info("scheduled event refresh starting", "cron", s.cfg.RefreshCron)
		s.refreshEvents(context.Background())
	})
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:    s.cfg.Listen,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
