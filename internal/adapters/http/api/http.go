// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/scout/internal/adapters/repository"
	service "github.com/okian/scout/internal/app"
	"github.com/okian/scout/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Discover runs a full synchronous discovery with weighted ranking.
	Discover(ctx context.Context, req model.DiscoveryRequest) (model.DiscoveryResult, error)

	// Search runs a lightweight synchronous pass with simple ranking.
	Search(ctx context.Context, req model.DiscoveryRequest) (model.DiscoveryResult, error)

	// Submit enqueues a discovery job for async processing.
	Submit(ctx context.Context, req model.DiscoveryRequest) (model.Session, error)

	// Session returns the current snapshot of an async session.
	Session(ctx context.Context, id string) (model.Session, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	discoverHandler *DiscoverHandler
	searchHandler   *SearchHandler
	sessionsHandler *SessionsHandler
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	metricsHandler  *MetricsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		discoverHandler: NewDiscoverHandler(deps),
		searchHandler:   NewSearchHandler(deps),
		sessionsHandler: NewSessionsHandler(deps),
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		metricsHandler:  NewMetricsHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.metricsHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/discover", MetricsMiddleware(s.discoverHandler.HandleDiscover, "discover"))
	mux.HandleFunc("/search", MetricsMiddleware(s.searchHandler.HandleSearch, "search"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.sessionsHandler.HandleCreateSession, "sessions"))
	mux.HandleFunc("/sessions/", MetricsMiddleware(s.sessionsHandler.HandleGetSession, "sessions"))
}

// discoveryRequest mirrors the JSON schema shared by POST /discover,
// POST /search, and POST /sessions.
type discoveryRequest struct {
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories"`
	MaxArticles int      `json:"max_articles"`
	Platforms   []string `json:"platforms"`
}

func (d discoveryRequest) validate() error {
	if d.MaxArticles < 0 {
		return errors.New("max_articles must not be negative")
	}
	for _, c := range d.Categories {
		if !model.Category(strings.ToLower(strings.TrimSpace(c))).Valid() {
			return errors.New("unknown category: " + c)
		}
	}
	return nil
}

func (d discoveryRequest) toModel() model.DiscoveryRequest {
	req := model.DiscoveryRequest{
		Tags:        d.Tags,
		MaxArticles: d.MaxArticles,
		Platforms:   d.Platforms,
	}
	for _, c := range d.Categories {
		req.Categories = append(req.Categories, model.Category(strings.ToLower(strings.TrimSpace(c))))
	}
	return req
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service sentinel errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoTags):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrQueueFull), errors.Is(err, service.ErrTooManySessions):
		writeError(w, http.StatusTooManyRequests, "backpressure", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
