// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/scout/internal/domain/model"
)

// SessionDependencies defines the interface for async discovery sessions.
type SessionDependencies interface {
	Submit(ctx context.Context, req model.DiscoveryRequest) (model.Session, error)
	Session(ctx context.Context, id string) (model.Session, error)
}

// SessionsHandler handles async session requests.
type SessionsHandler struct {
	deps SessionDependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps SessionDependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

// HandleCreateSession handles POST /sessions requests. Accepted jobs are
// acknowledged with 202 and processed by the worker pool.
func (h *SessionsHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_session"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req discoveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	sess, err := h.deps.Submit(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, sess)
}

// HandleGetSession handles GET /sessions/{id} requests.
func (h *SessionsHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_session"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /sessions/
	id := strings.TrimPrefix(r.URL.Path, "/sessions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	sess, err := h.deps.Session(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
