// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/scout/internal/domain/model"
)

// DiscoverDependencies defines the interface for synchronous discovery.
type DiscoverDependencies interface {
	Discover(ctx context.Context, req model.DiscoveryRequest) (model.DiscoveryResult, error)
}

// DiscoverHandler handles synchronous discovery requests.
type DiscoverHandler struct {
	deps DiscoverDependencies
}

// NewDiscoverHandler creates a new discover handler.
func NewDiscoverHandler(deps DiscoverDependencies) *DiscoverHandler {
	return &DiscoverHandler{deps: deps}
}

// HandleDiscover handles POST /discover requests.
func (h *DiscoverHandler) HandleDiscover(w http.ResponseWriter, r *http.Request) {
	const op = "api.discover"
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

	result, err := h.deps.Discover(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
