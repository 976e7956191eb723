// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/scout/internal/domain/model"
)

// SearchDependencies defines the interface for lightweight search.
type SearchDependencies interface {
	Search(ctx context.Context, req model.DiscoveryRequest) (model.DiscoveryResult, error)
}

// SearchHandler handles search requests. Search skips the relevance floor
// and social repackaging, returning a plainly ranked list.
type SearchHandler struct {
	deps SearchDependencies
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps SearchDependencies) *SearchHandler {
	return &SearchHandler{deps: deps}
}

// HandleSearch handles POST /search requests.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.search"
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

	result, err := h.deps.Search(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
