// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/mverza/recordboard/internal/domain/record"
)

// LookupDependencies defines the interface for username lookups.
type LookupDependencies interface {
	GetByUsername(ctx context.Context, username string) (*record.View, error)
}

// LookupHandler handles lookup-by-username requests.
type LookupHandler struct {
	deps LookupDependencies
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(deps LookupDependencies) *LookupHandler {
	return &LookupHandler{deps: deps}
}

// HandleLookup handles GET /userrecord/byUsername?username= requests.
// Zero matches is a successful null result, not an error.
func (h *LookupHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	view, err := h.deps.GetByUsername(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if view == nil {
		writeOK(w, nil)
		return
	}
	writeOK(w, view)
}
