// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// UpdateDependencies defines the interface for score updates.
type UpdateDependencies interface {
	Update(ctx context.Context, username, newScore string) error
}

// UpdateHandler handles score update requests.
type UpdateHandler struct {
	deps UpdateDependencies
}

// NewUpdateHandler creates a new update handler.
func NewUpdateHandler(deps UpdateDependencies) *UpdateHandler {
	return &UpdateHandler{deps: deps}
}

// HandleUpdate handles PUT /userrecord/update_record?username=&new_record=
// requests. The new score is forwarded as the raw query string, uncoerced.
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	if err := h.deps.Update(r.Context(), q.Get("username"), q.Get("new_record")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeOK(w, nil)
}
