// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mverza/recordboard/internal/domain/record"
)

// ListDependencies defines the interface for list operations.
type ListDependencies interface {
	List(ctx context.Context, sortField string, order int, limit, skip int64) ([]record.View, error)
}

// ListHandler handles record listing requests.
type ListHandler struct {
	deps ListDependencies
}

// NewListHandler creates a new list handler.
func NewListHandler(deps ListDependencies) *ListHandler {
	return &ListHandler{deps: deps}
}

// HandleList handles GET /userrecords?sort=&order=&limit=&skip= requests.
// order defaults to 1 (ascending); limit defaults to 0, meaning unbounded.
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	order, err := intParam(q.Get("order"), 1)
	if err != nil {
		writeBadRequest(w, "Invalid order parameter.")
		return
	}
	limit, err := intParam(q.Get("limit"), 0)
	if err != nil || limit < 0 {
		writeBadRequest(w, "Invalid limit parameter.")
		return
	}
	skip, err := intParam(q.Get("skip"), 0)
	if err != nil || skip < 0 {
		writeBadRequest(w, "Invalid skip parameter.")
		return
	}

	views, err := h.deps.List(r.Context(), q.Get("sort"), int(order), limit, skip)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeOK(w, views)
}

func intParam(raw string, def int64) (int64, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
