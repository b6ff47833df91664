// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mverza/recordboard/internal/domain/record"
)

// RecordDependencies defines the interface for record creation and deletion.
type RecordDependencies interface {
	Create(ctx context.Context, rec *record.UserRecord) error
	Delete(ctx context.Context, id string) error
}

// RecordHandler handles record creation and deletion on the same path.
type RecordHandler struct {
	deps RecordDependencies
}

// NewRecordHandler creates a new record handler.
func NewRecordHandler(deps RecordDependencies) *RecordHandler {
	return &RecordHandler{deps: deps}
}

// createRequest mirrors the POST /userrecord body. Pointer fields separate
// "absent" from "zero" so the blanket empty-payload check stays distinct
// from the empty-username check.
type createRequest struct {
	Username  *string `json:"username"`
	BestScore any     `json:"bestscore"`
}

// HandleRecord dispatches POST (create) and DELETE (by id) on /userrecord.
func (h *RecordHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *RecordHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Input is empty.")
		return
	}
	if req.Username == nil || req.BestScore == nil {
		writeBadRequest(w, "Input is empty.")
		return
	}

	rec := record.UserRecord{Username: *req.Username, BestScore: req.BestScore}
	if err := h.deps.Create(r.Context(), &rec); err != nil {
		writeServiceError(w, err)
		return
	}
	// Success carries no data payload.
	writeOK(w, nil)
}

// handleDelete handles DELETE /userrecord?id=. There is no existence check;
// deleting an id that matches nothing succeeds.
func (h *RecordHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeBadRequest(w, "ID is required.")
		return
	}
	if err := h.deps.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeOK(w, nil)
}
