// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/mverza/recordboard/internal/domain/record"
)

// RankDependencies defines the interface for rank operations.
type RankDependencies interface {
	GetRank(ctx context.Context, username string) (record.Rank, error)
}

// RankHandler handles rank requests.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleRank handles GET /userrecord/rank?username= requests.
// Unlike byUsername, an unknown username here is a client error.
func (h *RankHandler) HandleRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	rank, err := h.deps.GetRank(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeOK(w, rank)
}
