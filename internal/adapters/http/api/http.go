// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mverza/recordboard/internal/app"
	"github.com/mverza/recordboard/internal/domain/record"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	List(ctx context.Context, sortField string, order int, limit, skip int64) ([]record.View, error)
	GetByUsername(ctx context.Context, username string) (*record.View, error)
	GetRank(ctx context.Context, username string) (record.Rank, error)
	Create(ctx context.Context, rec *record.UserRecord) error
	Update(ctx context.Context, username, newScore string) error
	Delete(ctx context.Context, id string) error
}

// Server wires HTTP routes for the record API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	listHandler   *ListHandler
	lookupHandler *LookupHandler
	rankHandler   *RankHandler
	recordHandler *RecordHandler
	updateHandler *UpdateHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		listHandler:   NewListHandler(deps),
		lookupHandler: NewLookupHandler(deps),
		rankHandler:   NewRankHandler(deps),
		recordHandler: NewRecordHandler(deps),
		updateHandler: NewUpdateHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/userrecords", MetricsMiddleware(s.listHandler.HandleList, "userrecords"))
	mux.HandleFunc("/userrecord", MetricsMiddleware(s.recordHandler.HandleRecord, "userrecord"))
	mux.HandleFunc("/userrecord/byUsername", MetricsMiddleware(s.lookupHandler.HandleLookup, "byUsername"))
	mux.HandleFunc("/userrecord/rank", MetricsMiddleware(s.rankHandler.HandleRank, "rank"))
	mux.HandleFunc("/userrecord/update_record", MetricsMiddleware(s.updateHandler.HandleUpdate, "update_record"))
}

// Envelope is the uniform response wrapper for every endpoint. The transport
// status line always mirrors StatusCode.
type Envelope struct {
	StatusCode       int `json:"status_code"`
	ErrorDescription any `json:"error_description"`
	Data             any `json:"data"`
}

func writeEnvelope(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(env.StatusCode)
	_ = json.NewEncoder(w).Encode(env)
}

// writeOK emits a 200 envelope with data and no error description.
func writeOK(w http.ResponseWriter, data any) {
	writeEnvelope(w, Envelope{StatusCode: http.StatusOK, Data: data})
}

// writeBadRequest emits a 400 envelope. The description may be a plain
// string or a structured validation payload; data is always null.
func writeBadRequest(w http.ResponseWriter, description any) {
	writeEnvelope(w, Envelope{StatusCode: http.StatusBadRequest, ErrorDescription: description})
}

// writeServerError emits a 500 envelope with a free-text description and
// null data. Callers must not depend on parsing the text.
func writeServerError(w http.ResponseWriter, description string) {
	writeEnvelope(w, Envelope{StatusCode: http.StatusInternalServerError, ErrorDescription: description})
}

// writeServiceError translates a service failure into the envelope taxonomy:
// client errors keep their description, everything else is a server error
// carrying the underlying message.
func writeServiceError(w http.ResponseWriter, err error) {
	var ce *app.ClientError
	if errors.As(err, &ce) {
		writeBadRequest(w, ce.Description)
		return
	}
	writeServerError(w, "Server error: "+err.Error())
}
