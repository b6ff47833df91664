// Package app provides the core business service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mverza/recordboard/internal/adapters/repository"
	"github.com/mverza/recordboard/internal/domain/record"
	"github.com/mverza/recordboard/pkg/logger"
	"github.com/mverza/recordboard/pkg/metrics"
)

// ValidationDescription is the structured envelope description for entity
// validation failures.
type ValidationDescription struct {
	Message string              `json:"message"`
	Fields  []record.FieldError `json:"fields"`
}

// Service implements the record operations behind the HTTP API.
//
// It holds no record state of its own; everything lives in the store. The
// username uniqueness check and the rank scan are each separate store calls
// with no isolation between them, so concurrent writers can race. The store's
// unique index catches the duplicate-create race; rank under concurrent
// writes reflects whichever snapshot the scan happened to read.
type Service struct {
	mu sync.RWMutex

	store     repository.Store
	storeKind string

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the record store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStoreKind labels the configured store for stats reporting.
func WithStoreKind(kind string) Option {
	return func(s *Service) {
		if kind != "" {
			s.storeKind = kind
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storeKind: "memory",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start finishes wiring the service. A service without an injected store
// gets an in-memory one.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemStore()
	}

	s.started = true
	s.logger.Info(ctx, "record service started", logger.String("store", s.storeKind))
	return nil
}

// Stop releases the store.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if err := s.store.Close(ctx); err != nil {
		s.logger.Error(ctx, "closing store failed", logger.Error(err))
	}
	s.started = false
	s.logger.Info(ctx, "record service stopped")
}

// List returns record views ordered per the requested sort, skip, and limit.
// A limit of zero means unbounded. An empty sortField means natural store
// order; anything outside the allowed set is a client error.
func (s *Service) List(ctx context.Context, sortField string, order int, limit, skip int64) ([]record.View, error) {
	if sortField != "" && !record.ValidSortField(sortField) {
		return nil, NewClientError(fmt.Sprintf(
			"Invalid sort field: %s. Valid fields are %v.", sortField, record.SortFields))
	}

	recs, err := s.store.Find(ctx, repository.Query{
		SortField: sortField,
		SortOrder: order,
		Skip:      skip,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return record.Views(recs), nil
}

// GetByUsername returns the record view for username, or (nil, nil) when no
// record matches. Absence here is a successful null result, unlike GetRank.
func (s *Service) GetByUsername(ctx context.Context, username string) (*record.View, error) {
	if strings.TrimSpace(username) == "" {
		return nil, NewClientError("Username is required.")
	}

	rec, err := s.store.FindOne(ctx, repository.Filter{Field: "username", Value: username})
	if err != nil {
		return nil, fmt.Errorf("find record by username: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	v := rec.View()
	return &v, nil
}

// GetRank computes the 1-based position of username in the descending
// bestscore ordering. The whole leaderboard is fetched and scanned on every
// call; fine at small N. A username missing from the scan is a client error,
// not an empty success.
func (s *Service) GetRank(ctx context.Context, username string) (record.Rank, error) {
	if strings.TrimSpace(username) == "" {
		return record.Rank{}, NewClientError("Username is required.")
	}

	recs, err := s.store.Find(ctx, repository.Query{SortField: "bestscore", SortOrder: -1})
	if err != nil {
		return record.Rank{}, fmt.Errorf("scan leaderboard: %w", err)
	}
	for i, rec := range recs {
		if rec.Username == username {
			return record.Rank{Rank: i + 1}, nil
		}
	}
	return record.Rank{}, NewClientError("User not found in the leaderboard.")
}

// Create persists a new record. The blanket empty-payload check and the
// empty-username check are distinct failure causes and stay separate.
// Uniqueness is checked before the insert; the store's unique index backstops
// the race between the check and the insert.
func (s *Service) Create(ctx context.Context, rec *record.UserRecord) error {
	if rec == nil || rec.BestScore == nil {
		return NewClientError("Input is empty.")
	}
	if rec.Username == "" {
		return NewClientError("Username are required.")
	}
	if errs := rec.Validate(); len(errs) > 0 {
		return NewClientError(ValidationDescription{Message: "Validation error.", Fields: errs})
	}

	existing, err := s.store.FindOne(ctx, repository.Filter{Field: "username", Value: rec.Username})
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return NewClientError("Username already taken.")
	}

	if _, err := s.store.InsertOne(ctx, *rec); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return NewClientError("Username already taken.")
		}
		return fmt.Errorf("insert record: %w", err)
	}
	s.logger.Debug(ctx, "record created", logger.String("username", rec.Username))
	return nil
}

// Update overwrites only the bestscore of the record with the given
// username, re-validates the full entity, and writes the whole document
// back. The new score is stored as the raw string it arrived as.
func (s *Service) Update(ctx context.Context, username, newScore string) error {
	if username == "" {
		return NewClientError("Username is required.")
	}
	if newScore == "" {
		return NewClientError("New record is required.")
	}

	rec, err := s.store.FindOne(ctx, repository.Filter{Field: "username", Value: username})
	if err != nil {
		return fmt.Errorf("find record: %w", err)
	}
	if rec == nil {
		return NewClientError("User record not found.")
	}

	rec.BestScore = newScore
	if errs := rec.Validate(); len(errs) > 0 {
		return NewClientError(ValidationDescription{Message: "Validation error.", Fields: errs})
	}

	if err := s.store.UpdateOne(ctx, repository.Filter{Field: "username", Value: username}, *rec); err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	s.logger.Debug(ctx, "record updated", logger.String("username", username))
	return nil
}

// Delete removes the record with the given id. There is no existence check:
// deleting an id that matches nothing is a silent success, by design.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return NewClientError("ID is required.")
	}
	if err := s.store.DeleteOne(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"store":   s.storeKind,
	}
	if s.started {
		if n, err := s.store.Count(context.Background()); err == nil {
			stats["records"] = n
			metrics.UpdateRecordsTotal(n)
		}
	}
	return stats
}
