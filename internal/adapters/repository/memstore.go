package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mverza/recordboard/internal/domain/record"
)

// MemStore is an in-memory Store used by tests and local development.
//
// Records keep insertion order, and sorting is stable, so ties between equal
// sort keys resolve to insertion order. Mixed-type bestscore values sort by
// type first, numbers before strings, matching BSON comparison order so both
// store implementations agree on where a stringly-updated score lands.
type MemStore struct {
	mu   sync.RWMutex
	recs []record.UserRecord
	now  func() time.Time
}

// MemOption applies a configuration option to the MemStore.
type MemOption func(*MemStore)

// WithNow overrides the clock used to stamp created_at at insert.
func WithNow(now func() time.Time) MemOption {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...MemOption) *MemStore {
	s := &MemStore{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Find implements Store.
func (s *MemStore) Find(_ context.Context, q Query) ([]record.UserRecord, error) {
	s.mu.RLock()
	out := make([]record.UserRecord, 0, len(s.recs))
	for _, r := range s.recs {
		if q.Filter == nil || matches(r, *q.Filter) {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	if q.SortField != "" {
		field, order := q.SortField, q.SortOrder
		if order == 0 {
			order = 1
		}
		sort.SliceStable(out, func(i, j int) bool {
			return compareValues(sortKey(out[i], field), sortKey(out[j], field))*order < 0
		})
	}

	if q.Skip > 0 {
		if q.Skip >= int64(len(out)) {
			return []record.UserRecord{}, nil
		}
		out = out[q.Skip:]
	}
	if q.Limit > 0 && q.Limit < int64(len(out)) {
		out = out[:q.Limit]
	}
	return out, nil
}

// FindOne implements Store. Absence is (nil, nil), not an error.
func (s *MemStore) FindOne(_ context.Context, f Filter) (*record.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.recs {
		if matches(r, f) {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

// InsertOne implements Store. Usernames are unique here the same way the
// mongo store's unique index makes them unique.
func (s *MemStore) InsertOne(_ context.Context, rec record.UserRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.recs {
		if r.Username == rec.Username {
			return "", ErrDuplicateUsername
		}
	}
	rec.ID = uuid.NewString()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	s.recs = append(s.recs, rec)
	return rec.ID, nil
}

// UpdateOne implements Store. The incoming record replaces the stored
// document wholesale; the stored id survives the replacement.
func (s *MemStore) UpdateOne(_ context.Context, f Filter, rec record.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.recs {
		if matches(r, f) {
			if rec.ID == "" {
				rec.ID = r.ID
			}
			s.recs[i] = rec
			return nil
		}
	}
	return nil
}

// DeleteOne implements Store. Unknown ids are a silent no-op.
func (s *MemStore) DeleteOne(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.recs {
		if r.ID == id {
			s.recs = append(s.recs[:i], s.recs[i+1:]...)
			return nil
		}
	}
	return nil
}

// Count implements Store.
func (s *MemStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.recs)), nil
}

// Close implements Store.
func (s *MemStore) Close(_ context.Context) error {
	return nil
}

func matches(r record.UserRecord, f Filter) bool {
	switch f.Field {
	case "username":
		return r.Username == f.Value
	case "_id", "id":
		return r.ID == f.Value
	default:
		return false
	}
}

func sortKey(r record.UserRecord, field string) any {
	switch field {
	case "bestscore":
		return r.BestScore
	case "username":
		return r.Username
	case "created_at":
		return r.CreatedAt
	default:
		return nil
	}
}

// Type ranks mirror BSON comparison order: null, numbers, strings, dates.
func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case int, int32, int64, float64:
		return 1
	case string:
		return 2
	case time.Time:
		return 3
	default:
		return 4
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

// compareValues returns -1, 0, or +1 ordering a before, equal to, or after b.
func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case 1:
		fa, fb := asFloat(a), asFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
	case 2:
		sa, sb := a.(string), b.(string)
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
	case 3:
		ta, tb := a.(time.Time), b.(time.Time)
		switch {
		case ta.Before(tb):
			return -1
		case ta.After(tb):
			return 1
		}
	}
	return 0
}
