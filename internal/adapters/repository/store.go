// Package repository defines the document-store interface and its
// implementations.
package repository

import (
	"context"

	"github.com/mverza/recordboard/internal/domain/record"
)

// Filter is an equality match on a single field. The core only ever
// filters on username or the opaque record id.
type Filter struct {
	Field string
	Value string
}

// Query shapes a Find call: optional equality filter, optional single-field
// sort, and pagination applied after the sort.
type Query struct {
	Filter *Filter

	// SortField is empty for natural store order.
	SortField string
	// SortOrder is +1 ascending, -1 descending. Ignored when SortField is empty.
	SortOrder int

	// Skip drops the first Skip documents after sorting.
	Skip int64
	// Limit caps the result; 0 means unbounded.
	Limit int64
}

// Store provides access to the persisted user records.
//
// Ties between equal sort keys resolve to whatever stable order the
// implementation returns; that order is implementation-defined but stable
// within one query.
type Store interface {
	// Find returns records matching q, ordered per its sort, skip, and limit.
	Find(ctx context.Context, q Query) ([]record.UserRecord, error)

	// FindOne returns the first record matching f, or (nil, nil) when no
	// record matches.
	FindOne(ctx context.Context, f Filter) (*record.UserRecord, error)

	// InsertOne persists rec and returns the store-assigned id.
	// Stores with a uniqueness constraint on username return
	// ErrDuplicateUsername on conflict.
	InsertOne(ctx context.Context, rec record.UserRecord) (string, error)

	// UpdateOne replaces the full document matching f. Replacing an absent
	// document is not an error; callers check existence first.
	UpdateOne(ctx context.Context, f Filter, rec record.UserRecord) error

	// DeleteOne removes the record with the given id. Deleting an absent id
	// is a no-op, not an error.
	DeleteOne(ctx context.Context, id string) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)

	// Close releases any underlying connections.
	Close(ctx context.Context) error
}
