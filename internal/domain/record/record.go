// Package record defines the user record entity, its validation rules,
// and the external view returned by the API.
package record

import (
	"time"
)

// SortFields enumerates the fields a list query may sort on.
var SortFields = []string{"bestscore", "username", "created_at"}

// ValidSortField reports whether f is an allowed sort field.
func ValidSortField(f string) bool {
	for _, v := range SortFields {
		if v == f {
			return true
		}
	}
	return false
}

// UserRecord is one user's best-score entry.
//
// BestScore is deliberately untyped: creates accept whatever JSON value the
// client sent (usually a number), while score updates store the raw query
// string. Sorting mixed values follows the store's type ordering, so updates
// can move a record between the numeric and lexicographic regions of the
// leaderboard. That hazard is inherited behavior, kept visible on purpose.
type UserRecord struct {
	// ID is assigned by the store at insert and never changes.
	// It is only ever used for deletion.
	ID        string    `json:"id" bson:"-"`
	Username  string    `json:"username" bson:"username"`
	BestScore any       `json:"bestscore" bson:"bestscore"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// Rank is the derived leaderboard position for one username: the 1-based
// index in descending bestscore order. It is recomputed per request and
// never stored.
type Rank struct {
	Rank int `json:"rank"`
}

// FieldError describes a single invalid entity field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks the entity invariants: a record must carry a non-empty
// username and a non-null bestscore. Returns one FieldError per violation,
// or nil when the record is valid.
func (r UserRecord) Validate() []FieldError {
	var errs []FieldError
	if r.Username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "must not be empty"})
	}
	if r.BestScore == nil {
		errs = append(errs, FieldError{Field: "bestscore", Message: "must not be null"})
	}
	return errs
}

// View is the external representation of a record: exactly id, username,
// and bestscore, with the id coerced to a string regardless of the store's
// native identifier type. Internal metadata is stripped.
type View struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	BestScore any    `json:"bestscore"`
}

// View converts the record to its external representation.
// Callers are responsible for not converting a record they did not fetch;
// a zero record yields a zero view, never an error.
func (r UserRecord) View() View {
	return View{
		ID:        r.ID,
		Username:  r.Username,
		BestScore: r.BestScore,
	}
}

// Views converts a slice of records. It always returns a non-nil slice so
// an empty result marshals as [] rather than null.
func Views(recs []UserRecord) []View {
	views := make([]View, 0, len(recs))
	for _, r := range recs {
		views = append(views, r.View())
	}
	return views
}
