package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrInvalidID         = errors.New("invalid record id")
)
