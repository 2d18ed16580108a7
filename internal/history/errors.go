package history

import "errors"

var (
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")

	// ErrNotFound is returned when no run has the requested ID.
	ErrNotFound = errors.New("run not found")
)
