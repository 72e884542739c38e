package repository

import "errors"

// Outcome sentinels shared by the store components. ErrNotFound and
// ErrDenied are ordinary branch values for callers, not faults; handlers
// map them to their own presentation (404 vs 403). Driver failures are
// wrapped with context instead of being replaced, so errors.Is still
// reaches these sentinels where one applies.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrNotFound        = errors.New("document not found")
	ErrDenied          = errors.New("not the owner of the document")
)
