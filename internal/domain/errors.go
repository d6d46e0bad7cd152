package domain

import "errors"

// Shared result sentinels. Repositories translate storage-level failures
// (missing rows, unique violations) into these; usecases pass them through
// and the HTTP layer maps them to a response exactly once.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
