package services

import "errors"

// Business errors surfaced to the handlers. None of these is fatal; each
// maps to a structured JSON error at the boundary.
var (
	// ErrNotFound: referenced account, formation, enrollment or
	// notification does not exist (or is not visible to the caller).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyRegistered: an active enrollment already exists for the
	// (user, formation) pair.
	ErrAlreadyRegistered = errors.New("already registered for this formation")
	// ErrNotPending: the target record already left the pending state.
	// Double submissions land here instead of double-applying.
	ErrNotPending = errors.New("record is no longer pending")
	// ErrPermissionDenied: the actor lacks role-scope authority.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrOutsideStructure: cross-structure registration is disabled and
	// the formation belongs to another structure.
	ErrOutsideStructure = errors.New("formation outside your structure")
)
