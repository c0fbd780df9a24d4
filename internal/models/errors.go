package models

import "errors"

// Error categories. Specific failures wrap one of these so callers can map
// them with errors.Is without inspecting messages.
var (
	// ErrValidation marks malformed input to a ledger write. Rejected before
	// persistence, never partially applied.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a reference to an unknown family, member, expense or
	// payment.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks an operation rejected to preserve referential
	// integrity, e.g. deleting a member that historical records point at.
	ErrConflict = errors.New("conflict")

	// ErrInvalidTransition marks an illegal payment status change.
	ErrInvalidTransition = errors.New("invalid status transition")
)
