package ports

import "errors"

// Shared error taxonomy. Services wrap these with fmt.Errorf("...: %w", err)
// so handlers can branch with errors.Is without importing storage packages.
var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means the operation collides with existing state, such as a
	// second active assignment for the same incident and responder.
	ErrConflict = errors.New("conflict")

	// ErrInvalidTransition means the requested lifecycle move is not allowed
	// from the current status.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrTimeout means the store did not answer within the request deadline.
	ErrTimeout = errors.New("timeout")

	// ErrValidation means the input failed validation before reaching the store.
	ErrValidation = errors.New("validation failed")
)
