package model

import "errors"

// Domain errors. Handlers map these to HTTP statuses at the API boundary;
// everything else surfaces as a generic 500.
var (
	// ErrInvalidRequest indicates missing or malformed input.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a delete blocked by a referential constraint.
	ErrConflict = errors.New("conflict")

	// ErrUpstream indicates a failure of the recommendation service or the
	// identity provider, including malformed responses.
	ErrUpstream = errors.New("upstream error")
)
