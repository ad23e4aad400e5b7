package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	// Validation failures are rejected before any remote call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable indicates a remote collaborator could not be reached.
	// Catalog reads degrade to empty results, but carry this marker so the
	// UI can tell "no results" apart from "catalog unreachable".
	ErrUnavailable = errors.New("remote service unavailable")

	// ErrNotSignedIn indicates an operation requires a signed-in user.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrSubscriptionClosed indicates a subscription handle was already
	// cancelled and no further emissions will occur.
	ErrSubscriptionClosed = errors.New("subscription closed")

	// Authentication Errors.

	// ErrAuthInvalid indicates the sign-in credentials are invalid.
	ErrAuthInvalid = errors.New("invalid email or password")

	// ErrAuthExpired indicates the session is no longer valid.
	ErrAuthExpired = errors.New("authentication expired")
)
