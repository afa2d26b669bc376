package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers use errors.Is() to check for specific conditions; the API layer
// maps them to HTTP status codes.
var (
	// ErrInvalidName indicates the requested collection name is empty,
	// whitespace-only, or contains a path separator. Decided before any
	// store access; the caller should re-prompt.
	ErrInvalidName = errors.New("invalid collection name")

	// ErrDuplicateName indicates the user already owns a collection with
	// the requested name. No mutation has occurred; the caller should
	// re-prompt with a different name.
	ErrDuplicateName = errors.New("collection name already exists")

	// ErrCollectionNotFound indicates the named collection is not in the
	// user's registry.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrUserNotFound indicates no user record exists where one was
	// required, e.g. reconciling payment for an account that was never
	// written. Logged and dropped rather than retried: a user must have
	// existed to initiate checkout while authenticated.
	ErrUserNotFound = errors.New("user not found")
)
