package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyUserID is returned when a user ID is empty.
	ErrEmptyUserID = errors.New("user ID cannot be empty")

	// ErrEmptyCollectionName is returned when a collection name is empty
	// or consists only of whitespace.
	ErrEmptyCollectionName = errors.New("collection name cannot be empty")

	// ErrInvalidCollectionName is returned when a collection name contains
	// characters that cannot appear in a document path.
	ErrInvalidCollectionName = errors.New("invalid collection name")
)
