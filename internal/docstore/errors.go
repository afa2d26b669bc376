package docstore

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned by Get when no document exists at the
	// requested path. Callers must handle absence explicitly; reads never
	// return a nil document with a nil error.
	ErrNotFound = errors.New("document not found")

	// ErrUnavailable is returned when the store cannot be reached or
	// refuses the caller (transport, auth, quota). The underlying cause
	// is wrapped and can be inspected with errors.Unwrap.
	ErrUnavailable = errors.New("document store unavailable")
)

// IsNotFound reports whether the error is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable reports whether the error is, or wraps, ErrUnavailable.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
