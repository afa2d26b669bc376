package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mbenning/cardbox-api/internal/docstore"
)

// PostgreSQL error classes that indicate the store itself is unreachable
// or refusing the caller, as opposed to a fault in the statement.
const (
	connectionExceptionClass   = "08" // connection failures
	invalidAuthorizationClass  = "28" // authentication / authorization
	insufficientResourcesClass = "53" // out of memory, disk, connections
	operatorInterventionClass  = "57" // shutdown, crash recovery
	systemErrorClass           = "58" // external system errors
)

// MapError maps a database error to the docstore error taxonomy.
// It wraps the original error to preserve context for debugging.
// Transport, auth, and resource faults become docstore.ErrUnavailable;
// missing rows become docstore.ErrNotFound; anything else passes through
// unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", docstore.ErrNotFound, err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if isUnavailableClass(pgErr.Code) {
			return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
		}
	}

	return err
}

// isUnavailableClass reports whether a PostgreSQL error code belongs to a
// class that indicates the store, not the statement, is at fault.
func isUnavailableClass(code string) bool {
	if len(code) < 2 {
		return false
	}
	switch code[:2] {
	case connectionExceptionClass,
		invalidAuthorizationClass,
		insufficientResourcesClass,
		operatorInterventionClass,
		systemErrorClass:
		return true
	}
	return false
}

// IsUnavailableError reports whether the error represents a store that
// cannot currently serve requests. Connection-refused errors from the
// driver arrive as plain errors, so the string check backs up the typed
// checks in MapError.
func IsUnavailableError(err error) bool {
	if errors.Is(err, docstore.ErrUnavailable) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "connection refused")
}
