// internal/domain/errors.go
//
// Error taxonomy shared by the repositories, the service layer, and the
// HTTP adapter.
//
// Context
// -------
// Every failure that leaves a repository or a service wraps exactly one of
// the sentinels below with `%w`.  Callers branch with `errors.Is`, and the
// API layer maps each sentinel to one status code.  The message text of the
// wrapping error is safe to show to an administrator; driver errors are
// wrapped, never echoed verbatim to public callers.
//
// Notes
// -----
//   - ErrStorage covers engine, connection, and decode faults.
//   - ErrExternal is used for collaborators such as the mail relay.
//   - Oxford commas, two spaces after periods.
package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
	ErrStorage         = errors.New("storage failure")
	ErrExternal        = errors.New("external service failure")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// NotFound wraps ErrNotFound with the entity and key that missed.
func NotFound(entity, key string) error {
	return fmt.Errorf("%s %q: %w", entity, key, ErrNotFound)
}

// Conflict wraps ErrConflict for a duplicate uniqueness key.
func Conflict(entity, key string) error {
	return fmt.Errorf("%s %q already exists: %w", entity, key, ErrConflict)
}

// Invalid wraps ErrValidation with a formatted reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// Storage wraps an engine error so the cause survives for logs while the
// classification is ErrStorage.
func Storage(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// Kind returns a short, stable label for err.  It is used for metric labels
// and for the "kind" field of API error bodies.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrExternal):
		return "external"
	default:
		return "storage"
	}
}
