package diary

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error taxonomy for the diary core. Handlers translate these to HTTP
// statuses; raw pgx errors never leave this package.
var (
	// ErrNotFound covers entry, comment and user lookups that do not resolve.
	ErrNotFound = errors.New("no such record")

	// ErrForbidden means the actor lacks ownership or administrator rights.
	ErrForbidden = errors.New("forbidden")

	// ErrAuthRequired means the operation needs a resolved viewer
	// (friends/nearby listings requested anonymously).
	ErrAuthRequired = errors.New("authentication required")
)

// ValidationError reports a missing or invalid required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// knownID reports whether id can address a stored row at all. Entry and
// comment ids are uuids; anything else can never resolve, and passing it
// through to a uuid column would surface an encoding error instead of
// the not-found result.
func knownID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
