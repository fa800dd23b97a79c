// Package apperr defines the error kinds shared across services: not
// found, invalid data, conflict. Anything else is treated as unexpected
// by the HTTP boundary.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a lookup for an identifier that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a duplicate unique-key violation.
	ErrConflict = errors.New("already exists")
)

// InvalidDataError reports the first field-level validation that failed
// on a create or update. Validations run in a fixed declared order, so
// an entity failing several checks always reports the same field.
type InvalidDataError struct {
	Field  string
	Reason string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid builds an InvalidDataError for the named field.
func Invalid(field, reason string) error {
	return &InvalidDataError{Field: field, Reason: reason}
}

// NotFound wraps ErrNotFound with the entity kind and identifier.
func NotFound(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
}

// Conflict wraps ErrConflict with the entity kind and offending key.
func Conflict(entity, key string) error {
	return fmt.Errorf("%s %s: %w", entity, key, ErrConflict)
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is (or wraps) ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// AsInvalid extracts an InvalidDataError if err carries one.
func AsInvalid(err error) (*InvalidDataError, bool) {
	var ide *InvalidDataError
	if errors.As(err, &ide) {
		return ide, true
	}
	return nil, false
}
