package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup, update or delete target is absent.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID is returned when a create collides with an existing
	// business identifier.
	ErrDuplicateID = errors.New("duplicate identifier")
)

// ValidationError is a client fault: a missing required field, an empty
// update payload, a malformed numeric value or a field constraint violation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationErrorf(format string, v ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, v...)}
}
