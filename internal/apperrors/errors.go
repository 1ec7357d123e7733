package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a queue entry or user lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when an authenticated user is not the owner of
	// the queue entry being mutated.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials covers unknown email and wrong password alike so
	// the response never reveals which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned for any reset token that is malformed,
	// tampered with, signed with the wrong secret, or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// FieldError identifies a single invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level validation failures. No mutation has
// occurred when it is returned.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a field error and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}
