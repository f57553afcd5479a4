package application

import "errors"

var (
	// ErrUnauthorized indicates the caller lacks permission for the
	// requested operation.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a uniqueness conflict, such as a
	// duplicate staff email.
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError aggregates field-level validation failures.
type ValidationError struct {
	FieldErrors map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{FieldErrors: map[string]string{}}
}

func (e *ValidationError) add(field, message string) {
	if e.FieldErrors == nil {
		e.FieldErrors = map[string]string{}
	}
	if _, exists := e.FieldErrors[field]; exists {
		return
	}
	e.FieldErrors[field] = message
}

func (e *ValidationError) merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, message := range other.FieldErrors {
		e.add(field, message)
	}
}

func (e *ValidationError) hasErrors() bool {
	return e != nil && len(e.FieldErrors) > 0
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
