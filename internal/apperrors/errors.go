// Package apperrors defines the two client-facing error kinds of the API.
// Anything that is neither a validation failure nor a missing resource is an
// internal fault and must not be reported to clients in detail.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// ValidationError reports a missing or malformed field of a request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports that a resource, or a resource within the given
// parent chain, does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found.", e.Resource) }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func Required(field string) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf("%s is required.", field)}
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}
