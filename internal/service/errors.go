package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested note does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when the store cannot honour the request in its
	// current state, such as reordering without a position column.
	ErrConflict = errors.New("conflict")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap lets callers match any ValidationError against ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// fromValidationError converts the first failed validator rule into a ValidationError.
func fromValidationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return WrapError(err, "failed to validate request")
	}

	fe := ve[0]
	field := strings.ToLower(fe.Field())

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "cannot be empty"
	case "max":
		msg = "is too long, max: " + fe.Param()
	case "min":
		msg = "is too short, min: " + fe.Param()
	case "gt":
		msg = "must be greater than " + fe.Param()
	case "unique":
		msg = "must not contain duplicates"
	default:
		msg = "is invalid"
	}
	return &ValidationError{Field: field, Message: msg}
}
