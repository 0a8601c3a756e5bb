package entities

import "fmt"

// Validation error codes.
const (
	CodeMissingSource = "missing-source"
	CodeInvalidCount  = "invalid-count"
	CodeCountTooLarge = "count-too-large"
	CodeNoSelection   = "no-selection"
)

// ValidationError reports user input that violates a precondition.
// It is always recoverable.
type ValidationError struct {
	Code string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Code)
}

// NewValidationError creates a ValidationError with the given code.
func NewValidationError(code string) *ValidationError {
	return &ValidationError{Code: code}
}
