package model

import (
	"errors"
	"fmt"
)

// UnknownEntryTypeError reports a payload whose declared type is outside
// the known variant set.
type UnknownEntryTypeError struct {
	Type string
}

func (e UnknownEntryTypeError) Error() string {
	return fmt.Sprintf("unknown entry type: %q", e.Type)
}

// IsUnknownEntryType checks if an error is UnknownEntryTypeError (including wrapped errors).
func IsUnknownEntryType(err error) bool {
	var ue UnknownEntryTypeError
	return errors.As(err, &ue)
}

// InvalidTimestampError reports a timestamp field that failed parsing.
type InvalidTimestampError struct {
	Field string
	Value string
}

func (e InvalidTimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp in %s: %q", e.Field, e.Value)
}

// IsInvalidTimestamp checks if an error is InvalidTimestampError.
func IsInvalidTimestamp(err error) bool {
	var te InvalidTimestampError
	return errors.As(err, &te)
}

// ValidationError represents any other required-field problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
