package domain

import (
	"fmt"
	"strings"
)

// ValidationError describes one problem with one request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

const (
	ErrMissingField  ErrorCode = "MISSING_FIELD"
	ErrInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrOutOfRange    ErrorCode = "OUT_OF_RANGE"
)

// ValidationErrors is returned as a single error from validators and handlers.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    ErrMissingField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    ErrInvalidFormat,
		Message: fmt.Sprintf("%s has an invalid format", field),
		Value:   value,
	}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    ErrOutOfRange,
		Message: fmt.Sprintf("%s must be between %d and %d", field, min, max),
		Value:   value,
	}
}

// NewFieldError is for rules that do not fit the other constructors.
func NewFieldError(field, message string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    ErrValidation,
		Message: message,
	}
}
