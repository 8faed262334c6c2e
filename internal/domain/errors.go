package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrValidation   ErrorCode = "VALIDATION_ERROR"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrConflict     ErrorCode = "CONFLICT"

	// Quiz lifecycle errors
	ErrAlreadyCompleted        ErrorCode = "ALREADY_COMPLETED"
	ErrNotCompleted            ErrorCode = "NOT_COMPLETED"
	ErrGenerationFailure       ErrorCode = "GENERATION_FAILURE"
	ErrUnsupportedQuestionType ErrorCode = "UNSUPPORTED_QUESTION_TYPE"
	ErrLLMServiceError         ErrorCode = "LLM_SERVICE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// HasCode reports whether err wraps a DomainError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(ErrUnauthorized, message, nil)
}

func NewConflictError(message string) *DomainError {
	return NewError(ErrConflict, message, nil)
}

func NewAlreadyCompletedError(attemptID string) *DomainError {
	return NewError(ErrAlreadyCompleted, fmt.Sprintf("Quiz attempt %s has already been completed", attemptID), nil)
}

func NewNotCompletedError(attemptID string) *DomainError {
	return NewError(ErrNotCompleted, fmt.Sprintf("Quiz attempt %s has not been completed", attemptID), nil)
}

func NewGenerationFailureError(message string, err error) *DomainError {
	return NewError(ErrGenerationFailure, message, err)
}

func NewUnsupportedQuestionTypeError(t QuestionType) *DomainError {
	return NewError(ErrUnsupportedQuestionType, fmt.Sprintf("Unsupported question type: %q", string(t)), nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to process with LLM service", err)
}
