package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a catalog record does not exist.
var ErrNotFound = errors.New("not found")

// ErrorCode represents a structured API error code.
type ErrorCode string

const (
	CodeValidation ErrorCode = "VALIDATION_ERROR"
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeUpstream   ErrorCode = "UPSTREAM_ERROR"
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
)

// APIError is a structured error returned by the rickdex API.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError creates a VALIDATION_ERROR APIError.
func NewValidationError(msg string) *APIError {
	return &APIError{Code: CodeValidation, Message: msg}
}

// NewNotFoundError creates a NOT_FOUND APIError.
func NewNotFoundError(resource, id string) *APIError {
	return &APIError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s '%s' not found", resource, id),
	}
}

// NewUpstreamError creates an UPSTREAM_ERROR APIError wrapping a catalog failure.
func NewUpstreamError(err error) *APIError {
	return &APIError{Code: CodeUpstream, Message: err.Error()}
}
