// Package apperrors defines the error type the centralized HTTP error
// translator knows how to render.
package apperrors

import (
	"fmt"
	"net/http"
)

// APIError is a failure with a known HTTP mapping. Anything else that
// reaches the translator becomes a 500.
type APIError struct {
	Status  int
	Message string
	Errors  []string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Validation is a 400 carrying field-level messages.
func Validation(errs []string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Message: "Validation failed",
		Errors:  errs,
	}
}

// BadRequest is a 400 with a single message and no field details.
func BadRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}
