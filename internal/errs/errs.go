// Package errs separates request errors, which are reported back to the caller
// with their own status and message, from every other failure.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidRequest is wrapped by every RequestError.
var ErrInvalidRequest = errors.New("invalid request")

// RequestError is a client-facing error carrying an HTTP status.
type RequestError struct {
	Status  int
	Message string
	Cause   error
}

// NewRequestError creates a RequestError with the given status.
func NewRequestError(status int, message string) *RequestError {
	return &RequestError{Status: status, Message: message}
}

// NewBadRequestError creates a 400 RequestError.
func NewBadRequestError(message string) *RequestError {
	return NewRequestError(http.StatusBadRequest, message)
}

// NewBadRequestErrorWithCause creates a 400 RequestError that keeps the parse failure behind it.
func NewBadRequestErrorWithCause(message string, cause error) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Message: message, Cause: cause}
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrInvalidRequest, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidRequest, e.Message)
}

func (e *RequestError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrInvalidRequest, e.Cause}
	}
	return []error{ErrInvalidRequest}
}

// AsRequestError reports whether err is, or wraps, a RequestError.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}
