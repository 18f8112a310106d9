package authlane

import (
	"errors"
	"fmt"
)

// APIError is returned when the backend rejects an API call with a non-2xx
// status. Code and Message carry the backend's result envelope when the
// error body could be decoded.
type APIError struct {
	// StatusCode is the HTTP status the backend answered with.
	StatusCode int

	// Code is the backend's machine-readable result code, if any.
	Code string

	// Message is the backend's human-readable description, if any.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code == "" && e.Message == "" {
		return fmt.Sprintf("authlane: API call failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("authlane: API call failed with status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// Temporary reports whether retrying the call may succeed. Only server-side
// failures qualify; 4xx responses will fail the same way again.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500
}

// AsAPIError unwraps err into an *APIError, or returns nil when err does
// not carry one.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
