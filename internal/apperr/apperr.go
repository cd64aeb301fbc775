// Package apperr defines the error taxonomy for the dashboard's external calls.
// Every failure of an outbound call is classified here and converted into a
// user-visible string at the orchestrator boundary; nothing in this taxonomy is
// allowed to take the process down.
package apperr

import (
	"errors"
	"fmt"
)

// Classification codes.
const (
	CodeConfigurationMissing  = "CONFIGURATION_MISSING"
	CodeAuthenticationFailure = "AUTHENTICATION_FAILURE"
	CodeRateLimited           = "RATE_LIMITED"
	CodeAPIFailure            = "API_FAILURE"
	CodeMalformedResponse     = "MALFORMED_RESPONSE"
	CodeCapabilityDenied      = "CAPABILITY_DENIED"
)

// Error carries a classification code alongside a human-readable message and,
// where relevant, the upstream HTTP status.
type Error struct {
	Code    string
	Message string
	Status  int
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for use with errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// ConfigurationMissing marks a call that was blocked before any network I/O
// because a required credential or setting is absent.
func ConfigurationMissing(message string) *Error {
	return &Error{Code: CodeConfigurationMissing, Message: message}
}

// AuthenticationFailure marks a permanent HTTP 401; it is never retried.
func AuthenticationFailure() *Error {
	return &Error{
		Code:    CodeAuthenticationFailure,
		Message: "authentication failed, check your API key",
		Status:  401,
	}
}

// RateLimited marks an HTTP 429 that survived the retry ceiling.
func RateLimited(attempts int) *Error {
	return &Error{
		Code:    CodeRateLimited,
		Message: fmt.Sprintf("rate limited after %d attempts", attempts),
		Status:  429,
	}
}

// APIFailure marks any other non-success response status.
func APIFailure(status int) *Error {
	return &Error{
		Code:    CodeAPIFailure,
		Message: fmt.Sprintf("API request failed with status %d", status),
		Status:  status,
	}
}

// MalformedResponse marks a success status whose body could not be understood.
func MalformedResponse(err error) *Error {
	return &Error{
		Code:    CodeMalformedResponse,
		Message: "could not parse provider response",
		Err:     err,
	}
}

// CapabilityDenied marks a browser/host capability (such as geolocation) that
// was refused or is unavailable.
func CapabilityDenied(capability string) *Error {
	return &Error{
		Code:    CodeCapabilityDenied,
		Message: fmt.Sprintf("%s capability unavailable or denied", capability),
	}
}

// CodeOf extracts the classification code from err, or "" when err carries none.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
