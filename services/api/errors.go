package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy surfaced by the REST client. Every *APIError unwraps to one of these.
var (
	ErrAuthExpired        = errors.New("session expired")
	ErrForbidden          = errors.New("permission denied")
	ErrConflict           = errors.New("conflict")
	ErrValidationFailed   = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrServerError        = errors.New("server error")
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRequestFailed      = errors.New("request failed")
)

// ErrUnauthenticated is the booking workflow's name for an expired or missing token.
var ErrUnauthenticated = ErrAuthExpired

// APIError describes a failed backend call.
type APIError struct {
	Kind    error
	Status  int
	Method  string
	Path    string
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	switch {
	case e.Status == 0 && e.Cause != nil:
		return fmt.Sprintf("%s %s: %v: %v", e.Method, e.Path, e.Kind, e.Cause)
	case e.Message != "":
		return fmt.Sprintf("%s %s: %d %v: %s", e.Method, e.Path, e.Status, e.Kind, e.Message)
	default:
		return fmt.Sprintf("%s %s: %d %v", e.Method, e.Path, e.Status, e.Kind)
	}
}

func (e *APIError) Unwrap() error { return e.Kind }

// kindForStatus maps an HTTP status onto the taxonomy.
func kindForStatus(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return ErrValidationFailed
	case status == http.StatusUnauthorized:
		return ErrAuthExpired
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status >= 500:
		return ErrServerError
	}
	return ErrRequestFailed
}

// ServerMessage returns the backend's message for err, if any.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// UserMessage renders the user-facing text for an error in the taxonomy.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrAuthExpired):
		return "Session expired. Please login again."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password. Please check your credentials."
	case errors.Is(err, ErrForbidden):
		return "You don't have permission to perform this action."
	case errors.Is(err, ErrConflict):
		return "Time slot already booked. Please choose another slot."
	case errors.Is(err, ErrValidationFailed):
		if msg := ServerMessage(err); msg != "" {
			return "Bad request: " + msg
		}
		return "Bad request: Please check your input"
	case errors.Is(err, ErrNotFound):
		return "Data not available yet."
	case errors.Is(err, ErrServerError):
		return "Server error. Please try again later."
	case errors.Is(err, ErrNetworkUnavailable):
		return "Network error. Please check your connection and try again."
	}
	if msg := ServerMessage(err); msg != "" {
		return "Error: " + msg
	}
	return "Error: Please try again"
}
