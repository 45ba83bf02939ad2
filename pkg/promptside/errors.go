package promptside

import (
	"fmt"
)

// ============================================================================
// Authentication failures
// ============================================================================

// AuthFailureReason classifies why a token request failed.
type AuthFailureReason string

const (
	// AuthCredentialsRejected - the token endpoint answered 400 or 401.
	AuthCredentialsRejected AuthFailureReason = "credentials_rejected"

	// AuthConnectionError - no response was received at all.
	AuthConnectionError AuthFailureReason = "connection_error"

	// AuthServerError - the token endpoint answered with an unexpected
	// HTTP error status.
	AuthServerError AuthFailureReason = "server_error"

	// AuthBadResponse - a response was received but it lacked the expected
	// access_token field.
	AuthBadResponse AuthFailureReason = "bad_response"

	// AuthUnknown - any other unexpected condition.
	AuthUnknown AuthFailureReason = "unknown"
)

// AuthError is the terminal outcome of a failed token request. It is
// produced solely by (*Client).Authenticate; the caller decides whether to
// abort or degrade.
type AuthError struct {
	Reason  AuthFailureReason
	Message string

	// StatusCode is the token endpoint's HTTP status, or 0 when no
	// response was received.
	StatusCode int

	// Err is the underlying transport error, when there is one.
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("promptside: authentication failed (%s): %s", e.Reason, e.Message)
}

func (e *AuthError) Unwrap() error { return e.Err }

// ============================================================================
// Request failures
// ============================================================================

// TransportError is a network-level failure with no response. It is surfaced
// as-is after at most one re-authentication retry.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("promptside: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is an HTTP error response that did not carry a problem document.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("promptside: request failed with status %d", e.StatusCode)
}

// ProblemError is a structured server-reported error: an HTTP error response
// whose body was an application/problem+json document. Its message is the
// human-readable rendering of the problem's validation errors.
type ProblemError struct {
	StatusCode int
	Problem    *Problem
}

func (e *ProblemError) Error() string {
	return e.Problem.DisplayString()
}
