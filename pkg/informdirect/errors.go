package informdirect

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an Error.
type ErrorKind int

const (
	// KindAPI is a non-success response from a portfolio endpoint, or a
	// client-side rejection with status 0.
	KindAPI ErrorKind = iota
	// KindAuthentication is a failure to obtain or recover a token pair.
	KindAuthentication
	// KindValidation is an argument rejected before any request was sent.
	KindValidation
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindAuthentication:
		return "authentication"
	case KindValidation:
		return "validation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned for every failure the API or the client reports about a
// call. Transport failures are returned as wrapped network errors instead.
type Error struct {
	Kind ErrorKind
	// Status is the HTTP status code, or 0 for failures detected client side.
	Status  int
	Message string
	// Body is the decoded JSON error body when it parsed, otherwise the raw text.
	Body any
	// Cause is the underlying failure, set when recovery from a 401 failed.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewAPIError creates an API error.
func NewAPIError(status int, message string, body any) *Error {
	return &Error{Kind: KindAPI, Status: status, Message: message, Body: body}
}

// NewAuthenticationError creates an authentication error.
func NewAuthenticationError(status int, message string, body any, cause error) *Error {
	return &Error{Kind: KindAuthentication, Status: status, Message: message, Body: body, Cause: cause}
}

// NewValidationError creates a client-side validation error with status 0.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired     = errors.New("config is required")
	ErrAPIKeyRequired     = errors.New("API key is required")
	ErrInsecureBaseURL    = errors.New("base URL must use HTTPS")
	ErrInvalidConfig      = errors.New("invalid config")
	ErrUnknownEnvironment = errors.New("unknown environment")
	ErrNoRefreshToken     = errors.New("no refresh token available")
)

// AsError extracts an *Error from err.
func AsError(err error) (*Error, bool) {
	var idErr *Error
	if errors.As(err, &idErr) {
		return idErr, true
	}

	return nil, false
}

// IsAuthentication checks if the error is an authentication error.
func IsAuthentication(err error) bool {
	idErr, ok := AsError(err)

	return ok && idErr.Kind == KindAuthentication
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	idErr, ok := AsError(err)

	return ok && idErr.Kind == KindValidation
}

// IsClientSide checks if the error was raised without a server response.
func IsClientSide(err error) bool {
	idErr, ok := AsError(err)

	return ok && idErr.Status == 0
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	idErr, ok := AsError(err)
	if !ok {
		return 0
	}

	return idErr.Status
}
