package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP status mapping
type Kind string

const (
	// KindValidation represents missing or malformed request fields
	KindValidation Kind = "validation"
	// KindUpstreamFetch represents a listing source that is unreachable or non-2xx
	KindUpstreamFetch Kind = "upstream_fetch"
	// KindAnalysisUnavailable represents a completion service that could not be reached
	KindAnalysisUnavailable Kind = "analysis_unavailable"
	// KindAnalysisMalformed represents a completion response that was not valid structured data
	KindAnalysisMalformed Kind = "analysis_malformed"
	// KindDuplicateEmail represents a registration against an existing email
	KindDuplicateEmail Kind = "duplicate_email"
	// KindInvalidCredentials represents a failed login
	KindInvalidCredentials Kind = "invalid_credentials"
	// KindTokenMissing represents an absent or malformed Authorization header
	KindTokenMissing Kind = "token_missing"
	// KindTokenInvalid represents a token that failed signature or format checks
	KindTokenInvalid Kind = "token_invalid"
	// KindTokenExpired represents a token past its expiry
	KindTokenExpired Kind = "token_expired"
	// KindUserNotFound represents an authenticated subject with no stored record
	KindUserNotFound Kind = "user_not_found"
	// KindIncompleteProduct represents a favorite payload missing required fields
	KindIncompleteProduct Kind = "incomplete_product"
	// KindInternal represents any uncaught failure
	KindInternal Kind = "internal"
)

// Error is a classified service error
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code the kind maps to at the boundary
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindIncompleteProduct:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindTokenMissing, KindTokenExpired:
		return http.StatusUnauthorized
	case KindTokenInvalid:
		return http.StatusForbidden
	case KindUserNotFound:
		return http.StatusNotFound
	case KindDuplicateEmail:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new classified error
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new classified error wrapping a cause
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal if err carries none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
