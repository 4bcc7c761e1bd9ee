// Package apperr defines the error taxonomy shared by the scorer, the data
// sources, and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure by who has to act on it.
type Kind string

const (
	// KindConfiguration indicates a malformed threshold table or config file.
	KindConfiguration Kind = "CONFIGURATION_ERROR"
	// KindInput indicates a missing or invalid identifier or request body.
	KindInput Kind = "INVALID_INPUT"
	// KindNotFound indicates the data source has no record for the identifier.
	KindNotFound Kind = "NOT_FOUND"
	// KindComputation indicates a statistic could not be derived.
	KindComputation Kind = "COMPUTATION_ERROR"
	// KindUpstream indicates the data source failed or returned garbage.
	KindUpstream Kind = "UPSTREAM_ERROR"
	// KindInternal is anything else.
	KindInternal Kind = "INTERNAL_ERROR"
)

// Error is a classified error with an optional underlying cause.
type Error struct {
	Kind    Kind   `json:"code"`
	Message string `json:"error"`
	cause   error
}

// New creates an Error of the given kind.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Configuration wraps a configuration error.
func Configuration(format string, args ...any) *Error {
	return New(KindConfiguration, fmt.Sprintf(format, args...), nil)
}

// Input creates an input validation error.
func Input(format string, args ...any) *Error {
	return New(KindInput, fmt.Sprintf(format, args...), nil)
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, fmt.Sprintf(format, args...), nil)
}

// Computation wraps a failure while deriving statistics.
func Computation(message string, cause error) *Error {
	return New(KindComputation, message, cause)
}

// Upstream wraps a data-source failure.
func Upstream(message string, cause error) *Error {
	return New(KindUpstream, message, cause)
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps a Kind to an HTTP status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInput:
		return http.StatusBadRequest // 400
	case KindNotFound:
		return http.StatusNotFound // 404
	case KindUpstream:
		return http.StatusBadGateway // 502
	case KindConfiguration, KindComputation, KindInternal:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError
	}
}
