package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies an APIError so callers can branch without string matching.
type Kind string

const (
	KindFormat   Kind = "format"    // malformed date/time string
	KindOrder    Kind = "order"     // start time not before end time
	KindConflict Kind = "conflict"  // overlapping booking
	KindNotFound Kind = "not_found" // event or participant absent / soft-deleted
	KindInput    Kind = "input"     // malformed identifier or unknown filter
	KindInternal Kind = "internal"  // storage / infrastructure failure
)

// APIError is an expected, caller-recoverable failure carrying the HTTP
// status category it maps to. Infrastructure faults use KindInternal and are
// always surfaced, never swallowed.
type APIError struct {
	Status  int
	Kind    Kind
	Message string
	cause   error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.cause }

func New(status int, kind Kind, message string) *APIError {
	return &APIError{Status: status, Kind: kind, Message: message}
}

// NewFormat reports a malformed date or time string, naming the field.
func NewFormat(message string) *APIError {
	return New(http.StatusNotAcceptable, KindFormat, message)
}

// NewOrder reports a start time that is not strictly before the end time.
func NewOrder(message string) *APIError {
	return New(http.StatusNotAcceptable, KindOrder, message)
}

// NewConflict reports an overlapping booking.
func NewConflict(message string) *APIError {
	return New(http.StatusConflict, KindConflict, message)
}

func NewNotFound(message string) *APIError {
	return New(http.StatusNotFound, KindNotFound, message)
}

func NewInput(message string) *APIError {
	return New(http.StatusBadRequest, KindInput, message)
}

// NewInternal wraps an unexpected storage or infrastructure error.
func NewInternal(err error) *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: "internal server error",
		cause:   err,
	}
}

// From extracts an *APIError from err, wrapping unknown errors as internal.
func From(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewInternal(err)
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
