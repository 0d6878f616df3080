// Package errs defines the error taxonomy shared by services and handlers.
// Every business failure carries a Kind so the HTTP layer can map it to a
// status code without inspecting message text.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a business error
type Kind string

const (
	// KindNotFound - the referenced entity does not exist
	KindNotFound Kind = "NOT_FOUND"
	// KindInvalidState - the entity is in the wrong status for the requested
	// transition (e.g. closing an already-closed auction)
	KindInvalidState Kind = "INVALID_STATE"
	// KindNotEligible - membership or eligibility rules reject the caller
	KindNotEligible Kind = "NOT_ELIGIBLE"
	// KindInvalidAmount - a bid or payout amount is outside the allowed range
	KindInvalidAmount Kind = "INVALID_AMOUNT"
	// KindConflict - a uniqueness or concurrency constraint was violated
	KindConflict Kind = "CONFLICT"
	// KindStoreFailure - the underlying persistence layer failed
	KindStoreFailure Kind = "STORE_FAILURE"
)

// Error is a classified business error
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error without losing the cause
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// NotFound builds a KindNotFound error
func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

// InvalidState builds a KindInvalidState error
func InvalidState(format string, args ...interface{}) *Error {
	return New(KindInvalidState, format, args...)
}

// NotEligible builds a KindNotEligible error
func NotEligible(format string, args ...interface{}) *Error {
	return New(KindNotEligible, format, args...)
}

// InvalidAmount builds a KindInvalidAmount error
func InvalidAmount(format string, args ...interface{}) *Error {
	return New(KindInvalidAmount, format, args...)
}

// Conflict builds a KindConflict error
func Conflict(format string, args ...interface{}) *Error {
	return New(KindConflict, format, args...)
}

// StoreFailure wraps a persistence error
func StoreFailure(err error) *Error {
	return &Error{Kind: KindStoreFailure, Message: "storage operation failed", Err: err}
}

// KindOf extracts the kind of err. Unclassified errors report
// KindStoreFailure, matching the propagation policy of surfacing unknown
// failures as persistence errors instead of guessing.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStoreFailure
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error kind to the HTTP status the API returns
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidState, KindConflict:
		return http.StatusConflict
	case KindNotEligible, KindInvalidAmount:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
