package errors

import (
	"errors"
	"net/http"
)

// Kind classifies an Exception. A Kind is itself an error so callers can
// match a whole class with errors.Is(err, KindConflict).
type Kind string

const (
	KindValidation        Kind = "validation_error"
	KindNotFound          Kind = "not_found"
	KindAuthorization     Kind = "authorization_error"
	KindConflict          Kind = "conflict"
	KindConcurrency       Kind = "concurrency_error"
	KindInvalidTransition Kind = "invalid_transition"
	KindTimeout           Kind = "timeout"
)

func (k Kind) Error() string {
	return string(k)
}

type Exception struct {
	Kind       Kind
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func (e *Exception) Is(target error) bool {
	if k, ok := target.(Kind); ok {
		return e.Kind == k
	}
	return false
}

func newException(kind Kind, message string) *Exception {
	return &Exception{
		Kind:       kind,
		Message:    message,
		StatusCode: statusFor(kind),
	}
}

func statusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindConflict, KindConcurrency:
		return http.StatusConflict
	case KindInvalidTransition:
		return http.StatusUnprocessableEntity
	case KindTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// KindOf returns the kind of the first Exception in err's chain, or "" for
// errors that did not originate in the core.
func KindOf(err error) Kind {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// Retryable reports whether the caller may safely resubmit the operation.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindConcurrency, KindTimeout:
		return true
	}
	return false
}
