// Package apperr holds the error taxonomy shared by every request stage.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	MissingField      Kind = "missing_field"
	InvalidInput      Kind = "invalid_input"
	Unauthorized      Kind = "unauthorized"
	RateLimited       Kind = "rate_limited"
	NotFound          Kind = "not_found"
	MethodNotAllowed  Kind = "method_not_allowed"
	UpstreamError     Kind = "upstream_error"
	UnexpectedFailure Kind = "unexpected_failure"
)

// Error is a classified failure. Msg and Details are safe to show to callers;
// Err is the internal cause and is only ever logged.
type Error struct {
	Kind    Kind
	Msg     string
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg, details string) *Error {
	return &Error{Kind: kind, Msg: msg, Details: details}
}

func Wrap(kind Kind, msg, details string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Details: details, Err: err}
}

func Missing(field string) *Error {
	return New(MissingField, "Missing required field", fmt.Sprintf("The '%s' field is required", field))
}

// Status maps a kind to its HTTP status code.
func Status(k Kind) int {
	switch k {
	case MissingField, InvalidInput:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case RateLimited:
		return http.StatusTooManyRequests
	case NotFound:
		return http.StatusNotFound
	case MethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// From classifies any error. Unclassified errors become UnexpectedFailure
// with a generic message so no internal text reaches the caller.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Wrap(UnexpectedFailure, "Internal Server Error", "An unexpected error occurred. Please try again later.", err)
}

func KindOf(err error) Kind {
	return From(err).Kind
}
