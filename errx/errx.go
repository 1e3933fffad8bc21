package errx

import (
	"errors"
	"net/http"
)

// Kind classifies a user-facing failure.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindTransport      Kind = "transport"
	KindLogicalFailure Kind = "logical_failure"
	KindAuth           Kind = "auth"
)

// UnexpectedMessage is shown when an error carries no usable message.
const UnexpectedMessage = "An unexpected error occurred"

// Error wraps an underlying error with a kind, an HTTP status and a message
// that is safe to show to the user.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

// Error returns the user-facing message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func New(kind Kind, status int, message string, err error) *Error {
	return &Error{Kind: kind, Status: status, Message: message, Err: err}
}

// Validation reports input rejected before any request was sent.
func Validation(message string) *Error {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

// Transport reports a network failure, a non-2xx status or an undecodable body.
func Transport(message string, err error) *Error {
	return New(KindTransport, http.StatusBadGateway, message, err)
}

// Logical reports a well-formed upstream response with success=false.
func Logical(message string) *Error {
	return New(KindLogicalFailure, http.StatusUnprocessableEntity, message, nil)
}

func Unauthorized(message string) *Error {
	return New(KindAuth, http.StatusUnauthorized, message, nil)
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusOf returns the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Message turns any error into display text. A nil error or one without a
// message yields UnexpectedMessage.
func Message(err error) string {
	if err == nil {
		return UnexpectedMessage
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			return e.Message
		}
		return UnexpectedMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnexpectedMessage
}
