// Package apperr defines coded domain errors so services can signal outcomes
// without leaking transport concerns, and handlers can translate codes into
// HTTP status codes and stable response envelopes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for transport translation.
type Code string

const (
	// CodeValidation marks client-correctable field violations. The message
	// carries the joined violation list for display.
	CodeValidation Code = "validation_failed"
	// CodeDuplicate marks a registration attempt with an already-used email.
	CodeDuplicate Code = "duplicate_email"
	// CodeBadRequest marks a malformed request (bad JSON, missing ids).
	CodeBadRequest Code = "bad_request"
	// CodeUnavailable marks a dependency that could not be reached.
	CodeUnavailable Code = "unavailable"
	// CodeInternal marks unexpected failures. Clients only ever see a
	// generic message for these.
	CodeInternal Code = "internal"
)

// Error is a coded domain error. Message is safe to show to clients for
// client-correctable codes; internal details stay in the wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with a display message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and display message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// uncoded errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf extracts the display message from err. Uncoded errors get the
// generic internal message so no detail leaks to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Code != CodeInternal {
		return e.Message
	}
	return "Erro interno do servidor. Tente novamente mais tarde."
}

// ToHTTPStatus maps a code to the HTTP status the envelope is written with.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeDuplicate, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
