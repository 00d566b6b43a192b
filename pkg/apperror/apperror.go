// Package apperror defines the application error taxonomy shared by services
// and the HTTP layer. Services return coded errors; transport maps codes to
// status codes without inspecting messages.
package apperror

import (
	"errors"
	"fmt"
)

const (
	CodeInvalid      = "invalid"
	CodeNotFound     = "not_found"
	CodeInvalidState = "invalid_state"
	CodeConflict     = "conflict"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeInternal     = "internal"
)

type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and caller-safe message to an underlying cause.
func Wrap(err error, code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Code extracts the taxonomy code; unrecognized errors are internal.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Message returns the caller-safe message. Internal failures get a generic
// message so implementation details never leak to clients.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Code != CodeInternal {
		return e.Message
	}
	return "internal server error"
}
