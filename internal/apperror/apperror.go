// Package apperror defines the coded error type shared by the engine, the store and the HTTP layer.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for the transport layer.
type Code string

// Error codes
const (
	CodeUnauthorized   Code = "unauthorized"
	CodeForbidden      Code = "forbidden"
	CodeNotFound       Code = "not_found"
	CodeValidation     Code = "validation"
	CodeConflict       Code = "conflict"
	CodeAccountBlocked Code = "account_blocked"
	CodeUpstream       Code = "upstream_failure"
	CodeRetryRequired  Code = "retry_required"
	CodeInternal       Code = "internal"
)

// Error is an error with a Code, a user facing message and optional details
// that are copied into the response body.
type Error struct {
	Code    Code
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a coded error wrapping err (which may be nil).
func NewError(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// WithDetail returns e with key set in its details.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NotFound is a shorthand for NewError(CodeNotFound, message, nil).
func NotFound(message string) *Error {
	return NewError(CodeNotFound, message, nil)
}

// Validation is a shorthand for NewError(CodeValidation, message, nil).
func Validation(message string) *Error {
	return NewError(CodeValidation, message, nil)
}

// As extracts the *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// HTTPStatus maps an error to the status code the API answers with.
// Errors without a code are internal.
func HTTPStatus(err error) int {
	appErr, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden, CodeAccountBlocked:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
