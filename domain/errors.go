package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error. Message is user-facing and rendered
// verbatim in the response body.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors. The ownership engine distinguishes absent resources
// from present-but-unauthorized ones; clients rely on that split.
var (
	ErrUserNotFound       = NewError(ErrCodeNotFound, "User not found")
	ErrProjectNotFound    = NewError(ErrCodeNotFound, "Project not found")
	ErrTaskNotFound       = NewError(ErrCodeNotFound, "Task not found")
	ErrDeveloperNotFound  = NewError(ErrCodeNotFound, "Developer not found or inactive")
	ErrInvalidCredentials = NewError(ErrCodeUnauthorized, "Invalid credentials")
	ErrNoToken            = NewError(ErrCodeUnauthorized, "No token")
	ErrInvalidToken       = NewError(ErrCodeUnauthorized, "Invalid token")
	ErrUserInactive       = NewError(ErrCodeUnauthorized, "User inactive")
	ErrForbidden          = NewError(ErrCodeForbidden, "Forbidden")
	ErrEmailTaken         = NewError(ErrCodeConflict, "Email already in use")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "Invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
