// Package apperrors defines the stable error kinds the HTTP layer maps to
// status codes.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound covers both an absent record and a record the caller is
	// not allowed to know exists.
	KindNotFound
	// KindPermissionDenied means the caller's role is insufficient.
	KindPermissionDenied
	// KindInvalidState means the operation is not legal in the record's
	// current lifecycle state.
	KindInvalidState
	// KindValidation means the input itself is malformed.
	KindValidation
)

// Error carries a kind and a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	wrapped error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// PermissionDenied builds a KindPermissionDenied error.
func PermissionDenied(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPermissionDenied, Message: fmt.Sprintf(format, args...)}
}

// InvalidState builds a KindInvalidState error.
func InvalidState(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// Validation builds a KindValidation error.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause while keeping the kind and message.
func (e *Error) Wrap(err error) *Error {
	e.wrapped = err
	return e
}

// KindOf extracts the kind from err, unwrapping as needed.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err carries KindNotFound.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
