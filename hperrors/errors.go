// Package hperrors classifies failures into errors the user can fix (bad config, failed jobs,
// failing SQL) and application errors (missing environment, unknown services).
package hperrors

import (
	"errors"
	"fmt"
)

const (
	ExitCodeUser        = 1
	ExitCodeApplication = 2
)

// UserError is an error caused by the configuration or the data the user supplied.
type UserError struct {
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// ApplicationError is an internal defect or a broken environment.
type ApplicationError struct {
	Message string
	Cause   error
}

func (e *ApplicationError) Error() string {
	return e.Message
}

func (e *ApplicationError) Unwrap() error {
	return e.Cause
}

// NewUserError formats a new *UserError.
func NewUserError(format string, args ...interface{}) error {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// WrapUserError returns a *UserError with the supplied message that keeps cause in the chain.
func WrapUserError(cause error, format string, args ...interface{}) error {
	return &UserError{Message: fmt.Sprintf(format, args...), Cause: cause}
}

// NewApplicationError formats a new *ApplicationError.
func NewApplicationError(format string, args ...interface{}) error {
	return &ApplicationError{Message: fmt.Sprintf(format, args...)}
}

// WrapApplicationError returns an *ApplicationError with the supplied message that keeps cause in the chain.
func WrapApplicationError(cause error, format string, args ...interface{}) error {
	return &ApplicationError{Message: fmt.Sprintf(format, args...), Cause: cause}
}

// userClassifier is implemented by typed errors of other packages that belong to the user error class.
type userClassifier interface {
	IsUserError() bool
}

// IsUserError returns true if any error in the chain is a *UserError or classifies itself as one.
func IsUserError(err error) bool {
	var u *UserError
	if errors.As(err, &u) {
		return true
	}
	var c userClassifier
	return errors.As(err, &c) && c.IsUserError()
}

// ExitCode maps err to the process exit status: 0 for nil, 1 for user errors and 2 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if IsUserError(err) {
		return ExitCodeUser
	}
	return ExitCodeApplication
}
