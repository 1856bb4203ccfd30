// Package errors provides sentinel errors which can wrap an underlying
// cause without going through fmt.Errorf("%w", err). A sentinel declared
// with New keeps a stable identity for errors.Is checks while still
// carrying the failure that triggered it.
package errors

import (
	stderr "errors"
)

var _ error = New("")

// New creates a sentinel error with a fixed message.
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error is an error with a stable message and an optional wrapped cause.
type Error struct {
	msg string
	err error
}

func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap returns a copy of the sentinel carrying err as its cause.
// The copy still matches the original sentinel under Is.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err}
}

// Is reports whether target matches this sentinel or its cause.
func (e *Error) Is(target error) bool {
	if other, ok := target.(*Error); ok {
		return e == other || e.msg == other.msg
	}
	return stderr.Is(e.err, target)
}

// As is a shortcut to the standard library errors.As.
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is is a shortcut to the standard library errors.Is.
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
