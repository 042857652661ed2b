package errors

import (
	cerrors "github.com/cockroachdb/errors"
)

// This file re-exports the cockroachdb/errors constructors and inspection
// helpers so callers only need a single errors import.

// New creates an error with the given message.
func New(msg string) error {
	return cerrors.New(msg)
}

// Newf creates an error from a format string.
func Newf(format string, args ...any) error {
	return cerrors.Newf(format, args...)
}

// Wrap annotates err with a message. Returns nil if err is nil.
func Wrap(err error, msg string) error {
	return cerrors.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	return cerrors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return cerrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return cerrors.As(err, target)
}
