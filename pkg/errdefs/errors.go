// Package errdefs defines the error classes shared by the locator, prober,
// resolver and formatter.
package errdefs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a requested architecture or a
	// target list is rejected.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when the toolchain cannot be found or executed.
	ErrNotFound = errors.New("not found")
	// ErrFailedPrecondition is returned when the active filters leave nothing to build.
	ErrFailedPrecondition = errors.New("failed precondition")
	// ErrUnavailable is returned when the toolchain runs but does not report
	// any usable architecture.
	ErrUnavailable = errors.New("unavailable")
)

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsFailedPrecondition(err error) bool {
	return errors.Is(err, ErrFailedPrecondition)
}

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// Newf returns an error whose message is the formatted text alone and
// which matches kind with errors.Is. Use it for messages shown to the user
// as-is (e.g., "Requested architecture list is empty.").
// A %w verb in format is honoured as well.
func Newf(kind error, format string, args ...any) error {
	return &classifiedError{
		err:  fmt.Errorf(format, args...),
		kind: kind,
	}
}

type classifiedError struct {
	err  error
	kind error
}

func (e *classifiedError) Error() string {
	return e.err.Error()
}

func (e *classifiedError) Unwrap() []error {
	return []error{e.kind, e.err}
}
