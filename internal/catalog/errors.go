package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownQuery is returned when a query name is not in the catalog.
	ErrUnknownQuery = errors.New("unknown query")
	// ErrUnpairedCells means a row carried a different number of latitude and longitude
	// versions. It breaks the ingestion contract and is not recoverable.
	ErrUnpairedCells = errors.New("unpaired location cells")

	errInvalidSpec = errors.New("invalid read specification")
	errMissingKey  = errors.New("missing search key")
)

// Error wraps a sentinel error with additional context
type Error struct {
	err     error  // The underlying sentinel error
	context string // Additional error context
}

// Error satisfies the error interface
func (e *Error) Error() string {
	if e.context == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %s", e.err.Error(), e.context)
}

// Unwrap implements the errors.Unwrap interface for compatibility with errors.Is/As
func (e *Error) Unwrap() error {
	return e.err
}

// newError creates a new catalog error with context
func newError(err error, format string, args ...interface{}) *Error {
	return &Error{
		err:     err,
		context: fmt.Sprintf(format, args...),
	}
}
