package services

import (
	"errors"
	"fmt"
)

// Service errors are classified so controllers can map them onto HTTP codes:
// ErrNotFound -> 404, ErrValidation -> 400, ErrConflict -> 409, anything
// else -> 500.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid input")
	ErrConflict   = errors.New("conflict")

	// ErrTransactionMissing means a bill has lost its paired transaction.
	// This is an invariant violation, never silently skipped.
	ErrTransactionMissing = errors.New("bill has no matching transaction")
)

func notFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
