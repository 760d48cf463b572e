package core

import (
	"errors"
)

// Validation errors
var (
	ErrInvalidQID = errors.New("jobledger: invalid qid (must start with a letter, alphanumeric only)")
	ErrQIDTooLong = errors.New("jobledger: qid too long")
)

// Storage errors. The store wraps every failure in one of these so
// callers can decide between retrying and surfacing with errors.Is.
var (
	// ErrStorageUnavailable marks a transient storage failure. The
	// whole transition is safe to retry.
	ErrStorageUnavailable = errors.New("jobledger: storage unavailable")

	// ErrConstraintViolation marks a uniqueness or type constraint
	// failure that the transition's delete steps should have cleared.
	// It indicates a logic or schema bug and must not be retried.
	ErrConstraintViolation = errors.New("jobledger: constraint violation")
)
