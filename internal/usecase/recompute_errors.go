package usecase

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed recompute.
type ErrorKind string

const (
	ErrorKindStore      ErrorKind = "store_failure"
	ErrorKindUnexpected ErrorKind = "unexpected_failure"
)

var (
	// ErrStoreFailure matches (errors.Is) any RecomputeError raised by a
	// retrieve, query or update call.
	ErrStoreFailure = errors.New("record store failure")
	// ErrUnexpectedFailure matches any other RecomputeError.
	ErrUnexpectedFailure = errors.New("unexpected failure")

	ErrInvalidChangeEvent        = errors.New("invalid change event")
	ErrTriggeringQuoteNotFound   = errors.New("triggering quote not found")
	ErrTriggeringQuoteInSiblings = errors.New("sibling query returned the triggering quote")
	ErrCurrencyMismatch          = errors.New("won quotes carry different currencies")
	ErrRollupTargetNotFound      = errors.New("opportunity not found")
)

// RecomputeError is the single failure surfaced to the caller of the rollup.
// The original cause stays reachable through errors.Is / errors.As.
type RecomputeError struct {
	Kind    ErrorKind
	Op      string
	QuoteID string
	Err     error
}

func (e *RecomputeError) Error() string {
	return fmt.Sprintf("won quote rollup failed for quote %q: %s: %v", e.QuoteID, e.Op, e.Err)
}

func (e *RecomputeError) Unwrap() error {
	return e.Err
}

func (e *RecomputeError) Is(target error) bool {
	switch target {
	case ErrStoreFailure:
		return e.Kind == ErrorKindStore
	case ErrUnexpectedFailure:
		return e.Kind == ErrorKindUnexpected
	}
	return false
}
