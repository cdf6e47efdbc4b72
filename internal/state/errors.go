package state

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned by LoadSearchResults for a blank query.
	ErrEmptyQuery = errors.New("search query is empty")
	// ErrSuperseded is returned when a newer request of the same kind was
	// issued while this one was in flight. Its result is discarded.
	ErrSuperseded = errors.New("request superseded")
	// ErrValidation is the kind every *ValidationError unwraps to.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports malformed upload input.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
