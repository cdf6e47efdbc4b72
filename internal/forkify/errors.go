package forkify

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds reported by the client. Match them with errors.Is.
var (
	// ErrNetwork covers transport failures and non-success HTTP statuses.
	ErrNetwork = errors.New("network error")
	// ErrNotFound is reported when the API answers 404.
	ErrNotFound = errors.New("not found")
	// ErrApplication is reported when the API signals a failure in the
	// response body even though the HTTP exchange succeeded.
	ErrApplication = errors.New("api error")
)

// APIError describes a failed exchange with the API. It unwraps to one of
// ErrNetwork, ErrNotFound or ErrApplication.
type APIError struct {
	Op         string
	StatusCode int
	Status     string
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api %s returned status %d", e.Op, e.StatusCode)
	if e.kind == ErrApplication {
		msg = fmt.Sprintf("api %s reported %s", e.Op, strings.TrimSpace(e.Status))
	}
	if m := strings.TrimSpace(e.Message); m != "" {
		msg += ": " + m
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.kind
}
