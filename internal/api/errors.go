package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the token was missing, expired or rejected.
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is returned for any non-success response not covered by a
// sentinel error.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// InvalidDocumentError indicates a course document that does not match the
// expected shape.
type InvalidDocumentError struct {
	Err error
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid course document: %v", e.Err)
}

func (e *InvalidDocumentError) Unwrap() error { return e.Err }

// Message returns the backend's user-facing message for err, or fallback.
func Message(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
