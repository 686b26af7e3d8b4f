package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every InvalidInputError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrConflict is matched by every ConflictError.
	ErrConflict = errors.New("conflict")
)

// InvalidInputError reports malformed arguments. It is always returned before
// any request is made.
type InvalidInputError struct {
	Op     string
	Reason string
}

// Error prefixes the reason with the operation when one is set.
func (e *InvalidInputError) Error() string {
	if e.Op == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("%s: invalid input: %s", e.Op, e.Reason)
}

// Is matches ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(op, format string, args ...any) error {
	return &InvalidInputError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError is returned by network clients when an object does not exist.
type NotFoundError struct {
	Kind Kind
	ID   string
}

// Error names the kind and, when known, the id.
func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError is returned by network clients when a playlist mutation is
// rejected because SnapshotID is stale. Callers re-fetch the playlist and try
// again.
type ConflictError struct {
	PlaylistID string
	SnapshotID string
	Err        error
}

// Error names the playlist and the rejected snapshot.
func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("playlist %s: snapshot %q is stale", e.PlaylistID, e.SnapshotID)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches ErrConflict.
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// Unwrap returns the rejection reported by the API.
func (e *ConflictError) Unwrap() error { return e.Err }
