package raffle

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("drawing name already in use")
	ErrInvalidState  = errors.New("operation not allowed in current state")
	ErrEmptyPool     = errors.New("no eligible entries")
	ErrAlreadyDrawn  = errors.New("winner already drawn")
	ErrDenied        = errors.New("permission denied")
)

// PersistenceError wraps a gateway failure. The operation that hit it was
// aborted before any in-memory change.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
