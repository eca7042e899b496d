package vector

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch matches any *DimensionMismatchError via errors.Is.
	ErrDimensionMismatch = errors.New("vector: dimension mismatch")

	// ErrPersistence matches any *PersistenceError via errors.Is.
	ErrPersistence = errors.New("vector: persistence failure")

	// ErrDuplicateID is returned by stores configured to reject duplicate ids.
	ErrDuplicateID = errors.New("vector: duplicate id")
)

// DimensionMismatchError reports two vectors of different lengths meeting in
// a similarity computation or a store configured with a fixed dimension.
type DimensionMismatchError struct {
	Expected int
	Actual   int
	// ID is the stored record involved, when known.
	ID string
}

func (e *DimensionMismatchError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("vector: dimension mismatch for record %q: expected %d, got %d", e.ID, e.Expected, e.Actual)
	}
	return fmt.Sprintf("vector: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }

// PersistenceError reports that durable storage could not be read, written or
// parsed. Op is "load" or "save"; Location names the file, table or object.
//
// The underlying error can be accessed via errors.Unwrap.
type PersistenceError struct {
	Op       string
	Location string
	Err      error
}

func (e *PersistenceError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("vector: %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("vector: %s %s failed: %v", e.Op, e.Location, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is reports whether target is ErrPersistence.
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// NewPersistenceError wraps err, leaving nil and already wrapped errors as is.
func NewPersistenceError(op, location string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Location: location, Err: err}
}
