package storage

import "errors"

// Sentinel errors for the columnar table's append/scan/update/delete
// contract (spec.md §4.D "Failure semantics").
var (
	// ErrStorageFailure is returned by Append when a write cannot
	// complete; the caller must call RevertAppend before retrying.
	ErrStorageFailure = errors.New("storage: append failed")
	// ErrInvalidState is returned when a state-machine method is called
	// out of order (e.g. Append before InitializeAppend).
	ErrInvalidState = errors.New("storage: invalid column state transition")
	// ErrColumnNotFound is returned when a column index is out of range.
	ErrColumnNotFound = errors.New("storage: column not found")
	// ErrRowNotFound is returned by Update/Delete for an out-of-range
	// absolute row index.
	ErrRowNotFound = errors.New("storage: row not found")
)
