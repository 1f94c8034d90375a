package operator

import "errors"

var (
	// ErrInvalidState is returned when an operator method is called out
	// of order against the CREATED -> RUNNING -> (SUSPENDED -> RUNNING)*
	// -> EXECUTED lifecycle (spec.md §4.H).
	ErrInvalidState = errors.New("operator: invalid lifecycle state")
	// ErrMissingChild is returned when an operator is executed without
	// the child(ren) its kind requires.
	ErrMissingChild = errors.New("operator: missing required child")
	// ErrUnknownColumn is returned when a projection, group key, or
	// aggregate target names a column absent from its source chunk.
	ErrUnknownColumn = errors.New("operator: unknown column")
)
