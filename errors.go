package doctable

import "errors"

// Standard errors returned by the doctable package itself, distinct
// from the per-query ErrorKind taxonomy a Cursor carries (package
// exec): these surface from EngineConfig validation, not from running
// a plan.
var (
	// ErrInvalidConfig indicates EngineConfig validation failed.
	ErrInvalidConfig = errors.New("doctable: invalid engine config")
)
