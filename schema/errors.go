package schema

import (
	"errors"
	"fmt"

	"github.com/hugr-lab/doctable-go/types"
)

// ErrCollectionNotFound names a Registry miss. Registry.Lookup reports a
// miss through its bool result; no function in this module returns it.
var ErrCollectionNotFound = errors.New("schema: collection not found")

// TypeConflictError reports that a document's inferred type for a path
// disagrees with the column's existing family (spec.md §4.F step 2).
type TypeConflictError struct {
	Path     string
	Existing types.Family
	Inferred types.Family
}

func (e *TypeConflictError) Error() string {
	return fmt.Sprintf("schema: type conflict at %q: existing family %s, inferred %s", e.Path, e.Existing, e.Inferred)
}
