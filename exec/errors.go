// Package exec implements the executor: it receives a physical plan,
// walks its sub-plans bottom-up, mediates disk writes, and surfaces a
// Cursor to the caller (spec.md §4.I).
package exec

import (
	"errors"

	"github.com/hugr-lab/doctable-go/docpath"
	"github.com/hugr-lab/doctable-go/expr"
	"github.com/hugr-lab/doctable-go/schema"
	"github.com/hugr-lab/doctable-go/storage"
	"github.com/hugr-lab/doctable-go/value"
)

// ErrorKind is the cursor-facing error taxonomy of spec.md §7.
type ErrorKind int

const (
	OtherError ErrorKind = iota
	TypeMismatch
	TypeConflict
	SchemaLimitExceeded
	InvalidExpression
	CollectionDropped
	CreatePhysicalPlanError
	StorageFailure
	BindErrorKind
)

func (k ErrorKind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case TypeConflict:
		return "TypeConflict"
	case SchemaLimitExceeded:
		return "SchemaLimitExceeded"
	case InvalidExpression:
		return "InvalidExpression"
	case CollectionDropped:
		return "CollectionDropped"
	case CreatePhysicalPlanError:
		return "CreatePhysicalPlanError"
	case StorageFailure:
		return "StorageFailure"
	case BindErrorKind:
		return "BindError"
	default:
		return "OtherError"
	}
}

// Sentinel errors for the executor's own failure modes (spec.md §7);
// every other kind is classified from the sub-package error it wraps
// (schema.TypeConflictError, docpath.ErrSchemaLimitExceeded,
// expr.ErrInvalidExpression, storage.ErrStorageFailure).
var (
	ErrCollectionDropped  = errors.New("exec: collection dropped before plan ran")
	ErrCreatePhysicalPlan = errors.New("exec: planner returned no physical plan")
	ErrBind               = errors.New("exec: finalize called before all parameters bound")
)

// classify maps an error surfaced from anywhere in the operator tree to
// its spec.md §7 ErrorKind, so the cursor can carry a typed kind
// alongside its human-readable message.
func classify(err error) ErrorKind {
	var conflict *schema.TypeConflictError
	switch {
	case err == nil:
		return OtherError
	case errors.As(err, &conflict):
		return TypeConflict
	case errors.Is(err, docpath.ErrSchemaLimitExceeded):
		return SchemaLimitExceeded
	case errors.Is(err, expr.ErrInvalidExpression):
		return InvalidExpression
	case errors.Is(err, storage.ErrStorageFailure):
		return StorageFailure
	case errors.Is(err, ErrCollectionDropped):
		return CollectionDropped
	case errors.Is(err, ErrCreatePhysicalPlan):
		return CreatePhysicalPlanError
	case errors.Is(err, ErrBind):
		return BindErrorKind
	case errors.Is(err, value.ErrTypeMismatch):
		return TypeMismatch
	default:
		return OtherError
	}
}
