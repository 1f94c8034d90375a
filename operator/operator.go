// Package operator implements the pipeline operator catalog the
// executor composes into a physical plan: RawData, FullScan, Filter,
// Insert, Delete, Update, ColumnarGroup, Aggregation and OperatorJoin
// (spec.md §4.H "Operators and pipeline").
package operator

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/doctable-go/document"
	"github.com/hugr-lab/doctable-go/vector"
)

// State is one stage of an operator's lifecycle.
type State int

const (
	Created State = iota
	Running
	Suspended
	Executed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Executed:
		return "executed"
	default:
		return "unknown"
	}
}

// PipelineContext carries the resources an operator's on_execute call
// may need across one or more suspend/resume cycles: the allocator
// backing any chunk it builds, and a cancellation flag the executor
// sets once a session is torn down.
type PipelineContext struct {
	Mem       memory.Allocator
	Cancelled bool
}

// Modified tracks the row identifiers an Insert, Delete or Update
// operator touched, surfaced to the executor for root-level disk
// notification (spec.md §4.I "root finalization").
type Modified struct {
	IDs []string
}

// Operator is the common contract every pipeline node satisfies.
// Output is read through Chunk or Documents depending on the data
// format the operator produces; only one is populated for a given
// operator kind. Modified is non-nil only for Insert/Delete/Update.
type Operator interface {
	State() State
	Chunk() *vector.DataChunk
	Documents() []document.Document
	Modified() *Modified

	// Execute advances the operator. A single-shot operator (Insert,
	// Delete, Update, ColumnarGroup, OperatorJoin) runs to Executed in
	// one call. FullScan and Filter may return with state Suspended, meaning the
	// output chunk holds one batch and a further Execute call resumes
	// scanning where it left off; the caller re-invokes Execute until
	// state reaches Executed.
	Execute(ctx *PipelineContext) error
}

// base implements the State/Chunk/Documents/Modified accessors shared
// by every concrete operator; each operator embeds it and implements
// Execute.
type base struct {
	state    State
	chunk    *vector.DataChunk
	docs     []document.Document
	modified *Modified
}

func (b *base) State() State                      { return b.state }
func (b *base) Chunk() *vector.DataChunk           { return b.chunk }
func (b *base) Documents() []document.Document     { return b.docs }
func (b *base) Modified() *Modified                { return b.modified }
func (b *base) requireCreatedOrSuspended() error {
	if b.state != Created && b.state != Suspended {
		return ErrInvalidState
	}
	return nil
}
