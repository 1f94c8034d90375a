package exec

import (
	"github.com/hugr-lab/doctable-go/document"
	"github.com/hugr-lab/doctable-go/expr"
	"github.com/hugr-lab/doctable-go/operator"
	"github.com/hugr-lab/doctable-go/value"
	"github.com/hugr-lab/doctable-go/vector"
)

// The payload types below are the concrete shapes a planner must put
// in plan.Node.Payload for Executor.build to recognize, one per
// plan.Kind that carries kind-specific detail beyond Target/Children/
// Columns. plan itself stays agnostic of these types to avoid an
// import cycle (plan.Node.Payload is `any`); this is where that
// contract gets a name.

// InsertPayload is the plan.Insert node payload: the document batch to
// append.
type InsertPayload struct {
	Docs []document.Document
}

// MatchPayload is the plan.Select/plan.Match/plan.Delete node payload
// carrying an optional WHERE-clause predicate tree and any query
// parameters the predicate's ParameterID references need beyond
// the ones ExecutePlan's own params already bind.
type MatchPayload struct {
	Filter *expr.CompareExpr
	Params map[string]value.Value
}

// UpdatePayload is the plan.Update node payload: the update-expression
// tree to run against every matched row, plus the same optional
// WHERE-clause filter a plan.Delete node carries (an UPDATE node has
// no separate Match child; its own payload folds the two together).
type UpdatePayload struct {
	Tree   *expr.UpdateExpr
	Filter *expr.CompareExpr
	Params map[string]value.Value
}

// GroupPayload is the plan.Group node payload: the GROUP BY key
// columns and aggregate specs.
type GroupPayload struct {
	KeyColumns []string
	Aggs       []operator.AggSpec
}

// SortPayload is the plan.Sort node payload: the ORDER BY key list,
// evaluated in order (first key primary).
type SortPayload struct {
	Keys []operator.SortKey
}

// JoinPayload is the plan.Join node payload: the predicate deciding
// which (left-row, right-row) pairs qualify.
type JoinPayload struct {
	Pred operator.JoinPredicate
}

// RawDataPayload is the plan.Data/plan.RawData node payload: an
// already-built chunk or document batch to surface verbatim. Exactly
// one of Chunk/Docs should be set.
type RawDataPayload struct {
	Chunk *vector.DataChunk
	Docs  []document.Document
}
