package operator

import (
	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/vector"
)

// JoinPredicate decides whether left's lrow qualifies against right's
// rrow. Unlike expr.Predicate (single chunk, single row), a join
// predicate straddles two independently materialized chunks, so it
// gets its own narrow function type rather than forcing an expr.Compile
// caller to fuse rows together before every comparison.
type JoinPredicate func(left *vector.DataChunk, lrow int, right *vector.DataChunk, rrow int) (bool, error)

// OperatorJoin emits one combined row per qualifying (left-row,
// right-row) pair (spec.md §4.H "OperatorJoin"). Both children are
// materialized in full before the nested-loop match pass runs: neither
// side's cardinality is known up front, and the predicate may reference
// either side's columns in either position.
type OperatorJoin struct {
	base
	left, right Operator
	pred        JoinPredicate
}

// NewOperatorJoin builds a join of left and right, keeping row pairs
// pred accepts.
func NewOperatorJoin(left, right Operator, pred JoinPredicate) *OperatorJoin {
	return &OperatorJoin{base: base{state: Created}, left: left, right: right, pred: pred}
}

func (o *OperatorJoin) Execute(ctx *PipelineContext) error {
	if err := o.requireCreatedOrSuspended(); err != nil {
		return err
	}
	if o.left == nil || o.right == nil {
		return ErrMissingChild
	}
	o.state = Running

	left, err := drainAll(o.left, ctx)
	if err != nil {
		return err
	}
	right, err := drainAll(o.right, ctx)
	if err != nil {
		return err
	}
	if left == nil || right == nil {
		out, err := vector.NewChunk(nil, nil, 0)
		if err != nil {
			return err
		}
		o.chunk = out
		o.state = Executed
		return nil
	}

	var matched []*vector.DataChunk
	for i := 0; i < left.Cardinality(); i++ {
		for j := 0; j < right.Cardinality(); j++ {
			ok, err := o.pred(left, i, right, j)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			lrow := left.Slice([]int{i})
			rrow := right.Slice([]int{j})
			if err := lrow.Fuse(rrow); err != nil {
				return err
			}
			matched = append(matched, lrow)
		}
	}

	names := append(append([]string(nil), left.ColumnNames()...), right.ColumnNames()...)
	colTypes := append(append([]types.ComplexLogicalType(nil), left.Types()...), right.Types()...)
	out, err := concatChunks(names, colTypes, matched)
	if err != nil {
		return err
	}
	o.chunk = out
	o.state = Executed
	return nil
}
