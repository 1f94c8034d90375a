package operator

import (
	"sort"

	"github.com/hugr-lab/doctable-go/value"
	"github.com/hugr-lab/doctable-go/vector"
)

// SortKey names one ORDER BY key: Column is resolved against the
// child's output by name, Desc reverses its ordering.
type SortKey struct {
	Column string
	Desc   bool
}

// Sort materializes its child's full output, then orders rows by Keys
// using the value model's own ordering (spec.md §6 node kind "sort").
// Like OperatorJoin, it cannot start emitting before it has seen every
// row, so it drains its child completely before running.
type Sort struct {
	base
	child Operator
	keys  []SortKey
}

// NewSort builds a Sort ordering child's rows by keys, applied in
// order (first key is primary).
func NewSort(child Operator, keys []SortKey) *Sort {
	return &Sort{base: base{state: Created}, child: child, keys: keys}
}

func (o *Sort) Execute(ctx *PipelineContext) error {
	if err := o.requireCreatedOrSuspended(); err != nil {
		return err
	}
	if o.child == nil {
		return ErrMissingChild
	}
	o.state = Running

	chunk, err := drainAll(o.child, ctx)
	if err != nil {
		return err
	}
	if chunk == nil {
		out, err := vector.NewChunk(nil, nil, 0)
		if err != nil {
			return err
		}
		o.chunk = out
		o.state = Executed
		return nil
	}

	names := chunk.ColumnNames()
	colIdx := make([]int, len(o.keys))
	for i, k := range o.keys {
		colIdx[i] = resolveColumn(k.Column, names)
		if colIdx[i] < 0 {
			return ErrUnknownColumn
		}
	}

	order := make([]int, chunk.Cardinality())
	for i := range order {
		order[i] = i
	}
	var sortErr error
	sort.SliceStable(order, func(a, b int) bool {
		if sortErr != nil {
			return false
		}
		ra, rb := order[a], order[b]
		for i, ci := range colIdx {
			av := chunk.Column(ci).Value(ra)
			bv := chunk.Column(ci).Value(rb)
			cmp, err := value.Compare(av, bv)
			if err != nil {
				sortErr = err
				return false
			}
			if cmp == value.Equal {
				continue
			}
			less := cmp == value.Less
			if o.keys[i].Desc {
				less = !less
			}
			return less
		}
		return false
	})
	if sortErr != nil {
		return sortErr
	}

	o.chunk = chunk.Slice(order)
	o.state = Executed
	return nil
}
