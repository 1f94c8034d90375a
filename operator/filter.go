package operator

import "github.com/hugr-lab/doctable-go/expr"

// Filter applies a compiled predicate over its child's output chunk,
// producing the surviving rows as a sliced chunk (spec.md §4.H
// "Filter"). It mirrors its child's suspend/resume cadence: one
// Execute call pulls one batch from the child and filters it.
type Filter struct {
	base
	child Operator
	pred  expr.Predicate
}

// NewFilter wraps child, keeping only rows pred accepts.
func NewFilter(child Operator, pred expr.Predicate) *Filter {
	return &Filter{base: base{state: Created}, child: child, pred: pred}
}

func (o *Filter) Execute(ctx *PipelineContext) error {
	if err := o.requireCreatedOrSuspended(); err != nil {
		return err
	}
	if o.child == nil {
		return ErrMissingChild
	}
	o.state = Running
	if err := o.child.Execute(ctx); err != nil {
		return err
	}
	chunk := o.child.Chunk()
	if chunk == nil {
		o.state = o.child.State()
		return nil
	}
	var keep []int
	for row := 0; row < chunk.Cardinality(); row++ {
		ok, err := o.pred(chunk, row)
		if err != nil {
			return err
		}
		if ok {
			keep = append(keep, row)
		}
	}
	o.chunk = chunk.Slice(keep)

	switch o.child.State() {
	case Executed:
		o.state = Executed
	default:
		o.state = Suspended
	}
	return nil
}
