package operator

// Aggregation wraps a Match/Group/Sort sub-tree as named children and
// surfaces whichever is outermost as its own output (spec.md §4.H
// "Aggregation"). The planner wires the actual chain -- Group's child
// is Match's FullScan+Filter, Sort's child is Group -- so Aggregation
// itself does no row processing; it exists purely so the executor has
// one named node to walk for a GROUP BY query, mirroring how a SELECT
// with only a WHERE clause is driven through Match alone.
type Aggregation struct {
	base
	Match Operator // WHERE-clause scan+filter, optional
	Group Operator // ColumnarGroup, optional
	Sort  Operator // ORDER BY over Group's output, optional
}

// NewAggregation builds an Aggregation wrapping whichever of match,
// group, sort are present (pass nil for the ones a given query omits).
func NewAggregation(match, group, sort Operator) *Aggregation {
	return &Aggregation{base: base{state: Created}, Match: match, Group: group, Sort: sort}
}

func (o *Aggregation) outermost() Operator {
	switch {
	case o.Sort != nil:
		return o.Sort
	case o.Group != nil:
		return o.Group
	default:
		return o.Match
	}
}

func (o *Aggregation) Execute(ctx *PipelineContext) error {
	if err := o.requireCreatedOrSuspended(); err != nil {
		return err
	}
	outer := o.outermost()
	if outer == nil {
		return ErrMissingChild
	}
	o.state = Running
	if err := outer.Execute(ctx); err != nil {
		return err
	}
	o.chunk = outer.Chunk()
	o.docs = outer.Documents()
	o.modified = outer.Modified()
	o.state = outer.State()
	return nil
}
