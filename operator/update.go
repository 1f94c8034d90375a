package operator

import (
	"github.com/hugr-lab/doctable-go/expr"
	"github.com/hugr-lab/doctable-go/schema"
	"github.com/hugr-lab/doctable-go/storage"
	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/value"
	"github.com/hugr-lab/doctable-go/vector"
)

// Update evaluates an update-expression tree against every matched row
// (spec.md §4.H "Update"): it drives its own ScanColumnsIndexed loop
// like Delete, runs tree.Execute against an in-memory chunk cell for
// each surviving row, and diffs the row before/after to discover which
// columns the tree's Set nodes actually touched, writing only those
// back through storage.Table.Update.
type Update struct {
	base
	store  *schema.Storage
	filter storage.Filter
	tree   *expr.UpdateExpr
	params map[string]value.Value
}

// NewUpdate builds an Update operator running tree against every row
// of store's table that filter accepts (nil filter matches every row),
// with params bound for the tree's GetParam nodes.
func NewUpdate(store *schema.Storage, filter storage.Filter, tree *expr.UpdateExpr, params map[string]value.Value) *Update {
	return &Update{base: base{state: Created}, store: store, filter: filter, tree: tree, params: params}
}

func (o *Update) Execute(*PipelineContext) error {
	if err := o.requireCreatedOrSuspended(); err != nil {
		return err
	}
	o.state = Running

	table := o.store.Table()
	cols := table.Columns()
	names := make([]string, len(cols))
	colTypes := make([]types.ComplexLogicalType, len(cols))
	colIdx := make([]int, len(cols))
	colsByName := make(map[string]int, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		colTypes[i] = c.Type
		colIdx[i] = i
		colsByName[c.Name] = i
	}
	idIdx := table.ColumnIndex("_id")

	var ids []string
	var batches []*vector.DataChunk
	scanState := table.InitializeScan()
	for {
		chunk, err := vector.NewChunk(names, colTypes, DefaultBatchSize)
		if err != nil {
			o.state = Executed
			return err
		}
		absRows, more, err := table.ScanColumnsIndexed(scanState, chunk, colIdx, o.filter)
		if err != nil {
			o.state = Executed
			return err
		}
		for row, abs := range absRows {
			before := make([]value.Value, len(cols))
			for ci := range cols {
				before[ci] = chunk.Column(ci).Value(row)
			}
			ctx := &expr.EvalContext{Chunk: chunk, Row: row, Cols: colsByName, Params: o.params}
			mutated, err := o.tree.Execute(ctx)
			if err != nil {
				o.state = Executed
				return err
			}
			if !mutated {
				continue
			}
			touched := false
			for ci := range cols {
				after := chunk.Column(ci).Value(row)
				if value.Equals(before[ci], after) {
					continue
				}
				if err := table.Update(abs, ci, after); err != nil {
					o.state = Executed
					return err
				}
				touched = true
			}
			if touched && idIdx >= 0 {
				ids = append(ids, chunk.Column(idIdx).Value(row).AsString())
			}
		}
		if chunk.Cardinality() > 0 {
			batches = append(batches, chunk)
		}
		if !more {
			break
		}
	}

	out, err := concatChunks(names, colTypes, batches)
	if err != nil {
		o.state = Executed
		return err
	}
	o.chunk = out
	o.modified = &Modified{IDs: ids}
	o.state = Executed
	return nil
}
