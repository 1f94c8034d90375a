package operator

import (
	"github.com/hugr-lab/doctable-go/schema"
	"github.com/hugr-lab/doctable-go/storage"
	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/vector"
)

// Delete resolves target rows via a table-level scan, tombstones them,
// and records the deleted "_id"s (spec.md §4.H "Delete"). Unlike
// Filter, Delete must recover each surviving row's absolute physical
// row index to hand to storage.Table.Delete, so it drives
// storage.Table.ScanColumnsIndexed itself rather than composing a
// child FullScan operator.
type Delete struct {
	base
	store  *schema.Storage
	filter storage.Filter
}

// NewDelete builds a Delete operator over store's table, tombstoning
// every surviving row filter accepts (nil filter deletes every row).
func NewDelete(store *schema.Storage, filter storage.Filter) *Delete {
	return &Delete{base: base{state: Created}, store: store, filter: filter}
}

// Execute runs to completion in one call: Delete never suspends since
// it owns its own internal scan loop rather than yielding per batch.
func (o *Delete) Execute(*PipelineContext) error {
	if err := o.requireCreatedOrSuspended(); err != nil {
		return err
	}
	o.state = Running

	table := o.store.Table()
	cols := table.Columns()
	names := make([]string, len(cols))
	colTypes := make([]types.ComplexLogicalType, len(cols))
	colIdx := make([]int, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		colTypes[i] = c.Type
		colIdx[i] = i
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
		for i, abs := range absRows {
			if idIdx >= 0 {
				ids = append(ids, chunk.Column(idIdx).Value(i).AsString())
			}
			if err := table.Delete(abs); err != nil {
				o.state = Executed
				return err
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
