package operator

import (
	"fmt"

	"github.com/hugr-lab/doctable-go/storage"
	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/vector"
)

// DefaultBatchSize is the row capacity FullScan allocates for each
// output chunk when the caller does not request a specific size.
const DefaultBatchSize = 2048

// FullScan is the leaf scan operator (spec.md §4.H "FullScan"): it
// reads a table one batch at a time, applying an optional compiled
// Filter, and is the only operator that reads fewer than all of a
// table's columns when Projection is set ("Must read only projected
// columns").
type FullScan struct {
	base

	table      *storage.Table
	filter     storage.Filter
	projection []string // column names to read; nil means every column
	batchSize  int

	scanState *storage.ScanState
	cols      []int
	colTypes  []types.ComplexLogicalType
}

// NewFullScan builds a scan over table. projection, if non-nil,
// restricts the output chunk to those columns in that order; filter,
// if non-nil, is applied to each batch before it is surfaced.
func NewFullScan(table *storage.Table, projection []string, filter storage.Filter) *FullScan {
	return &FullScan{
		base:       base{state: Created},
		table:      table,
		filter:     filter,
		projection: projection,
		batchSize:  DefaultBatchSize,
	}
}

// Execute advances the scan by one batch. The operator reaches
// Executed once the underlying table is exhausted; until then it goes
// Running -> Suspended so the caller can pull another batch with a
// further Execute call.
func (o *FullScan) Execute(ctx *PipelineContext) error {
	if err := o.requireCreatedOrSuspended(); err != nil {
		return err
	}
	o.state = Running

	if o.scanState == nil {
		if err := o.resolveProjection(); err != nil {
			return err
		}
		o.scanState = o.table.InitializeScan()
	}

	names := make([]string, len(o.cols))
	for i, ci := range o.cols {
		names[i] = o.table.Columns()[ci].Name
	}
	chunk, err := vector.NewChunk(names, o.colTypes, o.batchSize)
	if err != nil {
		return err
	}
	more, err := o.table.ScanColumns(o.scanState, chunk, o.cols, o.filter)
	if err != nil {
		return err
	}
	o.chunk = chunk
	if more {
		o.state = Suspended
	} else {
		o.state = Executed
	}
	return nil
}

func (o *FullScan) resolveProjection() error {
	all := o.table.Columns()
	if o.projection == nil {
		o.cols = make([]int, len(all))
		o.colTypes = make([]types.ComplexLogicalType, len(all))
		for i, c := range all {
			o.cols[i] = i
			o.colTypes[i] = c.Type
		}
		return nil
	}
	o.cols = make([]int, len(o.projection))
	o.colTypes = make([]types.ComplexLogicalType, len(o.projection))
	for i, name := range o.projection {
		idx := o.table.ColumnIndex(name)
		if idx < 0 {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		o.cols[i] = idx
		o.colTypes[i] = all[idx].Type
	}
	return nil
}
