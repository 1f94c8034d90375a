package operator

import (
	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/vector"
)

// concatChunks concatenates chunks (all sharing names/colTypes) into a
// single chunk. Used by operators that must materialize a child's
// entire suspend/resume output before proceeding (ColumnarGroup's
// streaming pass excepted -- it folds batches as they arrive instead).
func concatChunks(names []string, colTypes []types.ComplexLogicalType, chunks []*vector.DataChunk) (*vector.DataChunk, error) {
	total := 0
	for _, c := range chunks {
		total += c.Cardinality()
	}
	out, err := vector.NewChunk(names, colTypes, total)
	if err != nil {
		return nil, err
	}
	if err := out.SetCardinality(0); err != nil {
		return nil, err
	}
	for _, c := range chunks {
		if err := out.Append(c, false); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// drainAll pulls child to Executed, concatenating every non-empty
// batch it produces along the way (spec.md §4.H suspend/resume
// cadence: a FullScan/Filter child may surface one batch per Execute
// call until it reaches Executed).
func drainAll(child Operator, ctx *PipelineContext) (*vector.DataChunk, error) {
	var chunks []*vector.DataChunk
	var names []string
	var colTypes []types.ComplexLogicalType
	for {
		if err := child.Execute(ctx); err != nil {
			return nil, err
		}
		if c := child.Chunk(); c != nil {
			if names == nil {
				names = c.ColumnNames()
				colTypes = c.Types()
			}
			if c.Cardinality() > 0 {
				chunks = append(chunks, c)
			}
		}
		if child.State() == Executed {
			break
		}
	}
	if names == nil {
		return nil, nil
	}
	return concatChunks(names, colTypes, chunks)
}
