package operator

import (
	"github.com/hugr-lab/doctable-go/document"
	"github.com/hugr-lab/doctable-go/vector"
)

// RawData is a leaf source operator wrapping an already-built chunk or
// document batch (spec.md §4.H operator catalog, "RawData"). It never
// suspends: one Execute call takes it straight to Executed.
type RawData struct {
	base
}

// NewRawDataChunk wraps a pre-built DataChunk as a source operator.
func NewRawDataChunk(chunk *vector.DataChunk) *RawData {
	return &RawData{base{state: Created, chunk: chunk}}
}

// NewRawDataDocuments wraps a document batch as a source operator.
func NewRawDataDocuments(docs []document.Document) *RawData {
	return &RawData{base{state: Created, docs: docs}}
}

func (o *RawData) Execute(*PipelineContext) error {
	if err := o.requireCreatedOrSuspended(); err != nil {
		return err
	}
	o.state = Executed
	return nil
}
