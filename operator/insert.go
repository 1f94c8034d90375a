package operator

import (
	"github.com/hugr-lab/doctable-go/document"
	"github.com/hugr-lab/doctable-go/schema"
)

// Insert appends a document batch to a collection's schema-backed
// table (spec.md §4.H "Insert"): it rewrites the batch through
// prepare_insert (schema evolution, type-conflict check, chunk fill),
// appends the resulting chunk inside one InitializeAppend/
// FinalizeAppend window, and records the synthesized row ids as
// Modified. A failure anywhere in the window reverts the partial
// append rather than leaving the table half-written.
//
// Documents are processed sequentially rather than fanned out across
// goroutines: prepare_insert mutates the collection's shared schema
// (new columns, path->index map) once per batch, and the concurrency
// model gives a collection's table to exactly one session at a time
// (spec.md §5), so there is no independent work here to parallelize.
type Insert struct {
	base
	store *schema.Storage
	docs  []document.Document
}

// NewInsert builds an Insert operator appending docs to store.
func NewInsert(store *schema.Storage, docs []document.Document) *Insert {
	return &Insert{base: base{state: Created}, store: store, docs: docs}
}

func (o *Insert) Execute(*PipelineContext) error {
	if err := o.requireCreatedOrSuspended(); err != nil {
		return err
	}
	o.state = Running

	ids, chunk, err := o.store.PrepareInsert(o.docs)
	if err != nil {
		o.state = Executed
		return err
	}

	table := o.store.Table()
	if err := table.InitializeAppend(); err != nil {
		o.state = Executed
		return err
	}
	if err := table.Append(chunk); err != nil {
		table.RevertAppend()
		o.state = Executed
		return err
	}
	if err := table.FinalizeAppend(); err != nil {
		o.state = Executed
		return err
	}

	o.chunk = chunk
	o.modified = &Modified{IDs: ids}
	o.state = Executed
	return nil
}
