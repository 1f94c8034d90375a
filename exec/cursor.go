package exec

import (
	"github.com/hugr-lab/doctable-go/document"
	"github.com/hugr-lab/doctable-go/vector"
)

// Cursor is what a query exits through (spec.md §6 "CLI / session").
// Exactly one of ChunkData/DocumentData is meaningful, selected by
// UsesTableData, mirroring the teacher's own table/document split
// (catalog.Table vs document collections).
type Cursor struct {
	usesTable bool
	chunk     *vector.DataChunk
	docs      []document.Document
	modified  []string

	success bool
	errKind ErrorKind
	errMsg  string
}

// UsesTableData reports whether this cursor's rows live in ChunkData
// (true, a document-table/columns collection) or DocumentData (false,
// a document collection).
func (c *Cursor) UsesTableData() bool { return c.usesTable }

// ChunkData returns the cursor's columnar result. Only meaningful when
// UsesTableData is true.
func (c *Cursor) ChunkData() *vector.DataChunk { return c.chunk }

// DocumentData returns the cursor's document-sequence result. Only
// meaningful when UsesTableData is false.
func (c *Cursor) DocumentData() []document.Document { return c.docs }

// ModifiedIDs returns the row ids an INSERT/UPDATE/DELETE touched, or
// nil for a SELECT.
func (c *Cursor) ModifiedIDs() []string { return c.modified }

// Size returns the cursor's row count, from whichever of
// ChunkData/DocumentData is populated.
func (c *Cursor) Size() int {
	if c.usesTable {
		if c.chunk == nil {
			return 0
		}
		return c.chunk.Cardinality()
	}
	return len(c.docs)
}

// IsSuccess reports whether the query that produced this cursor
// completed without error.
func (c *Cursor) IsSuccess() bool { return c.success }

// GetError returns the failing query's error kind and a human-readable
// message. Only meaningful when IsSuccess is false.
func (c *Cursor) GetError() (ErrorKind, string) { return c.errKind, c.errMsg }

func successCursor(usesTable bool, chunk *vector.DataChunk, docs []document.Document, modified []string) *Cursor {
	return &Cursor{usesTable: usesTable, chunk: chunk, docs: docs, modified: modified, success: true}
}

func errorCursor(err error) *Cursor {
	return &Cursor{errKind: classify(err), errMsg: err.Error()}
}
