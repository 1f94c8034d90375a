// Package disk defines the WAL/disk collaborator the executor writes
// through and reads back from (spec.md §6 "Collaborator: disk/WAL").
// The concrete WAL implementation is external to this module; Writer
// is the narrow, fire-and-forget-for-writes contract the executor
// drives.
package disk

import (
	"context"

	"github.com/hugr-lab/doctable-go/document"
	"github.com/hugr-lab/doctable-go/vector"
)

// Writer is the three-message contract spec.md §6 names: write,
// remove, and read-back. Writes are fire-and-forget; ReadBack is
// acknowledged with a single reply the executor resumes on (spec.md
// §5 "Suspension points").
type Writer interface {
	// WriteDocuments persists either a columnar chunk or a document
	// batch for (database, collection). Exactly one of chunk/docs is
	// non-nil.
	WriteDocuments(ctx context.Context, session, database, collection string, chunk *vector.DataChunk, docs []document.Document) error

	// RemoveDocuments tombstones the given ids on disk for
	// (database, collection).
	RemoveDocuments(ctx context.Context, session, database, collection string, ids []string) error

	// ReadBack returns the documents currently persisted for
	// (database, collection).
	ReadBack(ctx context.Context, session, database, collection string) ([]document.Document, error)
}
