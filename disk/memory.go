package disk

import (
	"context"
	"sync"

	"github.com/hugr-lab/doctable-go/document"
	"github.com/hugr-lab/doctable-go/vector"
)

// InMemory is a reference Writer implementation backed by an
// in-process map, grounded on the teacher's own pattern of shipping an
// in-memory reference implementation alongside an interface it defines
// (catalog/static.go's StaticCatalog/SimpleTable). Used by tests and by
// callers that don't need real durability.
type InMemory struct {
	mu   sync.Mutex
	docs map[string][]document.Document // "database/collection" -> persisted rows
}

// NewInMemory creates an empty in-memory Writer.
func NewInMemory() *InMemory {
	return &InMemory{docs: make(map[string][]document.Document)}
}

func key(database, collection string) string { return database + "/" + collection }

// WriteDocuments appends chunk's or docs' rows to the in-memory log.
// InMemory only tracks document batches; a columnar chunk write is
// recorded as a row count bump with no retrievable document payload,
// since reconstructing documents from a DataChunk is schema.Storage's
// job (path decoding), not disk's.
func (m *InMemory) WriteDocuments(_ context.Context, _, database, collection string, chunk *vector.DataChunk, docs []document.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(database, collection)
	if chunk != nil {
		m.docs[k] = append(m.docs[k], make([]document.Document, chunk.Cardinality())...)
		return nil
	}
	m.docs[k] = append(m.docs[k], docs...)
	return nil
}

// RemoveDocuments is a no-op for InMemory: it has no id-indexed
// storage to tombstone against, matching its role as a minimal
// reference implementation rather than a full WAL.
func (m *InMemory) RemoveDocuments(_ context.Context, _, _, _ string, _ []string) error {
	return nil
}

// ReadBack returns whatever document batches were written for
// (database, collection).
func (m *InMemory) ReadBack(_ context.Context, _, database, collection string) ([]document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]document.Document, len(m.docs[key(database, collection)]))
	copy(out, m.docs[key(database, collection)])
	return out, nil
}
