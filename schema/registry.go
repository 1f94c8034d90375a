package schema

import (
	"sync"

	"github.com/hugr-lab/doctable-go/docpath"
)

// collectionKey names one collection's schema within a database
// namespace (SPEC_FULL.md's supplemented multi-collection feature;
// spec.md's own scope is a single table).
type collectionKey struct {
	database   string
	collection string
}

// Registry holds one Storage per (database, collection) pair,
// generalizing the teacher's Catalog/Schema namespace split
// (catalog/dynamic.go) from SQL catalog objects to collections.
type Registry struct {
	mu      sync.RWMutex
	schemas map[collectionKey]*Storage
	cfg     docpath.Config
}

// NewRegistry creates an empty registry; cfg is used to seed every
// collection's Storage as it is first created.
func NewRegistry(cfg docpath.Config) *Registry {
	return &Registry{schemas: make(map[collectionKey]*Storage), cfg: cfg}
}

// Get returns the Storage for (database, collection), creating it on
// first use.
func (r *Registry) Get(database, collection string) *Storage {
	key := collectionKey{database, collection}

	r.mu.RLock()
	s, ok := r.schemas[key]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.schemas[key]; ok {
		return s
	}
	s = NewStorage(r.cfg)
	r.schemas[key] = s
	return s
}

// Lookup returns the Storage for (database, collection) without
// creating it.
func (r *Registry) Lookup(database, collection string) (*Storage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[collectionKey{database, collection}]
	return s, ok
}

// Collections returns every registered (database, collection) pair.
func (r *Registry) Collections() [][2]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([][2]string, 0, len(r.schemas))
	for k := range r.schemas {
		out = append(out, [2]string{k.database, k.collection})
	}
	return out
}

// Drop removes a single collection's Storage from the registry. It is
// a no-op if the collection was never created.
func (r *Registry) Drop(database, collection string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.schemas, collectionKey{database, collection})
}

// DropDatabase removes every collection belonging to database.
func (r *Registry) DropDatabase(database string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.schemas {
		if k.database == database {
			delete(r.schemas, k)
		}
	}
}
