// Package doctable implements the document-table storage and execution
// core of a hybrid document/relational database: it ingests schema-less
// JSON-shaped documents, projects them onto a dynamically evolving
// columnar table, and executes scan/filter/group-by/aggregate/insert/
// update/delete operations against that columnar representation.
//
// # Scope
//
// doctable owns the dynamic schema engine, the columnar storage layer,
// the vectorized execution engine, the update-expression tree, and the
// logical value model. It does not parse SQL, plan queries, or write to
// disk; those concerns are external collaborators reached through the
// narrow interfaces in package plan (physical plan nodes) and package
// disk (write/remove/read-back). Package document defines the read-only
// document trie the core consumes on insert.
//
// # Quick start
//
//	reg := doctable.NewRegistry()
//	writer := disk.NewInMemory()
//	eng, err := doctable.NewEngine(doctable.EngineConfig{Registry: reg, Disk: writer})
//
//	sess := eng.NewSession()
//	cur := eng.ExecutePlan(ctx, sess, insertPlan, params)
//
// reg.Get("main", "events") returns that collection's schema.Storage,
// creating it on first use; there is no separate create-collection
// call in this package -- a collection comes into being the moment a
// plan node targets it.
//
// # Architecture
//
// The package follows an interface-based design mirroring the external
// collaborators named in the specification:
//
//   - plan.Node: a resolved physical plan tree (planner is external)
//   - disk.Writer: write_documents / remove_documents / read_back
//   - document.Document: a read-only object/array/scalar trie
//
// Internally, operator.Operator nodes are composed into a tree by the
// (external) planner; exec.Executor walks that tree bottom-up, pulling
// one vector.DataChunk at a time from each child.
//
// # Memory management
//
// Vectors, values and storage columns are ordinary Go values managed by
// the garbage collector. EngineConfig.Allocator (memory.DefaultAllocator
// when nil) is handed to the executor and is used where a DataChunk is
// converted to Arrow arrays or serialized. Cursor.ChunkData returns a
// *vector.DataChunk, which needs no Release.
//
// # Logging
//
// The package uses log/slog; EngineConfig.Logger defaults to
// slog.Default() when unset.
//
// # Concurrency
//
// A single Session executes one operator tree at a time; it is not
// goroutine-safe to drive one Session concurrently from multiple
// goroutines. schema.Storage is not internally synchronized, so
// Sessions that run concurrently must target distinct collections.
package doctable
