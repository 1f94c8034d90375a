package doctable

import (
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/doctable-go/disk"
	"github.com/hugr-lab/doctable-go/docpath"
	"github.com/hugr-lab/doctable-go/schema"
)

// EngineConfig configures an Engine.
type EngineConfig struct {
	// Registry owns every collection's dynamic schema and columnar
	// table. REQUIRED: must not be nil.
	Registry *schema.Registry

	// Disk is the write_documents/remove_documents/read_back
	// collaborator a finished plan's root node writes through.
	// OPTIONAL: if nil, ExecutePlan never persists -- useful for
	// read-only plans in tests.
	Disk disk.Writer

	// Allocator is used when the engine converts DataChunks to Arrow
	// arrays; Vectors and DataChunks themselves hold Go values.
	// OPTIONAL: uses memory.DefaultAllocator if nil.
	Allocator memory.Allocator

	// Logger receives panic-recovery and lifecycle diagnostics.
	// OPTIONAL: uses slog.Default() if nil.
	Logger *slog.Logger
}

// NewRegistry is a convenience wrapper around schema.NewRegistry using
// spec.md §4.E's documented path-extraction defaults. Callers needing
// non-default extraction behavior should call schema.NewRegistry
// directly.
func NewRegistry() *schema.Registry {
	return schema.NewRegistry(docpath.DefaultConfig())
}
