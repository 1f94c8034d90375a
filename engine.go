package doctable

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/doctable-go/exec"
	"github.com/hugr-lab/doctable-go/plan"
	"github.com/hugr-lab/doctable-go/value"
)

// Engine is the package's facade: it wires a schema.Registry and a
// disk.Writer behind one exec.Executor, and mints the Sessions plans
// run against.
type Engine struct {
	executor *exec.Executor
}

// NewEngine builds an Engine from cfg, defaulting Allocator/Logger and
// failing with ErrInvalidConfig if Registry is nil.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Registry == nil {
		return nil, ErrInvalidConfig
	}
	mem := cfg.Allocator
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	return &Engine{executor: exec.NewExecutor(cfg.Registry, cfg.Disk, mem, cfg.Logger)}, nil
}

// NewSession mints a fresh session to execute plans against.
func (e *Engine) NewSession() *exec.Session {
	return exec.NewSession()
}

// ExecutePlan runs node to completion against sess with params bound,
// always returning a Cursor (spec.md §4.I): a failing plan surfaces as
// a Cursor with IsSuccess false rather than a Go error.
func (e *Engine) ExecutePlan(ctx context.Context, sess *exec.Session, node *plan.Node, params map[string]value.Value) *exec.Cursor {
	return e.executor.ExecutePlan(ctx, sess, node, params)
}
