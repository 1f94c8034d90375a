package exec

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/doctable-go/disk"
	"github.com/hugr-lab/doctable-go/expr"
	"github.com/hugr-lab/doctable-go/internal/recovery"
	"github.com/hugr-lab/doctable-go/operator"
	"github.com/hugr-lab/doctable-go/plan"
	"github.com/hugr-lab/doctable-go/schema"
	"github.com/hugr-lab/doctable-go/storage"
	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/value"
	"github.com/hugr-lab/doctable-go/vector"
)

// Executor receives a resolved physical plan, builds its matching
// operator tree, drives it to completion and mediates the root-level
// disk write, surfacing a Cursor either way (spec.md §4.I "Plan
// execution"). One Executor is shared across every session; per-call
// state (the operator tree, its error boxes) lives in a buildCtx
// scoped to one ExecutePlan call.
type Executor struct {
	Registry *schema.Registry
	Disk     disk.Writer
	Mem      memory.Allocator
	Logger   *slog.Logger
}

// NewExecutor builds an Executor over reg, writing through w (nil
// disables the root-level disk write, useful for read-only plans in
// tests). A nil logger falls back to slog.Default.
func NewExecutor(reg *schema.Registry, w disk.Writer, mem memory.Allocator, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{Registry: reg, Disk: w, Mem: mem, Logger: logger}
}

// errBox carries a deferred error out of a storage.Filter closure,
// since storage.Filter itself (func(*vector.DataChunk) []int) has no
// room to return one; the executor checks every errBox registered
// during a build once the operator it feeds has run to completion.
type errBox struct{ err error }

// buildCtx threads the query's bound parameters and any errBoxes a
// table-level filter registers through one ExecutePlan call's build
// pass, without Executor itself holding per-call mutable state.
type buildCtx struct {
	params   map[string]value.Value
	errBoxes []*errBox
}

// ExecutePlan runs node to completion against sess, returning a Cursor
// whether it succeeds or fails -- callers never receive a raw error
// (spec.md §4.I "Any exception out of an operator is caught and
// converted to a cursor carrying OtherError"). A panic anywhere in the
// build/execute path is recovered the same way.
func (e *Executor) ExecutePlan(ctx context.Context, sess *Session, node *plan.Node, params map[string]value.Value) *Cursor {
	cur, err := recovery.RecoverToValue(e.Logger, "ExecutePlan", func() (*Cursor, error) {
		return e.run(ctx, sess, node, params), nil
	})
	if err != nil {
		sess.Clear()
		return errorCursor(err)
	}
	return cur
}

func (e *Executor) run(ctx context.Context, sess *Session, node *plan.Node, params map[string]value.Value) *Cursor {
	if node == nil {
		sess.Clear()
		return errorCursor(ErrCreatePhysicalPlan)
	}

	bc := &buildCtx{params: params}
	op, err := e.build(node, bc)
	if err != nil {
		sess.Clear()
		return errorCursor(err)
	}

	pctx := &operator.PipelineContext{Mem: e.Mem}
	for {
		select {
		case <-ctx.Done():
			pctx.Cancelled = true
		default:
		}

		runErr := recovery.RecoverToError(e.Logger, "Execute", func() error {
			return op.Execute(pctx)
		})
		if runErr != nil {
			sess.Clear()
			return errorCursor(runErr)
		}
		if op.State() != operator.Suspended {
			break
		}

		// Park the continuation under a resume token and take it back
		// immediately: this module's single-actor-per-session contract
		// (spec.md §5 "Scheduling model") never has an async disk reply
		// to wait for, so the round trip through Session just exercises
		// the same resume-record mechanic a multi-actor deployment would
		// drive asynchronously.
		token := sess.ID.String()
		sess.RegisterResume(token, pctx, op)
		rctx, rop, ok := sess.TakeResume(token)
		if !ok {
			sess.Clear()
			return errorCursor(fmt.Errorf("exec: lost resume record for session %s", sess.ID))
		}
		pctx, op = rctx, rop
	}

	for _, box := range bc.errBoxes {
		if box.err != nil {
			sess.Clear()
			return errorCursor(box.err)
		}
	}

	return e.finalize(ctx, sess, node, op)
}

func (e *Executor) finalize(ctx context.Context, sess *Session, node *plan.Node, op operator.Operator) *Cursor {
	chunk := op.Chunk()
	docs := op.Documents()

	var ids []string
	if m := op.Modified(); m != nil {
		ids = m.IDs
	}

	if e.Disk != nil {
		session := sess.ID.String()
		database, collection := node.Target.Database, node.Target.Collection
		var err error
		switch node.Kind {
		case plan.Insert, plan.Update:
			err = e.Disk.WriteDocuments(ctx, session, database, collection, chunk, docs)
		case plan.Delete:
			err = e.Disk.RemoveDocuments(ctx, session, database, collection, ids)
		}
		if err != nil {
			sess.Clear()
			return errorCursor(err)
		}
	}

	usesTable := node.Storage != plan.StorageDocuments
	return successCursor(usesTable, chunk, docs, ids)
}

// build constructs the operator tree matching node, recursing into its
// children first (spec.md §6 "the executor walks the tree bottom-up").
func (e *Executor) build(node *plan.Node, bc *buildCtx) (operator.Operator, error) {
	switch node.Kind {
	case plan.Data, plan.RawData:
		p, _ := node.Payload.(RawDataPayload)
		if p.Chunk != nil {
			return operator.NewRawDataChunk(p.Chunk), nil
		}
		return operator.NewRawDataDocuments(p.Docs), nil

	case plan.Select, plan.Match:
		return e.buildScan(node, bc)

	case plan.Insert:
		return e.buildInsert(node, bc)

	case plan.Delete:
		store, err := e.storageForExisting(node.Target)
		if err != nil {
			return nil, err
		}
		p, _ := node.Payload.(MatchPayload)
		filter, err := e.compileTableFilter(store.Table(), p.Filter, mergeParams(bc.params, p.Params), bc)
		if err != nil {
			return nil, err
		}
		return operator.NewDelete(store, filter), nil

	case plan.Update:
		store, err := e.storageForExisting(node.Target)
		if err != nil {
			return nil, err
		}
		p, ok := node.Payload.(UpdatePayload)
		if !ok || p.Tree == nil {
			return nil, fmt.Errorf("exec: update node missing UpdatePayload")
		}
		params := mergeParams(bc.params, p.Params)
		filter, err := e.compileTableFilter(store.Table(), p.Filter, params, bc)
		if err != nil {
			return nil, err
		}
		return operator.NewUpdate(store, filter, p.Tree, params), nil

	case plan.Group:
		if len(node.Children) != 1 {
			return nil, fmt.Errorf("exec: group node requires exactly one child")
		}
		child, err := e.build(node.Children[0], bc)
		if err != nil {
			return nil, err
		}
		p, ok := node.Payload.(GroupPayload)
		if !ok {
			return nil, fmt.Errorf("exec: group node missing GroupPayload")
		}
		return operator.NewColumnarGroup(child, p.KeyColumns, p.Aggs), nil

	case plan.Sort:
		if len(node.Children) != 1 {
			return nil, fmt.Errorf("exec: sort node requires exactly one child")
		}
		child, err := e.build(node.Children[0], bc)
		if err != nil {
			return nil, err
		}
		p, _ := node.Payload.(SortPayload)
		return operator.NewSort(child, p.Keys), nil

	case plan.Join:
		if len(node.Children) != 2 {
			return nil, fmt.Errorf("exec: join node requires exactly two children")
		}
		left, err := e.build(node.Children[0], bc)
		if err != nil {
			return nil, err
		}
		right, err := e.build(node.Children[1], bc)
		if err != nil {
			return nil, err
		}
		p, ok := node.Payload.(JoinPayload)
		if !ok || p.Pred == nil {
			return nil, fmt.Errorf("exec: join node missing JoinPayload")
		}
		return operator.NewOperatorJoin(left, right, p.Pred), nil

	case plan.CreateDatabase, plan.DropDatabase, plan.CreateCollection, plan.DropCollection, plan.CreateIndex, plan.DropIndex:
		// DDL node kinds resolve entirely against the Registry at plan
		// build time (schema.Registry.Get/Drop/DropDatabase), with no row data to
		// pump through an operator; the executor surfaces an empty,
		// RawData node, executed like any other, so the rest of run's loop
		// (suspend/resume, finalize) stays uniform across every kind.
		return e.buildDDL(node)

	default:
		return nil, fmt.Errorf("exec: unsupported plan node kind %s", node.Kind)
	}
}

func (e *Executor) buildDDL(node *plan.Node) (operator.Operator, error) {
	switch node.Kind {
	case plan.CreateDatabase, plan.CreateCollection:
		e.storageFor(node.Target)
	case plan.DropCollection:
		e.Registry.Drop(node.Target.Database, node.Target.Collection)
	case plan.DropDatabase:
		e.Registry.DropDatabase(node.Target.Database)
	case plan.CreateIndex, plan.DropIndex:
		// Indexing is out of scope for this storage core (SPEC_FULL.md
		// Non-goals); these node kinds are accepted as no-ops so a
		// planner upstream can still emit them uniformly.
	}
	return operator.NewRawDataChunk(nil), nil
}

func (e *Executor) buildScan(node *plan.Node, bc *buildCtx) (operator.Operator, error) {
	store, err := e.storageForExisting(node.Target)
	if err != nil {
		return nil, err
	}
	table := store.Table()

	names := node.Columns
	if names == nil {
		for _, c := range table.Columns() {
			names = append(names, c.Name)
		}
	}

	var op operator.Operator = operator.NewFullScan(table, node.Columns, nil)

	p, ok := node.Payload.(MatchPayload)
	if !ok || p.Filter == nil {
		return op, nil
	}

	cols := make(map[string]int, len(names))
	colTypes := make([]types.ComplexLogicalType, len(names))
	for i, name := range names {
		idx := table.ColumnIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", operator.ErrUnknownColumn, name)
		}
		cols[name] = i
		colTypes[i] = table.Columns()[idx].Type
	}

	pred, err := expr.Compile(p.Filter, cols, colTypes, mergeParams(bc.params, p.Params))
	if err != nil {
		return nil, err
	}
	return operator.NewFilter(op, pred), nil
}

func (e *Executor) buildInsert(node *plan.Node, bc *buildCtx) (operator.Operator, error) {
	store := e.storageFor(node.Target)

	p, _ := node.Payload.(InsertPayload)
	docs := p.Docs
	if docs == nil && len(node.Children) == 1 {
		child, err := e.build(node.Children[0], bc)
		if err != nil {
			return nil, err
		}
		if err := child.Execute(&operator.PipelineContext{Mem: e.Mem}); err != nil {
			return nil, err
		}
		docs = child.Documents()
	}
	return operator.NewInsert(store, docs), nil
}

func (e *Executor) storageFor(target plan.CollectionFullName) *schema.Storage {
	return e.Registry.Get(target.Database, target.Collection)
}

// storageForExisting resolves a collection that must already exist:
// Select/Match/Delete/Update never implicitly create a collection the
// way Insert does, so a target that was never created or was already
// dropped surfaces as ErrCollectionDropped instead of silently
// operating on an empty table.
func (e *Executor) storageForExisting(target plan.CollectionFullName) (*schema.Storage, error) {
	s, ok := e.Registry.Lookup(target.Database, target.Collection)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrCollectionDropped, target.Database, target.Collection)
	}
	return s, nil
}

// compileTableFilter compiles cond (if non-nil) against table's full
// column set into a storage.Filter, registering an errBox in bc so a
// predicate evaluation error -- which storage.Filter's signature has
// no room to return -- still reaches run's post-execute error check.
func (e *Executor) compileTableFilter(table *storage.Table, cond *expr.CompareExpr, params map[string]value.Value, bc *buildCtx) (storage.Filter, error) {
	if cond == nil {
		return nil, nil
	}

	columns := table.Columns()
	cols := make(map[string]int, len(columns))
	colTypes := make([]types.ComplexLogicalType, len(columns))
	for i, c := range columns {
		cols[c.Name] = i
		colTypes[i] = c.Type
	}

	pred, err := expr.Compile(cond, cols, colTypes, params)
	if err != nil {
		return nil, err
	}

	box := &errBox{}
	bc.errBoxes = append(bc.errBoxes, box)
	return func(chunk *vector.DataChunk) []int {
		var keep []int
		for row := 0; row < chunk.Cardinality(); row++ {
			ok, err := pred(chunk, row)
			if err != nil {
				if box.err == nil {
					box.err = err
				}
				continue
			}
			if ok {
				keep = append(keep, row)
			}
		}
		return keep
	}, nil
}

func mergeParams(base, extra map[string]value.Value) map[string]value.Value {
	if len(extra) == 0 {
		return base
	}
	out := make(map[string]value.Value, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
