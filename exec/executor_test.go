package exec

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/doctable-go/disk"
	"github.com/hugr-lab/doctable-go/docpath"
	"github.com/hugr-lab/doctable-go/document"
	"github.com/hugr-lab/doctable-go/expr"
	"github.com/hugr-lab/doctable-go/plan"
	"github.com/hugr-lab/doctable-go/schema"
	"github.com/hugr-lab/doctable-go/value"
)

func newTestExecutor(t *testing.T) (*Executor, *schema.Registry, *disk.InMemory) {
	t.Helper()
	reg := schema.NewRegistry(docpath.DefaultConfig())
	writer := disk.NewInMemory()
	return NewExecutor(reg, writer, memory.DefaultAllocator, nil), reg, writer
}

func mustDoc(t *testing.T, raw string) document.Document {
	t.Helper()
	d, err := document.FromJSON([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestExecutorInsertThenSelect(t *testing.T) {
	e, _, writer := newTestExecutor(t)
	sess := NewSession()
	target := plan.CollectionFullName{Database: "main", Collection: "events"}

	insertNode := &plan.Node{
		Kind:    plan.Insert,
		Target:  target,
		Storage: plan.StorageDocumentTable,
		Payload: InsertPayload{Docs: []document.Document{
			mustDoc(t, `{"name":"a","age":1}`),
			mustDoc(t, `{"name":"b","age":2}`),
		}},
	}
	cur := e.ExecutePlan(context.Background(), sess, insertNode, nil)
	if !cur.IsSuccess() {
		kind, msg := cur.GetError()
		t.Fatalf("insert failed: %s: %s", kind, msg)
	}
	if got, want := len(cur.ModifiedIDs()), 2; got != want {
		t.Fatalf("ModifiedIDs() has %d entries, want %d", got, want)
	}

	docs, err := writer.ReadBack(context.Background(), "main", "main", "events")
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("disk recorded %d rows, want 2", len(docs))
	}

	selectNode := &plan.Node{
		Kind:    plan.Select,
		Target:  target,
		Storage: plan.StorageDocumentTable,
	}
	cur = e.ExecutePlan(context.Background(), sess, selectNode, nil)
	if !cur.IsSuccess() {
		kind, msg := cur.GetError()
		t.Fatalf("select failed: %s: %s", kind, msg)
	}
	if !cur.UsesTableData() {
		t.Fatal("UsesTableData() = false, want true for a document_table collection")
	}
	if got, want := cur.Size(), 2; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
}

func TestExecutorSelectWithFilter(t *testing.T) {
	e, _, _ := newTestExecutor(t)
	sess := NewSession()
	target := plan.CollectionFullName{Database: "main", Collection: "events"}

	insertNode := &plan.Node{
		Kind:    plan.Insert,
		Target:  target,
		Storage: plan.StorageDocumentTable,
		Payload: InsertPayload{Docs: []document.Document{
			mustDoc(t, `{"age":1}`),
			mustDoc(t, `{"age":5}`),
		}},
	}
	if cur := e.ExecutePlan(context.Background(), sess, insertNode, nil); !cur.IsSuccess() {
		kind, msg := cur.GetError()
		t.Fatalf("insert failed: %s: %s", kind, msg)
	}

	cond := &expr.CompareExpr{PrimaryKey: "age", ParameterID: "min", Op: expr.Gt}
	selectNode := &plan.Node{
		Kind:    plan.Match,
		Target:  target,
		Storage: plan.StorageDocumentTable,
		Payload: MatchPayload{Filter: cond},
	}
	cur := e.ExecutePlan(context.Background(), sess, selectNode, map[string]value.Value{"min": value.NewInt64(2)})
	if !cur.IsSuccess() {
		kind, msg := cur.GetError()
		t.Fatalf("select failed: %s: %s", kind, msg)
	}
	if got, want := cur.Size(), 1; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
}

func TestExecutorDelete(t *testing.T) {
	e, _, _ := newTestExecutor(t)
	sess := NewSession()
	target := plan.CollectionFullName{Database: "main", Collection: "events"}

	insertNode := &plan.Node{
		Kind:    plan.Insert,
		Target:  target,
		Storage: plan.StorageDocumentTable,
		Payload: InsertPayload{Docs: []document.Document{
			mustDoc(t, `{"age":1}`),
			mustDoc(t, `{"age":9}`),
		}},
	}
	if cur := e.ExecutePlan(context.Background(), sess, insertNode, nil); !cur.IsSuccess() {
		kind, msg := cur.GetError()
		t.Fatalf("insert failed: %s: %s", kind, msg)
	}

	cond := &expr.CompareExpr{PrimaryKey: "age", ParameterID: "min", Op: expr.Gt}
	deleteNode := &plan.Node{
		Kind:    plan.Delete,
		Target:  target,
		Storage: plan.StorageDocumentTable,
		Payload: MatchPayload{Filter: cond},
	}
	cur := e.ExecutePlan(context.Background(), sess, deleteNode, map[string]value.Value{"min": value.NewInt64(5)})
	if !cur.IsSuccess() {
		kind, msg := cur.GetError()
		t.Fatalf("delete failed: %s: %s", kind, msg)
	}
	if got, want := len(cur.ModifiedIDs()), 1; got != want {
		t.Fatalf("ModifiedIDs() has %d entries, want %d", got, want)
	}
}

func TestExecutorNilPlanIsCreatePhysicalPlanError(t *testing.T) {
	e, _, _ := newTestExecutor(t)
	sess := NewSession()
	cur := e.ExecutePlan(context.Background(), sess, nil, nil)
	if cur.IsSuccess() {
		t.Fatal("IsSuccess() = true, want false for a nil plan")
	}
	kind, _ := cur.GetError()
	if kind != CreatePhysicalPlanError {
		t.Fatalf("GetError() kind = %v, want CreatePhysicalPlanError", kind)
	}
}

func TestExecutorUnboundParamIsInvalidExpression(t *testing.T) {
	e, _, _ := newTestExecutor(t)
	sess := NewSession()
	target := plan.CollectionFullName{Database: "main", Collection: "events"}

	insertNode := &plan.Node{
		Kind:    plan.Insert,
		Target:  target,
		Storage: plan.StorageDocumentTable,
		Payload: InsertPayload{Docs: []document.Document{mustDoc(t, `{"age":1}`)}},
	}
	if cur := e.ExecutePlan(context.Background(), sess, insertNode, nil); !cur.IsSuccess() {
		kind, msg := cur.GetError()
		t.Fatalf("insert failed: %s: %s", kind, msg)
	}

	cond := &expr.CompareExpr{PrimaryKey: "age", ParameterID: "min", Op: expr.Gt}
	selectNode := &plan.Node{
		Kind:    plan.Match,
		Target:  target,
		Storage: plan.StorageDocumentTable,
		Payload: MatchPayload{Filter: cond},
	}
	cur := e.ExecutePlan(context.Background(), sess, selectNode, nil)
	if cur.IsSuccess() {
		t.Fatal("IsSuccess() = true, want false for an unbound parameter")
	}
	kind, _ := cur.GetError()
	if kind != InvalidExpression {
		t.Fatalf("GetError() kind = %v, want InvalidExpression", kind)
	}
}

func TestExecutorSelectOnMissingCollectionIsCollectionDropped(t *testing.T) {
	e, _, _ := newTestExecutor(t)
	sess := NewSession()
	target := plan.CollectionFullName{Database: "main", Collection: "never_created"}

	selectNode := &plan.Node{
		Kind:    plan.Select,
		Target:  target,
		Storage: plan.StorageDocumentTable,
	}
	cur := e.ExecutePlan(context.Background(), sess, selectNode, nil)
	if cur.IsSuccess() {
		t.Fatal("IsSuccess() = true, want false for a never-created collection")
	}
	kind, _ := cur.GetError()
	if kind != CollectionDropped {
		t.Fatalf("GetError() kind = %v, want CollectionDropped", kind)
	}
}
