package storage

import (
	"testing"

	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/value"
	"github.com/hugr-lab/doctable-go/vector"
)

func appendRows(t *testing.T, tbl *Table, rows int) {
	t.Helper()
	if err := tbl.InitializeAppend(); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Append(testChunk(t, rows)); err != nil {
		t.Fatal(err)
	}
	if err := tbl.FinalizeAppend(); err != nil {
		t.Fatal(err)
	}
}

func TestTableAppendAndScan(t *testing.T) {
	tbl := NewTable(testInfos())
	appendRows(t, tbl, 5)

	if tbl.RowCount() != 5 {
		t.Fatalf("RowCount() = %d, want 5", tbl.RowCount())
	}

	state := tbl.InitializeScan()
	out, err := newChunkFor(t, tbl, 10)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.Scan(state, out, nil); err != nil {
		t.Fatal(err)
	}
	if out.Cardinality() != 5 {
		t.Fatalf("scanned cardinality = %d, want 5", out.Cardinality())
	}
}

func newChunkFor(t *testing.T, tbl *Table, capacity int) (*vector.DataChunk, error) {
	t.Helper()
	names := make([]string, len(tbl.columns))
	tys := make([]types.ComplexLogicalType, len(tbl.columns))
	for i, c := range tbl.columns {
		names[i] = c.Name
		tys[i] = c.Type
	}
	return vector.NewChunk(names, tys, capacity)
}

func TestTableRevertAppendRestoresRowCount(t *testing.T) {
	tbl := NewTable(testInfos())
	appendRows(t, tbl, 2)

	if err := tbl.InitializeAppend(); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Append(testChunk(t, 3)); err != nil {
		t.Fatal(err)
	}
	tbl.RevertAppend()

	if tbl.RowCount() != 2 {
		t.Fatalf("RowCount() after revert = %d, want 2", tbl.RowCount())
	}
}

func TestTableDeleteExcludesRowFromScan(t *testing.T) {
	tbl := NewTable(testInfos())
	appendRows(t, tbl, 3)

	if err := tbl.Delete(1); err != nil {
		t.Fatal(err)
	}

	state := tbl.InitializeScan()
	out, err := newChunkFor(t, tbl, 10)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.Scan(state, out, nil); err != nil {
		t.Fatal(err)
	}
	if out.Cardinality() != 2 {
		t.Fatalf("scanned cardinality = %d, want 2 (one deleted)", out.Cardinality())
	}
}

func TestTableUpdateVisibleThroughValue(t *testing.T) {
	tbl := NewTable(testInfos())
	appendRows(t, tbl, 2)

	if err := tbl.Update(0, 1, value.NewString("updated")); err != nil {
		t.Fatal(err)
	}
	v, err := tbl.Value(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsString() != "updated" {
		t.Errorf("Value(0,1) = %q, want updated", v.AsString())
	}
}

func TestNewTableWithColumnBackfillsDefaultOnOldRows(t *testing.T) {
	parent := NewTable(testInfos())
	appendRows(t, parent, 4)

	def := value.NewBool(false)
	child := NewTableWithColumn(parent, ColumnInfo{Name: "active", Type: types.Simple(types.BOOLEAN), Default: def})

	if len(child.Columns()) != 3 {
		t.Fatalf("child columns = %d, want 3", len(child.Columns()))
	}
	if child.RowCount() != 4 {
		t.Fatalf("child RowCount() = %d, want 4", child.RowCount())
	}
	v, err := child.Value(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsBool() != false {
		t.Errorf("backfilled value = %v, want false", v.AsBool())
	}
	v0, err := child.Value(2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if v0.AsInt64() != 2 {
		t.Errorf("shared column value = %d, want 2", v0.AsInt64())
	}
}
