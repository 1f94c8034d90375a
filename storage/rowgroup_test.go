package storage

import (
	"testing"

	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/value"
	"github.com/hugr-lab/doctable-go/vector"
)

func testInfos() []ColumnInfo {
	return []ColumnInfo{
		{Name: "id", Index: 0, Type: types.Simple(types.INTEGER), Default: value.Null(types.Simple(types.INTEGER))},
		{Name: "name", Index: 1, Type: types.Simple(types.STRING), Default: value.Null(types.Simple(types.STRING))},
	}
}

func testChunk(t *testing.T, rows int) *vector.DataChunk {
	t.Helper()
	c, err := vector.NewChunk([]string{"id", "name"},
		[]types.ComplexLogicalType{types.Simple(types.INTEGER), types.Simple(types.STRING)}, rows)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < rows; i++ {
		_ = c.Column(0).SetValue(i, value.NewInt32(int32(i)))
		_ = c.Column(1).SetValue(i, value.NewString("n"))
	}
	if err := c.SetCardinality(rows); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestRowGroupAppendAndValue(t *testing.T) {
	g := newRowGroup(testInfos())
	if err := g.InitializeAppend(); err != nil {
		t.Fatal(err)
	}
	n, err := g.Append(testChunk(t, 3), 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("Append returned %d, want 3", n)
	}
	if err := g.FinalizeAppend(); err != nil {
		t.Fatal(err)
	}
	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", g.Len())
	}
	if g.Value(0, 2).AsInt64() != 2 {
		t.Errorf("Value(0,2) = %d, want 2", g.Value(0, 2).AsInt64())
	}
}

func TestRowGroupUpdateOverridesSegmentValue(t *testing.T) {
	g := newRowGroup(testInfos())
	_ = g.InitializeAppend()
	_, _ = g.Append(testChunk(t, 2), 0)
	_ = g.FinalizeAppend()

	if err := g.Update(0, 1, value.NewInt32(99)); err != nil {
		t.Fatal(err)
	}
	if g.Value(0, 1).AsInt64() != 99 {
		t.Errorf("Value(0,1) = %d, want 99", g.Value(0, 1).AsInt64())
	}
	if g.Value(0, 0).AsInt64() != 0 {
		t.Errorf("Value(0,0) = %d, want 0 (unaffected)", g.Value(0, 0).AsInt64())
	}
}

func TestRowGroupDeleteSetsTombstone(t *testing.T) {
	g := newRowGroup(testInfos())
	_ = g.InitializeAppend()
	_, _ = g.Append(testChunk(t, 2), 0)
	_ = g.FinalizeAppend()

	if g.IsDeleted(0) {
		t.Fatal("expected row 0 not deleted before Delete")
	}
	if err := g.Delete(0); err != nil {
		t.Fatal(err)
	}
	if !g.IsDeleted(0) {
		t.Fatal("expected row 0 deleted after Delete")
	}
	if g.IsDeleted(1) {
		t.Fatal("row 1 should be unaffected")
	}
}

func TestRowGroupExtendWithColumnBackfillsDefault(t *testing.T) {
	g := newRowGroup(testInfos())
	_ = g.InitializeAppend()
	_, _ = g.Append(testChunk(t, 2), 0)
	_ = g.FinalizeAppend()

	def := value.NewBool(true)
	extended := g.extendWithColumn(ColumnInfo{Name: "flag", Index: 2, Type: types.Simple(types.BOOLEAN), Default: def}, def)

	if extended.Len() != 2 {
		t.Fatalf("extended Len() = %d, want 2", extended.Len())
	}
	if !extended.Value(2, 0).AsBool() || !extended.Value(2, 1).AsBool() {
		t.Fatal("expected backfilled default true for both rows")
	}
	if extended.Value(0, 1).AsInt64() != 1 {
		t.Errorf("shared column value changed: got %d, want 1", extended.Value(0, 1).AsInt64())
	}
}
