package vector

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/value"
)

func newTestChunk(t *testing.T, rows int) *DataChunk {
	t.Helper()
	c, err := NewChunk(
		[]string{"id", "name"},
		[]types.ComplexLogicalType{types.Simple(types.INTEGER), types.Simple(types.STRING)},
		rows,
	)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < rows; i++ {
		_ = c.Column(0).SetValue(i, value.NewInt32(int32(i)))
		_ = c.Column(1).SetValue(i, value.NewString("row"))
	}
	if err := c.SetCardinality(rows); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestChunkCardinalityCannotExceedCapacity(t *testing.T) {
	c, err := NewChunk([]string{"a"}, []types.ComplexLogicalType{types.Simple(types.INTEGER)}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetCardinality(3); err == nil {
		t.Fatal("expected error setting cardinality beyond capacity")
	}
}

func TestChunkAppendGrowsWithResize(t *testing.T) {
	a := newTestChunk(t, 2)
	b := newTestChunk(t, 2)
	if err := a.Append(b, true); err != nil {
		t.Fatal(err)
	}
	if a.Cardinality() != 4 {
		t.Fatalf("Cardinality() = %d, want 4", a.Cardinality())
	}
	if a.Capacity() < 4 {
		t.Fatalf("Capacity() = %d, want >= 4", a.Capacity())
	}
}

func TestChunkAppendWithoutResizeFailsWhenFull(t *testing.T) {
	a := newTestChunk(t, 2)
	b := newTestChunk(t, 1)
	if err := a.Append(b, false); err == nil {
		t.Fatal("expected error appending past capacity without resize")
	}
}

func TestChunkSliceSelectsRows(t *testing.T) {
	c := newTestChunk(t, 3)
	sliced := c.Slice([]int{2, 0})
	if sliced.Cardinality() != 2 {
		t.Fatalf("Cardinality() = %d, want 2", sliced.Cardinality())
	}
	if sliced.Column(0).Value(0).AsInt64() != 2 {
		t.Errorf("sliced row 0 col 0 = %d, want 2", sliced.Column(0).Value(0).AsInt64())
	}
}

func TestChunkSplit(t *testing.T) {
	c := newTestChunk(t, 4)
	first, rest := c.Split(1)
	if first.Cardinality() != 1 || rest.Cardinality() != 3 {
		t.Fatalf("Split(1) = %d/%d, want 1/3", first.Cardinality(), rest.Cardinality())
	}
}

func TestChunkFuseRequiresEqualCardinality(t *testing.T) {
	a := newTestChunk(t, 2)
	b := newTestChunk(t, 3)
	if err := a.Fuse(b); err == nil {
		t.Fatal("expected error fusing mismatched cardinality chunks")
	}
}

func TestChunkRoundTripsThroughArrowRecord(t *testing.T) {
	mem := memory.NewGoAllocator()
	c := newTestChunk(t, 3)

	rec, err := c.ToRecord(mem)
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Release()

	back, err := FromRecord(rec, c.Types())
	if err != nil {
		t.Fatal(err)
	}
	if back.Cardinality() != 3 {
		t.Fatalf("roundtrip cardinality = %d, want 3", back.Cardinality())
	}
	if back.Column(0).Value(1).AsInt64() != 1 {
		t.Errorf("roundtrip col 0 row 1 = %d, want 1", back.Column(0).Value(1).AsInt64())
	}
	if back.Column(1).Value(2).AsString() != "row" {
		t.Errorf("roundtrip col 1 row 2 = %q, want row", back.Column(1).Value(2).AsString())
	}
}

func TestChunkSerializeDeserializeRoundTrip(t *testing.T) {
	mem := memory.NewGoAllocator()
	c := newTestChunk(t, 2)

	data, err := c.Serialize(mem)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Deserialize(mem, data, c.Types())
	if err != nil {
		t.Fatal(err)
	}
	if back.Cardinality() != 2 {
		t.Fatalf("roundtrip cardinality = %d, want 2", back.Cardinality())
	}
	if back.Column(0).Value(1).AsInt64() != 1 {
		t.Errorf("roundtrip col 0 row 1 = %d, want 1", back.Column(0).Value(1).AsInt64())
	}
}
