package operator

import (
	"errors"
	"testing"
)

func TestFullScanProjection(t *testing.T) {
	s := seedStorage(t, `{"name":"a","age":1}`, `{"name":"b","age":2}`)

	scan := NewFullScan(s.Table(), []string{"name"}, nil)
	if err := scan.Execute(&PipelineContext{}); err != nil {
		t.Fatal(err)
	}
	chunk := scan.Chunk()
	if chunk.ColumnCount() != 1 {
		t.Fatalf("ColumnCount() = %d, want 1", chunk.ColumnCount())
	}
	if chunk.Cardinality() != 2 {
		t.Fatalf("Cardinality() = %d, want 2", chunk.Cardinality())
	}
}

func TestFullScanUnknownProjectionColumnErrors(t *testing.T) {
	s := seedStorage(t, `{"name":"a"}`)
	scan := NewFullScan(s.Table(), []string{"missing"}, nil)
	if err := scan.Execute(&PipelineContext{}); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("Execute() err = %v, want ErrUnknownColumn", err)
	}
}
