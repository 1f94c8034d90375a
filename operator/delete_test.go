package operator

import (
	"testing"

	"github.com/hugr-lab/doctable-go/document"
	"github.com/hugr-lab/doctable-go/docpath"
	"github.com/hugr-lab/doctable-go/schema"
	"github.com/hugr-lab/doctable-go/value"
	"github.com/hugr-lab/doctable-go/vector"
)

// seedStorage builds a schema.Storage and appends one row per raw JSON
// document in docs, returning the storage ready for scan/filter tests.
func seedStorage(t *testing.T, docs ...string) *schema.Storage {
	t.Helper()
	s := schema.NewStorage(docpath.DefaultConfig())
	var batch []document.Document
	for _, raw := range docs {
		d, err := document.FromJSON([]byte(raw))
		if err != nil {
			t.Fatal(err)
		}
		batch = append(batch, d)
	}
	_, chunk, err := s.PrepareInsert(batch)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Table().InitializeAppend(); err != nil {
		t.Fatal(err)
	}
	if err := s.Table().Append(chunk); err != nil {
		t.Fatal(err)
	}
	if err := s.Table().FinalizeAppend(); err != nil {
		t.Fatal(err)
	}
	return s
}

// ageAbove builds a storage.Filter keeping only rows whose "age"
// column exceeds min.
func ageAbove(s *schema.Storage, min int64) func(chunk *vector.DataChunk) []int {
	ageIdx := s.Table().ColumnIndex("age")
	return func(chunk *vector.DataChunk) []int {
		var keep []int
		for row := 0; row < chunk.Cardinality(); row++ {
			v := chunk.Column(ageIdx).Value(row)
			if v.IsNull() {
				continue
			}
			cmp, err := value.Compare(v, value.NewInt64(min))
			if err == nil && cmp == value.Greater {
				keep = append(keep, row)
			}
		}
		return keep
	}
}

func TestDeleteTombstonesMatchedRows(t *testing.T) {
	s := seedStorage(t, `{"name":"a","age":1}`, `{"name":"b","age":2}`, `{"name":"c","age":3}`)
	if s.Table().RowCount() != 3 {
		t.Fatalf("RowCount() = %d, want 3", s.Table().RowCount())
	}

	d := NewDelete(s, ageAbove(s, 1))
	if err := d.Execute(&PipelineContext{}); err != nil {
		t.Fatal(err)
	}
	if d.State() != Executed {
		t.Fatalf("State() = %v, want Executed", d.State())
	}
	if got, want := len(d.Modified().IDs), 2; got != want {
		t.Fatalf("Modified().IDs has %d entries, want %d", got, want)
	}
	if got := visibleRowCount(t, s); got != 1 {
		t.Fatalf("visible rows after delete = %d, want 1", got)
	}
}

// visibleRowCount scans s's full table and counts surviving (non-
// tombstoned) rows.
func visibleRowCount(t *testing.T, s *schema.Storage) int {
	t.Helper()
	fs := NewFullScan(s.Table(), nil, nil)
	total := 0
	for {
		if err := fs.Execute(&PipelineContext{}); err != nil {
			t.Fatal(err)
		}
		if c := fs.Chunk(); c != nil {
			total += c.Cardinality()
		}
		if fs.State() == Executed {
			break
		}
	}
	return total
}

func TestDeleteWithNilFilterRemovesEveryRow(t *testing.T) {
	s := seedStorage(t, `{"name":"a"}`, `{"name":"b"}`)

	d := NewDelete(s, nil)
	if err := d.Execute(&PipelineContext{}); err != nil {
		t.Fatal(err)
	}
	if got := visibleRowCount(t, s); got != 0 {
		t.Fatalf("visible rows after delete-all = %d, want 0", got)
	}
	if len(d.Modified().IDs) != 2 {
		t.Fatalf("Modified().IDs has %d entries, want 2", len(d.Modified().IDs))
	}
}
