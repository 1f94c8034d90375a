package operator

import "testing"

func TestSortOrdersAscendingAndDescending(t *testing.T) {
	s := seedStorage(t, `{"age":3}`, `{"age":1}`, `{"age":2}`)
	ageIdx := s.Table().ColumnIndex("age")

	asc := NewSort(NewFullScan(s.Table(), nil, nil), []SortKey{{Column: "age"}})
	if err := asc.Execute(&PipelineContext{}); err != nil {
		t.Fatal(err)
	}
	chunk := asc.Chunk()
	var got []int64
	for row := 0; row < chunk.Cardinality(); row++ {
		got = append(got, chunk.Column(ageIdx).Value(row).AsInt64())
	}
	want := []int64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ascending sort = %v, want %v", got, want)
		}
	}

	desc := NewSort(NewFullScan(s.Table(), nil, nil), []SortKey{{Column: "age", Desc: true}})
	if err := desc.Execute(&PipelineContext{}); err != nil {
		t.Fatal(err)
	}
	chunk = desc.Chunk()
	got = nil
	for row := 0; row < chunk.Cardinality(); row++ {
		got = append(got, chunk.Column(ageIdx).Value(row).AsInt64())
	}
	want = []int64{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("descending sort = %v, want %v", got, want)
		}
	}
}

func TestSortUnknownColumnErrors(t *testing.T) {
	s := seedStorage(t, `{"age":1}`)
	sortOp := NewSort(NewFullScan(s.Table(), nil, nil), []SortKey{{Column: "missing"}})
	if err := sortOp.Execute(&PipelineContext{}); err != ErrUnknownColumn {
		t.Fatalf("Execute() err = %v, want ErrUnknownColumn", err)
	}
}
