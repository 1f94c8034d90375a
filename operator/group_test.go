package operator

import (
	"testing"

	"github.com/hugr-lab/doctable-go/value"
)

func TestColumnarGroupCountSumAvgMinMax(t *testing.T) {
	s := seedStorage(t,
		`{"team":"red","score":10}`,
		`{"team":"red","score":20}`,
		`{"team":"blue","score":5}`,
	)

	child := NewFullScan(s.Table(), nil, nil)
	aggs := []AggSpec{
		{Kind: AggCountStar, Alias: "n"},
		{Kind: AggSum, Column: "score", Alias: "total"},
		{Kind: AggAvg, Column: "score", Alias: "avg"},
		{Kind: AggMin, Column: "score", Alias: "lo"},
		{Kind: AggMax, Column: "score", Alias: "hi"},
	}
	g := NewColumnarGroup(child, []string{"team"}, aggs)
	if err := g.Execute(&PipelineContext{}); err != nil {
		t.Fatal(err)
	}
	if g.State() != Executed {
		t.Fatalf("State() = %v, want Executed", g.State())
	}

	chunk := g.Chunk()
	if chunk.Cardinality() != 2 {
		t.Fatalf("Cardinality() = %d, want 2 groups", chunk.Cardinality())
	}

	teamIdx := 0
	nIdx, totalIdx, loIdx, hiIdx := 1, 2, 4, 5
	for row := 0; row < chunk.Cardinality(); row++ {
		team := chunk.Column(teamIdx).Value(row).AsString()
		n := chunk.Column(nIdx).Value(row)
		if team == "red" {
			if n.AsInt64() != 2 {
				t.Fatalf("red count = %v, want 2", n)
			}
			total := chunk.Column(totalIdx).Value(row)
			if total.AsFloat64() != 30 {
				t.Fatalf("red total = %v, want 30", total)
			}
			lo := chunk.Column(loIdx).Value(row)
			hi := chunk.Column(hiIdx).Value(row)
			if cmp, _ := value.Compare(lo, value.NewInt64(10)); cmp != value.Equal {
				t.Fatalf("red min = %v, want 10", lo)
			}
			if cmp, _ := value.Compare(hi, value.NewInt64(20)); cmp != value.Equal {
				t.Fatalf("red max = %v, want 20", hi)
			}
		}
	}
}

func TestColumnarGroupExcludesNullKeys(t *testing.T) {
	s := seedStorage(t, `{"team":"red","score":1}`, `{"score":2}`)

	child := NewFullScan(s.Table(), nil, nil)
	g := NewColumnarGroup(child, []string{"team"}, []AggSpec{{Kind: AggCountStar, Alias: "n"}})
	if err := g.Execute(&PipelineContext{}); err != nil {
		t.Fatal(err)
	}
	if got := g.Chunk().Cardinality(); got != 1 {
		t.Fatalf("Cardinality() = %d, want 1 (null-keyed row excluded)", got)
	}
}

func TestRequiredColumnsDedupesAndTrimsSlash(t *testing.T) {
	got := RequiredColumns([]string{"/team", "team"}, []AggSpec{{Kind: AggSum, Column: "score"}}, []string{"score", "region"})
	want := map[string]bool{"team": true, "score": true, "region": true}
	if len(got) != len(want) {
		t.Fatalf("RequiredColumns = %v, want 3 unique entries", got)
	}
	for _, c := range got {
		if !want[c] {
			t.Fatalf("unexpected column %q in %v", c, got)
		}
	}
}
