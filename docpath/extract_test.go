package docpath

import (
	"errors"
	"testing"

	"github.com/hugr-lab/doctable-go/document"
	"github.com/hugr-lab/doctable-go/types"
)

func mustDoc(t *testing.T, js string) document.Document {
	t.Helper()
	doc, err := document.FromJSON([]byte(js))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func findPath(paths []ExtractedPath, path string) (ExtractedPath, bool) {
	for _, p := range paths {
		if p.Path == path {
			return p, true
		}
	}
	return ExtractedPath{}, false
}

func TestExtractPathsNestedObject(t *testing.T) {
	doc := mustDoc(t, `{"commit":{"collection":"app.bsky.feed.post","rev":"42"},"did":"did:plc:abc"}`)
	paths, err := ExtractPaths(doc, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	p, ok := findPath(paths, "commit_dot_collection")
	if !ok {
		t.Fatalf("expected commit_dot_collection among %+v", paths)
	}
	if p.Type != types.STRING {
		t.Errorf("commit_dot_collection type = %v, want STRING", p.Type)
	}
	if _, ok := findPath(paths, "did"); !ok {
		t.Fatal("expected top-level did path")
	}
}

func TestExtractPathsFlattensArray(t *testing.T) {
	doc := mustDoc(t, `{"tags":["a","b","c"]}`)
	paths, err := ExtractPaths(doc, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	p, ok := findPath(paths, "tags_arr1_")
	if !ok {
		t.Fatalf("expected tags_arr1_ among %+v", paths)
	}
	if !p.IsArray || p.ArrayIndex != 1 {
		t.Errorf("tags_arr1_ = %+v, want IsArray=true ArrayIndex=1", p)
	}
}

func TestExtractPathsArrayOverLimitFails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxArraySize = 2
	doc := mustDoc(t, `{"tags":["a","b","c"]}`)
	_, err := ExtractPaths(doc, cfg)
	if !errors.Is(err, ErrSchemaLimitExceeded) {
		t.Fatalf("err = %v, want ErrSchemaLimitExceeded", err)
	}
}

func TestExtractPathsArrayAsSingleLeafWhenNotFlattened(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FlattenArrays = false
	doc := mustDoc(t, `{"tags":["a","b","c"]}`)
	paths, err := ExtractPaths(doc, cfg)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := findPath(paths, "tags")
	if !ok {
		t.Fatalf("expected single tags leaf among %+v", paths)
	}
	if p.Type != types.STRING || !p.IsArray {
		t.Errorf("tags leaf = %+v, want STRING array leaf", p)
	}
}

func TestExtractPathsSeparateArrayTableSkipsArray(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FlattenArrays = false
	cfg.UseSeparateArrayTable = true
	doc := mustDoc(t, `{"tags":["a","b"],"name":"x"}`)
	paths, err := ExtractPaths(doc, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := findPath(paths, "tags"); ok {
		t.Fatal("expected tags to be skipped under UseSeparateArrayTable")
	}
	if _, ok := findPath(paths, "name"); !ok {
		t.Fatal("expected name leaf to still be extracted")
	}
}

func TestExtractPathsNullMapsToNullableString(t *testing.T) {
	doc := mustDoc(t, `{"x":null}`)
	paths, err := ExtractPaths(doc, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	p, ok := findPath(paths, "x")
	if !ok {
		t.Fatal("expected x leaf")
	}
	if p.Type != types.STRING || !p.IsNullable {
		t.Errorf("x leaf = %+v, want nullable STRING", p)
	}
}

func TestExtractPathsDropsNestedObjectsAtRootWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExtractNestedObjects = false
	doc := mustDoc(t, `{"commit":{"collection":"x"},"did":"did:plc:abc"}`)
	paths, err := ExtractPaths(doc, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := findPath(paths, "commit_dot_collection"); ok {
		t.Fatalf("expected commit's nested fields dropped when ExtractNestedObjects=false, got %+v", paths)
	}
	if _, ok := findPath(paths, "did"); !ok {
		t.Fatal("expected top-level scalar did leaf to survive")
	}
}

func TestExtractPathsRespectsMaxNestingDepth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxNestingDepth = 1
	doc := mustDoc(t, `{"a":{"b":{"c":1}}}`)
	paths, err := ExtractPaths(doc, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := findPath(paths, "a_dot_b_dot_c"); ok {
		t.Fatalf("expected depth bound to stop before a_dot_b_dot_c, got %+v", paths)
	}
}
