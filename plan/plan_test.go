package plan

import "testing"

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		Select:  "select",
		Insert:  "insert",
		Group:   "group",
		Join:    "join",
		Kind(99): "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestStorageString(t *testing.T) {
	cases := map[Storage]string{
		StorageDocuments:     "documents",
		StorageDocumentTable: "document_table",
		StorageColumns:       "columns",
		Storage(99):          "unknown",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Fatalf("Storage(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestNodeIsLeaf(t *testing.T) {
	leaf := &Node{Kind: RawData}
	if !leaf.IsLeaf() {
		t.Fatal("IsLeaf() = false, want true for a childless node")
	}
	parent := &Node{Kind: Select, Children: []*Node{leaf}}
	if parent.IsLeaf() {
		t.Fatal("IsLeaf() = true, want false for a node with children")
	}
}
