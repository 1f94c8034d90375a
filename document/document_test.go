package document

import "testing"

func TestFromJSONScalarKinds(t *testing.T) {
	doc, err := FromJSON([]byte(`{"a":1,"b":"x","c":true,"d":null,"e":[1,2,3]}`))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Kind() != KindObject {
		t.Fatalf("Kind() = %v, want object", doc.Kind())
	}
	if k := doc.Field("a").Kind(); k != KindDouble {
		t.Errorf("field a Kind() = %v, want double", k)
	}
	if doc.Field("b").String() != "x" {
		t.Errorf("field b = %q, want x", doc.Field("b").String())
	}
	if !doc.Field("c").Bool() {
		t.Error("field c expected true")
	}
	if doc.Field("d").Kind() != KindNull {
		t.Errorf("field d Kind() = %v, want null", doc.Field("d").Kind())
	}
	arr := doc.Field("e")
	if arr.Kind() != KindArray || arr.Len() != 3 {
		t.Fatalf("field e Kind()/Len() = %v/%d, want array/3", arr.Kind(), arr.Len())
	}
	if arr.Index(1).Float64() != 2 {
		t.Errorf("e[1] = %v, want 2", arr.Index(1).Float64())
	}
}

func TestHasAndGetResolveNestedPaths(t *testing.T) {
	doc, err := FromJSON([]byte(`{"commit":{"collection":"app.bsky.feed.post","rev":"42"},"tags":["a","b"]}`))
	if err != nil {
		t.Fatal(err)
	}
	if !Has(doc, "commit.collection") {
		t.Fatal("expected commit.collection to resolve")
	}
	if Get(doc, "commit.collection").String() != "app.bsky.feed.post" {
		t.Errorf("commit.collection = %q", Get(doc, "commit.collection").String())
	}
	if Get(doc, "tags[1]").String() != "b" {
		t.Errorf("tags[1] = %q, want b", Get(doc, "tags[1]").String())
	}
	if Has(doc, "missing.field") {
		t.Fatal("expected missing.field to not resolve")
	}
	if Has(doc, "tags[5]") {
		t.Fatal("expected out-of-range index to not resolve")
	}
}

func TestGetThroughNonContainerReturnsNil(t *testing.T) {
	doc, err := FromJSON([]byte(`{"a":1}`))
	if err != nil {
		t.Fatal(err)
	}
	if Has(doc, "a.b") {
		t.Fatal("expected path through scalar to fail")
	}
}
