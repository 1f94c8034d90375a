package schema

import (
	"testing"

	"github.com/hugr-lab/doctable-go/docpath"
)

func TestRegistryDropRemovesOnlyThatCollection(t *testing.T) {
	r := NewRegistry(docpath.DefaultConfig())
	r.Get("main", "events")
	r.Get("main", "users")

	r.Drop("main", "events")

	if _, ok := r.Lookup("main", "events"); ok {
		t.Fatal("Lookup() ok = true after Drop(), want false")
	}
	if _, ok := r.Lookup("main", "users"); !ok {
		t.Fatal("Lookup() ok = false for an undropped collection, want true")
	}
}

func TestRegistryDropDatabaseRemovesEveryCollection(t *testing.T) {
	r := NewRegistry(docpath.DefaultConfig())
	r.Get("main", "events")
	r.Get("main", "users")
	r.Get("other", "events")

	r.DropDatabase("main")

	if _, ok := r.Lookup("main", "events"); ok {
		t.Fatal("Lookup() ok = true for a dropped database's collection, want false")
	}
	if _, ok := r.Lookup("main", "users"); ok {
		t.Fatal("Lookup() ok = true for a dropped database's collection, want false")
	}
	if _, ok := r.Lookup("other", "events"); !ok {
		t.Fatal("Lookup() ok = false for a different database's collection, want true")
	}
}
