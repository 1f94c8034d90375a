package value

import (
	"testing"

	"github.com/hugr-lab/doctable-go/types"
)

func TestNullRoundtripsType(t *testing.T) {
	n := Null(types.Simple(types.INTEGER))
	if !n.IsNull() {
		t.Fatalf("Null() value reports IsNull()=false")
	}
	if n.Type().Tag != types.INTEGER {
		t.Fatalf("Null() lost its type: got %s", n.Type().Tag)
	}
}

func TestScalarConstructorsRoundtrip(t *testing.T) {
	if got := NewBool(true).AsBool(); got != true {
		t.Errorf("NewBool: got %v", got)
	}
	if got := NewInt32(-7).AsInt64(); got != -7 {
		t.Errorf("NewInt32: got %d", got)
	}
	if got := NewUint64(42).AsUint64(); got != 42 {
		t.Errorf("NewUint64: got %d", got)
	}
	if got := NewFloat64(3.5).AsFloat64(); got != 3.5 {
		t.Errorf("NewFloat64: got %v", got)
	}
	if got := NewString("hello").AsString(); got != "hello" {
		t.Errorf("NewString: got %q", got)
	}
	blob := NewBlob([]byte{1, 2, 3})
	if got := blob.AsBlob(); len(got) != 3 || got[0] != 1 {
		t.Errorf("NewBlob: got %v", got)
	}
}

func TestNewBlobCopiesInput(t *testing.T) {
	src := []byte{1, 2, 3}
	v := NewBlob(src)
	src[0] = 99
	if got := v.AsBlob()[0]; got != 1 {
		t.Errorf("NewBlob aliased caller's backing array: got %d, want 1", got)
	}
}

func TestListChildren(t *testing.T) {
	elem := types.Simple(types.INTEGER)
	l := NewList(elem, []Value{NewInt32(1), NewInt32(2), NewInt32(3)})
	cs := l.Children()
	if len(cs) != 3 {
		t.Fatalf("expected 3 children, got %d", len(cs))
	}
	if cs[1].AsInt64() != 2 {
		t.Errorf("children[1] = %d, want 2", cs[1].AsInt64())
	}
}

func TestStructFieldOrderPreserved(t *testing.T) {
	fields := []types.StructField{
		{Name: "a", Type: types.Simple(types.INTEGER)},
		{Name: "b", Type: types.Simple(types.STRING)},
	}
	s := NewStruct(fields, []Value{NewInt32(1), NewString("x")})
	cs := s.Children()
	if cs[0].AsInt64() != 1 || cs[1].AsString() != "x" {
		t.Fatalf("struct children out of order: %v", cs)
	}
}

func TestNewUnionTagsActiveMember(t *testing.T) {
	members := []types.StructField{
		{Name: "as_int", Type: types.Simple(types.INTEGER)},
		{Name: "as_str", Type: types.Simple(types.STRING)},
	}
	u := NewUnion(members, 1, NewString("hi"))
	tag, ok := u.UnionTag()
	if !ok || tag != 1 {
		t.Fatalf("UnionTag() = %d, %v; want 1, true", tag, ok)
	}
	cs := u.Children()
	if cs[0].IsNull() != true {
		t.Errorf("inactive union member should be null")
	}
	if cs[1].AsString() != "hi" {
		t.Errorf("active union member = %q, want hi", cs[1].AsString())
	}
}

func TestMapEntries(t *testing.T) {
	m := NewMap(types.Simple(types.STRING), types.Simple(types.INTEGER), []MapEntry{
		{Key: NewString("a"), Value: NewInt32(1)},
		{Key: NewString("b"), Value: NewInt32(2)},
	})
	es := m.MapEntries()
	if len(es) != 2 || es[0].Key.AsString() != "a" || es[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected map entries: %+v", es)
	}
}
