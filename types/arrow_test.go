package types

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
)

func TestListToArrowType(t *testing.T) {
	l := NewList(Simple(INTEGER))
	at, ok := l.ToArrowType().(*arrow.ListType)
	if !ok {
		t.Fatalf("expected *arrow.ListType, got %T", l.ToArrowType())
	}
	if at.Elem() != arrow.PrimitiveTypes.Int32 {
		t.Errorf("list element type = %v, want Int32", at.Elem())
	}
}

func TestMapToArrowType(t *testing.T) {
	m := NewMap(Simple(STRING), Simple(BIGINT))
	if _, ok := m.ToArrowType().(*arrow.MapType); !ok {
		t.Fatalf("expected *arrow.MapType, got %T", m.ToArrowType())
	}
}

func TestStructToArrowTypePreservesFieldOrder(t *testing.T) {
	s := NewStruct([]StructField{
		{Name: "a", Type: Simple(INTEGER)},
		{Name: "b", Type: Simple(STRING)},
	})
	st, ok := s.ToArrowType().(*arrow.StructType)
	if !ok {
		t.Fatalf("expected *arrow.StructType, got %T", s.ToArrowType())
	}
	if st.Field(0).Name != "a" || st.Field(1).Name != "b" {
		t.Fatalf("struct field order not preserved: %v", st)
	}
}

func TestEnumToArrowTypeIsDictionary(t *testing.T) {
	e := NewEnum([]string{"x", "y", "z"})
	dt, ok := e.ToArrowType().(*arrow.DictionaryType)
	if !ok {
		t.Fatalf("expected *arrow.DictionaryType, got %T", e.ToArrowType())
	}
	if dt.ValueType != arrow.BinaryTypes.String {
		t.Errorf("enum dictionary value type = %v, want String", dt.ValueType)
	}
}

func TestUnionToArrowTypeIncludesHiddenTagField(t *testing.T) {
	u := NewUnion([]StructField{{Name: "x", Type: Simple(INTEGER)}})
	st, ok := u.ToArrowType().(*arrow.StructType)
	if !ok {
		t.Fatalf("expected *arrow.StructType, got %T", u.ToArrowType())
	}
	if st.NumFields() != 2 {
		t.Fatalf("union arrow struct should have 2 fields (tag + member), got %d", st.NumFields())
	}
	if st.Field(0).Name != unionTagField {
		t.Fatalf("first field = %q, want hidden tag field", st.Field(0).Name)
	}
}
