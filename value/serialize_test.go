package value

import (
	"errors"
	"testing"

	"github.com/hugr-lab/doctable-go/types"
)

func roundtrip(t *testing.T, v Value) Value {
	t.Helper()
	data, err := Serialize(v)
	if err != nil {
		t.Fatalf("Serialize(%v): %v", v, err)
	}
	out, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	return out
}

func TestSerializeRoundtripScalars(t *testing.T) {
	cases := []Value{
		NewBool(true),
		NewInt8(-7),
		NewInt16(-700),
		NewInt32(-70000),
		NewInt64(-7000000000),
		NewUint8(7),
		NewUint16(700),
		NewUint32(70000),
		NewUint64(7000000000),
		NewFloat32(1.5),
		NewFloat64(2.5),
		NewString("hello"),
		NewBlob([]byte{1, 2, 3}),
		NewHugeint(Int128{Hi: -1, Lo: 42}),
		NewUhugeint(Uint128{Hi: 1, Lo: 42}),
		NewTimestamp(types.TIMESTAMP_MS, 1234567),
	}
	for _, v := range cases {
		got := roundtrip(t, v)
		if got.Type().Tag != v.Type().Tag {
			t.Errorf("roundtrip %v: type = %s, want %s", v, got.Type().Tag, v.Type().Tag)
		}
		switch v.Type().Tag {
		case types.HUGEINT:
			if got.AsHugeint().Cmp(v.AsHugeint()) != 0 {
				t.Errorf("roundtrip hugeint: got %v, want %v", got.AsHugeint(), v.AsHugeint())
			}
		case types.UHUGEINT:
			gu, wu := got.payload.(Uint128), v.payload.(Uint128)
			if gu != wu {
				t.Errorf("roundtrip uhugeint: got %v, want %v", gu, wu)
			}
		default:
			if !Equals(got, v) {
				t.Errorf("roundtrip %v: got %v", v, got)
			}
		}
	}
}

func TestSerializeRoundtripNull(t *testing.T) {
	n := Null(types.Simple(types.BIGINT))
	got := roundtrip(t, n)
	if !got.IsNull() || got.Type().Tag != types.BIGINT {
		t.Errorf("roundtrip null: got %v", got)
	}
}

func TestSerializeRoundtripList(t *testing.T) {
	elem := types.Simple(types.INTEGER)
	l := NewList(elem, []Value{NewInt32(1), NewInt32(2), NewInt32(3)})
	got := roundtrip(t, l)
	cs := got.Children()
	if len(cs) != 3 || cs[1].AsInt64() != 2 {
		t.Errorf("roundtrip list: got %v", cs)
	}
}

func TestSerializeRoundtripStruct(t *testing.T) {
	fields := []types.StructField{
		{Name: "a", Type: types.Simple(types.INTEGER)},
		{Name: "b", Type: types.Simple(types.STRING)},
	}
	s := NewStruct(fields, []Value{NewInt32(9), NewString("z")})
	got := roundtrip(t, s)
	cs := got.Children()
	if cs[0].AsInt64() != 9 || cs[1].AsString() != "z" {
		t.Errorf("roundtrip struct: got %v", cs)
	}
}

func TestSerializeRoundtripMap(t *testing.T) {
	m := NewMap(types.Simple(types.STRING), types.Simple(types.INTEGER), []MapEntry{
		{Key: NewString("a"), Value: NewInt32(1)},
		{Key: NewString("b"), Value: NewInt32(2)},
	})
	got := roundtrip(t, m)
	es := got.MapEntries()
	if len(es) != 2 || es[0].Key.AsString() != "a" || es[1].Value.AsInt64() != 2 {
		t.Errorf("roundtrip map: got %+v", es)
	}
}

func TestSerializeRoundtripUnion(t *testing.T) {
	members := []types.StructField{
		{Name: "as_int", Type: types.Simple(types.INTEGER)},
		{Name: "as_str", Type: types.Simple(types.STRING)},
	}
	u := NewUnion(members, 1, NewString("hi"))
	got := roundtrip(t, u)
	tag, ok := got.UnionTag()
	if !ok || tag != 1 {
		t.Fatalf("roundtrip union: tag = %d, %v", tag, ok)
	}
	if got.Children()[1].AsString() != "hi" {
		t.Errorf("roundtrip union: active member = %q", got.Children()[1].AsString())
	}
}

func TestSerializePointerFails(t *testing.T) {
	p := NewPointer(0xdeadbeef)
	_, err := Serialize(p)
	if !errors.Is(err, ErrUnserializableType) {
		t.Fatalf("Serialize(POINTER) = %v, want ErrUnserializableType", err)
	}
}

func TestDeserializeTruncatedPayloadErrors(t *testing.T) {
	_, err := Deserialize([]byte{0xff, 0x01, 0x02})
	if !errors.Is(err, ErrTruncatedPayload) {
		t.Fatalf("Deserialize(garbage) = %v, want ErrTruncatedPayload", err)
	}
}

func TestDeserializeEmptyPayloadErrors(t *testing.T) {
	_, err := Deserialize(nil)
	if err == nil {
		t.Fatal("Deserialize(nil) should error, not return a zero Value silently")
	}
}
