package value

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/hugr-lab/doctable-go/types"
)

// wireType is the serializable projection of types.ComplexLogicalType:
// a length-prefixed tagged structure following spec.md §6 "Persisted
// on-wire value format". Encoded/decoded with
// github.com/vmihailenco/msgpack/v5, the same wire library the teacher
// uses for Flight DoExchange parameters (internal/msgpack).
type wireType struct {
	Tag     uint8     `msgpack:"tag"`
	Alias   string    `msgpack:"alias,omitempty"`
	Width   int       `msgpack:"width,omitempty"`   // DECIMAL
	Scale   int       `msgpack:"scale,omitempty"`   // DECIMAL
	Entries []string  `msgpack:"entries,omitempty"` // ENUM
	Inner   *wireType `msgpack:"inner,omitempty"`   // LIST/ARRAY
	Size    int       `msgpack:"size,omitempty"`    // ARRAY
	Key     *wireType `msgpack:"key,omitempty"`      // MAP
	Value   *wireType `msgpack:"val,omitempty"`      // MAP
	Fields  []wireField `msgpack:"fields,omitempty"` // STRUCT/UNION
}

type wireField struct {
	Name string   `msgpack:"name"`
	Type wireType `msgpack:"type"`
}

func toWireType(t types.ComplexLogicalType) (wireType, error) {
	if t.Tag == types.POINTER {
		return wireType{}, ErrUnserializableType
	}
	w := wireType{Tag: uint8(t.Tag), Alias: t.Alias}
	switch ext := t.Extension.(type) {
	case nil:
	case types.DecimalExt:
		w.Width, w.Scale = ext.Width, ext.Scale
	case types.EnumExt:
		w.Entries = ext.Entries
	case types.ListExt:
		inner, err := toWireType(ext.Inner)
		if err != nil {
			return wireType{}, err
		}
		w.Inner = &inner
	case types.ArrayExt:
		inner, err := toWireType(ext.Inner)
		if err != nil {
			return wireType{}, err
		}
		w.Inner, w.Size = &inner, ext.Size
	case types.MapExt:
		k, err := toWireType(ext.Key)
		if err != nil {
			return wireType{}, err
		}
		val, err := toWireType(ext.Value)
		if err != nil {
			return wireType{}, err
		}
		w.Key, w.Value = &k, &val
	case types.StructExt:
		fields := make([]wireField, len(ext.Fields))
		for i, f := range ext.Fields {
			ft, err := toWireType(f.Type)
			if err != nil {
				return wireType{}, err
			}
			fields[i] = wireField{Name: f.Name, Type: ft}
		}
		w.Fields = fields
	default:
		return wireType{}, fmt.Errorf("%w: type extension %T", ErrUnserializableType, ext)
	}
	return w, nil
}

func fromWireType(w wireType) types.ComplexLogicalType {
	tag := types.Tag(w.Tag)
	t := types.ComplexLogicalType{Tag: tag, Alias: w.Alias}
	switch tag {
	case types.DECIMAL:
		t.Extension = types.DecimalExt{Width: w.Width, Scale: w.Scale}
	case types.ENUM:
		t.Extension = types.EnumExt{Entries: w.Entries}
	case types.LIST:
		t.Extension = types.ListExt{Inner: fromWireType(*w.Inner)}
	case types.ARRAY:
		t.Extension = types.ArrayExt{Inner: fromWireType(*w.Inner), Size: w.Size}
	case types.MAP:
		t.Extension = types.MapExt{Key: fromWireType(*w.Key), Value: fromWireType(*w.Value)}
	case types.STRUCT, types.UNION, types.VARIANT:
		fields := make([]types.StructField, len(w.Fields))
		for i, f := range w.Fields {
			fields[i] = types.StructField{Name: f.Name, Type: fromWireType(f.Type)}
		}
		t.Extension = types.StructExt{Fields: fields}
	}
	return t
}

// wireValue is the on-wire envelope for one Value: tag, null flag,
// then exactly one populated payload field depending on tag.
type wireValue struct {
	Type    wireType    `msgpack:"type"`
	Null    bool        `msgpack:"null,omitempty"`
	Bool    *bool       `msgpack:"b,omitempty"`
	Int     *int64      `msgpack:"i,omitempty"`
	Uint    *uint64     `msgpack:"u,omitempty"`
	Float32 *float32    `msgpack:"f32,omitempty"`
	Float64 *float64    `msgpack:"f64,omitempty"`
	Str     *string     `msgpack:"s,omitempty"`
	Blob    []byte      `msgpack:"blob,omitempty"`
	HugeHi  *int64      `msgpack:"hhi,omitempty"`
	HugeLo  *uint64     `msgpack:"hlo,omitempty"`
	Children []wireValue `msgpack:"children,omitempty"`
	MapKeys  []wireValue `msgpack:"mapkeys,omitempty"`
	MapVals  []wireValue `msgpack:"mapvals,omitempty"`
	UnionTag *uint8      `msgpack:"utag,omitempty"`
}

func toWireValue(v Value) (wireValue, error) {
	wt, err := toWireType(v.typ)
	if err != nil {
		return wireValue{}, err
	}
	w := wireValue{Type: wt, Null: v.isNull}
	if v.isNull {
		return w, nil
	}

	switch v.typ.Tag {
	case types.BOOLEAN:
		b := v.AsBool()
		w.Bool = &b
	case types.TINYINT, types.SMALLINT, types.INTEGER, types.BIGINT:
		i := v.AsInt64()
		w.Int = &i
	case types.UTINYINT, types.USMALLINT, types.UINTEGER, types.UBIGINT:
		u := v.AsUint64()
		w.Uint = &u
	case types.TIMESTAMP_SEC, types.TIMESTAMP_MS, types.TIMESTAMP_US, types.TIMESTAMP_NS:
		i := v.AsInt64()
		w.Int = &i
	case types.FLOAT:
		f := v.payload.(float32)
		w.Float32 = &f
	case types.DOUBLE:
		f := v.AsFloat64()
		w.Float64 = &f
	case types.STRING, types.JSON:
		s := v.AsString()
		w.Str = &s
	case types.BLOB:
		w.Blob = v.AsBlob()
	case types.ENUM:
		s := v.AsString()
		w.Str = &s
	case types.HUGEINT:
		h := v.AsHugeint()
		w.HugeHi, w.HugeLo = &h.Hi, &h.Lo
	case types.UHUGEINT:
		u := v.payload.(Uint128)
		hi, lo := u.Hi, u.Lo
		w.HugeLo = &lo
		hiAsInt := int64(hi)
		w.HugeHi = &hiAsInt
	case types.LIST, types.ARRAY:
		children, err := toWireValues(v.Children())
		if err != nil {
			return wireValue{}, err
		}
		w.Children = children
	case types.MAP:
		entries := v.MapEntries()
		keys := make([]Value, len(entries))
		vals := make([]Value, len(entries))
		for i, e := range entries {
			keys[i], vals[i] = e.Key, e.Value
		}
		wk, err := toWireValues(keys)
		if err != nil {
			return wireValue{}, err
		}
		wv, err := toWireValues(vals)
		if err != nil {
			return wireValue{}, err
		}
		w.MapKeys, w.MapVals = wk, wv
	case types.STRUCT, types.VARIANT:
		children, err := toWireValues(v.Children())
		if err != nil {
			return wireValue{}, err
		}
		w.Children = children
	case types.UNION:
		tagIdx, _ := v.UnionTag()
		u := uint8(tagIdx)
		w.UnionTag = &u
		children, err := toWireValues(v.Children())
		if err != nil {
			return wireValue{}, err
		}
		w.Children = children
	case types.POINTER:
		return wireValue{}, ErrUnserializableType
	default:
		return wireValue{}, fmt.Errorf("%w: %s", ErrUnserializableType, v.typ.Tag)
	}
	return w, nil
}

func toWireValues(vs []Value) ([]wireValue, error) {
	out := make([]wireValue, len(vs))
	for i, c := range vs {
		wv, err := toWireValue(c)
		if err != nil {
			return nil, err
		}
		out[i] = wv
	}
	return out, nil
}

func fromWireValue(w wireValue) Value {
	t := fromWireType(w.Type)
	if w.Null {
		return Null(t)
	}
	switch t.Tag {
	case types.BOOLEAN:
		return NewBool(*w.Bool)
	case types.TINYINT:
		return NewInt8(int8(*w.Int))
	case types.SMALLINT:
		return NewInt16(int16(*w.Int))
	case types.INTEGER:
		return NewInt32(int32(*w.Int))
	case types.BIGINT:
		return NewInt64(*w.Int)
	case types.UTINYINT:
		return NewUint8(uint8(*w.Uint))
	case types.USMALLINT:
		return NewUint16(uint16(*w.Uint))
	case types.UINTEGER:
		return NewUint32(uint32(*w.Uint))
	case types.UBIGINT:
		return NewUint64(*w.Uint)
	case types.TIMESTAMP_SEC, types.TIMESTAMP_MS, types.TIMESTAMP_US, types.TIMESTAMP_NS:
		return NewTimestamp(t.Tag, *w.Int)
	case types.FLOAT:
		return NewFloat32(*w.Float32)
	case types.DOUBLE:
		return NewFloat64(*w.Float64)
	case types.STRING, types.JSON:
		return NewString(*w.Str)
	case types.BLOB:
		return NewBlob(w.Blob)
	case types.ENUM:
		return Value{typ: t, payload: *w.Str}
	case types.HUGEINT:
		return NewHugeint(Int128{Hi: *w.HugeHi, Lo: *w.HugeLo})
	case types.UHUGEINT:
		return NewUhugeint(Uint128{Hi: uint64(*w.HugeHi), Lo: *w.HugeLo})
	case types.LIST:
		ext := t.Extension.(types.ListExt)
		return NewList(ext.Inner, fromWireValues(w.Children))
	case types.ARRAY:
		ext := t.Extension.(types.ArrayExt)
		return NewArray(ext.Inner, fromWireValues(w.Children))
	case types.MAP:
		ext := t.Extension.(types.MapExt)
		keys := fromWireValues(w.MapKeys)
		vals := fromWireValues(w.MapVals)
		entries := make([]MapEntry, len(keys))
		for i := range keys {
			entries[i] = MapEntry{Key: keys[i], Value: vals[i]}
		}
		return NewMap(ext.Key, ext.Value, entries)
	case types.STRUCT:
		ext := t.Extension.(types.StructExt)
		return NewStruct(ext.Fields, fromWireValues(w.Children))
	case types.VARIANT:
		return Value{typ: t, payload: fromWireValues(w.Children)}
	case types.UNION:
		children := fromWireValues(w.Children)
		return Value{typ: t, payload: unionPayload{tag: *w.UnionTag, values: children}}
	default:
		return Null(t)
	}
}

func fromWireValues(ws []wireValue) []Value {
	out := make([]Value, len(ws))
	for i, w := range ws {
		out[i] = fromWireValue(w)
	}
	return out
}

// Serialize encodes v into the length-prefixed tagged MessagePack
// envelope described in spec.md §6. Returns ErrUnserializableType for
// POINTER values or any value that embeds one.
func Serialize(v Value) ([]byte, error) {
	w, err := toWireValue(v)
	if err != nil {
		return nil, err
	}
	data, err := msgpack.Marshal(&w)
	if err != nil {
		return nil, fmt.Errorf("value: marshal: %w", err)
	}
	return data, nil
}

// Deserialize decodes bytes produced by Serialize. Returns
// ErrTruncatedPayload if data is malformed or truncated rather than
// panicking.
func Deserialize(data []byte) (v Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTruncatedPayload, r)
		}
	}()

	var w wireValue
	if uerr := msgpack.Unmarshal(data, &w); uerr != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrTruncatedPayload, uerr)
	}
	return fromWireValue(w), nil
}
