package vector

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/value"
)

// ErrUnbridgeableType is returned when a logical type has no Arrow
// builder/reader path wired up yet (ENUM/UNION/VARIANT/POINTER:
// spec.md's GROUP BY and scan/insert paths never carry these to the
// Arrow boundary, only through the in-memory logical Vector).
var ErrUnbridgeableType = fmt.Errorf("vector: type has no Arrow bridge")

// appendValue appends v's logical payload onto b, dispatching on b's
// concrete type the way the teacher's DML builders do
// (flight/doexchange_dml.go, builder.Field(i).(*array.XBuilder)).
func appendValue(b array.Builder, v value.Value) error {
	if v.IsNull() {
		b.AppendNull()
		return nil
	}
	switch bb := b.(type) {
	case *array.BooleanBuilder:
		bb.Append(v.AsBool())
	case *array.Int8Builder:
		bb.Append(int8(v.AsInt64()))
	case *array.Int16Builder:
		bb.Append(int16(v.AsInt64()))
	case *array.Int32Builder:
		bb.Append(int32(v.AsInt64()))
	case *array.Int64Builder:
		bb.Append(v.AsInt64())
	case *array.Uint8Builder:
		bb.Append(uint8(v.AsUint64()))
	case *array.Uint16Builder:
		bb.Append(uint16(v.AsUint64()))
	case *array.Uint32Builder:
		bb.Append(uint32(v.AsUint64()))
	case *array.Uint64Builder:
		bb.Append(v.AsUint64())
	case *array.Float32Builder:
		bb.Append(float32(v.AsFloat64()))
	case *array.Float64Builder:
		bb.Append(v.AsFloat64())
	case *array.StringBuilder:
		bb.Append(v.AsString())
	case *array.BinaryBuilder:
		bb.Append(v.AsBlob())
	case *array.Decimal128Builder:
		bb.Append(decimal128.FromI64(v.AsInt64()))
	case *array.TimestampBuilder:
		bb.Append(arrow.Timestamp(v.AsInt64()))
	case *array.ListBuilder:
		bb.Append(true)
		vb := bb.ValueBuilder()
		for _, c := range v.Children() {
			if err := appendValue(vb, c); err != nil {
				return err
			}
		}
	case *array.StructBuilder:
		bb.Append(true)
		for i, c := range v.Children() {
			if err := appendValue(bb.FieldBuilder(i), c); err != nil {
				return err
			}
		}
	case *array.MapBuilder:
		bb.Append(true)
		kb, ib := bb.KeyBuilder(), bb.ItemBuilder()
		for _, e := range v.MapEntries() {
			if err := appendValue(kb, e.Key); err != nil {
				return err
			}
			if err := appendValue(ib, e.Value); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnbridgeableType, b)
	}
	return nil
}

// BuildArray materializes count logical rows of v into an arrow.Array
// allocated from mem.
func BuildArray(mem memory.Allocator, v *Vector, count int) (arrow.Array, error) {
	switch v.Type().Tag {
	case types.ENUM, types.UNION, types.VARIANT, types.POINTER:
		return nil, fmt.Errorf("%w: %s", ErrUnbridgeableType, v.Type().Tag)
	}
	dt := v.Type().ToArrowType()
	b := array.NewBuilder(mem, dt)
	defer b.Release()
	for i := 0; i < count; i++ {
		if err := appendValue(b, v.Value(i)); err != nil {
			return nil, err
		}
	}
	return b.NewArray(), nil
}

// readValue reads the value at row i out of arr into the logical type t.
func readValue(arr arrow.Array, i int, t types.ComplexLogicalType) (value.Value, error) {
	if arr.IsNull(i) {
		return value.Null(t), nil
	}
	switch a := arr.(type) {
	case *array.Boolean:
		return value.NewBool(a.Value(i)), nil
	case *array.Int8:
		return value.NewInt8(a.Value(i)), nil
	case *array.Int16:
		return value.NewInt16(a.Value(i)), nil
	case *array.Int32:
		return value.NewInt32(a.Value(i)), nil
	case *array.Int64:
		return value.NewInt64(a.Value(i)), nil
	case *array.Uint8:
		return value.NewUint8(a.Value(i)), nil
	case *array.Uint16:
		return value.NewUint16(a.Value(i)), nil
	case *array.Uint32:
		return value.NewUint32(a.Value(i)), nil
	case *array.Uint64:
		return value.NewUint64(a.Value(i)), nil
	case *array.Float32:
		return value.NewFloat32(a.Value(i)), nil
	case *array.Float64:
		return value.NewFloat64(a.Value(i)), nil
	case *array.String:
		return value.NewString(a.Value(i)), nil
	case *array.Binary:
		return value.NewBlob(a.Value(i)), nil
	case *array.Decimal128:
		return value.CastAs(value.NewInt64(a.Value(i).BigInt().Int64()), t)
	case *array.Timestamp:
		return value.NewTimestamp(t.Tag, int64(a.Value(i))), nil
	case *array.List:
		ext := t.Extension.(types.ListExt)
		start, end := a.ValueOffsets(i)
		children := make([]value.Value, 0, end-start)
		for j := start; j < end; j++ {
			cv, err := readValue(a.ListValues(), int(j), ext.Inner)
			if err != nil {
				return value.Value{}, err
			}
			children = append(children, cv)
		}
		return value.NewList(ext.Inner, children), nil
	case *array.Struct:
		ext := t.Extension.(types.StructExt)
		children := make([]value.Value, len(ext.Fields))
		for f := range ext.Fields {
			cv, err := readValue(a.Field(f), i, ext.Fields[f].Type)
			if err != nil {
				return value.Value{}, err
			}
			children[f] = cv
		}
		return value.NewStruct(ext.Fields, children), nil
	case *array.Map:
		ext := t.Extension.(types.MapExt)
		start, end := a.ValueOffsets(i)
		keys, items := a.Keys(), a.Items()
		entries := make([]value.MapEntry, 0, end-start)
		for j := start; j < end; j++ {
			kv, err := readValue(keys, int(j), ext.Key)
			if err != nil {
				return value.Value{}, err
			}
			iv, err := readValue(items, int(j), ext.Value)
			if err != nil {
				return value.Value{}, err
			}
			entries = append(entries, value.MapEntry{Key: kv, Value: iv})
		}
		return value.NewMap(ext.Key, ext.Value, entries), nil
	default:
		return value.Value{}, fmt.Errorf("%w: %T", ErrUnbridgeableType, arr)
	}
}

// FromArray builds a FLAT vector of logical type t from arr.
func FromArray(arr arrow.Array, t types.ComplexLogicalType) (*Vector, error) {
	n := arr.Len()
	v := New(t, n)
	for i := 0; i < n; i++ {
		val, err := readValue(arr, i, t)
		if err != nil {
			return nil, err
		}
		v.data[i] = val
		v.validity[i] = !val.IsNull()
	}
	return v, nil
}
