// Package value implements the logical value model: a tagged scalar
// pairing a types.ComplexLogicalType with a payload, plus the
// arithmetic, comparison, cast, hashing, and serialization algebra
// every operator in the engine consumes uniformly (spec.md §4.A).
//
// Per spec.md §9 "Dynamic typing of the value model", Value is a
// sealed tagged sum rather than a class hierarchy: composite payloads
// (list/array/map/struct/union/variant) own a heap-allocated []Value
// of children instead of recursive pointers between Values.
package value

import (
	"errors"
	"fmt"

	"github.com/hugr-lab/doctable-go/types"
)

// Sentinel errors, matching the spec.md §7 taxonomy and the teacher's
// errors.New-sentinel idiom (flight/errors.go).
var (
	ErrTypeMismatch        = errors.New("value: type mismatch")
	ErrUnserializableType  = errors.New("value: type cannot be serialized")
	ErrDivideByZero        = errors.New("value: integer division by zero")
	ErrTruncatedPayload    = errors.New("value: truncated serialized payload")
	ErrUnsupportedCast     = errors.New("value: unsupported cast")
	ErrIncompatibleCompare = errors.New("value: values are not comparable")
)

// MapEntry is one (key, value) pair inside a MAP value.
type MapEntry struct {
	Key   Value
	Value Value
}

// Value is the (type, payload) pair described in spec.md §3. The zero
// Value has type NA and is not null (IsNull reports false); use Null to
// build a null value.
type Value struct {
	typ     types.ComplexLogicalType
	isNull  bool
	payload any
}

// Type returns the value's logical type.
func (v Value) Type() types.ComplexLogicalType { return v.typ }

// IsNull reports whether v represents SQL NULL.
func (v Value) IsNull() bool { return v.isNull }

// Null constructs a null value of the given logical type.
func Null(t types.ComplexLogicalType) Value {
	return Value{typ: t, isNull: true}
}

// NewBool constructs a BOOLEAN value.
func NewBool(b bool) Value { return Value{typ: types.Simple(types.BOOLEAN), payload: b} }

// NewInt8/16/32/64 construct signed integer values.
func NewInt8(i int8) Value   { return Value{typ: types.Simple(types.TINYINT), payload: i} }
func NewInt16(i int16) Value { return Value{typ: types.Simple(types.SMALLINT), payload: i} }
func NewInt32(i int32) Value { return Value{typ: types.Simple(types.INTEGER), payload: i} }
func NewInt64(i int64) Value { return Value{typ: types.Simple(types.BIGINT), payload: i} }

// NewUint8/16/32/64 construct unsigned integer values.
func NewUint8(u uint8) Value   { return Value{typ: types.Simple(types.UTINYINT), payload: u} }
func NewUint16(u uint16) Value { return Value{typ: types.Simple(types.USMALLINT), payload: u} }
func NewUint32(u uint32) Value { return Value{typ: types.Simple(types.UINTEGER), payload: u} }
func NewUint64(u uint64) Value { return Value{typ: types.Simple(types.UBIGINT), payload: u} }

// NewFloat32/64 construct floating point values.
func NewFloat32(f float32) Value { return Value{typ: types.Simple(types.FLOAT), payload: f} }
func NewFloat64(f float64) Value { return Value{typ: types.Simple(types.DOUBLE), payload: f} }

// NewString constructs a STRING_LITERAL value.
func NewString(s string) Value { return Value{typ: types.Simple(types.STRING), payload: s} }

// NewBlob constructs a BLOB value.
func NewBlob(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{typ: types.Simple(types.BLOB), payload: cp}
}

// NewHugeint constructs a HUGEINT value from an Int128.
func NewHugeint(i Int128) Value { return Value{typ: types.Simple(types.HUGEINT), payload: i} }

// NewUhugeint constructs a UHUGEINT value from a Uint128.
func NewUhugeint(u Uint128) Value { return Value{typ: types.Simple(types.UHUGEINT), payload: u} }

// NewTimestamp constructs a TIMESTAMP_* value holding ticks since the
// epoch at the unit implied by tag.
func NewTimestamp(tag types.Tag, ticks int64) Value {
	if !tag.IsTimestamp() {
		panic("value: NewTimestamp requires a TIMESTAMP_* tag")
	}
	return Value{typ: types.Simple(tag), payload: ticks}
}

// NewPointer constructs a POINTER value. POINTER values can never be
// serialized (spec.md §4.A).
func NewPointer(p uintptr) Value { return Value{typ: types.Simple(types.POINTER), payload: p} }

// NewList constructs a LIST value over the given element type.
func NewList(elem types.ComplexLogicalType, children []Value) Value {
	cp := append([]Value(nil), children...)
	return Value{typ: types.NewList(elem), payload: cp}
}

// NewArray constructs a fixed-size ARRAY value.
func NewArray(elem types.ComplexLogicalType, children []Value) Value {
	cp := append([]Value(nil), children...)
	return Value{typ: types.NewArray(elem, len(children)), payload: cp}
}

// NewMap constructs a MAP value.
func NewMap(key, val types.ComplexLogicalType, entries []MapEntry) Value {
	cp := append([]MapEntry(nil), entries...)
	return Value{typ: types.NewMap(key, val), payload: cp}
}

// NewStruct constructs a STRUCT value. fields and values must be the
// same length and in the same order.
func NewStruct(fields []types.StructField, values []Value) Value {
	if len(fields) != len(values) {
		panic("value: NewStruct field/value length mismatch")
	}
	cp := append([]Value(nil), values...)
	return Value{typ: types.NewStruct(fields), payload: cp}
}

// NewUnion constructs a UNION value tagged to member index memberIdx
// (0-based into the member list, i.e. excluding the hidden tag field).
func NewUnion(members []types.StructField, memberIdx int, v Value) Value {
	if memberIdx < 0 || memberIdx >= len(members) {
		panic("value: union member index out of range")
	}
	t := types.NewUnion(members)
	payload := make([]Value, len(members))
	for i := range payload {
		payload[i] = Null(members[i].Type)
	}
	payload[memberIdx] = v
	return Value{typ: t, payload: unionPayload{tag: uint8(memberIdx), values: payload}}
}

type unionPayload struct {
	tag    uint8
	values []Value
}

// Children returns the ordered child values of a list/array/struct
// value, or nil for scalar and map values.
func (v Value) Children() []Value {
	switch cs := v.payload.(type) {
	case []Value:
		return cs
	case unionPayload:
		return cs.values
	default:
		return nil
	}
}

// UnionTag returns the active member index of a UNION value.
func (v Value) UnionTag() (int, bool) {
	up, ok := v.payload.(unionPayload)
	if !ok {
		return 0, false
	}
	return int(up.tag), true
}

// MapEntries returns the entries of a MAP value, or nil otherwise.
func (v Value) MapEntries() []MapEntry {
	if es, ok := v.payload.([]MapEntry); ok {
		return es
	}
	return nil
}

// AsBool, AsInt64, AsUint64, AsFloat64, AsString, AsBlob, AsHugeint
// extract v's primitive payload, widening integers to the requested
// width (the numeric accessors also convert between integer and
// floating-point payloads). They never panic: a payload of an
// incompatible kind yields the zero value of the result type.
func (v Value) AsBool() bool {
	b, _ := v.payload.(bool)
	return b
}

func (v Value) AsInt64() int64 {
	switch p := v.payload.(type) {
	case int8:
		return int64(p)
	case int16:
		return int64(p)
	case int32:
		return int64(p)
	case int64:
		return p
	case uint8:
		return int64(p)
	case uint16:
		return int64(p)
	case uint32:
		return int64(p)
	case uint64:
		return int64(p)
	case float32:
		return int64(p)
	case float64:
		return int64(p)
	case bool:
		if p {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func (v Value) AsUint64() uint64 {
	switch p := v.payload.(type) {
	case uint8:
		return uint64(p)
	case uint16:
		return uint64(p)
	case uint32:
		return uint64(p)
	case uint64:
		return p
	default:
		return uint64(v.AsInt64())
	}
}

func (v Value) AsFloat64() float64 {
	switch p := v.payload.(type) {
	case float32:
		return float64(p)
	case float64:
		return p
	default:
		return float64(v.AsInt64())
	}
}

func (v Value) AsString() string {
	s, _ := v.payload.(string)
	return s
}

func (v Value) AsBlob() []byte {
	b, _ := v.payload.([]byte)
	return b
}

func (v Value) AsHugeint() Int128 {
	switch p := v.payload.(type) {
	case Int128:
		return p
	default:
		return Int128FromInt64(v.AsInt64())
	}
}

func (v Value) String() string {
	if v.isNull {
		return fmt.Sprintf("%s(NULL)", v.typ.Tag)
	}
	return fmt.Sprintf("%s(%v)", v.typ.Tag, v.payload)
}
