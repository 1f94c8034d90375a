// Package vector implements the Vector and DataChunk columnar
// primitives that the operator pipeline streams between stages
// (spec.md §4.C). A Vector holds one logical column's worth of rows;
// a DataChunk holds a fixed-capacity batch of vectors that all share
// the same cardinality.
//
// Vectors are backed by the logical value.Value model rather than raw
// Arrow buffers directly, mirroring the teacher's own choice to keep
// catalog-facing code working in terms of typed Go values and only
// drop to Arrow arrays at the RecordBatch boundary (see chunk.go's
// ToRecord/FromRecord, grounded on the teacher's
// array.NewRecordBuilder/RecordReader usage).
package vector

import (
	"errors"
	"fmt"

	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/value"
)

// VectorType classifies how a Vector's data is physically represented,
// per spec.md §4.C.
type VectorType int

const (
	// FLAT is one value per row, stored directly.
	FLAT VectorType = iota
	// CONSTANT broadcasts a single value across every row.
	CONSTANT
	// DICTIONARY indirects through a selection vector into a referenced
	// flat buffer.
	DICTIONARY
	// SEQUENCE is an arithmetic progression (start, increment), used for
	// synthetic row-number columns.
	SEQUENCE
)

func (t VectorType) String() string {
	switch t {
	case FLAT:
		return "FLAT"
	case CONSTANT:
		return "CONSTANT"
	case DICTIONARY:
		return "DICTIONARY"
	case SEQUENCE:
		return "SEQUENCE"
	default:
		return fmt.Sprintf("VectorType(%d)", int(t))
	}
}

var (
	// ErrIndexOutOfRange is returned by SetValue/SetNull when i is
	// outside [0, len).
	ErrIndexOutOfRange = errors.New("vector: index out of range")
)

// Vector is one logical column's worth of rows. The zero Vector is not
// usable; construct with New.
type Vector struct {
	typ     types.ComplexLogicalType
	vecType VectorType
	// data holds len(validity) flat values for FLAT/SEQUENCE vectors, or
	// exactly one value for CONSTANT. DICTIONARY vectors store the
	// referenced flat buffer in dictData and the per-row index in sel.
	data     []value.Value
	validity []bool

	dictData []value.Value
	sel      []int

	seqStart int64
	seqStep  int64
}

// New constructs a FLAT vector of count null rows with logical type t.
func New(t types.ComplexLogicalType, count int) *Vector {
	v := &Vector{typ: t, vecType: FLAT, data: make([]value.Value, count), validity: make([]bool, count)}
	for i := range v.data {
		v.data[i] = value.Null(t)
	}
	return v
}

// NewConstant constructs a CONSTANT vector broadcasting val across
// count logical rows.
func NewConstant(val value.Value, count int) *Vector {
	return &Vector{typ: val.Type(), vecType: CONSTANT, data: []value.Value{val}, validity: []bool{!val.IsNull()}, seqStart: int64(count)}
}

// NewSequence constructs a SEQUENCE vector of count BIGINT rows
// start, start+step, start+2*step, ...
func NewSequence(start, step int64, count int) *Vector {
	return &Vector{typ: types.Simple(types.BIGINT), vecType: SEQUENCE, seqStart: start, seqStep: step, validity: make([]bool, count)}
}

// Type returns the vector's logical column type.
func (v *Vector) Type() types.ComplexLogicalType { return v.typ }

// VecType returns the vector's physical representation kind.
func (v *Vector) VecType() VectorType { return v.vecType }

// Len reports the vector's logical row count.
func (v *Vector) Len() int {
	switch v.vecType {
	case CONSTANT:
		return int(v.seqStart)
	case SEQUENCE:
		return len(v.validity)
	case DICTIONARY:
		return len(v.sel)
	default:
		return len(v.data)
	}
}

// Value returns the logical value at row i, resolving CONSTANT
// broadcast, SEQUENCE generation, and DICTIONARY indirection
// transparently.
func (v *Vector) Value(i int) value.Value {
	switch v.vecType {
	case CONSTANT:
		return v.data[0]
	case SEQUENCE:
		return value.NewInt64(v.seqStart + int64(i)*v.seqStep)
	case DICTIONARY:
		return v.dictData[v.sel[i]]
	default:
		return v.data[i]
	}
}

// SetValue flattens a non-FLAT vector in place (if needed) and writes
// val at row i.
func (v *Vector) SetValue(i int, val value.Value) error {
	v.Flatten(v.Len())
	if i < 0 || i >= len(v.data) {
		return fmt.Errorf("%w: SetValue(%d) len=%d", ErrIndexOutOfRange, i, len(v.data))
	}
	v.data[i] = val
	v.validity[i] = !val.IsNull()
	return nil
}

// SetNull flattens a non-FLAT vector in place (if needed) and marks
// row i null or non-null.
func (v *Vector) SetNull(i int, isNull bool) error {
	v.Flatten(v.Len())
	if i < 0 || i >= len(v.validity) {
		return fmt.Errorf("%w: SetNull(%d) len=%d", ErrIndexOutOfRange, i, len(v.validity))
	}
	v.validity[i] = !isNull
	if isNull {
		v.data[i] = value.Null(v.typ)
	}
	return nil
}

// IsValid reports whether row i is non-null.
func (v *Vector) IsValid(i int) bool {
	switch v.vecType {
	case CONSTANT:
		return v.validity[0]
	case SEQUENCE:
		return true
	case DICTIONARY:
		return !v.dictData[v.sel[i]].IsNull()
	default:
		return v.validity[i]
	}
}

// Flatten materializes a CONSTANT/DICTIONARY/SEQUENCE vector into a
// FLAT vector of the given row count, leaving an already-FLAT vector
// untouched (count must match its existing length).
func (v *Vector) Flatten(count int) {
	if v.vecType == FLAT {
		return
	}
	data := make([]value.Value, count)
	validity := make([]bool, count)
	for i := 0; i < count; i++ {
		data[i] = v.Value(i)
		validity[i] = v.IsValid(i)
	}
	v.vecType = FLAT
	v.data = data
	v.validity = validity
	v.dictData = nil
	v.sel = nil
}

// Slice returns a new FLAT vector containing the rows selected by
// selection (a list of source row indices), in order.
func (v *Vector) Slice(selection []int) *Vector {
	out := &Vector{typ: v.typ, vecType: FLAT, data: make([]value.Value, len(selection)), validity: make([]bool, len(selection))}
	for i, src := range selection {
		out.data[i] = v.Value(src)
		out.validity[i] = v.IsValid(src)
	}
	return out
}

// UnifiedFormat is the canonical view over any VectorType: a flat data
// slice, a selection vector mapping logical row -> data index, and a
// validity mask indexed by data index (spec.md §4.C
// "to_unified_format").
type UnifiedFormat struct {
	Data     []value.Value
	Sel      []int
	Validity []bool
}

// ToUnifiedFormat produces the canonical (data, selection, validity)
// view of v over count logical rows.
func (v *Vector) ToUnifiedFormat(count int) UnifiedFormat {
	switch v.vecType {
	case DICTIONARY:
		validity := make([]bool, len(v.dictData))
		for i, d := range v.dictData {
			validity[i] = !d.IsNull()
		}
		return UnifiedFormat{Data: v.dictData, Sel: v.sel[:count], Validity: validity}
	case CONSTANT:
		sel := make([]int, count)
		return UnifiedFormat{Data: v.data, Sel: sel, Validity: v.validity}
	default:
		sel := make([]int, count)
		data := make([]value.Value, count)
		validity := make([]bool, count)
		for i := 0; i < count; i++ {
			sel[i] = i
			data[i] = v.Value(i)
			validity[i] = v.IsValid(i)
		}
		return UnifiedFormat{Data: data, Sel: sel, Validity: validity}
	}
}

// Copy copies count rows from source (indexed via selection, or
// identity if selection is nil) starting at srcOff into v starting at
// tgtOff. v is flattened first if needed.
func (v *Vector) Copy(source *Vector, selection []int, count, srcOff, tgtOff int) {
	v.Flatten(v.Len())
	for i := 0; i < count; i++ {
		srcIdx := srcOff + i
		if selection != nil {
			srcIdx = selection[srcOff+i]
		}
		_ = v.SetValue(tgtOff+i, source.Value(srcIdx))
	}
}

// Hash returns the per-row hash of v over count logical rows.
func (v *Vector) Hash(count int) []uint64 {
	out := make([]uint64, count)
	for i := 0; i < count; i++ {
		out[i] = v.Value(i).Hash()
	}
	return out
}

// CombineHash folds v's per-row hashes into an existing hash vector
// (e.g. building a multi-column GROUP BY key), per spec.md §4.C
// "combine_hash".
func (v *Vector) CombineHash(count int, into []uint64) {
	for i := 0; i < count; i++ {
		into[i] = value.CombineHash(into[i], v.Value(i).Hash())
	}
}
