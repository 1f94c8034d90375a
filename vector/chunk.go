package vector

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/doctable-go/types"
)

// DataChunk is a fixed-capacity batch of column vectors that all share
// the same cardinality, per spec.md §4.C.
type DataChunk struct {
	columns     []*Vector
	names       []string
	cardinality int
	capacity    int
}

// NewChunk constructs an empty chunk over the given column names/types
// with the given capacity.
func NewChunk(names []string, colTypes []types.ComplexLogicalType, capacity int) (*DataChunk, error) {
	if len(names) != len(colTypes) {
		return nil, fmt.Errorf("vector: NewChunk names/types length mismatch (%d vs %d)", len(names), len(colTypes))
	}
	cols := make([]*Vector, len(colTypes))
	for i, t := range colTypes {
		cols[i] = New(t, capacity)
	}
	return &DataChunk{columns: cols, names: append([]string(nil), names...), capacity: capacity}, nil
}

// Cardinality returns the chunk's current row count.
func (c *DataChunk) Cardinality() int { return c.cardinality }

// Capacity returns the chunk's allocated row capacity.
func (c *DataChunk) Capacity() int { return c.capacity }

// SetCardinality sets the chunk's logical row count; it must not
// exceed Capacity.
func (c *DataChunk) SetCardinality(n int) error {
	if n > c.capacity {
		return fmt.Errorf("vector: cardinality %d exceeds capacity %d", n, c.capacity)
	}
	c.cardinality = n
	return nil
}

// Column returns the i'th column vector.
func (c *DataChunk) Column(i int) *Vector { return c.columns[i] }

// ColumnNames returns the chunk's column names, aligned with Column(i).
func (c *DataChunk) ColumnNames() []string { return c.names }

// ColumnCount returns the number of columns.
func (c *DataChunk) ColumnCount() int { return len(c.columns) }

// Types returns the aligned column types (spec.md §4.C "types()").
func (c *DataChunk) Types() []types.ComplexLogicalType {
	out := make([]types.ComplexLogicalType, len(c.columns))
	for i, col := range c.columns {
		out[i] = col.Type()
	}
	return out
}

// Resize grows the chunk's capacity to newCapacity, doubling semantics
// are the caller's responsibility (spec.md §4.C "resize ... doubling
// when exceeded").
func (c *DataChunk) Resize(newCapacity int) {
	for i, col := range c.columns {
		extended := New(col.Type(), newCapacity)
		for r := 0; r < col.Len() && r < newCapacity; r++ {
			extended.data[r] = col.Value(r)
			extended.validity[r] = col.IsValid(r)
		}
		c.columns[i] = extended
	}
	c.capacity = newCapacity
}

// Append appends other's rows onto c, growing capacity (doubling) if
// needed when resize is true; otherwise Append fails once capacity is
// exhausted.
func (c *DataChunk) Append(other *DataChunk, resize bool) error {
	if len(c.columns) != len(other.columns) {
		return fmt.Errorf("vector: Append column count mismatch (%d vs %d)", len(c.columns), len(other.columns))
	}
	need := c.cardinality + other.cardinality
	if need > c.capacity {
		if !resize {
			return fmt.Errorf("vector: Append would exceed capacity (%d > %d)", need, c.capacity)
		}
		newCap := c.capacity
		if newCap == 0 {
			newCap = 1
		}
		for newCap < need {
			newCap *= 2
		}
		c.Resize(newCap)
	}
	for i, col := range c.columns {
		col.Flatten(col.Len())
		for r := 0; r < other.cardinality; r++ {
			_ = col.SetValue(c.cardinality+r, other.columns[i].Value(r))
		}
	}
	c.cardinality = need
	return nil
}

// Slice returns a new chunk containing the selected rows.
func (c *DataChunk) Slice(selection []int) *DataChunk {
	out := &DataChunk{names: append([]string(nil), c.names...), capacity: len(selection), cardinality: len(selection)}
	out.columns = make([]*Vector, len(c.columns))
	for i, col := range c.columns {
		out.columns[i] = col.Slice(selection)
	}
	return out
}

// Reference makes c an alias of other's columns, sharing the
// underlying data (cheap, used for zero-copy pass-through operators).
func (c *DataChunk) Reference(other *DataChunk) {
	c.columns = other.columns
	c.names = other.names
	c.cardinality = other.cardinality
	c.capacity = other.capacity
}

// Split returns two chunks: the first `at` rows, and the remainder.
func (c *DataChunk) Split(at int) (*DataChunk, *DataChunk) {
	first := make([]int, at)
	for i := range first {
		first[i] = i
	}
	rest := make([]int, c.cardinality-at)
	for i := range rest {
		rest[i] = at + i
	}
	return c.Slice(first), c.Slice(rest)
}

// Fuse concatenates other's columns onto c's, requiring equal
// cardinality.
func (c *DataChunk) Fuse(other *DataChunk) error {
	if c.cardinality != other.cardinality {
		return fmt.Errorf("vector: Fuse cardinality mismatch (%d vs %d)", c.cardinality, other.cardinality)
	}
	c.columns = append(c.columns, other.columns...)
	c.names = append(c.names, other.names...)
	return nil
}

// Flatten materializes every column to FLAT representation.
func (c *DataChunk) Flatten() {
	for _, col := range c.columns {
		col.Flatten(c.cardinality)
	}
}

// Hash returns the combined per-row hash across every column.
func (c *DataChunk) Hash() []uint64 {
	out := make([]uint64, c.cardinality)
	for _, col := range c.columns {
		col.CombineHash(c.cardinality, out)
	}
	return out
}

// HashColumns returns the combined per-row hash across only the given
// column indices (spec.md §4.C "hash(cols, result)").
func (c *DataChunk) HashColumns(cols []int) []uint64 {
	out := make([]uint64, c.cardinality)
	for _, ci := range cols {
		c.columns[ci].CombineHash(c.cardinality, out)
	}
	return out
}

// ToRecord converts c into an arrow.RecordBatch, backing each column
// with a freshly built Arrow array. Grounded on the teacher's
// array.NewRecordBatch(schema, cols, numRows) construction
// (flight/doexchange_dml.go).
func (c *DataChunk) ToRecord(mem memory.Allocator) (arrow.RecordBatch, error) {
	fields := make([]arrow.Field, len(c.columns))
	arrays := make([]arrow.Array, len(c.columns))
	for i, col := range c.columns {
		fields[i] = col.Type().ArrowField(c.names[i])
		arr, err := BuildArray(mem, col, c.cardinality)
		if err != nil {
			for _, a := range arrays[:i] {
				if a != nil {
					a.Release()
				}
			}
			return nil, err
		}
		arrays[i] = arr
	}
	schema := arrow.NewSchema(fields, nil)
	rec := array.NewRecordBatch(schema, arrays, int64(c.cardinality))
	for _, a := range arrays {
		a.Release()
	}
	return rec, nil
}

// FromRecord builds a DataChunk from an arrow.RecordBatch, projecting
// each Arrow column back onto the given logical types (which must
// align positionally with the record's schema).
func FromRecord(rec arrow.RecordBatch, colTypes []types.ComplexLogicalType) (*DataChunk, error) {
	schema := rec.Schema()
	if int(rec.NumCols()) != len(colTypes) {
		return nil, fmt.Errorf("vector: FromRecord column count mismatch (%d vs %d)", rec.NumCols(), len(colTypes))
	}
	n := int(rec.NumRows())
	names := make([]string, len(colTypes))
	cols := make([]*Vector, len(colTypes))
	for i, t := range colTypes {
		names[i] = schema.Field(i).Name
		v, err := FromArray(rec.Column(i), t)
		if err != nil {
			return nil, err
		}
		cols[i] = v
	}
	return &DataChunk{columns: cols, names: names, cardinality: n, capacity: n}, nil
}
