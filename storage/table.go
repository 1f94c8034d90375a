package storage

import (
	"fmt"

	"github.com/hugr-lab/doctable-go/value"
	"github.com/hugr-lab/doctable-go/vector"
)

// Table is the ordered column-info list plus ordered row-groups that
// make up one collection's physical storage (spec.md §3 "Data-table").
type Table struct {
	columns   []ColumnInfo
	rowGroups []*RowGroup

	appendTarget *RowGroup
	appendSnap   int
}

// NewTable creates an empty table with the given column definitions.
func NewTable(infos []ColumnInfo) *Table {
	cols := make([]ColumnInfo, len(infos))
	copy(cols, infos)
	return &Table{columns: cols}
}

// Columns returns the table's ordered column-info list.
func (t *Table) Columns() []ColumnInfo { return append([]ColumnInfo{}, t.columns...) }

// ColumnIndex returns the index of the column named name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for _, c := range t.columns {
		if c.Name == name {
			return c.Index
		}
	}
	return -1
}

// RowCount returns the table's total physical row count, including
// rows carrying a delete tombstone.
func (t *Table) RowCount() int {
	n := 0
	for _, g := range t.rowGroups {
		n += g.Len()
	}
	return n
}

// InitializeAppend enters APPENDING on (or allocates) the tail
// row-group.
func (t *Table) InitializeAppend() error {
	if len(t.rowGroups) == 0 || t.rowGroups[len(t.rowGroups)-1].Full() {
		t.rowGroups = append(t.rowGroups, newRowGroup(t.columns))
	}
	t.appendTarget = t.rowGroups[len(t.rowGroups)-1]
	t.appendSnap = t.RowCount()
	return t.appendTarget.InitializeAppend()
}

// Append writes chunk's rows, spilling into new row-groups as the
// current tail fills. Must be called between InitializeAppend and
// FinalizeAppend.
func (t *Table) Append(chunk *vector.DataChunk) error {
	if t.appendTarget == nil {
		return fmt.Errorf("%w: Append before InitializeAppend", ErrInvalidState)
	}
	offset := 0
	for offset < chunk.Cardinality() {
		n, err := t.appendTarget.Append(chunk, offset)
		if err != nil {
			return err
		}
		offset += n
		if offset < chunk.Cardinality() {
			if err := t.appendTarget.FinalizeAppend(); err != nil {
				return err
			}
			t.rowGroups = append(t.rowGroups, newRowGroup(t.columns))
			t.appendTarget = t.rowGroups[len(t.rowGroups)-1]
			if err := t.appendTarget.InitializeAppend(); err != nil {
				return err
			}
		}
	}
	return nil
}

// FinalizeAppend seals the row-group under active append.
func (t *Table) FinalizeAppend() error {
	if t.appendTarget == nil {
		return fmt.Errorf("%w: FinalizeAppend before InitializeAppend", ErrInvalidState)
	}
	err := t.appendTarget.FinalizeAppend()
	t.appendTarget = nil
	return err
}

// RevertAppend rolls the table back to the row count observed at the
// matching InitializeAppend, dropping any row-groups created purely by
// the reverted append.
func (t *Table) RevertAppend() {
	if t.appendTarget == nil {
		return
	}
	for t.RowCount() > t.appendSnap && len(t.rowGroups) > 0 {
		tail := t.rowGroups[len(t.rowGroups)-1]
		tail.RevertAppend()
		if tail.Len() == 0 && len(t.rowGroups) > 1 {
			t.rowGroups = t.rowGroups[:len(t.rowGroups)-1]
			continue
		}
		break
	}
	t.appendTarget = nil
}

// rowGroupFor locates the row-group and local row index owning the
// absolute row index i.
func (t *Table) rowGroupFor(i int) (*RowGroup, int, error) {
	for _, g := range t.rowGroups {
		if i < g.Len() {
			return g, i, nil
		}
		i -= g.Len()
	}
	return nil, 0, ErrRowNotFound
}

// Delete sets a tombstone bit on absolute row index i.
func (t *Table) Delete(i int) error {
	g, local, err := t.rowGroupFor(i)
	if err != nil {
		return err
	}
	return g.Delete(local)
}

// Update writes v into the update layer for column idx at absolute row
// index i.
func (t *Table) Update(i, idx int, v value.Value) error {
	g, local, err := t.rowGroupFor(i)
	if err != nil {
		return err
	}
	return g.Update(idx, local, v)
}

// Filter decides which local rows of a scanned chunk survive; it
// receives the raw chunk and returns the surviving row indexes. A nil
// Filter keeps every row. Kept as a closure type rather than importing
// an expression-tree package to avoid a storage->expr import cycle.
type Filter func(*vector.DataChunk) []int

// ScanState tracks position through a table-level Scan.
type ScanState struct {
	rowGroupIdx int
	rowOffset   int
}

// InitializeScan returns a ScanState positioned at the first row.
func (t *Table) InitializeScan() *ScanState { return &ScanState{} }

// InitializeScanWithOffset returns a ScanState positioned to skip the
// first n physical rows.
func (t *Table) InitializeScanWithOffset(n int) *ScanState {
	s := &ScanState{}
	for s.rowGroupIdx < len(t.rowGroups) {
		g := t.rowGroups[s.rowGroupIdx]
		if n < g.Len() {
			s.rowOffset = n
			return s
		}
		n -= g.Len()
		s.rowGroupIdx++
	}
	return s
}

// Scan fills chunk with up to chunk.Capacity() surviving rows (those
// without a delete tombstone and, if f is non-nil, passing f),
// resolving column values through each row-group's update layer.
// Returns false once the scan is exhausted.
func (t *Table) Scan(s *ScanState, chunk *vector.DataChunk, f Filter) (bool, error) {
	cols := make([]int, len(t.columns))
	for i := range t.columns {
		cols[i] = i
	}
	return t.ScanColumns(s, chunk, cols, f)
}

// ScanColumns behaves like Scan but reads only the table columns listed
// in cols, writing them into chunk's columns in the same order: chunk
// column i receives table column cols[i]. Lets a caller avoid touching
// columns it never projects (spec.md §4.H "Must read only projected
// columns").
func (t *Table) ScanColumns(s *ScanState, chunk *vector.DataChunk, cols []int, f Filter) (bool, error) {
	n := 0
	cap := chunk.Capacity()
	for s.rowGroupIdx < len(t.rowGroups) && n < cap {
		g := t.rowGroups[s.rowGroupIdx]
		for s.rowOffset < g.Len() && n < cap {
			if !g.IsDeleted(s.rowOffset) {
				for oi, ci := range cols {
					if err := chunk.Column(oi).SetValue(n, g.Value(ci, s.rowOffset)); err != nil {
						return false, err
					}
				}
				n++
			}
			s.rowOffset++
		}
		if s.rowOffset >= g.Len() {
			s.rowGroupIdx++
			s.rowOffset = 0
		}
	}
	if err := chunk.SetCardinality(n); err != nil {
		return false, err
	}
	if f != nil {
		keep := f(chunk)
		filtered := chunk.Slice(keep)
		*chunk = *filtered
	}
	more := s.rowGroupIdx < len(t.rowGroups)
	return more, nil
}

// ScanColumnsIndexed behaves like ScanColumns but additionally returns
// each surviving row's absolute table row index, in the same order as
// the rows written into chunk. Lets a caller (e.g. Delete/Update
// operators) resolve a scanned, filtered row back to the physical row
// Table.Delete/Table.Update expects.
func (t *Table) ScanColumnsIndexed(s *ScanState, chunk *vector.DataChunk, cols []int, f Filter) ([]int, bool, error) {
	var absolute []int
	n := 0
	cap := chunk.Capacity()
	base := 0
	for j := 0; j < s.rowGroupIdx && j < len(t.rowGroups); j++ {
		base += t.rowGroups[j].Len()
	}
	for s.rowGroupIdx < len(t.rowGroups) && n < cap {
		g := t.rowGroups[s.rowGroupIdx]
		for s.rowOffset < g.Len() && n < cap {
			if !g.IsDeleted(s.rowOffset) {
				for oi, ci := range cols {
					if err := chunk.Column(oi).SetValue(n, g.Value(ci, s.rowOffset)); err != nil {
						return nil, false, err
					}
				}
				absolute = append(absolute, base+s.rowOffset)
				n++
			}
			s.rowOffset++
		}
		if s.rowOffset >= g.Len() {
			base += g.Len()
			s.rowGroupIdx++
			s.rowOffset = 0
		}
	}
	if err := chunk.SetCardinality(n); err != nil {
		return nil, false, err
	}
	if f != nil {
		keep := f(chunk)
		filtered := make([]int, len(keep))
		for i, k := range keep {
			filtered[i] = absolute[k]
		}
		absolute = filtered
		slicedChunk := chunk.Slice(keep)
		*chunk = *slicedChunk
	}
	more := s.rowGroupIdx < len(t.rowGroups)
	return absolute, more, nil
}

// NewTableWithColumn returns a new table that shares parent's
// row-groups and appends one new column, backfilled on every existing
// row with newCol.Default (spec.md §4.D schema-extension). parent must
// not be appended to again; it is logically consumed by this call.
func NewTableWithColumn(parent *Table, newCol ColumnInfo) *Table {
	newCol.Index = len(parent.columns)
	child := &Table{
		columns:   append(append([]ColumnInfo{}, parent.columns...), newCol),
		rowGroups: make([]*RowGroup, len(parent.rowGroups)),
	}
	for i, g := range parent.rowGroups {
		child.rowGroups[i] = g.extendWithColumn(newCol, newCol.Default)
	}
	return child
}

// Value returns the logical value for absolute row i, column idx,
// applying the owning row-group's update layer. Returns the column's
// default (or type-null) when the row predates the column, as happens
// on a row-group shared from before a schema extension.
func (t *Table) Value(i, idx int) (value.Value, error) {
	g, local, err := t.rowGroupFor(i)
	if err != nil {
		return value.Value{}, err
	}
	if idx >= len(g.columns) {
		if idx >= len(t.columns) {
			return value.Value{}, ErrColumnNotFound
		}
		info := t.columns[idx]
		if !info.Default.IsNull() {
			return info.Default, nil
		}
		return value.Null(info.Type), nil
	}
	return g.Value(idx, local), nil
}
