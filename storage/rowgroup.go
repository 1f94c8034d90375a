package storage

import (
	"fmt"

	"github.com/hugr-lab/doctable-go/value"
	"github.com/hugr-lab/doctable-go/vector"
)

// RowGroupMaxSize bounds the number of rows a single row-group holds
// before a table starts a new one, mirroring the columnar convention
// of grouping many segments under one cardinality-sharing unit.
const RowGroupMaxSize = 60 * SegmentCapacity

// RowGroup is a bounded collection of columns that share one
// cardinality (spec.md §3 "Row-group"), plus the delete-vector
// tombstones and in-memory update layer spec.md §4.D assigns to the
// row-group rather than to individual columns.
type RowGroup struct {
	columns []*Column

	deleted []bool
	updates map[int]map[int]value.Value // column index -> local row -> value
}

func newRowGroup(infos []ColumnInfo) *RowGroup {
	cols := make([]*Column, len(infos))
	for i, info := range infos {
		cols[i] = newColumn(info)
	}
	return &RowGroup{columns: cols, updates: make(map[int]map[int]value.Value)}
}

// Len returns the row-group's committed row count.
func (g *RowGroup) Len() int {
	if len(g.columns) == 0 {
		return 0
	}
	return g.columns[0].Len()
}

// Full reports whether the row-group has reached RowGroupMaxSize.
func (g *RowGroup) Full() bool { return g.Len() >= RowGroupMaxSize }

// InitializeAppend enters APPENDING on every column.
func (g *RowGroup) InitializeAppend() error {
	for _, c := range g.columns {
		if err := c.InitializeAppend(); err != nil {
			return err
		}
	}
	return nil
}

// Append writes up to RowGroupMaxSize-Len() rows from chunk starting at
// offset, returning the count actually written.
func (g *RowGroup) Append(chunk *vector.DataChunk, offset int) (int, error) {
	room := RowGroupMaxSize - g.Len()
	n := chunk.Cardinality() - offset
	if n > room {
		n = room
	}
	if n <= 0 {
		return 0, nil
	}
	for i, c := range g.columns {
		col := chunk.Column(i)
		values := make([]value.Value, n)
		for r := 0; r < n; r++ {
			values[r] = col.Value(offset + r)
		}
		if err := c.Append(values); err != nil {
			return 0, fmt.Errorf("%w: column %q: %v", ErrStorageFailure, c.Info().Name, err)
		}
	}
	return n, nil
}

// FinalizeAppend seals every column.
func (g *RowGroup) FinalizeAppend() error {
	for _, c := range g.columns {
		if err := c.FinalizeAppend(); err != nil {
			return err
		}
	}
	return nil
}

// RevertAppend rolls every column back to its last snapshot and drops
// any delete/update-layer entries for rows beyond the new row count.
func (g *RowGroup) RevertAppend() {
	for _, c := range g.columns {
		c.RevertAppend()
	}
	rows := g.Len()
	g.deleted = truncateBoolSlice(g.deleted, rows)
	for col, layer := range g.updates {
		for row := range layer {
			if row >= rows {
				delete(layer, row)
			}
		}
		if len(layer) == 0 {
			delete(g.updates, col)
		}
	}
}

func truncateBoolSlice(s []bool, n int) []bool {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Value returns the logical row at local index i for column idx,
// applying any pending update-layer override.
func (g *RowGroup) Value(idx, i int) value.Value {
	if layer, ok := g.updates[idx]; ok {
		if v, ok := layer[i]; ok {
			return v
		}
	}
	return g.columns[idx].Value(i)
}

// IsDeleted reports whether local row i carries a delete tombstone.
func (g *RowGroup) IsDeleted(i int) bool {
	return i < len(g.deleted) && g.deleted[i]
}

// Delete sets the tombstone bit for local row i.
func (g *RowGroup) Delete(i int) error {
	if i < 0 || i >= g.Len() {
		return ErrRowNotFound
	}
	for len(g.deleted) <= i {
		g.deleted = append(g.deleted, false)
	}
	g.deleted[i] = true
	return nil
}

// Update writes v into the in-memory update layer for column idx, row
// i, without touching the underlying sealed segment.
func (g *RowGroup) Update(idx, i int, v value.Value) error {
	if i < 0 || i >= g.Len() {
		return ErrRowNotFound
	}
	if idx < 0 || idx >= len(g.columns) {
		return ErrColumnNotFound
	}
	layer, ok := g.updates[idx]
	if !ok {
		layer = make(map[int]value.Value)
		g.updates[idx] = layer
	}
	layer[i] = v
	return nil
}

// extendWithColumn returns a new RowGroup sharing this one's columns
// plus one freshly materialized column backfilled with def for every
// existing row (spec.md §4.D schema-extension copy-on-evolve path).
func (g *RowGroup) extendWithColumn(info ColumnInfo, def value.Value) *RowGroup {
	extended := &RowGroup{
		columns: append(append([]*Column{}, g.columns...), newColumn(info)),
		deleted: g.deleted,
		updates: g.updates,
	}
	rows := g.Len()
	newCol := extended.columns[len(extended.columns)-1]
	if rows > 0 {
		_ = newCol.InitializeAppend()
		fill := make([]value.Value, rows)
		for i := range fill {
			fill[i] = def
		}
		_ = newCol.Append(fill)
		_ = newCol.FinalizeAppend()
	}
	return extended
}
