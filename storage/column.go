package storage

import (
	"fmt"

	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/value"
)

// ColumnState is a column-data's append lifecycle state (spec.md
// §4.D "Column-data state machine").
type ColumnState int

const (
	StateInitial ColumnState = iota
	StateAppending
	StateSealed
)

func (s ColumnState) String() string {
	switch s {
	case StateInitial:
		return "INITIAL"
	case StateAppending:
		return "APPENDING"
	case StateSealed:
		return "SEALED"
	default:
		return "UNKNOWN"
	}
}

// ColumnInfo describes one column of a Table: its SQL-safe name,
// logical type, default value (used when backfilling after schema
// extension), and index. IsArrayElement/ArrayIndex record whether this
// column was materialized from a flattened array element (spec.md §3
// "Column-info"). NullOnly marks a column whose type was inferred
// purely from a null leaf the first time its path was seen; the
// schema package uses it to seed type-conflict family tracking at
// FamilyNone (unpinned) rather than at the STRING storage fallback's
// own family, so a later non-null value silently pins the real family
// instead of conflicting with it (spec.md §8).
type ColumnInfo struct {
	Name           string
	Type           types.ComplexLogicalType
	Default        value.Value
	Index          int
	IsArrayElement bool
	ArrayIndex     int
	NullOnly       bool
}

// Column is one row-group's worth of data for a single column
// definition: an ordered, immutable-once-sealed sequence of segments
// plus the append state machine spec.md §4.D describes.
type Column struct {
	info     ColumnInfo
	state    ColumnState
	segments []*Segment

	appendSnapshotRows int
}

func newColumn(info ColumnInfo) *Column {
	return &Column{info: info, state: StateSealed}
}

// Info returns the column's definition.
func (c *Column) Info() ColumnInfo { return c.info }

// State returns the column's current append state.
func (c *Column) State() ColumnState { return c.state }

// Len returns the column's total committed row count.
func (c *Column) Len() int {
	n := 0
	for _, s := range c.segments {
		n += s.Len()
	}
	return n
}

// InitializeAppend enters APPENDING, capturing a snapshot row count
// that RevertAppend can roll back to. Allocates a head segment if none
// exists or the tail segment is full.
func (c *Column) InitializeAppend() error {
	if c.state == StateAppending {
		return fmt.Errorf("%w: InitializeAppend on column already APPENDING", ErrInvalidState)
	}
	c.state = StateAppending
	c.appendSnapshotRows = c.Len()
	if len(c.segments) == 0 || c.segments[len(c.segments)-1].Full() {
		c.segments = append(c.segments, newSegment(c.info.Type))
	}
	return nil
}

// Append writes values, spilling into new segments as the current tail
// fills. Must be called between InitializeAppend and FinalizeAppend.
func (c *Column) Append(values []value.Value) error {
	if c.state != StateAppending {
		return fmt.Errorf("%w: Append before InitializeAppend", ErrInvalidState)
	}
	for len(values) > 0 {
		tail := c.segments[len(c.segments)-1]
		n := tail.append(values)
		values = values[n:]
		if len(values) > 0 {
			c.segments = append(c.segments, newSegment(c.info.Type))
		}
	}
	return nil
}

// FinalizeAppend returns to SEALED; the appended row count becomes
// durable.
func (c *Column) FinalizeAppend() error {
	if c.state != StateAppending {
		return fmt.Errorf("%w: FinalizeAppend before InitializeAppend", ErrInvalidState)
	}
	c.state = StateSealed
	return nil
}

// RevertAppend rolls the column back to the row count captured by the
// most recent InitializeAppend.
func (c *Column) RevertAppend() {
	target := c.appendSnapshotRows
	rows := c.Len()
	for rows > target {
		tail := c.segments[len(c.segments)-1]
		drop := rows - target
		if drop >= tail.Len() {
			rows -= tail.Len()
			c.segments = c.segments[:len(c.segments)-1]
			continue
		}
		tail.truncate(tail.Len() - drop)
		rows = target
	}
	c.state = StateSealed
}

// Value returns the value at the column's absolute row index i.
func (c *Column) Value(i int) value.Value {
	for _, s := range c.segments {
		if i < s.Len() {
			return s.Value(i)
		}
		i -= s.Len()
	}
	return value.Null(c.info.Type)
}
