package storage

import (
	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/value"
	"github.com/hugr-lab/doctable-go/vector"
)

// SegmentCapacity is the row count of one immutable column segment,
// matching spec.md §3's default data-chunk capacity (2048) so a
// segment boundary always aligns with a chunk boundary.
const SegmentCapacity = 2048

// Segment is one immutable column buffer once flushed (spec.md §3
// "Column"). While the owning Column is APPENDING, the tail segment is
// still being filled; every prior segment is sealed.
type Segment struct {
	data  *vector.Vector
	count int
}

func newSegment(t types.ComplexLogicalType) *Segment {
	return &Segment{data: vector.New(t, SegmentCapacity)}
}

// Len returns the segment's filled row count.
func (s *Segment) Len() int { return s.count }

// Full reports whether the segment has reached SegmentCapacity.
func (s *Segment) Full() bool { return s.count >= SegmentCapacity }

// Value returns the value at local row i (0 <= i < Len()).
func (s *Segment) Value(i int) value.Value { return s.data.Value(i) }

// append writes as many of values as fit, returning the count consumed.
func (s *Segment) append(values []value.Value) int {
	n := 0
	for n < len(values) && s.count < SegmentCapacity {
		_ = s.data.SetValue(s.count, values[n])
		s.count++
		n++
	}
	return n
}

// truncate rolls the segment back to n rows, used by revert_append.
func (s *Segment) truncate(n int) {
	for i := n; i < s.count; i++ {
		_ = s.data.SetNull(i, true)
	}
	s.count = n
}
