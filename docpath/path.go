package docpath

import (
	"strconv"
	"strings"
)

const (
	dotSep   = "_dot_"
	arrOpen  = "_arr"
	arrClose = "_"
)

// Join implements spec.md §4.E's path-encoding invariant: document
// paths like "a/b/c" and "a[2]/x" map one-to-one to SQL-safe column
// names by substituting "/" -> "_dot_" and "[N]" -> "_arrN_". Join
// appends one field segment; an empty parent returns child unchanged.
func Join(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + dotSep + child
}

// JoinIndex appends an array-element segment to parent, e.g.
// JoinIndex("tags", 2) -> "tags_arr2_".
func JoinIndex(parent string, index int) string {
	return parent + arrOpen + strconv.Itoa(index) + arrClose
}

// Segment is one decoded step of a column name: either a field name or
// an array index.
type Segment struct {
	Name    string
	IsIndex bool
	Index   int
}

// Decode reverses Join/JoinIndex, reconstructing the original document
// path segments from a SQL-safe column name. Decode is the inverse the
// table-storage uses to rematerialize column reads back into document
// form (spec.md §4.E round-trip law, §8).
func Decode(column string) []Segment {
	var segs []Segment
	for _, part := range strings.Split(column, dotSep) {
		segs = append(segs, decodeFieldWithIndexes(part)...)
	}
	return segs
}

// decodeFieldWithIndexes splits one "_dot_"-delimited part into its
// leading field-name segment (if any) followed by zero or more
// "_arrN_" array-index segments, e.g. "tags_arr2_" -> [{tags}
// {2,isIndex}].
func decodeFieldWithIndexes(part string) []Segment {
	var segs []Segment
	for {
		i := strings.Index(part, arrOpen)
		if i < 0 {
			if part != "" {
				segs = append(segs, Segment{Name: part})
			}
			return segs
		}
		if i > 0 {
			segs = append(segs, Segment{Name: part[:i]})
		}
		rest := part[i+len(arrOpen):]
		j := strings.Index(rest, arrClose)
		if j < 0 {
			segs = append(segs, Segment{Name: part})
			return segs
		}
		n, err := strconv.Atoi(rest[:j])
		if err != nil {
			segs = append(segs, Segment{Name: part})
			return segs
		}
		segs = append(segs, Segment{IsIndex: true, Index: n})
		part = rest[j+len(arrClose):]
		if part == "" {
			return segs
		}
	}
}
