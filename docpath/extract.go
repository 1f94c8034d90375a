package docpath

import (
	"fmt"

	"github.com/hugr-lab/doctable-go/document"
	"github.com/hugr-lab/doctable-go/types"
)

// Config tunes how ExtractPaths walks a document (spec.md §4.E).
type Config struct {
	MaxArraySize          int
	FlattenArrays         bool
	UseSeparateArrayTable bool
	ExtractNestedObjects  bool
	MaxNestingDepth       int
}

// DefaultConfig returns spec.md §4.E's documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxArraySize:          100,
		FlattenArrays:         true,
		UseSeparateArrayTable: false,
		ExtractNestedObjects:  true,
		MaxNestingDepth:       10,
	}
}

// ExtractedPath is one leaf found while walking a document.
type ExtractedPath struct {
	Path       string
	Type       types.Tag
	IsArray    bool
	ArrayIndex int
	IsNullable bool
}

// ExtractPaths walks doc and enumerates its leaf paths, encoding each
// as a SQL-safe column name and inferring a logical type per leaf
// (spec.md §4.E).
func ExtractPaths(doc document.Document, cfg Config) ([]ExtractedPath, error) {
	var out []ExtractedPath
	if err := extract("", doc, cfg, 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func extract(prefix string, doc document.Document, cfg Config, depth int, out *[]ExtractedPath) error {
	if depth > cfg.MaxNestingDepth {
		return nil
	}
	switch doc.Kind() {
	case document.KindObject:
		for _, key := range doc.Keys() {
			child := doc.Field(key)
			if child == nil {
				continue
			}
			childPath := Join(prefix, key)
			if child.Kind() == document.KindObject && !cfg.ExtractNestedObjects {
				continue
			}
			if err := extract(childPath, child, cfg, depth+1, out); err != nil {
				return err
			}
		}
		return nil
	case document.KindArray:
		return extractArray(prefix, doc, cfg, depth, out)
	default:
		t, nullable := inferScalarType(doc.Kind())
		*out = append(*out, ExtractedPath{Path: prefix, Type: t, IsNullable: nullable})
		return nil
	}
}

func extractArray(prefix string, doc document.Document, cfg Config, depth int, out *[]ExtractedPath) error {
	n := doc.Len()
	switch {
	case cfg.FlattenArrays:
		if n > cfg.MaxArraySize {
			return fmt.Errorf("%w: array at %q has %d elements, limit %d", ErrSchemaLimitExceeded, prefix, n, cfg.MaxArraySize)
		}
		for i := 0; i < n; i++ {
			elem := doc.Index(i)
			if elem == nil {
				continue
			}
			elemPath := JoinIndex(prefix, i)
			if elem.Kind() == document.KindObject || elem.Kind() == document.KindArray {
				if err := extract(elemPath, elem, cfg, depth+1, out); err != nil {
					return err
				}
				continue
			}
			t, nullable := inferScalarType(elem.Kind())
			*out = append(*out, ExtractedPath{Path: elemPath, Type: t, IsArray: true, ArrayIndex: i, IsNullable: nullable})
		}
		return nil
	case cfg.UseSeparateArrayTable:
		return nil
	default:
		*out = append(*out, ExtractedPath{Path: prefix, Type: types.STRING, IsArray: true, IsNullable: true})
		return nil
	}
}

// inferScalarType maps a document leaf's physical type to a logical
// type per spec.md §4.E's table: null -> STRING, bool -> BOOLEAN,
// int32 -> INTEGER, int64 -> BIGINT, uint64 -> UBIGINT, float ->
// FLOAT, double -> DOUBLE, string -> STRING. Null leaves are always
// nullable; every other physical kind maps to a non-nullable column
// type unless a later document revision reintroduces null at the same
// path (handled by schema evolution, not here).
func inferScalarType(k document.Kind) (types.Tag, bool) {
	switch k {
	case document.KindNull:
		return types.STRING, true
	case document.KindBool:
		return types.BOOLEAN, false
	case document.KindInt32:
		return types.INTEGER, false
	case document.KindInt64:
		return types.BIGINT, false
	case document.KindUint64:
		return types.UBIGINT, false
	case document.KindFloat:
		return types.FLOAT, false
	case document.KindDouble:
		return types.DOUBLE, false
	case document.KindString:
		return types.STRING, false
	default:
		return types.STRING, true
	}
}
