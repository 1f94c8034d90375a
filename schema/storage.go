// Package schema owns the dynamic, per-collection columnar schema:
// the path<->column-index map, type-family conflict detection, and the
// schema-evolution + batch-insert pipeline that turns a slice of
// documents into one DataChunk ready for storage.Table.Append
// (spec.md §4.F).
package schema

import (
	"fmt"

	"github.com/hugr-lab/doctable-go/docpath"
	"github.com/hugr-lab/doctable-go/document"
	"github.com/hugr-lab/doctable-go/storage"
	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/value"
	"github.com/hugr-lab/doctable-go/vector"
)

const idColumn = "_id"

// Storage owns one columnar table, its ordered column-info list, the
// path -> column-index map, and the type-family table used for
// conflict detection across evolve/insert calls.
type Storage struct {
	table       *storage.Table
	pathToIndex map[string]int
	families    map[string]types.Family
	cfg         docpath.Config
}

// NewStorage creates an empty schema seeded with the always-present
// "_id" STRING column.
func NewStorage(cfg docpath.Config) *Storage {
	idInfo := storage.ColumnInfo{
		Name:    idColumn,
		Index:   0,
		Type:    types.Simple(types.STRING),
		Default: value.Null(types.Simple(types.STRING)),
	}
	return &Storage{
		table:       storage.NewTable([]storage.ColumnInfo{idInfo}),
		pathToIndex: map[string]int{idColumn: 0},
		families:    map[string]types.Family{idColumn: types.FamilyString},
		cfg:         cfg,
	}
}

// Table returns the owned columnar table.
func (s *Storage) Table() *storage.Table { return s.table }

// HasColumn reports whether path already has a column.
func (s *Storage) HasColumn(path string) bool {
	_, ok := s.pathToIndex[path]
	return ok
}

// GetColumnInfo returns the column-info for path, if any.
func (s *Storage) GetColumnInfo(path string) (storage.ColumnInfo, bool) {
	idx, ok := s.pathToIndex[path]
	if !ok {
		return storage.ColumnInfo{}, false
	}
	return s.table.Columns()[idx], true
}

// ColumnCount returns the table's column count.
func (s *Storage) ColumnCount() int { return len(s.table.Columns()) }

// Columns returns the table's ordered column-info list.
func (s *Storage) Columns() []storage.ColumnInfo { return s.table.Columns() }

// EvolveFromDocument extracts doc's leaf paths and returns the
// column-info for any path not already present in the schema. It does
// not mutate the schema; call EvolveSchema with the result (spec.md
// §4.F "evolve_from_document").
func (s *Storage) EvolveFromDocument(doc document.Document) ([]storage.ColumnInfo, error) {
	paths, err := docpath.ExtractPaths(doc, s.cfg)
	if err != nil {
		return nil, err
	}
	var newCols []storage.ColumnInfo
	seen := make(map[string]bool)
	for _, p := range paths {
		if p.Path == idColumn || seen[p.Path] {
			continue
		}
		if s.HasColumn(p.Path) {
			continue
		}
		seen[p.Path] = true
		colType := types.Simple(p.Type)
		newCols = append(newCols, storage.ColumnInfo{
			Name:           p.Path,
			Type:           colType,
			Default:        value.Null(colType),
			IsArrayElement: p.IsArray,
			ArrayIndex:     p.ArrayIndex,
			NullOnly:       p.IsNullable,
		})
	}
	return newCols, nil
}

// EvolveSchema rebuilds the owned table by repeated schema-extension,
// one new column at a time, and registers each new column's path and
// family. A NullOnly column (its type inferred purely from a null
// leaf) registers at FamilyNone rather than the STRING storage
// fallback's own family, so the first non-null value seen later at
// that path pins the real family instead of conflicting with it
// (spec.md §8).
func (s *Storage) EvolveSchema(newColumns []storage.ColumnInfo) {
	for _, col := range newColumns {
		if s.HasColumn(col.Name) {
			continue
		}
		col.Index = len(s.table.Columns())
		s.table = storage.NewTableWithColumn(s.table, col)
		s.pathToIndex[col.Name] = col.Index
		if col.NullOnly {
			s.families[col.Name] = types.FamilyNone
		} else {
			s.families[col.Name] = types.FamilyOf(col.Type.Tag)
		}
	}
}

// EvolveSchemaFromTypes seeds schema columns directly from a
// path->type map, used for INSERT VALUES rows that carry explicit
// types rather than a document to infer them from.
func (s *Storage) EvolveSchemaFromTypes(byPath map[string]types.ComplexLogicalType) {
	var newCols []storage.ColumnInfo
	for path, t := range byPath {
		if s.HasColumn(path) {
			continue
		}
		newCols = append(newCols, storage.ColumnInfo{Name: path, Type: t, Default: value.Null(t)})
	}
	s.EvolveSchema(newCols)
}

// checkConflicts verifies every path's inferred family agrees with any
// existing column family of the same name (spec.md §4.F step 2). A
// path still pinned at FamilyNone (its column has only ever seen null)
// accepts any family and pins to it, matching spec.md §8's "subsequent
// non-null of family F pins the type" boundary behavior.
func (s *Storage) checkConflicts(paths []docpath.ExtractedPath) error {
	for _, p := range paths {
		if p.Path == idColumn {
			// "_id" is a reserved, caller-optional column validated by
			// usableID, not by the document's inferred leaf type: a
			// non-string or otherwise unusable "_id" is simply
			// overwritten with a synthesized id rather than rejected.
			continue
		}
		existing, ok := s.families[p.Path]
		if !ok {
			continue
		}
		inferred := types.FamilyOf(p.Type)
		if !existing.Compatible(inferred) {
			return &TypeConflictError{Path: p.Path, Existing: existing, Inferred: inferred}
		}
		if existing == types.FamilyNone && inferred != types.FamilyNone {
			s.families[p.Path] = inferred
		}
	}
	return nil
}

// PrepareInsert runs the batch insert pipeline (spec.md §4.F
// "prepare_insert"): schema evolution pass, type-conflict check, path
// cache, chunk fill. `_id` synthesis is centralized here (SPEC_FULL.md
// §3) so callers never hand-roll row identifiers: a document that
// already carries a usable `_id` keeps it; one that doesn't is
// assigned a 24-character zero-padded decimal string of its row's
// position within the table's cumulative row count at the start of
// the batch, not the batch-local index. Returns the ids (in doc order)
// and the filled chunk; the caller appends the chunk to the owned
// table.
func (s *Storage) PrepareInsert(docs []document.Document) ([]string, *vector.DataChunk, error) {
	var allNew []storage.ColumnInfo
	seenNew := make(map[string]bool)
	perDoc := make([][]docpath.ExtractedPath, len(docs))

	for i, doc := range docs {
		if doc == nil {
			continue
		}
		paths, err := docpath.ExtractPaths(doc, s.cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("schema: extract paths for row %d: %w", i, err)
		}
		perDoc[i] = paths
		if err := s.checkConflicts(paths); err != nil {
			return nil, nil, err
		}
		for _, p := range paths {
			if p.Path == idColumn || seenNew[p.Path] || s.HasColumn(p.Path) {
				continue
			}
			seenNew[p.Path] = true
			colType := types.Simple(p.Type)
			allNew = append(allNew, storage.ColumnInfo{
				Name:           p.Path,
				Type:           colType,
				Default:        value.Null(colType),
				IsArrayElement: p.IsArray,
				ArrayIndex:     p.ArrayIndex,
				NullOnly:       p.IsNullable,
			})
		}
	}
	s.EvolveSchema(allNew)

	columns := s.table.Columns()
	segsByColumn := make(map[string][]docpath.Segment, len(columns))
	for _, c := range columns {
		if c.Name == idColumn {
			continue
		}
		segsByColumn[c.Name] = docpath.Decode(c.Name)
	}

	names := make([]string, len(columns))
	colTypes := make([]types.ComplexLogicalType, len(columns))
	for i, c := range columns {
		names[i] = c.Name
		colTypes[i] = c.Type
	}
	chunk, err := vector.NewChunk(names, colTypes, len(docs))
	if err != nil {
		return nil, nil, err
	}
	if err := chunk.SetCardinality(len(docs)); err != nil {
		return nil, nil, err
	}

	base := s.table.RowCount()
	ids := make([]string, len(docs))
	for row, doc := range docs {
		if id, ok := usableID(doc); ok {
			ids[row] = id
		} else {
			ids[row] = fmt.Sprintf("%024d", base+row)
		}
		for ci, c := range columns {
			var leaf document.Document
			if doc != nil {
				if c.Name == idColumn {
					_ = chunk.Column(ci).SetValue(row, value.NewString(ids[row]))
					continue
				}
				leaf = resolvePath(doc, segsByColumn[c.Name])
			}
			if err := chunk.Column(ci).SetValue(row, fillValue(leaf, c.Type)); err != nil {
				return nil, nil, err
			}
		}
	}
	return ids, chunk, nil
}

// usableID reports whether doc carries a non-empty string "_id" field,
// the only leaf shape this core accepts as a caller-supplied id
// (SPEC_FULL.md §3); anything else (absent, null, non-string, empty)
// is not usable and the row gets a synthesized id instead.
func usableID(doc document.Document) (string, bool) {
	if doc == nil || doc.Kind() != document.KindObject {
		return "", false
	}
	f := doc.Field(idColumn)
	if f == nil || f.Kind() != document.KindString {
		return "", false
	}
	v := f.String()
	if v == "" {
		return "", false
	}
	return v, true
}

// resolvePath walks doc following segs, returning nil if any step is
// absent or traverses through a non-container node.
func resolvePath(doc document.Document, segs []docpath.Segment) document.Document {
	cur := doc
	for _, seg := range segs {
		if cur == nil {
			return nil
		}
		if seg.IsIndex {
			if cur.Kind() != document.KindArray || seg.Index >= cur.Len() {
				return nil
			}
			cur = cur.Index(seg.Index)
		} else {
			if cur.Kind() != document.KindObject {
				return nil
			}
			cur = cur.Field(seg.Name)
		}
	}
	return cur
}

// fillValue converts a resolved document leaf to a Value of colType,
// casting through the value model when the leaf's natural type
// differs from the column's (e.g. a schema seeded by an earlier
// int64 document now seeing a float64 leaf from goccy/go-json's
// any-decoding). A nil leaf, or one that fails to cast, fills null.
func fillValue(leaf document.Document, colType types.ComplexLogicalType) value.Value {
	if leaf == nil {
		return value.Null(colType)
	}
	var raw value.Value
	switch leaf.Kind() {
	case document.KindNull:
		return value.Null(colType)
	case document.KindBool:
		raw = value.NewBool(leaf.Bool())
	case document.KindInt32:
		raw = value.NewInt32(leaf.Int32())
	case document.KindInt64:
		raw = value.NewInt64(leaf.Int64())
	case document.KindUint64:
		raw = value.NewUint64(leaf.Uint64())
	case document.KindFloat:
		raw = value.NewFloat32(leaf.Float32())
	case document.KindDouble:
		raw = value.NewFloat64(leaf.Float64())
	case document.KindString:
		raw = value.NewString(leaf.String())
	default:
		return value.Null(colType)
	}
	cast, err := value.CastAs(raw, colType)
	if err != nil {
		return value.Null(colType)
	}
	return cast
}
