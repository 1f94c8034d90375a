// Package expr implements the compare- and update-expression trees
// the query core evaluates either against raw documents or against
// compiled columnar closures (spec.md §4.G).
package expr

import (
	"fmt"
	"regexp"

	"github.com/hugr-lab/doctable-go/document"
	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/value"
	"github.com/hugr-lab/doctable-go/vector"
)

// CompareOp is one compare-node kind (spec.md §4.G).
type CompareOp int

const (
	Eq CompareOp = iota
	Ne
	Gt
	Gte
	Lt
	Lte
	Regex
	AllTrue
	AllFalse
	UnionAnd
	UnionOr
	UnionNot
)

// Side picks which document a leaf's key is resolved against.
// SideAuto resolves by membership probe: left first, then right.
type Side int

const (
	SideAuto Side = iota
	SideLeft
	SideRight
)

// CompareExpr is one node of a compare-predicate tree. Leaves carry
// PrimaryKey plus either SecondaryKey (compare against another field)
// or ParameterID (compare against a bound parameter); Children holds
// the operands of a union_and/union_or/union_not combinator.
type CompareExpr struct {
	Op           CompareOp
	PrimaryKey   string
	SecondaryKey string
	ParameterID  string
	Side         Side
	Children     []*CompareExpr
}

// Check evaluates node against a pair of documents (spec.md §4.G
// "Predicate evaluation (document path)").
func Check(node *CompareExpr, left, right document.Document, params map[string]value.Value) (bool, error) {
	switch node.Op {
	case AllTrue:
		return true, nil
	case AllFalse:
		return false, nil
	case UnionAnd:
		for _, c := range node.Children {
			ok, err := Check(c, left, right, params)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case UnionOr:
		for _, c := range node.Children {
			ok, err := Check(c, left, right, params)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case UnionNot:
		if len(node.Children) != 1 {
			return false, fmt.Errorf("%w: union_not requires exactly one child", ErrInvalidExpression)
		}
		ok, err := Check(node.Children[0], left, right, params)
		if err != nil {
			return false, err
		}
		return !ok, nil
	default:
		return checkLeaf(node, left, right, params)
	}
}

func checkLeaf(node *CompareExpr, left, right document.Document, params map[string]value.Value) (bool, error) {
	primSide, primNode := resolveSide(node.Side, node.PrimaryKey, left, right)
	if primNode == nil {
		return false, fmt.Errorf("%w: primary key %q not found", ErrInvalidExpression, node.PrimaryKey)
	}
	lv := leafToValue(primNode)

	var rv value.Value
	switch {
	case node.SecondaryKey != "":
		secNode := fieldOn(opposite(primSide), node.SecondaryKey, left, right)
		if secNode == nil {
			_, secNode = resolveSide(SideAuto, node.SecondaryKey, left, right)
		}
		if secNode == nil {
			return false, fmt.Errorf("%w: secondary key %q not found", ErrInvalidExpression, node.SecondaryKey)
		}
		rv = leafToValue(secNode)
	case node.ParameterID != "":
		v, ok := params[node.ParameterID]
		if !ok {
			return false, fmt.Errorf("%w: unbound parameter %q", ErrInvalidExpression, node.ParameterID)
		}
		rv = v
	default:
		return false, fmt.Errorf("%w: leaf has neither secondary_key nor parameter_id", ErrInvalidExpression)
	}

	if node.Op == Regex {
		re, err := regexp.Compile(".*" + regexp.QuoteMeta(rv.AsString()) + ".*")
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
		}
		return re.MatchString(lv.AsString()), nil
	}

	ord, err := value.Compare(lv, rv)
	if err != nil {
		return false, err
	}
	return ordMatches(node.Op, ord)
}

func ordMatches(op CompareOp, ord value.Ordering) (bool, error) {
	switch op {
	case Eq:
		return ord == value.Equal, nil
	case Ne:
		return ord != value.Equal, nil
	case Gt:
		return ord == value.Greater, nil
	case Gte:
		return ord != value.Less, nil
	case Lt:
		return ord == value.Less, nil
	case Lte:
		return ord != value.Greater, nil
	default:
		return false, fmt.Errorf("%w: unknown leaf op %d", ErrInvalidExpression, op)
	}
}

func resolveSide(side Side, key string, left, right document.Document) (Side, document.Document) {
	switch side {
	case SideLeft:
		return SideLeft, document.Get(left, key)
	case SideRight:
		return SideRight, document.Get(right, key)
	default:
		if n := document.Get(left, key); n != nil {
			return SideLeft, n
		}
		if n := document.Get(right, key); n != nil {
			return SideRight, n
		}
		return SideAuto, nil
	}
}

func fieldOn(side Side, key string, left, right document.Document) document.Document {
	if side == SideRight {
		return document.Get(right, key)
	}
	return document.Get(left, key)
}

func opposite(s Side) Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideAuto
	}
}

func leafToValue(doc document.Document) value.Value {
	switch doc.Kind() {
	case document.KindNull:
		return value.Null(types.Simple(types.STRING))
	case document.KindBool:
		return value.NewBool(doc.Bool())
	case document.KindInt32:
		return value.NewInt32(doc.Int32())
	case document.KindInt64:
		return value.NewInt64(doc.Int64())
	case document.KindUint64:
		return value.NewUint64(doc.Uint64())
	case document.KindFloat:
		return value.NewFloat32(doc.Float32())
	case document.KindDouble:
		return value.NewFloat64(doc.Float64())
	case document.KindString:
		return value.NewString(doc.String())
	default:
		return value.Null(types.Simple(types.STRING))
	}
}

// Predicate is a compiled leaf or combinator over one chunk's rows.
type Predicate func(chunk *vector.DataChunk, row int) (bool, error)

// Compile compiles node once into a Predicate over a single chunk's
// column set (spec.md §4.G "Predicate evaluation (columnar path)").
// cols maps a leaf's key (a document path, i.e. the chunk's column
// name) to that chunk's column index; colTypes gives each column's
// logical type so incompatible comparisons (e.g. STRUCT vs INTEGER)
// fail at compile time rather than per row.
func Compile(node *CompareExpr, cols map[string]int, colTypes []types.ComplexLogicalType, params map[string]value.Value) (Predicate, error) {
	switch node.Op {
	case AllTrue:
		return func(*vector.DataChunk, int) (bool, error) { return true, nil }, nil
	case AllFalse:
		return func(*vector.DataChunk, int) (bool, error) { return false, nil }, nil
	case UnionAnd, UnionOr, UnionNot:
		return compileUnion(node, cols, colTypes, params)
	default:
		return compileLeaf(node, cols, colTypes, params)
	}
}

func compileUnion(node *CompareExpr, cols map[string]int, colTypes []types.ComplexLogicalType, params map[string]value.Value) (Predicate, error) {
	children := make([]Predicate, len(node.Children))
	for i, c := range node.Children {
		fn, err := Compile(c, cols, colTypes, params)
		if err != nil {
			return nil, err
		}
		children[i] = fn
	}
	switch node.Op {
	case UnionAnd:
		return func(chunk *vector.DataChunk, row int) (bool, error) {
			for _, fn := range children {
				ok, err := fn(chunk, row)
				if err != nil {
					return false, err
				}
				if !ok {
					return false, nil
				}
			}
			return true, nil
		}, nil
	case UnionOr:
		return func(chunk *vector.DataChunk, row int) (bool, error) {
			for _, fn := range children {
				ok, err := fn(chunk, row)
				if err != nil {
					return false, err
				}
				if ok {
					return true, nil
				}
			}
			return false, nil
		}, nil
	default: // UnionNot
		if len(children) != 1 {
			return nil, fmt.Errorf("%w: union_not requires exactly one child", ErrInvalidExpression)
		}
		return func(chunk *vector.DataChunk, row int) (bool, error) {
			ok, err := children[0](chunk, row)
			if err != nil {
				return false, err
			}
			return !ok, nil
		}, nil
	}
}

func compileLeaf(node *CompareExpr, cols map[string]int, colTypes []types.ComplexLogicalType, params map[string]value.Value) (Predicate, error) {
	primIdx, ok := cols[node.PrimaryKey]
	if !ok {
		return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidExpression, node.PrimaryKey)
	}
	primType := colTypes[primIdx]

	rhsFromColumn := -1
	var rhsLiteral value.Value
	switch {
	case node.SecondaryKey != "":
		idx, ok := cols[node.SecondaryKey]
		if !ok {
			return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidExpression, node.SecondaryKey)
		}
		rhsFromColumn = idx
	case node.ParameterID != "":
		v, ok := params[node.ParameterID]
		if !ok {
			return nil, fmt.Errorf("%w: unbound parameter %q", ErrInvalidExpression, node.ParameterID)
		}
		rhsLiteral = v
	default:
		return nil, fmt.Errorf("%w: leaf has neither secondary_key nor parameter_id", ErrInvalidExpression)
	}

	if node.Op == Regex {
		return func(chunk *vector.DataChunk, row int) (bool, error) {
			lhs := chunk.Column(primIdx).Value(row).AsString()
			pattern := rhsLiteral.AsString()
			if rhsFromColumn >= 0 {
				pattern = chunk.Column(rhsFromColumn).Value(row).AsString()
			}
			re, err := regexp.Compile(".*" + regexp.QuoteMeta(pattern) + ".*")
			if err != nil {
				return false, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
			}
			return re.MatchString(lhs), nil
		}, nil
	}

	rhsType := rhsLiteral.Type()
	if rhsFromColumn >= 0 {
		rhsType = colTypes[rhsFromColumn]
	}
	if !orderable(primType, rhsType) {
		return nil, fmt.Errorf("%w: %s vs %s has no shared ordering", ErrInvalidExpression, primType.Tag, rhsType.Tag)
	}

	op := node.Op
	return func(chunk *vector.DataChunk, row int) (bool, error) {
		lv := chunk.Column(primIdx).Value(row)
		rv := rhsLiteral
		if rhsFromColumn >= 0 {
			rv = chunk.Column(rhsFromColumn).Value(row)
		}
		ord, err := value.Compare(lv, rv)
		if err != nil {
			return false, err
		}
		return ordMatches(op, ord)
	}, nil
}

func orderable(a, b types.ComplexLogicalType) bool {
	switch {
	case numericOrTimestamp(a.Tag) && numericOrTimestamp(b.Tag):
		return true
	case a.Tag == types.BOOLEAN && b.Tag == types.BOOLEAN:
		return true
	case isStringLikeTag(a.Tag) && isStringLikeTag(b.Tag):
		return true
	default:
		return false
	}
}

func numericOrTimestamp(t types.Tag) bool { return t.IsNumeric() || t.IsTimestamp() }

func isStringLikeTag(t types.Tag) bool {
	return t == types.STRING || t == types.BLOB || t == types.JSON || t == types.ENUM
}
