package value

import (
	"fmt"
	"math"

	"github.com/hugr-lab/doctable-go/types"
)

// Ordering is the result of comparing two values.
type Ordering int

const (
	Less Ordering = iota - 1
	Equal
	Greater
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	default:
		return "Greater"
	}
}

// epsilon32/64 mirror numeric_limits<float/double>::epsilon from the
// source language, per spec.md §4.A "Float equality".
const (
	epsilon32 = 1.1920929e-07
	epsilon64 = 2.220446049250313e-16
)

// Compare orders a against b. Numeric values of different types are
// promoted to their common wider type first; float/double equality
// uses an epsilon tolerance. Two values whose types admit no shared
// ordering (e.g. STRUCT vs INTEGER) return ErrIncompatibleCompare.
func Compare(a, b Value) (Ordering, error) {
	if a.isNull || b.isNull {
		return compareNullable(a, b), nil
	}

	switch {
	case isArithmetic(a.typ) && isArithmetic(b.typ):
		return compareNumeric(a, b), nil
	case a.typ.Tag == types.BOOLEAN && b.typ.Tag == types.BOOLEAN:
		return compareBool(a.AsBool(), b.AsBool()), nil
	case isStringLike(a.typ.Tag) && isStringLike(b.typ.Tag):
		return compareString(a.AsString(), b.AsString()), nil
	default:
		return Equal, fmt.Errorf("%w: %s vs %s", ErrIncompatibleCompare, a.typ.Tag, b.typ.Tag)
	}
}

func isStringLike(t types.Tag) bool {
	return t == types.STRING || t == types.BLOB || t == types.JSON || t == types.ENUM
}

// compareNullable orders NULL as less than any non-null value; two
// nulls compare Equal. This is an engine-internal ordering used by
// MIN/MAX and sort, independent of SQL's three-valued predicate logic
// (handled separately by the comparison-expression layer).
func compareNullable(a, b Value) Ordering {
	if a.isNull && b.isNull {
		return Equal
	}
	if a.isNull {
		return Less
	}
	return Greater
}

func compareBool(a, b bool) Ordering {
	if a == b {
		return Equal
	}
	if !a {
		return Less
	}
	return Greater
}

func compareString(a, b string) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func compareNumeric(a, b Value) Ordering {
	result := commonNumericType(a.typ, b.typ)
	if result.Tag == types.DOUBLE || result.Tag == types.FLOAT {
		x, y := a.AsFloat64(), b.AsFloat64()
		eps := epsilon64
		if result.Tag == types.FLOAT {
			eps = float64(epsilon32)
		}
		if math.Abs(x-y) < eps {
			return Equal
		}
		if x < y {
			return Less
		}
		return Greater
	}
	if result.Tag == types.HUGEINT {
		return Ordering(a.AsHugeint().Cmp(b.AsHugeint()))
	}
	if isUnsignedInt(result.Tag) {
		x, y := a.AsUint64(), b.AsUint64()
		switch {
		case x < y:
			return Less
		case x > y:
			return Greater
		default:
			return Equal
		}
	}
	x, y := a.AsInt64(), b.AsInt64()
	switch {
	case x < y:
		return Less
	case x > y:
		return Greater
	default:
		return Equal
	}
}

// Equals is a convenience wrapper returning only the boolean equality
// outcome; incomparable types are treated as unequal rather than
// propagating an error, matching how the compare-expression layer
// treats a compile-time InvalidExpression instead.
func Equals(a, b Value) bool {
	ord, err := Compare(a, b)
	return err == nil && ord == Equal
}
