package value

import (
	"fmt"
	"strconv"

	"github.com/hugr-lab/doctable-go/types"
)

// CastAs converts v to target. Numeric<->numeric casts widen or
// narrow (narrowing truncates, matching Go's native conversion
// semantics); TIMESTAMP_*<->TIMESTAMP_* casts rescale ticks between
// units; STRUCT<->STRUCT casts are field-wise by name. Any value casts
// to STRING through its text form, STRING/BLOB/JSON/ENUM values parse
// into numeric targets, and BOOLEAN converts to and from numeric types.
// Any other pair fails with ErrUnsupportedCast.
func CastAs(v Value, target types.ComplexLogicalType) (Value, error) {
	if v.typ.Tag == target.Tag && v.typ.Tag != types.STRUCT {
		return v, nil
	}
	if v.isNull {
		return Null(target), nil
	}

	switch {
	case target.Tag == types.STRING:
		return NewString(v.stringify()), nil
	case isArithmetic(v.typ) && isArithmetic(target):
		return castNumeric(v, target)
	case isStringLike(v.typ.Tag) && isArithmetic(target):
		return castStringToNumeric(v.AsString(), target)
	case v.typ.Tag == types.BOOLEAN && isArithmetic(target):
		if v.AsBool() {
			return castNumeric(NewInt64(1), target)
		}
		return castNumeric(NewInt64(0), target)
	case isArithmetic(v.typ) && target.Tag == types.BOOLEAN:
		return NewBool(v.AsFloat64() != 0), nil
	case v.typ.Tag == types.STRUCT && target.Tag == types.STRUCT:
		return castStruct(v, target)
	default:
		return Value{}, fmt.Errorf("%w: %s -> %s", ErrUnsupportedCast, v.typ.Tag, target.Tag)
	}
}

func (v Value) stringify() string {
	switch {
	case v.typ.Tag == types.BOOLEAN:
		return strconv.FormatBool(v.AsBool())
	case v.typ.Tag.IsTimestamp():
		return strconv.FormatInt(v.AsInt64(), 10)
	case isArithmetic(v.typ):
		if v.typ.Tag == types.DOUBLE || v.typ.Tag == types.FLOAT {
			return strconv.FormatFloat(v.AsFloat64(), 'g', -1, 64)
		}
		if v.typ.Tag == types.HUGEINT {
			return fmt.Sprintf("%d", v.AsHugeint().Int64())
		}
		if isUnsignedInt(v.typ.Tag) {
			return strconv.FormatUint(v.AsUint64(), 10)
		}
		return strconv.FormatInt(v.AsInt64(), 10)
	case isStringLike(v.typ.Tag):
		return v.AsString()
	default:
		return v.String()
	}
}

func castNumeric(v Value, target types.ComplexLogicalType) (Value, error) {
	if v.typ.Tag.IsTimestamp() && target.Tag.IsTimestamp() {
		return NewTimestamp(target.Tag, ticksIn(v, target.Tag)), nil
	}
	if v.typ.Tag.IsTimestamp() || target.Tag.IsTimestamp() {
		return Value{}, fmt.Errorf("%w: %s -> %s", ErrUnsupportedCast, v.typ.Tag, target.Tag)
	}

	switch target.Tag {
	case types.DOUBLE:
		return NewFloat64(v.AsFloat64()), nil
	case types.FLOAT:
		return NewFloat32(float32(v.AsFloat64())), nil
	case types.HUGEINT:
		return NewHugeint(v.AsHugeint()), nil
	case types.UHUGEINT:
		return NewUhugeint(Uint128{Lo: v.AsUint64()}), nil
	case types.TINYINT:
		return NewInt8(int8(v.AsInt64())), nil
	case types.SMALLINT:
		return NewInt16(int16(v.AsInt64())), nil
	case types.INTEGER:
		return NewInt32(int32(v.AsInt64())), nil
	case types.BIGINT:
		return NewInt64(v.AsInt64()), nil
	case types.UTINYINT:
		return NewUint8(uint8(v.AsUint64())), nil
	case types.USMALLINT:
		return NewUint16(uint16(v.AsUint64())), nil
	case types.UINTEGER:
		return NewUint32(uint32(v.AsUint64())), nil
	case types.UBIGINT:
		return NewUint64(v.AsUint64()), nil
	case types.DECIMAL:
		return Value{typ: target, payload: v.AsInt64()}, nil
	default:
		return Value{}, fmt.Errorf("%w: %s -> %s", ErrUnsupportedCast, v.typ.Tag, target.Tag)
	}
}

func castStringToNumeric(s string, target types.ComplexLogicalType) (Value, error) {
	if target.Tag == types.DOUBLE || target.Tag == types.FLOAT {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not numeric", ErrUnsupportedCast, s)
		}
		return castNumeric(NewFloat64(f), target)
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q is not numeric", ErrUnsupportedCast, s)
	}
	return castNumeric(NewInt64(i), target)
}

func castStruct(v Value, target types.ComplexLogicalType) (Value, error) {
	srcExt := v.typ.Extension.(types.StructExt)
	dstExt := target.Extension.(types.StructExt)

	srcByName := make(map[string]Value, len(srcExt.Fields))
	children := v.Children()
	for i, f := range srcExt.Fields {
		srcByName[f.Name] = children[i]
	}

	out := make([]Value, len(dstExt.Fields))
	for i, f := range dstExt.Fields {
		sv, ok := srcByName[f.Name]
		if !ok {
			out[i] = Null(f.Type)
			continue
		}
		cv, err := CastAs(sv, f.Type)
		if err != nil {
			return Value{}, err
		}
		out[i] = cv
	}
	return Value{typ: target, payload: out}, nil
}
