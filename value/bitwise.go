package value

import (
	"fmt"

	"github.com/hugr-lab/doctable-go/types"
)

func requireIntegral(a Value) error {
	if !a.typ.Tag.IsInteger() && a.typ.Tag != types.BOOLEAN {
		return fmt.Errorf("%w: bitwise op requires an integral type, got %s", ErrTypeMismatch, a.typ.Tag)
	}
	return nil
}

func binaryBitwise(a, b Value, op func(x, y int64) int64) (Value, error) {
	if err := requireIntegral(a); err != nil {
		return Value{}, err
	}
	if err := requireIntegral(b); err != nil {
		return Value{}, err
	}
	result := commonNumericType(a.typ, b.typ)
	a, b, short := normalizeBinary(a, b, result)
	if short != nil {
		return *short, nil
	}
	r := op(a.AsInt64(), b.AsInt64())
	if isUnsignedInt(result.Tag) {
		return NewUint64(uint64(r)), nil
	}
	return NewInt64(r), nil
}

// And returns a&b.
func And(a, b Value) (Value, error) {
	return binaryBitwise(a, b, func(x, y int64) int64 { return x & y })
}

// Or returns a|b.
func Or(a, b Value) (Value, error) {
	return binaryBitwise(a, b, func(x, y int64) int64 { return x | y })
}

// Xor returns a^b.
func Xor(a, b Value) (Value, error) {
	return binaryBitwise(a, b, func(x, y int64) int64 { return x ^ y })
}

// Shl returns a<<b.
func Shl(a, b Value) (Value, error) {
	return binaryBitwise(a, b, func(x, y int64) int64 { return x << uint(y) })
}

// Shr returns a>>b.
func Shr(a, b Value) (Value, error) {
	return binaryBitwise(a, b, func(x, y int64) int64 { return x >> uint(y) })
}

// Not returns ^a (unary).
func Not(a Value) (Value, error) {
	if a.typ.Tag == types.BOOLEAN {
		if a.isNull {
			return Null(a.typ), nil
		}
		return NewBool(!a.AsBool()), nil
	}
	if err := requireIntegral(a); err != nil {
		return Value{}, err
	}
	if a.isNull {
		return Null(a.typ), nil
	}
	if isUnsignedInt(a.typ.Tag) {
		return NewUint64(^a.AsUint64()), nil
	}
	return NewInt64(^a.AsInt64()), nil
}
