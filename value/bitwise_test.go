package value

import (
	"errors"
	"testing"
)

func TestBitwiseAndOrXor(t *testing.T) {
	a, b := NewInt64(0b1100), NewInt64(0b1010)

	and, err := And(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if and.AsInt64() != 0b1000 {
		t.Errorf("And = %b, want %b", and.AsInt64(), 0b1000)
	}

	or, err := Or(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if or.AsInt64() != 0b1110 {
		t.Errorf("Or = %b, want %b", or.AsInt64(), 0b1110)
	}

	xor, err := Xor(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if xor.AsInt64() != 0b0110 {
		t.Errorf("Xor = %b, want %b", xor.AsInt64(), 0b0110)
	}
}

func TestShiftOps(t *testing.T) {
	r, err := Shl(NewInt64(1), NewInt64(4))
	if err != nil {
		t.Fatal(err)
	}
	if r.AsInt64() != 16 {
		t.Errorf("Shl(1, 4) = %d, want 16", r.AsInt64())
	}

	r, err = Shr(NewInt64(16), NewInt64(4))
	if err != nil {
		t.Fatal(err)
	}
	if r.AsInt64() != 1 {
		t.Errorf("Shr(16, 4) = %d, want 1", r.AsInt64())
	}
}

func TestNotBoolean(t *testing.T) {
	r, err := Not(NewBool(true))
	if err != nil {
		t.Fatal(err)
	}
	if r.AsBool() {
		t.Errorf("Not(true) = true, want false")
	}
}

func TestBitwiseRequiresIntegral(t *testing.T) {
	_, err := And(NewFloat64(1.5), NewInt64(1))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("And on float = %v, want ErrTypeMismatch", err)
	}
}
