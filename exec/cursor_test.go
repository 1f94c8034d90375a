package exec

import (
	"testing"

	"github.com/hugr-lab/doctable-go/value"
)

func TestCursorSuccessTableData(t *testing.T) {
	c := successCursor(true, nil, nil, []string{"a"})
	if !c.IsSuccess() {
		t.Fatal("IsSuccess() = false, want true")
	}
	if !c.UsesTableData() {
		t.Fatal("UsesTableData() = false, want true")
	}
	if c.Size() != 0 {
		t.Fatalf("Size() = %d, want 0 for a nil chunk", c.Size())
	}
	if got, want := c.ModifiedIDs(), []string{"a"}; len(got) != len(want) || got[0] != want[0] {
		t.Fatalf("ModifiedIDs() = %v, want %v", got, want)
	}
}

func TestCursorErrorClassifiesKind(t *testing.T) {
	c := errorCursor(value.ErrTypeMismatch)
	if c.IsSuccess() {
		t.Fatal("IsSuccess() = true, want false")
	}
	kind, msg := c.GetError()
	if kind != TypeMismatch {
		t.Fatalf("GetError() kind = %v, want TypeMismatch", kind)
	}
	if msg == "" {
		t.Fatal("GetError() message is empty")
	}
}
