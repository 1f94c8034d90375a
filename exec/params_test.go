package exec

import (
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/hugr-lab/doctable-go/value"
)

func TestParamBinderBindRawAndFinalize(t *testing.T) {
	b := NewParamBinder()

	raw, err := msgpack.Marshal("hello")
	if err != nil {
		t.Fatal(err)
	}
	if err := b.BindRaw("name", raw); err != nil {
		t.Fatal(err)
	}
	b.Bind("age", value.NewInt64(42))

	bound, err := b.Finalize([]string{"name", "age"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := bound["name"].AsString(), "hello"; got != want {
		t.Fatalf("bound[name] = %q, want %q", got, want)
	}
	if got, want := bound["age"].AsInt64(), int64(42); got != want {
		t.Fatalf("bound[age] = %d, want %d", got, want)
	}
}

func TestParamBinderFinalizeFailsOnUnboundRequired(t *testing.T) {
	b := NewParamBinder()
	b.Bind("name", value.NewString("a"))

	_, err := b.Finalize([]string{"name", "missing"})
	if !errors.Is(err, ErrBind) {
		t.Fatalf("Finalize() err = %v, want ErrBind", err)
	}
}
