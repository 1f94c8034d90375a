package exec

import (
	"fmt"

	"github.com/hugr-lab/doctable-go/internal/msgpack"
	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/value"
)

// ParamBinder accumulates a query's bound parameters from wire-encoded
// values before a plan runs, surfacing ErrBind if Finalize is called
// before every parameter the plan references has been bound (spec.md
// §7 "BindError: finalize called before all parameters bound").
// Raw parameter payloads decode through internal/msgpack (the
// teacher's own MessagePack wire codec, originally used to decode
// Flight DoExchange ticket parameters, repurposed here to decode a
// query's bound-parameter wire values).
type ParamBinder struct {
	bound map[string]value.Value
}

// NewParamBinder creates an empty binder.
func NewParamBinder() *ParamBinder {
	return &ParamBinder{bound: make(map[string]value.Value)}
}

// BindRaw decodes a MessagePack-encoded scalar and binds it to id.
// Supported payload kinds are nil, bool, string, float64, and int64 --
// msgpack's own native scalar set.
func (b *ParamBinder) BindRaw(id string, data []byte) error {
	var raw any
	if err := msgpack.Decode(data, &raw); err != nil {
		return fmt.Errorf("exec: bind parameter %q: %w", id, err)
	}
	b.bound[id] = fromAny(raw)
	return nil
}

// Bind binds an already-constructed Value to id directly, bypassing
// the wire codec (used when a caller already holds typed values rather
// than raw wire bytes).
func (b *ParamBinder) Bind(id string, v value.Value) {
	b.bound[id] = v
}

// Finalize returns the bound parameter map, failing with ErrBind if
// required names a parameter id that was never bound.
func (b *ParamBinder) Finalize(required []string) (map[string]value.Value, error) {
	for _, id := range required {
		if _, ok := b.bound[id]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrBind, id)
		}
	}
	out := make(map[string]value.Value, len(b.bound))
	for k, v := range b.bound {
		out[k] = v
	}
	return out, nil
}

func fromAny(raw any) value.Value {
	switch v := raw.(type) {
	case nil:
		return value.Null(types.Simple(types.STRING))
	case bool:
		return value.NewBool(v)
	case string:
		return value.NewString(v)
	case int64:
		return value.NewInt64(v)
	case uint64:
		return value.NewUint64(v)
	case float64:
		return value.NewFloat64(v)
	case float32:
		return value.NewFloat32(v)
	case []byte:
		return value.NewBlob(v)
	default:
		return value.NewString(fmt.Sprintf("%v", v))
	}
}
