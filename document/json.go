package document

import (
	"fmt"

	"github.com/goccy/go-json"
)

// FromJSON decodes data into a Document tree backed by goccy/go-json,
// the teacher's own (transitively pulled-in) JSON library.
func FromJSON(data []byte) (Document, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("document: decode json: %w", err)
	}
	return jsonNode{v: v}, nil
}

// jsonNode adapts a decoded any (map[string]any / []any / scalar) to
// Document. json.Unmarshal into `any` always produces float64 for
// numbers; Int32/Int64/Uint64 narrow from that on demand so numeric
// leaves still report a usable Kind for the inference table in
// docpath (spec.md §4.E maps float64 -> DOUBLE by default; callers
// wanting INTEGER/BIGINT precision should decode through a typed
// struct instead of FromJSON).
type jsonNode struct{ v any }

func (n jsonNode) Kind() Kind {
	switch t := n.v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case float64:
		return KindDouble
	case string:
		return KindString
	case map[string]any:
		_ = t
		return KindObject
	case []any:
		return KindArray
	default:
		return KindNull
	}
}

func (n jsonNode) Bool() bool       { b, _ := n.v.(bool); return b }
func (n jsonNode) Int32() int32     { f, _ := n.v.(float64); return int32(f) }
func (n jsonNode) Int64() int64     { f, _ := n.v.(float64); return int64(f) }
func (n jsonNode) Uint64() uint64   { f, _ := n.v.(float64); return uint64(f) }
func (n jsonNode) Float32() float32 { f, _ := n.v.(float64); return float32(f) }
func (n jsonNode) Float64() float64 { f, _ := n.v.(float64); return f }
func (n jsonNode) String() string   { s, _ := n.v.(string); return s }

func (n jsonNode) Keys() []string {
	obj, ok := n.v.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	return keys
}

func (n jsonNode) Field(key string) Document {
	obj, ok := n.v.(map[string]any)
	if !ok {
		return nil
	}
	child, ok := obj[key]
	if !ok {
		return nil
	}
	return jsonNode{v: child}
}

func (n jsonNode) Len() int {
	arr, ok := n.v.([]any)
	if !ok {
		return 0
	}
	return len(arr)
}

func (n jsonNode) Index(i int) Document {
	arr, ok := n.v.([]any)
	if !ok || i < 0 || i >= len(arr) {
		return nil
	}
	return jsonNode{v: arr[i]}
}
