// Package document defines the narrow, read-only view the storage core
// uses to pull values out of an inbound document without depending on
// any particular JSON (or other wire format) library.
package document

// Kind is a document node's physical type (spec.md §3 "Document").
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt32
	KindInt64
	KindUint64
	KindFloat
	KindDouble
	KindString
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Document is an opaque, read-only document tree: an object, an array,
// or a scalar leaf. The core never depends on a concrete JSON
// implementation; it reaches every value through this interface plus
// trie traversal via Keys/Field (objects) and Len/Index (arrays).
type Document interface {
	Kind() Kind

	Bool() bool
	Int32() int32
	Int64() int64
	Uint64() uint64
	Float32() float32
	Float64() float64
	String() string

	// Keys returns an object node's field names. Their order is up to the
	// implementation; the FromJSON implementation returns them in Go map
	// iteration order.
	Keys() []string
	// Field returns an object node's value for key, or nil if absent.
	Field(key string) Document

	// Len returns an array node's element count.
	Len() int
	// Index returns an array node's i'th element.
	Index(i int) Document
}

// Has reports whether the dot/bracket path resolves to a non-nil node
// under doc. Path syntax: "a.b" for object fields, "a[2]" for array
// elements.
func Has(doc Document, path string) bool {
	return resolve(doc, path) != nil
}

// Get resolves path under doc, returning nil if any segment is absent
// or traverses through a non-container node.
func Get(doc Document, path string) Document {
	return resolve(doc, path)
}

func resolve(doc Document, path string) Document {
	cur := doc
	for _, seg := range splitPath(path) {
		if cur == nil {
			return nil
		}
		if seg.isIndex {
			if cur.Kind() != KindArray || seg.index >= cur.Len() {
				return nil
			}
			cur = cur.Index(seg.index)
		} else {
			if cur.Kind() != KindObject {
				return nil
			}
			cur = cur.Field(seg.name)
		}
	}
	return cur
}

type pathSegment struct {
	name    string
	isIndex bool
	index   int
}

// splitPath parses "a.b[2].c" into [{a} {b} {2,isIndex} {c}].
func splitPath(path string) []pathSegment {
	var segs []pathSegment
	field := make([]byte, 0, len(path))
	flushField := func() {
		if len(field) > 0 {
			segs = append(segs, pathSegment{name: string(field)})
			field = field[:0]
		}
	}
	i := 0
	for i < len(path) {
		switch path[i] {
		case '.':
			flushField()
			i++
		case '[':
			flushField()
			j := i + 1
			for j < len(path) && path[j] != ']' {
				j++
			}
			idx := 0
			for k := i + 1; k < j; k++ {
				idx = idx*10 + int(path[k]-'0')
			}
			segs = append(segs, pathSegment{isIndex: true, index: idx})
			i = j + 1
		default:
			field = append(field, path[i])
			i++
		}
	}
	flushField()
	return segs
}
