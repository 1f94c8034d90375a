package value

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Hash returns a 64-bit hash of v, used by the columnar GROUP BY
// algorithm (spec.md §4.H) and by vector.Vector.Hash/CombineHash
// (spec.md §4.C). Uses zeebo/xxh3, a dependency that arrives
// transitively through the teacher's Arrow stack and is promoted here
// to a direct, exercised one.
func (v Value) Hash() uint64 {
	if v.isNull {
		return nullHash
	}
	switch {
	case isStringLike(v.typ.Tag):
		return xxh3.HashString(v.AsString())
	case v.typ.Tag.IsComposite() && v.typ.Tag != 0:
		return hashChildren(v)
	default:
		var buf [16]byte
		binary.LittleEndian.PutUint64(buf[:8], v.AsUint64())
		binary.LittleEndian.PutUint64(buf[8:], uint64(v.typ.Tag))
		return xxh3.Hash(buf[:])
	}
}

// nullHash is a fixed sentinel distinguishing a null value's hash from
// any possible non-null zero value's hash.
const nullHash uint64 = 0x9e3779b97f4a7c15

func hashChildren(v Value) uint64 {
	h := uint64(len(v.Children()))
	for _, c := range v.Children() {
		h = CombineHash(h, c.Hash())
	}
	return h
}

// CombineHash folds h2 into h1, in the style of boost::hash_combine
// adapted to 64 bits; used to build a chunk-wide row hash from its
// per-column hashes (spec.md §4.C "combine_hash").
func CombineHash(h1, h2 uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], h1)
	binary.LittleEndian.PutUint64(buf[8:], h2+0x9e3779b97f4a7c15+(h1<<6)+(h1>>2))
	return xxh3.Hash(buf[:])
}
