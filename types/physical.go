package types

// PhysicalType is the storage projection used to select column buffer
// kinds, per spec.md §4.B.
type PhysicalType int

const (
	PhysicalInvalid PhysicalType = iota
	PhysicalBool
	PhysicalInt8
	PhysicalInt16
	PhysicalInt32
	PhysicalInt64
	PhysicalInt128
	PhysicalUint8
	PhysicalUint16
	PhysicalUint32
	PhysicalUint64
	PhysicalUint128
	PhysicalFloat
	PhysicalDouble
	PhysicalString
	PhysicalStruct
	PhysicalList
	PhysicalArray
	PhysicalBit
)

// ToPhysicalType projects a logical type onto its physical storage
// representation.
func (t ComplexLogicalType) ToPhysicalType() PhysicalType {
	switch t.Tag {
	case BOOLEAN:
		return PhysicalBool
	case TINYINT:
		return PhysicalInt8
	case SMALLINT:
		return PhysicalInt16
	case INTEGER:
		return PhysicalInt32
	case BIGINT:
		return PhysicalInt64
	case HUGEINT:
		return PhysicalInt128
	case UTINYINT:
		return PhysicalUint8
	case USMALLINT:
		return PhysicalUint16
	case UINTEGER:
		return PhysicalUint32
	case UBIGINT, TIMESTAMP_SEC, TIMESTAMP_MS, TIMESTAMP_US, TIMESTAMP_NS:
		return PhysicalUint64
	case UHUGEINT:
		return PhysicalUint128
	case FLOAT:
		return PhysicalFloat
	case DOUBLE:
		return PhysicalDouble
	case DECIMAL:
		return decimalPhysicalType(t.Extension.(DecimalExt))
	case STRING, BLOB, JSON:
		return PhysicalString
	case ENUM:
		return enumPhysicalType(t.Extension.(EnumExt))
	case STRUCT, UNION, VARIANT:
		return PhysicalStruct
	case LIST, MAP:
		return PhysicalList
	case ARRAY:
		return PhysicalArray
	default:
		return PhysicalInvalid
	}
}

func decimalPhysicalType(d DecimalExt) PhysicalType {
	switch {
	case d.Width <= 4:
		return PhysicalInt16
	case d.Width <= 9:
		return PhysicalInt32
	case d.Width <= 18:
		return PhysicalInt64
	default:
		return PhysicalInt128
	}
}

func enumPhysicalType(e EnumExt) PhysicalType {
	switch {
	case len(e.Entries) <= 1<<8:
		return PhysicalUint8
	case len(e.Entries) <= 1<<16:
		return PhysicalUint16
	default:
		return PhysicalUint32
	}
}

// physicalSizes gives the flat-buffer element width, in bytes, for
// every fixed-width physical type. Variable-width and nested types
// return 0: their payload lives in a side buffer or sub-columns.
var physicalSizes = map[PhysicalType]int{
	PhysicalBool:    1,
	PhysicalInt8:    1,
	PhysicalInt16:   2,
	PhysicalInt32:   4,
	PhysicalInt64:   8,
	PhysicalInt128:  16,
	PhysicalUint8:   1,
	PhysicalUint16:  2,
	PhysicalUint32:  4,
	PhysicalUint64:  8,
	PhysicalUint128: 16,
	PhysicalFloat:   4,
	PhysicalDouble:  8,
}

// Size returns the byte width of one element of t in a flat column.
// Structs, lists, and arrays return 0: their payload lives in
// sub-columns, not in this column's own flat buffer.
func (t ComplexLogicalType) Size() int {
	return physicalSizes[t.ToPhysicalType()]
}

// Align returns the required alignment, in bytes, of one element of t.
// For the scalar physical types alignment equals size; composite types
// have no flat alignment requirement of their own.
func (t ComplexLogicalType) Align() int {
	switch t.ToPhysicalType() {
	case PhysicalStruct, PhysicalList, PhysicalArray, PhysicalInvalid:
		return 0
	default:
		return t.Size()
	}
}
