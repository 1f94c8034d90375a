package types

import "github.com/apache/arrow-go/v18/arrow"

// ToArrowType projects a logical type onto the Arrow data type used when
// a columnar vector is converted to an Arrow array (vector.BuildArray,
// DataChunk.ToRecord). A vector.Vector itself holds value.Value rows,
// not an Arrow builder.
func (t ComplexLogicalType) ToArrowType() arrow.DataType {
	switch t.Tag {
	case NA:
		return arrow.Null
	case BOOLEAN:
		return arrow.FixedWidthTypes.Boolean
	case TINYINT:
		return arrow.PrimitiveTypes.Int8
	case SMALLINT:
		return arrow.PrimitiveTypes.Int16
	case INTEGER:
		return arrow.PrimitiveTypes.Int32
	case BIGINT, HUGEINT:
		return arrow.PrimitiveTypes.Int64
	case UTINYINT:
		return arrow.PrimitiveTypes.Uint8
	case USMALLINT:
		return arrow.PrimitiveTypes.Uint16
	case UINTEGER:
		return arrow.PrimitiveTypes.Uint32
	case UBIGINT, UHUGEINT:
		return arrow.PrimitiveTypes.Uint64
	case FLOAT:
		return arrow.PrimitiveTypes.Float32
	case DOUBLE:
		return arrow.PrimitiveTypes.Float64
	case DECIMAL:
		d := t.Extension.(DecimalExt)
		return &arrow.Decimal128Type{Precision: int32(d.Width), Scale: int32(d.Scale)}
	case STRING, JSON:
		return arrow.BinaryTypes.String
	case BLOB:
		return arrow.BinaryTypes.Binary
	case TIMESTAMP_SEC:
		return arrow.FixedWidthTypes.Timestamp_s
	case TIMESTAMP_MS:
		return arrow.FixedWidthTypes.Timestamp_ms
	case TIMESTAMP_US:
		return arrow.FixedWidthTypes.Timestamp_us
	case TIMESTAMP_NS:
		return arrow.FixedWidthTypes.Timestamp_ns
	case POINTER:
		return arrow.PrimitiveTypes.Uint64
	case ENUM:
		e := t.Extension.(EnumExt)
		return &arrow.DictionaryType{
			IndexType: enumIndexArrowType(enumPhysicalType(e)),
			ValueType: arrow.BinaryTypes.String,
		}
	case LIST:
		ext := t.Extension.(ListExt)
		return arrow.ListOf(ext.Inner.ToArrowType())
	case ARRAY:
		ext := t.Extension.(ArrayExt)
		return arrow.FixedSizeListOf(int32(ext.Size), ext.Inner.ToArrowType())
	case MAP:
		ext := t.Extension.(MapExt)
		return arrow.MapOf(ext.Key.ToArrowType(), ext.Value.ToArrowType())
	case STRUCT, UNION, VARIANT:
		ext := t.Extension.(StructExt)
		fields := make([]arrow.Field, len(ext.Fields))
		for i, f := range ext.Fields {
			fields[i] = arrow.Field{Name: f.Name, Type: f.Type.ToArrowType(), Nullable: true}
		}
		return arrow.StructOf(fields...)
	default:
		return arrow.BinaryTypes.String
	}
}

func enumIndexArrowType(p PhysicalType) arrow.DataType {
	switch p {
	case PhysicalUint8:
		return arrow.PrimitiveTypes.Uint8
	case PhysicalUint16:
		return arrow.PrimitiveTypes.Uint16
	default:
		return arrow.PrimitiveTypes.Uint32
	}
}

// ArrowField returns the arrow.Field for t under the given column name.
func (t ComplexLogicalType) ArrowField(name string) arrow.Field {
	return arrow.Field{Name: name, Type: t.ToArrowType(), Nullable: true}
}
