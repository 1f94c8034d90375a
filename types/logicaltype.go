// Package types implements the logical type system of the document-table
// engine: the tagged logical type enumeration, the sealed composite-type
// extension hierarchy (array/list/map/struct/union/decimal/enum), and the
// projection onto Arrow's physical type system used to back columnar
// vectors (see package vector).
package types

import "fmt"

// Tag enumerates the logical type discriminant.
type Tag int

const (
	NA Tag = iota
	BOOLEAN
	TINYINT
	SMALLINT
	INTEGER
	BIGINT
	HUGEINT
	UTINYINT
	USMALLINT
	UINTEGER
	UBIGINT
	UHUGEINT
	FLOAT
	DOUBLE
	DECIMAL
	STRING
	BLOB
	TIMESTAMP_SEC
	TIMESTAMP_MS
	TIMESTAMP_US
	TIMESTAMP_NS
	POINTER
	LIST
	ARRAY
	MAP
	STRUCT
	UNION
	ENUM
	VARIANT
	JSON
)

var tagNames = map[Tag]string{
	NA:            "NA",
	BOOLEAN:       "BOOLEAN",
	TINYINT:       "TINYINT",
	SMALLINT:      "SMALLINT",
	INTEGER:       "INTEGER",
	BIGINT:        "BIGINT",
	HUGEINT:       "HUGEINT",
	UTINYINT:      "UTINYINT",
	USMALLINT:     "USMALLINT",
	UINTEGER:      "UINTEGER",
	UBIGINT:       "UBIGINT",
	UHUGEINT:      "UHUGEINT",
	FLOAT:         "FLOAT",
	DOUBLE:        "DOUBLE",
	DECIMAL:       "DECIMAL",
	STRING:        "STRING",
	BLOB:          "BLOB",
	TIMESTAMP_SEC: "TIMESTAMP_SEC",
	TIMESTAMP_MS:  "TIMESTAMP_MS",
	TIMESTAMP_US:  "TIMESTAMP_US",
	TIMESTAMP_NS:  "TIMESTAMP_NS",
	POINTER:       "POINTER",
	LIST:          "LIST",
	ARRAY:         "ARRAY",
	MAP:           "MAP",
	STRUCT:        "STRUCT",
	UNION:         "UNION",
	ENUM:          "ENUM",
	VARIANT:       "VARIANT",
	JSON:          "JSON",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// IsNumeric reports whether t is one of the signed/unsigned integer or
// floating point families.
func (t Tag) IsNumeric() bool {
	switch t {
	case TINYINT, SMALLINT, INTEGER, BIGINT, HUGEINT,
		UTINYINT, USMALLINT, UINTEGER, UBIGINT, UHUGEINT,
		FLOAT, DOUBLE, DECIMAL:
		return true
	default:
		return false
	}
}

// IsInteger reports whether t is a signed or unsigned integer family.
func (t Tag) IsInteger() bool {
	switch t {
	case TINYINT, SMALLINT, INTEGER, BIGINT, HUGEINT,
		UTINYINT, USMALLINT, UINTEGER, UBIGINT, UHUGEINT:
		return true
	default:
		return false
	}
}

// IsTimestamp reports whether t is one of the TIMESTAMP_* families.
func (t Tag) IsTimestamp() bool {
	switch t {
	case TIMESTAMP_SEC, TIMESTAMP_MS, TIMESTAMP_US, TIMESTAMP_NS:
		return true
	default:
		return false
	}
}

// IsComposite reports whether t carries an Extension payload.
func (t Tag) IsComposite() bool {
	switch t {
	case LIST, ARRAY, MAP, STRUCT, UNION, ENUM, DECIMAL, VARIANT:
		return true
	default:
		return false
	}
}

// ComplexLogicalType is the full logical type descriptor: a tag, an
// optional column alias, and (for composite tags) a sealed Extension
// describing element types, widths, or fields.
type ComplexLogicalType struct {
	Tag       Tag
	Alias     string
	Extension Extension
}

// Extension is the sealed polymorphic payload for composite logical
// types. Exactly one concrete implementation is attached per Tag; see
// ArrayExt, ListExt, MapExt, StructExt, DecimalExt, EnumExt, UserExt,
// FunctionExt, GenericExt.
type Extension interface {
	isExtension()
}

// ArrayExt describes a fixed-size ARRAY(inner, size).
type ArrayExt struct {
	Inner ComplexLogicalType
	Size  int
}

func (ArrayExt) isExtension() {}

// ListExt describes a variable-size LIST(inner).
type ListExt struct {
	Inner    ComplexLogicalType
	FieldID  int
	Required bool
}

func (ListExt) isExtension() {}

// MapExt describes MAP(key, value).
type MapExt struct {
	Key      ComplexLogicalType
	Value    ComplexLogicalType
	KeyID    int
	ValueID  int
	Required bool
}

func (MapExt) isExtension() {}

// StructField is one named, typed member of a STRUCT or the hidden tag
// field prepended to a UNION's member list.
type StructField struct {
	Name        string
	Type        ComplexLogicalType
	Description string
}

// StructExt describes STRUCT(fields...). UNION reuses StructExt with a
// hidden "tag" UTINYINT field prepended (see NewUnion).
type StructExt struct {
	Fields []StructField
}

func (StructExt) isExtension() {}

// DecimalExt describes DECIMAL(width, scale).
type DecimalExt struct {
	Width int
	Scale int
}

func (DecimalExt) isExtension() {}

// EnumExt describes an ENUM's ordered dictionary of string entries.
type EnumExt struct {
	Entries []string
}

func (EnumExt) isExtension() {}

// UserExt describes a catalog-registered user-defined type alias.
type UserExt struct {
	Catalog   string
	Modifiers []string
}

func (UserExt) isExtension() {}

// FunctionExt describes a scalar/table function signature.
type FunctionExt struct {
	Return ComplexLogicalType
	Args   []ComplexLogicalType
}

func (FunctionExt) isExtension() {}

// GenericExt marks a type-parameter placeholder (e.g. ANY).
type GenericExt struct{}

func (GenericExt) isExtension() {}

// Simple returns a ComplexLogicalType with no alias and no extension,
// for any non-composite tag.
func Simple(tag Tag) ComplexLogicalType {
	return ComplexLogicalType{Tag: tag}
}

// WithAlias returns a copy of t with Alias set.
func (t ComplexLogicalType) WithAlias(alias string) ComplexLogicalType {
	t.Alias = alias
	return t
}

func (t ComplexLogicalType) String() string {
	if t.Alias != "" {
		return fmt.Sprintf("%s AS %s", t.Tag, t.Alias)
	}
	return t.Tag.String()
}

// NewDecimal constructs a DECIMAL(width, scale) type. Panics if
// scale > width, enforcing the invariant from spec.md §4.B.
func NewDecimal(width, scale int) ComplexLogicalType {
	if scale > width {
		panic(fmt.Sprintf("types: decimal scale %d exceeds width %d", scale, width))
	}
	return ComplexLogicalType{Tag: DECIMAL, Extension: DecimalExt{Width: width, Scale: scale}}
}

// NewEnum constructs an ENUM type over the given ordered entries.
func NewEnum(entries []string) ComplexLogicalType {
	cp := make([]string, len(entries))
	copy(cp, entries)
	return ComplexLogicalType{Tag: ENUM, Extension: EnumExt{Entries: cp}}
}

// NewList constructs a LIST(inner) type.
func NewList(inner ComplexLogicalType) ComplexLogicalType {
	return ComplexLogicalType{Tag: LIST, Extension: ListExt{Inner: inner, Required: false}}
}

// NewArray constructs a fixed-size ARRAY(inner, size) type.
func NewArray(inner ComplexLogicalType, size int) ComplexLogicalType {
	return ComplexLogicalType{Tag: ARRAY, Extension: ArrayExt{Inner: inner, Size: size}}
}

// NewMap constructs a MAP(key, value) type.
func NewMap(key, value ComplexLogicalType) ComplexLogicalType {
	return ComplexLogicalType{Tag: MAP, Extension: MapExt{Key: key, Value: value}}
}

// NewStruct constructs a STRUCT(fields...) type.
func NewStruct(fields []StructField) ComplexLogicalType {
	cp := make([]StructField, len(fields))
	copy(cp, fields)
	return ComplexLogicalType{Tag: STRUCT, Extension: StructExt{Fields: cp}}
}

// unionTagField is the hidden discriminant field every UNION prepends
// to its member list, per spec.md §4.B.
const unionTagField = "__union_tag"

// NewUnion constructs a UNION type: a STRUCT extension whose first
// field is a hidden UTINYINT tag, followed by one field per member.
func NewUnion(members []StructField) ComplexLogicalType {
	fields := make([]StructField, 0, len(members)+1)
	fields = append(fields, StructField{Name: unionTagField, Type: Simple(UTINYINT)})
	fields = append(fields, members...)
	return ComplexLogicalType{Tag: UNION, Extension: StructExt{Fields: fields}}
}

// UnionMembers returns the member fields of a UNION type, excluding the
// hidden tag field prepended by NewUnion.
func (t ComplexLogicalType) UnionMembers() []StructField {
	ext, ok := t.Extension.(StructExt)
	if !ok || len(ext.Fields) == 0 {
		return nil
	}
	return ext.Fields[1:]
}

// variantFieldNames is the fixed four-field layout of a VARIANT type
// per spec.md §4.B.
var variantFieldNames = [4]string{"keys", "children", "values", "data"}

// NewVariant constructs the fixed four-field VARIANT(keys, children,
// values, data) layout.
func NewVariant() ComplexLogicalType {
	fields := []StructField{
		{Name: variantFieldNames[0], Type: NewList(Simple(STRING))},
		{Name: variantFieldNames[1], Type: NewList(Simple(UINTEGER))},
		{Name: variantFieldNames[2], Type: NewList(Simple(BLOB))},
		{Name: variantFieldNames[3], Type: Simple(BLOB)},
	}
	return ComplexLogicalType{Tag: VARIANT, Extension: StructExt{Fields: fields}}
}
