package types

// Family groups logical type tags for schema type-conflict detection
// (spec.md §4.F). Integer subtypes collapse to one family; NONE (null)
// is neutral on merge.
type Family int

const (
	FamilyNone Family = iota
	FamilyBool
	FamilyInt
	FamilyFloat
	FamilyString
)

func (f Family) String() string {
	switch f {
	case FamilyNone:
		return "NONE"
	case FamilyBool:
		return "BOOL"
	case FamilyInt:
		return "INT"
	case FamilyFloat:
		return "FLOAT"
	case FamilyString:
		return "STRING"
	default:
		return "UNKNOWN"
	}
}

// FamilyOf returns the conflict-detection family of a tag.
func FamilyOf(tag Tag) Family {
	switch tag {
	case NA:
		return FamilyNone
	case BOOLEAN:
		return FamilyBool
	case TINYINT, SMALLINT, INTEGER, BIGINT, HUGEINT,
		UTINYINT, USMALLINT, UINTEGER, UBIGINT, UHUGEINT:
		return FamilyInt
	case FLOAT, DOUBLE, DECIMAL:
		return FamilyFloat
	case STRING, BLOB, JSON, ENUM:
		return FamilyString
	default:
		return FamilyNone
	}
}

// Compatible reports whether two families can coexist in the same
// column without a TypeConflict. NONE is neutral and compatible with
// everything; any other pair of families must match exactly.
func (f Family) Compatible(other Family) bool {
	if f == FamilyNone || other == FamilyNone {
		return true
	}
	return f == other
}
