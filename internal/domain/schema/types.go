package schema

import "strings"

// ValueType is the closed set of numeric types a property can declare
type ValueType int

const (
	TypeInvalid ValueType = iota
	TypeChar
	TypeUchar
	TypeShort
	TypeUshort
	TypeInt
	TypeUint
	TypeFloat
	TypeDouble
)

var typeNames = map[ValueType]string{
	TypeChar:   "char",
	TypeUchar:  "uchar",
	TypeShort:  "short",
	TypeUshort: "ushort",
	TypeInt:    "int",
	TypeUint:   "uint",
	TypeFloat:  "float",
	TypeDouble: "double",
}

// typeTokens maps header tokens to types, including the sized aliases
// written by some exporters
var typeTokens = map[string]ValueType{
	"char":    TypeChar,
	"uchar":   TypeUchar,
	"short":   TypeShort,
	"ushort":  TypeUshort,
	"int":     TypeInt,
	"uint":    TypeUint,
	"float":   TypeFloat,
	"double":  TypeDouble,
	"int8":    TypeChar,
	"uint8":   TypeUchar,
	"int16":   TypeShort,
	"uint16":  TypeUshort,
	"int32":   TypeInt,
	"uint32":  TypeUint,
	"float32": TypeFloat,
	"float64": TypeDouble,
}

// LookupType resolves a header type token. Unknown tokens return TypeInvalid
// and false; the caller keeps the raw token so the failure can be reported
// when a buffer is materialized.
func LookupType(token string) (ValueType, bool) {
	t, ok := typeTokens[strings.ToLower(token)]
	return t, ok
}

func (t ValueType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "invalid"
}

// IsInteger reports whether values of this type decode with integer parsing
func (t ValueType) IsInteger() bool {
	switch t {
	case TypeChar, TypeUchar, TypeShort, TypeUshort, TypeInt, TypeUint:
		return true
	}
	return false
}

// IsFloat reports whether values of this type decode with float parsing
func (t ValueType) IsFloat() bool {
	return t == TypeFloat || t == TypeDouble
}

// Bits is the fixed width of the type's numeric representation
func (t ValueType) Bits() int {
	switch t {
	case TypeChar, TypeUchar:
		return 8
	case TypeShort, TypeUshort:
		return 16
	case TypeInt, TypeUint, TypeFloat:
		return 32
	case TypeDouble:
		return 64
	}
	return 0
}

// Signed reports whether the type can hold negative values
func (t ValueType) Signed() bool {
	switch t {
	case TypeChar, TypeShort, TypeInt, TypeFloat, TypeDouble:
		return true
	}
	return false
}
