package schema

// ColumnKind tags a column as scalar or list valued
type ColumnKind int

const (
	ColumnScalar ColumnKind = iota
	ColumnList
)

// Column is one property declaration of an element.
// For list columns CountType decodes the per-row length prefix and Type the items.
type Column struct {
	Name      string
	Kind      ColumnKind
	Type      ValueType
	CountType ValueType

	// raw header tokens, kept for error messages and for writing the header back
	TypeName      string
	CountTypeName string
}

// NewScalarColumn builds a scalar column from header tokens
func NewScalarColumn(typeName, name string) Column {
	t, _ := LookupType(typeName)
	return Column{
		Name:     name,
		Kind:     ColumnScalar,
		Type:     t,
		TypeName: typeName,
	}
}

// NewListColumn builds a list column from header tokens
func NewListColumn(countTypeName, typeName, name string) Column {
	ct, _ := LookupType(countTypeName)
	t, _ := LookupType(typeName)
	return Column{
		Name:          name,
		Kind:          ColumnList,
		Type:          t,
		CountType:     ct,
		TypeName:      typeName,
		CountTypeName: countTypeName,
	}
}

// IsList reports whether the column holds a count-prefixed sequence
func (c Column) IsList() bool {
	return c.Kind == ColumnList
}
