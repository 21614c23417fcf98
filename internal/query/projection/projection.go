package projection

import (
	"strconv"
	"strings"
)

// ColumnRef is one requested output column: either a property name or a
// literal constant spliced in verbatim for every row
type ColumnRef struct {
	Column     string  // property name
	Constant   float64 // value used when IsConstant
	IsConstant bool
}

// Col references a property by name
func Col(name string) ColumnRef {
	return ColumnRef{Column: name}
}

// Const references a literal value
func Const(v float64) ColumnRef {
	return ColumnRef{Constant: v, IsConstant: true}
}

// ParseRef turns a textual request into a ColumnRef: anything that parses
// as a number is a constant, everything else a property name
func ParseRef(s string) ColumnRef {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Const(v)
	}
	return Col(s)
}

// ParseRefs applies ParseRef to each argument
func ParseRefs(args ...string) []ColumnRef {
	refs := make([]ColumnRef, len(args))
	for i, a := range args {
		refs[i] = ParseRef(a)
	}
	return refs
}

func (r ColumnRef) String() string {
	if r.IsConstant {
		return strconv.FormatFloat(r.Constant, 'g', -1, 64)
	}
	return r.Column
}

// Projection is an ordered list of column requests
type Projection struct {
	Columns []ColumnRef
}

// NewProjection creates a projection over the given refs
func NewProjection(columns ...ColumnRef) *Projection {
	return &Projection{Columns: columns}
}

// Names returns the names of the property refs, skipping constants
func (p *Projection) Names() []string {
	names := make([]string, 0, len(p.Columns))
	for _, c := range p.Columns {
		if !c.IsConstant {
			names = append(names, c.Column)
		}
	}
	return names
}

func (p *Projection) String() string {
	parts := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
