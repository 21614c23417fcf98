package data

import (
	"fmt"
	"strings"
)

// Value is one cell of a row: a single number for a scalar column or the
// decoded items of a list column. The list's count prefix is not kept.
type Value struct {
	Num    float64
	List   []float64
	IsList bool
}

// Scalar wraps a decoded scalar cell
func Scalar(v float64) Value {
	return Value{Num: v}
}

// List wraps the decoded items of a list cell
func List(items []float64) Value {
	if items == nil {
		items = []float64{}
	}
	return Value{List: items, IsList: true}
}

// Len is the number of numbers the cell contributes to an extraction
func (v Value) Len() int {
	if v.IsList {
		return len(v.List)
	}
	return 1
}

// AppendTo appends the cell's numbers to dst
func (v Value) AppendTo(dst []float64) []float64 {
	if v.IsList {
		return append(dst, v.List...)
	}
	return append(dst, v.Num)
}

func (v Value) String() string {
	if !v.IsList {
		return fmt.Sprintf("%g", v.Num)
	}
	parts := make([]string, len(v.List))
	for i, n := range v.List {
		parts[i] = fmt.Sprintf("%g", n)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Row represents a single element row: one Value per declared column, in column order
type Row []Value

// NewRow creates a row with room for n columns
func NewRow(n int) Row {
	return make(Row, 0, n)
}
