package schema

import "github.com/leengari/ply-scene/internal/domain/data"

// Element is a named group of rows sharing one column layout.
// Columns are fixed once the header is read; rows are appended in file order.
type Element struct {
	Name    string
	Count   int // declared row count
	Columns []Column
	Rows    []data.Row
}

// NewElement creates an empty element declaration
func NewElement(name string, count int) *Element {
	return &Element{
		Name:    name,
		Count:   count,
		Columns: make([]Column, 0),
		Rows:    make([]data.Row, 0, count),
	}
}

// ColumnIndex returns the position of the named column, or -1
func (e *Element) ColumnIndex(name string) int {
	for i, col := range e.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Column returns the named column declaration
func (e *Element) Column(name string) (Column, bool) {
	if i := e.ColumnIndex(name); i >= 0 {
		return e.Columns[i], true
	}
	return Column{}, false
}

// HasColumn reports whether a column with this name is declared
func (e *Element) HasColumn(name string) bool {
	return e.ColumnIndex(name) >= 0
}

// ColumnNames returns the declared column names in order
func (e *Element) ColumnNames() []string {
	names := make([]string, len(e.Columns))
	for i, col := range e.Columns {
		names[i] = col.Name
	}
	return names
}

// HasList reports whether the element declares its single list column
func (e *Element) HasList() bool {
	return len(e.Columns) == 1 && e.Columns[0].IsList()
}

// AppendRow adds a parsed row. Only the parser calls this.
func (e *Element) AppendRow(row data.Row) {
	e.Rows = append(e.Rows, row)
}
