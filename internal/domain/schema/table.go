package schema

// Table is the parsed content of one PLY file.
// It is built by a single parse call and read-only afterwards.
type Table struct {
	Format   string // e.g. "ascii 1.0"
	Comments []string
	ObjInfo  []string // obj_info lines, kept apart from comments
	Elements []*Element

	// Warnings collects soft failures hit while reading values
	// (unparsable numbers, short list rows, missing data lines).
	Warnings []string
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{
		Comments: make([]string, 0),
		Elements: make([]*Element, 0),
	}
}

// Element returns the first element with the given name
func (t *Table) Element(name string) (*Element, bool) {
	for _, el := range t.Elements {
		if el.Name == name {
			return el, true
		}
	}
	return nil, false
}

// ElementNames returns element names in declaration order
func (t *Table) ElementNames() []string {
	names := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		names[i] = el.Name
	}
	return names
}

// Empty reports whether the table holds no declarations at all
func (t *Table) Empty() bool {
	return len(t.Elements) == 0
}

// Warn records a soft failure
func (t *Table) Warn(msg string) {
	t.Warnings = append(t.Warnings, msg)
}
