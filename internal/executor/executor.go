package executor

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/leengari/ply-scene/internal/engine"
	"github.com/leengari/ply-scene/internal/mesh"
	"github.com/leengari/ply-scene/internal/query/projection"
	"github.com/leengari/ply-scene/internal/storage"
)

// Result is what every command returns. Rows are keyed by column name.
type Result struct {
	Message  string                   `json:"message,omitempty"`
	Error    string                   `json:"error,omitempty"`
	Columns  []string                 `json:"columns,omitempty"`
	Metadata []ColumnInfo             `json:"metadata,omitempty"`
	Rows     []map[string]interface{} `json:"rows,omitempty"`
	Data     interface{}              `json:"data,omitempty"`
}

// ColumnInfo describes one result column
type ColumnInfo struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

var ErrNoDocument = errors.New("no document loaded, use 'load <path>' first")

// Executor runs inspection commands against the current document of an engine
type Executor struct {
	eng     *engine.Engine
	current *engine.Document
}

func New(eng *engine.Engine) *Executor {
	return &Executor{eng: eng}
}

// Current returns the selected document, or nil
func (x *Executor) Current() *engine.Document {
	return x.current
}

func (x *Executor) document() (*engine.Document, error) {
	if x.current == nil {
		return nil, ErrNoDocument
	}
	return x.current, nil
}

// Load opens path through the engine cache and selects it
func (x *Executor) Load(path string) (*Result, error) {
	doc, err := x.eng.Open(path)
	if err != nil {
		return nil, err
	}
	x.current = doc
	return &Result{
		Message: fmt.Sprintf("Loaded '%s' (%d elements, %d warnings)", doc.Name, len(doc.Table.Elements), len(doc.Table.Warnings)),
		Data:    storage.DescribeTable(doc.Table),
	}, nil
}

// Reload re-reads the current document from disk
func (x *Executor) Reload() (*Result, error) {
	doc, err := x.document()
	if err != nil {
		return nil, err
	}
	doc, err = x.eng.Reload(doc.Name)
	if err != nil {
		return nil, err
	}
	x.current = doc
	return &Result{Message: fmt.Sprintf("Reloaded '%s'", doc.Name)}, nil
}

// Elements lists the declared elements
func (x *Executor) Elements() (*Result, error) {
	doc, err := x.document()
	if err != nil {
		return nil, err
	}

	res := &Result{Columns: []string{"element", "count", "rows", "properties"}}
	for _, el := range doc.Table.Elements {
		res.Rows = append(res.Rows, map[string]interface{}{
			"element":    el.Name,
			"count":      el.Count,
			"rows":       len(el.Rows),
			"properties": len(el.Columns),
		})
	}
	res.Message = fmt.Sprintf("%d elements", len(res.Rows))
	return res, nil
}

// Describe lists the columns of one element
func (x *Executor) Describe(element string) (*Result, error) {
	doc, err := x.document()
	if err != nil {
		return nil, err
	}
	el, ok := doc.Table.Element(element)
	if !ok {
		return nil, fmt.Errorf("element not found: %s", element)
	}

	res := &Result{Columns: []string{"property", "type", "list"}}
	for _, col := range el.Columns {
		typ := col.TypeName
		if col.IsList() {
			typ = col.CountTypeName + " " + col.TypeName
		}
		res.Rows = append(res.Rows, map[string]interface{}{
			"property": col.Name,
			"type":     typ,
			"list":     col.IsList(),
		})
	}
	return res, nil
}

// Rows shows up to limit decoded rows of one element
func (x *Executor) Rows(element string, limit int) (*Result, error) {
	doc, err := x.document()
	if err != nil {
		return nil, err
	}
	el, ok := doc.Table.Element(element)
	if !ok {
		return nil, fmt.Errorf("element not found: %s", element)
	}

	res := &Result{Columns: el.ColumnNames()}
	for _, col := range el.Columns {
		res.Metadata = append(res.Metadata, ColumnInfo{Name: col.Name, Type: col.TypeName})
	}
	for i, row := range el.Rows {
		if limit > 0 && i >= limit {
			break
		}
		r := make(map[string]interface{}, len(row))
		for j, v := range row {
			r[el.Columns[j].Name] = v.String()
		}
		res.Rows = append(res.Rows, r)
	}
	res.Message = fmt.Sprintf("Returned %d of %d rows", len(res.Rows), len(el.Rows))
	return res, nil
}

// Extract flattens the requested properties of an element. Numeric
// arguments are constants.
func (x *Executor) Extract(element string, args []string) (*Result, error) {
	doc, err := x.document()
	if err != nil {
		return nil, err
	}
	el, ok := doc.Table.Element(element)
	if !ok {
		return nil, fmt.Errorf("element not found: %s", element)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("extract needs at least one property")
	}

	proj := projection.NewProjection(projection.ParseRefs(args...)...)
	buf, err := projection.ExtractProjection(el, proj)
	if err != nil {
		return nil, err
	}
	return &Result{
		Message: fmt.Sprintf("%s %s: %d %s values", element, proj, buf.Len(), buf.Type()),
		Data:    storage.JSONData(buf.Data()),
	}, nil
}

// Mesh assembles the current document
func (x *Executor) Mesh() (*Result, error) {
	doc, err := x.document()
	if err != nil {
		return nil, err
	}
	m, err := x.eng.Assemble(doc)
	if err != nil {
		return nil, err
	}
	return &Result{
		Message: m.String(),
		Data:    storage.DescribeMesh(doc.Name, m),
	}, nil
}

// Normals synthesizes normals for the current mesh without storing them
func (x *Executor) Normals(mode string) (*Result, error) {
	smooth, err := parseShading(mode)
	if err != nil {
		return nil, err
	}
	if mode == "" {
		mode = "flat"
	}
	doc, err := x.document()
	if err != nil {
		return nil, err
	}
	m, err := x.eng.Assemble(doc)
	if err != nil {
		return nil, err
	}

	normals, degenerate, err := mesh.SynthesizeNormals(m, smooth)
	if err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("%d %s normals, %d degenerate", len(normals)/mesh.Components, mode, degenerate)
	if m.HasNormals() {
		msg += " (file declares its own normals)"
	}
	return &Result{Message: msg, Data: storage.Float32s(normals)}, nil
}

func parseShading(mode string) (bool, error) {
	switch mode {
	case "", "flat":
		return false, nil
	case "smooth":
		return true, nil
	}
	return false, fmt.Errorf("shading must be flat or smooth, got %q", mode)
}

func parseLimit(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid row limit %q", s)
	}
	return n, nil
}
