package storage

import (
	"math"
	"strconv"

	"github.com/leengari/ply-scene/internal/domain/schema"
	"github.com/leengari/ply-scene/internal/mesh"
)

// TableMeta is the JSON summary of a parsed header
type TableMeta struct {
	Format   string        `json:"format"`
	Comments []string      `json:"comments,omitempty"`
	ObjInfo  []string      `json:"obj_info,omitempty"`
	Elements []ElementMeta `json:"elements"`
	Warnings []string      `json:"warnings,omitempty"`
}

type ElementMeta struct {
	Name    string       `json:"name"`
	Count   int          `json:"count"`
	Rows    int          `json:"rows"`
	Columns []ColumnMeta `json:"columns"`
}

type ColumnMeta struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	List      bool   `json:"list,omitempty"`
	CountType string `json:"count_type,omitempty"`
}

// MeshFile is the exported form of an assembled mesh
type MeshFile struct {
	Name      string    `json:"name"`
	Vertices  int       `json:"vertices"`
	Positions Float32s  `json:"positions"`
	Normals   Float32s  `json:"normals,omitempty"`
	Colors    Float32s  `json:"colors,omitempty"`
	Indices   []uint32  `json:"indices"`
	IndexType string    `json:"index_type"`
	FaceSizes []int     `json:"face_sizes"`
}

// DescribeTable builds the header summary of t
func DescribeTable(t *schema.Table) TableMeta {
	meta := TableMeta{
		Format:   t.Format,
		Comments: t.Comments,
		ObjInfo:  t.ObjInfo,
		Elements: make([]ElementMeta, 0, len(t.Elements)),
		Warnings: t.Warnings,
	}
	for _, el := range t.Elements {
		em := ElementMeta{Name: el.Name, Count: el.Count, Rows: len(el.Rows)}
		for _, col := range el.Columns {
			cm := ColumnMeta{Name: col.Name, Type: col.TypeName, List: col.IsList()}
			if col.IsList() {
				cm.CountType = col.CountTypeName
			}
			em.Columns = append(em.Columns, cm)
		}
		meta.Elements = append(meta.Elements, em)
	}
	return meta
}

// DescribeMesh converts m for export
func DescribeMesh(name string, m *mesh.Mesh) MeshFile {
	return MeshFile{
		Name:      name,
		Vertices:  m.VertexCount(),
		Positions: Float32s(m.Positions),
		Normals:   Float32s(m.Normals),
		Colors:    Float32s(m.Colors),
		Indices:   m.Indices,
		IndexType: m.IndexType.String(),
		FaceSizes: m.FaceSizes,
	}
}

// Float32s marshals like []float32 but writes NaN and infinities as null
type Float32s []float32

func (f Float32s) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	b := make([]byte, 0, 2+len(f)*4)
	b = append(b, '[')
	for i, v := range f {
		if i > 0 {
			b = append(b, ',')
		}
		b = appendFloat(b, float64(v), 32)
	}
	return append(b, ']'), nil
}

// Float64s is the double precision counterpart of Float32s
type Float64s []float64

func (f Float64s) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	b := make([]byte, 0, 2+len(f)*8)
	b = append(b, '[')
	for i, v := range f {
		if i > 0 {
			b = append(b, ',')
		}
		b = appendFloat(b, v, 64)
	}
	return append(b, ']'), nil
}

func appendFloat(b []byte, v float64, bits int) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(b, "null"...)
	}
	return strconv.AppendFloat(b, v, 'g', -1, bits)
}

// JSONData wraps float buffers so they survive JSON encoding; other values
// pass through
func JSONData(v any) any {
	switch d := v.(type) {
	case []float32:
		return Float32s(d)
	case []float64:
		return Float64s(d)
	}
	return v
}
