package testutil

import (
	"github.com/leengari/ply-scene/internal/domain/data"
	"github.com/leengari/ply-scene/internal/domain/schema"
)

// CubePLY is an 8 vertex cube with 6 quad faces
const CubePLY = `ply
format ascii 1.0
comment made by Greg Turk
comment this file is a cube
element vertex 8
property float x
property float y
property float z
element face 6
property list uchar int vertex_indices
end_header
0 0 0
0 0 1
0 1 1
0 1 0
1 0 0
1 0 1
1 1 1
1 1 0
4 0 1 2 3
4 7 6 5 4
4 0 4 5 1
4 1 5 6 2
4 2 6 7 3
4 3 7 4 0
`

// TrianglePLY is a single counter-clockwise triangle in the z=0 plane
const TrianglePLY = `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
element face 1
property list uchar uint vertex_index
end_header
0 0 0
1 0 0
0 1 0
3 0 1 2
`

// ColoredPLY declares normals and colors next to positions
const ColoredPLY = `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
property float nx
property float ny
property float nz
property uchar red
property uchar green
property uchar blue
element face 1
property list uchar ushort vertex_indices
end_header
0 0 0 0 0 1 255 0 0
1 0 0 0 0 1 0 255 0
0 1 0 0 0 1 0 0 255
3 0 1 2
`

// CreateVertexElement creates a float x/y/z vertex element holding the given rows
func CreateVertexElement(points ...[3]float64) *schema.Element {
	el := schema.NewElement("vertex", len(points))
	el.Columns = []schema.Column{
		schema.NewScalarColumn("float", "x"),
		schema.NewScalarColumn("float", "y"),
		schema.NewScalarColumn("float", "z"),
	}
	for _, p := range points {
		el.AppendRow(data.Row{data.Scalar(p[0]), data.Scalar(p[1]), data.Scalar(p[2])})
	}
	return el
}

// CreateFaceElement creates a face element with a uchar/int vertex_indices list column
func CreateFaceElement(faces ...[]float64) *schema.Element {
	el := schema.NewElement("face", len(faces))
	el.Columns = []schema.Column{
		schema.NewListColumn("uchar", "int", "vertex_indices"),
	}
	for _, f := range faces {
		el.AppendRow(data.Row{data.List(f)})
	}
	return el
}

// CreateTable wraps elements into a table
func CreateTable(elements ...*schema.Element) *schema.Table {
	t := schema.NewTable()
	t.Format = "ascii 1.0"
	t.Elements = append(t.Elements, elements...)
	return t
}
