package mesh

import (
	"fmt"

	"github.com/leengari/ply-scene/internal/domain/schema"
)

// Components per vertex in every attribute buffer (xyz + w, rgb + alpha)
const Components = 4

// IndexType is the narrowest unsigned integer width that holds the declared index type
type IndexType int

const (
	IndexUint32 IndexType = iota
	IndexUint16
	IndexUint8
)

func (t IndexType) String() string {
	switch t {
	case IndexUint8:
		return "uint8"
	case IndexUint16:
		return "uint16"
	}
	return "uint32"
}

// indexTypeFor maps a declared list value type to an index width
func indexTypeFor(t schema.ValueType) IndexType {
	switch t.Bits() {
	case 8:
		return IndexUint8
	case 16:
		return IndexUint16
	}
	return IndexUint32
}

// Mesh is the renderable data assembled from a parsed table.
// Normals and Colors are nil when the source did not declare them.
type Mesh struct {
	Positions []float32
	Normals   []float32
	Colors    []float32

	// Indices holds the raw face lists in declaration order. Polygons are not
	// split; FaceSizes records how many indices each face contributed.
	Indices   []uint32
	IndexType IndexType
	FaceSizes []int
}

// VertexCount is the number of position tuples
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / Components
}

func (m *Mesh) HasNormals() bool { return m.Normals != nil }
func (m *Mesh) HasColors() bool  { return m.Colors != nil }

// Indexed reports whether the mesh carries an index buffer
func (m *Mesh) Indexed() bool { return len(m.Indices) > 0 }

// Position returns vertex i as xyz
func (m *Mesh) Position(i int) [3]float32 {
	off := i * Components
	return [3]float32{m.Positions[off], m.Positions[off+1], m.Positions[off+2]}
}

// IndexData returns the raw indices narrowed to IndexType
// ([]uint8, []uint16 or []uint32).
func (m *Mesh) IndexData() any {
	switch m.IndexType {
	case IndexUint8:
		out := make([]uint8, len(m.Indices))
		for i, v := range m.Indices {
			out[i] = uint8(v)
		}
		return out
	case IndexUint16:
		out := make([]uint16, len(m.Indices))
		for i, v := range m.Indices {
			out[i] = uint16(v)
		}
		return out
	}
	return m.Indices
}

// Triangulate splits every face into a triangle fan (0, i-1, i).
// Faces with fewer than 3 indices are dropped.
func (m *Mesh) Triangulate() []uint32 {
	if len(m.FaceSizes) == 0 {
		// sizes unknown, treat the buffer as a triangle list
		n := len(m.Indices) - len(m.Indices)%3
		return append([]uint32(nil), m.Indices[:n]...)
	}

	out := make([]uint32, 0, len(m.Indices))
	off := 0
	for _, size := range m.FaceSizes {
		face := m.Indices[off : off+size]
		off += size
		for i := 2; i < size; i++ {
			out = append(out, face[0], face[i-1], face[i])
		}
	}
	return out
}

// TriangleCount is the number of triangles after fan triangulation
func (m *Mesh) TriangleCount() int {
	if len(m.FaceSizes) == 0 {
		return len(m.Indices) / 3
	}
	n := 0
	for _, size := range m.FaceSizes {
		if size >= 3 {
			n += size - 2
		}
	}
	return n
}

func (m *Mesh) String() string {
	return fmt.Sprintf("mesh(vertices=%d, faces=%d, triangles=%d, normals=%t, colors=%t, index=%s)",
		m.VertexCount(), len(m.FaceSizes), m.TriangleCount(), m.HasNormals(), m.HasColors(), m.IndexType)
}
