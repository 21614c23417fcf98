package mesh

import (
	"sort"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/leengari/ply-scene/internal/domain/errors"
	"github.com/leengari/ply-scene/internal/domain/schema"
	"github.com/leengari/ply-scene/internal/parser"
	"github.com/leengari/ply-scene/internal/testutil"
)

func mustAssemble(t *testing.T, input string) *Mesh {
	t.Helper()
	table, err := parser.Parse(input)
	require.NoError(t, err)
	m, err := Assemble(table)
	require.NoError(t, err)
	return m
}

func TestAssembleCube(t *testing.T) {
	m := mustAssemble(t, testutil.CubePLY)

	require.Len(t, m.Positions, 32)
	assert.Equal(t, 8, m.VertexCount())
	for i := 0; i < 8; i++ {
		assert.Equal(t, float32(1), m.Positions[i*4+3], "w of vertex %d", i)
	}
	assert.Equal(t, [3]float32{1, 1, 0}, m.Position(7))

	// quads are kept raw: 6 faces x 4 indices, count prefixes removed
	require.Len(t, m.Indices, 24)
	assert.Equal(t, []int{4, 4, 4, 4, 4, 4}, m.FaceSizes)

	unique := map[uint32]int{}
	for _, idx := range m.Indices {
		unique[idx]++
	}
	keys := make([]int, 0, len(unique))
	for k, n := range unique {
		keys = append(keys, int(k))
		assert.Equal(t, 3, n, "every cube corner is shared by 3 faces")
	}
	sort.Ints(keys)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, keys)

	assert.False(t, m.HasNormals())
	assert.False(t, m.HasColors())
	assert.Equal(t, IndexUint32, m.IndexType)
}

func TestTriangulateQuads(t *testing.T) {
	m := mustAssemble(t, testutil.CubePLY)

	tris := m.Triangulate()
	require.Len(t, tris, 36)
	assert.Equal(t, 12, m.TriangleCount())
	// first face 0 1 2 3 -> (0 1 2) (0 2 3)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, tris[:6])
}

func TestTriangulateWithoutFaceSizes(t *testing.T) {
	m := &Mesh{Indices: []uint32{0, 1, 2, 2, 1, 3, 9}}
	assert.Equal(t, []uint32{0, 1, 2, 2, 1, 3}, m.Triangulate())
	assert.Equal(t, 2, m.TriangleCount())
}

func TestAssembleColored(t *testing.T) {
	m := mustAssemble(t, testutil.ColoredPLY)

	require.True(t, m.HasNormals())
	require.True(t, m.HasColors())
	assert.Equal(t, []float32{0, 0, 1, 1}, m.Normals[:4])
	assert.Equal(t, []float32{255, 0, 0, 1}, m.Colors[:4])
	assert.Equal(t, []float32{0, 0, 255, 1}, m.Colors[8:])

	assert.Equal(t, IndexUint16, m.IndexType)
	data, ok := m.IndexData().([]uint16)
	require.True(t, ok)
	assert.Equal(t, []uint16{0, 1, 2}, data)
}

func TestAssembleIndexFallback(t *testing.T) {
	m := mustAssemble(t, testutil.TrianglePLY)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
	assert.Equal(t, IndexUint32, m.IndexType)
}

func TestAssembleIndexTypes(t *testing.T) {
	tests := []struct {
		typeName string
		want     IndexType
	}{
		{"uchar", IndexUint8},
		{"char", IndexUint8},
		{"short", IndexUint16},
		{"ushort", IndexUint16},
		{"int", IndexUint32},
		{"uint", IndexUint32},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			vertex := testutil.CreateVertexElement([3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{0, 1, 0})
			face := testutil.CreateFaceElement([]float64{0, 1, 2})
			face.Columns[0] = schema.NewListColumn("uchar", tt.typeName, "vertex_indices")

			m, err := Assemble(testutil.CreateTable(vertex, face))
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.IndexType)
		})
	}
}

func TestAssembleMissingData(t *testing.T) {
	vertex := testutil.CreateVertexElement([3]float64{0, 0, 0})
	face := testutil.CreateFaceElement([]float64{0, 0, 0})

	noY := testutil.CreateVertexElement([3]float64{0, 0, 0})
	noY.Columns[1] = schema.NewScalarColumn("float", "w")

	noIndices := testutil.CreateFaceElement([]float64{0, 0, 0})
	noIndices.Columns[0] = schema.NewListColumn("uchar", "int", "corners")

	tests := []struct {
		name  string
		table *schema.Table
		what  string
	}{
		{"no vertex element", testutil.CreateTable(face), "vertex element"},
		{"no position column", testutil.CreateTable(noY, face), "positions"},
		{"no face element", testutil.CreateTable(vertex), "face element"},
		{"no index column", testutil.CreateTable(vertex, noIndices), "indices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Assemble(tt.table)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, domainerrors.ErrMandatoryDataMissing)

			var md *domainerrors.MissingDataError
			require.ErrorAs(t, err, &md)
			assert.Equal(t, tt.what, md.What)
		})
	}
}

func TestAssembleMismatchedNormalsPropagates(t *testing.T) {
	input := `ply
format ascii 1.0
element vertex 1
property float x
property float y
property float z
property float nx
property double ny
property float nz
element face 0
property list uchar int vertex_indices
end_header
0 0 0 0 0 1
`
	table, err := parser.Parse(input)
	require.NoError(t, err)

	_, err = Assemble(table)
	assert.ErrorIs(t, err, domainerrors.ErrTypeMismatch)
}

func TestSynthesizeTriangleFlat(t *testing.T) {
	m := mustAssemble(t, testutil.TrianglePLY)

	normals, degenerate, err := SynthesizeNormals(m, false)
	require.NoError(t, err)
	assert.Zero(t, degenerate)
	require.Len(t, normals, 12)
	for v := 0; v < 3; v++ {
		n := normals[v*4 : v*4+4]
		assert.Equal(t, []float32{0, 0, 1, 0}, n, "vertex %d", v)
	}
}

func TestSynthesizeUnindexed(t *testing.T) {
	m := &Mesh{Positions: []float32{
		0, 0, 0, 1,
		1, 0, 0, 1,
		0, 1, 0, 1,
		// reversed winding
		0, 0, 0, 1,
		0, 1, 0, 1,
		1, 0, 0, 1,
	}}

	normals, degenerate, err := SynthesizeNormals(m, false)
	require.NoError(t, err)
	assert.Zero(t, degenerate)
	require.Len(t, normals, 24)
	assert.Equal(t, []float32{0, 0, 1, 0}, normals[8:12])
	assert.Equal(t, []float32{0, 0, -1, 0}, normals[12:16])
	assert.Equal(t, []float32{0, 0, -1, 0}, normals[20:24])
}

func TestSynthesizeDegenerate(t *testing.T) {
	// collinear
	m := &Mesh{Positions: []float32{
		0, 0, 0, 1,
		1, 0, 0, 1,
		2, 0, 0, 1,
	}}
	normals, degenerate, err := SynthesizeNormals(m, true)
	require.NoError(t, err)
	assert.Equal(t, 3, degenerate)
	for _, v := range normals {
		assert.False(t, math32.IsNaN(v))
		assert.Zero(t, v)
	}

	// an unreferenced vertex has no accumulated normal
	m = &Mesh{
		Positions: []float32{0, 0, 0, 1, 1, 0, 0, 1, 0, 1, 0, 1, 5, 5, 5, 1},
		Indices:   []uint32{0, 1, 2},
		FaceSizes: []int{3},
	}
	normals, degenerate, err = SynthesizeNormals(m, false)
	require.NoError(t, err)
	assert.Equal(t, 1, degenerate)
	assert.Equal(t, []float32{0, 0, 0, 0}, normals[12:])
}

// two triangles sharing the edge 1-2, folded 90 degrees
func foldedMesh() *Mesh {
	return &Mesh{
		Positions: []float32{
			0, 0, 0, 1,
			1, 0, 0, 1,
			1, 1, 0, 1,
			1, 1, -1, 1,
		},
		Indices:   []uint32{0, 1, 2, 1, 3, 2},
		FaceSizes: []int{3, 3},
	}
}

func TestSynthesizeFlatLastTriangleWins(t *testing.T) {
	normals, _, err := SynthesizeNormals(foldedMesh(), false)
	require.NoError(t, err)

	// vertex 0 only touches the first triangle
	assert.Equal(t, []float32{0, 0, 1, 0}, normals[0:4])
	// vertices 1 and 2 are overwritten by the second triangle (+X)
	assert.Equal(t, []float32{1, 0, 0, 0}, normals[4:8])
	assert.Equal(t, []float32{1, 0, 0, 0}, normals[8:12])
	assert.Equal(t, []float32{1, 0, 0, 0}, normals[12:16])
}

func TestSynthesizeSmoothBlends(t *testing.T) {
	normals, _, err := SynthesizeNormals(foldedMesh(), true)
	require.NoError(t, err)

	s := 1 / math32.Sqrt(2)
	testutil.AssertFloatsNear(t, []float32{0, 0, 1, 0}, normals[0:4], 1e-6, "vertex 0")
	testutil.AssertFloatsNear(t, []float32{s, 0, s, 0}, normals[4:8], 1e-6, "vertex 1")
	testutil.AssertFloatsNear(t, []float32{s, 0, s, 0}, normals[8:12], 1e-6, "vertex 2")
	testutil.AssertFloatsNear(t, []float32{1, 0, 0, 0}, normals[12:16], 1e-6, "vertex 3")
}

func TestSynthesizeCubeSmooth(t *testing.T) {
	m := mustAssemble(t, testutil.CubePLY)

	normals, degenerate, err := SynthesizeNormals(m, true)
	require.NoError(t, err)
	assert.Zero(t, degenerate)
	require.Len(t, normals, 32)
	for v := 0; v < 8; v++ {
		n := normals[v*4 : v*4+3]
		l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		assert.InDelta(t, 1, l, 1e-5, "vertex %d", v)
	}
}

func TestSynthesizeIndexOutOfRange(t *testing.T) {
	m := &Mesh{
		Positions: []float32{0, 0, 0, 1, 1, 0, 0, 1, 0, 1, 0, 1},
		Indices:   []uint32{0, 1, 7},
		FaceSizes: []int{3},
	}
	_, _, err := SynthesizeNormals(m, true)
	assert.Error(t, err)
}
