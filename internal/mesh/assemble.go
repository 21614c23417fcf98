package mesh

import (
	"fmt"
	"log/slog"

	domainerrors "github.com/leengari/ply-scene/internal/domain/errors"
	"github.com/leengari/ply-scene/internal/domain/schema"
	"github.com/leengari/ply-scene/internal/query/projection"
)

const (
	VertexElement = "vertex"
	FaceElement   = "face"
)

// index column names in lookup order
var indexColumns = []string{"vertex_indices", "vertex_index"}

// Assemble builds a mesh from the vertex and face elements of table.
// Positions and indices are mandatory; normals and colors are probed and
// left nil when the vertex element does not declare them.
func Assemble(table *schema.Table) (*Mesh, error) {
	vertex, ok := table.Element(VertexElement)
	if !ok {
		return nil, &domainerrors.MissingDataError{Element: VertexElement, What: "vertex element"}
	}

	pos, err := projection.Extract(vertex,
		projection.Col("x"), projection.Col("y"), projection.Col("z"), projection.Const(1.0))
	if err != nil {
		return nil, &domainerrors.MissingDataError{Element: VertexElement, What: "positions", Err: err}
	}

	m := &Mesh{Positions: pos.Float32s()}

	m.Normals, err = probeAttribute(vertex, "nx", "ny", "nz")
	if err != nil {
		return nil, fmt.Errorf("normals: %w", err)
	}
	m.Colors, err = probeAttribute(vertex, "red", "green", "blue")
	if err != nil {
		return nil, fmt.Errorf("colors: %w", err)
	}

	if err := assembleIndices(table, m); err != nil {
		return nil, err
	}

	slog.Debug("mesh assembled",
		slog.Int("vertices", m.VertexCount()),
		slog.Int("faces", len(m.FaceSizes)),
		slog.Bool("normals", m.HasNormals()),
		slog.Bool("colors", m.HasColors()),
	)
	return m, nil
}

// probeAttribute extracts (a, b, c, 1.0) and returns nil when a column is not declared
func probeAttribute(el *schema.Element, a, b, c string) ([]float32, error) {
	res, err := projection.Probe(el,
		projection.Col(a), projection.Col(b), projection.Col(c), projection.Const(1.0))
	if err != nil {
		return nil, err
	}
	if res.Outcome == projection.NotFound {
		slog.Debug("optional attribute absent", slog.String("element", el.Name), slog.String("property", res.Missing))
		return nil, nil
	}
	return res.Buffer.Float32s(), nil
}

func assembleIndices(table *schema.Table, m *Mesh) error {
	face, ok := table.Element(FaceElement)
	if !ok {
		return &domainerrors.MissingDataError{Element: FaceElement, What: "face element"}
	}

	name := ""
	for _, candidate := range indexColumns {
		if face.HasColumn(candidate) {
			name = candidate
			break
		}
	}
	if name == "" {
		return &domainerrors.MissingDataError{
			Element: FaceElement,
			What:    "indices",
			Err:     &domainerrors.PropertyNotFoundError{Element: FaceElement, Property: indexColumns[0]},
		}
	}

	col, _ := face.Column(name)
	buf, err := projection.Extract(face, projection.Col(name))
	if err != nil {
		return &domainerrors.MissingDataError{Element: FaceElement, What: "indices", Err: err}
	}

	m.Indices = buf.Uint32s()
	m.IndexType = indexTypeFor(col.Type)

	pos := face.ColumnIndex(name)
	m.FaceSizes = make([]int, len(face.Rows))
	for i, row := range face.Rows {
		m.FaceSizes[i] = row[pos].Len()
	}
	return nil
}
