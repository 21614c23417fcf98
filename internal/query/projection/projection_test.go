package projection_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/ply-scene/internal/domain/data"
	domainerrors "github.com/leengari/ply-scene/internal/domain/errors"
	"github.com/leengari/ply-scene/internal/domain/schema"
	"github.com/leengari/ply-scene/internal/parser"
	"github.com/leengari/ply-scene/internal/query/projection"
	"github.com/leengari/ply-scene/internal/testutil"
)

// TestExtract_PositionsWithConstant tests splicing a literal after named columns
func TestExtract_PositionsWithConstant(t *testing.T) {
	el := testutil.CreateVertexElement([3]float64{0, 0, 0}, [3]float64{1, 1, 1})

	buf, err := projection.Extract(el,
		projection.Col("x"), projection.Col("y"), projection.Col("z"), projection.Const(1.0))
	require.NoError(t, err)

	assert.Equal(t, schema.TypeFloat, buf.Type())
	got, ok := projection.Values[float32](buf)
	require.True(t, ok)
	assert.Equal(t, []float32{0, 0, 0, 1, 1, 1, 1, 1}, got)
}

// TestExtract_LengthIsRowsTimesRequests tests the scalar length guarantee
func TestExtract_LengthIsRowsTimesRequests(t *testing.T) {
	table, err := parser.Parse(testutil.CubePLY)
	require.NoError(t, err)
	vertex, _ := table.Element("vertex")

	buf, err := projection.Extract(vertex, projection.ParseRefs("x", "y", "z", "1.0")...)
	require.NoError(t, err)
	assert.Equal(t, len(vertex.Rows)*4, buf.Len())
}

// TestExtract_ListColumn tests that list cells contribute only their items
func TestExtract_ListColumn(t *testing.T) {
	table, err := parser.Parse(testutil.CubePLY)
	require.NoError(t, err)
	face, _ := table.Element("face")

	buf, err := projection.Extract(face, projection.Col("vertex_indices"))
	require.NoError(t, err)
	require.Equal(t, 24, buf.Len())

	indices, ok := projection.Values[int32](buf)
	require.True(t, ok)
	assert.Equal(t, []int32{0, 1, 2, 3}, indices[:4])

	seen := make(map[int32]int)
	for _, idx := range indices {
		seen[idx]++
	}
	assert.Len(t, seen, 8)
	for v := int32(0); v < 8; v++ {
		assert.Equal(t, 3, seen[v], "vertex %d is shared by 3 cube faces", v)
	}
}

// TestExtract_PropertyNotFound tests missing columns
func TestExtract_PropertyNotFound(t *testing.T) {
	el := testutil.CreateVertexElement([3]float64{0, 0, 0})

	_, err := projection.Extract(el, projection.ParseRefs("nx", "ny", "nz", "1.0")...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPropertyNotFound))

	var nf *domainerrors.PropertyNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "nx", nf.Property)
	assert.Equal(t, "vertex", nf.Element)
}

// TestExtract_TypeMismatch tests every ordering of a list and a scalar column
func TestExtract_TypeMismatch(t *testing.T) {
	el := schema.NewElement("mixed", 1)
	el.Columns = []schema.Column{
		schema.NewListColumn("uchar", "int", "vertex_indices"),
		schema.NewScalarColumn("float", "weight"),
	}
	el.AppendRow(data.Row{data.List([]float64{0, 1, 2}), data.Scalar(0.5)})

	orders := [][]projection.ColumnRef{
		{projection.Col("vertex_indices"), projection.Col("weight")},
		{projection.Col("weight"), projection.Col("vertex_indices")},
		{projection.Const(1), projection.Col("weight"), projection.Col("vertex_indices")},
		{projection.Col("vertex_indices"), projection.Const(1), projection.Col("weight")},
	}
	for _, refs := range orders {
		_, err := projection.Extract(el, refs...)
		assert.ErrorIs(t, err, domainerrors.ErrTypeMismatch, "%v", projection.NewProjection(refs...))
	}
}

// TestExtract_AliasTypesMatch tests that float and float32 count as one type
func TestExtract_AliasTypesMatch(t *testing.T) {
	el := schema.NewElement("vertex", 1)
	el.Columns = []schema.Column{
		schema.NewScalarColumn("float", "x"),
		schema.NewScalarColumn("float32", "y"),
	}
	el.AppendRow(data.Row{data.Scalar(1), data.Scalar(2)})

	buf, err := projection.Extract(el, projection.Col("x"), projection.Col("y"))
	require.NoError(t, err)
	assert.Equal(t, 2, buf.Len())
}

// TestExtract_UnsupportedType tests deferred failure of unknown type tokens
func TestExtract_UnsupportedType(t *testing.T) {
	el := schema.NewElement("vertex", 1)
	el.Columns = []schema.Column{schema.NewScalarColumn("quad", "x")}
	el.AppendRow(data.Row{data.Scalar(1)})

	_, err := projection.Extract(el, projection.Col("x"))
	assert.ErrorIs(t, err, domainerrors.ErrUnsupportedType)

	// constants alone carry no type
	_, err = projection.Extract(el, projection.Const(1))
	assert.ErrorIs(t, err, domainerrors.ErrUnsupportedType)
}

// TestExtract_IntegerConversion tests wrapping and NaN handling for integer buffers
func TestExtract_IntegerConversion(t *testing.T) {
	el := schema.NewElement("vertex", 1)
	el.Columns = []schema.Column{
		schema.NewScalarColumn("uchar", "red"),
		schema.NewScalarColumn("uchar", "green"),
	}
	el.AppendRow(data.Row{data.Scalar(300), data.Scalar(0)})
	el.Rows[0][1].Num = math.NaN()

	buf, err := projection.Extract(el, projection.Col("red"), projection.Col("green"), projection.Const(1.0))
	require.NoError(t, err)

	got, ok := projection.Values[uint8](buf)
	require.True(t, ok)
	assert.Equal(t, []uint8{44, 0, 1}, got)
	assert.Equal(t, []float32{44, 0, 1}, buf.Float32s())
}

// TestExtract_Uint32sFromSignedIndices tests index conversion of an int buffer
func TestExtract_Uint32sFromSignedIndices(t *testing.T) {
	el := testutil.CreateFaceElement([]float64{0, 1, -1}, []float64{2, 3, 4})

	buf, err := projection.Extract(el, projection.Col("vertex_indices"))
	require.NoError(t, err)
	assert.Equal(t, schema.TypeInt, buf.Type())
	assert.Equal(t, []uint32{0, 1, math.MaxUint32, 2, 3, 4}, buf.Uint32s())
}

// TestExtract_Idempotent tests that repeated extraction is bit-identical
func TestExtract_Idempotent(t *testing.T) {
	table, err := parser.Parse(testutil.ColoredPLY)
	require.NoError(t, err)
	vertex, _ := table.Element("vertex")

	refs := projection.ParseRefs("x", "y", "z", "1.0")
	first, err := projection.Extract(vertex, refs...)
	require.NoError(t, err)
	second, err := projection.Extract(vertex, refs...)
	require.NoError(t, err)

	assert.Equal(t, first.Data(), second.Data())
}

// TestProbe tests the tagged optional-attribute outcome
func TestProbe(t *testing.T) {
	table, err := parser.Parse(testutil.ColoredPLY)
	require.NoError(t, err)
	vertex, _ := table.Element("vertex")

	res, err := projection.Probe(vertex, projection.ParseRefs("red", "green", "blue", "1.0")...)
	require.NoError(t, err)
	assert.Equal(t, projection.Found, res.Outcome)
	assert.Equal(t, schema.TypeUchar, res.Buffer.Type())
	assert.Equal(t, 12, res.Buffer.Len())

	res, err = projection.Probe(vertex, projection.ParseRefs("u", "v")...)
	require.NoError(t, err)
	assert.Equal(t, projection.NotFound, res.Outcome)
	assert.Equal(t, "u", res.Missing)
	assert.Nil(t, res.Buffer)

	// mismatches are real failures, not absences
	_, err = projection.Probe(vertex, projection.ParseRefs("x", "red")...)
	assert.ErrorIs(t, err, domainerrors.ErrTypeMismatch)
}

// TestValidateProjection tests the returned positions and shared column
func TestValidateProjection(t *testing.T) {
	el := testutil.CreateVertexElement([3]float64{1, 2, 3})

	positions, col, err := projection.ValidateProjection(el,
		projection.NewProjection(projection.Col("z"), projection.Const(0), projection.Col("x")))
	testutil.AssertNoError(t, err, "Valid projection")
	assert.Equal(t, []int{2, 0}, positions)
	assert.Equal(t, schema.TypeFloat, col.Type)

	_, _, err = projection.ValidateProjection(el, projection.NewProjection(projection.Col("w")))
	testutil.AssertError(t, err, "Invalid projection")
}

func TestParseRef(t *testing.T) {
	assert.Equal(t, projection.Const(1), projection.ParseRef("1.0"))
	assert.Equal(t, projection.Col("x"), projection.ParseRef("x"))
	assert.Equal(t, "(x, 1)", projection.NewProjection(projection.Col("x"), projection.Const(1)).String())
}
