package scene

import (
	"github.com/leengari/ply-scene/internal/linalg"
	"github.com/leengari/ply-scene/internal/mesh"
)

// Model is a mesh placed in the world
type Model struct {
	Name string
	Mesh *mesh.Mesh

	// Origin is the model-space pivot for scale and rotation
	Origin   linalg.Vec3
	Position linalg.Vec3
	Scale    linalg.Vec3
	// Rotation holds Euler angles in radians
	Rotation linalg.Vec3

	Material Material
}

func NewModel(name string, m *mesh.Mesh) *Model {
	return &Model{
		Name:     name,
		Mesh:     m,
		Scale:    linalg.V3(1, 1, 1),
		Material: DefaultMaterial(),
	}
}

// Transformation is the model-to-world matrix: scale, move the origin to
// the world origin, rotate, move back, then place at Position.
func (m *Model) Transformation() linalg.Mat4 {
	acc := linalg.Identity4()
	acc = linalg.Scale(m.Scale.X, m.Scale.Y, m.Scale.Z, acc)
	acc = linalg.Translate(-m.Origin.X, -m.Origin.Y, -m.Origin.Z, acc)
	acc = linalg.Rotate(m.Rotation.X, m.Rotation.Y, m.Rotation.Z, acc)
	acc = linalg.Translate(m.Origin.X, m.Origin.Y, m.Origin.Z, acc)
	acc = linalg.Translate(m.Position.X, m.Position.Y, m.Position.Z, acc)
	return acc
}

// DefaultColors fills one rgba tuple per vertex
func DefaultColors(vertexCount int, rgba [4]float32) []float32 {
	colors := make([]float32, vertexCount*mesh.Components)
	for i := 0; i < len(colors); i += mesh.Components {
		copy(colors[i:i+mesh.Components], rgba[:])
	}
	return colors
}
