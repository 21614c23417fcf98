package scene

import "fmt"

// ModelFrame is the per-model uniform set
type ModelFrame struct {
	Name      string    `json:"name"`
	Transform []float32 `json:"transform"`
	Material  []float32 `json:"material"`
	Vertices  int       `json:"vertices"`
	Triangles int       `json:"triangles"`
	IndexType string    `json:"index_type,omitempty"`
}

// Frame is every uniform of one frame as plain data. Matrices are row-major
// and flattened to 16 floats.
type Frame struct {
	Projection []float32    `json:"projection"`
	View       []float32    `json:"view"`
	Camera     []float32    `json:"camera"`
	Lights     []float32    `json:"lights"`
	Models     []ModelFrame `json:"models"`
}

// Frame snapshots the uniforms for the current state
func (s *Scene) Frame() (*Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view, err := s.camera.View()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	camera := s.camera.Record()
	f := &Frame{
		Projection: s.projection.Flatten(),
		View:       view.Flatten(),
		Camera:     camera[:],
		Lights:     make([]float32, 0, MaxLights*LightRecordSize),
		Models:     make([]ModelFrame, 0, len(s.models)),
	}
	for _, l := range s.lights {
		rec := l.Record()
		f.Lights = append(f.Lights, rec[:]...)
	}
	for _, m := range s.models {
		mat := m.Material.Record()
		mf := ModelFrame{
			Name:      m.Name,
			Transform: m.Transformation().Flatten(),
			Material:  mat[:],
			Vertices:  m.Mesh.VertexCount(),
		}
		if m.Mesh.Indexed() {
			mf.Triangles = m.Mesh.TriangleCount()
			mf.IndexType = m.Mesh.IndexType.String()
		} else {
			mf.Triangles = m.Mesh.VertexCount() / 3
		}
		f.Models = append(f.Models, mf)
	}
	return f, nil
}
