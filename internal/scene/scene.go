package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/chewxy/math32"

	"github.com/leengari/ply-scene/internal/linalg"
	"github.com/leengari/ply-scene/internal/mesh"
)

// ProjectionMode selects the projection matrix builder
type ProjectionMode string

const (
	Perspective ProjectionMode = "perspective"
	Orthogonal  ProjectionMode = "orthogonal"
)

// ParseProjectionMode accepts "perspective" or "orthogonal"
func ParseProjectionMode(s string) (ProjectionMode, error) {
	switch ProjectionMode(s) {
	case Perspective, Orthogonal:
		return ProjectionMode(s), nil
	}
	return "", fmt.Errorf("projection mode %q is neither %q nor %q", s, Perspective, Orthogonal)
}

// orbit speed in radians per unit of dt
const orbitRate = math32.Pi / 16

var ErrModelIndex = errors.New("model index out of range")

// Scene holds everything needed to render a frame. It is safe for
// concurrent use.
type Scene struct {
	mu sync.RWMutex

	width, height int
	frustum       linalg.Frustum
	mode          ProjectionMode
	projection    linalg.Mat4

	lights [MaxLights]Light
	camera Camera
	orbit  bool
	models []*Model
}

// New creates an empty scene for a width x height viewport
func New(width, height int) (*Scene, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid viewport %dx%d", width, height)
	}
	s := &Scene{width: width, height: height}
	s.reset()
	return s, nil
}

func defaultFrustum(width, height int) linalg.Frustum {
	aspect := float32(width) / float32(height)
	return linalg.Frustum{
		Left: -aspect, Right: aspect,
		Bottom: -1, Top: 1,
		Near: -1, Far: 1,
		Fovy:   math32.Pi / 3,
		Aspect: aspect,
	}
}

func (s *Scene) reset() {
	s.frustum = defaultFrustum(s.width, s.height)
	s.mode = Perspective
	s.lights = DefaultLights()
	s.camera = NewCamera()
	s.orbit = false
	s.models = nil
	s.updateProjection()
}

func (s *Scene) updateProjection() {
	if s.mode == Orthogonal {
		s.projection = s.frustum.Orthographic()
		return
	}
	s.projection = s.frustum.Perspective()
}

// Clear drops all models and restores default lights, camera, frustum and
// projection mode
func (s *Scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	slog.Debug("scene cleared")
}

// SetProjectionMode switches the projection and rebuilds its matrix
func (s *Scene) SetProjectionMode(mode ProjectionMode) error {
	if _, err := ParseProjectionMode(string(mode)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	s.updateProjection()
	return nil
}

func (s *Scene) ProjectionMode() ProjectionMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetFovy sets the vertical field of view in radians
func (s *Scene) SetFovy(fovy float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frustum.Fovy = fovy
	s.updateProjection()
}

func (s *Scene) Frustum() linalg.Frustum {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frustum
}

// ProjectionMatrix returns the current projection
func (s *Scene) ProjectionMatrix() linalg.Mat4 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projection
}

func (s *Scene) Camera() Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.camera
}

func (s *Scene) SetCamera(c Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera = c
}

// SetOrbit turns camera orbiting in Update on or off
func (s *Scene) SetOrbit(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orbit = on
}

func (s *Scene) Lights() [MaxLights]Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lights
}

// SetLight replaces light i
func (s *Scene) SetLight(i int, l Light) error {
	if i < 0 || i >= MaxLights {
		return fmt.Errorf("light %d: only %d lights are supported", i, MaxLights)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights[i] = l
	return nil
}

// AddModel adds m to the scene and returns its index. Missing normals are
// synthesized (smooth or flat) and missing colors are filled with rgba.
func (s *Scene) AddModel(m *Model, smooth bool, rgba [4]float32) (int, error) {
	if m == nil || m.Mesh == nil {
		return 0, errors.New("model has no mesh")
	}

	if !m.Mesh.HasNormals() {
		normals, degenerate, err := mesh.SynthesizeNormals(m.Mesh, smooth)
		if err != nil {
			return 0, fmt.Errorf("model %q: %w", m.Name, err)
		}
		m.Mesh.Normals = normals
		slog.Debug("normals synthesized",
			slog.String("model", m.Name),
			slog.Bool("smooth", smooth),
			slog.Int("degenerate", degenerate),
		)
	}
	if !m.Mesh.HasColors() {
		m.Mesh.Colors = DefaultColors(m.Mesh.VertexCount(), rgba)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = append(s.models, m)
	id := len(s.models) - 1

	slog.Info("model added", slog.String("model", m.Name), slog.Int("id", id), slog.Int("vertices", m.Mesh.VertexCount()))
	return id, nil
}

// RemoveModel removes the model at index i, shifting later models down
func (s *Scene) RemoveModel(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.models) {
		return fmt.Errorf("%w: %d (have %d)", ErrModelIndex, i, len(s.models))
	}
	s.models = append(s.models[:i], s.models[i+1:]...)
	return nil
}

// Models returns a snapshot of the model list
func (s *Scene) Models() []*Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Model(nil), s.models...)
}

// Update advances the scene by dt. When orbiting is on, the camera turns
// around the Y axis through the origin.
func (s *Scene) Update(dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orbit {
		s.camera.OrbitTo(linalg.Vec3{}, 0, orbitRate*dt, 0)
	}
}
