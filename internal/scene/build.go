package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"

	"github.com/leengari/ply-scene/internal/config"
	"github.com/leengari/ply-scene/internal/linalg"
	"github.com/leengari/ply-scene/internal/mesh"
)

// MeshLoader resolves a model path to an assembled mesh
type MeshLoader func(path string) (*mesh.Mesh, error)

func degrees(v [3]float32) linalg.Vec3 {
	const k = math32.Pi / 180
	return linalg.V3(v[0]*k, v[1]*k, v[2]*k)
}

func vec(v [3]float32) linalg.Vec3 {
	return linalg.V3(v[0], v[1], v[2])
}

// FromConfig builds a scene from a validated configuration. Meshes returned
// by load are shallow-copied before normals or colors are filled in.
func FromConfig(cfg *config.Config, load MeshLoader) (*Scene, error) {
	s, err := New(cfg.Scene.Width, cfg.Scene.Height)
	if err != nil {
		return nil, err
	}

	mode, err := ParseProjectionMode(cfg.Scene.Projection)
	if err != nil {
		return nil, err
	}
	s.SetFovy(cfg.Scene.FovyDeg * math32.Pi / 180)
	if err := s.SetProjectionMode(mode); err != nil {
		return nil, err
	}

	s.SetCamera(Camera{
		Eye:    vec(cfg.Camera.Eye),
		Target: vec(cfg.Camera.Target),
		Up:     vec(cfg.Camera.Up),
	})
	s.SetOrbit(cfg.Scene.Orbit)

	for i, lc := range cfg.Lights {
		l := NewLight()
		l.Position = vec(lc.Position)
		if lc.Color != [4]float32{} {
			l.Color = lc.Color
		}
		l.Intensity = lc.Intensity
		if err := s.SetLight(i, l); err != nil {
			return nil, err
		}
	}

	for i, mc := range cfg.Models {
		m, err := load(mc.Path)
		if err != nil {
			return nil, fmt.Errorf("models[%d]: %w", i, err)
		}
		cp := *m

		name := strings.TrimSuffix(filepath.Base(mc.Path), filepath.Ext(mc.Path))
		model := NewModel(name, &cp)
		model.Origin = vec(mc.Origin)
		model.Position = vec(mc.Position)
		model.Scale = vec(mc.Scale)
		model.Rotation = degrees(mc.RotationDeg)
		if mc.Material != nil {
			model.Material = Material{
				Ambient:  mc.Material.Ambient,
				Diffuse:  mc.Material.Diffuse,
				Specular: mc.Material.Specular,
				Exponent: mc.Material.Exponent,
			}
		}

		if _, err := s.AddModel(model, mc.Smooth, mc.Color); err != nil {
			return nil, fmt.Errorf("models[%d]: %w", i, err)
		}
	}
	return s, nil
}
