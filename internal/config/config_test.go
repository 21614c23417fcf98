package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[log]
level = "debug"

[parser]
strict = true

[scene]
width = 1024
height = 768
projection = "orthogonal"
fovy_deg = 45.0
orbit = true

[camera]
eye = [0.0, 2.0, 8.0]

[[lights]]
position = [0.0, 1.5, 0.0]
color = [1.0, 1.0, 1.0, 1.0]
intensity = 0.7

[[models]]
path = "models/bunny.ply"
smooth = true
position = [-1.5, 0.0, 1.986]
rotation_deg = [-90.0, 180.0, 0.0]

[models.material]
ambient = 0.2
diffuse = 0.5
specular = 0.3
exponent = 2.5
`

func TestParseSample(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Parser.Strict)
	assert.Equal(t, 1024, cfg.Scene.Width)
	assert.Equal(t, "orthogonal", cfg.Scene.Projection)
	assert.True(t, cfg.Scene.Orbit)
	assert.Equal(t, [3]float32{0, 2, 8}, cfg.Camera.Eye)
	// untouched keys keep their defaults
	assert.Equal(t, [3]float32{0, 1, 0}, cfg.Camera.Up)
	assert.Equal(t, 4545, cfg.Server.Port)

	require.Len(t, cfg.Lights, 1)
	assert.Equal(t, float32(0.7), cfg.Lights[0].Intensity)

	require.Len(t, cfg.Models, 1)
	m := cfg.Models[0]
	assert.Equal(t, "models/bunny.ply", m.Path)
	assert.True(t, m.Smooth)
	assert.Equal(t, [3]float32{1, 1, 1}, m.Scale)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, m.Color)
	require.NotNil(t, m.Material)
	assert.Equal(t, float32(0.2), m.Material.Ambient)
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", "[scene\nwidth = 1"},
		{"unknown key", "[scene]\ncolour = 1"},
		{"bad level", "[log]\nlevel = \"loud\""},
		{"bad projection", "[scene]\nprojection = \"fisheye\""},
		{"bad size", "[scene]\nwidth = 0"},
		{"bad fovy", "[scene]\nfovy_deg = 180.0"},
		{"bad port", "[server]\nport = 70000"},
		{"too many lights", "[[lights]]\n[[lights]]\n[[lights]]\n[[lights]]\n[[lights]]\n[[lights]]\n"},
		{"model without path", "[[models]]\nsmooth = true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 768, cfg.Scene.Height)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
