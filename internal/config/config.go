package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// MaxLights mirrors the size of the scene light block
const MaxLights = 5

// Config is the full scene configuration file
type Config struct {
	Log    LogConfig     `toml:"log"`
	Parser ParserConfig  `toml:"parser"`
	Scene  SceneConfig   `toml:"scene"`
	Camera CameraConfig  `toml:"camera"`
	Server ServerConfig  `toml:"server"`
	Watch  WatchConfig   `toml:"watch"`
	Lights []LightConfig `toml:"lights"`
	Models []ModelConfig `toml:"models"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	SeqURL string `toml:"seq_url"`
}

type ParserConfig struct {
	Strict bool `toml:"strict"`
}

type SceneConfig struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	Projection string  `toml:"projection"`
	FovyDeg    float32 `toml:"fovy_deg"`
	Orbit      bool    `toml:"orbit"`
}

type CameraConfig struct {
	Eye    [3]float32 `toml:"eye"`
	Target [3]float32 `toml:"target"`
	Up     [3]float32 `toml:"up"`
}

type ServerConfig struct {
	Port int `toml:"port"`
}

type WatchConfig struct {
	DebounceMS int `toml:"debounce_ms"`
}

type LightConfig struct {
	Position  [3]float32 `toml:"position"`
	Color     [4]float32 `toml:"color"`
	Intensity float32    `toml:"intensity"`
}

type MaterialConfig struct {
	Ambient  float32 `toml:"ambient"`
	Diffuse  float32 `toml:"diffuse"`
	Specular float32 `toml:"specular"`
	Exponent float32 `toml:"exponent"`
}

type ModelConfig struct {
	Path        string          `toml:"path"`
	Smooth      bool            `toml:"smooth"`
	Color       [4]float32      `toml:"color"`
	Origin      [3]float32      `toml:"origin"`
	Position    [3]float32      `toml:"position"`
	Scale       [3]float32      `toml:"scale"`
	RotationDeg [3]float32      `toml:"rotation_deg"`
	Material    *MaterialConfig `toml:"material"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info"},
		Scene:  SceneConfig{Width: 800, Height: 600, Projection: "perspective", FovyDeg: 60},
		Camera: CameraConfig{Eye: [3]float32{0, 0, 1}, Up: [3]float32{0, 1, 0}},
		Server: ServerConfig{Port: 4545},
		Watch:  WatchConfig{DebounceMS: 200},
	}
}

// Load reads a TOML file over the defaults and validates the result
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes TOML over the defaults. Unknown keys are rejected.
func Parse(b []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("config %d:%d: %w", row, col, err)
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.applyModelDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// models left at zero scale or color get identity scale and white
func (c *Config) applyModelDefaults() {
	for i := range c.Models {
		m := &c.Models[i]
		if m.Scale == [3]float32{} {
			m.Scale = [3]float32{1, 1, 1}
		}
		if m.Color == [4]float32{} {
			m.Color = [4]float32{1, 1, 1, 1}
		}
	}
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level)
	}
	if c.Scene.Width <= 0 || c.Scene.Height <= 0 {
		return fmt.Errorf("scene size %dx%d must be positive", c.Scene.Width, c.Scene.Height)
	}
	if c.Scene.Projection != "perspective" && c.Scene.Projection != "orthogonal" {
		return fmt.Errorf("scene.projection %q must be perspective or orthogonal", c.Scene.Projection)
	}
	if c.Scene.FovyDeg <= 0 || c.Scene.FovyDeg >= 180 {
		return fmt.Errorf("scene.fovy_deg %v must be in (0, 180)", c.Scene.FovyDeg)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative")
	}
	if len(c.Lights) > MaxLights {
		return fmt.Errorf("%d lights configured, at most %d are supported", len(c.Lights), MaxLights)
	}
	for i, m := range c.Models {
		if m.Path == "" {
			return fmt.Errorf("models[%d]: path is required", i)
		}
	}
	return nil
}
