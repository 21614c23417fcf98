package scene

import "github.com/leengari/ply-scene/internal/linalg"

// MaxLights is the size of the light block uploaded every frame
const MaxLights = 5

// Record sizes in floats
const (
	MaterialRecordSize = 4
	LightRecordSize    = 8
	CameraRecordSize   = 9
)

// Material holds per-model lighting reactions
type Material struct {
	Ambient  float32 `json:"ambient" toml:"ambient"`
	Diffuse  float32 `json:"diffuse" toml:"diffuse"`
	Specular float32 `json:"specular" toml:"specular"`
	Exponent float32 `json:"exponent" toml:"exponent"`
}

func DefaultMaterial() Material {
	return Material{Ambient: 0.4, Diffuse: 0.3, Specular: 0.3, Exponent: 2.5}
}

// Record returns ambient, diffuse, specular, exponent
func (m Material) Record() [MaterialRecordSize]float32 {
	return [MaterialRecordSize]float32{m.Ambient, m.Diffuse, m.Specular, m.Exponent}
}

// Light is a point light. A zero intensity light is present but dark.
type Light struct {
	Position  linalg.Vec3
	Color     [4]float32
	Intensity float32
}

// NewLight returns a dark white light at the origin
func NewLight() Light {
	return Light{Color: [4]float32{1, 1, 1, 1}}
}

// Record returns position xyz, color rgba, intensity
func (l Light) Record() [LightRecordSize]float32 {
	return [LightRecordSize]float32{
		l.Position.X, l.Position.Y, l.Position.Z,
		l.Color[0], l.Color[1], l.Color[2], l.Color[3],
		l.Intensity,
	}
}

// DefaultLights returns the light block of an empty scene: light 0 lit
// from above, the others dark.
func DefaultLights() [MaxLights]Light {
	var lights [MaxLights]Light
	for i := range lights {
		lights[i] = NewLight()
	}
	lights[0].Intensity = 1
	lights[0].Position.Y = 3
	return lights
}
