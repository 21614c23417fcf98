package scene

import "github.com/leengari/ply-scene/internal/linalg"

// Camera places the viewer. The view matrix is rebuilt from Eye, Target and
// Up on demand.
type Camera struct {
	Eye    linalg.Vec3
	Target linalg.Vec3
	Up     linalg.Vec3
}

// NewCamera looks at the origin from +Z with Y up
func NewCamera() Camera {
	return Camera{
		Eye: linalg.V3(0, 0, 1),
		Up:  linalg.V3(0, 1, 0),
	}
}

// View returns the world-to-camera matrix
func (c Camera) View() (linalg.Mat4, error) {
	return linalg.LookAt(c.Eye, c.Target, c.Up)
}

// Record returns eye xyz, target xyz, up xyz
func (c Camera) Record() [CameraRecordSize]float32 {
	return [CameraRecordSize]float32{
		c.Eye.X, c.Eye.Y, c.Eye.Z,
		c.Target.X, c.Target.Y, c.Target.Z,
		c.Up.X, c.Up.Y, c.Up.Z,
	}
}

// OrbitTo retargets the camera at center and rotates the eye by (rx, ry, rz)
// after moving center to the origin. The eye is not translated back, so
// repeated calls orbit around the origin at the eye's distance from center.
func (c *Camera) OrbitTo(center linalg.Vec3, rx, ry, rz float32) {
	acc := linalg.Identity4()
	acc = linalg.Translate(-center.X, -center.Y, -center.Z, acc)
	acc = linalg.Rotate(rx, ry, rz, acc)

	c.Target = center
	c.Eye = acc.MulPoint(c.Eye)
}
