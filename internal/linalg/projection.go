package linalg

import "github.com/chewxy/math32"

// Frustum holds the bounds of a projection volume plus the perspective
// parameters (vertical field of view in radians, width/height ratio)
type Frustum struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32
	Fovy        float32
	Aspect      float32
}

// Orthographic maps the box (left..right, bottom..top, near..far) onto the
// clip cube. near and far are negated first: the camera looks down -Z.
func Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	near = -near
	far = -far
	return Mat4{
		{2 / (right - left), 0, 0, -(right + left) / (right - left)},
		{0, 2 / (top - bottom), 0, -(top + bottom) / (top - bottom)},
		{0, 0, -2 / (far - near), -(far + near) / (far - near)},
		{0, 0, 0, 1},
	}
}

// Perspective builds a symmetric perspective projection from the vertical
// field of view and aspect ratio, with top = near * tan(fovy/2)
func Perspective(fovy, aspect, near, far float32) Mat4 {
	top := near * math32.Tan(fovy/2)
	bottom := -top
	right := top * aspect
	left := -right

	return Mat4{
		{2 * near / (right - left), 0, (right + left) / (right - left), 0},
		{0, 2 * near / (top - bottom), (top + bottom) / (top - bottom), 0},
		{0, 0, -(far + near) / (far - near), -2 * far * near / (far - near)},
		{0, 0, -1, 0},
	}
}

// Orthographic builds the box projection for f
func (f Frustum) Orthographic() Mat4 {
	return Orthographic(f.Left, f.Right, f.Bottom, f.Top, f.Near, f.Far)
}

// Perspective builds the perspective projection for f
func (f Frustum) Perspective() Mat4 {
	return Perspective(f.Fovy, f.Aspect, f.Near, f.Far)
}
