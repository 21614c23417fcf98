package linalg

import "github.com/chewxy/math32"

// Vec3 is a 3 component float32 vector
type Vec3 struct {
	X, Y, Z float32
}

// V3 is shorthand for Vec3{x, y, z}
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) MulScalar(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Negate() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns v × o (right-handed)
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length is the Euclidean norm
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. A zero vector cannot be
// normalized: it is returned unchanged with ok == false.
func (v Vec3) Normalize() (Vec3, bool) {
	l := v.Length()
	if l == 0 || math32.IsNaN(l) {
		return v, false
	}
	return v.MulScalar(1 / l), true
}

// RejectFrom returns the component of v orthogonal to n (Gram-Schmidt)
func (v Vec3) RejectFrom(n Vec3) Vec3 {
	nn := n.Dot(n)
	if nn == 0 {
		return v
	}
	return v.Sub(n.MulScalar(v.Dot(n) / nn))
}

// Vec3FromSlice reads 3 components starting at s[off]
func Vec3FromSlice(s []float32, off int) Vec3 {
	return Vec3{s[off], s[off+1], s[off+2]}
}
