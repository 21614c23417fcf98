package linalg

import "github.com/chewxy/math32"

// Mat4 is a row-major 4x4 matrix: m[row][col]. Column vectors are
// transformed as m * v, so in a product A*B the right operand applies first.
type Mat4 [4][4]float32

// Identity4 returns the identity matrix
func Identity4() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns m * o
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var acc float32
			for k := 0; k < 4; k++ {
				acc += m[i][k] * o[k][j]
			}
			out[i][j] = acc
		}
	}
	return out
}

// MulPoint transforms the point p (w = 1) and returns its xyz
func (m Mat4) MulPoint(p Vec3) Vec3 {
	in := [4]float32{p.X, p.Y, p.Z, 1}
	var out [4]float32
	for i := 0; i < 4; i++ {
		for k := 0; k < 4; k++ {
			out[i] += m[i][k] * in[k]
		}
	}
	return Vec3{out[0], out[1], out[2]}
}

// Transpose returns the transposed matrix
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Flatten returns the 16 elements in row-major order for uniform upload
func (m Mat4) Flatten() []float32 {
	out := make([]float32, 0, 16)
	for i := 0; i < 4; i++ {
		out = append(out, m[i][:]...)
	}
	return out
}

// ScaleMat returns the scale matrix diag(sx, sy, sz, 1)
func ScaleMat(sx, sy, sz float32) Mat4 {
	return Mat4{
		{sx, 0, 0, 0},
		{0, sy, 0, 0},
		{0, 0, sz, 0},
		{0, 0, 0, 1},
	}
}

// TranslateMat returns the translation matrix by (tx, ty, tz)
func TranslateMat(tx, ty, tz float32) Mat4 {
	return Mat4{
		{1, 0, 0, tx},
		{0, 1, 0, ty},
		{0, 0, 1, tz},
		{0, 0, 0, 1},
	}
}

// RotateXMat returns a rotation of rx radians about X
func RotateXMat(rx float32) Mat4 {
	s, c := math32.Sin(rx), math32.Cos(rx)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateYMat returns a rotation of ry radians about Y
func RotateYMat(ry float32) Mat4 {
	s, c := math32.Sin(ry), math32.Cos(ry)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZMat returns a rotation of rz radians about Z
func RotateZMat(rz float32) Mat4 {
	s, c := math32.Sin(rz), math32.Cos(rz)
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Scale applies a scale after m: S * m
func Scale(sx, sy, sz float32, m Mat4) Mat4 {
	return ScaleMat(sx, sy, sz).Mul(m)
}

// Translate applies a translation after m: T * m
func Translate(tx, ty, tz float32, m Mat4) Mat4 {
	return TranslateMat(tx, ty, tz).Mul(m)
}

// Rotate applies the Euler rotation Rz*Ry*Rx after m
func Rotate(rx, ry, rz float32, m Mat4) Mat4 {
	r := RotateZMat(rz).Mul(RotateYMat(ry).Mul(RotateXMat(rx)))
	return r.Mul(m)
}
