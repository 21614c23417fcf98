package linalg

import (
	"errors"
	"fmt"
)

// ErrDegenerateBasis is returned when the view axes cannot be normalized:
// eye equals target, or up is parallel to the viewing direction.
var ErrDegenerateBasis = errors.New("degenerate view basis")

// Basis is an orthonormal camera frame: U right, V up, N backwards (eye - target)
type Basis struct {
	U, V, N Vec3
}

// ViewBasis derives the camera axes. V is up with its component along N
// removed, so up need not be perpendicular to the viewing direction.
func ViewBasis(eye, target, up Vec3) (Basis, error) {
	n, ok := eye.Sub(target).Normalize()
	if !ok {
		return Basis{}, fmt.Errorf("%w: eye and target coincide", ErrDegenerateBasis)
	}

	v, ok := up.RejectFrom(n).Normalize()
	if !ok {
		return Basis{}, fmt.Errorf("%w: up is parallel to the view direction", ErrDegenerateBasis)
	}

	u, ok := v.Cross(n).Normalize()
	if !ok {
		return Basis{}, fmt.Errorf("%w: zero right axis", ErrDegenerateBasis)
	}

	return Basis{U: u, V: v, N: n}, nil
}

// Rotation returns the matrix whose rows are (U, V, N)
func (b Basis) Rotation() Mat4 {
	return Mat4{
		{b.U.X, b.U.Y, b.U.Z, 0},
		{b.V.X, b.V.Y, b.V.Z, 0},
		{b.N.X, b.N.Y, b.N.Z, 0},
		{0, 0, 0, 1},
	}
}

// LookAt builds the view matrix R(u,v,n) * T(-eye)
func LookAt(eye, target, up Vec3) (Mat4, error) {
	b, err := ViewBasis(eye, target, up)
	if err != nil {
		return Mat4{}, err
	}
	return b.Rotation().Mul(TranslateMat(-eye.X, -eye.Y, -eye.Z)), nil
}
