package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// singularThreshold is the smallest determinant magnitude treated as invertible
const singularThreshold = 1e-12

// Matrix is a 4x4 transformation matrix
type Matrix struct {
	m mgl64.Mat4
}

// Identity returns the 4x4 identity matrix
func Identity() Matrix {
	return Matrix{mgl64.Ident4()}
}

// NewMatrix creates a matrix from row-major values
func NewMatrix(rows [4][4]float64) Matrix {
	return Matrix{mgl64.Mat4FromRows(
		mgl64.Vec4(rows[0]),
		mgl64.Vec4(rows[1]),
		mgl64.Vec4(rows[2]),
		mgl64.Vec4(rows[3]),
	)}
}

// Translation returns a matrix that moves points by (x, y, z)
func Translation(x, y, z float64) Matrix {
	return Matrix{mgl64.Translate3D(x, y, z)}
}

// Scaling returns a matrix that scales by (x, y, z)
func Scaling(x, y, z float64) Matrix {
	return Matrix{mgl64.Scale3D(x, y, z)}
}

// RotationX returns a rotation of r radians about the x axis
func RotationX(r float64) Matrix {
	return Matrix{mgl64.HomogRotate3DX(r)}
}

// RotationY returns a rotation of r radians about the y axis
func RotationY(r float64) Matrix {
	return Matrix{mgl64.HomogRotate3DY(r)}
}

// RotationZ returns a rotation of r radians about the z axis
func RotationZ(r float64) Matrix {
	return Matrix{mgl64.HomogRotate3DZ(r)}
}

// Shearing moves each component in proportion to the other two.
// xy is the amount x moves in proportion to y, and so on.
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix {
	return NewMatrix([4][4]float64{
		{1, xy, xz, 0},
		{yx, 1, yz, 0},
		{zx, zy, 1, 0},
		{0, 0, 0, 1},
	})
}

// ViewTransform orients the world relative to an eye at from looking at to
func ViewTransform(from, to, up Tuple) Matrix {
	forward := to.Subtract(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)
	orientation := NewMatrix([4][4]float64{
		{left.X, left.Y, left.Z, 0},
		{trueUp.X, trueUp.Y, trueUp.Z, 0},
		{-forward.X, -forward.Y, -forward.Z, 0},
		{0, 0, 0, 1},
	})
	return orientation.Multiply(Translation(-from.X, -from.Y, -from.Z))
}

// At returns the element at row, col
func (m Matrix) At(row, col int) float64 {
	return m.m.At(row, col)
}

// Multiply returns m × other
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{m.m.Mul4(other.m)}
}

// MultiplyTuple returns m × t
func (m Matrix) MultiplyTuple(t Tuple) Tuple {
	v := m.m.Mul4x1(mgl64.Vec4{t.X, t.Y, t.Z, t.W})
	return Tuple{X: v[0], Y: v[1], Z: v[2], W: v[3]}
}

// Transpose returns the transposed matrix
func (m Matrix) Transpose() Matrix {
	return Matrix{m.m.Transpose()}
}

// Determinant returns the determinant of the matrix
func (m Matrix) Determinant() float64 {
	return m.m.Det()
}

// IsInvertible reports whether the matrix has an inverse
func (m Matrix) IsInvertible() bool {
	return math.Abs(m.m.Det()) >= singularThreshold
}

// Inverse returns the inverse matrix, or ErrSingularMatrix
func (m Matrix) Inverse() (Matrix, error) {
	if !m.IsInvertible() {
		return Matrix{}, ErrSingularMatrix
	}
	return Matrix{m.m.Inv()}, nil
}

// Equals compares two matrices element-wise within Epsilon
func (m Matrix) Equals(other Matrix) bool {
	return m.m.ApproxEqualThreshold(other.m, Epsilon)
}

// Chain composes transforms in the order they are applied, so
// Chain(a, b, c) equals c × b × a.
func Chain(transforms ...Matrix) Matrix {
	result := Identity()
	for _, t := range transforms {
		result = t.Multiply(result)
	}
	return result
}
