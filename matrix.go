package gosiedecal

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Matrix is a 4x4 transform indexed [column][row], the same layout as
// mgl64.Mat4. The translation lives in column 3.
type Matrix [4][4]float64

const (
	ROTX = 0
	ROTY = 1
	ROTZ = 2
)

// affineTolerance bounds how far the bottom row may drift from (0,0,0,1)
// before a matrix stops counting as affine.
const affineTolerance = 1e-9

func IdentMatrix() Matrix {
	var m Matrix
	m[0][0], m[1][1], m[2][2], m[3][3] = 1.0, 1.0, 1.0, 1.0
	return m
}

func TransMatrix(x, y, z float64) Matrix {
	m := IdentMatrix()
	m[3][0] = x
	m[3][1] = y
	m[3][2] = z
	return m
}

func ScaleMatrix(x, y, z float64) Matrix {
	m := IdentMatrix()
	m[0][0] = x
	m[1][1] = y
	m[2][2] = z
	return m
}

// NewRotationMatrix rotates theta radians counter-clockwise about one of
// ROTX, ROTY or ROTZ.
func NewRotationMatrix(aRotation int, theta float64) Matrix {
	m := IdentMatrix()
	c, s := math.Cos(theta), math.Sin(theta)
	switch aRotation {
	case ROTX:
		m[1][1] = c
		m[2][1] = -s
		m[1][2] = s
		m[2][2] = c
	case ROTY:
		m[0][0] = c
		m[2][0] = s
		m[0][2] = -s
		m[2][2] = c
	case ROTZ:
		m[0][0] = c
		m[1][0] = -s
		m[0][1] = s
		m[1][1] = c
	}
	return m
}

// LookAt builds a view matrix for an eye looking at target.
func LookAt(eye, target, up Vector3) Matrix {
	return FromMat4(mgl64.LookAtV(eye.Vec3(), target.Vec3(), up.Vec3()))
}

func FromMat4(m mgl64.Mat4) Matrix {
	var out Matrix
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c][r] = m[c*4+r]
		}
	}
	return out
}

func (m Matrix) Mat4() mgl64.Mat4 {
	var out mgl64.Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c*4+r] = m[c][r]
		}
	}
	return out
}

// MultiplyBy returns m * a, so a is applied first.
func (m Matrix) MultiplyBy(a Matrix) Matrix {
	var out Matrix
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			out[x][y] = m[0][y]*a[x][0] +
				m[1][y]*a[x][1] +
				m[2][y]*a[x][2] +
				m[3][y]*a[x][3]
		}
	}
	return out
}

func (m Matrix) IsAffine() bool {
	return math.Abs(m[0][3]) <= affineTolerance &&
		math.Abs(m[1][3]) <= affineTolerance &&
		math.Abs(m[2][3]) <= affineTolerance &&
		math.Abs(m[3][3]-1) <= affineTolerance
}

func (m Matrix) Determinant() float64 {
	return m.Mat4().Det()
}

// Inverse returns the inverse of an affine matrix. Matrices that are not
// affine, contain non-finite values or have a zero determinant fail with
// ErrSingularTransform.
func (m Matrix) Inverse() (Matrix, error) {
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			if !isFinite(m[c][r]) {
				return Matrix{}, fmt.Errorf("%w: non-finite element at [%d][%d]", ErrSingularTransform, c, r)
			}
		}
	}
	if !m.IsAffine() {
		return Matrix{}, fmt.Errorf("%w: matrix is not affine", ErrSingularTransform)
	}
	det := m.Determinant()
	if det == 0 || !isFinite(det) {
		return Matrix{}, fmt.Errorf("%w: determinant is %v", ErrSingularTransform, det)
	}
	return FromMat4(m.Mat4().Inv()), nil
}

// TransformPoint applies m to p as a point (w = 1) and divides by the
// resulting w.
func (m Matrix) TransformPoint(p Vector3) Vector3 {
	x := m[0][0]*p.X + m[1][0]*p.Y + m[2][0]*p.Z + m[3][0]
	y := m[0][1]*p.X + m[1][1]*p.Y + m[2][1]*p.Z + m[3][1]
	z := m[0][2]*p.X + m[1][2]*p.Y + m[2][2]*p.Z + m[3][2]
	w := m[0][3]*p.X + m[1][3]*p.Y + m[2][3]*p.Z + m[3][3]
	if w != 1 && w != 0 {
		return Vector3{X: x / w, Y: y / w, Z: z / w}
	}
	return Vector3{X: x, Y: y, Z: z}
}

// RotateVector applies the 3x3 part of m, ignoring translation. Suitable
// for direction vectors.
func (m Matrix) RotateVector(v Vector3) Vector3 {
	return Vector3{
		X: m[0][0]*v.X + m[1][0]*v.Y + m[2][0]*v.Z,
		Y: m[0][1]*v.X + m[1][1]*v.Y + m[2][1]*v.Z,
		Z: m[0][2]*v.X + m[1][2]*v.Y + m[2][2]*v.Z,
	}
}

func (m Matrix) String() string {
	var sb strings.Builder
	for i, row := range m {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, val := range row {
			if j > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%f", val))
		}
	}
	return sb.String()
}
