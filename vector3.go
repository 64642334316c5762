package gosiedecal

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector3 is a position or direction. It is a value type so that meshes
// never alias each other's vertex data.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

var (
	UnitX = Vector3{X: 1}
	UnitY = Vector3{Y: 1}
	UnitZ = Vector3{Z: 1}
)

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Subtract returns v - o.
func (v Vector3) Subtract(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vector3) Mult(scalar float64) Vector3 {
	return Vector3{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross calculates the cross product of two vectors.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) Length() float64 {
	return math.Sqrt(math.Abs(v.X*v.X + v.Y*v.Y + v.Z*v.Z))
}

// Normalize returns the unit vector in the direction of v. The zero vector
// is returned unchanged.
func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length == 0 {
		return v
	}
	return Vector3{X: v.X / length, Y: v.Y / length, Z: v.Z / length}
}

// Lerp interpolates linearly from v to o by t.
func (v Vector3) Lerp(o Vector3, t float64) Vector3 {
	return Vector3{
		X: v.X + t*(o.X-v.X),
		Y: v.Y + t*(o.Y-v.Y),
		Z: v.Z + t*(o.Z-v.Z),
	}
}

// XY drops the z component.
func (v Vector3) XY() Vector2 {
	return Vector2{X: v.X, Y: v.Y}
}

func (v Vector3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func (v Vector3) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
