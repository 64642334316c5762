package gosiedecal

import "math"

type Vector2 struct {
	X float64
	Y float64
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Subtract(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// mult by scalar
func (v Vector2) Mult(scalar float64) Vector2 {
	return Vector2{
		X: v.X * scalar,
		Y: v.Y * scalar,
	}
}

// Div divides component-wise. A zero divisor component yields an infinite
// or NaN result; callers guard against zero extents before dividing.
func (v Vector2) Div(o Vector2) Vector2 {
	return Vector2{X: v.X / o.X, Y: v.Y / o.Y}
}

func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}
