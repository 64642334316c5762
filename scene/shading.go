package scene

import (
	"image/color"
	"math"

	decal "github.com/smasonuk/gosiedecal"
)

const (
	// minimum brightness for any surface
	ambientLight = 0.65
	// higher values give a tighter spotlight cone around the view axis
	spotlightConePower = 10.0
	// light left over for the spotlight once ambient is accounted for
	spotlightLightAmount = 1.0 - ambientLight

	minChannel = 7
)

// shade darkens base by how directly the face looks at the camera and how
// close it is to the centre of view. point and normal are in camera space.
func shade(base color.RGBA, point, normal decal.Vector3) color.RGBA {
	toEye := point.Mult(-1)
	dist := toEye.Length()

	diffuseFactor := 0.0
	spotlightFactor := 1.0
	if dist > 0 {
		diffuseFactor = math.Max(0, normal.Normalize().Dot(toEye.Mult(1/dist)))
		cosAngle := math.Max(0, -point.Z/dist)
		spotlightFactor = math.Pow(cosAngle, spotlightConePower)
	}

	finalBrightness := ambientLight + diffuseFactor*spotlightFactor*spotlightLightAmount
	c := 240 - int(finalBrightness*240)

	return color.RGBA{
		R: uint8(clamp(int(base.R)-c, minChannel, 255)),
		G: uint8(clamp(int(base.G)-c, minChannel, 255)),
		B: uint8(clamp(int(base.B)-c, minChannel, 255)),
		A: base.A,
	}
}

// decalAlpha fades a decal towards the edge of its footprint: opaque-ish
// inside radius 0.4 of the uv centre, gone beyond 0.5.
func decalAlpha(uv decal.Vector2) float64 {
	l := uv.Subtract(decal.Vector2{X: 0.5, Y: 0.5}).Length()
	return smoothstep(0.5, 0.4, l) * 0.9
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := (x - edge0) / (edge1 - edge0)
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
