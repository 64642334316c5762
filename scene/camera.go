package scene

import (
	"math"

	decal "github.com/smasonuk/gosiedecal"
)

const maxPitch = 89 * math.Pi / 180

// Camera orbits Target at Distance. Yaw turns about +Y, Pitch tilts up
// from the horizontal plane; both are radians.
type Camera struct {
	Target   decal.Vector3
	Distance float64
	Yaw      float64
	Pitch    float64
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near is the closest depth that is still drawn.
	Near float64
}

func NewCamera(distance, fov float64) *Camera {
	return &Camera{
		Distance: distance,
		FOV:      fov,
		Near:     0.01,
	}
}

func (c *Camera) AddAngle(yaw, pitch float64) {
	c.Yaw += yaw
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+pitch))
}

// Zoom scales the orbit distance; factors below 1 move closer.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance *= factor
}

func (c *Camera) Position() decal.Vector3 {
	cp := math.Cos(c.Pitch)
	offset := decal.Vector3{
		X: c.Distance * cp * math.Sin(c.Yaw),
		Y: c.Distance * math.Sin(c.Pitch),
		Z: c.Distance * cp * math.Cos(c.Yaw),
	}
	return c.Target.Add(offset)
}

// View maps world space into camera space, where the camera looks down -Z.
func (c *Camera) View() decal.Matrix {
	return decal.LookAt(c.Position(), c.Target, decal.UnitY)
}

// focalLength converts camera space to pixels for a viewport height.
func (c *Camera) focalLength(height float64) float64 {
	fov := c.FOV
	if fov <= 0 || fov >= 180 {
		fov = 45
	}
	return (height / 2) / math.Tan(fov*math.Pi/360)
}
