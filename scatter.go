package gosiedecal

import (
	"fmt"
	"math"
	"math/rand"
)

// ScatterOptions controls RandomProjector. Zero values are used as given;
// negative or NaN fields take the defaults of DefaultScatter.
type ScatterOptions struct {
	// Distance of the projector from the origin.
	Distance float64
	// TargetSpread bounds each component of the look-at target.
	TargetSpread float64
	// MaxRoll is the largest roll about the projection axis, in degrees.
	MaxRoll float64
}

var DefaultScatter = ScatterOptions{
	Distance:     1.2,
	TargetSpread: 0.75,
	MaxRoll:      45,
}

// DefaultExtents is the decal box used by the scatter: a small square
// footprint that is deep enough to reach through a unit sphere.
var DefaultExtents = Vector3{X: 0.5, Y: 0.5, Z: 4.0}

func (o ScatterOptions) withDefaults() ScatterOptions {
	if unset(o.Distance) {
		o.Distance = DefaultScatter.Distance
	}
	if unset(o.TargetSpread) {
		o.TargetSpread = DefaultScatter.TargetSpread
	}
	if unset(o.MaxRoll) {
		o.MaxRoll = DefaultScatter.MaxRoll
	}
	return o
}

func unset(v float64) bool {
	return v < 0 || math.IsNaN(v)
}

// RandomProjector places a projector on a random direction around the
// origin, aims it at a random target near the origin and rolls it about
// its own z axis.
func RandomProjector(rng *rand.Rand, opts ScatterOptions) Matrix {
	opts = opts.withDefaults()

	var dir Vector3
	for dir.Length() == 0 {
		dir = Vector3{X: uniform(rng, -1, 1), Y: uniform(rng, -1, 1), Z: uniform(rng, -1, 1)}
	}
	eye := dir.Normalize().Mult(opts.Distance)
	target := Vector3{
		X: uniform(rng, -opts.TargetSpread, opts.TargetSpread),
		Y: uniform(rng, -opts.TargetSpread, opts.TargetSpread),
		Z: uniform(rng, -opts.TargetSpread, opts.TargetSpread),
	}
	roll := NewRotationMatrix(ROTZ, degreesToRadians(uniform(rng, -opts.MaxRoll, opts.MaxRoll)))

	view := LookAt(eye, target, UnitY)
	cameraToWorld, err := view.Inverse()
	if err != nil {
		// eye on the up axis through target: keep the position, drop the aim
		cameraToWorld = TransMatrix(eye.X, eye.Y, eye.Z)
	}
	return cameraToWorld.MultiplyBy(roll)
}

// RandomProjectors returns n projectors sharing the same extents.
func RandomProjectors(rng *rand.Rand, n int, opts ScatterOptions, extents Vector3) ([]Projector, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: projector count must be >= 0, got %d", ErrInvalidArgument, n)
	}
	projectors := make([]Projector, n)
	for i := range projectors {
		projectors[i] = Projector{
			Transform: RandomProjector(rng, opts),
			Extents:   extents,
		}
	}
	return projectors, nil
}

func uniform(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
