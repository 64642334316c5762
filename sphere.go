package gosiedecal

import (
	"fmt"
	"math"
)

// Spherical is a point in spherical coordinates with angles in degrees.
// Theta runs around the y axis, Phi down from +y.
type Spherical struct {
	Theta  float64
	Phi    float64
	Radius float64
}

func (s Spherical) Cartesian() Vector3 {
	theta := degreesToRadians(s.Theta)
	phi := degreesToRadians(s.Phi)
	sinPhiRadius := math.Sin(phi) * s.Radius
	return Vector3{
		X: sinPhiRadius * math.Sin(theta),
		Y: math.Cos(phi) * s.Radius,
		Z: sinPhiRadius * math.Cos(theta),
	}
}

const (
	thetaMax = 360.0
	phiMax   = 180.0
)

// GenerateSphere tessellates a UV sphere into a triangle soup. The first
// and last latitude rows are triangle fans around the poles; every other
// row emits two triangles per sector.
func GenerateSphere(sides, segments int, radius float64, flipNormals bool) (*Mesh, error) {
	if sides < 3 {
		return nil, fmt.Errorf("%w: sphere sides must be >= 3, got %d", ErrInvalidArgument, sides)
	}
	if segments < 2 {
		return nil, fmt.Errorf("%w: sphere segments must be >= 2, got %d", ErrInvalidArgument, segments)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: sphere radius must be positive and finite, got %v", ErrInvalidArgument, radius)
	}

	count, ok := sphereVertexCount(sides, segments)
	if !ok {
		return nil, fmt.Errorf("%w: sphere %dx%d has too many vertices", ErrInvalidArgument, sides, segments)
	}

	invertFactor := 1.0
	if flipNormals {
		invertFactor = -1.0
	}

	mesh := NewMesh(count)
	write := func(s Spherical) {
		p := s.Cartesian()
		mesh.AddVertex(p, p.Normalize().Mult(invertFactor), Vector2{
			X: s.Theta/thetaMax + 0.5,
			Y: 1.0 - s.Phi/phiMax,
		})
	}

	for t := 0; t < segments; t++ {
		for s := 0; s < sides; s++ {
			st00 := Spherical{Theta: float64(s) * thetaMax / float64(sides), Phi: float64(t) * phiMax / float64(segments), Radius: radius}
			st01 := Spherical{Theta: float64(s) * thetaMax / float64(sides), Phi: float64(t+1) * phiMax / float64(segments), Radius: radius}
			st10 := Spherical{Theta: float64(s+1) * thetaMax / float64(sides), Phi: float64(t) * phiMax / float64(segments), Radius: radius}
			st11 := Spherical{Theta: float64(s+1) * thetaMax / float64(sides), Phi: float64(t+1) * phiMax / float64(segments), Radius: radius}

			switch t {
			case 0:
				write(st00)
				write(st01)
				write(st11)
			case segments - 1:
				write(st11)
				write(st10)
				write(st00)
			default:
				write(st00)
				write(st01)
				write(st11)

				write(st11)
				write(st10)
				write(st00)
			}
		}
	}
	return mesh, nil
}

// maxSphereVertices keeps every vertex addressable by the uint32 indices
// of IndexedMesh and the count within int on 32 bit platforms.
const maxSphereVertices = math.MaxInt32

// SphereVertexCount is the number of vertices GenerateSphere emits, or 0
// when it would reject the arguments.
func SphereVertexCount(sides, segments int) int {
	count, ok := sphereVertexCount(sides, segments)
	if !ok {
		return 0
	}
	return count
}

func sphereVertexCount(sides, segments int) (int, bool) {
	if sides < 3 || segments < 2 {
		return 0, false
	}
	perSide := 6 * (segments - 1)
	if segments-1 > maxSphereVertices/6 || sides > maxSphereVertices/perSide {
		return 0, false
	}
	return sides * perSide, true
}

func degreesToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
