package gosiedecal

import (
	"fmt"
	"math"
)

// Projector is one decal instance: the pose it is cast from and the size
// of its clipping box in projector space.
type Projector struct {
	Transform Matrix
	Extents   Vector3
}

// ProjectDecal clips src against the box described by projector and
// extents and returns the surviving geometry in world space with decal
// uvs. src is only read. The result may be empty.
//
// Normals are carried through projector space untouched: they are
// interpolated on clipped edges but never rotated by the projector.
func ProjectDecal(src *Mesh, projector Matrix, extents Vector3) (*Mesh, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("decal source: %w", err)
	}
	inverse, err := projector.Inverse()
	if err != nil {
		return nil, fmt.Errorf("decal projector: %w", err)
	}
	if degenerateExtents(extents) {
		return NewMesh(0), nil
	}

	vertices := make([]ClipVertex, len(src.Positions))
	for i, p := range src.Positions {
		vertices[i] = ClipVertex{
			Position: inverse.TransformPoint(p),
			Normal:   src.Normals[i],
		}
	}

	for _, plane := range BoxPlanes(extents) {
		vertices = ClipTriangles(vertices, plane)
		if len(vertices) == 0 {
			break
		}
	}

	size := extents.XY()
	half := Vector2{X: 0.5, Y: 0.5}
	decal := NewMesh(len(vertices))
	for _, v := range vertices {
		decal.AddVertex(
			projector.TransformPoint(v.Position),
			v.Normal,
			v.Position.XY().Div(size).Add(half),
		)
	}
	return decal, nil
}

// Project runs ProjectDecal for this projector.
func (p Projector) Project(src *Mesh) (*Mesh, error) {
	return ProjectDecal(src, p.Transform, p.Extents)
}

// degenerateExtents reports a box with no volume: nothing can survive
// clipping against it and the uv divide would not be finite.
func degenerateExtents(e Vector3) bool {
	for _, c := range [3]float64{e.X, e.Y, e.Z} {
		if c == 0 || math.IsNaN(c) {
			return true
		}
	}
	return false
}
