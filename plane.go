package gosiedecal

import "math"

// ClipPlane is one face of a projector box in projector space. Points with
// a positive Distance lie outside.
type ClipPlane struct {
	Normal Vector3
	Offset float64
}

// ClipVertex is a projector-space position paired with the normal that is
// interpolated alongside it.
type ClipVertex struct {
	Position Vector3
	Normal   Vector3
}

// boxNormals is the fixed clip order: +X, -X, +Y, -Y, +Z, -Z.
var boxNormals = [6]Vector3{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

func NewClipPlane(normal, extents Vector3) ClipPlane {
	return ClipPlane{
		Normal: normal,
		Offset: 0.5 * math.Abs(extents.Dot(normal)),
	}
}

// BoxPlanes returns the six planes bounding a box of the given extents
// centred on the origin, in clip order.
func BoxPlanes(extents Vector3) [6]ClipPlane {
	var planes [6]ClipPlane
	for i, n := range boxNormals {
		planes[i] = NewClipPlane(n, extents)
	}
	return planes
}

func (p ClipPlane) Distance(v Vector3) float64 {
	return v.Dot(p.Normal) - p.Offset
}

func (p ClipPlane) Outside(v Vector3) bool {
	return p.Distance(v) > 0
}

// intersect returns the point where the edge v0->v1 crosses the plane,
// interpolating position and normal by the same parameter. When the two
// ends are equally far from the plane there is no crossing and the end
// nearer the plane is returned, v0 on a tie.
func (p ClipPlane) intersect(v0, v1 ClipVertex) ClipVertex {
	d0 := p.Distance(v0.Position)
	d1 := p.Distance(v1.Position)

	denom := d0 - d1
	if denom == 0 {
		if math.Abs(d1) < math.Abs(d0) {
			return v1
		}
		return v0
	}
	s0 := d0 / denom
	if !isFinite(s0) {
		if math.Abs(d1) < math.Abs(d0) {
			return v1
		}
		return v0
	}

	return ClipVertex{
		Position: v0.Position.Lerp(v1.Position, s0),
		Normal:   v0.Normal.Lerp(v1.Normal, s0),
	}
}

// ClipTriangles clips a triangle soup against one plane. Triangles fully
// inside pass through, triangles fully outside are dropped, and straddling
// triangles are replaced by one or two triangles keeping the input winding.
func ClipTriangles(in []ClipVertex, p ClipPlane) []ClipVertex {
	out := make([]ClipVertex, 0, len(in))

	for i := 0; i+2 < len(in); i += 3 {
		v1, v2, v3 := in[i], in[i+1], in[i+2]

		v1Out := p.Outside(v1.Position)
		v2Out := p.Outside(v2.Position)
		v3Out := p.Outside(v3.Position)

		total := 0
		for _, o := range [3]bool{v1Out, v2Out, v3Out} {
			if o {
				total++
			}
		}

		switch total {
		case 0:
			out = append(out, v1, v2, v3)

		case 1:
			switch {
			case v1Out:
				nV1 := v2
				nV2 := v3
				nV3 := p.intersect(v1, nV1)
				nV4 := p.intersect(v1, nV2)
				out = append(out, nV1, nV2, nV3, nV4, nV3, nV2)

			case v2Out:
				nV1 := v1
				nV2 := v3
				nV3 := p.intersect(v2, nV1)
				nV4 := p.intersect(v2, nV2)
				out = append(out, nV3, nV2, nV1, nV2, nV3, nV4)

			case v3Out:
				nV1 := v1
				nV2 := v2
				nV3 := p.intersect(v3, nV1)
				nV4 := p.intersect(v3, nV2)
				out = append(out, nV1, nV2, nV3, nV4, nV3, nV2)
			}

		case 2:
			switch {
			case !v1Out:
				nV2 := p.intersect(v1, v2)
				nV3 := p.intersect(v1, v3)
				out = append(out, v1, nV2, nV3)

			case !v2Out:
				nV2 := p.intersect(v2, v3)
				nV3 := p.intersect(v2, v1)
				out = append(out, v2, nV2, nV3)

			case !v3Out:
				nV2 := p.intersect(v3, v1)
				nV3 := p.intersect(v3, v2)
				out = append(out, v3, nV2, nV3)
			}
		}
	}
	return out
}
