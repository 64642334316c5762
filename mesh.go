package gosiedecal

import (
	"fmt"
	"math"
)

// Vertex is one triangle corner.
type Vertex struct {
	Position Vector3
	Normal   Vector3
	UV       Vector2
}

// Mesh is a triangle soup: three parallel slices of equal length, grouped
// in threes. Triangles never share vertices, so two corners at the same
// position may carry different normals and uvs.
type Mesh struct {
	Positions []Vector3
	Normals   []Vector3
	UVs       []Vector2
}

func NewMesh(capacity int) *Mesh {
	return &Mesh{
		Positions: make([]Vector3, 0, capacity),
		Normals:   make([]Vector3, 0, capacity),
		UVs:       make([]Vector2, 0, capacity),
	}
}

func (m *Mesh) AddVertex(position, normal Vector3, uv Vector2) {
	m.Positions = append(m.Positions, position)
	m.Normals = append(m.Normals, normal)
	m.UVs = append(m.UVs, uv)
}

func (m *Mesh) Len() int {
	return len(m.Positions)
}

func (m *Mesh) TriangleCount() int {
	return len(m.Positions) / 3
}

func (m *Mesh) Vertex(i int) Vertex {
	return Vertex{Position: m.Positions[i], Normal: m.Normals[i], UV: m.UVs[i]}
}

// Validate checks the triangle soup invariants.
func (m *Mesh) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil mesh", ErrInvalidArgument)
	}
	if len(m.Normals) != len(m.Positions) || len(m.UVs) != len(m.Positions) {
		return fmt.Errorf("%w: mesh has %d positions, %d normals and %d uvs",
			ErrInvalidArgument, len(m.Positions), len(m.Normals), len(m.UVs))
	}
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("%w: mesh vertex count %d is not a multiple of 3", ErrInvalidArgument, len(m.Positions))
	}
	return nil
}

func (m *Mesh) Copy() *Mesh {
	return &Mesh{
		Positions: append([]Vector3(nil), m.Positions...),
		Normals:   append([]Vector3(nil), m.Normals...),
		UVs:       append([]Vector2(nil), m.UVs...),
	}
}

// Append adds every vertex of other to m.
func (m *Mesh) Append(other *Mesh) {
	m.Positions = append(m.Positions, other.Positions...)
	m.Normals = append(m.Normals, other.Normals...)
	m.UVs = append(m.UVs, other.UVs...)
}

// Bounds returns the axis aligned bounding box of the positions. An empty
// mesh has zero bounds.
func (m *Mesh) Bounds() (min, max Vector3) {
	if len(m.Positions) == 0 {
		return Vector3{}, Vector3{}
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
	}
	return min, max
}

// Centre moves all points so that the centre of the bounding box is at
// the origin.
func (m *Mesh) Centre() {
	min, max := m.Bounds()
	centre := min.Add(max).Mult(0.5)
	for i := range m.Positions {
		m.Positions[i] = m.Positions[i].Subtract(centre)
	}
}

// Interleave packs the mesh as position(3) normal(3) uv(2) per vertex,
// the layout a vertex buffer upload expects.
func (m *Mesh) Interleave() []float32 {
	out := make([]float32, 0, len(m.Positions)*8)
	for i := range m.Positions {
		p, n, uv := m.Positions[i], m.Normals[i], m.UVs[i]
		out = append(out,
			float32(p.X), float32(p.Y), float32(p.Z),
			float32(n.X), float32(n.Y), float32(n.Z),
			float32(uv.X), float32(uv.Y),
		)
	}
	return out
}

// IndexedMesh is the de-duplicated form of a Mesh.
type IndexedMesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Indexed merges corners whose position, normal and uv are all identical.
// Corners that only share a position stay distinct.
func (m *Mesh) Indexed() *IndexedMesh {
	im := &IndexedMesh{
		Indices: make([]uint32, 0, len(m.Positions)),
	}
	index := make(map[Vertex]uint32, len(m.Positions))
	for i := range m.Positions {
		v := m.Vertex(i)
		if idx, found := index[v]; found {
			im.Indices = append(im.Indices, idx)
			continue
		}
		idx := uint32(len(im.Vertices))
		im.Vertices = append(im.Vertices, v)
		index[v] = idx
		im.Indices = append(im.Indices, idx)
	}
	return im
}

// Mesh expands the indexed form back into a triangle soup.
func (im *IndexedMesh) Mesh() *Mesh {
	m := NewMesh(len(im.Indices))
	for _, idx := range im.Indices {
		v := im.Vertices[idx]
		m.AddVertex(v.Position, v.Normal, v.UV)
	}
	return m
}
