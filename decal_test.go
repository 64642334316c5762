package gosiedecal

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangleMesh(a, b, c Vector3) *Mesh {
	m := NewMesh(3)
	m.AddVertex(a, UnitZ, Vector2{})
	m.AddVertex(b, UnitZ, Vector2{})
	m.AddVertex(c, UnitZ, Vector2{})
	return m
}

func area(m *Mesh) float64 {
	total := 0.0
	for i := 0; i < m.Len(); i += 3 {
		a, b, c := m.Positions[i], m.Positions[i+1], m.Positions[i+2]
		total += b.Subtract(a).Cross(c.Subtract(a)).Length() / 2
	}
	return total
}

func TestProjectDecalBoxContainsMesh(t *testing.T) {
	src, err := GenerateSphere(12, 8, 1, false)
	require.NoError(t, err)

	out, err := ProjectDecal(src, IdentMatrix(), Vector3{X: 4, Y: 4, Z: 4})
	require.NoError(t, err)

	assert.Equal(t, src.Positions, out.Positions)
	assert.Equal(t, src.Normals, out.Normals)
	for i, uv := range out.UVs {
		want := Vector2{X: src.Positions[i].X/4 + 0.5, Y: src.Positions[i].Y/4 + 0.5}
		assert.InDelta(t, want.X, uv.X, 1e-12)
		assert.InDelta(t, want.Y, uv.Y, 1e-12)
	}
}

func TestProjectDecalRoundTripThroughPose(t *testing.T) {
	src, err := GenerateSphere(10, 6, 1, false)
	require.NoError(t, err)

	pose := TransMatrix(0.3, -0.2, 0.1).
		MultiplyBy(NewRotationMatrix(ROTY, 0.7)).
		MultiplyBy(NewRotationMatrix(ROTX, -0.4))

	out, err := ProjectDecal(src, pose, Vector3{X: 10, Y: 10, Z: 10})
	require.NoError(t, err)
	require.Equal(t, src.Len(), out.Len())

	for i := range src.Positions {
		if !almostEqualVector(src.Positions[i], out.Positions[i]) {
			t.Fatalf("position %d = %v, want %v", i, out.Positions[i], src.Positions[i])
		}
	}
	// normals are not rotated into projector space
	assert.Equal(t, src.Normals, out.Normals)
}

func TestProjectDecalClipsToUnitBox(t *testing.T) {
	src := triangleMesh(Vector3{}, Vector3{X: 2}, Vector3{Y: 2})

	out, err := ProjectDecal(src, IdentMatrix(), Vector3{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	require.NoError(t, out.Validate())
	require.NotZero(t, out.Len())

	// what survives is the square [0, 0.5] x [0, 0.5]
	assert.InDelta(t, 0.25, area(out), 1e-12)
	for i, p := range out.Positions {
		assert.GreaterOrEqual(t, p.X, -1e-12)
		assert.LessOrEqual(t, p.X, 0.5+1e-12)
		assert.GreaterOrEqual(t, p.Y, -1e-12)
		assert.LessOrEqual(t, p.Y, 0.5+1e-12)

		uv := out.UVs[i]
		assert.InDelta(t, p.X+0.5, uv.X, 1e-12)
		assert.InDelta(t, p.Y+0.5, uv.Y, 1e-12)
		assert.Equal(t, UnitZ, out.Normals[i])
	}
}

func TestProjectDecalOutputInsideBox(t *testing.T) {
	src, err := GenerateSphere(16, 12, 1, false)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	extents := DefaultExtents
	for n := 0; n < 20; n++ {
		projector := RandomProjector(rng, DefaultScatter)
		inverse, err := projector.Inverse()
		require.NoError(t, err)

		out, err := ProjectDecal(src, projector, extents)
		require.NoError(t, err)
		require.NoError(t, out.Validate())

		for i, p := range out.Positions {
			local := inverse.TransformPoint(p)
			assert.LessOrEqual(t, math.Abs(local.X), extents.X/2+1e-9)
			assert.LessOrEqual(t, math.Abs(local.Y), extents.Y/2+1e-9)
			assert.LessOrEqual(t, math.Abs(local.Z), extents.Z/2+1e-9)

			uv := out.UVs[i]
			assert.GreaterOrEqual(t, uv.X, -1e-9)
			assert.LessOrEqual(t, uv.X, 1+1e-9)
			assert.GreaterOrEqual(t, uv.Y, -1e-9)
			assert.LessOrEqual(t, uv.Y, 1+1e-9)
		}
	}
}

func TestProjectDecalIdempotentWhenInside(t *testing.T) {
	src, err := GenerateSphere(8, 6, 0.5, false)
	require.NoError(t, err)
	projector := TransMatrix(0.1, 0, 0)
	extents := Vector3{X: 2, Y: 2, Z: 2}

	once, err := ProjectDecal(src, projector, extents)
	require.NoError(t, err)
	twice, err := ProjectDecal(once, projector, extents)
	require.NoError(t, err)

	require.Equal(t, once.Len(), twice.Len())
	for i := range once.Positions {
		assert.True(t, almostEqualVector(once.Positions[i], twice.Positions[i]))
		assert.InDelta(t, once.UVs[i].X, twice.UVs[i].X, 1e-12)
		assert.InDelta(t, once.UVs[i].Y, twice.UVs[i].Y, 1e-12)
	}
	assert.Equal(t, once.Normals, twice.Normals)
}

func TestProjectDecalDoesNotModifySource(t *testing.T) {
	src := triangleMesh(Vector3{}, Vector3{X: 2}, Vector3{Y: 2})
	before := src.Copy()

	_, err := ProjectDecal(src, NewRotationMatrix(ROTZ, 0.3), Vector3{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	assert.Equal(t, before, src)
}

func TestProjectDecalEmptyResults(t *testing.T) {
	src, err := GenerateSphere(8, 6, 1, false)
	require.NoError(t, err)

	testCases := []struct {
		name      string
		projector Matrix
		extents   Vector3
	}{
		{"Zero extents", IdentMatrix(), Vector3{}},
		{"Zero x extent", IdentMatrix(), Vector3{X: 0, Y: 1, Z: 1}},
		{"NaN extent", IdentMatrix(), Vector3{X: 1, Y: math.NaN(), Z: 1}},
		{"Box away from the mesh", TransMatrix(10, 0, 0), Vector3{X: 1, Y: 1, Z: 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := ProjectDecal(src, tc.projector, tc.extents)
			require.NoError(t, err)
			assert.Zero(t, out.Len())
			assert.NoError(t, out.Validate())
		})
	}
}

func TestProjectDecalEmptySource(t *testing.T) {
	out, err := ProjectDecal(NewMesh(0), IdentMatrix(), Vector3{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	assert.Zero(t, out.Len())
}

func TestProjectDecalErrors(t *testing.T) {
	good := triangleMesh(Vector3{}, Vector3{X: 1}, Vector3{Y: 1})

	nonAffine := IdentMatrix()
	nonAffine[0][3] = 1

	nanMatrix := IdentMatrix()
	nanMatrix[3][0] = math.NaN()

	badLengths := good.Copy()
	badLengths.UVs = badLengths.UVs[:2]

	notTriangles := NewMesh(4)
	for i := 0; i < 4; i++ {
		notTriangles.AddVertex(Vector3{X: float64(i)}, UnitZ, Vector2{})
	}

	testCases := []struct {
		name      string
		src       *Mesh
		projector Matrix
		want      error
	}{
		{"Nil source", nil, IdentMatrix(), ErrInvalidArgument},
		{"Mismatched attribute lengths", badLengths, IdentMatrix(), ErrInvalidArgument},
		{"Vertex count not a multiple of 3", notTriangles, IdentMatrix(), ErrInvalidArgument},
		{"Zero scale", good, ScaleMatrix(0, 1, 1), ErrSingularTransform},
		{"Zero matrix", good, Matrix{}, ErrSingularTransform},
		{"Projective matrix", good, nonAffine, ErrSingularTransform},
		{"NaN element", good, nanMatrix, ErrSingularTransform},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := ProjectDecal(tc.src, tc.projector, Vector3{X: 1, Y: 1, Z: 1})
			assert.Nil(t, out)
			if !errors.Is(err, tc.want) {
				t.Errorf("ProjectDecal() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestProjectorProject(t *testing.T) {
	src := triangleMesh(Vector3{}, Vector3{X: 2}, Vector3{Y: 2})
	p := Projector{Transform: TransMatrix(0.25, 0.25, 0), Extents: Vector3{X: 1, Y: 1, Z: 1}}

	viaMethod, err := p.Project(src)
	require.NoError(t, err)
	direct, err := ProjectDecal(src, p.Transform, p.Extents)
	require.NoError(t, err)
	assert.Equal(t, direct, viaMethod)
}
