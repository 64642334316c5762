package gosiedecal

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomProjectorsDeterministic(t *testing.T) {
	a, err := RandomProjectors(rand.New(rand.NewSource(42)), 25, DefaultScatter, DefaultExtents)
	require.NoError(t, err)
	b, err := RandomProjectors(rand.New(rand.NewSource(42)), 25, DefaultScatter, DefaultExtents)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := RandomProjectors(rand.New(rand.NewSource(43)), 25, DefaultScatter, DefaultExtents)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestRandomProjectorPlacement(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	opts := ScatterOptions{Distance: 3, TargetSpread: 0.1, MaxRoll: 30}

	for i := 0; i < 50; i++ {
		m := RandomProjector(rng, opts)
		require.True(t, m.IsAffine())

		_, err := m.Inverse()
		require.NoError(t, err)

		eye := m.TransformPoint(Vector3{})
		assert.InDelta(t, 3, eye.Length(), 1e-9)

		// the projection axis passes close to the origin
		forward := m.RotateVector(Vector3{Z: -1}).Normalize()
		toOrigin := eye.Mult(-1).Normalize()
		assert.Greater(t, forward.Dot(toOrigin), 0.99)
	}
}

func TestRandomProjectorsDecorateSphere(t *testing.T) {
	src, err := GenerateSphere(24, 24, 1, false)
	require.NoError(t, err)
	projectors, err := RandomProjectors(rand.New(rand.NewSource(5)), 30, DefaultScatter, DefaultExtents)
	require.NoError(t, err)

	triangles := 0
	for _, p := range projectors {
		assert.Equal(t, DefaultExtents, p.Extents)
		d, err := p.Project(src)
		require.NoError(t, err)
		triangles += d.TriangleCount()
	}
	assert.Greater(t, triangles, 0)
}

func TestRandomProjectorsNegativeCount(t *testing.T) {
	_, err := RandomProjectors(rand.New(rand.NewSource(1)), -1, DefaultScatter, DefaultExtents)
	assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
}

func TestRandomProjectorHonoursZeroOptions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	opts := ScatterOptions{Distance: 1.2, TargetSpread: 0, MaxRoll: 0}

	for i := 0; i < 50; i++ {
		m := RandomProjector(rng, opts)

		// without roll the projector's x axis stays horizontal
		right := m.RotateVector(UnitX)
		assert.InDelta(t, 0, right.Y, 1e-12, "projector %d is rolled", i)

		// without spread it aims straight at the origin
		eye := m.TransformPoint(Vector3{})
		forward := m.RotateVector(Vector3{Z: -1}).Normalize()
		assert.InDelta(t, 1, forward.Dot(eye.Mult(-1).Normalize()), 1e-9)
	}
}

func TestScatterOptionsDefaults(t *testing.T) {
	testCases := []struct {
		name     string
		input    ScatterOptions
		expected ScatterOptions
	}{
		{"Zero kept", ScatterOptions{}, ScatterOptions{}},
		{"Negative replaced", ScatterOptions{Distance: -1, TargetSpread: -1, MaxRoll: -1}, DefaultScatter},
		{"NaN replaced", ScatterOptions{Distance: 2, TargetSpread: math.NaN(), MaxRoll: 10}, ScatterOptions{Distance: 2, TargetSpread: 0.75, MaxRoll: 10}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.input.withDefaults())
		})
	}
}
