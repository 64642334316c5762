package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	decal "github.com/smasonuk/gosiedecal"
)

const float64EqualityThreshold = 1e-9

func almostEqualVector(a, b decal.Vector3) bool {
	return math.Abs(a.X-b.X) <= float64EqualityThreshold &&
		math.Abs(a.Y-b.Y) <= float64EqualityThreshold &&
		math.Abs(a.Z-b.Z) <= float64EqualityThreshold
}

func TestCameraPosition(t *testing.T) {
	testCases := []struct {
		name       string
		yaw, pitch float64
		expected   decal.Vector3
	}{
		{"Front", 0, 0, decal.Vector3{Z: 5}},
		{"Quarter turn", math.Pi / 2, 0, decal.Vector3{X: 5}},
		{"Half turn", math.Pi, 0, decal.Vector3{Z: -5}},
		{"Raised", 0, math.Pi / 6, decal.Vector3{Y: 2.5, Z: 5 * math.Cos(math.Pi/6)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cam := NewCamera(5, 45)
			cam.AddAngle(tc.yaw, tc.pitch)
			got := cam.Position()
			if !almostEqualVector(got, tc.expected) {
				t.Errorf("Position() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestCameraPitchClamped(t *testing.T) {
	cam := NewCamera(5, 45)
	cam.AddAngle(0, 10)
	assert.InDelta(t, maxPitch, cam.Pitch, 1e-12)
	cam.AddAngle(0, -20)
	assert.InDelta(t, -maxPitch, cam.Pitch, 1e-12)
}

func TestCameraZoom(t *testing.T) {
	cam := NewCamera(8, 45)
	cam.Zoom(0.5)
	assert.Equal(t, 4.0, cam.Distance)
	cam.Zoom(0)
	cam.Zoom(-2)
	assert.Equal(t, 4.0, cam.Distance)
}

func TestCameraView(t *testing.T) {
	cam := NewCamera(5, 45)
	cam.Target = decal.Vector3{X: 1, Y: 1, Z: 1}
	cam.AddAngle(0.4, 0.2)

	got := cam.View().TransformPoint(cam.Target)
	assert.True(t, almostEqualVector(got, decal.Vector3{Z: -5}), "got %v", got)
}

func TestFocalLength(t *testing.T) {
	testCases := []struct {
		name     string
		fov      float64
		expected float64
	}{
		{"Ninety degrees", 90, 50},
		{"Sixty degrees", 60, 50 / math.Tan(math.Pi/6)},
		{"Zero falls back to 45", 0, 50 / math.Tan(math.Pi/8)},
		{"Too wide falls back to 45", 200, 50 / math.Tan(math.Pi/8)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cam := NewCamera(1, tc.fov)
			assert.InDelta(t, tc.expected, cam.focalLength(100), 1e-9)
		})
	}
}
