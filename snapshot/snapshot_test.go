package snapshot

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smasonuk/gosiedecal/scene"
)

var black = color.RGBA{A: 255}

// bigFace covers most of a 64x64 image.
func bigFace(c color.RGBA) scene.Face {
	return scene.Face{
		X:     [3]float32{2, 62, 32},
		Y:     [3]float32{62, 62, 2},
		Color: c,
	}
}

func TestRenderFillsFaces(t *testing.T) {
	img, err := Render([]scene.Face{bigFace(color.RGBA{R: 255, A: 255})}, 64, 64, black)
	require.NoError(t, err)
	require.Equal(t, 64, img.Bounds().Dx())
	require.Equal(t, 64, img.Bounds().Dy())

	r, g, b, _ := img.At(32, 48).RGBA()
	assert.Greater(t, r, uint32(0xc000))
	assert.Less(t, g, uint32(0x1000))
	assert.Less(t, b, uint32(0x1000))

	// outside the triangle the background shows through
	r, _, _, a := img.At(1, 1).RGBA()
	assert.Less(t, r, uint32(0x1000))
	assert.Equal(t, uint32(0xffff), a)
}

func TestRenderPaintsInOrder(t *testing.T) {
	faces := []scene.Face{
		bigFace(color.RGBA{R: 255, A: 255}),
		bigFace(color.RGBA{G: 255, A: 255}),
	}
	img, err := Render(faces, 64, 64, black)
	require.NoError(t, err)

	r, g, _, _ := img.At(32, 48).RGBA()
	assert.Greater(t, g, uint32(0xc000))
	assert.Less(t, r, uint32(0x1000))
}

func TestRenderSkipsTransparentFaces(t *testing.T) {
	img, err := Render([]scene.Face{bigFace(color.RGBA{})}, 16, 16, color.RGBA{B: 255, A: 255})
	require.NoError(t, err)

	_, _, b, _ := img.At(8, 8).RGBA()
	assert.Equal(t, uint32(0xffff), b)
}

func TestRenderInvalidSize(t *testing.T) {
	_, err := Render(nil, 0, 10, black)
	assert.Error(t, err)
	_, err = Render(nil, 10, -1, black)
	assert.Error(t, err)
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.png")
	require.NoError(t, SavePNG(path, []scene.Face{bigFace(color.RGBA{R: 255, A: 255})}, 64, 64, black))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}
