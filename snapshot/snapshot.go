// Package snapshot rasterizes scene faces off screen with gogpu/gg, for
// writing previews without opening a window.
package snapshot

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/rs/zerolog/log"

	"github.com/smasonuk/gosiedecal/scene"
)

// Render paints faces, which must already be sorted back to front, over
// background and returns the image.
func Render(faces []scene.Face, width, height int, background color.Color) (image.Image, error) {
	dc, err := draw(faces, width, height, background)
	if err != nil {
		return nil, err
	}
	defer dc.Close()

	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("could not flush snapshot: %w", err)
	}
	return dc.Image(), nil
}

// SavePNG renders faces and writes the result to path.
func SavePNG(path string, faces []scene.Face, width, height int, background color.Color) error {
	dc, err := draw(faces, width, height, background)
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("could not write snapshot %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("faces", len(faces)).Msg("snapshot written")
	return nil
}

func draw(faces []scene.Face, width, height int, background color.Color) (*gg.Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("snapshot size must be positive, got %dx%d", width, height)
	}
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.FromColor(background))

	for i, f := range faces {
		if f.Color.A == 0 {
			continue
		}
		dc.SetColor(f.Color)
		dc.MoveTo(float64(f.X[0]), float64(f.Y[0]))
		dc.LineTo(float64(f.X[1]), float64(f.Y[1]))
		dc.LineTo(float64(f.X[2]), float64(f.Y[2]))
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("could not fill face %d: %w", i, err)
		}
	}
	return dc, nil
}
