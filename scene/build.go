package scene

import (
	"image/color"

	decal "github.com/smasonuk/gosiedecal"
)

// Layer is one mesh placed in the scene.
type Layer struct {
	Mesh  *decal.Mesh
	Model decal.Matrix
	Color color.RGBA
	// Decal layers take their alpha from the uv falloff.
	Decal bool
	// DepthBias pulls the layer toward the camera when sorting, so a decal
	// lying on a surface paints over it.
	DepthBias float64
}

// Build projects every front-facing triangle of every layer onto a
// width x height viewport and returns the faces sorted back to front.
// Triangles with a corner behind the near plane are skipped. A layer with
// a zero Model is drawn untransformed.
func Build(cam *Camera, layers []Layer, width, height int) []Face {
	view := cam.View()
	f := cam.focalLength(float64(height))
	cx, cy := float64(width)/2, float64(height)/2

	var faces []Face
	for li, layer := range layers {
		if layer.Mesh == nil {
			continue
		}
		model := layer.Model
		if model == (decal.Matrix{}) {
			model = decal.IdentMatrix()
		}
		modelView := view.MultiplyBy(model)
		m := layer.Mesh

		for i := 0; i+2 < m.Len(); i += 3 {
			var pts [3]decal.Vector3
			var normal decal.Vector3
			var uv decal.Vector2
			behind := false
			for k := 0; k < 3; k++ {
				pts[k] = modelView.TransformPoint(m.Positions[i+k])
				if -pts[k].Z < cam.Near {
					behind = true
					break
				}
				normal = normal.Add(modelView.RotateVector(m.Normals[i+k]))
				uv = uv.Add(m.UVs[i+k])
			}
			if behind {
				continue
			}

			centre := pts[0].Add(pts[1]).Add(pts[2]).Mult(1.0 / 3)
			if normal.Dot(centre) >= 0 {
				continue // back face
			}

			col := shade(layer.Color, centre, normal)
			if layer.Decal {
				a := decalAlpha(uv.Mult(1.0/3)) * float64(layer.Color.A) / 255
				if a <= 0 {
					continue
				}
				col = premultiply(col, a)
			}

			face := Face{
				Depth: -centre.Z - layer.DepthBias,
				Color: col,
				Layer: li,
			}
			for k, p := range pts {
				depth := -p.Z
				face.X[k] = float32(cx + f*p.X/depth)
				face.Y[k] = float32(cy - f*p.Y/depth)
			}
			faces = append(faces, face)
		}
	}

	SortFaces(faces)
	return faces
}

// premultiply returns c with alpha a in color.RGBA's premultiplied form.
func premultiply(c color.RGBA, a float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(255 * a),
	}
}

type Palette struct {
	Base       color.RGBA
	Decal      color.RGBA
	Background color.RGBA
}

var DefaultPalette = Palette{
	Base:       color.RGBA{R: 200, G: 200, B: 190, A: 255},
	Decal:      color.RGBA{R: 60, G: 200, B: 90, A: 255},
	Background: color.RGBA{R: 16, G: 16, B: 20, A: 255},
}

// DecalLayers places base and decals under the same model transform.
// Each later decal is biased a little further toward the camera so the
// newest one wins where decals overlap.
func DecalLayers(base *decal.Mesh, decals []*decal.Mesh, model decal.Matrix, p Palette) []Layer {
	layers := make([]Layer, 0, len(decals)+1)
	layers = append(layers, Layer{Mesh: base, Model: model, Color: p.Base})
	for i, d := range decals {
		layers = append(layers, Layer{
			Mesh:      d,
			Model:     model,
			Color:     p.Decal,
			Decal:     true,
			DepthBias: 0.0001 + float64(i)*0.00001,
		})
	}
	return layers
}
