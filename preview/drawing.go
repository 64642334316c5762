package preview

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/smasonuk/gosiedecal/scene"
)

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

// whiteImage is the 1x1 source every filled triangle samples; vertex
// colors do the tinting.
func whiteImage() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSub = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

// faceVertices appends the vertices and indices that fill faces. Colors
// are premultiplied, as scene.Face colors already are.
func faceVertices(faces []scene.Face, vertices []ebiten.Vertex, indices []uint16) ([]ebiten.Vertex, []uint16) {
	for _, f := range faces {
		if len(vertices)+3 > 1<<16 {
			break
		}
		base := uint16(len(vertices))
		cr := float32(f.Color.R) / 255.0
		cg := float32(f.Color.G) / 255.0
		cb := float32(f.Color.B) / 255.0
		ca := float32(f.Color.A) / 255.0
		for k := 0; k < 3; k++ {
			vertices = append(vertices, ebiten.Vertex{
				DstX:   f.X[k],
				DstY:   f.Y[k],
				SrcX:   1,
				SrcY:   1,
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: ca,
			})
		}
		indices = append(indices, base, base+1, base+2)
	}
	return vertices, indices
}

// fillFaces paints faces in order, flushing a batch whenever the 16 bit
// index space runs out.
func fillFaces(screen *ebiten.Image, faces []scene.Face) {
	const batch = (1 << 16) / 3
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
	}

	var vertices []ebiten.Vertex
	var indices []uint16
	for start := 0; start < len(faces); start += batch {
		end := min(start+batch, len(faces))
		vertices, indices = faceVertices(faces[start:end], vertices[:0], indices[:0])
		screen.DrawTriangles(vertices, indices, whiteImage(), op)
	}
}

// drawOutlines strokes each face edge, for wireframe inspection.
func drawOutlines(screen *ebiten.Image, faces []scene.Face, strokeWidth float32, clr color.RGBA) {
	for _, f := range faces {
		var path vector.Path
		path.MoveTo(f.X[0], f.Y[0])
		path.LineTo(f.X[1], f.Y[1])
		path.LineTo(f.X[2], f.Y[2])
		path.Close()

		strokeOp := &vector.StrokeOptions{Width: strokeWidth}
		vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, strokeOp)

		cr := float32(clr.R) / 255.0
		cg := float32(clr.G) / 255.0
		cb := float32(clr.B) / 255.0
		ca := float32(clr.A) / 255.0
		for i := range vertices {
			vertices[i].ColorR = cr
			vertices[i].ColorG = cg
			vertices[i].ColorB = cb
			vertices[i].ColorA = ca
			vertices[i].SrcX = 1
			vertices[i].SrcY = 1
		}
		screen.DrawTriangles(vertices, indices, whiteImage(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
}
