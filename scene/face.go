package scene

import (
	"image/color"
	"sort"
)

// Face is a projected, shaded triangle ready for a 2D rasterizer.
type Face struct {
	X, Y  [3]float32
	Depth float64
	Color color.RGBA
	Layer int
}

// SortFaces orders faces back to front so painting them in order hides the
// far ones. Equal depths keep layer order.
func SortFaces(faces []Face) {
	sort.SliceStable(faces, func(i, j int) bool {
		if faces[i].Depth != faces[j].Depth {
			return faces[i].Depth > faces[j].Depth
		}
		return faces[i].Layer < faces[j].Layer
	})
}
