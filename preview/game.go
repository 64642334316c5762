package preview

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"

	decal "github.com/smasonuk/gosiedecal"
	"github.com/smasonuk/gosiedecal/scene"
)

type Options struct {
	Width, Height int
	Title         string
	// SpinDegrees is the model's rotation speed about +Y per second.
	SpinDegrees float64
	Palette     scene.Palette
	// Reveal fades decals in and out over time instead of showing all.
	Reveal bool
}

var DefaultOptions = Options{
	Width:       960,
	Height:      960,
	Title:       "gosiedecal",
	SpinDegrees: 18,
	Palette:     scene.DefaultPalette,
	Reveal:      true,
}

// Game draws a base mesh with decals on top and lets the mouse orbit the
// camera.
type Game struct {
	opts   Options
	base   *decal.Mesh
	decals []*decal.Mesh
	camera *scene.Camera

	ticks        int
	lastX, lastY int
	dragged      bool
	outlines     bool
	paused       bool
}

func NewGame(base *decal.Mesh, decals []*decal.Mesh, opts Options) *Game {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultOptions.Width, DefaultOptions.Height
	}
	return &Game{
		opts:   opts,
		base:   base,
		decals: decals,
		camera: scene.NewCamera(8, 15),
	}
}

func (g *Game) Camera() *scene.Camera {
	return g.camera
}

func (g *Game) Update() error {
	if !g.paused {
		g.ticks++
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.outlines = !g.outlines
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.dragged {
			g.camera.AddAngle(-float64(x-g.lastX)*0.01, float64(y-g.lastY)*0.01)
		}
		g.dragged = true
	} else {
		g.dragged = false
	}
	g.lastX, g.lastY = x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		if wy > 0 {
			g.camera.Zoom(0.9)
		} else {
			g.camera.Zoom(1.1)
		}
	}
	return nil
}

func (g *Game) seconds() float64 {
	return float64(g.ticks) / float64(ebiten.TPS())
}

// layers returns the base mesh and the decals visible after seconds, all
// spun about +Y. Later decals sit slightly closer to the camera.
func (g *Game) layers(seconds float64) []scene.Layer {
	model := decal.NewRotationMatrix(decal.ROTY, seconds*g.opts.SpinDegrees*math.Pi/180)

	visible := len(g.decals)
	if g.opts.Reveal {
		visible = scene.RevealCount(len(g.decals), seconds)
	}

	return scene.DecalLayers(g.base, g.decals[:visible], model, g.opts.Palette)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.Palette.Background)

	seconds := g.seconds()
	layers := g.layers(seconds)
	faces := scene.Build(g.camera, layers, g.opts.Width, g.opts.Height)

	fillFaces(screen, faces)
	if g.outlines {
		drawOutlines(screen, faces, 1.0, color.RGBA{R: 100, G: 100, B: 100, A: 20})
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("decals %d/%d  faces %d  fps %.0f\n[drag] orbit [wheel] zoom [o] outlines [space] pause",
		len(layers)-1, len(g.decals), len(faces), ebiten.ActualFPS()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opts.Width, g.opts.Height
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	ebiten.SetWindowTitle(g.opts.Title)
	log.Info().Int("decals", len(g.decals)).Int("triangles", g.base.TriangleCount()).Msg("opening preview")
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
