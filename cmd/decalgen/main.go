package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	decal "github.com/smasonuk/gosiedecal"
	"github.com/smasonuk/gosiedecal/internal/config"
	"github.com/smasonuk/gosiedecal/scene"
	"github.com/smasonuk/gosiedecal/snapshot"
)

func main() {
	// ---- Flags (config.yaml values are used where a flag is not set) ----
	var (
		configPath = flag.String("config", "decal.yaml", "path to config yaml")
		source     = flag.String("source", "", "PLY or DXF mesh to decorate instead of a sphere")
		sides      = flag.Int("sides", 0, "sphere longitude subdivisions")
		segments   = flag.Int("segments", 0, "sphere latitude subdivisions")
		radius     = flag.Float64("radius", 0, "sphere radius")
		count      = flag.Int("count", -1, "number of decals")
		seed       = flag.Int64("seed", 0, "random seed for projector placement")
		workers    = flag.Int("workers", -1, "projection workers (0 = all cores)")
		plyPath    = flag.String("ply", "", "write the merged decal mesh to this PLY file")
		pngPath    = flag.String("png", "", "write a snapshot of sphere and decals to this PNG file")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// ---- Config ----
	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults and flags")
	} else {
		cfg = c
	}
	applyFlags(cfg, flagValues{
		source: *source, sides: *sides, segments: *segments, radius: *radius,
		count: *count, seed: *seed, workers: *workers, ply: *plyPath, png: *pngPath,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("decalgen failed")
	}
}

type flagValues struct {
	source          string
	sides, segments int
	radius          float64
	count           int
	seed            int64
	workers         int
	ply, png        string
}

// applyFlags overrides config values with the flags that were set.
func applyFlags(cfg *config.Config, f flagValues) {
	if f.source != "" {
		cfg.Source = f.source
	}
	if f.sides > 0 {
		cfg.Sphere.Sides = f.sides
	}
	if f.segments > 0 {
		cfg.Sphere.Segments = f.segments
	}
	if f.radius > 0 {
		cfg.Sphere.Radius = f.radius
	}
	if f.count >= 0 {
		cfg.Decals.Count = f.count
	}
	if f.seed != 0 {
		cfg.Decals.Seed = f.seed
	}
	if f.workers >= 0 {
		cfg.Decals.Workers = f.workers
	}
	if f.ply != "" {
		cfg.Output.PLY = f.ply
	}
	if f.png != "" {
		cfg.Output.PNG = f.png
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	base, err := loadBase(cfg)
	if err != nil {
		return err
	}
	log.Info().Int("triangles", base.TriangleCount()).Msg("base mesh ready")

	rng := rand.New(rand.NewSource(cfg.Decals.Seed))
	extents := decal.Vector3{X: cfg.Decals.Extents.X, Y: cfg.Decals.Extents.Y, Z: cfg.Decals.Extents.Z}
	projectors, err := decal.RandomProjectors(rng, cfg.Decals.Count, decal.ScatterOptions{
		Distance:     cfg.Decals.Distance,
		TargetSpread: cfg.Decals.TargetSpread,
		MaxRoll:      cfg.Decals.MaxRoll,
	}, extents)
	if err != nil {
		return err
	}

	start := time.Now()
	decals, err := decal.ProjectDecals(ctx, base, projectors, cfg.Decals.Workers)
	if err != nil {
		return err
	}
	merged := decal.Merge(decals)
	log.Info().
		Int("decals", len(decals)).
		Int("triangles", merged.TriangleCount()).
		Dur("elapsed", time.Since(start)).
		Msg("decals projected")

	if cfg.Output.PLY != "" {
		if err := decal.SavePLYFile(cfg.Output.PLY, merged); err != nil {
			return err
		}
		log.Info().Str("path", cfg.Output.PLY).Msg("PLY written")
	}

	if cfg.Output.PNG != "" {
		cam := scene.NewCamera(8, 15)
		cam.AddAngle(0.6, 0.35)
		layers := scene.DecalLayers(base, decals, decal.IdentMatrix(), scene.DefaultPalette)
		faces := scene.Build(cam, layers, cfg.Output.Width, cfg.Output.Height)
		if err := snapshot.SavePNG(cfg.Output.PNG, faces, cfg.Output.Width, cfg.Output.Height, scene.DefaultPalette.Background); err != nil {
			return err
		}
		log.Info().Str("path", cfg.Output.PNG).Int("faces", len(faces)).Msg("snapshot written")
	}
	return nil
}

func loadBase(cfg *config.Config) (*decal.Mesh, error) {
	if cfg.Source == "" {
		s := cfg.Sphere
		return decal.GenerateSphere(s.Sides, s.Segments, s.Radius, s.FlipNormals)
	}
	m, err := decal.LoadMeshFile(cfg.Source)
	if err != nil {
		return nil, err
	}
	// projectors aim at the origin
	m.Centre()
	return m, nil
}
