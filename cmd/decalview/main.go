package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	decal "github.com/smasonuk/gosiedecal"
	"github.com/smasonuk/gosiedecal/internal/config"
	"github.com/smasonuk/gosiedecal/preview"
)

func main() {
	var (
		configPath = flag.String("config", "decal.yaml", "path to config yaml")
		count      = flag.Int("count", -1, "number of decals")
		noReveal   = flag.Bool("all", false, "show every decal instead of fading them in")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults")
	} else {
		cfg = c
	}
	if *count >= 0 {
		cfg.Decals.Count = *count
	}

	var (
		base *decal.Mesh
		err  error
	)
	if cfg.Source == "" {
		s := cfg.Sphere
		base, err = decal.GenerateSphere(s.Sides, s.Segments, s.Radius, s.FlipNormals)
	} else {
		if base, err = decal.LoadMeshFile(cfg.Source); err == nil {
			base.Centre()
		}
	}
	if err != nil {
		log.Fatal().Err(err).Msg("could not build base mesh")
	}

	rng := rand.New(rand.NewSource(cfg.Decals.Seed))
	extents := decal.Vector3{X: cfg.Decals.Extents.X, Y: cfg.Decals.Extents.Y, Z: cfg.Decals.Extents.Z}
	projectors, err := decal.RandomProjectors(rng, cfg.Decals.Count, decal.ScatterOptions{
		Distance:     cfg.Decals.Distance,
		TargetSpread: cfg.Decals.TargetSpread,
		MaxRoll:      cfg.Decals.MaxRoll,
	}, extents)
	if err != nil {
		log.Fatal().Err(err).Msg("could not place projectors")
	}
	decals, err := decal.ProjectDecals(context.Background(), base, projectors, cfg.Decals.Workers)
	if err != nil {
		log.Fatal().Err(err).Msg("could not project decals")
	}

	opts := preview.DefaultOptions
	opts.Width, opts.Height = cfg.Output.Width, cfg.Output.Height
	opts.Reveal = !*noReveal
	if err := preview.Run(preview.NewGame(base, decals, opts)); err != nil {
		log.Fatal().Err(err).Msg("preview failed")
	}
}
