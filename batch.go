package gosiedecal

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ProjectDecals projects every projector onto src concurrently. Each
// worker reads the shared source mesh and writes only its own result slot,
// so results line up with projectors. workers <= 0 uses GOMAXPROCS.
func ProjectDecals(ctx context.Context, src *Mesh, projectors []Projector, workers int) ([]*Mesh, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("decal source: %w", err)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	results := make([]*Mesh, len(projectors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range projectors {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			decal, err := projectors[i].Project(src)
			if err != nil {
				return fmt.Errorf("decal %d: %w", i, err)
			}
			results[i] = decal
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	triangles := 0
	for _, r := range results {
		triangles += r.TriangleCount()
	}
	log.Debug().
		Int("decals", len(projectors)).
		Int("workers", workers).
		Int("triangles", triangles).
		Dur("elapsed", time.Since(start)).
		Msg("decals projected")

	return results, nil
}

// Merge concatenates meshes into one triangle soup.
func Merge(meshes []*Mesh) *Mesh {
	n := 0
	for _, m := range meshes {
		n += m.Len()
	}
	out := NewMesh(n)
	for _, m := range meshes {
		out.Append(m)
	}
	return out
}
