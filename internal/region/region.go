// Package region renders a rectangular grid of terrain blocks in parallel.
package region

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/voxelfun/pkg/world/gen"
	"github.com/OCharnyshevich/voxelfun/pkg/world/voxel"
)

// Spec describes the grid of blocks to render.
type Spec struct {
	Origin    voxel.Vec3i // world voxel origin of block (0,0,0)
	BlockSize voxel.Vec3i
	Blocks    voxel.Vec3i // block count along each axis
	LOD       int
	Workers   int // 0 = GOMAXPROCS
}

// Extent returns the total size of the region in voxels.
func (s Spec) Extent() voxel.Vec3i {
	return voxel.Vec3i{
		X: s.BlockSize.X * s.Blocks.X,
		Y: s.BlockSize.Y * s.Blocks.Y,
		Z: s.BlockSize.Z * s.Blocks.Z,
	}
}

// Block is one generated block of the region.
type Block struct {
	Index  voxel.Vec3i // position in the block grid
	Origin voxel.Vec3i // world voxel origin
	LOD    int
	Buffer *voxel.Buffer
}

// Sink consumes generated blocks. Calls are serialized.
type Sink func(Block) error

// Stats summarizes a rendered region.
type Stats struct {
	Blocks      int
	EmptyBlocks int
	Solid       int
}

// Render generates every block of spec with g and hands it to sink.
// Generation runs on spec.Workers goroutines; a sink error or ctx
// cancellation stops the remaining work.
func Render(ctx context.Context, g gen.BlockGenerator, spec Spec, sink Sink, log *slog.Logger) (Stats, error) {
	total := spec.Blocks.Volume()
	if total == 0 || spec.BlockSize.Volume() == 0 {
		return Stats{}, fmt.Errorf("empty region: blocks %v of size %v", spec.Blocks, spec.BlockSize)
	}

	workers := spec.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > total {
		workers = total
	}

	log.Info("region generation started",
		"blocks", total,
		"blockSize", spec.BlockSize.String(),
		"origin", spec.Origin.String(),
		"lod", spec.LOD,
		"workers", workers,
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	var (
		mu       sync.Mutex
		stats    Stats
		progress = newProgress(total, log)
	)

	for i := 0; i < total; i++ {
		idx := blockIndex(i, spec.Blocks)
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			origin := spec.Origin.Add(voxel.Vec3i{
				X: idx.X * spec.BlockSize.X,
				Y: idx.Y * spec.BlockSize.Y,
				Z: idx.Z * spec.BlockSize.Z,
			})
			buf := voxel.NewBuffer(spec.BlockSize)
			g.GenerateBlock(gen.BlockRequest{Origin: origin, LOD: spec.LOD, Buffer: buf})

			mu.Lock()
			defer mu.Unlock()
			if err := sink(Block{Index: idx, Origin: origin, LOD: spec.LOD, Buffer: buf}); err != nil {
				return fmt.Errorf("block %v: %w", idx, err)
			}
			stats.Blocks++
			solid := buf.Count()
			stats.Solid += solid
			if solid == 0 {
				stats.EmptyBlocks++
			}
			progress.step()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return stats, err
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	log.Info("region generation finished",
		"blocks", stats.Blocks,
		"emptyBlocks", stats.EmptyBlocks,
		"solidVoxels", stats.Solid,
	)
	return stats, nil
}

// blockIndex maps a linear index to grid coordinates, x fastest.
func blockIndex(i int, n voxel.Vec3i) voxel.Vec3i {
	return voxel.Vec3i{
		X: i % n.X,
		Z: (i / n.X) % n.Z,
		Y: i / (n.X * n.Z),
	}
}

// progress logs completion every 10%.
type progress struct {
	total, done, next int
	log               *slog.Logger
}

func newProgress(total int, log *slog.Logger) *progress {
	return &progress{total: total, next: 10, log: log}
}

func (p *progress) step() {
	p.done++
	pct := p.done * 100 / p.total
	if pct < p.next {
		return
	}
	p.log.Debug("region generation progress", "percent", pct, "blocks", p.done)
	p.next = (pct/10 + 1) * 10
}
