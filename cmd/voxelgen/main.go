package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/OCharnyshevich/voxelfun/internal/config"
	"github.com/OCharnyshevich/voxelfun/internal/preset"
	"github.com/OCharnyshevich/voxelfun/internal/preview"
	"github.com/OCharnyshevich/voxelfun/internal/region"
	"github.com/OCharnyshevich/voxelfun/internal/storage"
	"github.com/OCharnyshevich/voxelfun/pkg/world/anvil"
	"github.com/OCharnyshevich/voxelfun/pkg/world/gen"
	"github.com/OCharnyshevich/voxelfun/pkg/world/voxel"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "path or URL of a JSON/YAML config file")
	presetName := flag.String("preset", "", "built-in preset ("+strings.Join(preset.Names(), ", ")+") or preset URL")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.Float64Var(&cfg.HillHeight, "hill-height", cfg.HillHeight, "hill amplitude in voxels")
	flag.Float64Var(&cfg.MountainHeight, "mountain-height", cfg.MountainHeight, "mountain amplitude in voxels")
	flag.Float64Var(&cfg.MountainPower, "mountain-power", cfg.MountainPower, "mountain sharpness exponent")
	flag.StringVar(&cfg.Generator, "generator", cfg.Generator, "generator ("+strings.Join(gen.Registered(), ", ")+")")
	flag.StringVar(&cfg.Noise, "noise", cfg.Noise, "base noise of the terrain fields (opensimplex, perlin)")
	flag.IntVar(&cfg.Origin.X, "origin-x", cfg.Origin.X, "world X of the first block")
	flag.IntVar(&cfg.Origin.Y, "origin-y", cfg.Origin.Y, "world Y of the first block")
	flag.IntVar(&cfg.Origin.Z, "origin-z", cfg.Origin.Z, "world Z of the first block")
	blockSize := flag.Int("block-size", cfg.BlockSize.X, "block edge length in voxels")
	flag.IntVar(&cfg.Blocks.X, "blocks-x", cfg.Blocks.X, "block count along X")
	flag.IntVar(&cfg.Blocks.Y, "blocks-y", cfg.Blocks.Y, "block count along Y")
	flag.IntVar(&cfg.Blocks.Z, "blocks-z", cfg.Blocks.Z, "block count along Z")
	flag.IntVar(&cfg.LOD, "lod", cfg.LOD, "level of detail passed to the generator")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel block workers (0 = GOMAXPROCS)")
	flag.StringVar(&cfg.Out, "out", cfg.Out, "output directory")
	flag.BoolVar(&cfg.Preview, "preview", cfg.Preview, "write a top-down preview.png")
	flag.BoolVar(&cfg.Anvil, "anvil", cfg.Anvil, "also write Minecraft 1.8 Anvil region files")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flag.Parse()
	cfg.BlockSize = config.Vec3{X: *blockSize, Y: *blockSize, Z: *blockSize}

	level := new(slog.LevelVar)
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if err := loadConfig(ctx, cfg, *configPath, *presetName, explicit); err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}
	lvl, _ := cfg.Level()
	level.Set(lvl)

	if err := run(ctx, cfg, log); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("generation interrupted")
		} else {
			log.Error("generation failed", "error", err)
		}
		os.Exit(1)
	}
}

// loadConfig merges the config file or preset into cfg. Flags given on the
// command line win over file values.
func loadConfig(ctx context.Context, cfg *config.Config, configPath, presetName string, explicit map[string]bool) error {
	src := configPath
	switch {
	case configPath != "" && presetName != "":
		return errors.New("use either -config or -preset, not both")
	case presetName != "":
		src = presetName
	case configPath == "":
		return nil
	}

	tmp, err := os.MkdirTemp("", "voxelgen-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	path, err := preset.Fetch(ctx, src, tmp)
	if err != nil {
		return err
	}
	fromFile, err := config.Load(path)
	if err != nil {
		return err
	}
	config.Merge(cfg, fromFile, explicit)
	return nil
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	fields, err := cfg.FieldConfigs()
	if err != nil {
		return err
	}
	g, err := gen.New(cfg.Generator, cfg.Parameters(), gen.WithFieldConfigs(fields))
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.Out, log)
	if err != nil {
		return err
	}
	if err := store.SaveConfig(cfg); err != nil {
		return err
	}

	spec := region.Spec{
		Origin:    voxel.Vec3i{X: cfg.Origin.X, Y: cfg.Origin.Y, Z: cfg.Origin.Z},
		BlockSize: voxel.Vec3i{X: cfg.BlockSize.X, Y: cfg.BlockSize.Y, Z: cfg.BlockSize.Z},
		Blocks:    voxel.Vec3i{X: cfg.Blocks.X, Y: cfg.Blocks.Y, Z: cfg.Blocks.Z},
		LOD:       cfg.LOD,
		Workers:   cfg.Workers,
	}

	var world *anvil.World
	if cfg.Anvil {
		world = anvil.NewWorld()
	}

	start := time.Now()
	saved, dropped := 0, 0
	stats, err := region.Render(ctx, g, spec, func(b region.Block) error {
		// All-air blocks are not written; a missing file reads as air.
		if b.Buffer.IsEmpty() {
			return nil
		}
		if world != nil {
			dropped += world.AddBlock(b.Origin, b.Buffer)
		}
		h := storage.BlockHeader{
			Generator: cfg.Generator,
			Seed:      cfg.Seed,
			Origin:    b.Origin,
			LOD:       b.LOD,
		}
		if err := store.SaveBlock(h, b.Buffer); err != nil {
			return err
		}
		saved++
		return nil
	}, log)
	if err != nil {
		return err
	}

	ext := spec.Extent()
	cols := region.Columns(g, spec.Origin, ext.X, ext.Z)
	if cfg.Preview {
		path := filepath.Join(cfg.Out, "preview.png")
		if err := preview.WritePNG(path, preview.Render(cols)); err != nil {
			return err
		}
		log.Info("wrote preview", "path", path, "width", ext.X, "height", ext.Z)
	}

	if world != nil {
		for z, row := range cols.Columns {
			for x, c := range row {
				world.SetBiome(spec.Origin.X+x, spec.Origin.Z+z, c.Biome)
			}
		}
		if dropped > 0 {
			log.Warn("voxels outside the anvil height range were not exported", "voxels", dropped, "height", anvil.Height)
		}
		if err := store.SaveAnvil(world); err != nil {
			return err
		}
	}

	lo, hi := cols.HeightRange()
	biomes := cols.BiomeCounts()
	attrs := []any{
		"generator", cfg.Generator,
		"noise", cfg.Noise,
		"seed", cfg.Seed,
		"blocks", stats.Blocks,
		"saved", saved,
		"empty", stats.EmptyBlocks,
		"solid", stats.Solid,
		"surfaceMin", lo,
		"surfaceMax", hi,
		"elapsed", time.Since(start).Round(time.Millisecond),
	}
	for _, b := range gen.Biomes {
		attrs = append(attrs, b.String(), biomes[b])
	}
	log.Info("generation complete", attrs...)
	return nil
}
