package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/OCharnyshevich/voxelfun/pkg/noise"
	"github.com/OCharnyshevich/voxelfun/pkg/world/gen"
)

// Vec3 is an integer triple in configuration files.
type Vec3 struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	Z int `json:"z" yaml:"z"`
}

// Config holds the generator run configuration.
type Config struct {
	Seed           int64   `json:"seed" yaml:"seed"`
	HillHeight     float64 `json:"hill_height" yaml:"hill_height"`
	MountainHeight float64 `json:"mountain_height" yaml:"mountain_height"`
	MountainPower  float64 `json:"mountain_power" yaml:"mountain_power"`
	Generator      string  `json:"generator" yaml:"generator"` // "voxelfun" or "flat"
	Noise          string  `json:"noise" yaml:"noise"`         // "opensimplex" or "perlin"

	Origin    Vec3 `json:"origin" yaml:"origin"`         // world voxel origin of the first block
	BlockSize Vec3 `json:"block_size" yaml:"block_size"` // voxels per block
	Blocks    Vec3 `json:"blocks" yaml:"blocks"`         // block count along each axis
	LOD       int  `json:"lod" yaml:"lod"`
	Workers   int  `json:"workers" yaml:"workers"` // 0 = GOMAXPROCS

	Out      string `json:"out" yaml:"out"`
	Preview  bool   `json:"preview" yaml:"preview"`
	Anvil    bool   `json:"anvil" yaml:"anvil"` // also write Anvil region files
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	p := gen.DefaultParameters()
	return &Config{
		Seed:           p.Seed,
		HillHeight:     p.HillHeight,
		MountainHeight: p.MountainHeight,
		MountainPower:  p.MountainPower,
		Generator:      "voxelfun",
		Noise:          noise.KindOpenSimplex.String(),
		BlockSize:      Vec3{X: 16, Y: 16, Z: 16},
		Blocks:         Vec3{X: 8, Y: 8, Z: 8},
		Out:            "./out",
		Preview:        true,
		LogLevel:       "info",
	}
}

// Load reads a JSON or YAML config file, chosen by extension.
// Fields absent from the file keep their DefaultConfig values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported extension", path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["hill-height"] {
		cfg.HillHeight = fromFile.HillHeight
	}
	if !explicitFlags["mountain-height"] {
		cfg.MountainHeight = fromFile.MountainHeight
	}
	if !explicitFlags["mountain-power"] {
		cfg.MountainPower = fromFile.MountainPower
	}
	if !explicitFlags["generator"] {
		cfg.Generator = fromFile.Generator
	}
	if !explicitFlags["noise"] {
		cfg.Noise = fromFile.Noise
	}
	if !explicitFlags["origin-x"] {
		cfg.Origin.X = fromFile.Origin.X
	}
	if !explicitFlags["origin-y"] {
		cfg.Origin.Y = fromFile.Origin.Y
	}
	if !explicitFlags["origin-z"] {
		cfg.Origin.Z = fromFile.Origin.Z
	}
	if !explicitFlags["block-size"] {
		cfg.BlockSize = fromFile.BlockSize
	}
	if !explicitFlags["blocks-x"] {
		cfg.Blocks.X = fromFile.Blocks.X
	}
	if !explicitFlags["blocks-y"] {
		cfg.Blocks.Y = fromFile.Blocks.Y
	}
	if !explicitFlags["blocks-z"] {
		cfg.Blocks.Z = fromFile.Blocks.Z
	}
	if !explicitFlags["lod"] {
		cfg.LOD = fromFile.LOD
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["out"] {
		cfg.Out = fromFile.Out
	}
	if !explicitFlags["preview"] {
		cfg.Preview = fromFile.Preview
	}
	if !explicitFlags["anvil"] {
		cfg.Anvil = fromFile.Anvil
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
}

// Validate checks the run layout. Terrain shape parameters are not checked.
func (c *Config) Validate() error {
	var errs []error
	if c.Generator == "" {
		errs = append(errs, errors.New("generator must be set"))
	}
	if c.BlockSize.X <= 0 || c.BlockSize.Y <= 0 || c.BlockSize.Z <= 0 {
		errs = append(errs, fmt.Errorf("block_size must be positive, got %+v", c.BlockSize))
	}
	if c.Blocks.X <= 0 || c.Blocks.Y <= 0 || c.Blocks.Z <= 0 {
		errs = append(errs, fmt.Errorf("blocks must be positive, got %+v", c.Blocks))
	}
	if _, err := noise.ParseKind(c.Noise); err != nil {
		errs = append(errs, fmt.Errorf("noise: %w", err))
	}
	if c.LOD < 0 {
		errs = append(errs, fmt.Errorf("lod must be >= 0, got %d", c.LOD))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.Out == "" {
		errs = append(errs, errors.New("out must be set"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Parameters returns the terrain shape parameters of the config.
func (c *Config) Parameters() gen.Parameters {
	return gen.Parameters{
		HillHeight:     c.HillHeight,
		MountainHeight: c.MountainHeight,
		MountainPower:  c.MountainPower,
		Seed:           c.Seed,
	}
}

// FieldConfigs returns the stock noise field configuration with every field
// switched to the configured noise kind.
func (c *Config) FieldConfigs() (gen.FieldConfigs, error) {
	kind, err := noise.ParseKind(c.Noise)
	if err != nil {
		return gen.FieldConfigs{}, err
	}
	fc := gen.DefaultFieldConfigs()
	for _, f := range []*noise.Config{&fc.Hill, &fc.Mountain, &fc.Selector, &fc.Cave, &fc.Humidity, &fc.Temperature} {
		f.Kind = kind
	}
	return fc, nil
}

// Level parses LogLevel. An empty level is info.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
