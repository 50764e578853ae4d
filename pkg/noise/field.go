// Package noise provides seedable coherent-noise fields with fractal layering.
// Output of every field is in the range [-1, 1].
package noise

import (
	"fmt"

	perlin "github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Kind selects the base noise algorithm of a Field.
type Kind uint8

const (
	KindOpenSimplex Kind = iota
	KindPerlin
)

func (k Kind) String() string {
	switch k {
	case KindOpenSimplex:
		return "opensimplex"
	case KindPerlin:
		return "perlin"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind maps a kind name to a Kind. The empty string selects OpenSimplex.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "", "opensimplex":
		return KindOpenSimplex, nil
	case "perlin":
		return KindPerlin, nil
	default:
		return 0, fmt.Errorf("unknown noise kind %q", name)
	}
}

// Config describes the shape of a noise field.
type Config struct {
	Kind Kind
	// Period is the spatial wavelength of the first octave in world units.
	Period float64
	// Octaves <= 1 disables fractal layering.
	Octaves          int
	Lacunarity       float64
	Gain             float64
	WeightedStrength float64
}

// DefaultConfig returns an FBm configuration with three octaves at the given period.
func DefaultConfig(period float64) Config {
	return Config{
		Kind:       KindOpenSimplex,
		Period:     period,
		Octaves:    3,
		Lacunarity: 2,
		Gain:       0.5,
	}
}

// source is a single-octave base noise.
type source interface {
	Eval2(x, y float64) float64
	Eval3(x, y, z float64) float64
}

type perlinSource struct {
	p *perlin.Perlin
}

func (s perlinSource) Eval2(x, y float64) float64    { return s.p.Noise2D(x, y) }
func (s perlinSource) Eval3(x, y, z float64) float64 { return s.p.Noise3D(x, y, z) }

// Field is a deterministic, seeded coherent-noise field.
//
// Sampling is safe for concurrent use. Configure and SetSeed are not and must
// not run concurrently with sampling.
type Field struct {
	cfg      Config
	seed     int64
	octaves  []source
	bounding float64
}

// New creates a Field with the given configuration and seed.
func New(cfg Config, seed int64) *Field {
	f := &Field{cfg: cfg, seed: seed}
	f.rebuild()
	return f
}

// Configure replaces the field configuration, keeping the current seed.
func (f *Field) Configure(cfg Config) {
	f.cfg = cfg
	f.rebuild()
}

// SetSeed reseeds every octave of the field.
func (f *Field) SetSeed(seed int64) {
	f.seed = seed
	f.rebuild()
}

// Seed returns the seed the field was last seeded with.
func (f *Field) Seed() int64 { return f.seed }

// Config returns the field configuration.
func (f *Field) Config() Config { return f.cfg }

func (f *Field) rebuild() {
	n := f.cfg.Octaves
	if n < 1 {
		n = 1
	}
	f.octaves = make([]source, n)
	for i := range f.octaves {
		// Each octave gets its own seed so layers are decorrelated.
		seed := f.seed + int64(i)
		switch f.cfg.Kind {
		case KindPerlin:
			f.octaves[i] = perlinSource{p: perlin.NewPerlin(2, 2, 1, seed)}
		default:
			f.octaves[i] = opensimplex.New(seed)
		}
	}
	f.bounding = fractalBounding(n, f.cfg.Gain)
}

// fractalBounding normalizes the amplitude sum of all octaves to 1.
func fractalBounding(octaves int, gain float64) float64 {
	if gain < 0 {
		gain = -gain
	}
	amp := gain
	total := 1.0
	for i := 1; i < octaves; i++ {
		total += amp
		amp *= gain
	}
	return 1 / total
}

func (f *Field) frequency() float64 {
	if f.cfg.Period == 0 {
		return 1
	}
	return 1 / f.cfg.Period
}

// Sample2D returns the field value at (x, z).
func (f *Field) Sample2D(x, z float64) float64 {
	freq := f.frequency()
	x *= freq
	z *= freq
	if len(f.octaves) == 1 {
		return clamp(f.octaves[0].Eval2(x, z))
	}

	var sum float64
	amp := f.bounding
	for _, o := range f.octaves {
		n := o.Eval2(x, z)
		sum += n * amp
		amp *= weight(n, f.cfg.WeightedStrength)
		amp *= f.cfg.Gain
		x *= f.cfg.Lacunarity
		z *= f.cfg.Lacunarity
	}
	return clamp(sum)
}

// Sample3D returns the field value at (x, y, z).
func (f *Field) Sample3D(x, y, z float64) float64 {
	freq := f.frequency()
	x *= freq
	y *= freq
	z *= freq
	if len(f.octaves) == 1 {
		return clamp(f.octaves[0].Eval3(x, y, z))
	}

	var sum float64
	amp := f.bounding
	for _, o := range f.octaves {
		n := o.Eval3(x, y, z)
		sum += n * amp
		amp *= weight(n, f.cfg.WeightedStrength)
		amp *= f.cfg.Gain
		x *= f.cfg.Lacunarity
		y *= f.cfg.Lacunarity
		z *= f.cfg.Lacunarity
	}
	return clamp(sum)
}

// weight damps the next octave where the current one is low.
func weight(n, strength float64) float64 {
	if strength == 0 {
		return 1
	}
	w := min(n+1, 2) * 0.5
	return 1 + (w-1)*strength
}

func clamp(v float64) float64 {
	return max(-1, min(1, v))
}
