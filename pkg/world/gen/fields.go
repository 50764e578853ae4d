package gen

import "github.com/OCharnyshevich/voxelfun/pkg/noise"

// Sampler is a deterministic coherent-noise field returning values in [-1, 1].
type Sampler interface {
	Sample2D(x, z float64) float64
	Sample3D(x, y, z float64) float64
}

// Fields are the six noise fields terrain is composed from.
// A Fields value is never mutated once handed to a generator.
type Fields struct {
	Hill        Sampler
	Mountain    Sampler
	Selector    Sampler
	Cave        Sampler
	Humidity    Sampler
	Temperature Sampler
}

// FieldSource builds the six fields for a seed.
type FieldSource func(seed int64) Fields

// FieldConfigs configures each of the six noise fields.
type FieldConfigs struct {
	Hill        noise.Config
	Mountain    noise.Config
	Selector    noise.Config
	Cave        noise.Config
	Humidity    noise.Config
	Temperature noise.Config
}

// DefaultFieldConfigs returns the stock field configuration.
func DefaultFieldConfigs() FieldConfigs {
	climate := noise.Config{
		Kind:             noise.KindOpenSimplex,
		Period:           2048,
		Octaves:          2,
		Lacunarity:       80,
		Gain:             0.1,
		WeightedStrength: 2.5,
	}
	return FieldConfigs{
		Hill:        noise.DefaultConfig(128),
		Mountain:    noise.DefaultConfig(192),
		Selector:    noise.DefaultConfig(1024),
		Cave:        noise.DefaultConfig(128),
		Humidity:    climate,
		Temperature: climate,
	}
}

// NoiseSource returns a FieldSource that seeds every field with the same seed.
func NoiseSource(cfg FieldConfigs) FieldSource {
	return func(seed int64) Fields {
		return Fields{
			Hill:        noise.New(cfg.Hill, seed),
			Mountain:    noise.New(cfg.Mountain, seed),
			Selector:    noise.New(cfg.Selector, seed),
			Cave:        noise.New(cfg.Cave, seed),
			Humidity:    noise.New(cfg.Humidity, seed),
			Temperature: noise.New(cfg.Temperature, seed),
		}
	}
}
