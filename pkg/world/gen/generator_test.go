package gen

import (
	"errors"
	"slices"
	"testing"

	"github.com/OCharnyshevich/voxelfun/pkg/noise"
	"github.com/OCharnyshevich/voxelfun/pkg/world/voxel"
)

func TestNewUnknownGenerator(t *testing.T) {
	_, err := New("nonexistent-generator", DefaultParameters())
	if err == nil {
		t.Fatal("expected error for unknown generator, got nil")
	}
	if !errors.Is(err, ErrUnknownGenerator) {
		t.Fatalf("error = %v, want ErrUnknownGenerator", err)
	}
}

func TestBuiltinGenerators(t *testing.T) {
	p := DefaultParameters()
	p.Seed = 11

	g, err := New("voxelfun", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tg, ok := g.(*TerrainGenerator)
	if !ok {
		t.Fatalf("voxelfun generator is %T, want *TerrainGenerator", g)
	}
	if got := tg.Parameters(); got != p {
		t.Fatalf("Parameters() = %+v, want %+v", got, p)
	}

	flat, err := New("flat", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := flat.(*FlatGenerator); !ok {
		t.Fatalf("flat generator is %T, want *FlatGenerator", flat)
	}
}

func TestRegisterAndNew(t *testing.T) {
	called := false
	Register("test-generator", func(p Parameters, _ ...Option) BlockGenerator {
		called = true
		return NewFlatGenerator(p.Seed)
	})

	g, err := New("test-generator", DefaultParameters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g == nil {
		t.Fatal("expected non-nil generator")
	}
	if !called {
		t.Fatal("factory function was not called")
	}

	if names := Registered(); !slices.Contains(names, "test-generator") {
		t.Fatalf("expected 'test-generator' in registered generators, got %v", names)
	}
}

func perlinFieldConfigs() FieldConfigs {
	fc := DefaultFieldConfigs()
	for _, c := range []*noise.Config{&fc.Hill, &fc.Mountain, &fc.Selector, &fc.Cave, &fc.Humidity, &fc.Temperature} {
		c.Kind = noise.KindPerlin
	}
	return fc
}

func TestNewForwardsOptions(t *testing.T) {
	p := DefaultParameters()
	p.Seed = 99

	base, err := New("voxelfun", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	perlinA, err := New("voxelfun", p, WithFieldConfigs(perlinFieldConfigs()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	perlinB, err := New("voxelfun", p, WithFieldConfigs(perlinFieldConfigs()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	origin := voxel.Vec3i{X: 37, Y: 0, Z: -91}
	size := voxel.Vec3i{X: 16, Y: 96, Z: 16}
	a := generate(perlinA, origin, size, 0)
	if !a.Equal(generate(perlinB, origin, size, 0)) {
		t.Fatal("perlin-configured generators with the same seed differ")
	}
	if a.Equal(generate(base, origin, size, 0)) {
		t.Fatal("perlin-configured generator matches the default opensimplex terrain")
	}

	differ := false
	for x := 0; x < 16 && !differ; x++ {
		for z := 0; z < 16; z++ {
			if perlinA.HeightAt(origin.X+x, origin.Z+z) != base.HeightAt(origin.X+x, origin.Z+z) {
				differ = true
				break
			}
		}
	}
	if !differ {
		t.Fatal("perlin and opensimplex surfaces are identical over a whole block")
	}

	// Options are ignored by generators without noise fields.
	flat, err := New("flat", p, WithFieldConfigs(perlinFieldConfigs()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h := flat.HeightAt(0, 0); h != 4 {
		t.Errorf("flat HeightAt = %d, want 4", h)
	}
}
