package gen

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/OCharnyshevich/voxelfun/pkg/world/voxel"
)

// VoxelBuffer is the block-local voxel grid a generator writes into.
// Cells that are not written keep their previous value.
type VoxelBuffer interface {
	Size() voxel.Vec3i
	SetVoxel(t voxel.Type, x, y, z int)
}

// BlockRequest asks a generator to fill Buffer with the terrain found at
// Origin, in world voxel coordinates.
type BlockRequest struct {
	Origin voxel.Vec3i
	LOD    int
	Buffer VoxelBuffer
}

// Result signals completion of a block request. It carries no data.
type Result struct{}

// BlockGenerator produces terrain blocks deterministically from a seed.
// Implementations are safe for concurrent use.
type BlockGenerator interface {
	GenerateBlock(req BlockRequest) Result
	ColumnAt(gx, gz int) Column
	HeightAt(gx, gz int) int
}

// Factory builds a generator from a parameter set. Generators without noise
// fields ignore opts.
type Factory func(p Parameters, opts ...Option) BlockGenerator

// ErrUnknownGenerator is returned by New for unregistered names.
var ErrUnknownGenerator = errors.New("unknown generator")

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func init() {
	Register("voxelfun", func(p Parameters, opts ...Option) BlockGenerator {
		return NewTerrainGenerator(p, opts...)
	})
	Register("flat", func(p Parameters, _ ...Option) BlockGenerator {
		return NewFlatGenerator(p.Seed)
	})
}

// Register makes a generator available under name, replacing any previous one.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// New builds the generator registered under name, passing opts to its factory.
func New(name string, p Parameters, opts ...Option) (BlockGenerator, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGenerator, name)
	}
	return f(p, opts...), nil
}

// Registered returns the sorted names of all registered generators.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
