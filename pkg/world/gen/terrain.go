package gen

import "sync"

// Column is the terrain summary of one world (x, z) column.
type Column struct {
	HillY     float64
	MountainY float64
	Selector  float64
	SurfaceY  int
	Biome     Biome
}

// TerrainGenerator blends rolling hills and mountains through a selector
// field, carves cheese caves below the surface and layers biome materials on
// top.
//
// Parameters and noise fields change together under one lock; every
// GenerateBlock call works on a single snapshot of both.
type TerrainGenerator struct {
	mu     sync.RWMutex
	params Parameters
	fields Fields
	source FieldSource
}

// Option customizes a TerrainGenerator.
type Option func(*TerrainGenerator)

// WithFieldSource replaces the noise fields the generator samples.
func WithFieldSource(src FieldSource) Option {
	return func(g *TerrainGenerator) {
		g.source = src
	}
}

// WithFieldConfigs builds the noise fields from cfg instead of the defaults.
func WithFieldConfigs(cfg FieldConfigs) Option {
	return WithFieldSource(NoiseSource(cfg))
}

// NewTerrainGenerator creates a generator with parameters p.
func NewTerrainGenerator(p Parameters, opts ...Option) *TerrainGenerator {
	g := &TerrainGenerator{
		params: p,
		source: NoiseSource(DefaultFieldConfigs()),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.fields = g.source(p.Seed)
	return g
}

func (g *TerrainGenerator) snapshot() (Parameters, Fields) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.params, g.fields
}

// GenerateBlock fills req.Buffer with the terrain at req.Origin.
//
// Noise is always sampled at world coordinates, so the output does not
// depend on block boundaries or req.LOD.
func (g *TerrainGenerator) GenerateBlock(req BlockRequest) Result {
	if req.Buffer == nil {
		return Result{}
	}
	p, f := g.snapshot()

	origin := req.Origin
	size := req.Buffer.Size()

	for x := 0; x < size.X; x++ {
		gx := origin.X + x
		for z := 0; z < size.Z; z++ {
			gz := origin.Z + z
			col := column(f, p, gx, gz)
			for y := 0; y < size.Y; y++ {
				gy := origin.Y + y
				if gy > col.SurfaceY {
					break
				}
				var cave float64
				if inCaveDomain(gy, col.SurfaceY, col.Selector) {
					cave = f.Cave.Sample3D(float64(gx), float64(gy), float64(gz))
				}
				if !isSolid(gy, col.SurfaceY, col.Selector, cave) {
					continue
				}
				req.Buffer.SetVoxel(col.Biome.SurfaceBlock(gy, col.SurfaceY), x, y, z)
			}
		}
	}
	return Result{}
}

// ColumnAt returns the column summary at world (gx, gz).
func (g *TerrainGenerator) ColumnAt(gx, gz int) Column {
	p, f := g.snapshot()
	return column(f, p, gx, gz)
}

// HeightAt returns the surface height at world (gx, gz).
func (g *TerrainGenerator) HeightAt(gx, gz int) int {
	return g.ColumnAt(gx, gz).SurfaceY
}

func column(f Fields, p Parameters, gx, gz int) Column {
	x, z := float64(gx), float64(gz)

	hillY := hillHeight(f.Hill.Sample2D(x, z), p)
	mountainY := mountainHeight(f.Mountain.Sample2D(x, z), p)
	selector := blendSelector(f.Selector.Sample2D(x, z))

	return Column{
		HillY:     hillY,
		MountainY: mountainY,
		Selector:  selector,
		SurfaceY:  surfaceHeight(hillY, mountainY, selector),
		Biome:     selectBiome(f.Humidity.Sample2D(x, z), f.Temperature.Sample2D(x, z)),
	}
}

var _ BlockGenerator = (*TerrainGenerator)(nil)
