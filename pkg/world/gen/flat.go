package gen

import "github.com/OCharnyshevich/voxelfun/pkg/world/voxel"

// flatLayers are the superflat materials from y=0 upward.
var flatLayers = [...]voxel.Type{
	voxel.Bedrock,
	voxel.Stone,
	voxel.Stone,
	voxel.Dirt,
	voxel.Grass,
}

// FlatGenerator generates a classic superflat world:
// bedrock at y=0, stone y=1..2, dirt y=3, grass y=4.
type FlatGenerator struct{}

// NewFlatGenerator creates a FlatGenerator. The seed is ignored.
func NewFlatGenerator(_ int64) *FlatGenerator {
	return &FlatGenerator{}
}

func (g *FlatGenerator) GenerateBlock(req BlockRequest) Result {
	if req.Buffer == nil {
		return Result{}
	}
	size := req.Buffer.Size()
	for y := 0; y < size.Y; y++ {
		gy := req.Origin.Y + y
		if gy < 0 || gy >= len(flatLayers) {
			continue
		}
		for x := 0; x < size.X; x++ {
			for z := 0; z < size.Z; z++ {
				req.Buffer.SetVoxel(flatLayers[gy], x, y, z)
			}
		}
	}
	return Result{}
}

func (g *FlatGenerator) ColumnAt(_, _ int) Column {
	top := float64(len(flatLayers) - 1)
	return Column{HillY: top, MountainY: top, SurfaceY: len(flatLayers) - 1, Biome: BiomeMeadow}
}

func (g *FlatGenerator) HeightAt(_, _ int) int {
	return len(flatLayers) - 1 // top solid block is at y=4 (grass)
}

var _ BlockGenerator = (*FlatGenerator)(nil)
