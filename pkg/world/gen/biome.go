package gen

import (
	"fmt"

	"github.com/OCharnyshevich/voxelfun/pkg/world/voxel"
)

// Biome decides the near-surface materials of a column.
type Biome uint8

const (
	BiomeMeadow Biome = iota
	BiomeSnowyMeadow
	BiomeDesert
)

// Biomes lists every biome in declaration order.
var Biomes = []Biome{BiomeMeadow, BiomeSnowyMeadow, BiomeDesert}

func (b Biome) String() string {
	switch b {
	case BiomeMeadow:
		return "meadow"
	case BiomeSnowyMeadow:
		return "snowy_meadow"
	case BiomeDesert:
		return "desert"
	default:
		return fmt.Sprintf("Biome(%d)", uint8(b))
	}
}

const (
	coldTemperature = -0.4
	hotTemperature  = 0.4
)

// selectBiome classifies a column by its climate samples.
// Humidity does not take part in the decision yet.
func selectBiome(_, temperature float64) Biome {
	switch {
	case temperature < coldTemperature:
		return BiomeSnowyMeadow
	case temperature > hotTemperature:
		return BiomeDesert
	default:
		return BiomeMeadow
	}
}

// SurfaceBlock returns the material of the solid voxel at worldY in a column
// whose surface is at surfaceY.
func (b Biome) SurfaceBlock(worldY, surfaceY int) voxel.Type {
	depth := surfaceY - worldY
	switch b {
	case BiomeDesert:
		return desertSurface(depth)
	case BiomeSnowyMeadow:
		return grassySurface(depth, voxel.Snow)
	default:
		return grassySurface(depth, voxel.Grass)
	}
}
