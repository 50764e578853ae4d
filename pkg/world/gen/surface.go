package gen

import "github.com/OCharnyshevich/voxelfun/pkg/world/voxel"

const (
	soilDepth      = 3 // dirt cells below a grassy top
	sandDepth      = 4
	sandstoneDepth = 2
)

// grassySurface places top on the surface cell with dirt below it.
func grassySurface(depth int, top voxel.Type) voxel.Type {
	switch {
	case depth <= 0:
		return top
	case depth <= soilDepth:
		return voxel.Dirt
	default:
		return voxel.Stone
	}
}

// desertSurface places sand on top, sandstone below.
func desertSurface(depth int) voxel.Type {
	switch {
	case depth < sandDepth:
		return voxel.Sand
	case depth < sandDepth+sandstoneDepth:
		return voxel.Sandstone
	default:
		return voxel.Stone
	}
}
