package region

import (
	"github.com/OCharnyshevich/voxelfun/pkg/world/gen"
	"github.com/OCharnyshevich/voxelfun/pkg/world/voxel"
)

// ColumnMap is the column summary of a region seen from above,
// indexed [z][x] relative to Origin.
type ColumnMap struct {
	Origin  voxel.Vec3i
	Columns [][]gen.Column
}

// Columns samples g for every world column of an sizeX by sizeZ area.
func Columns(g gen.BlockGenerator, origin voxel.Vec3i, sizeX, sizeZ int) ColumnMap {
	cols := make([][]gen.Column, sizeZ)
	for z := range cols {
		row := make([]gen.Column, sizeX)
		for x := range row {
			row[x] = g.ColumnAt(origin.X+x, origin.Z+z)
		}
		cols[z] = row
	}
	return ColumnMap{Origin: origin, Columns: cols}
}

// BiomeCounts returns how many columns fall in each biome.
func (m ColumnMap) BiomeCounts() map[gen.Biome]int {
	counts := make(map[gen.Biome]int, len(gen.Biomes))
	for _, row := range m.Columns {
		for _, c := range row {
			counts[c.Biome]++
		}
	}
	return counts
}

// HeightRange returns the lowest and highest surface in the map.
func (m ColumnMap) HeightRange() (lo, hi int) {
	first := true
	for _, row := range m.Columns {
		for _, c := range row {
			if first {
				lo, hi = c.SurfaceY, c.SurfaceY
				first = false
				continue
			}
			lo = min(lo, c.SurfaceY)
			hi = max(hi, c.SurfaceY)
		}
	}
	return lo, hi
}
