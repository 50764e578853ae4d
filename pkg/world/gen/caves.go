package gen

const (
	// caveThreshold is the 3D noise value above which a cell is carved.
	caveThreshold = 0.6
	// mountainCaveSelector is the selector above which caves may open
	// through the surface cell.
	mountainCaveSelector = 0.4
)

// inCaveDomain reports whether gy is low enough in the column to be carved.
// Hill-leaning columns never lose their surface cell.
func inCaveDomain(gy, surfaceY int, selector float64) bool {
	if selector > mountainCaveSelector {
		return gy <= surfaceY
	}
	return gy < surfaceY
}

// isSolid reports whether the cell at gy is filled, given its cave noise.
func isSolid(gy, surfaceY int, selector, caveNoise float64) bool {
	if gy > surfaceY {
		return false
	}
	cave := inCaveDomain(gy, surfaceY, selector) && caveNoise > caveThreshold
	return !cave
}
