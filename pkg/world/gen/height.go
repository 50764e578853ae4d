package gen

import "math"

const (
	selectorScale  = 0.5
	selectorOffset = 0.3
)

// hillHeight maps hill noise in [-1, 1] to a rolling height in [0, 2*hillHeight].
func hillHeight(n float64, p Parameters) float64 {
	return (n + 1) * p.HillHeight
}

// mountainHeight sharpens mountain noise by MountainPower and lifts the floor
// by half the mountain height.
func mountainHeight(n float64, p Parameters) float64 {
	base := max(n+1, 0)
	return math.Pow(base, p.MountainPower)*p.MountainHeight + p.MountainHeight/2
}

// blendSelector maps selector noise to a hill->mountain weight in [0, 1].
// The offset biases the landscape toward hills.
func blendSelector(n float64) float64 {
	return max(0, min(1, n*selectorScale+selectorOffset))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// surfaceHeight is the topmost solid voxel height of a column.
func surfaceHeight(hillY, mountainY, selector float64) int {
	return int(math.Floor(lerp(hillY, mountainY, selector)))
}
