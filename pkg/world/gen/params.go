package gen

// Parameters are the user-tunable shape parameters of the terrain generator.
// No range checks are made; extreme values give degenerate but valid terrain.
type Parameters struct {
	HillHeight     float64 `json:"hill_height"`
	MountainHeight float64 `json:"mountain_height"`
	MountainPower  float64 `json:"mountain_power"`
	Seed           int64   `json:"seed"`
}

// DefaultParameters returns the parameters a new generator starts with.
func DefaultParameters() Parameters {
	return Parameters{
		HillHeight:     24,
		MountainHeight: 48,
		MountainPower:  1.5,
	}
}

// SetHillHeight sets the height scale of the hill landform.
func (g *TerrainGenerator) SetHillHeight(h float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.params.HillHeight = h
}

// HillHeight returns the height scale of the hill landform.
func (g *TerrainGenerator) HillHeight() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.params.HillHeight
}

// SetMountainHeight sets the height scale of the mountain landform.
func (g *TerrainGenerator) SetMountainHeight(h float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.params.MountainHeight = h
}

// MountainHeight returns the height scale of the mountain landform.
func (g *TerrainGenerator) MountainHeight() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.params.MountainHeight
}

// SetMountainPower sets the exponent that sharpens mountain peaks.
func (g *TerrainGenerator) SetMountainPower(p float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.params.MountainPower = p
}

// MountainPower returns the exponent that sharpens mountain peaks.
func (g *TerrainGenerator) MountainPower() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.params.MountainPower
}

// SetSeed stores the seed and reseeds all noise fields in one step.
func (g *TerrainGenerator) SetSeed(seed int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.params.Seed = seed
	g.fields = g.source(seed)
}

// Seed returns the current seed.
func (g *TerrainGenerator) Seed() int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.params.Seed
}

// Parameters returns a consistent copy of all parameters.
func (g *TerrainGenerator) Parameters() Parameters {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.params
}

// SetParameters replaces all parameters at once, reseeding if the seed changed.
func (g *TerrainGenerator) SetParameters(p Parameters) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p.Seed != g.params.Seed {
		g.fields = g.source(p.Seed)
	}
	g.params = p
}
