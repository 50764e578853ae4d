package anvil

import (
	"fmt"
	"sort"
	"sync"

	"github.com/OCharnyshevich/voxelfun/pkg/world/gen"
	"github.com/OCharnyshevich/voxelfun/pkg/world/voxel"
)

// World collects generated blocks into chunk columns for export.
// It is safe for concurrent use.
type World struct {
	mu     sync.Mutex
	chunks map[ChunkPos]*Chunk
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{chunks: make(map[ChunkPos]*Chunk)}
}

func (w *World) chunk(pos ChunkPos) *Chunk {
	c, ok := w.chunks[pos]
	if !ok {
		c = NewChunk(pos)
		w.chunks[pos] = c
	}
	return c
}

// AddBlock copies the voxels of buf, whose first cell sits at world origin,
// into the world. It returns how many non-air voxels fell outside
// 0 <= y < Height and were dropped.
func (w *World) AddBlock(origin voxel.Vec3i, buf *voxel.Buffer) int {
	if buf.IsEmpty() {
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	size := buf.Size()
	dropped := 0
	for z := 0; z < size.Z; z++ {
		gz := origin.Z + z
		for x := 0; x < size.X; x++ {
			gx := origin.X + x
			c := w.chunk(chunkPosOf(gx, gz))
			for y := 0; y < size.Y; y++ {
				t := buf.Voxel(x, y, z)
				if t == voxel.Air {
					continue
				}
				gy := origin.Y + y
				if gy < 0 || gy >= Height {
					dropped++
					continue
				}
				c.SetVoxel(t, gx&15, gy, gz&15)
			}
		}
	}
	return dropped
}

// SetBiome records the biome of world column (gx, gz).
func (w *World) SetBiome(gx, gz int, b gen.Biome) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.chunk(chunkPosOf(gx, gz)).SetBiome(gx&15, gz&15, BiomeID(b))
}

// Chunk returns the chunk at pos, or nil if nothing was written there.
func (w *World) Chunk(pos ChunkPos) *Chunk {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chunks[pos]
}

// Len returns the number of chunks held.
func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.chunks)
}

// Save writes every chunk into region files under dir and returns the
// region positions written, sorted.
func (w *World) Save(dir string) ([]RegionPos, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	byRegion := make(map[RegionPos]map[ChunkPos][]byte)
	for pos, c := range w.chunks {
		data, err := c.EncodeNBT()
		if err != nil {
			return nil, fmt.Errorf("encode chunk (%d,%d): %w", pos.X, pos.Z, err)
		}
		r := regionPosOf(pos)
		if byRegion[r] == nil {
			byRegion[r] = make(map[ChunkPos][]byte)
		}
		byRegion[r][pos] = data
	}

	regions := make([]RegionPos, 0, len(byRegion))
	for r := range byRegion {
		regions = append(regions, r)
	}
	sort.Slice(regions, func(i, j int) bool {
		if regions[i].X != regions[j].X {
			return regions[i].X < regions[j].X
		}
		return regions[i].Z < regions[j].Z
	})

	for _, r := range regions {
		if err := SaveRegion(dir, r, byRegion[r]); err != nil {
			return nil, err
		}
	}
	return regions, nil
}
