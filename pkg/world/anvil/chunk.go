// Package anvil exports generated voxels as Minecraft 1.8 Anvil region files.
package anvil

import (
	"bytes"

	"github.com/OCharnyshevich/voxelfun/pkg/world/gen"
	"github.com/OCharnyshevich/voxelfun/pkg/world/nbt"
	"github.com/OCharnyshevich/voxelfun/pkg/world/voxel"
)

const (
	// Height is the world height of an Anvil chunk column.
	Height       = 256
	sectionCount = Height / 16
	sectionSize  = 16 * 16 * 16
)

// Biome IDs of the 1.8 format.
const (
	biomePlains    byte = 1
	biomeDesert    byte = 2
	biomeIcePlains byte = 12
)

// BiomeID maps a terrain biome to its Anvil biome ID.
func BiomeID(b gen.Biome) byte {
	switch b {
	case gen.BiomeDesert:
		return biomeDesert
	case gen.BiomeSnowyMeadow:
		return biomeIcePlains
	default:
		return biomePlains
	}
}

// ChunkPos identifies a 16x16 chunk column.
type ChunkPos struct {
	X, Z int
}

// chunkPosOf returns the chunk holding world column (gx, gz).
func chunkPosOf(gx, gz int) ChunkPos {
	return ChunkPos{X: gx >> 4, Z: gz >> 4}
}

// Chunk is one 16x256x16 column. Sections are allocated on first write.
type Chunk struct {
	Pos      ChunkPos
	sections [sectionCount]*[sectionSize]voxel.Type
	biomes   [256]byte
}

// NewChunk creates an empty chunk with plains biome everywhere.
func NewChunk(pos ChunkPos) *Chunk {
	c := &Chunk{Pos: pos}
	for i := range c.biomes {
		c.biomes[i] = biomePlains
	}
	return c
}

// sectionIndex is the in-section index: y*256 + z*16 + x.
func sectionIndex(lx, ly, lz int) int {
	return ly<<8 | lz<<4 | lx
}

// SetVoxel sets the voxel at chunk-local (lx, lz) and world y. Writes outside
// 0 <= y < Height are ignored.
func (c *Chunk) SetVoxel(t voxel.Type, lx, y, lz int) {
	if y < 0 || y >= Height {
		return
	}
	sec := c.sections[y>>4]
	if sec == nil {
		if t == voxel.Air {
			return
		}
		sec = new([sectionSize]voxel.Type)
		c.sections[y>>4] = sec
	}
	sec[sectionIndex(lx, y&15, lz)] = t
}

// Voxel returns the voxel at chunk-local (lx, lz) and world y.
func (c *Chunk) Voxel(lx, y, lz int) voxel.Type {
	if y < 0 || y >= Height {
		return voxel.Air
	}
	sec := c.sections[y>>4]
	if sec == nil {
		return voxel.Air
	}
	return sec[sectionIndex(lx, y&15, lz)]
}

// SetBiome sets the biome of chunk-local column (lx, lz).
func (c *Chunk) SetBiome(lx, lz int, id byte) {
	c.biomes[lz<<4|lx] = id
}

// HeightMap returns, per column, one above the highest non-air voxel.
func (c *Chunk) HeightMap() []int32 {
	hm := make([]int32, 256)
	for lz := 0; lz < 16; lz++ {
		for lx := 0; lx < 16; lx++ {
			for y := Height - 1; y >= 0; y-- {
				if c.Voxel(lx, y, lz) != voxel.Air {
					hm[lz<<4|lx] = int32(y + 1)
					break
				}
			}
		}
	}
	return hm
}

// EncodeNBT encodes the chunk as an uncompressed 1.8 chunk NBT document.
// Every voxel type is written as a block ID with metadata 0; IDs above 255
// spill their high bits into the Add array.
func (c *Chunk) EncodeNBT() ([]byte, error) {
	var buf bytes.Buffer
	w := nbt.NewWriter(&buf)

	w.Compound("")
	w.Compound("Level")
	w.Int("xPos", int32(c.Pos.X))
	w.Int("zPos", int32(c.Pos.Z))
	w.Byte("TerrainPopulated", 1)
	w.Byte("LightPopulated", 1)
	w.Long("LastUpdate", 0)

	n := 0
	for _, sec := range c.sections {
		if sec != nil {
			n++
		}
	}
	w.List("Sections", nbt.TagCompound, n)

	fullLight := bytes.Repeat([]byte{0xFF}, sectionSize/2)
	noData := make([]byte, sectionSize/2)
	for y, sec := range c.sections {
		if sec == nil {
			continue
		}
		blocks := make([]byte, sectionSize)
		var add []byte
		for i, t := range sec {
			blocks[i] = byte(t)
			if t > 0xFF {
				if add == nil {
					add = make([]byte, sectionSize/2)
				}
				setNibble(add, i, byte(t>>8))
			}
		}

		w.Byte("Y", byte(y))
		w.ByteArray("Blocks", blocks)
		if add != nil {
			w.ByteArray("Add", add)
		}
		w.ByteArray("Data", noData)
		w.ByteArray("BlockLight", fullLight)
		w.ByteArray("SkyLight", fullLight)
		w.End()
	}

	w.ByteArray("Biomes", c.biomes[:])
	w.IntArray("HeightMap", c.HeightMap())
	w.End() // Level
	w.End() // root

	if err := w.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// setNibble sets the 4-bit value at index in a nibble array.
func setNibble(arr []byte, index int, val byte) {
	i := index / 2
	if index%2 == 0 {
		arr[i] = (arr[i] & 0xF0) | (val & 0x0F)
	} else {
		arr[i] = (arr[i] & 0x0F) | ((val & 0x0F) << 4)
	}
}
