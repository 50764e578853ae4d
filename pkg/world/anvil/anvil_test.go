package anvil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/OCharnyshevich/voxelfun/pkg/world/gen"
	"github.com/OCharnyshevich/voxelfun/pkg/world/nbt"
	"github.com/OCharnyshevich/voxelfun/pkg/world/voxel"
)

func TestSetNibble(t *testing.T) {
	arr := make([]byte, 4)

	// Even index: low nibble.
	setNibble(arr, 0, 0x0A)
	if arr[0] != 0x0A {
		t.Fatalf("expected 0x0A, got 0x%02X", arr[0])
	}

	// Odd index: high nibble.
	setNibble(arr, 1, 0x0B)
	if arr[0] != 0xBA {
		t.Fatalf("expected 0xBA, got 0x%02X", arr[0])
	}

	setNibble(arr, 4, 0x03)
	setNibble(arr, 5, 0x07)
	if arr[2] != 0x73 {
		t.Fatalf("expected 0x73, got 0x%02X", arr[2])
	}
}

func TestChunkPosOf(t *testing.T) {
	tests := []struct {
		gx, gz int
		want   ChunkPos
	}{
		{0, 0, ChunkPos{0, 0}},
		{15, 16, ChunkPos{0, 1}},
		{-1, -16, ChunkPos{-1, -1}},
		{-17, 33, ChunkPos{-2, 2}},
	}
	for _, tt := range tests {
		if got := chunkPosOf(tt.gx, tt.gz); got != tt.want {
			t.Errorf("chunkPosOf(%d, %d) = %v, want %v", tt.gx, tt.gz, got, tt.want)
		}
	}
	if got := regionPosOf(ChunkPos{-1, 32}); got != (RegionPos{-1, 1}) {
		t.Errorf("regionPosOf = %v, want {-1 1}", got)
	}
}

func TestChunkHeightMap(t *testing.T) {
	c := NewChunk(ChunkPos{})
	c.SetVoxel(voxel.Stone, 0, 64, 0)
	c.SetVoxel(voxel.Grass, 5, 100, 5)
	c.SetVoxel(voxel.Stone, 6, 300, 6) // above the world, ignored

	hm := c.HeightMap()
	if hm[0] != 65 {
		t.Fatalf("expected heightmap[0]=65, got %d", hm[0])
	}
	if hm[5*16+5] != 101 {
		t.Fatalf("expected heightmap[85]=101, got %d", hm[5*16+5])
	}
	if hm[6*16+6] != 0 {
		t.Fatalf("expected heightmap[102]=0, got %d", hm[6*16+6])
	}
}

func intTag(name string, v int32) []byte {
	b := []byte{nbt.TagInt, 0, byte(len(name))}
	b = append(b, name...)
	return binary.BigEndian.AppendUint32(b, uint32(v))
}

func TestEncodeNBT(t *testing.T) {
	c := NewChunk(ChunkPos{X: -3, Z: 7})
	c.SetVoxel(voxel.Stone, 0, 0, 0)
	c.SetVoxel(voxel.Grass, 1, 64, 1)
	c.SetBiome(1, 1, BiomeID(gen.BiomeDesert))

	data, err := c.EncodeNBT()
	if err != nil {
		t.Fatalf("EncodeNBT failed: %v", err)
	}
	if data[0] != nbt.TagCompound {
		t.Fatalf("expected root compound tag, got %d", data[0])
	}
	if data[len(data)-1] != nbt.TagEnd || data[len(data)-2] != nbt.TagEnd {
		t.Fatal("expected two End tags at end of NBT")
	}
	if !bytes.Contains(data, intTag("xPos", -3)) || !bytes.Contains(data, intTag("zPos", 7)) {
		t.Fatal("chunk position tags missing")
	}

	// Two sections (y=0 and y=64), no Add array.
	list := append([]byte{nbt.TagList, 0, 8}, "Sections"...)
	list = append(list, nbt.TagCompound, 0, 0, 0, 2)
	if !bytes.Contains(data, list) {
		t.Fatal("expected a Sections list of two compounds")
	}
	if bytes.Contains(data, []byte("Add")) {
		t.Fatal("unexpected Add array for block IDs below 256")
	}
}

func TestEncodeNBTWithHighBlockID(t *testing.T) {
	c := NewChunk(ChunkPos{})
	c.SetVoxel(voxel.Type(300), 0, 0, 0)

	data, err := c.EncodeNBT()
	if err != nil {
		t.Fatalf("EncodeNBT failed: %v", err)
	}
	if !bytes.Contains(data, []byte("Add")) {
		t.Fatal("expected Add array for block ID > 255")
	}
}

func TestWorldAddBlock(t *testing.T) {
	w := NewWorld()
	buf := voxel.NewBuffer(voxel.Vec3i{X: 4, Y: 4, Z: 4})
	buf.SetVoxel(voxel.Stone, 0, 0, 0) // world (-2, -1, 14): below the world
	buf.SetVoxel(voxel.Dirt, 1, 1, 1)  // world (-1, 0, 15)
	buf.SetVoxel(voxel.Grass, 3, 3, 3) // world (1, 2, 17)

	if dropped := w.AddBlock(voxel.Vec3i{X: -2, Y: -1, Z: 14}, buf); dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}
	if got := w.Chunk(ChunkPos{X: -1, Z: 0}).Voxel(15, 0, 15); got != voxel.Dirt {
		t.Errorf("voxel at (-1,0,15) = %s, want dirt", got)
	}
	if got := w.Chunk(ChunkPos{X: 0, Z: 1}).Voxel(1, 2, 1); got != voxel.Grass {
		t.Errorf("voxel at (1,2,17) = %s, want grass", got)
	}

	if w.AddBlock(voxel.Vec3i{X: 1000}, voxel.NewBuffer(voxel.Vec3i{X: 16, Y: 16, Z: 16})) != 0 {
		t.Error("empty block reported dropped voxels")
	}
	if w.Chunk(ChunkPos{X: 1000 >> 4}) != nil {
		t.Error("empty block created a chunk")
	}
}

func TestWorldSaveAndReadChunk(t *testing.T) {
	dir := t.TempDir()
	w := NewWorld()

	buf := voxel.NewBuffer(voxel.Vec3i{X: 16, Y: 8, Z: 16})
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			buf.SetVoxel(voxel.Stone, x, 0, z)
			buf.SetVoxel(voxel.Snow, x, 1, z)
		}
	}
	// One chunk in region (0,0), one in region (-1,0).
	w.AddBlock(voxel.Vec3i{X: 0, Y: 60, Z: 0}, buf)
	w.AddBlock(voxel.Vec3i{X: -16, Y: 60, Z: 0}, buf)
	w.SetBiome(3, 4, gen.BiomeSnowyMeadow)

	regions, err := w.Save(dir)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(regions) != 2 || regions[0] != (RegionPos{-1, 0}) || regions[1] != (RegionPos{0, 0}) {
		t.Fatalf("regions = %v, want [{-1 0} {0 0}]", regions)
	}

	path := RegionPath(dir, RegionPos{0, 0})
	got, err := ReadChunk(path, ChunkPos{0, 0})
	if err != nil {
		t.Fatalf("ReadChunk: %v", err)
	}
	want, err := w.Chunk(ChunkPos{0, 0}).EncodeNBT()
	if err != nil {
		t.Fatalf("EncodeNBT: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("read back %d bytes, want the %d encoded bytes", len(got), len(want))
	}

	missing, err := ReadChunk(path, ChunkPos{5, 5})
	if err != nil || missing != nil {
		t.Fatalf("absent chunk = %d bytes, err %v; want nil, nil", len(missing), err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size()%sectorSize != 0 {
		t.Errorf("region size %d is not sector aligned", fi.Size())
	}
	if _, err := os.Stat(filepath.Join(dir, "r.-1.0.mca")); err != nil {
		t.Errorf("second region file missing: %v", err)
	}
}

func TestSaveRegionRejectsForeignChunk(t *testing.T) {
	err := SaveRegion(t.TempDir(), RegionPos{0, 0}, map[ChunkPos][]byte{{X: 40, Z: 0}: {0}})
	if err == nil {
		t.Fatal("expected error for chunk outside the region")
	}
}

func TestBiomeID(t *testing.T) {
	tests := map[gen.Biome]byte{
		gen.BiomeMeadow:      biomePlains,
		gen.BiomeSnowyMeadow: biomeIcePlains,
		gen.BiomeDesert:      biomeDesert,
	}
	for b, want := range tests {
		if got := BiomeID(b); got != want {
			t.Errorf("BiomeID(%s) = %d, want %d", b, got, want)
		}
	}
}
