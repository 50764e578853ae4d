package anvil

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/klauspost/compress/zlib"
)

const (
	sectorSize      = 4096
	headerSectors   = 2 // location table + timestamp table
	compressionZlib = 2
	regionChunks    = 32
)

// RegionPos identifies a 32x32 chunk region file.
type RegionPos struct {
	X, Z int
}

func regionPosOf(c ChunkPos) RegionPos {
	return RegionPos{X: c.X >> 5, Z: c.Z >> 5}
}

// RegionPath returns the path of region r inside dir.
func RegionPath(dir string, r RegionPos) string {
	return filepath.Join(dir, fmt.Sprintf("r.%d.%d.mca", r.X, r.Z))
}

func locationIndex(c ChunkPos) int {
	return (c.X & (regionChunks - 1)) + (c.Z&(regionChunks-1))*regionChunks
}

// SaveRegion writes chunks, given as uncompressed NBT keyed by position, to
// the region file r in dir. All chunks must belong to r. The file is written
// to a temp file and renamed into place.
func SaveRegion(dir string, r RegionPos, chunks map[ChunkPos][]byte) (err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create region dir: %w", err)
	}

	positions := make([]ChunkPos, 0, len(chunks))
	for pos := range chunks {
		if regionPosOf(pos) != r {
			return fmt.Errorf("chunk (%d,%d) is outside region (%d,%d)", pos.X, pos.Z, r.X, r.Z)
		}
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		return locationIndex(positions[i]) < locationIndex(positions[j])
	})

	locations := make([]byte, sectorSize)
	timestamps := make([]byte, sectorSize)
	now := uint32(time.Now().Unix())

	var data bytes.Buffer
	sector := uint32(headerSectors)
	for _, pos := range positions {
		var cbuf bytes.Buffer
		zw, err := zlib.NewWriterLevel(&cbuf, zlib.DefaultCompression)
		if err != nil {
			return fmt.Errorf("create zlib writer: %w", err)
		}
		if _, err := zw.Write(chunks[pos]); err != nil {
			return fmt.Errorf("compress chunk (%d,%d): %w", pos.X, pos.Z, err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("close zlib writer: %w", err)
		}

		// length(4) + compression(1) + payload, padded to whole sectors.
		payloadLen := uint32(cbuf.Len()) + 1
		total := 4 + payloadLen
		sectors := (total + sectorSize - 1) / sectorSize
		if sectors > 0xFF {
			return fmt.Errorf("chunk (%d,%d) needs %d sectors", pos.X, pos.Z, sectors)
		}

		off := locationIndex(pos) * 4
		binary.BigEndian.PutUint32(locations[off:off+4], sector<<8|sectors)
		binary.BigEndian.PutUint32(timestamps[off:off+4], now)

		var head [5]byte
		binary.BigEndian.PutUint32(head[0:4], payloadLen)
		head[4] = compressionZlib
		data.Write(head[:])
		data.Write(cbuf.Bytes())
		if pad := int(sectors*sectorSize - total); pad > 0 {
			data.Write(make([]byte, pad))
		}
		sector += sectors
	}

	path := RegionPath(dir, r)
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp region file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	for _, part := range [][]byte{locations, timestamps, data.Bytes()} {
		if _, err := f.Write(part); err != nil {
			return fmt.Errorf("write region file: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close region file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename region file: %w", err)
	}
	return nil
}

// ReadChunk returns the uncompressed NBT of chunk pos from the region file at
// path, or nil if the chunk is absent.
func ReadChunk(path string, pos ChunkPos) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open region: %w", err)
	}
	defer f.Close()

	var loc [4]byte
	if _, err := f.ReadAt(loc[:], int64(locationIndex(pos)*4)); err != nil {
		return nil, fmt.Errorf("read location: %w", err)
	}
	entry := binary.BigEndian.Uint32(loc[:])
	if entry == 0 {
		return nil, nil
	}
	offset := int64(entry>>8) * sectorSize

	var head [5]byte
	if _, err := f.ReadAt(head[:], offset); err != nil {
		return nil, fmt.Errorf("read chunk header: %w", err)
	}
	length := binary.BigEndian.Uint32(head[0:4])
	if head[4] != compressionZlib {
		return nil, fmt.Errorf("chunk (%d,%d): unsupported compression %d", pos.X, pos.Z, head[4])
	}
	if length < 1 || length > 0xFF*sectorSize {
		return nil, fmt.Errorf("chunk (%d,%d): bad length %d", pos.X, pos.Z, length)
	}

	zr, err := zlib.NewReader(io.NewSectionReader(f, offset+5, int64(length-1)))
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress chunk (%d,%d): %w", pos.X, pos.Z, err)
	}
	return out, nil
}
