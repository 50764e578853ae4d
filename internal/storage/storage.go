package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/OCharnyshevich/voxelfun/internal/config"
	"github.com/OCharnyshevich/voxelfun/pkg/world/anvil"
	"github.com/OCharnyshevich/voxelfun/pkg/world/voxel"
)

// Storage handles the output directory of a generation run: the effective
// config and one compressed file per block.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating subdirectories as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	dirs := []string{
		dir,
		filepath.Join(dir, "blocks"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return &Storage{dir: dir, log: log}, nil
}

// Dir returns the storage root.
func (s *Storage) Dir() string { return s.dir }

// SaveConfig writes cfg to config.json atomically.
func (s *Storage) SaveConfig(cfg *config.Config) error {
	path := filepath.Join(s.dir, "config.json")
	if err := s.atomicWriteJSON(path, cfg); err != nil {
		return err
	}
	s.log.Debug("saved config", "path", path)
	return nil
}

// BlockPath returns the file path of the block stored at origin.
func (s *Storage) BlockPath(origin voxel.Vec3i) string {
	name := fmt.Sprintf("b.%d.%d.%d.vox.zst", origin.X, origin.Y, origin.Z)
	return filepath.Join(s.dir, "blocks", name)
}

// SaveBlock writes a block as a zstd stream holding one JSON header line
// followed by little-endian uint16 voxels in buffer index order.
func (s *Storage) SaveBlock(h BlockHeader, buf *voxel.Buffer) (err error) {
	h.Version = blockFormatVersion
	h.Size = buf.Size()

	path := s.BlockPath(h.Origin)
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create block file: %w", err)
	}
	var enc *zstd.Encoder
	defer func() {
		if err != nil {
			if enc != nil {
				enc.Close()
			}
			f.Close()
			os.Remove(tmp)
		}
	}()

	enc, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	bw := bufio.NewWriterSize(enc, 64*1024)

	hb, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("marshal block header: %w", err)
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		return fmt.Errorf("write block header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, buf.Raw()); err != nil {
		return fmt.Errorf("write voxels: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush block: %w", err)
	}
	closeErr := enc.Close()
	enc = nil
	if closeErr != nil {
		return fmt.Errorf("close zstd writer: %w", closeErr)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close block file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename block file: %w", err)
	}
	return nil
}

// RegionDir returns the directory Anvil region files are written to.
func (s *Storage) RegionDir() string {
	return filepath.Join(s.dir, "region")
}

// SaveAnvil writes w as Anvil region files under RegionDir.
func (s *Storage) SaveAnvil(w *anvil.World) error {
	regions, err := w.Save(s.RegionDir())
	if err != nil {
		return fmt.Errorf("save anvil regions: %w", err)
	}
	s.log.Info("saved anvil regions", "regions", len(regions), "chunks", w.Len(), "dir", s.RegionDir())
	return nil
}

// LoadBlock reads a block written by SaveBlock.
func LoadBlock(path string) (BlockHeader, *voxel.Buffer, error) {
	var h BlockHeader
	f, err := os.Open(path)
	if err != nil {
		return h, nil, fmt.Errorf("open block: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return h, nil, fmt.Errorf("read block header: %w", err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, nil, fmt.Errorf("parse block header: %w", err)
	}
	if h.Version != blockFormatVersion {
		return h, nil, fmt.Errorf("unsupported block version %d", h.Version)
	}

	if !validBlockSize(h.Size) {
		return h, nil, fmt.Errorf("block %s: size %v too large", path, h.Size)
	}
	voxels := make([]voxel.Type, h.Size.Volume())
	if err := binary.Read(br, binary.LittleEndian, voxels); err != nil {
		return h, nil, fmt.Errorf("read voxels: %w", err)
	}
	if _, err := br.ReadByte(); err != io.EOF {
		return h, nil, fmt.Errorf("block %s: trailing data after %d voxels", path, len(voxels))
	}

	buf := voxel.NewBuffer(h.Size)
	buf.Load(voxels)
	return h, buf, nil
}

// validBlockSize reports whether size is positive on every axis and its
// volume fits within maxBlockVolume without overflowing.
func validBlockSize(size voxel.Vec3i) bool {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return false
	}
	if size.X > maxBlockVolume || size.Y > maxBlockVolume/size.X {
		return false
	}
	return size.Z <= maxBlockVolume/(size.X*size.Y)
}

// atomicWriteJSON marshals v to JSON and writes it atomically using a temp file + rename.
func (s *Storage) atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
