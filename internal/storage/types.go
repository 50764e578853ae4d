package storage

import "github.com/OCharnyshevich/voxelfun/pkg/world/voxel"

// BlockHeader describes a stored block. It is written as the first line of
// every block file.
type BlockHeader struct {
	Version   int         `json:"version"`
	Generator string      `json:"generator"`
	Seed      int64       `json:"seed"`
	Origin    voxel.Vec3i `json:"origin"`
	Size      voxel.Vec3i `json:"size"`
	LOD       int         `json:"lod"`
}

const blockFormatVersion = 1

// maxBlockVolume bounds the voxel count accepted from a block header.
const maxBlockVolume = 1 << 24
