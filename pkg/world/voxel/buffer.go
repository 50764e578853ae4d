package voxel

// Buffer is a fixed-size 3D grid of voxel types addressed in block-local
// coordinates. Index = (y*size.Z + z)*size.X + x.
//
// Storage is allocated on the first non-air write, so an untouched buffer
// costs nothing and reads back as air.
type Buffer struct {
	size   Vec3i
	voxels []Type
}

// NewBuffer creates an all-air buffer of the given size.
func NewBuffer(size Vec3i) *Buffer {
	return &Buffer{size: size}
}

// Size returns the buffer extent.
func (b *Buffer) Size() Vec3i { return b.size }

// Contains reports whether the local coordinate lies inside the buffer.
func (b *Buffer) Contains(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < b.size.X && y < b.size.Y && z < b.size.Z
}

func (b *Buffer) index(x, y, z int) int {
	return (y*b.size.Z+z)*b.size.X + x
}

// SetVoxel sets the voxel type at the given local coordinates.
// Writes outside the buffer are ignored.
func (b *Buffer) SetVoxel(t Type, x, y, z int) {
	if !b.Contains(x, y, z) {
		return
	}
	if b.voxels == nil {
		if t == Air {
			return
		}
		b.voxels = make([]Type, b.size.Volume())
	}
	b.voxels[b.index(x, y, z)] = t
}

// Voxel returns the voxel type at the given local coordinates.
// Reads outside the buffer return Air.
func (b *Buffer) Voxel(x, y, z int) Type {
	if b.voxels == nil || !b.Contains(x, y, z) {
		return Air
	}
	return b.voxels[b.index(x, y, z)]
}

// Fill sets every voxel to t.
func (b *Buffer) Fill(t Type) {
	if t == Air {
		b.voxels = nil
		return
	}
	if b.voxels == nil {
		b.voxels = make([]Type, b.size.Volume())
	}
	for i := range b.voxels {
		b.voxels[i] = t
	}
}

// IsEmpty reports whether every voxel is air.
func (b *Buffer) IsEmpty() bool {
	for _, v := range b.voxels {
		if v != Air {
			return false
		}
	}
	return true
}

// Count returns the number of non-air voxels.
func (b *Buffer) Count() int {
	n := 0
	for _, v := range b.voxels {
		if v != Air {
			n++
		}
	}
	return n
}

// Raw returns the voxels in index order. The slice has Size().Volume()
// elements and must not be modified.
func (b *Buffer) Raw() []Type {
	if b.voxels == nil {
		return make([]Type, b.size.Volume())
	}
	return b.voxels
}

// Load replaces the buffer contents with voxels in index order.
// It reports false if the length does not match the buffer volume.
func (b *Buffer) Load(voxels []Type) bool {
	if len(voxels) != b.size.Volume() {
		return false
	}
	b.voxels = make([]Type, len(voxels))
	copy(b.voxels, voxels)
	return true
}

// Equal reports whether both buffers have the same size and contents.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.size != o.size {
		return false
	}
	if b.voxels == nil || o.voxels == nil {
		return b.IsEmpty() && o.IsEmpty()
	}
	for i := range b.voxels {
		if b.voxels[i] != o.voxels[i] {
			return false
		}
	}
	return true
}
