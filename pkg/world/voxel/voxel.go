// Package voxel holds voxel material types and the dense block buffer that
// terrain generators write into.
package voxel

import "fmt"

// Type is the material stored in the type channel of a voxel.
type Type uint16

// Material IDs follow the Minecraft 1.8 block IDs where one exists.
const (
	Air       Type = 0
	Stone     Type = 1
	Grass     Type = 2
	Dirt      Type = 3
	Bedrock   Type = 7
	Sand      Type = 12
	Gravel    Type = 13
	Sandstone Type = 24
	Snow      Type = 80
)

var typeNames = map[Type]string{
	Air:       "air",
	Stone:     "stone",
	Grass:     "grass",
	Dirt:      "dirt",
	Bedrock:   "bedrock",
	Sand:      "sand",
	Gravel:    "gravel",
	Sandstone: "sandstone",
	Snow:      "snow",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", uint16(t))
}

// Vec3i is an integer 3-vector in voxel units.
type Vec3i struct {
	X, Y, Z int
}

// Add returns v + o.
func (v Vec3i) Add(o Vec3i) Vec3i {
	return Vec3i{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Volume returns X*Y*Z, or 0 if any component is not positive.
func (v Vec3i) Volume() int {
	if v.X <= 0 || v.Y <= 0 || v.Z <= 0 {
		return 0
	}
	return v.X * v.Y * v.Z
}

func (v Vec3i) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}
