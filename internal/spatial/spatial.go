package spatial

import (
	"fmt"
	"math"
)

// ChunkSize is the edge length of a chunk in world units. World space is an
// infinite plane tiled by ChunkSize x ChunkSize squares.
const ChunkSize = 1000.0

// ChunkCoord identifies one chunk of world space.
type ChunkCoord struct {
	CX int `json:"cx"`
	CY int `json:"cy"`
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("%d,%d", c.CX, c.CY)
}

// Origin returns the minimum-corner world coordinate of the chunk. It is the
// exact inverse of ToChunkCoord for that corner.
func (c ChunkCoord) Origin() (float64, float64) {
	return float64(c.CX) * ChunkSize, float64(c.CY) * ChunkSize
}

// ToChunkCoord maps a world position to its chunk via floor division.
func ToChunkCoord(worldX, worldY float64) ChunkCoord {
	return ChunkCoord{
		CX: int(math.Floor(worldX / ChunkSize)),
		CY: int(math.Floor(worldY / ChunkSize)),
	}
}

// mix32 avalanches the bits of x (murmur3 finalizer constants). All seed
// derivation stays in pure integer arithmetic so results are identical on
// every platform.
func mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x85ebca6b
	x ^= x >> 13
	x *= 0xc2b2ae35
	x ^= x >> 16
	return x
}

// ChunkSeed derives the deterministic seed for a chunk from the universe
// seed and the chunk coordinate alone. Adjacent chunks must not correlate,
// so each axis is decorrelated with a large odd constant before mixing.
func ChunkSeed(universeSeed int64, c ChunkCoord) uint32 {
	h := uint32(universeSeed) ^ uint32(uint64(universeSeed)>>32)
	h ^= uint32(int32(c.CX)) * 0x9e3779b1
	h = mix32(h)
	h ^= uint32(int32(c.CY)) * 0x85ebca6b
	return mix32(h)
}

// ObjectSeed derives a per-object sub-seed from a chunk seed, a family tag
// and a local index. The third planet of a system gets the same seed no
// matter how many siblings exist.
func ObjectSeed(chunkSeed uint32, familyTag string, index int) uint32 {
	h := chunkSeed
	for i := 0; i < len(familyTag); i++ {
		h ^= uint32(familyTag[i])
		h *= 0x01000193
	}
	h ^= uint32(int32(index)) * 0x9e3779b1
	return mix32(h)
}

// PositionHash hashes a world position to a stable 32-bit value. Coordinates
// are rounded to the nearest integer first so that floating formatting never
// leaks into identity.
func PositionHash(worldX, worldY float64) uint32 {
	ix := int32(math.Round(worldX))
	iy := int32(math.Round(worldY))
	h := uint32(ix) * 0x9e3779b1
	h = mix32(h)
	h ^= uint32(iy) * 0x85ebca6b
	return mix32(h)
}

// ObjectID returns the stable identifier used by the save layer to
// cross-reference discoveries against regenerated descriptors. Identity is
// positional: the same family at the same position is the same object.
func ObjectID(worldX, worldY float64, familyTag string) string {
	return fmt.Sprintf("%s_%d_%d", familyTag, int64(math.Round(worldX)), int64(math.Round(worldY)))
}

// Dist returns the Euclidean distance between two world positions.
func Dist(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistSq returns the squared distance, for threshold checks without a sqrt.
func DistSq(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}
