package celestial

import (
	"fmt"
	"math"

	"voyager-server/internal/rng"
	"voyager-server/internal/spatial"
)

// NewBlackHole generates a black hole at a position the chunk manager has
// already cleared against its isolation radius.
func NewBlackHole(r *rng.SeededRNG, x, y float64) *BlackHole {
	radius := r.NextFloat(20, 45)
	return &BlackHole{
		Object:       newObject(TypeBlackHole, x, y, radius, RarityExceptional),
		Variant:      rng.Choose(r, blackHoleVariants),
		EventHorizon: radius * r.NextFloat(1.8, 2.6),
	}
}

// TwinPosition computes the coordinates of a wormhole's counterpart. The
// transform is a point reflection through a seed-derived anchor, which makes
// it an involution: applying it twice returns the original position. Either
// end of a pair can therefore be regenerated without the other chunk ever
// having existed.
func TwinPosition(universeSeed int64, x, y float64) (float64, float64) {
	ax, ay := wormholeAnchor(universeSeed)
	return 2*ax - x, 2*ay - y
}

// wormholeAnchor derives the reflection center from the universe seed using
// integer hashing only, then fixes it onto an integer grid point.
func wormholeAnchor(universeSeed int64) (float64, float64) {
	hx := spatial.ChunkSeed(universeSeed, spatial.ChunkCoord{CX: 7919, CY: -7919})
	hy := spatial.ChunkSeed(universeSeed, spatial.ChunkCoord{CX: -104729, CY: 104729})
	// Keep the anchor within ±100 chunks of the origin.
	ax := float64(int32(hx%200001) - 100000)
	ay := float64(int32(hy%200001) - 100000)
	return ax, ay
}

// NewWormhole builds one endpoint of a pair. The pair id hashes the alpha
// endpoint's position, so both ends agree on it no matter which chunk
// generates first.
func NewWormhole(r *rng.SeededRNG, x, y, twinX, twinY float64, designation WormholeDesignation) *Wormhole {
	alphaX, alphaY := x, y
	if designation == DesignationBeta {
		alphaX, alphaY = twinX, twinY
	}

	return &Wormhole{
		Object:      newObject(TypeWormhole, x, y, r.NextFloat(25, 50), RarityExceptional),
		PairID:      WormholePairID(alphaX, alphaY),
		Designation: designation,
		TwinX:       twinX,
		TwinY:       twinY,
	}
}

// WormholePairID derives the shared pair identifier from the alpha
// endpoint's position.
func WormholePairID(alphaX, alphaY float64) string {
	return fmt.Sprintf("%08x", spatial.PositionHash(math.Round(alphaX), math.Round(alphaY)))
}
