package celestial

import (
	"math"

	"voyager-server/internal/rng"
)

// NewMoon generates the k-th moon of a planet. The ordinal written here is
// derived from the orbital-distance bucket, not from k, so it is stable
// across regenerations regardless of sibling count or order.
func NewMoon(r *rng.SeededRNG, planet *Planet, k int) *Moon {
	distance := planet.Radius + r.NextFloat(8, 60)

	orbit := OrbitalElements{
		SemiMajorAxis:      distance,
		Eccentricity:       r.NextFloat(0, 0.08),
		Period:             orbitalPeriod(distance) / 4,
		ArgPerihelion:      r.NextFloat(0, 2*math.Pi),
		MeanAnomalyAtEpoch: r.NextFloat(0, 2*math.Pi),
	}

	dx, dy := orbit.PositionAt(0)
	x, y := planet.X+dx, planet.Y+dy

	return &Moon{
		Object:          newObject(TypeMoon, x, y, r.NextFloat(2, 7), RarityCommon),
		ParentPlanetID:  planet.ID,
		ParentStarX:     planet.ParentStarX,
		ParentStarY:     planet.ParentStarY,
		PlanetRank:      planet.OrbitalRank,
		OrbitalDistance: distance - planet.Radius,
		Ordinal:         MoonOrdinal(distance - planet.Radius),
		Orbit:           orbit,
	}
}
