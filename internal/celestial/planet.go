package celestial

import (
	"math"

	"voyager-server/internal/rng"
)

// NewPlanet generates a planet on the given orbit around its star. The
// planet references the star by id and coordinates; the star's lifecycle is
// never tied to its planets.
func NewPlanet(r *rng.SeededRNG, star *Star, rank int, orbitDistance float64) *Planet {
	classTable := make([]rng.Weighted[PlanetClass], len(PlanetClasses))
	for i, c := range PlanetClasses {
		classTable[i] = rng.Weighted[PlanetClass]{Item: c, Weight: c.Weight}
	}
	class := rng.Choose(r, classTable)

	orbit := OrbitalElements{
		SemiMajorAxis:      orbitDistance,
		Eccentricity:       r.NextFloat(0, 0.15),
		Period:             orbitalPeriod(orbitDistance),
		ArgPerihelion:      r.NextFloat(0, 2*math.Pi),
		MeanAnomalyAtEpoch: r.NextFloat(0, 2*math.Pi),
	}

	dx, dy := orbit.PositionAt(0)
	x, y := star.X+dx, star.Y+dy

	radius := r.NextFloat(class.RadiusMin, class.RadiusMax)

	planet := &Planet{
		Object:         newObject(TypePlanet, x, y, radius, class.Rarity),
		PlanetTypeName: class.Name,
		Color:          class.Color,
		HasRings:       r.Chance(class.RingChance),
		OrbitalRank:    rank,
		ParentStarID:   star.ID,
		ParentStarX:    star.X,
		ParentStarY:    star.Y,
		Orbit:          orbit,
	}

	if canHoldMoons(class, radius) {
		count := rng.Choose(r, moonCountTable)
		if count > maxMoonsPerPlanet {
			count = maxMoonsPerPlanet
		}
		planet.MoonCount = count
	}

	return planet
}

// canHoldMoons: gas giants always qualify; rocky worlds only when large.
func canHoldMoons(class PlanetClass, radius float64) bool {
	if class.MoonWorthy {
		return true
	}
	return class.Name == "Rocky World" && radius >= moonRockyRadiusMin
}

// orbitalPeriod ties period to distance with a Kepler-like a^1.5 relation in
// game units.
func orbitalPeriod(semiMajorAxis float64) float64 {
	return math.Pow(semiMajorAxis, 1.5) / 20
}
