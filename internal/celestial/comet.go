package celestial

import (
	"fmt"
	"math"

	"voyager-server/internal/rng"
)

// NewComet generates the j-th comet of a star. Comets always ride highly
// eccentric orbits. The id is a pure function of the parent star position
// and the local index, so it survives regeneration.
func NewComet(r *rng.SeededRNG, star *Star, j int) *Comet {
	axis := r.NextFloat(200, 600)
	orbit := OrbitalElements{
		SemiMajorAxis:      axis,
		Eccentricity:       r.NextFloat(0.6, 0.97),
		Period:             orbitalPeriod(axis),
		ArgPerihelion:      r.NextFloat(0, 2*math.Pi),
		MeanAnomalyAtEpoch: r.NextFloat(0, 2*math.Pi),
	}

	dx, dy := orbit.PositionAt(0)
	x, y := star.X+dx, star.Y+dy

	comet := &Comet{
		Object:        newObject(TypeComet, x, y, r.NextFloat(3, 8), RarityUncommon),
		CometTypeName: rng.Choose(r, CometTypes),
		ParentStarID:  star.ID,
		ParentStarX:   star.X,
		ParentStarY:   star.Y,
		LocalIndex:    j,
		Orbit:         orbit,
	}
	comet.ID = CometID(star.X, star.Y, j)
	return comet
}

// CometID derives the stable comet identifier from its parent star position
// and local index.
func CometID(starX, starY float64, index int) string {
	return fmt.Sprintf("comet_%d_%d_%d", int64(math.Round(starX)), int64(math.Round(starY)), index)
}
