package celestial

import (
	"math"

	"voyager-server/internal/region"
	"voyager-server/internal/rng"
	"voyager-server/internal/spatial"
)

// System bundles one star with everything it anchors. Ownership stays flat:
// the chunk hoists these slices into its own per-family lists, and children
// point back to parents through ids and coordinates only.
type System struct {
	Star    *Star
	Planets []*Planet
	Moons   []*Moon
	Comets  []*Comet
}

// NewStar generates a star descriptor at the given position. The region
// never changes the frequency table itself, only how often stars appear,
// which the chunk manager decides before calling in.
func NewStar(r *rng.SeededRNG, x, y float64) *Star {
	classTable := make([]rng.Weighted[StarClass], len(StarClasses))
	for i, c := range StarClasses {
		classTable[i] = rng.Weighted[StarClass]{Item: c, Weight: c.Weight}
	}
	class := rng.Choose(r, classTable)

	star := &Star{
		Object:       newObject(TypeStar, x, y, r.NextFloat(class.RadiusMin, class.RadiusMax), class.Rarity),
		StarTypeName: class.Name,
		Color:        class.Color,
		Temperature:  class.TempMin + r.NextInt(0, class.TempMax-class.TempMin),
		Luminosity:   r.NextFloat(class.LumMin, class.LumMax),
	}

	if r.Chance(companionChance) {
		star.HasCompanion = true
		companion := rng.Choose(r, classTable)
		star.CompanionType = companion.Name
	}

	return star
}

// NewSystem generates a star and its satellites from a single star seed.
// Every child derives its own sub-seed from the star seed, a family tag and
// a local index, so the third planet is identical no matter how many
// siblings exist.
func NewSystem(starSeed uint32, reg region.Info, x, y float64) *System {
	r := rng.New(starSeed)
	star := NewStar(r, x, y)
	sys := &System{Star: star}

	class := starClassByName(star.StarTypeName)

	base := r.NextInt(0, class.MaxPlanets)
	planetCount := int(math.Round(float64(base) * reg.Weights.PlanetRichness))
	if planetCount > class.MaxPlanets+2 {
		planetCount = class.MaxPlanets + 2
	}
	star.PlanetCount = planetCount

	orbitDistance := star.Radius*2 + 80
	for i := 0; i < planetCount; i++ {
		planetSeed := spatial.ObjectSeed(starSeed, "planet", i)
		pr := rng.New(planetSeed)

		// Increasing-distance placement with a minimum gap keeps orbits
		// from overlapping.
		orbitDistance += 90 + pr.NextFloat(0, 180)

		planet := NewPlanet(pr, star, i, orbitDistance)
		sys.Planets = append(sys.Planets, planet)

		for k := 0; k < planet.MoonCount; k++ {
			mr := rng.New(spatial.ObjectSeed(planetSeed, "moon", k))
			sys.Moons = append(sys.Moons, NewMoon(mr, planet, k))
		}
	}

	cr := rng.New(spatial.ObjectSeed(starSeed, "comets", 0))
	if cr.Chance(cometChance) {
		count := cr.NextInt(1, 3)
		for j := 0; j < count; j++ {
			jr := rng.New(spatial.ObjectSeed(starSeed, "comet", j))
			sys.Comets = append(sys.Comets, NewComet(jr, star, j))
		}
	}

	return sys
}

func starClassByName(name string) StarClass {
	for _, c := range StarClasses {
		if c.Name == name {
			return c
		}
	}
	return StarClasses[0]
}

// NewBackgroundStars fills a chunk with decorative pinpoint stars. These are
// render fodder only: never named, never discoverable.
func NewBackgroundStars(r *rng.SeededRNG, originX, originY float64) []BackgroundStar {
	colors := []string{"#ffffff", "#fff4ea", "#cad7ff", "#ffd2a1", "#aabfff"}

	count := r.NextInt(8, 24)
	stars := make([]BackgroundStar, 0, count)
	for i := 0; i < count; i++ {
		stars = append(stars, BackgroundStar{
			X:          originX + r.NextFloat(0, spatial.ChunkSize),
			Y:          originY + r.NextFloat(0, spatial.ChunkSize),
			Brightness: r.NextFloat(0.2, 1.0),
			Color:      colors[r.NextInt(0, len(colors)-1)],
		})
	}
	return stars
}
