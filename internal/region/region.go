package region

import (
	"log/slog"
	"math"

	"voyager-server/internal/rng"
	"voyager-server/internal/spatial"
)

// Type classifies a location in the universe. Classification is a pure
// function of coordinates and the universe seed; it biases generation
// probabilities downstream but never mutates generated objects.
type Type string

const (
	TypeCore       Type = "core"
	TypeInnerRim   Type = "inner-rim"
	TypeNebulaBelt Type = "nebula-belt"
	TypeFrontier   Type = "frontier"
	TypeVoid       Type = "void"
	TypeDeepVoid   Type = "deep-void"
)

// Weights are multipliers applied to the generators' base probabilities.
type Weights struct {
	StarDensity    float64 `json:"star_density"`
	PlanetRichness float64 `json:"planet_richness"`
	NebulaChance   float64 `json:"nebula_chance"`
	RareChance     float64 `json:"rare_chance"`
}

// Info is the classification returned for a world position.
type Info struct {
	Type               Type    `json:"type"`
	Name               string  `json:"name"`
	DistanceFromCenter float64 `json:"distance_from_center"`
	Influence          float64 `json:"influence"`
	Weights            Weights `json:"weights"`
}

// band is a radial shell around the universe origin.
type band struct {
	regionType Type
	name       string
	outerEdge  float64
	weights    Weights
}

// transitionWidth is the world-space span over which adjacent bands blend
// into each other. Band membership flips at the edge itself; the weights
// never jump.
const transitionWidth = 4000.0

var bands = []band{
	{TypeCore, "Galactic Core", 8000, Weights{StarDensity: 1.6, PlanetRichness: 1.3, NebulaChance: 0.8, RareChance: 1.5}},
	{TypeInnerRim, "Inner Rim", 30000, Weights{StarDensity: 1.2, PlanetRichness: 1.1, NebulaChance: 1.0, RareChance: 1.0}},
	{TypeFrontier, "Frontier", 120000, Weights{StarDensity: 1.0, PlanetRichness: 1.0, NebulaChance: 1.0, RareChance: 1.0}},
	{TypeVoid, "The Void", 400000, Weights{StarDensity: 0.5, PlanetRichness: 0.8, NebulaChance: 0.6, RareChance: 1.2}},
	{TypeDeepVoid, "Deep Void", math.Inf(1), Weights{StarDensity: 0.25, PlanetRichness: 0.7, NebulaChance: 0.4, RareChance: 1.5}},
}

// beltWeights apply inside a nebula belt at full strength.
var beltWeights = Weights{StarDensity: 0.9, PlanetRichness: 1.0, NebulaChance: 3.0, RareChance: 1.1}

const beltCount = 4

type belt struct {
	x, y   float64
	radius float64
	name   string
}

var beltNames = []string{"Cygnus Drift", "Orion Shroud", "Carina Veil", "Lyra Expanse"}

// Service classifies world positions for one universe seed.
type Service struct {
	seed   int64
	belts  []belt
	logger *slog.Logger
}

func NewService(universeSeed int64, logger *slog.Logger) *Service {
	s := &Service{
		seed:   universeSeed,
		logger: logger.With("component", "region"),
	}

	// Belt placement comes from its own derived stream so it cannot disturb
	// any other consumer of the universe seed.
	r := rng.New(spatial.ChunkSeed(universeSeed, spatial.ChunkCoord{CX: -1299709, CY: 104729}))
	for i := 0; i < beltCount; i++ {
		angle := r.NextFloat(0, 2*math.Pi)
		dist := r.NextFloat(35000, 110000)
		s.belts = append(s.belts, belt{
			x:      math.Cos(angle) * dist,
			y:      math.Sin(angle) * dist,
			radius: r.NextFloat(12000, 28000),
			name:   beltNames[i%len(beltNames)],
		})
	}

	s.logger.Debug("Region layer initialized", "seed", universeSeed, "belts", len(s.belts))
	return s
}

// Seed returns the universe seed the layer was built from.
func (s *Service) Seed() int64 {
	return s.seed
}

// At classifies a world position. Small coordinate deltas produce small
// weight deltas; the discrete Type flips only at consistent boundaries.
func (s *Service) At(worldX, worldY float64) Info {
	dist := math.Hypot(worldX, worldY)

	info := s.bandAt(dist)
	info.DistanceFromCenter = dist

	// Nebula belts overlay the radial bands, blended by distance from the
	// belt center so there is no seam at the belt edge.
	for _, b := range s.belts {
		d := spatial.Dist(worldX, worldY, b.x, b.y)
		if d >= b.radius {
			continue
		}
		f := smoothstep(1 - d/b.radius)
		info.Weights = lerpWeights(info.Weights, beltWeights, f)
		if f > 0.5 {
			info.Type = TypeNebulaBelt
			info.Name = b.name
			info.Influence = f
		}
		break
	}

	return info
}

func (s *Service) bandAt(dist float64) Info {
	for i, b := range bands {
		if dist >= b.outerEdge {
			continue
		}

		w := b.weights
		influence := 1.0

		// Blend toward the next band as the edge approaches.
		if i < len(bands)-1 {
			edgeDist := b.outerEdge - dist
			if edgeDist < transitionWidth {
				f := 0.5 * (1 - smoothstep(edgeDist/transitionWidth))
				w = lerpWeights(w, bands[i+1].weights, f)
				influence = 1 - f
			}
		}
		// And back toward the previous band just inside the inner edge.
		if i > 0 {
			edgeDist := dist - bands[i-1].outerEdge
			if edgeDist < transitionWidth {
				f := 0.5 * (1 - smoothstep(edgeDist/transitionWidth))
				w = lerpWeights(w, bands[i-1].weights, f)
				influence = 1 - f
			}
		}

		return Info{
			Type:      b.regionType,
			Name:      b.name,
			Influence: influence,
			Weights:   w,
		}
	}

	last := bands[len(bands)-1]
	return Info{Type: last.regionType, Name: last.name, Influence: 1, Weights: last.weights}
}

func smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

func lerpWeights(a, b Weights, t float64) Weights {
	return Weights{
		StarDensity:    a.StarDensity + (b.StarDensity-a.StarDensity)*t,
		PlanetRichness: a.PlanetRichness + (b.PlanetRichness-a.PlanetRichness)*t,
		NebulaChance:   a.NebulaChance + (b.NebulaChance-a.NebulaChance)*t,
		RareChance:     a.RareChance + (b.RareChance-a.RareChance)*t,
	}
}
