package celestial

import "voyager-server/internal/rng"

// StarClass describes one entry of the stellar frequency table. Frequencies
// lean on real main-sequence distributions: red dwarfs dominate, neutron
// stars sit around one percent.
type StarClass struct {
	Name       string
	Color      string
	Weight     float64
	Rarity     Rarity
	TempMin    int
	TempMax    int
	RadiusMin  float64
	RadiusMax  float64
	LumMin     float64
	LumMax     float64
	MaxPlanets int
}

var StarClasses = []StarClass{
	{"M-Type Red Dwarf", "#ffcc6f", 42, RarityCommon, 2400, 3700, 25, 45, 0.001, 0.08, 4},
	{"K-Type Orange Dwarf", "#ffd2a1", 20, RarityCommon, 3700, 5200, 40, 60, 0.08, 0.6, 5},
	{"G-Type Yellow Dwarf", "#fff4ea", 14, RarityCommon, 5200, 6000, 50, 75, 0.6, 1.5, 6},
	{"F-Type Yellow-White Star", "#f8f7ff", 8, RarityUncommon, 6000, 7500, 60, 85, 1.5, 5, 6},
	{"A-Type White Star", "#cad7ff", 5, RarityUncommon, 7500, 10000, 70, 95, 5, 25, 5},
	{"Red Giant", "#ff8866", 5, RarityUncommon, 3000, 4500, 120, 200, 100, 1000, 3},
	{"White Dwarf", "#e8e8ff", 3.5, RarityRare, 8000, 40000, 10, 18, 0.001, 0.1, 2},
	{"B-Type Blue Giant", "#aabfff", 1.5, RarityRare, 10000, 30000, 100, 160, 1000, 30000, 3},
	{"Neutron Star", "#ccddff", 1, RarityExceptional, 500000, 1000000, 6, 10, 0.0001, 0.01, 1},
}

// companionChance is the probability that a celestial star carries a binary
// companion; the companion never carries one of its own.
const companionChance = 0.18

// PlanetClass is one entry of the planetary type table.
type PlanetClass struct {
	Name       string
	Color      string
	Weight     float64
	Rarity     Rarity
	RadiusMin  float64
	RadiusMax  float64
	RingChance float64
	MoonWorthy bool // large enough to hold moons regardless of radius roll
}

var PlanetClasses = []PlanetClass{
	{"Rocky World", "#b08c5f", 30, RarityCommon, 8, 22, 0.10, false},
	{"Gas Giant", "#d9b380", 20, RarityCommon, 30, 60, 0.40, true},
	{"Desert World", "#e0c27f", 15, RarityCommon, 10, 20, 0.05, false},
	{"Ocean World", "#4f86c6", 12, RarityUncommon, 12, 24, 0.05, false},
	{"Frozen World", "#cfe8ef", 12, RarityCommon, 9, 20, 0.30, false},
	{"Volcanic World", "#d14b2a", 8, RarityUncommon, 10, 20, 0.05, false},
	{"Exotic World", "#b67fd9", 3, RarityRare, 10, 26, 0.50, false},
}

// moonRockyRadiusMin: rocky planets at or above this radius can hold moons
// (gas giants always can).
const moonRockyRadiusMin = 16.0

// maxMoonsPerPlanet caps satellite generation.
const maxMoonsPerPlanet = 4

var moonCountTable = []rng.Weighted[int]{
	{Item: 0, Weight: 20},
	{Item: 1, Weight: 30},
	{Item: 2, Weight: 25},
	{Item: 3, Weight: 15},
	{Item: 4, Weight: 10},
}

// moonOrdinalBuckets are the fixed orbital-distance thresholds that assign a
// moon its ordinal. Bucketing is by distance, not generation order, so the
// ordinal survives regeneration. Two moons landing in one bucket share an
// ordinal; that collision is accepted behavior, not a defect.
var moonOrdinalBuckets = []float64{10, 20, 35, 55}

// MoonOrdinal returns the zero-based ordinal for an orbital distance.
func MoonOrdinal(distance float64) int {
	for i, limit := range moonOrdinalBuckets {
		if distance <= limit {
			return i
		}
	}
	return len(moonOrdinalBuckets)
}

var CometTypes = []rng.Weighted[string]{
	{Item: "Ice Comet", Weight: 40},
	{Item: "Dust Comet", Weight: 30},
	{Item: "Rocky Comet", Weight: 20},
	{Item: "Organic Comet", Weight: 10},
}

// cometChance is the probability a star hosts any comets; a hosting star
// gets one to three.
const cometChance = 0.3

type nebulaVariant struct {
	Name  string
	Color string
}

var nebulaVariants = []rng.Weighted[nebulaVariant]{
	{Item: nebulaVariant{"Emission Nebula", "#e06a9a"}, Weight: 35},
	{Item: nebulaVariant{"Reflection Nebula", "#6a9ae0"}, Weight: 30},
	{Item: nebulaVariant{"Planetary Nebula", "#7fe0c0"}, Weight: 20},
	{Item: nebulaVariant{"Supernova Remnant", "#e0b06a"}, Weight: 15},
}

var darkNebulaVariants = []rng.Weighted[string]{
	{Item: "Dense Core", Weight: 40},
	{Item: "Wispy Filament", Weight: 35},
	{Item: "Globule Cluster", Weight: 25},
}

var crystalGardenVariants = []rng.Weighted[string]{
	{Item: "Ice Crystal Field", Weight: 40},
	{Item: "Silicate Spires", Weight: 35},
	{Item: "Prismatic Lattice", Weight: 25},
}

var asteroidGardenVariants = []rng.Weighted[string]{
	{Item: "Rocky Belt", Weight: 35},
	{Item: "Metallic Cluster", Weight: 25},
	{Item: "Icy Drift", Weight: 25},
	{Item: "Carbonaceous Field", Weight: 15},
}

var roguePlanetVariants = []rng.Weighted[string]{
	{Item: "Frozen Wanderer", Weight: 50},
	{Item: "Volcanic Wanderer", Weight: 25},
	{Item: "Shrouded Wanderer", Weight: 25},
}

var protostarVariants = []rng.Weighted[string]{
	{Item: "Class 0 Protostar", Weight: 40},
	{Item: "Class I Protostar", Weight: 35},
	{Item: "Class II Protostar", Weight: 25},
}

var blackHoleVariants = []rng.Weighted[string]{
	{Item: "Stellar Mass", Weight: 85},
	{Item: "Intermediate Mass", Weight: 15},
}

// Tuning carries the per-chunk trial probabilities for every chunk-level
// family plus star placement parameters. Tests override individual chances
// to force rarity rolls; production uses the defaults.
type Tuning struct {
	StarAttempts        int
	StarChance          float64
	NebulaChance        float64
	AsteroidChance      float64
	RoguePlanetChance   float64
	DarkNebulaChance    float64
	CrystalGardenChance float64
	ProtostarChance     float64
	BlackHoleChance     float64
	WormholeChance      float64
	IsolationRadius     float64
	PlacementAttempts   int
	MinStarSeparation   float64
}

func DefaultTuning() Tuning {
	return Tuning{
		StarAttempts:        3,
		StarChance:          0.25,
		NebulaChance:        0.06,
		AsteroidChance:      0.08,
		RoguePlanetChance:   0.02,
		DarkNebulaChance:    0.015,
		CrystalGardenChance: 0.01,
		ProtostarChance:     0.008,
		BlackHoleChance:     0.00005,
		WormholeChance:      0.0001,
		IsolationRadius:     400,
		PlacementAttempts:   8,
		MinStarSeparation:   300,
	}
}
