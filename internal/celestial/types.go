package celestial

import (
	"voyager-server/internal/spatial"
)

// ObjectType discriminates the closed set of celestial families. Every
// switch over object types in this module and in the naming service handles
// all of these.
type ObjectType string

const (
	TypeStar           ObjectType = "star"
	TypePlanet         ObjectType = "planet"
	TypeMoon           ObjectType = "moon"
	TypeNebula         ObjectType = "nebula"
	TypeWormhole       ObjectType = "wormhole"
	TypeBlackHole      ObjectType = "blackhole"
	TypeComet          ObjectType = "comet"
	TypeAsteroidGarden ObjectType = "asteroid-garden"
	TypeRoguePlanet    ObjectType = "rogue-planet"
	TypeDarkNebula     ObjectType = "dark-nebula"
	TypeCrystalGarden  ObjectType = "crystal-garden"
	TypeProtostar      ObjectType = "protostar"
)

// AllTypes lists every generatable family.
var AllTypes = []ObjectType{
	TypeStar, TypePlanet, TypeMoon, TypeNebula, TypeWormhole, TypeBlackHole,
	TypeComet, TypeAsteroidGarden, TypeRoguePlanet, TypeDarkNebula,
	TypeCrystalGarden, TypeProtostar,
}

// Rarity tiers drive discovery emphasis in the naming service.
type Rarity string

const (
	RarityCommon      Rarity = "common"
	RarityUncommon    Rarity = "uncommon"
	RarityRare        Rarity = "rare"
	RarityExceptional Rarity = "exceptional"
)

// Object carries the fields shared by every celestial family. The generator
// owns every immutable field; the Discovered flag is owned by the discovery
// layer and gets re-applied after each regeneration, never reset here.
type Object struct {
	ID         string     `json:"id"`
	Type       ObjectType `json:"type"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Radius     float64    `json:"radius"`
	Rarity     Rarity     `json:"rarity"`
	Discovered bool       `json:"discovered"`
}

func newObject(t ObjectType, x, y, radius float64, rarity Rarity) Object {
	return Object{
		ID:     spatial.ObjectID(x, y, string(t)),
		Type:   t,
		X:      x,
		Y:      y,
		Radius: radius,
		Rarity: rarity,
	}
}

func (o *Object) Position() (float64, float64) { return o.X, o.Y }
func (o *Object) Kind() ObjectType             { return o.Type }
func (o *Object) ObjectID() string             { return o.ID }
func (o *Object) IsDiscovered() bool           { return o.Discovered }
func (o *Object) MarkDiscovered()              { o.Discovered = true }
func (o *Object) RarityTier() Rarity           { return o.Rarity }

// Body is the read/flag surface common to all families. Generated structs
// embed Object, so any *Star, *Planet, etc. satisfies Body.
type Body interface {
	Position() (float64, float64)
	Kind() ObjectType
	ObjectID() string
	IsDiscovered() bool
	MarkDiscovered()
	RarityTier() Rarity
}

// BackgroundStar is pure decoration: not discoverable, not named, not a Body.
type BackgroundStar struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Brightness float64 `json:"brightness"`
	Color      string  `json:"color"`
}

// Star is a celestial star that may anchor planets and comets. Children are
// not owned here; the chunk holds flat per-family lists and children refer
// back by parent id.
type Star struct {
	Object
	StarTypeName  string  `json:"star_type_name"`
	Color         string  `json:"color"`
	Temperature   int     `json:"temperature"`
	Luminosity    float64 `json:"luminosity"`
	HasCompanion  bool    `json:"has_companion"`
	CompanionType string  `json:"companion_type,omitempty"`
	PlanetCount   int     `json:"planet_count"`
}

type Planet struct {
	Object
	PlanetTypeName string          `json:"planet_type_name"`
	Color          string          `json:"color"`
	HasRings       bool            `json:"has_rings"`
	OrbitalRank    int             `json:"orbital_rank"`
	ParentStarID   string          `json:"parent_star_id"`
	ParentStarX    float64         `json:"parent_star_x"`
	ParentStarY    float64         `json:"parent_star_y"`
	Orbit          OrbitalElements `json:"orbit"`
	MoonCount      int             `json:"moon_count"`
}

type Moon struct {
	Object
	ParentPlanetID  string          `json:"parent_planet_id"`
	ParentStarX     float64         `json:"parent_star_x"`
	ParentStarY     float64         `json:"parent_star_y"`
	PlanetRank      int             `json:"planet_rank"`
	OrbitalDistance float64         `json:"orbital_distance"`
	Ordinal         int             `json:"ordinal"`
	Orbit           OrbitalElements `json:"orbit"`
}

type Comet struct {
	Object
	CometTypeName string          `json:"comet_type_name"`
	ParentStarID  string          `json:"parent_star_id"`
	ParentStarX   float64         `json:"parent_star_x"`
	ParentStarY   float64         `json:"parent_star_y"`
	LocalIndex    int             `json:"local_index"`
	Orbit         OrbitalElements `json:"orbit"`
}

type Nebula struct {
	Object
	Variant string `json:"variant"`
	Color   string `json:"color"`
}

type DarkNebula struct {
	Object
	Variant string `json:"variant"`
}

type CrystalGarden struct {
	Object
	Variant string `json:"variant"`
}

type AsteroidGarden struct {
	Object
	Variant   string `json:"variant"`
	RockCount int    `json:"rock_count"`
}

type RoguePlanet struct {
	Object
	Variant string `json:"variant"`
}

type Protostar struct {
	Object
	Variant string `json:"variant"`
}

type BlackHole struct {
	Object
	Variant      string  `json:"variant"`
	EventHorizon float64 `json:"event_horizon"`
}

// WormholeDesignation labels the two ends of a pair.
type WormholeDesignation string

const (
	DesignationAlpha WormholeDesignation = "alpha"
	DesignationBeta  WormholeDesignation = "beta"
)

// Wormhole is one endpoint of a symmetric pair. The twin's coordinates are
// computed, never stored elsewhere, so either end can regenerate alone.
type Wormhole struct {
	Object
	PairID      string              `json:"pair_id"`
	Designation WormholeDesignation `json:"designation"`
	TwinX       float64             `json:"twin_x"`
	TwinY       float64             `json:"twin_y"`
}

// discoveryRanges holds the per-family distance at which a viewer discovers
// an object. The thresholds live next to the generators because the visual
// footprint of each family determines them.
var discoveryRanges = map[ObjectType]float64{
	TypeStar:           2500,
	TypePlanet:         900,
	TypeMoon:           450,
	TypeNebula:         2800,
	TypeWormhole:       1400,
	TypeBlackHole:      1800,
	TypeComet:          1000,
	TypeAsteroidGarden: 1100,
	TypeRoguePlanet:    800,
	TypeDarkNebula:     1200,
	TypeCrystalGarden:  700,
	TypeProtostar:      2000,
}

// DiscoveryRange returns the discovery distance for an object's family.
func DiscoveryRange(t ObjectType) float64 {
	if r, ok := discoveryRanges[t]; ok {
		return r
	}
	return 500
}
