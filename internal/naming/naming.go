package naming

import (
	"fmt"
	"log/slog"

	"voyager-server/internal/celestial"
	"voyager-server/internal/spatial"
)

// Record is the full catalog entry for an object. Every field derives from
// the object's coordinates, type and orbital ranks, never from generation
// order, so a record computed before a chunk ever loads matches the one
// computed after an eviction and reload.
type Record struct {
	Catalog     string               `json:"catalog"`
	Designation string               `json:"designation"`
	Kind        celestial.ObjectType `json:"kind"`
	Notable     bool                 `json:"notable"`
}

// Service produces catalog designations. The memo cache is an optimization
// only: every name is a pure function of its inputs, and ClearCache has no
// observable effect on output.
type Service struct {
	memo   map[string]string
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	return &Service{
		memo:   make(map[string]string),
		logger: logger.With("component", "naming_service"),
	}
}

// ClearCache drops the memoized names. Purely a memory release.
func (s *Service) ClearCache() {
	s.memo = make(map[string]string)
}

// CatalogNumber maps a position to a stable four-digit catalog number.
func (s *Service) CatalogNumber(x, y float64) int {
	return 1000 + int(spatial.PositionHash(x, y)%9000)
}

// starCatalog renders the star designation for a position. Compact remnants
// get survey-specific prefixes in place of the general catalog.
func (s *Service) starCatalog(x, y float64, starTypeName string) string {
	n := s.CatalogNumber(x, y)
	switch starTypeName {
	case "Neutron Star":
		return fmt.Sprintf("PSR J%04d", n)
	case "White Dwarf":
		return fmt.Sprintf("WD %04d", n)
	default:
		return fmt.Sprintf("ASV-%04d", n)
	}
}

// planetTypeCodes are the codes appended to designations of planets whose
// type is itself remarkable.
var planetTypeCodes = map[string]string{
	"Exotic World": "EX",
}

// orbitalLetter follows exoplanet convention: the first orbit is "b".
func orbitalLetter(rank int) rune {
	return rune('b' + rank)
}

var romanNumerals = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

func roman(n int) string {
	if n >= 1 && n <= len(romanNumerals) {
		return romanNumerals[n-1]
	}
	return fmt.Sprintf("%d", n)
}

func (s *Service) StarName(star *celestial.Star) string {
	return s.memoized(star.ID, func() string {
		return s.starCatalog(star.X, star.Y, star.StarTypeName)
	})
}

func (s *Service) PlanetName(p *celestial.Planet) string {
	return s.memoized(p.ID, func() string {
		// The host designation uses the plain catalog: the planet cannot
		// know its star's spectral class from position alone, and must not
		// need to.
		host := fmt.Sprintf("ASV-%04d", s.CatalogNumber(p.ParentStarX, p.ParentStarY))
		name := fmt.Sprintf("%s %c", host, orbitalLetter(p.OrbitalRank))
		if code, ok := planetTypeCodes[p.PlanetTypeName]; ok {
			name = fmt.Sprintf("%s [%s]", name, code)
		}
		return name
	})
}

func (s *Service) MoonName(m *celestial.Moon) string {
	return s.memoized(m.ID, func() string {
		host := fmt.Sprintf("ASV-%04d", s.CatalogNumber(m.ParentStarX, m.ParentStarY))
		return fmt.Sprintf("%s %c %s", host, orbitalLetter(m.PlanetRank), roman(m.Ordinal+1))
	})
}

func (s *Service) NebulaName(n *celestial.Nebula) string {
	return s.memoized(n.ID, func() string {
		return fmt.Sprintf("NGC %04d", s.CatalogNumber(n.X, n.Y))
	})
}

func (s *Service) DarkNebulaName(n *celestial.DarkNebula) string {
	return s.memoized(n.ID, func() string {
		return fmt.Sprintf("LDN %04d", s.CatalogNumber(n.X, n.Y))
	})
}

func (s *Service) CrystalGardenName(g *celestial.CrystalGarden) string {
	return s.memoized(g.ID, func() string {
		return fmt.Sprintf("CGF-%04d", s.CatalogNumber(g.X, g.Y))
	})
}

func (s *Service) AsteroidGardenName(g *celestial.AsteroidGarden) string {
	return s.memoized(g.ID, func() string {
		return fmt.Sprintf("AST-%04d", s.CatalogNumber(g.X, g.Y))
	})
}

func (s *Service) RoguePlanetName(p *celestial.RoguePlanet) string {
	return s.memoized(p.ID, func() string {
		return fmt.Sprintf("PSO J%04d", s.CatalogNumber(p.X, p.Y))
	})
}

func (s *Service) ProtostarName(p *celestial.Protostar) string {
	return s.memoized(p.ID, func() string {
		return fmt.Sprintf("IRAS %04d", s.CatalogNumber(p.X, p.Y))
	})
}

func (s *Service) BlackHoleName(b *celestial.BlackHole) string {
	return s.memoized(b.ID, func() string {
		return fmt.Sprintf("BH-%04d", s.CatalogNumber(b.X, b.Y))
	})
}

// CometName follows provisional comet style: survey number plus the comet's
// index within its system.
func (s *Service) CometName(c *celestial.Comet) string {
	return s.memoized(c.ID, func() string {
		return fmt.Sprintf("C/%04d A%d", s.CatalogNumber(c.ParentStarX, c.ParentStarY), c.LocalIndex+1)
	})
}

// WormholeName marks the pair and which end this is. Both ends of a pair
// share the pair id, so the names differ only in the suffix.
func (s *Service) WormholeName(w *celestial.Wormhole) string {
	return s.memoized(w.ID, func() string {
		suffix := "A"
		if w.Designation == celestial.DesignationBeta {
			suffix = "B"
		}
		return fmt.Sprintf("WH-%s-%s", w.PairID, suffix)
	})
}

// DisplayName resolves any discoverable object to its designation. The
// switch is exhaustive over the celestial families; a family added without
// a naming rule falls through to a generic catalog entry and a warning.
func (s *Service) DisplayName(obj celestial.Body) string {
	switch o := obj.(type) {
	case *celestial.Star:
		return s.StarName(o)
	case *celestial.Planet:
		return s.PlanetName(o)
	case *celestial.Moon:
		return s.MoonName(o)
	case *celestial.Nebula:
		return s.NebulaName(o)
	case *celestial.DarkNebula:
		return s.DarkNebulaName(o)
	case *celestial.CrystalGarden:
		return s.CrystalGardenName(o)
	case *celestial.AsteroidGarden:
		return s.AsteroidGardenName(o)
	case *celestial.RoguePlanet:
		return s.RoguePlanetName(o)
	case *celestial.Protostar:
		return s.ProtostarName(o)
	case *celestial.BlackHole:
		return s.BlackHoleName(o)
	case *celestial.Comet:
		return s.CometName(o)
	case *celestial.Wormhole:
		return s.WormholeName(o)
	default:
		x, y := obj.Position()
		s.logger.Warn("No naming rule for object family",
			"operation", "display_name",
			"type", string(obj.Kind()),
		)
		return fmt.Sprintf("UNQ-%04d", s.CatalogNumber(x, y))
	}
}

// FullDesignation builds the complete catalog record for an object.
func (s *Service) FullDesignation(obj celestial.Body) *Record {
	if obj == nil {
		return nil
	}
	x, y := obj.Position()
	return &Record{
		Catalog:     fmt.Sprintf("%04d", s.CatalogNumber(x, y)),
		Designation: s.DisplayName(obj),
		Kind:        obj.Kind(),
		Notable:     s.IsNotable(obj),
	}
}

// IsNotable classifies whether a discovery warrants emphasis. Singular
// families are always notable; elsewhere the rarity tier decides.
func (s *Service) IsNotable(obj celestial.Body) bool {
	switch obj.Kind() {
	case celestial.TypeWormhole, celestial.TypeBlackHole:
		return true
	}
	switch obj.RarityTier() {
	case celestial.RarityRare, celestial.RarityExceptional:
		return true
	}
	return false
}

func (s *Service) memoized(key string, compute func() string) string {
	if name, ok := s.memo[key]; ok {
		return name
	}
	name := compute()
	s.memo[key] = name
	return name
}
