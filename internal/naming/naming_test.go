package naming

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager-server/internal/celestial"
	"voyager-server/internal/chunk"
	"voyager-server/internal/rng"
	"voyager-server/internal/spatial"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCatalogNumber_RangeAndStability(t *testing.T) {
	s := NewService(testLogger())

	for i := 0; i < 200; i++ {
		x := float64(i*137 - 5000)
		y := float64(i*-89 + 3000)
		n := s.CatalogNumber(x, y)
		assert.GreaterOrEqual(t, n, 1000)
		assert.LessOrEqual(t, n, 9999)
		assert.Equal(t, n, s.CatalogNumber(x, y))
	}
}

func TestStarName_TypeOverrides(t *testing.T) {
	s := NewService(testLogger())

	tests := []struct {
		typeName string
		prefix   string
	}{
		{"G-Type Yellow Dwarf", "ASV-"},
		{"M-Type Red Dwarf", "ASV-"},
		{"Neutron Star", "PSR J"},
		{"White Dwarf", "WD "},
	}
	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			star := &celestial.Star{StarTypeName: tt.typeName}
			star.ID = "star_test_" + tt.typeName
			star.X, star.Y = 1500, -2500
			name := s.StarName(star)
			assert.Contains(t, name, tt.prefix)
		})
	}
}

func TestPlanetName_LetterByRankAndTypeCode(t *testing.T) {
	s := NewService(testLogger())

	mk := func(rank int, typeName string) *celestial.Planet {
		p := &celestial.Planet{
			PlanetTypeName: typeName,
			OrbitalRank:    rank,
			ParentStarX:    1500,
			ParentStarY:    -2500,
		}
		p.ID = fmt.Sprintf("planet_test_%d_%s", rank, typeName)
		return p
	}

	host := fmt.Sprintf("ASV-%04d", s.CatalogNumber(1500, -2500))
	assert.Equal(t, host+" b", s.PlanetName(mk(0, "Rocky World")))
	assert.Equal(t, host+" c", s.PlanetName(mk(1, "Ocean World")))
	assert.Equal(t, host+" d [EX]", s.PlanetName(mk(2, "Exotic World")))
}

func TestMoonName_RomanNumeralFromOrdinal(t *testing.T) {
	s := NewService(testLogger())

	mk := func(ordinal int) *celestial.Moon {
		m := &celestial.Moon{
			ParentStarX: 1500,
			ParentStarY: -2500,
			PlanetRank:  0,
			Ordinal:     ordinal,
		}
		m.ID = fmt.Sprintf("moon_test_%d", ordinal)
		return m
	}

	host := fmt.Sprintf("ASV-%04d", s.CatalogNumber(1500, -2500))
	assert.Equal(t, host+" b I", s.MoonName(mk(0)))
	assert.Equal(t, host+" b III", s.MoonName(mk(2)))
}

func TestWormholeName_PairSuffixes(t *testing.T) {
	s := NewService(testLogger())

	r1 := rng.New(7)
	r2 := rng.New(7)
	alpha := celestial.NewWormhole(r1, 100, 200, -300, -400, celestial.DesignationAlpha)
	beta := celestial.NewWormhole(r2, -300, -400, 100, 200, celestial.DesignationBeta)

	an := s.WormholeName(alpha)
	bn := s.WormholeName(beta)
	assert.Equal(t, "WH-"+alpha.PairID+"-A", an)
	assert.Equal(t, "WH-"+alpha.PairID+"-B", bn)
}

func TestDisplayName_CoversEveryFamily(t *testing.T) {
	s := NewService(testLogger())
	r := rng.New(99)

	star := celestial.NewStar(rng.New(1), 100, 100)
	planet := celestial.NewPlanet(rng.New(2), star, 0, 300)
	moon := celestial.NewMoon(rng.New(3), planet, 0)
	comet := celestial.NewComet(rng.New(4), star, 0)

	objs := []celestial.Body{
		star, planet, moon, comet,
		celestial.NewNebula(r, 1, 1),
		celestial.NewDarkNebula(r, 2, 2),
		celestial.NewCrystalGarden(r, 3, 3),
		celestial.NewAsteroidGarden(r, 4, 4),
		celestial.NewRoguePlanet(r, 5, 5),
		celestial.NewProtostar(r, 6, 6),
		celestial.NewBlackHole(r, 7, 7),
		celestial.NewWormhole(r, 8, 8, -8, -8, celestial.DesignationAlpha),
	}

	seen := map[string]bool{}
	for _, o := range objs {
		name := s.DisplayName(o)
		require.NotEmpty(t, name)
		assert.NotContains(t, name, "UNQ-", "family %s missing a naming rule", o.Kind())
		seen[name] = true
	}
	assert.Len(t, seen, len(objs), "every family should yield a distinct name here")
}

func TestDisplayName_StableAcrossReload(t *testing.T) {
	cfg := chunk.Config{
		Seed:            12345,
		LoadRadius:      1,
		UnloadRadius:    2,
		MaxActiveChunks: 100,
		Tuning:          celestial.DefaultTuning(),
	}
	cfg.Tuning.StarChance = 1.0

	m, err := chunk.NewManager(cfg, testLogger())
	require.NoError(t, err)
	s := NewService(testLogger())

	c := spatial.ChunkCoord{CX: 0, CY: 0}
	before := m.GenerateChunk(c)
	require.NotEmpty(t, before.CelestialStars)

	names := map[string]string{}
	for _, b := range before.Bodies() {
		names[b.ObjectID()] = s.DisplayName(b)
	}

	// Evict via reset to the same seed, clear the memo, and name everything
	// again from freshly generated descriptors.
	m.Reset(12345)
	s.ClearCache()
	after := m.GenerateChunk(c)

	for _, b := range after.Bodies() {
		want, ok := names[b.ObjectID()]
		require.True(t, ok, "object %s missing after reload", b.ObjectID())
		assert.Equal(t, want, s.DisplayName(b))
	}
}

func TestClearCache_NoObservableEffect(t *testing.T) {
	s := NewService(testLogger())
	star := celestial.NewStar(rng.New(42), 9000, -9000)

	before := s.StarName(star)
	s.ClearCache()
	assert.Equal(t, before, s.StarName(star))
}

func TestFullDesignation(t *testing.T) {
	s := NewService(testLogger())

	assert.Nil(t, s.FullDesignation(nil))

	bh := celestial.NewBlackHole(rng.New(5), 400, 400)
	rec := s.FullDesignation(bh)
	require.NotNil(t, rec)
	assert.Equal(t, celestial.TypeBlackHole, rec.Kind)
	assert.Equal(t, s.DisplayName(bh), rec.Designation)
	assert.True(t, rec.Notable)
	assert.Len(t, rec.Catalog, 4)
}

func TestIsNotable(t *testing.T) {
	s := NewService(testLogger())
	r := rng.New(11)

	wh := celestial.NewWormhole(r, 1, 1, -1, -1, celestial.DesignationAlpha)
	assert.True(t, s.IsNotable(wh))

	common := &celestial.Star{}
	common.Type = celestial.TypeStar
	common.Rarity = celestial.RarityCommon
	assert.False(t, s.IsNotable(common))

	exceptional := &celestial.Star{}
	exceptional.Type = celestial.TypeStar
	exceptional.Rarity = celestial.RarityExceptional
	assert.True(t, s.IsNotable(exceptional))
}
