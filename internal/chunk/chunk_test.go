package chunk

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager-server/internal/celestial"
	"voyager-server/internal/spatial"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(seed int64) Config {
	return Config{
		Seed:            seed,
		LoadRadius:      1,
		UnloadRadius:    2,
		MaxActiveChunks: 100,
		Tuning:          celestial.DefaultTuning(),
	}
}

func newTestManager(t *testing.T, cfg Config) *Manager {
	t.Helper()
	m, err := NewManager(cfg, testLogger())
	require.NoError(t, err)
	return m
}

// barrenTuning zeroes every family that occupies chunk space, so singular
// placement never exhausts its attempts in tests that force a roll.
func barrenTuning() celestial.Tuning {
	tn := celestial.DefaultTuning()
	tn.StarChance = 0
	tn.NebulaChance = 0
	tn.AsteroidChance = 0
	tn.RoguePlanetChance = 0
	tn.DarkNebulaChance = 0
	tn.CrystalGardenChance = 0
	tn.ProtostarChance = 0
	return tn
}

func TestNewManager_ValidatesRadii(t *testing.T) {
	cfg := testConfig(1)
	cfg.LoadRadius = 0
	_, err := NewManager(cfg, testLogger())
	assert.Error(t, err)

	cfg = testConfig(1)
	cfg.UnloadRadius = cfg.LoadRadius
	_, err = NewManager(cfg, testLogger())
	assert.Error(t, err)
}

func TestValidateSeed(t *testing.T) {
	seed, err := ValidateSeed(12345)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), seed)

	seed, err = ValidateSeed(-7)
	require.NoError(t, err)
	assert.Equal(t, int64(-7), seed)

	_, err = ValidateSeed(1.5)
	assert.Error(t, err)

	_, err = ValidateSeed(nan())
	assert.Error(t, err)
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestGenerateChunk_Deterministic(t *testing.T) {
	c := spatial.ChunkCoord{CX: 0, CY: 0}

	cfg := testConfig(12345)
	cfg.Tuning.StarChance = 1.0
	m1 := newTestManager(t, cfg)
	m2 := newTestManager(t, cfg)

	ch1 := m1.GenerateChunk(c)
	ch2 := m2.GenerateChunk(c)

	assert.Equal(t, ch1, ch2, "same seed must reproduce the chunk exactly")

	cfg3 := testConfig(54321)
	cfg3.Tuning.StarChance = 1.0
	m3 := newTestManager(t, cfg3)
	ch3 := m3.GenerateChunk(c)
	assert.NotEqual(t, idsOf(ch1), idsOf(ch3), "different seeds should diverge")
}

func TestGenerateChunk_Idempotent(t *testing.T) {
	m := newTestManager(t, testConfig(12345))
	c := spatial.ChunkCoord{CX: 3, CY: -2}

	ch1 := m.GenerateChunk(c)
	ch2 := m.GenerateChunk(c)
	assert.Same(t, ch1, ch2, "repeated generation must return the cached instance")
	assert.Equal(t, 1, m.ActiveChunkCount())
}

func TestGenerateChunk_OrderIndependent(t *testing.T) {
	coords := []spatial.ChunkCoord{
		{CX: 0, CY: 0}, {CX: 1, CY: 0}, {CX: -1, CY: 1}, {CX: 5, CY: -3},
	}

	forward := newTestManager(t, testConfig(999))
	reverse := newTestManager(t, testConfig(999))

	for _, c := range coords {
		forward.GenerateChunk(c)
	}
	for i := len(coords) - 1; i >= 0; i-- {
		reverse.GenerateChunk(coords[i])
	}

	for _, c := range coords {
		assert.Equal(t, forward.GenerateChunk(c), reverse.GenerateChunk(c),
			"chunk %s must not depend on generation order", c)
	}
}

func TestGenerateChunk_ReloadStable(t *testing.T) {
	cfg := testConfig(777)
	m := newTestManager(t, cfg)
	c := spatial.ChunkCoord{CX: 2, CY: 2}

	before := m.GenerateChunk(c)
	beforeIDs := idsOf(before)

	// Drive the viewer far away so the chunk evicts, then come back.
	ox, oy := c.Origin()
	m.UpdateActiveChunks(ox, oy)
	far := float64(cfg.UnloadRadius+5) * spatial.ChunkSize
	_, evicted := m.UpdateActiveChunks(ox+far, oy+far)
	assert.Contains(t, evicted, c)

	after := m.GenerateChunk(c)
	assert.Equal(t, beforeIDs, idsOf(after), "regenerated chunk must match the evicted one")
	assert.Equal(t, before, after)
}

func TestUpdateActiveChunks_Hysteresis(t *testing.T) {
	cfg := testConfig(42)
	m := newTestManager(t, cfg)

	loaded, _ := m.UpdateActiveChunks(500, 500)
	wantLoaded := (2*cfg.LoadRadius + 1) * (2*cfg.LoadRadius + 1)
	assert.Len(t, loaded, wantLoaded)

	// One chunk over: still inside the unload radius, nothing evicts.
	_, evicted := m.UpdateActiveChunks(500+spatial.ChunkSize, 500)
	assert.Empty(t, evicted)

	// Far enough that the old neighborhood crosses the unload radius.
	_, evicted = m.UpdateActiveChunks(500+4*spatial.ChunkSize, 500)
	assert.NotEmpty(t, evicted)
	for _, c := range m.ActiveChunks() {
		vc := spatial.ToChunkCoord(500+4*spatial.ChunkSize, 500)
		assert.LessOrEqual(t, chebyshev(c, vc), cfg.UnloadRadius)
	}
}

func TestUpdateActiveChunks_MaxActiveCap(t *testing.T) {
	cfg := testConfig(42)
	cfg.LoadRadius = 2
	cfg.UnloadRadius = 10
	cfg.MaxActiveChunks = 25
	m := newTestManager(t, cfg)

	m.UpdateActiveChunks(0, 0)
	m.UpdateActiveChunks(5*spatial.ChunkSize, 0)
	assert.LessOrEqual(t, m.ActiveChunkCount(), cfg.MaxActiveChunks)
}

func TestReset_ClearsCacheAndChangesOutput(t *testing.T) {
	m := newTestManager(t, testConfig(12345))
	c := spatial.ChunkCoord{CX: 0, CY: 0}

	before := idsOf(m.GenerateChunk(c))
	m.Reset(67890)
	assert.Equal(t, 0, m.ActiveChunkCount())
	assert.Equal(t, int64(67890), m.Seed())

	after := idsOf(m.GenerateChunk(c))
	assert.NotEqual(t, before, after)

	m.Reset(12345)
	assert.Equal(t, before, idsOf(m.GenerateChunk(c)))
}

func TestWormholePair_TwinConsistency(t *testing.T) {
	cfg := testConfig(2024)
	cfg.Tuning = barrenTuning()
	cfg.Tuning.WormholeChance = 1.0
	m := newTestManager(t, cfg)

	alphaChunk := spatial.ChunkCoord{CX: 0, CY: 0}
	ch := m.GenerateChunk(alphaChunk)
	require.NotEmpty(t, ch.Wormholes)

	var alpha *celestial.Wormhole
	for _, w := range ch.Wormholes {
		if w.Designation == celestial.DesignationAlpha {
			alpha = w
		}
	}
	require.NotNil(t, alpha, "own-roll endpoint must be present")

	twinChunk := spatial.ToChunkCoord(alpha.TwinX, alpha.TwinY)
	tch := m.GenerateChunk(twinChunk)

	var beta *celestial.Wormhole
	for _, w := range tch.Wormholes {
		if w.PairID == alpha.PairID && w.Designation == celestial.DesignationBeta {
			beta = w
		}
	}
	require.NotNil(t, beta, "twin chunk must materialize the beta endpoint")

	assert.Equal(t, alpha.TwinX, beta.X)
	assert.Equal(t, alpha.TwinY, beta.Y)
	assert.Equal(t, alpha.X, beta.TwinX)
	assert.Equal(t, alpha.Y, beta.TwinY)
	assert.Equal(t, alpha.Radius, beta.Radius)
}

func TestWormholePair_BetaBeforeAlpha(t *testing.T) {
	cfg := testConfig(2024)
	cfg.Tuning = barrenTuning()
	cfg.Tuning.WormholeChance = 1.0

	alphaChunk := spatial.ChunkCoord{CX: 0, CY: 0}

	// First manager loads alpha's chunk first.
	m1 := newTestManager(t, cfg)
	ch := m1.GenerateChunk(alphaChunk)
	var alpha *celestial.Wormhole
	for _, w := range ch.Wormholes {
		if w.Designation == celestial.DesignationAlpha {
			alpha = w
		}
	}
	require.NotNil(t, alpha)
	twinChunk := spatial.ToChunkCoord(alpha.TwinX, alpha.TwinY)

	// Second manager loads the twin's chunk first, never alpha's.
	m2 := newTestManager(t, cfg)
	tch := m2.GenerateChunk(twinChunk)

	var beta *celestial.Wormhole
	for _, w := range tch.Wormholes {
		if w.PairID == alpha.PairID {
			beta = w
		}
	}
	require.NotNil(t, beta, "beta must exist without alpha's chunk ever loading")
	assert.Equal(t, celestial.DesignationBeta, beta.Designation)
	assert.Equal(t, alpha.TwinX, beta.X)
	assert.Equal(t, alpha.TwinY, beta.Y)
}

func TestBlackHole_IsolatedFromAllBodies(t *testing.T) {
	cfg := testConfig(31337)
	cfg.Tuning.BlackHoleChance = 1.0
	cfg.Tuning.WormholeChance = 0
	m := newTestManager(t, cfg)

	// Planets, moons and comets orbit far beyond their star's center, and
	// the decorative families land anywhere in the chunk, so the check has
	// to cover every body, not just star placements.
	found, checked := 0, 0
	for cx := -10; cx <= 10; cx++ {
		for cy := -10; cy <= 10; cy++ {
			c := spatial.ChunkCoord{CX: cx, CY: cy}
			ch := m.GenerateChunk(c)
			for _, bh := range ch.BlackHoles {
				found++
				for _, b := range ch.Bodies() {
					if b.Kind() == celestial.TypeBlackHole {
						continue
					}
					checked++
					bx, by := b.Position()
					d := spatial.Dist(bh.X, bh.Y, bx, by)
					assert.GreaterOrEqual(t, d, cfg.Tuning.IsolationRadius,
						"%s in %s inside the isolation radius of %s", b.ObjectID(), c, bh.ID)
				}
			}
		}
	}
	assert.Greater(t, found, 0, "forced chance should place at least one black hole")
	assert.Greater(t, checked, 0, "some populated chunk should still fit a black hole")
}

func TestWormhole_IsolatedFromAllBodies(t *testing.T) {
	cfg := testConfig(31337)
	cfg.Tuning.WormholeChance = 1.0
	cfg.Tuning.BlackHoleChance = 1.0
	m := newTestManager(t, cfg)

	// Only the own-roll endpoint is placement-checked; beta endpoints are
	// position-locked by the pair reflection.
	found := 0
	for cx := -5; cx <= 5; cx++ {
		for cy := -5; cy <= 5; cy++ {
			c := spatial.ChunkCoord{CX: cx, CY: cy}
			ch := m.GenerateChunk(c)
			for _, w := range ch.Wormholes {
				if w.Designation != celestial.DesignationAlpha {
					continue
				}
				found++
				for _, b := range ch.Bodies() {
					if b.Kind() == celestial.TypeWormhole {
						continue
					}
					bx, by := b.Position()
					d := spatial.Dist(w.X, w.Y, bx, by)
					assert.GreaterOrEqual(t, d, cfg.Tuning.IsolationRadius,
						"%s in %s inside the isolation radius of %s", b.ObjectID(), c, w.ID)
				}
			}
		}
	}
	assert.Greater(t, found, 0, "forced chance should place at least one wormhole")
}

func TestRunFamily_RecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	m, err := NewManager(testConfig(1), slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, err)

	c := spatial.ChunkCoord{CX: 0, CY: 0}
	ran := false
	assert.NotPanics(t, func() {
		m.runFamily(c, "broken", func() { panic("bad descriptor") })
		m.runFamily(c, "healthy", func() { ran = true })
	})
	assert.True(t, ran, "a failed family must not block the ones after it")
	assert.Contains(t, buf.String(), "Generation family failed, skipping")
	assert.Contains(t, buf.String(), "broken")
}

func TestGenerateChunk_ObjectsInsideBounds(t *testing.T) {
	m := newTestManager(t, testConfig(5150))

	for cx := -2; cx <= 2; cx++ {
		for cy := -2; cy <= 2; cy++ {
			c := spatial.ChunkCoord{CX: cx, CY: cy}
			ch := m.GenerateChunk(c)
			ox, oy := c.Origin()
			for _, s := range ch.CelestialStars {
				assert.GreaterOrEqual(t, s.X, ox)
				assert.Less(t, s.X, ox+spatial.ChunkSize)
				assert.GreaterOrEqual(t, s.Y, oy)
				assert.Less(t, s.Y, oy+spatial.ChunkSize)
			}
		}
	}
}

func TestStarPlacements_MinimumSeparation(t *testing.T) {
	cfg := testConfig(8080)
	cfg.Tuning.StarChance = 1.0
	m := newTestManager(t, cfg)

	for cx := 0; cx < 5; cx++ {
		placements := m.starPlacements(spatial.ChunkCoord{CX: cx, CY: 0})
		for i := range placements {
			for j := i + 1; j < len(placements); j++ {
				d := spatial.Dist(placements[i].x, placements[i].y, placements[j].x, placements[j].y)
				assert.GreaterOrEqual(t, d, cfg.Tuning.MinStarSeparation)
			}
		}
	}
}

func TestActiveObjects_AggregatesLoadedChunks(t *testing.T) {
	cfg := testConfig(12345)
	cfg.Tuning.StarChance = 1.0
	m := newTestManager(t, cfg)

	m.UpdateActiveChunks(500, 500)
	agg := m.ActiveObjects()
	assert.NotEmpty(t, agg.BackgroundStars)
	assert.NotEmpty(t, agg.CelestialStars)

	total := 0
	for _, c := range m.ActiveChunks() {
		total += len(m.GenerateChunk(c).CelestialStars)
	}
	assert.Len(t, agg.CelestialStars, total)
	assert.NotEmpty(t, agg.Bodies())
}

func idsOf(ch *Chunk) []string {
	var ids []string
	for _, b := range ch.Bodies() {
		ids = append(ids, b.ObjectID())
	}
	return ids
}
