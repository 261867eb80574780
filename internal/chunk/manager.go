package chunk

import (
	"log/slog"
	"math"

	"voyager-server/internal/celestial"
	"voyager-server/internal/region"
	"voyager-server/internal/shared/errors"
	"voyager-server/internal/spatial"
)

// Chunk is the generated aggregate for one chunk coordinate. Objects are
// held in flat per-family lists; parent/child links live on the objects as
// ids and coordinates, never as owning pointers.
type Chunk struct {
	Coord           spatial.ChunkCoord            `json:"coord"`
	Region          region.Info                   `json:"region"`
	BackgroundStars []celestial.BackgroundStar    `json:"background_stars"`
	CelestialStars  []*celestial.Star             `json:"celestial_stars"`
	Planets         []*celestial.Planet           `json:"planets"`
	Moons           []*celestial.Moon             `json:"moons"`
	Nebulae         []*celestial.Nebula           `json:"nebulae"`
	Wormholes       []*celestial.Wormhole         `json:"wormholes"`
	BlackHoles      []*celestial.BlackHole        `json:"blackholes"`
	Comets          []*celestial.Comet            `json:"comets"`
	AsteroidGardens []*celestial.AsteroidGarden   `json:"asteroid_gardens"`
	RoguePlanets    []*celestial.RoguePlanet      `json:"rogue_planets"`
	DarkNebulae     []*celestial.DarkNebula       `json:"dark_nebulae"`
	CrystalGardens  []*celestial.CrystalGarden    `json:"crystal_gardens"`
	Protostars      []*celestial.Protostar        `json:"protostars"`
}

// Bodies returns every discoverable object in the chunk.
func (c *Chunk) Bodies() []celestial.Body {
	var out []celestial.Body
	for _, o := range c.CelestialStars {
		out = append(out, o)
	}
	for _, o := range c.Planets {
		out = append(out, o)
	}
	for _, o := range c.Moons {
		out = append(out, o)
	}
	for _, o := range c.Nebulae {
		out = append(out, o)
	}
	for _, o := range c.Wormholes {
		out = append(out, o)
	}
	for _, o := range c.BlackHoles {
		out = append(out, o)
	}
	for _, o := range c.Comets {
		out = append(out, o)
	}
	for _, o := range c.AsteroidGardens {
		out = append(out, o)
	}
	for _, o := range c.RoguePlanets {
		out = append(out, o)
	}
	for _, o := range c.DarkNebulae {
		out = append(out, o)
	}
	for _, o := range c.CrystalGardens {
		out = append(out, o)
	}
	for _, o := range c.Protostars {
		out = append(out, o)
	}
	return out
}

// ActiveObjects aggregates every loaded chunk's objects by family.
type ActiveObjects struct {
	BackgroundStars []celestial.BackgroundStar  `json:"background_stars"`
	CelestialStars  []*celestial.Star           `json:"celestial_stars"`
	Planets         []*celestial.Planet         `json:"planets"`
	Moons           []*celestial.Moon           `json:"moons"`
	Nebulae         []*celestial.Nebula         `json:"nebulae"`
	Wormholes       []*celestial.Wormhole       `json:"wormholes"`
	BlackHoles      []*celestial.BlackHole      `json:"blackholes"`
	Comets          []*celestial.Comet          `json:"comets"`
	AsteroidGardens []*celestial.AsteroidGarden `json:"asteroid_gardens"`
	RoguePlanets    []*celestial.RoguePlanet    `json:"rogue_planets"`
	DarkNebulae     []*celestial.DarkNebula     `json:"dark_nebulae"`
	CrystalGardens  []*celestial.CrystalGarden  `json:"crystal_gardens"`
	Protostars      []*celestial.Protostar      `json:"protostars"`
}

// Bodies flattens the aggregate into a single discoverable list.
func (a *ActiveObjects) Bodies() []celestial.Body {
	var out []celestial.Body
	for _, o := range a.CelestialStars {
		out = append(out, o)
	}
	for _, o := range a.Planets {
		out = append(out, o)
	}
	for _, o := range a.Moons {
		out = append(out, o)
	}
	for _, o := range a.Nebulae {
		out = append(out, o)
	}
	for _, o := range a.Wormholes {
		out = append(out, o)
	}
	for _, o := range a.BlackHoles {
		out = append(out, o)
	}
	for _, o := range a.Comets {
		out = append(out, o)
	}
	for _, o := range a.AsteroidGardens {
		out = append(out, o)
	}
	for _, o := range a.RoguePlanets {
		out = append(out, o)
	}
	for _, o := range a.DarkNebulae {
		out = append(out, o)
	}
	for _, o := range a.CrystalGardens {
		out = append(out, o)
	}
	for _, o := range a.Protostars {
		out = append(out, o)
	}
	return out
}

// Config parameterizes a Manager. Tuning defaults come from the celestial
// package; tests raise individual chances to force rare rolls.
type Config struct {
	Seed            int64
	LoadRadius      int
	UnloadRadius    int
	MaxActiveChunks int
	Tuning          celestial.Tuning
}

// Manager owns the chunk cache. It is the only writer of the cache map;
// callers read generated descriptors and flip discovery flags on them, but
// never touch the map itself. Generation is synchronous: a chunk is either
// absent or complete, never partial.
type Manager struct {
	cfg     Config
	regions *region.Service
	chunks  map[spatial.ChunkCoord]*Chunk
	logger  *slog.Logger

	viewerX   float64
	viewerY   float64
	hasViewer bool
}

func NewManager(cfg Config, logger *slog.Logger) (*Manager, error) {
	if cfg.LoadRadius <= 0 {
		return nil, errors.Validation("load radius must be positive")
	}
	if cfg.UnloadRadius <= cfg.LoadRadius {
		return nil, errors.Validation("unload radius must exceed load radius")
	}
	if cfg.Tuning.PlacementAttempts <= 0 {
		cfg.Tuning = celestial.DefaultTuning()
	}

	m := &Manager{
		cfg:     cfg,
		regions: region.NewService(cfg.Seed, logger),
		chunks:  make(map[spatial.ChunkCoord]*Chunk),
		logger:  logger.With("component", "chunk_manager"),
	}

	m.logger.Info("Chunk manager initialized",
		"seed", cfg.Seed,
		"load_radius", cfg.LoadRadius,
		"unload_radius", cfg.UnloadRadius,
	)
	return m, nil
}

// ValidateSeed converts a raw numeric seed into the integer form the
// generator requires. Non-finite or fractional seeds are rejected rather
// than silently coerced, since coercion would break determinism guarantees.
func ValidateSeed(raw float64) (int64, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, errors.Validation("universe seed must be a finite number")
	}
	if raw != math.Trunc(raw) {
		return 0, errors.Validation("universe seed must be an integer")
	}
	return int64(raw), nil
}

// Seed returns the universe seed currently in effect.
func (m *Manager) Seed() int64 {
	return m.cfg.Seed
}

func (m *Manager) LoadRadius() int   { return m.cfg.LoadRadius }
func (m *Manager) UnloadRadius() int { return m.cfg.UnloadRadius }

// Reset swaps in a new universe seed and drops every cached chunk. Recorded
// discoveries live in the save layer and are untouched.
func (m *Manager) Reset(seed int64) {
	m.cfg.Seed = seed
	m.regions = region.NewService(seed, m.logger)
	m.chunks = make(map[spatial.ChunkCoord]*Chunk)
	m.hasViewer = false
	m.logger.Info("Universe reset", "seed", seed)
}

// ActiveChunkCount reports the size of the cache.
func (m *Manager) ActiveChunkCount() int {
	return len(m.chunks)
}

// ActiveChunks lists the cached chunk coordinates.
func (m *Manager) ActiveChunks() []spatial.ChunkCoord {
	out := make([]spatial.ChunkCoord, 0, len(m.chunks))
	for c := range m.chunks {
		out = append(out, c)
	}
	return out
}

// ChunkRegion classifies the center of a chunk.
func (m *Manager) ChunkRegion(c spatial.ChunkCoord) region.Info {
	ox, oy := c.Origin()
	return m.regions.At(ox+spatial.ChunkSize/2, oy+spatial.ChunkSize/2)
}

// RegionAt classifies an arbitrary world position.
func (m *Manager) RegionAt(worldX, worldY float64) region.Info {
	return m.regions.At(worldX, worldY)
}

// GenerateChunk returns the chunk at the coordinate, generating it if it is
// not cached. Repeated calls return the same instance; regeneration after
// eviction reproduces identical descriptors because everything derives from
// the chunk's own seed.
func (m *Manager) GenerateChunk(c spatial.ChunkCoord) *Chunk {
	if ch, ok := m.chunks[c]; ok {
		return ch
	}

	ch := m.generate(c)
	m.chunks[c] = ch
	return ch
}

// UpdateActiveChunks loads every chunk within the load radius of the viewer
// and evicts chunks beyond the unload radius. The gap between the radii is
// the hysteresis that prevents thrashing at the boundary. Returns the
// coordinates loaded and evicted by this call.
func (m *Manager) UpdateActiveChunks(viewerX, viewerY float64) (loaded, evicted []spatial.ChunkCoord) {
	m.viewerX, m.viewerY = viewerX, viewerY
	m.hasViewer = true

	vc := spatial.ToChunkCoord(viewerX, viewerY)

	for cx := vc.CX - m.cfg.LoadRadius; cx <= vc.CX+m.cfg.LoadRadius; cx++ {
		for cy := vc.CY - m.cfg.LoadRadius; cy <= vc.CY+m.cfg.LoadRadius; cy++ {
			c := spatial.ChunkCoord{CX: cx, CY: cy}
			if _, ok := m.chunks[c]; !ok {
				m.GenerateChunk(c)
				loaded = append(loaded, c)
			}
		}
	}

	for c := range m.chunks {
		if chebyshev(c, vc) > m.cfg.UnloadRadius {
			delete(m.chunks, c)
			evicted = append(evicted, c)
		}
	}

	// Hard cap as a safety net; evict the farthest chunks first.
	for m.cfg.MaxActiveChunks > 0 && len(m.chunks) > m.cfg.MaxActiveChunks {
		var worst spatial.ChunkCoord
		worstDist := -1
		for c := range m.chunks {
			if d := chebyshev(c, vc); d > worstDist {
				worst, worstDist = c, d
			}
		}
		delete(m.chunks, worst)
		evicted = append(evicted, worst)
	}

	if len(loaded) > 0 || len(evicted) > 0 {
		m.logger.Debug("Active chunk set updated",
			"viewer_chunk", vc.String(),
			"loaded", len(loaded),
			"evicted", len(evicted),
			"active", len(m.chunks),
		)
	}
	return loaded, evicted
}

// ActiveObjects aggregates every cached chunk's objects by family.
func (m *Manager) ActiveObjects() *ActiveObjects {
	agg := &ActiveObjects{}
	for _, ch := range m.chunks {
		agg.BackgroundStars = append(agg.BackgroundStars, ch.BackgroundStars...)
		agg.CelestialStars = append(agg.CelestialStars, ch.CelestialStars...)
		agg.Planets = append(agg.Planets, ch.Planets...)
		agg.Moons = append(agg.Moons, ch.Moons...)
		agg.Nebulae = append(agg.Nebulae, ch.Nebulae...)
		agg.Wormholes = append(agg.Wormholes, ch.Wormholes...)
		agg.BlackHoles = append(agg.BlackHoles, ch.BlackHoles...)
		agg.Comets = append(agg.Comets, ch.Comets...)
		agg.AsteroidGardens = append(agg.AsteroidGardens, ch.AsteroidGardens...)
		agg.RoguePlanets = append(agg.RoguePlanets, ch.RoguePlanets...)
		agg.DarkNebulae = append(agg.DarkNebulae, ch.DarkNebulae...)
		agg.CrystalGardens = append(agg.CrystalGardens, ch.CrystalGardens...)
		agg.Protostars = append(agg.Protostars, ch.Protostars...)
	}
	return agg
}

func chebyshev(a, b spatial.ChunkCoord) int {
	dx := a.CX - b.CX
	if dx < 0 {
		dx = -dx
	}
	dy := a.CY - b.CY
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
