package chunk

import (
	"math"

	"voyager-server/internal/celestial"
	"voyager-server/internal/rng"
	"voyager-server/internal/spatial"
)

// starPlacement is the position-only outcome of a star roll. Placement is
// split from full system generation so wormhole and black hole isolation
// checks can replay it without paying for planets and moons.
type starPlacement struct {
	seed uint32
	x, y float64
}

// starPlacements replays the star rolls for a chunk. The attempt index is
// folded into each roll's seed, so the outcome of attempt i never depends
// on how attempts before it were consumed.
func (m *Manager) starPlacements(c spatial.ChunkCoord) []starPlacement {
	cs := spatial.ChunkSeed(m.cfg.Seed, c)
	reg := m.ChunkRegion(c)
	ox, oy := c.Origin()
	t := m.cfg.Tuning

	var out []starPlacement
	for i := 0; i < t.StarAttempts; i++ {
		r := rng.New(spatial.ObjectSeed(cs, "star", i))
		if !r.Chance(t.StarChance * reg.Weights.StarDensity) {
			continue
		}

		placed := false
		var px, py float64
		for a := 0; a < t.PlacementAttempts; a++ {
			px = ox + r.NextFloat(50, spatial.ChunkSize-50)
			py = oy + r.NextFloat(50, spatial.ChunkSize-50)
			if separatedFrom(out, px, py, t.MinStarSeparation) {
				placed = true
				break
			}
		}
		if !placed {
			continue
		}
		out = append(out, starPlacement{
			seed: spatial.ObjectSeed(cs, "system", i),
			x:    px,
			y:    py,
		})
	}
	return out
}

func separatedFrom(placed []starPlacement, x, y, minDist float64) bool {
	for _, p := range placed {
		if spatial.Dist(p.x, p.y, x, y) < minDist {
			return false
		}
	}
	return true
}

// point is a bare occupied position used by isolation checks.
type point struct {
	x, y float64
}

func clearOf(occupied []point, x, y, radius float64) bool {
	for _, p := range occupied {
		if spatial.Dist(p.x, p.y, x, y) < radius {
			return false
		}
	}
	return true
}

// occupiedPositions replays every non-singular body position in a chunk:
// full system extents (stars, planets, moons, comets) plus the decorative
// family rolls. Isolation checks run against these, never against star
// centers alone, because planets and comets orbit well past the isolation
// radius. Pure in the chunk coordinate, so cross-chunk replays agree.
func (m *Manager) occupiedPositions(c spatial.ChunkCoord) []point {
	reg := m.ChunkRegion(c)

	var pts []point
	for _, pl := range m.starPlacements(c) {
		sys := celestial.NewSystem(pl.seed, reg, pl.x, pl.y)
		pts = append(pts, point{sys.Star.X, sys.Star.Y})
		for _, p := range sys.Planets {
			pts = append(pts, point{p.X, p.Y})
		}
		for _, mn := range sys.Moons {
			pts = append(pts, point{mn.X, mn.Y})
		}
		for _, cm := range sys.Comets {
			pts = append(pts, point{cm.X, cm.Y})
		}
	}
	for _, roll := range m.decorativeRolls(c) {
		if roll.ok {
			pts = append(pts, point{roll.x, roll.y})
		}
	}
	return pts
}

// decorativeRoll is the deterministic outcome of one chunk-level decorative
// family: whether it appears, where, and the generator mid-stream so the
// constructor draws its remaining attributes from the same state.
type decorativeRoll struct {
	family string
	x, y   float64
	r      *rng.SeededRNG
	ok     bool
}

// decorativeRolls replays the chunk-level decorative families in a fixed
// order. Both generation and the isolation occupancy scan consume this one
// list, so the two can never disagree.
func (m *Manager) decorativeRolls(c spatial.ChunkCoord) []decorativeRoll {
	cs := spatial.ChunkSeed(m.cfg.Seed, c)
	reg := m.ChunkRegion(c)
	ox, oy := c.Origin()
	t := m.cfg.Tuning

	families := []struct {
		family string
		tag    string
		chance float64
	}{
		{"nebulae", "nebula", t.NebulaChance * reg.Weights.NebulaChance},
		{"asteroid_gardens", "asteroids", t.AsteroidChance},
		{"rogue_planets", "rogue", t.RoguePlanetChance * reg.Weights.RareChance},
		{"dark_nebulae", "darknebula", t.DarkNebulaChance * reg.Weights.RareChance},
		{"crystal_gardens", "crystal", t.CrystalGardenChance * reg.Weights.RareChance},
		{"protostars", "protostar", t.ProtostarChance * reg.Weights.RareChance},
	}

	rolls := make([]decorativeRoll, 0, len(families))
	for _, f := range families {
		r := rng.New(spatial.ObjectSeed(cs, f.tag, 0))
		if !r.Chance(f.chance) {
			rolls = append(rolls, decorativeRoll{family: f.family})
			continue
		}
		rolls = append(rolls, decorativeRoll{
			family: f.family,
			x:      ox + r.NextFloat(0, spatial.ChunkSize),
			y:      oy + r.NextFloat(0, spatial.ChunkSize),
			r:      r,
			ok:     true,
		})
	}
	return rolls
}

func (ch *Chunk) addDecorative(roll decorativeRoll) {
	switch roll.family {
	case "nebulae":
		ch.Nebulae = append(ch.Nebulae, celestial.NewNebula(roll.r, roll.x, roll.y))
	case "asteroid_gardens":
		ch.AsteroidGardens = append(ch.AsteroidGardens, celestial.NewAsteroidGarden(roll.r, roll.x, roll.y))
	case "rogue_planets":
		ch.RoguePlanets = append(ch.RoguePlanets, celestial.NewRoguePlanet(roll.r, roll.x, roll.y))
	case "dark_nebulae":
		ch.DarkNebulae = append(ch.DarkNebulae, celestial.NewDarkNebula(roll.r, roll.x, roll.y))
	case "crystal_gardens":
		ch.CrystalGardens = append(ch.CrystalGardens, celestial.NewCrystalGarden(roll.r, roll.x, roll.y))
	case "protostars":
		ch.Protostars = append(ch.Protostars, celestial.NewProtostar(roll.r, roll.x, roll.y))
	}
}

func (m *Manager) generate(c spatial.ChunkCoord) *Chunk {
	cs := spatial.ChunkSeed(m.cfg.Seed, c)
	ox, oy := c.Origin()
	reg := m.ChunkRegion(c)

	ch := &Chunk{Coord: c, Region: reg}

	m.runFamily(c, "background_stars", func() {
		r := rng.New(spatial.ObjectSeed(cs, "background", 0))
		ch.BackgroundStars = celestial.NewBackgroundStars(r, ox, oy)
	})

	m.runFamily(c, "star_systems", func() {
		for _, pl := range m.starPlacements(c) {
			sys := celestial.NewSystem(pl.seed, reg, pl.x, pl.y)
			ch.CelestialStars = append(ch.CelestialStars, sys.Star)
			ch.Planets = append(ch.Planets, sys.Planets...)
			ch.Moons = append(ch.Moons, sys.Moons...)
			ch.Comets = append(ch.Comets, sys.Comets...)
		}
	})

	for _, roll := range m.decorativeRolls(c) {
		if !roll.ok {
			continue
		}
		roll := roll
		m.runFamily(c, roll.family, func() {
			ch.addDecorative(roll)
		})
	}

	m.runFamily(c, "blackholes", func() {
		if roll := m.rollBlackHole(c); roll.ok {
			ch.BlackHoles = append(ch.BlackHoles, celestial.NewBlackHole(roll.r, roll.x, roll.y))
		}
	})

	m.runFamily(c, "wormholes", func() {
		ch.Wormholes = m.generateWormholes(c)
	})

	return ch
}

// runFamily isolates one generation family so a defective descriptor cannot
// take the rest of the chunk down with it.
func (m *Manager) runFamily(c spatial.ChunkCoord, family string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			m.logger.Error("Generation family failed, skipping",
				"operation", "generate_chunk",
				"chunk", c.String(),
				"family", family,
				"panic", rec,
			)
		}
	}()
	fn()
}

// placementRoll is the deterministic outcome of a singular family's chance
// and placement rolls. The rng is returned mid-stream so the constructor
// (and, for wormholes, both endpoints of a pair) draws the remaining
// attributes from the same state.
type placementRoll struct {
	x, y float64
	r    *rng.SeededRNG
	ok   bool
}

// rollBlackHole replays the black hole roll for a chunk. Placement must
// clear the isolation radius against every body the chunk holds, so the
// check runs over the full occupancy replay.
func (m *Manager) rollBlackHole(c spatial.ChunkCoord) placementRoll {
	cs := spatial.ChunkSeed(m.cfg.Seed, c)
	reg := m.ChunkRegion(c)
	r := rng.New(spatial.ObjectSeed(cs, "blackhole", 0))
	if !r.Chance(m.cfg.Tuning.BlackHoleChance * reg.Weights.RareChance) {
		return placementRoll{}
	}

	ox, oy := c.Origin()
	occupied := m.occupiedPositions(c)
	for a := 0; a < m.cfg.Tuning.PlacementAttempts; a++ {
		x := ox + r.NextFloat(0, spatial.ChunkSize)
		y := oy + r.NextFloat(0, spatial.ChunkSize)
		if clearOf(occupied, x, y, m.cfg.Tuning.IsolationRadius) {
			return placementRoll{x: x, y: y, r: r, ok: true}
		}
	}
	m.logger.Debug("Black hole placement exhausted", "chunk", c.String())
	return placementRoll{}
}

// rollWormhole replays a chunk's wormhole roll. The endpoint keeps clear of
// every occupied position, the chunk's black hole included.
func (m *Manager) rollWormhole(c spatial.ChunkCoord) placementRoll {
	cs := spatial.ChunkSeed(m.cfg.Seed, c)
	r := rng.New(spatial.ObjectSeed(cs, "wormhole", 0))
	if !r.Chance(m.cfg.Tuning.WormholeChance) {
		return placementRoll{}
	}

	ox, oy := c.Origin()
	occupied := m.occupiedPositions(c)
	if bh := m.rollBlackHole(c); bh.ok {
		occupied = append(occupied, point{bh.x, bh.y})
	}
	for a := 0; a < m.cfg.Tuning.PlacementAttempts; a++ {
		x := ox + r.NextFloat(0, spatial.ChunkSize)
		y := oy + r.NextFloat(0, spatial.ChunkSize)
		if clearOf(occupied, x, y, m.cfg.Tuning.IsolationRadius) {
			return placementRoll{x: x, y: y, r: r, ok: true}
		}
	}
	return placementRoll{}
}

// generateWormholes materializes both wormhole kinds a chunk can hold: the
// alpha endpoint from the chunk's own roll, and beta endpoints reflected in
// from other chunks' rolls. The beta scan replays the source chunks' rolls,
// so a pair looks identical no matter which endpoint's chunk loads first,
// or whether the twin's chunk ever loads at all.
func (m *Manager) generateWormholes(c spatial.ChunkCoord) []*celestial.Wormhole {
	var out []*celestial.Wormhole

	if roll := m.rollWormhole(c); roll.ok {
		tx, ty := celestial.TwinPosition(m.cfg.Seed, roll.x, roll.y)
		out = append(out, celestial.NewWormhole(roll.r, roll.x, roll.y, tx, ty, celestial.DesignationAlpha))
	}

	for _, src := range m.twinSourceChunks(c) {
		roll := m.rollWormhole(src)
		if !roll.ok {
			continue
		}
		tx, ty := celestial.TwinPosition(m.cfg.Seed, roll.x, roll.y)
		if spatial.ToChunkCoord(tx, ty) != c {
			continue
		}
		out = append(out, celestial.NewWormhole(roll.r, tx, ty, roll.x, roll.y, celestial.DesignationBeta))
	}
	return out
}

// twinSourceChunks finds every chunk whose own-roll endpoint could reflect
// into c. Reflection through the anchor maps c's bounds onto an axis-aligned
// rectangle, so the candidates are the chunks that rectangle overlaps.
func (m *Manager) twinSourceChunks(c spatial.ChunkCoord) []spatial.ChunkCoord {
	ox, oy := c.Origin()
	x1, y1 := celestial.TwinPosition(m.cfg.Seed, ox, oy)
	x2, y2 := celestial.TwinPosition(m.cfg.Seed, ox+spatial.ChunkSize, oy+spatial.ChunkSize)

	lo := spatial.ToChunkCoord(math.Min(x1, x2), math.Min(y1, y2))
	hi := spatial.ToChunkCoord(math.Max(x1, x2), math.Max(y1, y2))

	var out []spatial.ChunkCoord
	for cx := lo.CX; cx <= hi.CX; cx++ {
		for cy := lo.CY; cy <= hi.CY; cy++ {
			out = append(out, spatial.ChunkCoord{CX: cx, CY: cy})
		}
	}
	return out
}
