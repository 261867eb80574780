package celestial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager-server/internal/region"
	"voyager-server/internal/rng"
	"voyager-server/internal/spatial"
)

func testRegion() region.Info {
	return region.Info{
		Type: region.TypeFrontier,
		Name: "Frontier",
		Weights: region.Weights{
			StarDensity:    1,
			PlanetRichness: 1,
			NebulaChance:   1,
			RareChance:     1,
		},
	}
}

func TestOrbitalElements_PerihelionAphelion(t *testing.T) {
	o := OrbitalElements{SemiMajorAxis: 400, Eccentricity: 0.75}
	assert.InDelta(t, 100, o.Perihelion(), 1e-9)
	assert.InDelta(t, 700, o.Aphelion(), 1e-9)
}

func TestOrbitalElements_PositionAt_PureFunction(t *testing.T) {
	o := OrbitalElements{
		SemiMajorAxis:      250,
		Eccentricity:       0.3,
		Period:             100,
		ArgPerihelion:      1.2,
		MeanAnomalyAtEpoch: 0.4,
	}

	x1, y1 := o.PositionAt(37.5)
	x2, y2 := o.PositionAt(37.5)
	assert.Equal(t, x1, x2)
	assert.Equal(t, y1, y2)

	// Distance from the focus stays within the perihelion/aphelion bounds
	// for all times.
	for tm := 0.0; tm < 200; tm += 3.7 {
		x, y := o.PositionAt(tm)
		d := math.Hypot(x, y)
		assert.GreaterOrEqual(t, d, o.Perihelion()-1e-6)
		assert.LessOrEqual(t, d, o.Aphelion()+1e-6)
	}
}

func TestNewSystem_Deterministic(t *testing.T) {
	seed := spatial.ObjectSeed(12345, "star", 0)

	a := NewSystem(seed, testRegion(), 1500, -2300)
	b := NewSystem(seed, testRegion(), 1500, -2300)

	require.Equal(t, a.Star.StarTypeName, b.Star.StarTypeName)
	assert.Equal(t, a.Star.X, b.Star.X)
	assert.Equal(t, a.Star.Radius, b.Star.Radius)
	require.Equal(t, len(a.Planets), len(b.Planets))

	for i := range a.Planets {
		assert.Equal(t, a.Planets[i].PlanetTypeName, b.Planets[i].PlanetTypeName)
		assert.Equal(t, a.Planets[i].X, b.Planets[i].X)
		assert.Equal(t, a.Planets[i].Orbit, b.Planets[i].Orbit)
	}
	require.Equal(t, len(a.Moons), len(b.Moons))
	require.Equal(t, len(a.Comets), len(b.Comets))
}

func TestNewSystem_PlanetsOrbitOutward(t *testing.T) {
	// Scan seeds until a system with several planets appears, then check
	// spacing and parent links.
	for i := uint32(0); i < 200; i++ {
		sys := NewSystem(spatial.ObjectSeed(99, "star", int(i)), testRegion(), 0, 0)
		if len(sys.Planets) < 3 {
			continue
		}

		prev := 0.0
		for _, p := range sys.Planets {
			assert.Greater(t, p.Orbit.SemiMajorAxis, prev+89, "orbits must keep minimum spacing")
			prev = p.Orbit.SemiMajorAxis
			assert.Equal(t, sys.Star.ID, p.ParentStarID)
			assert.Equal(t, sys.Star.X, p.ParentStarX)
		}
		return
	}
	t.Fatal("no multi-planet system found in 200 seeds")
}

func TestNewSystem_CometOrbitalBounds(t *testing.T) {
	found := 0
	for i := uint32(0); i < 400 && found < 20; i++ {
		sys := NewSystem(spatial.ObjectSeed(7, "star", int(i)), testRegion(), 0, 0)
		for _, c := range sys.Comets {
			found++
			require.GreaterOrEqual(t, c.Orbit.Eccentricity, 0.6)
			require.Less(t, c.Orbit.Eccentricity, 1.0)

			a, e := c.Orbit.SemiMajorAxis, c.Orbit.Eccentricity
			assert.InDelta(t, a*(1-e), c.Orbit.Perihelion(), 1e-9)
			assert.InDelta(t, a*(1+e), c.Orbit.Aphelion(), 1e-9)

			assert.Equal(t, CometID(0, 0, c.LocalIndex), c.ID)
		}
	}
	require.Greater(t, found, 0, "no comets generated in 400 systems")
}

func TestNewSystem_MoonCapAndOrdinals(t *testing.T) {
	perPlanet := map[string]int{}
	for i := uint32(0); i < 400; i++ {
		sys := NewSystem(spatial.ObjectSeed(3, "star", int(i)), testRegion(), 0, 0)
		for k := range perPlanet {
			delete(perPlanet, k)
		}
		for _, m := range sys.Moons {
			perPlanet[m.ParentPlanetID]++
			assert.Equal(t, MoonOrdinal(m.OrbitalDistance), m.Ordinal)
		}
		for id, n := range perPlanet {
			assert.LessOrEqual(t, n, 4, "planet %s exceeds the moon cap", id)
		}
	}
}

func TestMoonOrdinal_Buckets(t *testing.T) {
	// Distances 15 and 18 share the <=20 bucket, so both moons get the same
	// ordinal. Accepted bucketed behavior.
	assert.Equal(t, 1, MoonOrdinal(15))
	assert.Equal(t, 1, MoonOrdinal(18))

	assert.Equal(t, 0, MoonOrdinal(5))
	assert.Equal(t, 2, MoonOrdinal(21))
	assert.Equal(t, 3, MoonOrdinal(55))
	assert.Equal(t, 4, MoonOrdinal(56))
}

func TestTwinPosition_Involution(t *testing.T) {
	seeds := []int64{1, 12345, -987654321}
	for _, seed := range seeds {
		x, y := 15320.0, -8740.0
		tx, ty := TwinPosition(seed, x, y)
		bx, by := TwinPosition(seed, tx, ty)
		assert.InDelta(t, x, bx, 1e-9)
		assert.InDelta(t, y, by, 1e-9)
	}

	// Different seeds move the anchor.
	ax, ay := TwinPosition(1, 0, 0)
	bx, by := TwinPosition(2, 0, 0)
	assert.False(t, ax == bx && ay == by)
}

func TestNewWormhole_PairAgreement(t *testing.T) {
	r1 := rng.New(101)
	r2 := rng.New(102)

	alpha := NewWormhole(r1, 100, 200, -300, -400, DesignationAlpha)
	beta := NewWormhole(r2, -300, -400, 100, 200, DesignationBeta)

	assert.Equal(t, alpha.PairID, beta.PairID)
	assert.Equal(t, DesignationAlpha, alpha.Designation)
	assert.Equal(t, DesignationBeta, beta.Designation)
	assert.Equal(t, alpha.X, beta.TwinX)
	assert.Equal(t, alpha.Y, beta.TwinY)
}

func TestStarClassWeights(t *testing.T) {
	var neutronWeight, total float64
	for _, c := range StarClasses {
		total += c.Weight
		if c.Name == "Neutron Star" {
			neutronWeight = c.Weight
		}
	}
	require.Greater(t, total, 0.0)
	// Neutron stars sit around one percent of the draw.
	assert.InDelta(t, 0.01, neutronWeight/total, 0.005)
}

func TestDiscoveryRange_CoversAllTypes(t *testing.T) {
	for _, typ := range AllTypes {
		assert.Greater(t, DiscoveryRange(typ), 0.0, "missing discovery range for %s", typ)
	}
}
