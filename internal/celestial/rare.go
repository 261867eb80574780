package celestial

import "voyager-server/internal/rng"

// Chunk-level decorative families. Each generator takes the position the
// chunk manager rolled for it and fills in variant and visual fields. None
// of these nest children.

func NewNebula(r *rng.SeededRNG, x, y float64) *Nebula {
	variant := rng.Choose(r, nebulaVariants)
	return &Nebula{
		Object:  newObject(TypeNebula, x, y, r.NextFloat(150, 400), RarityUncommon),
		Variant: variant.Name,
		Color:   variant.Color,
	}
}

func NewDarkNebula(r *rng.SeededRNG, x, y float64) *DarkNebula {
	return &DarkNebula{
		Object:  newObject(TypeDarkNebula, x, y, r.NextFloat(120, 350), RarityRare),
		Variant: rng.Choose(r, darkNebulaVariants),
	}
}

func NewCrystalGarden(r *rng.SeededRNG, x, y float64) *CrystalGarden {
	return &CrystalGarden{
		Object:  newObject(TypeCrystalGarden, x, y, r.NextFloat(60, 150), RarityRare),
		Variant: rng.Choose(r, crystalGardenVariants),
	}
}

func NewAsteroidGarden(r *rng.SeededRNG, x, y float64) *AsteroidGarden {
	return &AsteroidGarden{
		Object:    newObject(TypeAsteroidGarden, x, y, r.NextFloat(100, 280), RarityCommon),
		Variant:   rng.Choose(r, asteroidGardenVariants),
		RockCount: r.NextInt(12, 40),
	}
}

func NewRoguePlanet(r *rng.SeededRNG, x, y float64) *RoguePlanet {
	return &RoguePlanet{
		Object:  newObject(TypeRoguePlanet, x, y, r.NextFloat(9, 22), RarityRare),
		Variant: rng.Choose(r, roguePlanetVariants),
	}
}

func NewProtostar(r *rng.SeededRNG, x, y float64) *Protostar {
	return &Protostar{
		Object:  newObject(TypeProtostar, x, y, r.NextFloat(40, 90), RarityRare),
		Variant: rng.Choose(r, protostarVariants),
	}
}
