package celestial

import "math"

// OrbitalElements describe a closed orbit around a parent body. Position at
// any universal time is a pure function of these elements and the elapsed
// time; nothing here integrates frame to frame, so there is no drift.
type OrbitalElements struct {
	SemiMajorAxis      float64 `json:"semi_major_axis"`
	Eccentricity       float64 `json:"eccentricity"`
	Period             float64 `json:"period"`
	ArgPerihelion      float64 `json:"arg_perihelion"`
	MeanAnomalyAtEpoch float64 `json:"mean_anomaly_at_epoch"`
}

// Perihelion is the closest approach to the parent: a(1-e).
func (o OrbitalElements) Perihelion() float64 {
	return o.SemiMajorAxis * (1 - o.Eccentricity)
}

// Aphelion is the farthest distance from the parent: a(1+e).
func (o OrbitalElements) Aphelion() float64 {
	return o.SemiMajorAxis * (1 + o.Eccentricity)
}

// PositionAt returns the offset from the parent body at universal time t.
// Kepler's equation is solved with a few Newton iterations, which converges
// quickly for the eccentricities the generators produce (e < 1).
func (o OrbitalElements) PositionAt(t float64) (float64, float64) {
	if o.Period <= 0 || o.SemiMajorAxis <= 0 {
		return 0, 0
	}

	meanAnomaly := o.MeanAnomalyAtEpoch + 2*math.Pi*t/o.Period

	eccentric := meanAnomaly
	for i := 0; i < 8; i++ {
		f := eccentric - o.Eccentricity*math.Sin(eccentric) - meanAnomaly
		fPrime := 1 - o.Eccentricity*math.Cos(eccentric)
		eccentric -= f / fPrime
	}

	trueAnomaly := 2 * math.Atan2(
		math.Sqrt(1+o.Eccentricity)*math.Sin(eccentric/2),
		math.Sqrt(1-o.Eccentricity)*math.Cos(eccentric/2),
	)
	dist := o.SemiMajorAxis * (1 - o.Eccentricity*math.Cos(eccentric))

	angle := trueAnomaly + o.ArgPerihelion
	return dist * math.Cos(angle), dist * math.Sin(angle)
}
