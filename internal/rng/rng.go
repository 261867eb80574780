package rng

// SeededRNG is a Mulberry32 pseudo-random number generator. Every generator
// in the universe is built from one of these, constructed from a derived
// seed, so generation never depends on call order across chunks or objects.
// Instances share no state; two generators with equal seeds produce equal
// sequences for equal call sequences.
type SeededRNG struct {
	state uint32
	seed  uint32
}

// New returns a generator positioned at the start of the stream for seed.
func New(seed uint32) *SeededRNG {
	return &SeededRNG{state: seed, seed: seed}
}

// Seed returns the seed the generator was constructed with.
func (r *SeededRNG) Seed() uint32 {
	return r.seed
}

// Reset rewinds the generator to the start of its stream.
func (r *SeededRNG) Reset() {
	r.state = r.seed
}

// Next returns the next float64 in [0, 1).
func (r *SeededRNG) Next() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// NextInt returns an integer in [min, max] inclusive.
func (r *SeededRNG) NextInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + int(r.Next()*float64(max-min+1))
}

// NextFloat returns a float64 in [min, max).
func (r *SeededRNG) NextFloat(min, max float64) float64 {
	return min + r.Next()*(max-min)
}

// Chance draws once and reports whether the draw fell under p.
func (r *SeededRNG) Chance(p float64) bool {
	return r.Next() < p
}

// Weighted pairs an item with its selection weight.
type Weighted[T any] struct {
	Item   T
	Weight float64
}

// Choose selects one entry from a weighted table. Zero and negative weights
// never win. An empty table returns the zero value.
func Choose[T any](r *SeededRNG, table []Weighted[T]) T {
	var zero T
	if len(table) == 0 {
		return zero
	}

	var total float64
	for _, w := range table {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	if total <= 0 {
		return table[0].Item
	}

	roll := r.Next() * total
	for _, w := range table {
		if w.Weight <= 0 {
			continue
		}
		roll -= w.Weight
		if roll < 0 {
			return w.Item
		}
	}
	return table[len(table)-1].Item
}

// Shuffle permutes the slice in place using Fisher-Yates.
func Shuffle[T any](r *SeededRNG, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.NextInt(0, i)
		items[i], items[j] = items[j], items[i]
	}
}
