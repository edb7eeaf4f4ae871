package common

import (
	"math"
	"math/rand"
)

// Rand wraps a seedable random source so spawning is deterministic in tests.
type Rand struct {
	src *rand.Rand
}

func NewRand(seed int64) *Rand {
	return &Rand{src: rand.New(rand.NewSource(seed))}
}

// NewRandFromSource wraps an existing source.
func NewRandFromSource(src *rand.Rand) *Rand {
	return &Rand{src: src}
}

// Normal draws from a normal distribution with the given mean and standard
// deviation using the Box-Muller transform. Uniform samples are taken from
// (0,1] so the log argument is never zero. The result is NOT clamped: for a
// std large relative to the mean the draw can be non-positive, and callers
// that use it as a duration have to tolerate that.
func (r *Rand) Normal(mean, std float64) float64 {
	u1 := 1.0 - r.src.Float64()
	u2 := 1.0 - r.src.Float64()
	z := math.Sqrt(-2.0*math.Log(u1)) * math.Sin(2.0*math.Pi*u2)
	return mean + std*z
}

// CoinFlip returns true or false with equal probability.
func (r *Rand) CoinFlip() bool {
	return r.src.Float64() >= 0.5
}
