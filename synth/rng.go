package synth

import "math/rand"

// NewRNG builds an explicit random source for a synthesizer. Generators never
// touch the package-global source: reproducibility comes from constructing two
// synthesizers with the same seed, and independent synthesizers can run in
// parallel because they own independent streams.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
