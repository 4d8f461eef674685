package sim

import "math/rand/v2"

// NormalSource yields independent standard-normal variates. *rand.Rand
// satisfies it.
type NormalSource interface {
	NormFloat64() float64
}

// NewSource returns a seeded PCG-backed generator. Two sources built from the
// same seed produce the same sequence.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))
}

// blockSource returns the stream owned by one block of paths. The block index
// is folded into the PCG state so every block draws from its own stream.
func blockSource(seed uint64, block int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(block)+1))
}
