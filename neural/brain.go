// Package neural provides the trainable controllers ("brains") that drive
// creatures. A brain maps a sensory input vector to an action vector and
// evolves through genome mutation and crossover; no gradient training exists
// anywhere in the package.
package neural

import "math/rand"

// Genome is the flat parameter vector form of a brain: the weight block in
// row-major order followed by the bias block. For a network shaped (i, o) its
// length is i*o + o.
type Genome []float64

// Clone returns an independent copy of the genome.
func (g Genome) Clone() Genome {
	out := make(Genome, len(g))
	copy(out, g)
	return out
}

// Brain is the controller capability creatures own. Implementations must be
// deterministic in Process given their current parameters and must support
// evolution through the genome operations. Clone is a deep copy: brains cross
// ownership boundaries at reproduction and must never share parameters.
type Brain interface {
	// Process maps a sensory vector to an action vector. No side effects.
	Process(inputs []float64) []float64

	// Mutate perturbs each parameter independently with probability rate,
	// adding a value uniform in [-0.5, 0.5). Rate 0 is a no-op.
	Mutate(rng *rand.Rand, rate float64)

	// ExtractGenome flattens the parameters in the fixed order ApplyGenome
	// consumes.
	ExtractGenome() Genome

	// ApplyGenome copies values positionally into the parameters, stopping
	// when either the genome or the parameter list runs out. Never fails;
	// returns the number of values consumed.
	ApplyGenome(g Genome) int

	// Clone returns a fully independent copy.
	Clone() Brain
}

// Crossover combines two parent genomes gene by gene: each position is taken
// from either parent with equal probability. The child length is the shorter
// of the two, so mismatched parents still produce a valid (possibly short)
// genome for ApplyGenome to truncate against.
func Crossover(rng *rand.Rand, a, b Genome) Genome {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	child := make(Genome, n)
	for i := 0; i < n; i++ {
		if rng.Float64() < 0.5 {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child
}
