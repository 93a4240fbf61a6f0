package neural

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// FeedForward is a single-layer projection brain: sigmoid(inputs*W + b).
// Weights are an inputs-by-outputs matrix; the genome layout (weights
// row-major, then biases) is exactly the Dense raw storage order, so genome
// extraction and injection are straight copies.
type FeedForward struct {
	inputs  int
	outputs int
	weights *mat.Dense    // inputs x outputs
	bias    *mat.VecDense // outputs
}

// NewFeedForward creates a brain with every weight and bias drawn uniformly
// from [-1, 1).
func NewFeedForward(rng *rand.Rand, inputs, outputs int) *FeedForward {
	f := &FeedForward{
		inputs:  inputs,
		outputs: outputs,
		weights: mat.NewDense(inputs, outputs, nil),
		bias:    mat.NewVecDense(outputs, nil),
	}
	w := f.weights.RawMatrix().Data
	for i := range w {
		w[i] = rng.Float64()*2 - 1
	}
	b := f.bias.RawVector().Data
	for i := range b {
		b[i] = rng.Float64()*2 - 1
	}
	return f
}

// Inputs returns the input dimension.
func (f *FeedForward) Inputs() int { return f.inputs }

// Outputs returns the output dimension.
func (f *FeedForward) Outputs() int { return f.outputs }

// Process computes sigmoid(inputs*W + b). The input slice length must equal
// the input dimension. Every output lies strictly in (0, 1).
func (f *FeedForward) Process(inputs []float64) []float64 {
	in := mat.NewVecDense(f.inputs, inputs)
	var pre mat.VecDense
	pre.MulVec(f.weights.T(), in)
	pre.AddVec(&pre, f.bias)

	out := make([]float64, f.outputs)
	for i := range out {
		out[i] = sigmoid(pre.AtVec(i))
	}
	return out
}

// sigmoid is the logistic function 1/(1+e^-x).
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Mutate perturbs each weight and bias independently: with probability rate
// it gains a uniform [-0.5, 0.5) offset.
func (f *FeedForward) Mutate(rng *rand.Rand, rate float64) {
	w := f.weights.RawMatrix().Data
	for i := range w {
		if rng.Float64() < rate {
			w[i] += rng.Float64() - 0.5
		}
	}
	b := f.bias.RawVector().Data
	for i := range b {
		if rng.Float64() < rate {
			b[i] += rng.Float64() - 0.5
		}
	}
}

// ExtractGenome flattens the weights row-major followed by the biases.
func (f *FeedForward) ExtractGenome() Genome {
	w := f.weights.RawMatrix().Data
	b := f.bias.RawVector().Data
	g := make(Genome, 0, len(w)+len(b))
	g = append(g, w...)
	g = append(g, b...)
	return g
}

// ApplyGenome copies genome values into the weights, then the biases,
// stopping when either side is exhausted. Returns the count consumed.
func (f *FeedForward) ApplyGenome(g Genome) int {
	w := f.weights.RawMatrix().Data
	b := f.bias.RawVector().Data
	n := copy(w, g)
	if n < len(g) {
		n += copy(b, g[n:])
	}
	return n
}

// Clone returns an independent deep copy.
func (f *FeedForward) Clone() Brain {
	return &FeedForward{
		inputs:  f.inputs,
		outputs: f.outputs,
		weights: mat.DenseCopyOf(f.weights),
		bias:    mat.VecDenseCopyOf(f.bias),
	}
}
