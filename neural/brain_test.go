package neural

import (
	"math/rand"
	"testing"
)

func TestCrossoverGenesComeFromParents(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	a := Genome{1, 1, 1, 1, 1, 1, 1, 1}
	b := Genome{2, 2, 2, 2, 2, 2, 2, 2}
	child := Crossover(rng, a, b)

	if len(child) != len(a) {
		t.Fatalf("child length = %d, want %d", len(child), len(a))
	}
	fromA, fromB := 0, 0
	for i, v := range child {
		switch v {
		case 1:
			fromA++
		case 2:
			fromB++
		default:
			t.Fatalf("gene %d = %v came from neither parent", i, v)
		}
	}
	// With 8 genes at 50/50, all-from-one-parent happens ~0.8% of the time;
	// the fixed seed avoids the flake.
	if fromA == 0 || fromB == 0 {
		t.Errorf("expected a mix, got %d from a, %d from b", fromA, fromB)
	}
}

func TestCrossoverMismatchedLengths(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	a := Genome{1, 1, 1, 1, 1}
	b := Genome{2, 2}
	child := Crossover(rng, a, b)
	if len(child) != 2 {
		t.Errorf("child length = %d, want min parent length 2", len(child))
	}
}

func TestCrossoverIntoBrain(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	p1 := NewFeedForward(rng, 9, 4)
	p2 := NewFeedForward(rng, 9, 4)

	child := NewFeedForward(rng, 9, 4)
	g := Crossover(rng, p1.ExtractGenome(), p2.ExtractGenome())
	if consumed := child.ApplyGenome(g); consumed != len(g) {
		t.Fatalf("consumed %d of %d genes", consumed, len(g))
	}

	// Every child gene matches one of the parents at the same position.
	cg := child.ExtractGenome()
	g1 := p1.ExtractGenome()
	g2 := p2.ExtractGenome()
	for i := range cg {
		if cg[i] != g1[i] && cg[i] != g2[i] {
			t.Errorf("gene %d = %v matches neither parent", i, cg[i])
		}
	}
}

func TestGenomeClone(t *testing.T) {
	g := Genome{1, 2, 3}
	c := g.Clone()
	c[0] = 99
	if g[0] != 1 {
		t.Error("Genome.Clone shares backing storage")
	}
}
