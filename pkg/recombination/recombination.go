// Package recombination provides crossover operators for vector-encoded
// genomes: discrete crossover for arbitrary value vectors and order
// preserving crossover (OX1, PMX) for permutation genomes.
package recombination

import (
	"anagenesis/pkg/genetic"
	"anagenesis/pkg/random"
)

// UniformCrossBreeder produces each child locus by copying the value of a
// uniformly chosen parent at that locus. Works for any vector genome.
type UniformCrossBreeder[V any] struct{}

func (UniformCrossBreeder[V]) Name() string { return "uniform-cross-breeder" }

func (UniformCrossBreeder[V]) Mate(rng *random.Rng, parents genetic.Parents[[]V]) genetic.Children[[]V] {
	children := make(genetic.Children[[]V], 0, len(parents))
	genomeLength := len(parents[0])
	for range parents {
		child := make([]V, genomeLength)
		for locus := 0; locus < genomeLength; locus++ {
			child[locus] = parents[rng.Intn(len(parents))][locus]
		}
		children = append(children, child)
	}
	return children
}

// MultiPointCrossBreeder cuts the genome at CutPoints random loci and
// alternates the contributing parent at every cut. Each child starts from a
// different parent so the children differ.
type MultiPointCrossBreeder[V any] struct {
	CutPoints int
}

func (MultiPointCrossBreeder[V]) Name() string { return "multi-point-cross-breeder" }

func (b MultiPointCrossBreeder[V]) Mate(rng *random.Rng, parents genetic.Parents[[]V]) genetic.Children[[]V] {
	cutPoints := b.CutPoints
	if cutPoints < 1 {
		cutPoints = 1
	}
	genomeLength := len(parents[0])
	points := rng.NCutPoints(cutPoints, genomeLength)

	children := make(genetic.Children[[]V], 0, len(parents))
	for first := range parents {
		child := make([]V, 0, genomeLength)
		parent := first
		start := 0
		for _, point := range points {
			child = append(child, parents[parent][start:point]...)
			start = point
			parent = (parent + 1) % len(parents)
		}
		child = append(child, parents[parent][start:]...)
		children = append(children, child)
	}
	return children
}
