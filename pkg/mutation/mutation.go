// Package mutation provides mutation operators for vector-encoded genomes.
// All operators are copy-on-write: the input genome is never modified, and
// the number of point mutations applied to a genome of length n at rate r
// is floor(r*n + u) with u uniform in [0, 1), so the expected count is r*n
// even when r*n < 1.
package mutation

import (
	"math"

	"golang.org/x/exp/constraints"

	"anagenesis/pkg/random"
)

// NumMutations returns how many point mutations to apply for the given
// rate and genome length.
func NumMutations(rng *random.Rng, rate float64, length int) int {
	return int(math.Floor(rate*float64(length) + rng.Float64()))
}

// RandomValueMutator redraws randomly chosen loci uniformly from
// [Min, Max).
type RandomValueMutator[V constraints.Integer | constraints.Float] struct {
	MutationRate float64
	Min          V
	Max          V
}

func (m RandomValueMutator[V]) Name() string { return "random-value-mutator" }

func (m RandomValueMutator[V]) Mutate(rng *random.Rng, genome []V) []V {
	mutated := append([]V(nil), genome...)
	for i := NumMutations(rng, m.MutationRate, len(mutated)); i > 0; i-- {
		locus := rng.Intn(len(mutated))
		mutated[locus] = random.Range(rng, m.Min, m.Max)
	}
	return mutated
}

// FlipBitMutator negates randomly chosen bits of a binary genome.
type FlipBitMutator struct {
	MutationRate float64
}

func (m FlipBitMutator) Name() string { return "flip-bit-mutator" }

func (m FlipBitMutator) Mutate(rng *random.Rng, genome []bool) []bool {
	mutated := append([]bool(nil), genome...)
	for i := NumMutations(rng, m.MutationRate, len(mutated)); i > 0; i-- {
		locus := rng.Intn(len(mutated))
		mutated[locus] = !mutated[locus]
	}
	return mutated
}

// SwapOrderMutator exchanges the values at two random loci. Safe for
// permutation genomes.
type SwapOrderMutator[V any] struct {
	MutationRate float64
}

func (m SwapOrderMutator[V]) Name() string { return "swap-order-mutator" }

func (m SwapOrderMutator[V]) Mutate(rng *random.Rng, genome []V) []V {
	mutated := append([]V(nil), genome...)
	for i := NumMutations(rng, m.MutationRate, len(mutated)); i > 0; i-- {
		a := rng.Intn(len(mutated))
		b := rng.Intn(len(mutated))
		mutated[a], mutated[b] = mutated[b], mutated[a]
	}
	return mutated
}

// InsertOrderMutator removes the value at one random locus and reinserts it
// at another, shifting the values in between. Safe for permutation genomes.
type InsertOrderMutator[V any] struct {
	MutationRate float64
}

func (m InsertOrderMutator[V]) Name() string { return "insert-order-mutator" }

func (m InsertOrderMutator[V]) Mutate(rng *random.Rng, genome []V) []V {
	mutated := append([]V(nil), genome...)
	for i := NumMutations(rng, m.MutationRate, len(mutated)); i > 0; i-- {
		from := rng.Intn(len(mutated))
		to := rng.Intn(len(mutated))
		value := mutated[from]
		if from < to {
			copy(mutated[from:to], mutated[from+1:to+1])
		} else {
			copy(mutated[to+1:from+1], mutated[to:from])
		}
		mutated[to] = value
	}
	return mutated
}
