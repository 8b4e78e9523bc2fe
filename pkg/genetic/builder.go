package genetic

import (
	"golang.org/x/exp/constraints"

	"anagenesis/pkg/random"
	"anagenesis/pkg/task"
)

// buildThreshold is the population size at which BuildPopulation switches
// from sequential construction to fork-join halves.
const buildThreshold = 50

// GenomeBuilder constructs one random genome. The index is the position the
// genome will occupy in the population; most builders ignore it.
type GenomeBuilder[G any] interface {
	BuildGenome(index int, rng *random.Rng) G
}

// GenomeBuilderFunc adapts a plain function to the GenomeBuilder interface.
type GenomeBuilderFunc[G any] func(index int, rng *random.Rng) G

func (f GenomeBuilderFunc[G]) BuildGenome(index int, rng *random.Rng) G {
	return f(index, rng)
}

// BuildPopulation creates size random genomes from the given seed. The
// result is a pure function of (builder, size, seed): populations of at
// least buildThreshold individuals are built by concurrent halves, each
// drawing from its own jumped random stream, and concatenated left before
// right so scheduling cannot change the outcome.
func BuildPopulation[G any](builder GenomeBuilder[G], size int, seed random.Seed) Population[G] {
	return BuildPopulationWith(task.Parallel{}, builder, size, random.New(seed))
}

// BuildPopulationWith is BuildPopulation with an explicit executor and an
// already positioned random stream.
func BuildPopulationWith[G any](ex task.Executor, builder GenomeBuilder[G], size int, rng *random.Rng) Population[G] {
	if size < 0 {
		panic("genetic: population size must not be negative")
	}
	individuals := task.Map(ex, rng, size, buildThreshold, func(rng *random.Rng, lo, hi int) []G {
		out := make([]G, 0, hi-lo)
		for i := lo; i < hi; i++ {
			out = append(out, builder.BuildGenome(i, rng))
		}
		return out
	})
	return NewPopulation(individuals)
}

// BinaryEncodedGenomeBuilder builds genomes of Length uniformly random
// bits.
type BinaryEncodedGenomeBuilder struct {
	Length int
}

func (b BinaryEncodedGenomeBuilder) BuildGenome(_ int, rng *random.Rng) []bool {
	genome := make([]bool, b.Length)
	for i := range genome {
		genome[i] = rng.Bool()
	}
	return genome
}

// ValueEncodedGenomeBuilder builds genomes of Length numeric values drawn
// uniformly from [Min, Max).
type ValueEncodedGenomeBuilder[V constraints.Integer | constraints.Float] struct {
	Length int
	Min    V
	Max    V
}

func (b ValueEncodedGenomeBuilder[V]) BuildGenome(_ int, rng *random.Rng) []V {
	genome := make([]V, b.Length)
	for i := range genome {
		genome[i] = random.Range(rng, b.Min, b.Max)
	}
	return genome
}

// PermutationEncodedGenomeBuilder builds random permutations of the indices
// 0..Length-1.
type PermutationEncodedGenomeBuilder struct {
	Length int
}

func (b PermutationEncodedGenomeBuilder) BuildGenome(_ int, rng *random.Rng) []int {
	genome := make([]int, b.Length)
	for i := range genome {
		genome[i] = i
	}
	// Fisher-Yates
	for i := len(genome) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		genome[i], genome[j] = genome[j], genome[i]
	}
	return genome
}
