// Package operator defines the contracts of the four genetic operator
// families the engine composes each generation: selection, crossover,
// mutation and reinsertion. Implementations live in the selection,
// recombination, mutation and reinsertion packages.
package operator

import (
	"cmp"

	"anagenesis/pkg/genetic"
	"anagenesis/pkg/random"
)

// Operator is implemented by every genetic operator. The name is used in
// diagnostics only.
type Operator interface {
	Name() string
}

// Selection picks groups of parents from an evaluated population. The
// returned groups feed crossover; the evaluated population is not modified.
type Selection[G any, F cmp.Ordered] interface {
	Operator
	Select(rng *random.Rng, evaluated *genetic.EvaluatedPopulation[G, F]) []genetic.Parents[G]
}

// Crossover produces children from one parents group. Implementations must
// return exactly as many children as there are parents and must not modify
// the parents.
type Crossover[G any] interface {
	Operator
	Mate(rng *random.Rng, parents genetic.Parents[G]) genetic.Children[G]
}

// Mutation derives a mutated genome from an existing one. The input genome
// must not be modified; the result is a fresh value of the same length.
type Mutation[G any] interface {
	Operator
	Mutate(rng *random.Rng, genome G) G
}

// Reinsertion combines offspring with the previous generation into the next
// population. The result must have exactly the size of the evaluated
// population, whether the offspring are fewer or more numerous.
type Reinsertion[G any, F cmp.Ordered] interface {
	Operator
	Combine(rng *random.Rng, offspring genetic.Offspring[G], evaluated *genetic.EvaluatedPopulation[G, F]) []G
}
