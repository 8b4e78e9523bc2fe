package selection

import (
	"golang.org/x/exp/constraints"

	"anagenesis/pkg/genetic"
	"anagenesis/pkg/random"
)

// RouletteWheelSelector picks each parent independently with probability
// proportional to fitness. Requires a numeric, non-negative fitness scale.
type RouletteWheelSelector[G any, F constraints.Integer | constraints.Float] struct {
	SelectionRatio        float64
	IndividualsPerParents int
}

func (s RouletteWheelSelector[G, F]) Name() string { return "roulette-wheel-selector" }

func (s RouletteWheelSelector[G, F]) Select(rng *random.Rng, evaluated *genetic.EvaluatedPopulation[G, F]) []genetic.Parents[G] {
	arity := s.IndividualsPerParents
	if arity < 1 {
		arity = 2
	}
	groups := numParents(evaluated.Len(), s.SelectionRatio)
	wheel := random.NewWeightedDistribution(evaluated.FitnessValues())

	parents := make([]genetic.Parents[G], 0, groups)
	for g := 0; g < groups; g++ {
		group := make(genetic.Parents[G], 0, arity)
		for i := 0; i < arity; i++ {
			pointer := rng.Float64() * wheel.Sum()
			group = append(group, evaluated.Individual(wheel.Select(pointer)))
		}
		parents = append(parents, group)
	}
	return parents
}

// UniversalSamplingSelector is stochastic universal sampling: one random
// starting pointer and equally spaced pointers after it, giving a lower
// variance spread than the roulette wheel. Requires a numeric, non-negative
// fitness scale.
type UniversalSamplingSelector[G any, F constraints.Integer | constraints.Float] struct {
	SelectionRatio        float64
	IndividualsPerParents int
}

func (s UniversalSamplingSelector[G, F]) Name() string { return "universal-sampling-selector" }

func (s UniversalSamplingSelector[G, F]) Select(rng *random.Rng, evaluated *genetic.EvaluatedPopulation[G, F]) []genetic.Parents[G] {
	arity := s.IndividualsPerParents
	if arity < 1 {
		arity = 2
	}
	groups := numParents(evaluated.Len(), s.SelectionRatio)
	total := groups * arity
	wheel := random.NewWeightedDistribution(evaluated.FitnessValues())

	parents := make([]genetic.Parents[G], 0, groups)
	if total == 0 {
		return parents
	}
	distance := wheel.Sum() / float64(total)
	pointer := rng.Float64() * distance

	group := make(genetic.Parents[G], 0, arity)
	for i := 0; i < total; i++ {
		group = append(group, evaluated.Individual(wheel.Select(pointer)))
		pointer += distance
		if len(group) == arity {
			parents = append(parents, group)
			group = make(genetic.Parents[G], 0, arity)
		}
	}
	return parents
}
