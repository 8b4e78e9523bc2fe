// Package reinsertion provides strategies for combining offspring with the
// previous generation into the next population. Every strategy returns
// exactly as many individuals as the evaluated population holds, whether
// the offspring are fewer or more numerous.
package reinsertion

import (
	"cmp"
	"sort"

	"anagenesis/pkg/genetic"
	"anagenesis/pkg/random"
)

// numOffspring converts the replace ratio into the number of offspring
// slots, rounding half up and clamping to the population size.
func numOffspring(populationSize int, ratio float64) int {
	n := int(float64(populationSize)*ratio + 0.5)
	if n > populationSize {
		n = populationSize
	}
	if n < 0 {
		n = 0
	}
	return n
}

// ElitistReinserter fills up to ReplaceRatio of the next population with
// the fittest offspring, scored by the evaluator, and the remaining slots
// with the fittest individuals of the previous generation.
type ElitistReinserter[G any, F cmp.Ordered] struct {
	// Evaluator scores offspring, which arrive unevaluated from breeding.
	Evaluator genetic.Evaluator[G, F]
	// ReplaceRatio is the fraction of the population replaced by offspring
	// when enough offspring are available.
	ReplaceRatio float64
}

func (r ElitistReinserter[G, F]) Name() string { return "elitist-reinserter" }

func (r ElitistReinserter[G, F]) Combine(_ *random.Rng, offspring genetic.Offspring[G], evaluated *genetic.EvaluatedPopulation[G, F]) []G {
	size := evaluated.Len()
	slots := numOffspring(size, r.ReplaceRatio)
	if slots > len(offspring) {
		slots = len(offspring)
	}

	// Rank offspring best first.
	offspringRank := make([]int, len(offspring))
	for i := range offspringRank {
		offspringRank[i] = i
	}
	scores := make([]F, len(offspring))
	for i, child := range offspring {
		scores[i] = r.Evaluator.FitnessOf(child)
	}
	sort.SliceStable(offspringRank, func(a, b int) bool {
		return scores[offspringRank[a]] > scores[offspringRank[b]]
	})

	next := make([]G, 0, size)
	for _, idx := range offspringRank[:slots] {
		next = append(next, offspring[idx])
	}

	// Fill the remainder with the best of the old generation.
	oldRank := make([]int, size)
	for i := range oldRank {
		oldRank[i] = i
	}
	fitness := evaluated.FitnessValues()
	sort.SliceStable(oldRank, func(a, b int) bool {
		return fitness[oldRank[a]] > fitness[oldRank[b]]
	})
	for _, idx := range oldRank {
		if len(next) == size {
			break
		}
		next = append(next, evaluated.Individual(idx))
	}
	return next
}

// UniformReinserter fills up to ReplaceRatio of the next population with
// uniformly chosen offspring and the remaining slots with uniformly chosen
// individuals of the previous generation.
type UniformReinserter[G any, F cmp.Ordered] struct {
	ReplaceRatio float64
}

func (r UniformReinserter[G, F]) Name() string { return "uniform-reinserter" }

func (r UniformReinserter[G, F]) Combine(rng *random.Rng, offspring genetic.Offspring[G], evaluated *genetic.EvaluatedPopulation[G, F]) []G {
	size := evaluated.Len()
	slots := numOffspring(size, r.ReplaceRatio)

	next := make([]G, 0, size)
	if slots >= len(offspring) {
		next = append(next, offspring...)
	} else {
		pool := append([]int(nil), indexRange(len(offspring))...)
		for len(next) < slots {
			pick := rng.Intn(len(pool))
			next = append(next, offspring[pool[pick]])
			pool = append(pool[:pick], pool[pick+1:]...)
		}
	}
	if len(next) > size {
		next = next[:size]
	}

	old := evaluated.Individuals()
	for len(next) < size {
		next = append(next, old[rng.Intn(len(old))])
	}
	return next
}

func indexRange(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
