// Package selection provides selection operators: truncation-style maximize
// selection, tournament selection and two fitness-proportionate schemes.
package selection

import (
	"cmp"
	"sort"

	"anagenesis/pkg/genetic"
	"anagenesis/pkg/random"
)

// sortedByFitnessDesc returns population indices ordered from fittest to
// least fit. Ties keep index order so selection stays deterministic.
func sortedByFitnessDesc[G any, F cmp.Ordered](evaluated *genetic.EvaluatedPopulation[G, F]) []int {
	indices := make([]int, evaluated.Len())
	for i := range indices {
		indices[i] = i
	}
	fitness := evaluated.FitnessValues()
	sort.SliceStable(indices, func(a, b int) bool {
		return fitness[indices[a]] > fitness[indices[b]]
	})
	return indices
}

// numParents converts a selection ratio into a group count, rounding half
// up.
func numParents(populationSize int, ratio float64) int {
	return int(float64(populationSize)*ratio + 0.5)
}

// MaximizeSelector picks the fittest fraction of the population and fills
// parents groups round-robin from the top of the ranking.
type MaximizeSelector[G any, F cmp.Ordered] struct {
	// SelectionRatio is the fraction of the population size that becomes
	// parents groups.
	SelectionRatio float64
	// IndividualsPerParents is the arity of each group.
	IndividualsPerParents int
}

func (s MaximizeSelector[G, F]) Name() string { return "maximize-selector" }

func (s MaximizeSelector[G, F]) Select(_ *random.Rng, evaluated *genetic.EvaluatedPopulation[G, F]) []genetic.Parents[G] {
	ranked := sortedByFitnessDesc(evaluated)
	groups := numParents(evaluated.Len(), s.SelectionRatio)
	arity := s.IndividualsPerParents
	if arity < 1 {
		arity = 2
	}

	parents := make([]genetic.Parents[G], 0, groups)
	pos := 0
	for g := 0; g < groups; g++ {
		group := make(genetic.Parents[G], 0, arity)
		for i := 0; i < arity; i++ {
			group = append(group, evaluated.Individual(ranked[pos]))
			pos++
			if pos == len(ranked) {
				pos = 0
			}
		}
		parents = append(parents, group)
	}
	return parents
}

// TournamentSelector runs small tournaments over the mating pool. Within a
// tournament the fittest contender is taken with the configured
// probability, which decays for each following rank.
type TournamentSelector[G any, F cmp.Ordered] struct {
	SelectionRatio        float64
	IndividualsPerParents int
	// TournamentSize is the number of contenders sampled per tournament.
	TournamentSize int
	// Probability of picking the tournament leader; 1 makes tournaments
	// strictly greedy. Zero defaults to 1.
	Probability float64
	// RemoveSelectedIndividuals takes winners out of the mating pool so an
	// individual is picked at most once.
	RemoveSelectedIndividuals bool
}

func (s TournamentSelector[G, F]) Name() string { return "tournament-selector" }

func (s TournamentSelector[G, F]) Select(rng *random.Rng, evaluated *genetic.EvaluatedPopulation[G, F]) []genetic.Parents[G] {
	arity := s.IndividualsPerParents
	if arity < 1 {
		arity = 2
	}
	tournamentSize := s.TournamentSize
	if tournamentSize < 1 {
		tournamentSize = 2
	}
	baseProbability := s.Probability
	if baseProbability <= 0 {
		baseProbability = 1
	}
	groups := numParents(evaluated.Len(), s.SelectionRatio)
	target := groups * arity
	fitness := evaluated.FitnessValues()

	pool := make([]int, evaluated.Len())
	for i := range pool {
		pool[i] = i
	}

	picked := make([]int, 0, target)
	for len(picked) < target && len(pool) > 0 {
		contenders := make([]int, 0, tournamentSize)
		for i := 0; i < tournamentSize; i++ {
			contenders = append(contenders, rng.Intn(len(pool)))
		}
		sort.SliceStable(contenders, func(a, b int) bool {
			return fitness[pool[contenders[a]]] > fitness[pool[contenders[b]]]
		})

		probability := baseProbability
		reduction := 1.0
		for probability > 0 && len(contenders) > 0 && len(picked) < target {
			if rng.Float64() <= probability {
				winner := contenders[0]
				contenders = contenders[1:]
				picked = append(picked, pool[winner])
				if s.RemoveSelectedIndividuals {
					pool = append(pool[:winner], pool[winner+1:]...)
					break
				}
			}
			reduction *= 1 - probability
			probability *= reduction
		}
	}

	parents := make([]genetic.Parents[G], 0, groups)
	for len(picked) >= arity {
		group := make(genetic.Parents[G], 0, arity)
		for i := 0; i < arity; i++ {
			group = append(group, evaluated.Individual(picked[i]))
		}
		picked = picked[arity:]
		parents = append(parents, group)
	}
	return parents
}
