package problem

import (
	"fmt"

	"anagenesis/pkg/ga"
	"anagenesis/pkg/genetic"
	"anagenesis/pkg/mutation"
	"anagenesis/pkg/recombination"
	"anagenesis/pkg/reinsertion"
	"anagenesis/pkg/selection"
	"anagenesis/pkg/termination"
)

const queensBoardSize = 8

// queens places N queens on an NxN board so no two attack each other.
// Genomes are permutations: index is the column, value the row, which rules
// out row and column collisions by construction. Fitness counts the
// non-attacking diagonal pairs.
type queens struct {
	boardSize int
}

func newQueens() *queens {
	return &queens{boardSize: queensBoardSize}
}

func (q *queens) Name() string { return "queens" }

func (q *queens) Description() string {
	return "non-attacking queens with a permutation genome, one row per column"
}

func (q *queens) pairCount() int {
	return q.boardSize * (q.boardSize - 1) / 2
}

func (q *queens) FitnessOf(genome []int) int {
	attacking := 0
	for a := 0; a < len(genome); a++ {
		for b := a + 1; b < len(genome); b++ {
			if genome[b]-genome[a] == b-a || genome[a]-genome[b] == b-a {
				attacking++
			}
		}
	}
	return q.pairCount() - attacking
}

func (q *queens) Average(values []int) int {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return sum / len(values)
}

func (q *queens) HighestPossibleFitness() int { return q.pairCount() }

func (q *queens) LowestPossibleFitness() int { return 0 }

func (q *queens) phenotype(genome []int) string {
	return fmt.Sprintf("rows per column %v", genome)
}

func (q *queens) Run(params RunParams) (Report, error) {
	cfg := ga.Config[[]int, int]{
		Evaluator: q,
		Selector: selection.TournamentSelector[[]int, int]{
			SelectionRatio:        0.85,
			IndividualsPerParents: 2,
			TournamentSize:        4,
			Probability:           0.9,
		},
		Breeder: recombination.PartiallyMappedCrossover[int]{},
		Mutator: mutation.SwapOrderMutator[int]{MutationRate: 0.05},
		Reinserter: reinsertion.ElitistReinserter[[]int, int]{
			Evaluator:    q,
			ReplaceRatio: 0.85,
		},
		InitialPopulation: genetic.BuildPopulation[[]int](
			genetic.PermutationEncodedGenomeBuilder{Length: q.boardSize},
			params.PopulationSize, params.Seed),
	}
	return drive(q.Name(), params, cfg,
		termination.Or[[]int, int](
			termination.FitnessLimit[[]int, int]{FitnessTarget: q.pairCount()},
			termination.GenerationLimit[[]int, int]{MaxGenerations: params.MaxGenerations},
		),
		q.phenotype)
}
