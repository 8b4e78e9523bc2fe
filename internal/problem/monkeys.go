package problem

import (
	"math"

	"anagenesis/pkg/ga"
	"anagenesis/pkg/genetic"
	"anagenesis/pkg/mutation"
	"anagenesis/pkg/recombination"
	"anagenesis/pkg/reinsertion"
	"anagenesis/pkg/selection"
	"anagenesis/pkg/termination"
)

const (
	monkeysTarget = "the quick brown fox jumps over the lazy dog"
	// Printable ASCII range the genome draws letters from.
	monkeysMinChar = byte(' ')
	monkeysMaxChar = byte('~') + 1
	// Perfect score on the squared match fraction scale.
	monkeysPerfectScore = 10000
)

// monkeys is the weasel program: evolve a string of printable characters
// toward a fixed target sentence. Fitness is the squared fraction of
// matching positions scaled to 0..10000.
type monkeys struct {
	target string
}

func newMonkeys() *monkeys {
	return &monkeys{target: monkeysTarget}
}

func (m *monkeys) Name() string { return "monkeys" }

func (m *monkeys) Description() string {
	return "evolve a sentence toward a fixed target, value-encoded characters"
}

func (m *monkeys) FitnessOf(genome []byte) int {
	matching := 0
	for i := range genome {
		if genome[i] == m.target[i] {
			matching++
		}
	}
	fraction := float64(matching) / float64(len(m.target))
	return int(math.Floor(fraction*fraction*monkeysPerfectScore + 0.5))
}

func (m *monkeys) Average(values []int) int {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return sum / len(values)
}

func (m *monkeys) HighestPossibleFitness() int { return monkeysPerfectScore }

func (m *monkeys) LowestPossibleFitness() int { return 0 }

func (m *monkeys) phenotype(genome []byte) string {
	return string(genome)
}

func (m *monkeys) Run(params RunParams) (Report, error) {
	cfg := ga.Config[[]byte, int]{
		Evaluator: m,
		Selector: selection.MaximizeSelector[[]byte, int]{
			SelectionRatio:        0.85,
			IndividualsPerParents: 2,
		},
		Breeder: recombination.MultiPointCrossBreeder[byte]{CutPoints: 2},
		Mutator: mutation.RandomValueMutator[byte]{
			MutationRate: 0.02,
			Min:          monkeysMinChar,
			Max:          monkeysMaxChar,
		},
		Reinserter: reinsertion.ElitistReinserter[[]byte, int]{
			Evaluator:    m,
			ReplaceRatio: 0.85,
		},
		InitialPopulation: genetic.BuildPopulation[[]byte](
			genetic.ValueEncodedGenomeBuilder[byte]{
				Length: len(m.target),
				Min:    monkeysMinChar,
				Max:    monkeysMaxChar,
			},
			params.PopulationSize, params.Seed),
	}
	return drive(m.Name(), params, cfg,
		termination.Or[[]byte, int](
			termination.FitnessLimit[[]byte, int]{FitnessTarget: monkeysPerfectScore},
			termination.GenerationLimit[[]byte, int]{MaxGenerations: params.MaxGenerations},
		),
		m.phenotype)
}
