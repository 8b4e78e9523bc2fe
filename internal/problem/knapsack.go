package problem

import (
	"fmt"
	"strings"

	"anagenesis/pkg/ga"
	"anagenesis/pkg/genetic"
	"anagenesis/pkg/mutation"
	"anagenesis/pkg/recombination"
	"anagenesis/pkg/reinsertion"
	"anagenesis/pkg/selection"
	"anagenesis/pkg/termination"
)

type knapsackItem struct {
	name   string
	value  int
	weight int
}

// knapsack is the classic 0/1 knapsack: pick the subset of items with the
// highest total value that still fits the weight capacity. Genomes are bit
// vectors, one bit per item.
type knapsack struct {
	items    []knapsackItem
	capacity int
}

func newKnapsack() *knapsack {
	return &knapsack{
		items: []knapsackItem{
			{"map", 150, 9}, {"compass", 35, 13}, {"water", 200, 153},
			{"sandwich", 160, 50}, {"glucose", 60, 15}, {"tin", 45, 68},
			{"banana", 60, 27}, {"apple", 40, 39}, {"cheese", 30, 23},
			{"beer", 10, 52}, {"suntan cream", 70, 11}, {"camera", 30, 32},
			{"t-shirt", 15, 24}, {"trousers", 10, 48}, {"umbrella", 40, 73},
			{"waterproof trousers", 70, 42}, {"waterproof overclothes", 75, 43},
			{"note-case", 80, 22}, {"sunglasses", 20, 7}, {"towel", 12, 18},
			{"socks", 50, 4}, {"book", 10, 30},
		},
		capacity: 400,
	}
}

func (k *knapsack) Name() string { return "knapsack" }

func (k *knapsack) Description() string {
	return "0/1 knapsack packing with a binary genome, one bit per item"
}

func (k *knapsack) FitnessOf(genome []bool) int {
	value, weight := 0, 0
	for i, packed := range genome {
		if packed {
			value += k.items[i].value
			weight += k.items[i].weight
		}
	}
	if weight > k.capacity {
		return 0
	}
	return value
}

func (k *knapsack) Average(values []int) int {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return sum / len(values)
}

func (k *knapsack) HighestPossibleFitness() int {
	total := 0
	for _, item := range k.items {
		total += item.value
	}
	return total
}

func (k *knapsack) LowestPossibleFitness() int { return 0 }

func (k *knapsack) phenotype(genome []bool) string {
	var packed []string
	value, weight := 0, 0
	for i, bit := range genome {
		if bit {
			packed = append(packed, k.items[i].name)
			value += k.items[i].value
			weight += k.items[i].weight
		}
	}
	return fmt.Sprintf("value %d, weight %d/%d: %s", value, weight, k.capacity, strings.Join(packed, ", "))
}

func (k *knapsack) Run(params RunParams) (Report, error) {
	cfg := ga.Config[[]bool, int]{
		Evaluator: k,
		Selector: selection.UniversalSamplingSelector[[]bool, int]{
			SelectionRatio:        0.8,
			IndividualsPerParents: 2,
		},
		Breeder: recombination.UniformCrossBreeder[bool]{},
		Mutator: mutation.FlipBitMutator{MutationRate: 0.03},
		Reinserter: reinsertion.ElitistReinserter[[]bool, int]{
			Evaluator:    k,
			ReplaceRatio: 0.8,
		},
		InitialPopulation: genetic.BuildPopulation[[]bool](
			genetic.BinaryEncodedGenomeBuilder{Length: len(k.items)},
			params.PopulationSize, params.Seed),
	}
	return drive(k.Name(), params, cfg,
		termination.GenerationLimit[[]bool, int]{MaxGenerations: params.MaxGenerations},
		k.phenotype)
}
