package reinsertion

import (
	"testing"

	"anagenesis/pkg/genetic"
	"anagenesis/pkg/random"
)

// sumEvaluator scores an int genome by its own value.
type sumEvaluator struct{}

func (sumEvaluator) FitnessOf(genome int) int { return genome }

func (sumEvaluator) Average(values []int) int {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return sum / len(values)
}

func (sumEvaluator) HighestPossibleFitness() int { return 1 << 30 }

func (sumEvaluator) LowestPossibleFitness() int { return 0 }

func evaluatedOf(individuals []int) *genetic.EvaluatedPopulation[int, int] {
	fitness := make([]int, len(individuals))
	highest, lowest, sum := individuals[0], individuals[0], 0
	for i, g := range individuals {
		fitness[i] = g
		if g > highest {
			highest = g
		}
		if g < lowest {
			lowest = g
		}
		sum += g
	}
	return genetic.NewEvaluatedPopulation(individuals, fitness, highest, lowest, sum/len(individuals))
}

func TestElitistExactSizeWithFewerOffspring(t *testing.T) {
	evaluated := evaluatedOf([]int{1, 2, 3, 4, 5, 6, 7, 8})
	reinserter := ElitistReinserter[int, int]{Evaluator: sumEvaluator{}, ReplaceRatio: 0.5}
	next := reinserter.Combine(random.New(random.SeedFromUint64(1)), genetic.Offspring[int]{100, 200}, evaluated)
	if len(next) != 8 {
		t.Fatalf("expected population of 8, got %d", len(next))
	}
}

func TestElitistExactSizeWithMoreOffspring(t *testing.T) {
	evaluated := evaluatedOf([]int{1, 2, 3, 4})
	offspring := genetic.Offspring[int]{10, 20, 30, 40, 50, 60, 70}
	reinserter := ElitistReinserter[int, int]{Evaluator: sumEvaluator{}, ReplaceRatio: 1.0}
	next := reinserter.Combine(random.New(random.SeedFromUint64(1)), offspring, evaluated)
	if len(next) != 4 {
		t.Fatalf("expected population of 4, got %d", len(next))
	}
	// With full replacement the four fittest offspring win.
	want := map[int]bool{70: true, 60: true, 50: true, 40: true}
	for _, g := range next {
		if !want[g] {
			t.Fatalf("unexpected individual %d in %v", g, next)
		}
	}
}

func TestElitistTakesBestOffspringAndBestOld(t *testing.T) {
	evaluated := evaluatedOf([]int{5, 9, 1, 7})
	offspring := genetic.Offspring[int]{3, 8}
	reinserter := ElitistReinserter[int, int]{Evaluator: sumEvaluator{}, ReplaceRatio: 0.25}
	next := reinserter.Combine(random.New(random.SeedFromUint64(1)), offspring, evaluated)

	if len(next) != 4 {
		t.Fatalf("expected population of 4, got %d", len(next))
	}
	// One offspring slot: the better child (8), then old best 9, 7, 5.
	want := []int{8, 9, 7, 5}
	for i, g := range next {
		if g != want[i] {
			t.Fatalf("position %d: got %d, want %d (next=%v)", i, g, want[i], next)
		}
	}
}

func TestUniformExactSizeWithFewerOffspring(t *testing.T) {
	evaluated := evaluatedOf([]int{1, 2, 3, 4, 5, 6})
	reinserter := UniformReinserter[int, int]{ReplaceRatio: 0.5}
	next := reinserter.Combine(random.New(random.SeedFromUint64(3)), genetic.Offspring[int]{10, 20}, evaluated)
	if len(next) != 6 {
		t.Fatalf("expected population of 6, got %d", len(next))
	}
}

func TestUniformExactSizeWithMoreOffspring(t *testing.T) {
	evaluated := evaluatedOf([]int{1, 2, 3})
	offspring := genetic.Offspring[int]{10, 20, 30, 40, 50}
	reinserter := UniformReinserter[int, int]{ReplaceRatio: 1.0}
	next := reinserter.Combine(random.New(random.SeedFromUint64(4)), offspring, evaluated)
	if len(next) != 3 {
		t.Fatalf("expected population of 3, got %d", len(next))
	}
	for _, g := range next {
		if g < 10 {
			t.Fatalf("full replacement kept old individual %d", g)
		}
	}
}

func TestUniformSamplesWithoutDuplicatingOffspring(t *testing.T) {
	evaluated := evaluatedOf([]int{1, 2, 3, 4, 5, 6, 7, 8})
	offspring := genetic.Offspring[int]{10, 20, 30, 40, 50, 60}
	reinserter := UniformReinserter[int, int]{ReplaceRatio: 0.5}
	next := reinserter.Combine(random.New(random.SeedFromUint64(5)), offspring, evaluated)

	if len(next) != 8 {
		t.Fatalf("expected population of 8, got %d", len(next))
	}
	seen := map[int]int{}
	for _, g := range next {
		if g >= 10 {
			seen[g]++
		}
	}
	fromOffspring := 0
	for g, n := range seen {
		if n > 1 {
			t.Fatalf("offspring %d reinserted %d times", g, n)
		}
		fromOffspring++
	}
	if fromOffspring != 4 {
		t.Fatalf("expected 4 offspring slots, got %d", fromOffspring)
	}
}
