package ga

import (
	"errors"
	"testing"

	"anagenesis/pkg/genetic"
	"anagenesis/pkg/mutation"
	"anagenesis/pkg/random"
	"anagenesis/pkg/recombination"
	"anagenesis/pkg/reinsertion"
	"anagenesis/pkg/selection"
	"anagenesis/pkg/task"
)

// countOnesEvaluator scores a binary genome by the number of set bits.
type countOnesEvaluator struct {
	length int
}

func (e countOnesEvaluator) FitnessOf(genome []bool) int {
	ones := 0
	for _, bit := range genome {
		if bit {
			ones++
		}
	}
	return ones
}

func (e countOnesEvaluator) Average(values []int) int {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return sum / len(values)
}

func (e countOnesEvaluator) HighestPossibleFitness() int { return e.length }

func (e countOnesEvaluator) LowestPossibleFitness() int { return 0 }

func countOnesConfig(populationSize, genomeLength int, seed random.Seed) Config[[]bool, int] {
	evaluator := countOnesEvaluator{length: genomeLength}
	return Config[[]bool, int]{
		Evaluator: evaluator,
		Selector: selection.MaximizeSelector[[]bool, int]{
			SelectionRatio:        0.85,
			IndividualsPerParents: 2,
		},
		Breeder: recombination.UniformCrossBreeder[bool]{},
		Mutator: mutation.FlipBitMutator{MutationRate: 0.05},
		Reinserter: reinsertion.ElitistReinserter[[]bool, int]{
			Evaluator:    evaluator,
			ReplaceRatio: 0.85,
		},
		InitialPopulation: genetic.BuildPopulation[[]bool](
			genetic.BinaryEncodedGenomeBuilder{Length: genomeLength}, populationSize, seed),
	}
}

func TestNewRejectsMissingComponents(t *testing.T) {
	base := countOnesConfig(10, 8, random.SeedFromUint64(1))

	missingEvaluator := base
	missingEvaluator.Evaluator = nil
	if _, err := New(missingEvaluator); err == nil {
		t.Fatal("expected error for missing evaluator")
	}
	missingSelector := base
	missingSelector.Selector = nil
	if _, err := New(missingSelector); err == nil {
		t.Fatal("expected error for missing selector")
	}
	missingBreeder := base
	missingBreeder.Breeder = nil
	if _, err := New(missingBreeder); err == nil {
		t.Fatal("expected error for missing breeder")
	}
	missingMutator := base
	missingMutator.Mutator = nil
	if _, err := New(missingMutator); err == nil {
		t.Fatal("expected error for missing mutator")
	}
	missingReinserter := base
	missingReinserter.Reinserter = nil
	if _, err := New(missingReinserter); err == nil {
		t.Fatal("expected error for missing reinserter")
	}
}

func TestNextOnEmptyPopulation(t *testing.T) {
	cfg := countOnesConfig(0, 8, random.SeedFromUint64(1))
	algorithm, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, err = algorithm.Next(1, random.New(random.SeedFromUint64(2)))
	var emptyErr *EmptyPopulationError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyPopulationError, got %v", err)
	}
	if emptyErr.Iteration != 1 {
		t.Fatalf("expected iteration 1 in error, got %d", emptyErr.Iteration)
	}
}

func TestNextOnTooSmallPopulation(t *testing.T) {
	cfg := countOnesConfig(3, 8, random.SeedFromUint64(1))
	algorithm, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, err = algorithm.Next(7, random.New(random.SeedFromUint64(2)))
	var smallErr *PopulationTooSmallError
	if !errors.As(err, &smallErr) {
		t.Fatalf("expected PopulationTooSmallError, got %v", err)
	}
	if smallErr.Size != 3 || smallErr.MinSize != DefaultMinPopulationSize {
		t.Fatalf("error carries wrong sizes: %+v", smallErr)
	}
	if len(algorithm.Population()) != 3 {
		t.Fatal("failed step modified the population")
	}
}

func TestNextPreservesPopulationSize(t *testing.T) {
	algorithm, err := New(countOnesConfig(120, 16, random.SeedFromUint64(3)))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for iteration := uint64(1); iteration <= 5; iteration++ {
		state, err := algorithm.Next(iteration, random.New(random.SeedFromUint64(100+iteration)))
		if err != nil {
			t.Fatalf("iteration %d: %v", iteration, err)
		}
		if state.Evaluated.Len() != 120 {
			t.Fatalf("iteration %d: evaluated %d individuals", iteration, state.Evaluated.Len())
		}
		if len(algorithm.Population()) != 120 {
			t.Fatalf("iteration %d: population size drifted to %d", iteration, len(algorithm.Population()))
		}
	}
}

func TestBestSolutionMatchesActualMaximum(t *testing.T) {
	algorithm, err := New(countOnesConfig(200, 24, random.SeedFromUint64(4)))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	state, err := algorithm.Next(1, random.New(random.SeedFromUint64(5)))
	if err != nil {
		t.Fatalf("next: %v", err)
	}

	evaluator := countOnesEvaluator{length: 24}
	actualMax := 0
	for _, genome := range state.Evaluated.Individuals() {
		if f := evaluator.FitnessOf(genome); f > actualMax {
			actualMax = f
		}
	}
	if state.Best.Solution.Fitness != actualMax {
		t.Fatalf("best solution fitness %d, actual maximum %d", state.Best.Solution.Fitness, actualMax)
	}
	if got := evaluator.FitnessOf(state.Best.Solution.Genome); got != actualMax {
		t.Fatalf("best solution genome scores %d, want %d", got, actualMax)
	}
	if state.Best.Generation != 1 {
		t.Fatalf("best solution stamped with generation %d", state.Best.Generation)
	}
}

func TestNextIsDeterministicForFixedSeed(t *testing.T) {
	buildSeed := random.SeedFromUint64(6)
	stepSeed := random.SeedFromUint64(7)

	run := func(ex task.Executor) []int {
		cfg := countOnesConfig(150, 24, buildSeed)
		cfg.Executor = ex
		algorithm, err := New(cfg)
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		state, err := algorithm.Next(1, random.New(stepSeed))
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		return state.Evaluated.FitnessValues()
	}

	parallel := run(task.Parallel{})
	again := run(task.Parallel{})
	serial := run(task.Serial{})
	for i := range parallel {
		if parallel[i] != again[i] {
			t.Fatalf("repeat run diverged at %d", i)
		}
		if parallel[i] != serial[i] {
			t.Fatalf("executors diverged at %d", i)
		}
	}
}

func TestFitnessImprovesOverGenerations(t *testing.T) {
	algorithm, err := New(countOnesConfig(100, 24, random.SeedFromUint64(8)))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	first, err := algorithm.Next(1, random.New(random.SeedFromUint64(1000)))
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	var last State[[]bool, int]
	for iteration := uint64(2); iteration <= 30; iteration++ {
		last, err = algorithm.Next(iteration, random.New(random.SeedFromUint64(1000+iteration)))
		if err != nil {
			t.Fatalf("iteration %d: %v", iteration, err)
		}
	}
	if last.Best.Solution.Fitness <= first.Best.Solution.Fitness {
		t.Fatalf("no improvement after 30 generations: %d -> %d",
			first.Best.Solution.Fitness, last.Best.Solution.Fitness)
	}
}

func TestResetRestoresInitialPopulation(t *testing.T) {
	algorithm, err := New(countOnesConfig(80, 12, random.SeedFromUint64(9)))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	initial := make([][]bool, len(algorithm.Population()))
	for i, g := range algorithm.Population() {
		initial[i] = append([]bool(nil), g...)
	}

	for iteration := uint64(1); iteration <= 3; iteration++ {
		if _, err := algorithm.Next(iteration, random.New(random.SeedFromUint64(iteration))); err != nil {
			t.Fatalf("iteration %d: %v", iteration, err)
		}
	}
	if algorithm.ProcessingTime() == 0 {
		t.Fatal("processing time not accumulated")
	}

	algorithm.Reset()
	if algorithm.ProcessingTime() != 0 {
		t.Fatal("reset kept processing time")
	}
	if len(algorithm.Population()) != len(initial) {
		t.Fatalf("reset population size %d, want %d", len(algorithm.Population()), len(initial))
	}
	for i, g := range algorithm.Population() {
		for j := range g {
			if g[j] != initial[i][j] {
				t.Fatalf("reset population differs at [%d][%d]", i, j)
			}
		}
	}
}
