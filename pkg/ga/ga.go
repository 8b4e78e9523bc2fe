// Package ga implements the per-generation step engine of the evolution
// loop: evaluate the population, track the best solution, select parents,
// breed and mutate offspring, and reinsert them into the next generation.
// The engine is generic over the genotype and the fitness scale and leaves
// all domain knowledge to the evaluator and the configured operators.
package ga

import (
	"cmp"
	"fmt"
	"time"

	"anagenesis/pkg/genetic"
	"anagenesis/pkg/operator"
	"anagenesis/pkg/random"
	"anagenesis/pkg/task"
)

// DefaultMinPopulationSize is the smallest population the engine accepts
// when the configuration does not override it.
const DefaultMinPopulationSize = 6

// parallelThreshold is the population size at which evaluation and breeding
// switch to fork-join halves.
const parallelThreshold = 60

// EmptyPopulationError reports a step attempted on an empty population.
type EmptyPopulationError struct {
	Iteration uint64
	MinSize   int
}

func (e *EmptyPopulationError) Error() string {
	return fmt.Sprintf("iteration %d: population is empty, need at least %d individuals", e.Iteration, e.MinSize)
}

// PopulationTooSmallError reports a step attempted on a population below
// the configured minimum size.
type PopulationTooSmallError struct {
	Iteration uint64
	Size      int
	MinSize   int
}

func (e *PopulationTooSmallError) Error() string {
	return fmt.Sprintf("iteration %d: population of %d individuals is below the minimum of %d", e.Iteration, e.Size, e.MinSize)
}

// State is the product of one generation step.
type State[G any, F cmp.Ordered] struct {
	// Evaluated is the evaluation snapshot of the population the step
	// started from.
	Evaluated *genetic.EvaluatedPopulation[G, F]
	// Best is the fittest individual of this generation.
	Best genetic.BestSolution[G, F]
	// ProcessingTime is the time spent inside the engine since the last
	// reset, accumulated over all steps.
	ProcessingTime time.Duration
}

// Config assembles an Algorithm. Evaluator, Selector, Breeder, Mutator,
// Reinserter and InitialPopulation are required.
type Config[G any, F cmp.Ordered] struct {
	Evaluator         genetic.Evaluator[G, F]
	Selector          operator.Selection[G, F]
	Breeder           operator.Crossover[G]
	Mutator           operator.Mutation[G]
	Reinserter        operator.Reinsertion[G, F]
	InitialPopulation genetic.Population[G]
	// MinPopulationSize guards against populations too small for the
	// operators to work with. Defaults to DefaultMinPopulationSize.
	MinPopulationSize int
	// Executor runs the fork-join phases. Defaults to task.Parallel.
	Executor task.Executor
}

// Algorithm advances a population one generation per Next call.
type Algorithm[G any, F cmp.Ordered] struct {
	evaluator  genetic.Evaluator[G, F]
	selector   operator.Selection[G, F]
	breeder    operator.Crossover[G]
	mutator    operator.Mutation[G]
	reinserter operator.Reinsertion[G, F]
	executor   task.Executor
	minSize    int

	initial        []G
	population     []G
	processingTime time.Duration
}

// New validates the configuration and builds an Algorithm positioned on the
// initial population.
func New[G any, F cmp.Ordered](cfg Config[G, F]) (*Algorithm[G, F], error) {
	if cfg.Evaluator == nil {
		return nil, fmt.Errorf("ga: evaluator is required")
	}
	if cfg.Selector == nil {
		return nil, fmt.Errorf("ga: selection operator is required")
	}
	if cfg.Breeder == nil {
		return nil, fmt.Errorf("ga: crossover operator is required")
	}
	if cfg.Mutator == nil {
		return nil, fmt.Errorf("ga: mutation operator is required")
	}
	if cfg.Reinserter == nil {
		return nil, fmt.Errorf("ga: reinsertion operator is required")
	}
	minSize := cfg.MinPopulationSize
	if minSize <= 0 {
		minSize = DefaultMinPopulationSize
	}
	executor := cfg.Executor
	if executor == nil {
		executor = task.Parallel{}
	}

	initial := cfg.InitialPopulation.Individuals()
	return &Algorithm[G, F]{
		evaluator:  cfg.Evaluator,
		selector:   cfg.Selector,
		breeder:    cfg.Breeder,
		mutator:    cfg.Mutator,
		reinserter: cfg.Reinserter,
		executor:   executor,
		minSize:    minSize,
		initial:    append([]G(nil), initial...),
		population: append([]G(nil), initial...),
	}, nil
}

// Population returns the current generation's individuals.
func (a *Algorithm[G, F]) Population() []G {
	return a.population
}

// ProcessingTime returns the time spent inside the engine since the last
// reset.
func (a *Algorithm[G, F]) ProcessingTime() time.Duration {
	return a.processingTime
}

// Next advances the population one generation. On error the population is
// left untouched. The rng is the generation's deterministic random stream;
// reusing a seed replays the generation exactly.
func (a *Algorithm[G, F]) Next(iteration uint64, rng *random.Rng) (State[G, F], error) {
	if len(a.population) == 0 {
		return State[G, F]{}, &EmptyPopulationError{Iteration: iteration, MinSize: a.minSize}
	}
	if len(a.population) < a.minSize {
		return State[G, F]{}, &PopulationTooSmallError{Iteration: iteration, Size: len(a.population), MinSize: a.minSize}
	}

	started := time.Now()

	evaluated := a.evaluate(rng)
	best := a.bestSolution(iteration, evaluated)
	parents := a.selector.Select(rng, evaluated)
	offspring := a.breed(rng, parents)
	next := a.reinserter.Combine(rng, offspring, evaluated)

	a.population = next
	a.processingTime += time.Since(started)

	return State[G, F]{
		Evaluated:      evaluated,
		Best:           best,
		ProcessingTime: a.processingTime,
	}, nil
}

// evaluate scores the current population concurrently. Fitness is a pure
// function of the genome, so the fork-join leaves draw nothing from their
// streams and a clone keeps the generation stream unperturbed.
func (a *Algorithm[G, F]) evaluate(rng *random.Rng) *genetic.EvaluatedPopulation[G, F] {
	population := a.population
	fitnessValues := task.Map(a.executor, rng.Clone(), len(population), parallelThreshold,
		func(_ *random.Rng, lo, hi int) []F {
			out := make([]F, 0, hi-lo)
			for i := lo; i < hi; i++ {
				out = append(out, a.evaluator.FitnessOf(population[i]))
			}
			return out
		})

	highest, lowest := fitnessValues[0], fitnessValues[0]
	for _, f := range fitnessValues[1:] {
		if f > highest {
			highest = f
		}
		if f < lowest {
			lowest = f
		}
	}
	average := a.evaluator.Average(fitnessValues)
	return genetic.NewEvaluatedPopulation(population, fitnessValues, highest, lowest, average)
}

// bestSolution picks the first individual holding the generation's highest
// fitness, making ties deterministic.
func (a *Algorithm[G, F]) bestSolution(iteration uint64, evaluated *genetic.EvaluatedPopulation[G, F]) genetic.BestSolution[G, F] {
	index := evaluated.IndexOfFitness(evaluated.HighestFitness())
	return genetic.BestSolution[G, F]{
		FoundAt:    time.Now(),
		Generation: iteration,
		Solution: genetic.Evaluated[G, F]{
			Genome:  evaluated.Individual(index),
			Fitness: evaluated.Fitness(index),
		},
	}
}

// breed crosses and mutates all parents groups, preserving group order in
// the offspring.
func (a *Algorithm[G, F]) breed(rng *random.Rng, parents []genetic.Parents[G]) genetic.Offspring[G] {
	return task.Map(a.executor, rng, len(parents), parallelThreshold,
		func(rng *random.Rng, lo, hi int) []G {
			out := make([]G, 0, (hi-lo)*2)
			for i := lo; i < hi; i++ {
				for _, child := range a.breeder.Mate(rng, parents[i]) {
					out = append(out, a.mutator.Mutate(rng, child))
				}
			}
			return out
		})
}

// Reset restores the initial population and zeroes the processing time.
func (a *Algorithm[G, F]) Reset() {
	a.population = append([]G(nil), a.initial...)
	a.processingTime = 0
}
