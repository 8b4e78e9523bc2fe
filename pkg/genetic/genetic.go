// Package genetic defines the core vocabulary of the evolution engine:
// genotypes, populations, fitness evaluation and the intermediate products
// passed between genetic operators. The engine never inspects genotype
// values; G is opaque and all domain knowledge lives in the evaluator and
// the operators chosen for a run.
package genetic

import (
	"cmp"
	"time"
)

// Parents is one group of individuals picked by a selection operator to
// produce offspring together.
type Parents[G any] []G

// Children holds the genomes produced by one crossover of a parents group.
type Children[G any] []G

// Offspring is the flattened result of breeding all parents groups of a
// generation.
type Offspring[G any] []G

// Population is an ordered collection of genotypes. Order is meaningful:
// fitness values and selection indices refer to positions in this order.
type Population[G any] struct {
	individuals []G
}

// NewPopulation wraps the given individuals. The slice is owned by the
// population afterwards.
func NewPopulation[G any](individuals []G) Population[G] {
	return Population[G]{individuals: individuals}
}

// Individuals returns the underlying individuals in order.
func (p Population[G]) Individuals() []G {
	return p.individuals
}

// Size returns the number of individuals.
func (p Population[G]) Size() int {
	return len(p.individuals)
}

// Evaluator determines the fitness of genomes. FitnessOf must be a pure
// function of the genome so it can be called concurrently on disjoint
// slices of a population.
type Evaluator[G any, F cmp.Ordered] interface {
	// FitnessOf returns the fitness of a single genome. Higher is better.
	FitnessOf(genome G) F
	// Average returns the average of a non-empty set of fitness values.
	Average(values []F) F
	// HighestPossibleFitness returns the upper bound of the fitness scale.
	HighestPossibleFitness() F
	// LowestPossibleFitness returns the lower bound of the fitness scale.
	LowestPossibleFitness() F
}

// Evaluated pairs a genome with its fitness.
type Evaluated[G any, F cmp.Ordered] struct {
	Genome  G
	Fitness F
}

// EvaluatedPopulation is a population together with its index-aligned
// fitness values and the summary statistics of one evaluation pass.
type EvaluatedPopulation[G any, F cmp.Ordered] struct {
	individuals   []G
	fitnessValues []F
	highest       F
	lowest        F
	average       F
}

// NewEvaluatedPopulation pairs individuals with their fitness values. Both
// slices must have equal length and be index-aligned.
func NewEvaluatedPopulation[G any, F cmp.Ordered](individuals []G, fitnessValues []F, highest, lowest, average F) *EvaluatedPopulation[G, F] {
	if len(individuals) != len(fitnessValues) {
		panic("genetic: individuals and fitness values must align")
	}
	return &EvaluatedPopulation[G, F]{
		individuals:   individuals,
		fitnessValues: fitnessValues,
		highest:       highest,
		lowest:        lowest,
		average:       average,
	}
}

// Len returns the population size.
func (p *EvaluatedPopulation[G, F]) Len() int {
	return len(p.individuals)
}

// Individuals returns the individuals in evaluation order.
func (p *EvaluatedPopulation[G, F]) Individuals() []G {
	return p.individuals
}

// FitnessValues returns the fitness values, index-aligned with
// Individuals.
func (p *EvaluatedPopulation[G, F]) FitnessValues() []F {
	return p.fitnessValues
}

// Individual returns the genome at index i.
func (p *EvaluatedPopulation[G, F]) Individual(i int) G {
	return p.individuals[i]
}

// Fitness returns the fitness of the genome at index i.
func (p *EvaluatedPopulation[G, F]) Fitness(i int) F {
	return p.fitnessValues[i]
}

// IndexOfFitness returns the first index holding the given fitness value,
// or -1 when no individual has it.
func (p *EvaluatedPopulation[G, F]) IndexOfFitness(fitness F) int {
	for i, f := range p.fitnessValues {
		if f == fitness {
			return i
		}
	}
	return -1
}

// HighestFitness returns the best fitness seen in this evaluation.
func (p *EvaluatedPopulation[G, F]) HighestFitness() F {
	return p.highest
}

// LowestFitness returns the worst fitness seen in this evaluation.
func (p *EvaluatedPopulation[G, F]) LowestFitness() F {
	return p.lowest
}

// AverageFitness returns the evaluator's average over this evaluation.
func (p *EvaluatedPopulation[G, F]) AverageFitness() F {
	return p.average
}

// BestSolution is the fittest individual of a generation, stamped with when
// and where it was found.
type BestSolution[G any, F cmp.Ordered] struct {
	FoundAt    time.Time
	Generation uint64
	Solution   Evaluated[G, F]
}
