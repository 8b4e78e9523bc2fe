// Package problem holds the demo problems runnable from the CLI. Each
// problem assembles the engine with its own encoding and operators and
// drives a simulation to completion, reporting the per-generation history
// for the run archive.
package problem

import (
	"encoding/binary"
	"fmt"
	"sort"
	"time"

	"golang.org/x/exp/constraints"

	"anagenesis/internal/model"
	"anagenesis/pkg/ga"
	"anagenesis/pkg/random"
	"anagenesis/pkg/simulation"
	"anagenesis/pkg/task"
)

// RunParams configures one problem run.
type RunParams struct {
	PopulationSize int
	MaxGenerations uint64
	// Seed determines the initial population and every generation's random
	// stream, making the whole run reproducible.
	Seed random.Seed
	// Serial disables the fork-join parallelism, for profiling and tests.
	Serial bool
}

// Report summarizes a finished run.
type Report struct {
	Problem        string
	Seed           random.Seed
	Iterations     uint64
	BestFitness    float64
	BestPhenotype  string
	StopReason     string
	Duration       time.Duration
	ProcessingTime time.Duration
	History        []model.GenerationRecord
}

// Problem is a self-contained demo optimization task.
type Problem interface {
	Name() string
	Description() string
	Run(params RunParams) (Report, error)
}

// All returns the available problems in display order.
func All() []Problem {
	return []Problem{newKnapsack(), newQueens(), newMonkeys()}
}

// ByName resolves a problem by its registry name.
func ByName(name string) (Problem, error) {
	for _, p := range All() {
		if p.Name() == name {
			return p, nil
		}
	}
	names := make([]string, 0)
	for _, p := range All() {
		names = append(names, p.Name())
	}
	sort.Strings(names)
	return nil, fmt.Errorf("unknown problem %q, available: %v", name, names)
}

// nextSeed derives a generation seed from the run's seed stream.
func nextSeed(rng *random.Rng) random.Seed {
	var seed random.Seed
	for i := 0; i < random.SeedSize; i += 8 {
		binary.LittleEndian.PutUint64(seed[i:], rng.Uint64())
	}
	return seed
}

// drive steps a simulation to its final result, recording one history line
// per generation. Generation seeds are derived from the run seed so a run
// replays exactly.
func drive[G any, F constraints.Integer | constraints.Float](
	name string,
	params RunParams,
	cfg ga.Config[G, F],
	termination simulation.Termination[G, F],
	phenotype func(G) string,
) (Report, error) {
	if params.Serial {
		cfg.Executor = task.Serial{}
	}
	algorithm, err := ga.New(cfg)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", name, err)
	}
	simulator := simulation.New[G, F](algorithm, termination)
	seedStream := random.New(params.Seed)

	var history []model.GenerationRecord
	for {
		result, err := simulator.StepWithSeed(nextSeed(seedStream))
		if err != nil {
			return Report{}, fmt.Errorf("%s: %w", name, err)
		}
		state := result.State
		history = append(history, model.GenerationRecord{
			Iteration:      state.Iteration,
			BestFitness:    float64(state.Result.Best.Solution.Fitness),
			LowestFitness:  float64(state.Result.Evaluated.LowestFitness()),
			AverageFitness: float64(state.Result.Evaluated.AverageFitness()),
			DurationMS:     state.Duration.Milliseconds(),
		})
		if result.Final {
			return Report{
				Problem:        name,
				Seed:           params.Seed,
				Iterations:     state.Iteration,
				BestFitness:    float64(state.Result.Best.Solution.Fitness),
				BestPhenotype:  phenotype(state.Result.Best.Solution.Genome),
				StopReason:     result.StopReason,
				Duration:       time.Since(state.StartedAt),
				ProcessingTime: result.ProcessingTime,
				History:        history,
			}, nil
		}
	}
}
