// Package simulation drives a genetic algorithm to completion. The
// Simulator owns the loop around the per-generation engine: it seeds every
// generation with a fresh random stream, asks the termination condition
// whether to continue and hands out intermediate and final results. It is a
// small state machine with three modes: not running, loop and step.
package simulation

import (
	"cmp"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"anagenesis/pkg/ga"
	"anagenesis/pkg/random"
)

// Algorithm is the per-generation engine driven by a Simulator.
type Algorithm[G any, F cmp.Ordered] interface {
	// Next advances one generation using the given random stream.
	Next(iteration uint64, rng *random.Rng) (ga.State[G, F], error)
	// Reset restores the initial population.
	Reset()
	// ProcessingTime is the cumulative time spent inside the engine.
	ProcessingTime() time.Duration
}

// State is the snapshot handed to termination conditions and returned in
// results after every generation.
type State[G any, F cmp.Ordered] struct {
	// StartedAt is when the current run or step sequence began.
	StartedAt time.Time
	// Iteration counts generations since the last reset, starting at 1.
	Iteration uint64
	// Seed is the random seed this generation was computed from. Replaying
	// it through StepWithSeed reproduces the generation.
	Seed random.Seed
	// Duration is the wall clock time of this generation.
	Duration time.Duration
	// ProcessingTime is the cumulative engine time since the last reset.
	ProcessingTime time.Duration
	// Result is the engine's output for this generation.
	Result ga.State[G, F]
}

// Result is the outcome of one Run or Step call. Final is false for
// intermediate generations; once the termination condition stops the run,
// Final is true and StopReason, ProcessingTime and TotalDuration are set.
type Result[G any, F cmp.Ordered] struct {
	State          State[G, F]
	Final          bool
	StopReason     string
	ProcessingTime time.Duration
	TotalDuration  time.Duration
}

// Flag is a termination verdict.
type Flag struct {
	Stop   bool
	Reason string
}

// Continue lets the simulation proceed.
func Continue() Flag { return Flag{} }

// StopNow ends the simulation with the given reason.
func StopNow(reason string) Flag { return Flag{Stop: true, Reason: reason} }

// Termination decides after every generation whether the simulation is
// done.
type Termination[G any, F cmp.Ordered] interface {
	Evaluate(state *State[G, F]) Flag
	// Reset clears any accumulated state when the simulation resets.
	Reset()
}

// AlreadyRunningError reports an operation that conflicts with a run in
// progress.
type AlreadyRunningError struct {
	Mode  string
	Since time.Time
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("simulation already running in %s mode since %s", e.Mode, e.Since.Format(time.RFC3339))
}

// UnexpectedError reports a state the simulator should not be able to
// reach.
type UnexpectedError struct {
	Message string
}

func (e *UnexpectedError) Error() string {
	return "unexpected simulation state: " + e.Message
}

type runMode int

const (
	notRunning runMode = iota
	loopMode
	stepMode
)

func (m runMode) String() string {
	switch m {
	case loopMode:
		return "loop"
	case stepMode:
		return "step"
	default:
		return "not running"
	}
}

// Simulator drives an Algorithm until a Termination condition stops it.
// Run executes the whole loop in one call; Step advances one generation at
// a time. A simulator must not be in loop mode for Step and not running at
// all for a second Run.
type Simulator[G any, F cmp.Ordered] struct {
	algorithm   Algorithm[G, F]
	termination Termination[G, F]

	mu        sync.Mutex
	mode      runMode
	startedAt time.Time

	execMu    sync.Mutex
	iteration atomic.Uint64
	finished  atomic.Bool
}

// New builds a Simulator around the given engine and termination
// condition.
func New[G any, F cmp.Ordered](algorithm Algorithm[G, F], termination Termination[G, F]) *Simulator[G, F] {
	return &Simulator[G, F]{algorithm: algorithm, termination: termination}
}

// Run executes generations until the termination condition stops the
// simulation or Stop is called. Only one Run may be active; concurrent
// calls and calls during stepping fail with AlreadyRunningError.
func (s *Simulator[G, F]) Run() (Result[G, F], error) {
	s.mu.Lock()
	if s.mode != notRunning {
		err := &AlreadyRunningError{Mode: s.mode.String(), Since: s.startedAt}
		s.mu.Unlock()
		return Result[G, F]{}, err
	}
	s.finished.Store(false)
	s.mode = loopMode
	s.startedAt = time.Now()
	s.mu.Unlock()

	var result Result[G, F]
	haveResult := false
	for !s.finished.Load() {
		state, err := s.processOneIteration(random.NewSeed())
		if err != nil {
			s.leaveMode()
			return Result[G, F]{}, err
		}
		flag := s.termination.Evaluate(&state)
		if flag.Stop {
			s.finished.Store(true)
			result = Result[G, F]{
				State:          state,
				Final:          true,
				StopReason:     flag.Reason,
				ProcessingTime: state.ProcessingTime,
				TotalDuration:  time.Since(s.startedAt),
			}
		} else {
			result = Result[G, F]{State: state}
		}
		haveResult = true
	}
	s.leaveMode()
	if !haveResult {
		return Result[G, F]{}, &UnexpectedError{Message: "run loop finished without producing a result"}
	}
	return result, nil
}

// Step advances one generation with a fresh random seed.
func (s *Simulator[G, F]) Step() (Result[G, F], error) {
	return s.StepWithSeed(random.NewSeed())
}

// StepWithSeed advances one generation computed from the given seed.
// Stepping with the seed of a previous generation replays it exactly. A
// final result returns the simulator to the not running state.
func (s *Simulator[G, F]) StepWithSeed(seed random.Seed) (Result[G, F], error) {
	s.mu.Lock()
	if s.mode == loopMode {
		err := &AlreadyRunningError{Mode: s.mode.String(), Since: s.startedAt}
		s.mu.Unlock()
		return Result[G, F]{}, err
	}
	if s.mode == notRunning {
		s.mode = stepMode
		s.startedAt = time.Now()
	}
	s.mu.Unlock()

	state, err := s.processOneIteration(seed)
	if err != nil {
		s.leaveMode()
		return Result[G, F]{}, err
	}
	flag := s.termination.Evaluate(&state)
	if flag.Stop {
		s.leaveMode()
		return Result[G, F]{
			State:          state,
			Final:          true,
			StopReason:     flag.Reason,
			ProcessingTime: state.ProcessingTime,
			TotalDuration:  time.Since(state.StartedAt),
		}, nil
	}
	return Result[G, F]{State: state}, nil
}

// Stop asks a looping simulation to finish after the current generation.
// It reports whether a run was actually stopped.
func (s *Simulator[G, F]) Stop() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.mode {
	case notRunning:
		return false, nil
	case stepMode:
		s.mode = notRunning
		return true, nil
	default:
		s.finished.Store(true)
		return true, nil
	}
}

// Reset returns the simulation to iteration zero with the initial
// population. It fails while a run or step sequence is active.
func (s *Simulator[G, F]) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != notRunning {
		return &AlreadyRunningError{Mode: s.mode.String(), Since: s.startedAt}
	}
	s.iteration.Store(0)
	s.algorithm.Reset()
	s.termination.Reset()
	return nil
}

// Iteration returns the number of generations computed since the last
// reset.
func (s *Simulator[G, F]) Iteration() uint64 {
	return s.iteration.Load()
}

func (s *Simulator[G, F]) leaveMode() {
	s.mu.Lock()
	s.mode = notRunning
	s.mu.Unlock()
}

func (s *Simulator[G, F]) processOneIteration(seed random.Seed) (State[G, F], error) {
	s.execMu.Lock()
	defer s.execMu.Unlock()

	started := time.Now()
	iteration := s.iteration.Add(1)
	out, err := s.algorithm.Next(iteration, random.New(seed))
	if err != nil {
		return State[G, F]{}, fmt.Errorf("simulation: iteration %d: %w", iteration, err)
	}

	s.mu.Lock()
	startedAt := s.startedAt
	s.mu.Unlock()
	return State[G, F]{
		StartedAt:      startedAt,
		Iteration:      iteration,
		Seed:           seed,
		Duration:       time.Since(started),
		ProcessingTime: s.algorithm.ProcessingTime(),
		Result:         out,
	}, nil
}
