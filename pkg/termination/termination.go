// Package termination provides the conditions that end a simulation:
// reaching a fitness target, a generation count or a time limit, plus And
// and Or combinators to compose them.
package termination

import (
	"cmp"
	"fmt"
	"time"

	"anagenesis/pkg/simulation"
)

// FitnessLimit stops once the best solution reaches the target fitness.
type FitnessLimit[G any, F cmp.Ordered] struct {
	FitnessTarget F
}

func (l FitnessLimit[G, F]) Evaluate(state *simulation.State[G, F]) simulation.Flag {
	best := state.Result.Best.Solution.Fitness
	if best >= l.FitnessTarget {
		return simulation.StopNow(fmt.Sprintf("reached fitness %v of target %v", best, l.FitnessTarget))
	}
	return simulation.Continue()
}

func (FitnessLimit[G, F]) Reset() {}

// GenerationLimit stops once the given number of generations has been
// computed.
type GenerationLimit[G any, F cmp.Ordered] struct {
	MaxGenerations uint64
}

func (l GenerationLimit[G, F]) Evaluate(state *simulation.State[G, F]) simulation.Flag {
	if state.Iteration >= l.MaxGenerations {
		return simulation.StopNow(fmt.Sprintf("reached generation limit of %d", l.MaxGenerations))
	}
	return simulation.Continue()
}

func (GenerationLimit[G, F]) Reset() {}

// TimeLimit stops once the simulation has been running for the given wall
// clock duration.
type TimeLimit[G any, F cmp.Ordered] struct {
	MaxTime time.Duration
}

func (l TimeLimit[G, F]) Evaluate(state *simulation.State[G, F]) simulation.Flag {
	elapsed := time.Since(state.StartedAt)
	if elapsed >= l.MaxTime {
		return simulation.StopNow(fmt.Sprintf("reached time limit of %s after %s", l.MaxTime, elapsed.Round(time.Millisecond)))
	}
	return simulation.Continue()
}

func (TimeLimit[G, F]) Reset() {}

// AndCondition stops only when both conditions stop, joining their
// reasons.
type AndCondition[G any, F cmp.Ordered] struct {
	First  simulation.Termination[G, F]
	Second simulation.Termination[G, F]
}

// And combines two conditions so that both must hold to stop.
func And[G any, F cmp.Ordered](first, second simulation.Termination[G, F]) AndCondition[G, F] {
	return AndCondition[G, F]{First: first, Second: second}
}

func (c AndCondition[G, F]) Evaluate(state *simulation.State[G, F]) simulation.Flag {
	first := c.First.Evaluate(state)
	second := c.Second.Evaluate(state)
	if first.Stop && second.Stop {
		return simulation.StopNow(first.Reason + " and " + second.Reason)
	}
	return simulation.Continue()
}

func (c AndCondition[G, F]) Reset() {
	c.First.Reset()
	c.Second.Reset()
}

// OrCondition stops when either condition stops, joining the reasons when
// both trigger at once.
type OrCondition[G any, F cmp.Ordered] struct {
	First  simulation.Termination[G, F]
	Second simulation.Termination[G, F]
}

// Or combines two conditions so that either may stop the simulation.
func Or[G any, F cmp.Ordered](first, second simulation.Termination[G, F]) OrCondition[G, F] {
	return OrCondition[G, F]{First: first, Second: second}
}

func (c OrCondition[G, F]) Evaluate(state *simulation.State[G, F]) simulation.Flag {
	first := c.First.Evaluate(state)
	second := c.Second.Evaluate(state)
	switch {
	case first.Stop && second.Stop:
		return simulation.StopNow(first.Reason + " and " + second.Reason)
	case first.Stop:
		return first
	case second.Stop:
		return second
	default:
		return simulation.Continue()
	}
}

func (c OrCondition[G, F]) Reset() {
	c.First.Reset()
	c.Second.Reset()
}
