// Package task provides the divide-and-conquer combinator the engine uses
// for population building, fitness evaluation and breeding. Work is split at
// the midpoint and each half receives its own jumped random stream, so the
// result is identical for a fixed seed no matter how the halves are
// scheduled.
package task

import (
	"sync"

	"anagenesis/pkg/random"
)

// Executor joins two halves of a divided computation.
type Executor interface {
	Join(left, right func())
}

// Parallel runs the left half on its own goroutine and the right half
// inline.
type Parallel struct{}

func (Parallel) Join(left, right func()) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		left()
	}()
	right()
	wg.Wait()
}

// Serial runs both halves inline. Useful for tests and profiling.
type Serial struct{}

func (Serial) Join(left, right func()) {
	left()
	right()
}

// Map produces n items by recursively halving the index range [0, n).
// Ranges below threshold are handed to leaf with the current random stream;
// larger ranges fork the stream with Jump and recurse, concatenating the
// left result before the right. A nil executor defaults to Parallel.
func Map[T any](ex Executor, rng *random.Rng, n, threshold int, leaf func(rng *random.Rng, lo, hi int) []T) []T {
	if ex == nil {
		ex = Parallel{}
	}
	if threshold < 1 {
		threshold = 1
	}
	return mapRange(ex, rng, 0, n, threshold, leaf)
}

func mapRange[T any](ex Executor, rng *random.Rng, lo, hi, threshold int, leaf func(*random.Rng, int, int) []T) []T {
	if hi-lo < threshold {
		return leaf(rng, lo, hi)
	}
	rng.Jump()
	leftRng := rng.Clone()
	rng.Jump()
	rightRng := rng.Clone()

	mid := lo + (hi-lo)/2
	var left, right []T
	ex.Join(
		func() { left = mapRange(ex, leftRng, lo, mid, threshold, leaf) },
		func() { right = mapRange(ex, rightRng, mid, hi, threshold, leaf) },
	)
	return append(left, right...)
}
