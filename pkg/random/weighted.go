package random

import "golang.org/x/exp/constraints"

// WeightedDistribution selects indices with probability proportional to the
// weight supplied for each index. Used by fitness-proportionate selection.
type WeightedDistribution struct {
	weights []float64
	sum     float64
}

// NewWeightedDistribution builds a distribution over the given weights.
// Weights must be non-negative.
func NewWeightedDistribution[V constraints.Integer | constraints.Float](weights []V) *WeightedDistribution {
	d := &WeightedDistribution{weights: make([]float64, len(weights))}
	for i, w := range weights {
		f := float64(w)
		d.weights[i] = f
		d.sum += f
	}
	return d
}

// Sum returns the total weight.
func (d *WeightedDistribution) Sum() float64 {
	return d.sum
}

// Select returns the index whose cumulative weight interval contains
// pointer, where pointer lies in [0, Sum()). Rounding drift falls through
// to the last index.
func (d *WeightedDistribution) Select(pointer float64) int {
	remaining := pointer
	for i, w := range d.weights {
		remaining -= w
		if remaining < 0 {
			return i
		}
	}
	return len(d.weights) - 1
}
