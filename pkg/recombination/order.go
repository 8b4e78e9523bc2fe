package recombination

import (
	"anagenesis/pkg/genetic"
	"anagenesis/pkg/random"
)

// OrderOneCrossover (OX1) recombines permutation genomes: each child keeps
// a random slice of one parent and fills the remaining loci with the other
// parent's values in their relative order, starting after the slice. The
// result is always a valid permutation.
type OrderOneCrossover[V comparable] struct{}

func (OrderOneCrossover[V]) Name() string { return "order-one-crossover" }

func (OrderOneCrossover[V]) Mate(rng *random.Rng, parents genetic.Parents[[]V]) genetic.Children[[]V] {
	cut1, cut2 := rng.CutPoints(len(parents[0]))
	children := make(genetic.Children[[]V], 0, len(parents))
	for i := range parents {
		other := (i + 1) % len(parents)
		children = append(children, orderOne(parents[i], parents[other], cut1, cut2))
	}
	return children
}

// orderOne keeps p1[cut1..cut2] in place and fills the rest from p2 in
// order, wrapping after cut2.
func orderOne[V comparable](p1, p2 []V, cut1, cut2 int) []V {
	length := len(p1)
	child := make([]V, length)
	inSlice := make(map[V]bool, cut2-cut1+1)
	for i := cut1; i <= cut2; i++ {
		child[i] = p1[i]
		inSlice[p1[i]] = true
	}
	pos := (cut2 + 1) % length
	for offset := 0; offset < length; offset++ {
		value := p2[(cut2+1+offset)%length]
		if inSlice[value] {
			continue
		}
		child[pos] = value
		pos = (pos + 1) % length
	}
	return child
}

// PartiallyMappedCrossover (PMX) recombines permutation genomes: each child
// copies one parent, overwrites a random slice with the other parent's
// values and repairs duplicates through the slice mapping. The result is
// always a valid permutation.
type PartiallyMappedCrossover[V comparable] struct{}

func (PartiallyMappedCrossover[V]) Name() string { return "partially-mapped-crossover" }

func (PartiallyMappedCrossover[V]) Mate(rng *random.Rng, parents genetic.Parents[[]V]) genetic.Children[[]V] {
	cut1, cut2 := rng.CutPoints(len(parents[0]))
	children := make(genetic.Children[[]V], 0, len(parents))
	for i := range parents {
		other := (i + 1) % len(parents)
		children = append(children, partiallyMapped(parents[i], parents[other], cut1, cut2))
	}
	return children
}

// partiallyMapped writes p1[cut1..cut2] over a copy of p2 and resolves the
// duplicates outside the slice via the p1->p2 value mapping of the slice.
func partiallyMapped[V comparable](p1, p2 []V, cut1, cut2 int) []V {
	child := make([]V, len(p2))
	copy(child, p2)

	mapping := make(map[V]V, cut2-cut1+1)
	inSlice := make(map[V]bool, cut2-cut1+1)
	for i := cut1; i <= cut2; i++ {
		child[i] = p1[i]
		mapping[p1[i]] = p2[i]
		inSlice[p1[i]] = true
	}
	for i := range child {
		if i >= cut1 && i <= cut2 {
			continue
		}
		value := child[i]
		for inSlice[value] {
			value = mapping[value]
		}
		child[i] = value
	}
	return child
}
