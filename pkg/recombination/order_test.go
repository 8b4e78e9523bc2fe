package recombination

import (
	"testing"

	"anagenesis/pkg/genetic"
	"anagenesis/pkg/random"
)

func TestOrderOneKnownVector(t *testing.T) {
	p1 := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	p2 := []int{9, 3, 7, 8, 2, 6, 5, 1, 4}
	got := orderOne(p1, p2, 3, 6)
	want := []int{3, 8, 2, 4, 5, 6, 7, 1, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("orderOne mismatch: got %v, want %v", got, want)
		}
	}
}

func TestOrderOneReverseDirection(t *testing.T) {
	p1 := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	p2 := []int{9, 3, 7, 8, 2, 6, 5, 1, 4}
	got := orderOne(p2, p1, 3, 6)
	// Slice 8,2,6,5 kept from p2; remaining values of p1 in order
	// starting after the slice: 9,1,3,4,7.
	want := []int{3, 4, 7, 8, 2, 6, 5, 9, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("orderOne mismatch: got %v, want %v", got, want)
		}
	}
}

func TestOrderOneEdgeCutPoints(t *testing.T) {
	p1 := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	p2 := []int{9, 3, 7, 8, 2, 6, 5, 1, 4}
	cases := []struct {
		name       string
		a, b       []int
		cut1, cut2 int
		want       []int
	}{
		// A single-locus slice forces the fill to wrap from index cut2+1
		// all the way around the genome.
		{"single locus", p1, p2, 0, 0, []int{1, 3, 7, 8, 2, 6, 5, 4, 9}},
		{"single locus reversed", p2, p1, 0, 0, []int{9, 2, 3, 4, 5, 6, 7, 8, 1}},
		// A full-length slice leaves nothing to fill: the child is the
		// first parent.
		{"full slice", p1, p2, 0, 8, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"full slice reversed", p2, p1, 0, 8, []int{9, 3, 7, 8, 2, 6, 5, 1, 4}},
	}
	for _, tc := range cases {
		got := orderOne(tc.a, tc.b, tc.cut1, tc.cut2)
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
			}
		}
	}
}

func TestPartiallyMappedEdgeCutPoints(t *testing.T) {
	p1 := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	p2 := []int{9, 3, 7, 8, 2, 6, 5, 1, 4}
	cases := []struct {
		name       string
		a, b       []int
		cut1, cut2 int
		want       []int
	}{
		{"single locus", p1, p2, 0, 0, []int{1, 3, 7, 8, 2, 6, 5, 9, 4}},
		{"single locus reversed", p2, p1, 0, 0, []int{9, 2, 3, 4, 5, 6, 7, 8, 1}},
		{"full slice", p1, p2, 0, 8, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"full slice reversed", p2, p1, 0, 8, []int{9, 3, 7, 8, 2, 6, 5, 1, 4}},
	}
	for _, tc := range cases {
		got := partiallyMapped(tc.a, tc.b, tc.cut1, tc.cut2)
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
			}
		}
	}
}

func TestPartiallyMappedKnownVector(t *testing.T) {
	p1 := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	p2 := []int{9, 3, 7, 8, 2, 6, 5, 1, 4}
	got := partiallyMapped(p1, p2, 3, 6)
	want := []int{9, 3, 2, 4, 5, 6, 7, 1, 8}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("partiallyMapped mismatch: got %v, want %v", got, want)
		}
	}
}

func assertPermutation(t *testing.T, genome []int, length int) {
	t.Helper()
	if len(genome) != length {
		t.Fatalf("genome has length %d, want %d", len(genome), length)
	}
	seen := make([]bool, length)
	for _, v := range genome {
		if v < 0 || v >= length || seen[v] {
			t.Fatalf("not a permutation: %v", genome)
		}
		seen[v] = true
	}
}

func TestOrderCrossoverPreservesPermutations(t *testing.T) {
	const length = 16
	builder := genetic.PermutationEncodedGenomeBuilder{Length: length}
	rng := random.New(random.SeedFromUint64(31))

	ox := OrderOneCrossover[int]{}
	pmx := PartiallyMappedCrossover[int]{}
	for round := 0; round < 100; round++ {
		parents := genetic.Parents[[]int]{
			builder.BuildGenome(0, rng),
			builder.BuildGenome(1, rng),
		}
		for _, child := range ox.Mate(rng, parents) {
			assertPermutation(t, child, length)
		}
		for _, child := range pmx.Mate(rng, parents) {
			assertPermutation(t, child, length)
		}
	}
}

func TestOrderCrossoverChildCountMatchesParents(t *testing.T) {
	builder := genetic.PermutationEncodedGenomeBuilder{Length: 10}
	rng := random.New(random.SeedFromUint64(13))
	parents := genetic.Parents[[]int]{
		builder.BuildGenome(0, rng),
		builder.BuildGenome(1, rng),
		builder.BuildGenome(2, rng),
	}
	if got := len(OrderOneCrossover[int]{}.Mate(rng, parents)); got != 3 {
		t.Fatalf("OX1 produced %d children for 3 parents", got)
	}
	if got := len(PartiallyMappedCrossover[int]{}.Mate(rng, parents)); got != 3 {
		t.Fatalf("PMX produced %d children for 3 parents", got)
	}
}

func TestOrderCrossoverDoesNotMutateParents(t *testing.T) {
	p1 := []int{0, 1, 2, 3, 4, 5, 6, 7}
	p2 := []int{7, 6, 5, 4, 3, 2, 1, 0}
	snapshot1 := append([]int(nil), p1...)
	snapshot2 := append([]int(nil), p2...)
	rng := random.New(random.SeedFromUint64(3))

	OrderOneCrossover[int]{}.Mate(rng, genetic.Parents[[]int]{p1, p2})
	PartiallyMappedCrossover[int]{}.Mate(rng, genetic.Parents[[]int]{p1, p2})

	for i := range p1 {
		if p1[i] != snapshot1[i] || p2[i] != snapshot2[i] {
			t.Fatal("crossover mutated a parent genome")
		}
	}
}
