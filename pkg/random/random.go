// Package random provides the deterministic, splittable random number
// generator used by the evolution engine. The generator is xoshiro256++
// seeded from 32 bytes; Jump derives statistically independent sub-streams
// so parallel branches of a computation can draw without coordination.
package random

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// SeedSize is the number of seed bytes consumed by New.
const SeedSize = 32

// Seed is the full state of an Rng. Two generators created from the same
// seed produce identical sequences.
type Seed [SeedSize]byte

// NewSeed returns a seed drawn from the operating system entropy source.
func NewSeed() Seed {
	var s Seed
	if _, err := cryptorand.Read(s[:]); err != nil {
		// crypto/rand.Read never fails on supported platforms.
		panic(fmt.Sprintf("random: reading entropy: %v", err))
	}
	return s
}

// SeedFromUint64 expands a single integer into a full seed using the
// SplitMix64 sequence. Convenient for tests and CLI flags.
func SeedFromUint64(v uint64) Seed {
	var s Seed
	sm := v
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(s[i*8:], splitMix64(&sm))
	}
	return s
}

// ParseSeed decodes a seed printed by (Seed).String.
func ParseSeed(hexStr string) (Seed, error) {
	var s Seed
	if len(hexStr) != SeedSize*2 {
		return s, fmt.Errorf("random: seed must be %d hex characters, got %d", SeedSize*2, len(hexStr))
	}
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return s, fmt.Errorf("random: parsing seed: %v", err)
	}
	copy(s[:], raw)
	return s, nil
}

func (s Seed) String() string {
	return hex.EncodeToString(s[:])
}

// Rng is a xoshiro256++ generator. It is not safe for concurrent use; fork
// independent generators with Jump and Clone instead of sharing one.
type Rng struct {
	s [4]uint64
}

// New creates a generator from seed. An all-zero seed would put xoshiro in
// its degenerate fixed point, so it is remapped through SplitMix64.
func New(seed Seed) *Rng {
	r := &Rng{}
	for i := 0; i < 4; i++ {
		r.s[i] = binary.LittleEndian.Uint64(seed[i*8:])
	}
	if r.s[0]|r.s[1]|r.s[2]|r.s[3] == 0 {
		sm := uint64(0)
		for i := 0; i < 4; i++ {
			r.s[i] = splitMix64(&sm)
		}
	}
	return r
}

func splitMix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Clone returns an independent copy with identical state.
func (r *Rng) Clone() *Rng {
	c := *r
	return &c
}

// Uint64 advances the generator and returns the next value.
func (r *Rng) Uint64() uint64 {
	result := bits.RotateLeft64(r.s[0]+r.s[3], 23) + r.s[0]

	t := r.s[1] << 17
	r.s[2] ^= r.s[0]
	r.s[3] ^= r.s[1]
	r.s[1] ^= r.s[2]
	r.s[0] ^= r.s[3]
	r.s[2] ^= t
	r.s[3] = bits.RotateLeft64(r.s[3], 45)
	return result
}

// jumpPoly is the xoshiro256 characteristic polynomial for 2^128 steps.
var jumpPoly = [4]uint64{0x180ec6d33cfd0aba, 0xd5a61266f0c9392c, 0xa9582618e03fc9aa, 0x39abdc4529b1661c}

// Jump advances the generator by 2^128 steps. Successive Jump/Clone pairs
// yield non-overlapping sub-sequences for parallel work.
func (r *Rng) Jump() {
	var s [4]uint64
	for _, p := range jumpPoly {
		for b := 0; b < 64; b++ {
			if p&(uint64(1)<<b) != 0 {
				s[0] ^= r.s[0]
				s[1] ^= r.s[1]
				s[2] ^= r.s[2]
				s[3] ^= r.s[3]
			}
			r.Uint64()
		}
	}
	r.s = s
}

// Intn returns a uniform value in [0, n). It panics if n <= 0.
func (r *Rng) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn called with non-positive bound")
	}
	// Rejection sampling keeps the distribution unbiased.
	limit := ^uint64(0) - ^uint64(0)%uint64(n)
	for {
		v := r.Uint64()
		if v < limit {
			return int(v % uint64(n))
		}
	}
}

// IntRange returns a uniform value in [min, max). It panics if max <= min.
func (r *Rng) IntRange(min, max int) int {
	if max <= min {
		panic("random: IntRange called with empty range")
	}
	return min + r.Intn(max-min)
}

// Float64 returns a uniform value in [0, 1).
func (r *Rng) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Bool returns true or false with equal probability.
func (r *Rng) Bool() bool {
	return r.Uint64()&1 == 1
}

// Range returns a uniform value in [min, max) for any scalar numeric type.
func Range[V constraints.Integer | constraints.Float](r *Rng, min, max V) V {
	if max <= min {
		panic("random: Range called with empty range")
	}
	span := float64(max) - float64(min)
	return min + V(span*r.Float64())
}

// CutPoints returns two distinct cut point indices a < b within a genome of
// the given length, rejecting degenerate pairs that would slice off the
// whole genome. Length must be at least 4.
func (r *Rng) CutPoints(length int) (int, int) {
	return r.CutPointsInRange(0, length)
}

// CutPointsInRange is CutPoints over the half-open index range [min, max).
func (r *Rng) CutPointsInRange(min, max int) (int, int) {
	if max-min < 4 {
		panic("random: cut point range must span at least 4 indices")
	}
	for {
		a := r.IntRange(min, max)
		b := r.IntRange(min, max)
		if a == b {
			continue
		}
		if a > b {
			a, b = b, a
		}
		if b-a < max-min-2 {
			return a, b
		}
	}
}

// NCutPoints returns n distinct cut point indices in ascending order within
// a genome of the given length. It panics unless 1 <= n < length and
// length >= 4.
func (r *Rng) NCutPoints(n, length int) []int {
	if length < 4 {
		panic("random: genome too short for cut points")
	}
	if n < 1 || n >= length {
		panic("random: cut point count out of range")
	}
	seen := make(map[int]bool, n)
	points := make([]int, 0, n)
	for len(points) < n {
		p := r.IntRange(1, length)
		if seen[p] {
			continue
		}
		seen[p] = true
		points = append(points, p)
	}
	// Insertion sort keeps the small slice ordered without pulling in sort.
	for i := 1; i < len(points); i++ {
		for j := i; j > 0 && points[j-1] > points[j]; j-- {
			points[j-1], points[j] = points[j], points[j-1]
		}
	}
	return points
}
