package main

import (
	"strings"
	"testing"

	"anagenesis/pkg/random"
)

func TestParseSeedFlag(t *testing.T) {
	seed, err := parseSeedFlag("42")
	if err != nil {
		t.Fatalf("decimal seed: %v", err)
	}
	if seed != random.SeedFromUint64(42) {
		t.Fatal("decimal seed not expanded through the seed stream")
	}

	hexSeed, err := parseSeedFlag(seed.String())
	if err != nil {
		t.Fatalf("hex seed: %v", err)
	}
	if hexSeed != seed {
		t.Fatal("hex seed round trip mismatch")
	}

	if _, err := parseSeedFlag("not-a-seed"); err == nil {
		t.Fatal("expected error for malformed seed")
	}

	first, err := parseSeedFlag("")
	if err != nil {
		t.Fatalf("random seed: %v", err)
	}
	second, err := parseSeedFlag("")
	if err != nil {
		t.Fatalf("random seed: %v", err)
	}
	if first == second {
		t.Fatal("empty seed flag must draw fresh entropy")
	}
}

func TestUsageErrorNamesCommands(t *testing.T) {
	err := usageError("missing command")
	for _, command := range []string{"run", "problems", "runs", "show", "fitness"} {
		if !strings.Contains(err.Error(), command) {
			t.Fatalf("usage error does not mention %q: %v", command, err)
		}
	}
}
