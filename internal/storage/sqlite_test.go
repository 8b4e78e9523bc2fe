//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"anagenesis/internal/model"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer store.Close()

	run := newRun("run-1", "2026-08-25T10:00:00Z")
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("save run: %v", err)
	}
	got, ok, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok || got.Problem != run.Problem || got.StopReason != run.StopReason {
		t.Fatalf("unexpected run record: %+v", got)
	}

	history := []model.GenerationRecord{
		{Iteration: 1, BestFitness: 5},
		{Iteration: 2, BestFitness: 7},
	}
	if err := store.SaveGenerationHistory(ctx, "run-1", history); err != nil {
		t.Fatalf("save history: %v", err)
	}
	gotHistory, ok, err := store.GetGenerationHistory(ctx, "run-1")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if !ok || len(gotHistory) != 2 || gotHistory[1].BestFitness != 7 {
		t.Fatalf("unexpected history: %+v", gotHistory)
	}
}

func TestSQLiteStoreListRuns(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer store.Close()

	for _, run := range []model.RunRecord{
		newRun("run-a", "2026-08-25T10:00:00Z"),
		newRun("run-b", "2026-08-25T12:00:00Z"),
	} {
		if err := store.SaveRun(ctx, run); err != nil {
			t.Fatalf("save run %s: %v", run.ID, err)
		}
	}
	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-b" {
		t.Fatalf("unexpected list: %+v", runs)
	}
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	if err := store.SaveRun(context.Background(), newRun("run-1", "")); err == nil {
		t.Fatal("expected error before init")
	}
}
