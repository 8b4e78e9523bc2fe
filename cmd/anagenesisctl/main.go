package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"anagenesis/internal/model"
	"anagenesis/internal/problem"
	"anagenesis/internal/storage"
	"anagenesis/pkg/random"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:])
	case "problems":
		return runProblems(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	case "fitness":
		return runFitness(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	problemName := fs.String("problem", "knapsack", "problem to run: knapsack|queens|monkeys")
	populationSize := fs.Int("population", 200, "population size")
	generations := fs.Uint64("generations", 100, "generation limit")
	seedFlag := fs.String("seed", "", "run seed: decimal number or 64 hex characters (default random)")
	serial := fs.Bool("serial", false, "disable fork-join parallelism")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "anagenesis.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit the run report as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *populationSize <= 0 {
		return errors.New("population must be > 0")
	}
	if *generations == 0 {
		return errors.New("generations must be > 0")
	}

	seed, err := parseSeedFlag(*seedFlag)
	if err != nil {
		return err
	}

	p, err := problem.ByName(*problemName)
	if err != nil {
		return err
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	report, err := p.Run(problem.RunParams{
		PopulationSize: *populationSize,
		MaxGenerations: *generations,
		Seed:           seed,
		Serial:         *serial,
	})
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	record := model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:             runID,
		Problem:        report.Problem,
		Seed:           report.Seed.String(),
		PopulationSize: *populationSize,
		Generations:    report.Iterations,
		BestFitness:    report.BestFitness,
		BestPhenotype:  report.BestPhenotype,
		StopReason:     report.StopReason,
		DurationMS:     report.Duration.Milliseconds(),
		ProcessingMS:   report.ProcessingTime.Milliseconds(),
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := store.SaveRun(ctx, record); err != nil {
		return err
	}
	if err := store.SaveGenerationHistory(ctx, runID, report.History); err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}

	evaluations := uint64(*populationSize) * report.Iterations
	fmt.Printf("run_id=%s problem=%s seed=%s\n", runID, report.Problem, report.Seed)
	fmt.Printf("generations=%d evaluations=%s best_fitness=%.4f\n",
		report.Iterations, humanize.Comma(int64(evaluations)), report.BestFitness)
	fmt.Printf("stopped: %s\n", report.StopReason)
	fmt.Printf("best: %s\n", report.BestPhenotype)
	fmt.Printf("took %s (engine %s)\n",
		report.Duration.Round(time.Millisecond), report.ProcessingTime.Round(time.Millisecond))
	return nil
}

func runProblems(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("problems", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, p := range problem.All() {
		fmt.Printf("%-10s %s\n", p.Name(), p.Description())
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "anagenesis.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	runs, err := store.ListRuns(ctx, *limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	for _, r := range runs {
		fmt.Printf("run_id=%s created_at=%s problem=%s pop=%d gens=%d best_fitness=%.4f stop=%q\n",
			r.ID, r.CreatedAt, r.Problem, r.PopulationSize, r.Generations, r.BestFitness, r.StopReason)
	}
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	runID := fs.String("run", "", "run id")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "anagenesis.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("run id is required")
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	record, ok, err := store.GetRun(ctx, *runID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run %s not found", *runID)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

func runFitness(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fitness", flag.ContinueOnError)
	runID := fs.String("run", "", "run id")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "anagenesis.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit history as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("run id is required")
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	history, ok, err := store.GetGenerationHistory(ctx, *runID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no generation history for run %s", *runID)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(history)
	}
	for _, g := range history {
		fmt.Printf("generation=%d best=%.4f lowest=%.4f average=%.4f took=%dms\n",
			g.Iteration, g.BestFitness, g.LowestFitness, g.AverageFitness, g.DurationMS)
	}
	return nil
}

// parseSeedFlag accepts a decimal number, a 64-character hex seed or an
// empty string for a fresh random seed.
func parseSeedFlag(value string) (random.Seed, error) {
	if value == "" {
		return random.NewSeed(), nil
	}
	if n, err := strconv.ParseUint(value, 10, 64); err == nil {
		return random.SeedFromUint64(n), nil
	}
	return random.ParseSeed(value)
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: anagenesisctl <run|problems|runs|show|fitness> [flags]", msg)
}
