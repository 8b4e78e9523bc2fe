package storage

import (
	"context"

	"anagenesis/internal/model"
)

// Store defines persistence operations for the run archive.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
	SaveGenerationHistory(ctx context.Context, runID string, history []model.GenerationRecord) error
	GetGenerationHistory(ctx context.Context, runID string) ([]model.GenerationRecord, bool, error)
}
