package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord is the archived summary of one finished simulation run.
type RunRecord struct {
	VersionedRecord
	ID             string  `json:"id"`
	Problem        string  `json:"problem"`
	Seed           string  `json:"seed"`
	PopulationSize int     `json:"population_size"`
	Generations    uint64  `json:"generations"`
	BestFitness    float64 `json:"best_fitness"`
	BestPhenotype  string  `json:"best_phenotype"`
	StopReason     string  `json:"stop_reason"`
	DurationMS     int64   `json:"duration_ms"`
	ProcessingMS   int64   `json:"processing_ms"`
	CreatedAt      string  `json:"created_at"`
}

// GenerationRecord is one line of a run's per-generation history.
type GenerationRecord struct {
	Iteration      uint64  `json:"iteration"`
	BestFitness    float64 `json:"best_fitness"`
	LowestFitness  float64 `json:"lowest_fitness"`
	AverageFitness float64 `json:"average_fitness"`
	DurationMS     int64   `json:"duration_ms"`
}
