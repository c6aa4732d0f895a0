package store

import "time"

// BatchRun is the persisted aggregate row for one batch run.
type BatchRun struct {
	ID          string
	StartedAt   time.Time
	TotalFiles  int
	Successes   int
	Failures    int
	SuccessRate float64
	TotalTimeMs int64
	AvgTimeMs   int64
	FastestMs   int64
	SlowestMs   int64
	TotalBytes  int64
	AvgBytes    int64
}

// BatchRecord is the persisted per-file outcome row.
type BatchRecord struct {
	RunID       string
	FileID      string
	Status      string
	DurationMs  int64
	OutputBytes int64
	Degraded    int
	ErrorKind   string
}
