package domain

import "time"

// FileRef identifies one input workbook in a batch run.
type FileRef struct {
	ID   string
	Path string
}

// BatchStatus is the terminal state of one file's pipeline.
type BatchStatus string

const (
	StatusSuccess BatchStatus = "success"
	StatusFailure BatchStatus = "failure"
)

// BatchRecord is the per-file outcome. Exactly one record exists per input
// file regardless of how the pipeline ended.
type BatchRecord struct {
	FileID      string
	Status      BatchStatus
	Duration    time.Duration
	OutputBytes int64
	Degraded    int
	ErrorKind   string
}

// BatchSummary aggregates a whole run. Records are in completion order,
// which is concurrency-dependent, not submission order.
type BatchSummary struct {
	RunID        string
	StartedAt    time.Time
	TotalFiles   int
	Successes    int
	Failures     int
	SuccessRate  float64
	TotalTime    time.Duration
	AverageTime  time.Duration
	FastestFile  time.Duration
	SlowestFile  time.Duration
	TotalBytes   int64
	AverageBytes int64
	Records      []BatchRecord
}
