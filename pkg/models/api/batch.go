package api

import "time"

type BatchRecord struct {
	FileID      string  `json:"file_id"`
	Status      string  `json:"status"`
	TimeSeconds float64 `json:"time_seconds"`
	OutputBytes int64   `json:"output_bytes"`
	Degraded    int     `json:"degraded"`
	ErrorKind   string  `json:"error_kind,omitempty"`
}

// BatchReport carries the exact report fields existing consumers expect:
// totals, success rate, total/average time, fastest/slowest, byte sizes and
// the per-file records.
type BatchReport struct {
	RunID              string        `json:"run_id"`
	StartedAt          time.Time     `json:"started_at"`
	TotalFiles         int           `json:"total_files"`
	Successes          int           `json:"successes"`
	Failures           int           `json:"failures"`
	SuccessRatePct     float64       `json:"success_rate_pct"`
	TotalTimeSeconds   float64       `json:"total_time_seconds"`
	AverageTimeSeconds float64       `json:"average_time_seconds"`
	FastestFileSeconds float64       `json:"fastest_file_seconds"`
	SlowestFileSeconds float64       `json:"slowest_file_seconds"`
	TotalOutputBytes   int64         `json:"total_output_bytes"`
	AverageOutputBytes int64         `json:"average_output_bytes"`
	Records            []BatchRecord `json:"records,omitempty"`
}
