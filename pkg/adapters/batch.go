package adapters

import (
	"github.com/de-tools/bill-forge/pkg/models/api"
	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/de-tools/bill-forge/pkg/models/store"
)

func MapDomainSummaryToStoreRun(summary *domain.BatchSummary) store.BatchRun {
	return store.BatchRun{
		ID:          summary.RunID,
		StartedAt:   summary.StartedAt,
		TotalFiles:  summary.TotalFiles,
		Successes:   summary.Successes,
		Failures:    summary.Failures,
		SuccessRate: summary.SuccessRate,
		TotalTimeMs: summary.TotalTime.Milliseconds(),
		AvgTimeMs:   summary.AverageTime.Milliseconds(),
		FastestMs:   summary.FastestFile.Milliseconds(),
		SlowestMs:   summary.SlowestFile.Milliseconds(),
		TotalBytes:  summary.TotalBytes,
		AvgBytes:    summary.AverageBytes,
	}
}

func MapDomainRecordToStore(runID string, record domain.BatchRecord) store.BatchRecord {
	return store.BatchRecord{
		RunID:       runID,
		FileID:      record.FileID,
		Status:      string(record.Status),
		DurationMs:  record.Duration.Milliseconds(),
		OutputBytes: record.OutputBytes,
		Degraded:    record.Degraded,
		ErrorKind:   record.ErrorKind,
	}
}

func MapStoreRunToApiReport(run store.BatchRun, records []store.BatchRecord) api.BatchReport {
	report := api.BatchReport{
		RunID:              run.ID,
		StartedAt:          run.StartedAt,
		TotalFiles:         run.TotalFiles,
		Successes:          run.Successes,
		Failures:           run.Failures,
		SuccessRatePct:     run.SuccessRate,
		TotalTimeSeconds:   float64(run.TotalTimeMs) / 1000,
		AverageTimeSeconds: float64(run.AvgTimeMs) / 1000,
		FastestFileSeconds: float64(run.FastestMs) / 1000,
		SlowestFileSeconds: float64(run.SlowestMs) / 1000,
		TotalOutputBytes:   run.TotalBytes,
		AverageOutputBytes: run.AvgBytes,
	}
	for _, record := range records {
		report.Records = append(report.Records, api.BatchRecord{
			FileID:      record.FileID,
			Status:      record.Status,
			TimeSeconds: float64(record.DurationMs) / 1000,
			OutputBytes: record.OutputBytes,
			Degraded:    record.Degraded,
			ErrorKind:   record.ErrorKind,
		})
	}
	return report
}

func MapDomainSummaryToApiReport(summary *domain.BatchSummary) api.BatchReport {
	report := api.BatchReport{
		RunID:              summary.RunID,
		StartedAt:          summary.StartedAt,
		TotalFiles:         summary.TotalFiles,
		Successes:          summary.Successes,
		Failures:           summary.Failures,
		SuccessRatePct:     summary.SuccessRate,
		TotalTimeSeconds:   summary.TotalTime.Seconds(),
		AverageTimeSeconds: summary.AverageTime.Seconds(),
		FastestFileSeconds: summary.FastestFile.Seconds(),
		SlowestFileSeconds: summary.SlowestFile.Seconds(),
		TotalOutputBytes:   summary.TotalBytes,
		AverageOutputBytes: summary.AverageBytes,
	}
	for _, record := range summary.Records {
		report.Records = append(report.Records, api.BatchRecord{
			FileID:      record.FileID,
			Status:      string(record.Status),
			TimeSeconds: record.Duration.Seconds(),
			OutputBytes: record.OutputBytes,
			Degraded:    record.Degraded,
			ErrorKind:   record.ErrorKind,
		})
	}
	return report
}
