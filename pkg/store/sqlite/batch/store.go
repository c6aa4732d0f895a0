// Package batch persists batch run summaries and per-file records.
package batch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/bill-forge/pkg/models/store"
)

// ErrRunNotFound distinguishes a missing run from a query failure.
var ErrRunNotFound = errors.New("batch run not found")

type Store interface {
	SaveRun(ctx context.Context, run store.BatchRun, records []store.BatchRecord) error
	GetRuns(ctx context.Context) ([]store.BatchRun, error)
	GetRun(ctx context.Context, runID string) (*store.BatchRun, error)
	GetRecords(ctx context.Context, runID string) ([]store.BatchRecord, error)
}

type batchStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &batchStore{db: db}, nil
}

func (s *batchStore) SaveRun(ctx context.Context, run store.BatchRun, records []store.BatchRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO batch_runs (
			id, started_at, total_files, successes, failures, success_rate,
			total_time_ms, avg_time_ms, fastest_ms, slowest_ms, total_bytes, avg_bytes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt, run.TotalFiles, run.Successes, run.Failures, run.SuccessRate,
		run.TotalTimeMs, run.AvgTimeMs, run.FastestMs, run.SlowestMs, run.TotalBytes, run.AvgBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert batch run: %w", err)
	}

	for _, record := range records {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO batch_records (
				run_id, file_id, status, duration_ms, output_bytes, degraded, error_kind
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			record.RunID, record.FileID, record.Status, record.DurationMs,
			record.OutputBytes, record.Degraded, record.ErrorKind,
		)
		if err != nil {
			return fmt.Errorf("failed to insert batch record for %s: %w", record.FileID, err)
		}
	}
	return tx.Commit()
}

func (s *batchStore) GetRuns(ctx context.Context) ([]store.BatchRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, total_files, successes, failures, success_rate,
			total_time_ms, avg_time_ms, fastest_ms, slowest_ms, total_bytes, avg_bytes
		FROM batch_runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query batch runs: %w", err)
	}
	defer rows.Close()

	var runs []store.BatchRun
	for rows.Next() {
		var run store.BatchRun
		err := rows.Scan(
			&run.ID, &run.StartedAt, &run.TotalFiles, &run.Successes, &run.Failures,
			&run.SuccessRate, &run.TotalTimeMs, &run.AvgTimeMs, &run.FastestMs,
			&run.SlowestMs, &run.TotalBytes, &run.AvgBytes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *batchStore) GetRun(ctx context.Context, runID string) (*store.BatchRun, error) {
	var run store.BatchRun
	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, total_files, successes, failures, success_rate,
			total_time_ms, avg_time_ms, fastest_ms, slowest_ms, total_bytes, avg_bytes
		FROM batch_runs WHERE id = ?`, runID).Scan(
		&run.ID, &run.StartedAt, &run.TotalFiles, &run.Successes, &run.Failures,
		&run.SuccessRate, &run.TotalTimeMs, &run.AvgTimeMs, &run.FastestMs,
		&run.SlowestMs, &run.TotalBytes, &run.AvgBytes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query batch run: %w", err)
	}
	return &run, nil
}

func (s *batchStore) GetRecords(ctx context.Context, runID string) ([]store.BatchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, file_id, status, duration_ms, output_bytes, degraded, COALESCE(error_kind, '')
		FROM batch_records WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query batch records: %w", err)
	}
	defer rows.Close()

	var records []store.BatchRecord
	for rows.Next() {
		var record store.BatchRecord
		err := rows.Scan(
			&record.RunID, &record.FileID, &record.Status, &record.DurationMs,
			&record.OutputBytes, &record.Degraded, &record.ErrorKind,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
