package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const batchRunsSchema = `
	CREATE TABLE IF NOT EXISTS batch_runs (
		id TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		total_files INTEGER NOT NULL,
		successes INTEGER NOT NULL,
		failures INTEGER NOT NULL,
		success_rate REAL NOT NULL,
		total_time_ms INTEGER NOT NULL,
		avg_time_ms INTEGER NOT NULL,
		fastest_ms INTEGER NOT NULL,
		slowest_ms INTEGER NOT NULL,
		total_bytes INTEGER NOT NULL,
		avg_bytes INTEGER NOT NULL
	);
`

const batchRecordsSchema = `
	CREATE TABLE IF NOT EXISTS batch_records (
		run_id TEXT NOT NULL,
		file_id TEXT NOT NULL,
		status TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		output_bytes INTEGER NOT NULL,
		degraded INTEGER NOT NULL DEFAULT 0,
		error_kind TEXT,
		PRIMARY KEY (run_id, file_id)
	);
`

var bootQueries = []string{
	batchRunsSchema,
	batchRecordsSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	db, err := sql.Open("sqlite", settings.DbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, query := range bootQueries {
		if _, err := db.Exec(query); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run boot query: %w", err)
		}
	}
	return db, nil
}
