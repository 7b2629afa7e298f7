// Package storage persists analysis run summaries so past grades can be
// compared over time. The core pipeline never reads this store; it is
// an outer-boundary convenience only.
package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"trustdebt/internal/analyzer"
	"trustdebt/internal/errors"
	"trustdebt/internal/logging"
)

// RunSummary is one persisted analysis run.
type RunSummary struct {
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`
	TotalDebt   float64   `json:"totalDebt"`
	FinalDebt   float64   `json:"finalDebt"`
	Grade       string    `json:"grade"`
	Warnings    int       `json:"warnings"`
}

// History is the run-history database at .trustdebt/trustdebt.db.
type History struct {
	conn   *sql.DB
	logger *logging.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id       TEXT PRIMARY KEY,
	generated_at TEXT NOT NULL,
	total_debt   REAL NOT NULL,
	final_debt   REAL NOT NULL,
	grade        TEXT NOT NULL,
	warnings     INTEGER NOT NULL,
	report       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_generated_at ON runs(generated_at DESC);
`

// Open opens or creates the history database under repoRoot.
func Open(repoRoot string, logger *logging.Logger) (*History, error) {
	dir := filepath.Join(repoRoot, ".trustdebt")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New(errors.StorageError, "Failed to create .trustdebt directory", err)
	}

	conn, err := sql.Open("sqlite", filepath.Join(dir, "trustdebt.db"))
	if err != nil {
		return nil, errors.New(errors.StorageError, "Failed to open history database", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, errors.New(errors.StorageError, "Failed to set pragma", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, errors.New(errors.StorageError, "Failed to initialize schema", err)
	}

	return &History{conn: conn, logger: logger}, nil
}

// Close closes the database connection.
func (h *History) Close() error {
	if h.conn != nil {
		return h.conn.Close()
	}
	return nil
}

// SaveRun persists a completed report, summary columns plus the full
// JSON document for later export.
func (h *History) SaveRun(report *analyzer.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return errors.New(errors.StorageError, "Failed to encode report", err)
	}

	_, err = h.conn.Exec(
		`INSERT INTO runs (run_id, generated_at, total_debt, final_debt, grade, warnings, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.GeneratedAt.UTC().Format(time.RFC3339Nano),
		report.TotalDebt,
		report.FinalDebt,
		report.Grade,
		len(report.Warnings),
		string(data),
	)
	if err != nil {
		return errors.New(errors.StorageError, "Failed to persist run", err)
	}

	h.logger.Debug("Persisted analysis run", map[string]interface{}{
		"runId": report.RunID,
		"grade": report.Grade,
	})
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (h *History) ListRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := h.conn.Query(
		`SELECT run_id, generated_at, total_debt, final_debt, grade, warnings
		 FROM runs ORDER BY generated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.New(errors.StorageError, "Failed to query runs", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary
		var generated string
		if err := rows.Scan(&s.RunID, &generated, &s.TotalDebt, &s.FinalDebt, &s.Grade, &s.Warnings); err != nil {
			return nil, errors.New(errors.StorageError, "Failed to scan run row", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, generated); err == nil {
			s.GeneratedAt = ts
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New(errors.StorageError, "Failed to iterate runs", err)
	}

	return summaries, nil
}

// LatestReport returns the full report of the most recent run, or nil
// when the history is empty.
func (h *History) LatestReport() (*analyzer.Report, error) {
	var data string
	err := h.conn.QueryRow(
		`SELECT report FROM runs ORDER BY generated_at DESC LIMIT 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New(errors.StorageError, "Failed to load latest report", err)
	}

	var report analyzer.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, errors.New(errors.StorageError, "Stored report is corrupt", err)
	}
	return &report, nil
}
