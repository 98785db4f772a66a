// Copyright (c) 2025, Hydrostack Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hydrostack/ras-compute/pkg/defaults"
	raserrors "github.com/hydrostack/ras-compute/pkg/errors"
	"github.com/hydrostack/ras-compute/pkg/orchestrator"
	"github.com/hydrostack/ras-compute/pkg/result"
)

// PlanResult is a persisted per-plan outcome.
type PlanResult struct {
	Success bool `json:"success" yaml:"success"`
	result.Row
}

// RunRecord is a persisted batch run.
type RunRecord struct {
	ID            string        `json:"id" yaml:"id"`
	Project       string        `json:"project" yaml:"project"`
	StartedAt     time.Time     `json:"started_at" yaml:"started_at"`
	Duration      time.Duration `json:"duration" yaml:"duration"`
	AllSuccessful bool          `json:"all_successful" yaml:"all_successful"`
	Plans         []PlanResult  `json:"plans,omitempty" yaml:"plans,omitempty"`
}

// Store is a SQLite-backed run-history store.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the history database at path and runs
// migrations.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("store: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", defaults.StoreBusyTimeout.Milliseconds()),
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id             TEXT PRIMARY KEY,
			project        TEXT NOT NULL,
			started_at     TEXT NOT NULL,
			duration_ms    INTEGER NOT NULL,
			all_successful INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS plan_results (
			run_id                           TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			plan                             TEXT NOT NULL,
			title                            TEXT,
			success                          INTEGER NOT NULL,
			completed                        INTEGER NOT NULL,
			has_errors                       INTEGER NOT NULL,
			has_warnings                     INTEGER NOT NULL,
			error_count                      INTEGER NOT NULL,
			warning_count                    INTEGER NOT NULL,
			first_error_line                 TEXT,
			runtime_complete_process_seconds REAL,
			runtime_unsteady_compute_seconds REAL,
			runtime_geometry_seconds         REAL,
			runtime_preprocessing_seconds    REAL,
			runtime_event_conditions_seconds REAL,
			complete_process_speed           REAL,
			unsteady_flow_speed              REAL,
			vol_error_percent                REAL,
			PRIMARY KEY (run_id, plan)
		);

		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// Record persists a batch run and its per-plan outcomes in one transaction.
func (s *Store) Record(ctx context.Context, run *orchestrator.Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, project, started_at, duration_ms, all_successful)
		 VALUES (?, ?, ?, ?, ?)`,
		run.ID,
		run.Project,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Duration.Milliseconds(),
		run.Result.AllSuccessful(),
	)
	if err != nil {
		return fmt.Errorf("store: insert run: %w", err)
	}

	table := run.Result.Table()
	for _, plan := range run.Result.Plans() {
		success, _ := run.Result.Get(plan)

		var row result.Row
		if r := table.Get(plan); r != nil {
			row = *r
		} else {
			row = result.Row{Plan: plan}
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO plan_results (
				run_id, plan, title, success, completed, has_errors, has_warnings,
				error_count, warning_count, first_error_line,
				runtime_complete_process_seconds, runtime_unsteady_compute_seconds,
				runtime_geometry_seconds, runtime_preprocessing_seconds,
				runtime_event_conditions_seconds, complete_process_speed,
				unsteady_flow_speed, vol_error_percent
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, plan, row.Title, success, row.Completed, row.HasErrors,
			row.HasWarnings, row.ErrorCount, row.WarningCount, row.FirstErrorLine,
			row.RuntimeCompleteProcess, row.RuntimeUnsteadyCompute,
			row.RuntimeGeometry, row.RuntimePreprocessing,
			row.RuntimeEventConditions, row.CompleteProcessSpeed,
			row.UnsteadyFlowSpeed, row.VolErrorPercent,
		)
		if err != nil {
			return fmt.Errorf("store: insert plan result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first, without per-plan detail.
// A non-positive limit applies the default history limit.
func (s *Store) List(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = defaults.StoreHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project, started_at, duration_ms, all_successful
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	records := make([]RunRecord, 0, limit)
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	return records, nil
}

// Get returns one run with its per-plan outcomes. Returns a NOT_FOUND
// structured error when the run does not exist.
func (s *Store) Get(ctx context.Context, id string) (*RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project, started_at, duration_ms, all_successful
		 FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("store: get run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("store: get run: %w", err)
		}
		return nil, raserrors.NewWithContext(
			raserrors.ErrCodeNotFound,
			"run not found",
			map[string]any{"id": id},
		)
	}

	rec, err := scanRun(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	planRows, err := s.db.QueryContext(ctx,
		`SELECT plan, title, success, completed, has_errors, has_warnings,
			error_count, warning_count, first_error_line,
			runtime_complete_process_seconds, runtime_unsteady_compute_seconds,
			runtime_geometry_seconds, runtime_preprocessing_seconds,
			runtime_event_conditions_seconds, complete_process_speed,
			unsteady_flow_speed, vol_error_percent
		 FROM plan_results WHERE run_id = ? ORDER BY plan`, id)
	if err != nil {
		return nil, fmt.Errorf("store: get plan results: %w", err)
	}
	defer planRows.Close()

	for planRows.Next() {
		var p PlanResult
		var title sql.NullString
		err := planRows.Scan(
			&p.Row.Plan, &title, &p.Success, &p.Row.Completed,
			&p.Row.HasErrors, &p.Row.HasWarnings, &p.Row.ErrorCount,
			&p.Row.WarningCount, &p.Row.FirstErrorLine,
			&p.Row.RuntimeCompleteProcess, &p.Row.RuntimeUnsteadyCompute,
			&p.Row.RuntimeGeometry, &p.Row.RuntimePreprocessing,
			&p.Row.RuntimeEventConditions, &p.Row.CompleteProcessSpeed,
			&p.Row.UnsteadyFlowSpeed, &p.Row.VolErrorPercent,
		)
		if err != nil {
			return nil, fmt.Errorf("store: scan plan result: %w", err)
		}
		p.Row.Title = title.String
		rec.Plans = append(rec.Plans, p)
	}
	if err := planRows.Err(); err != nil {
		return nil, fmt.Errorf("store: get plan results: %w", err)
	}
	return rec, nil
}

func scanRun(rows *sql.Rows) (*RunRecord, error) {
	var rec RunRecord
	var startedAt string
	var durationMs int64
	if err := rows.Scan(&rec.ID, &rec.Project, &startedAt, &durationMs, &rec.AllSuccessful); err != nil {
		return nil, fmt.Errorf("store: scan run: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("store: parse started_at: %w", err)
	}
	rec.StartedAt = t
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	return &rec, nil
}
