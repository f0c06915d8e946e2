// Package store persists suite-run history in SQLite.
//
// The CLI writes one row per run plus one per case result, so regressions
// can be compared across invocations. Tests open :memory: databases for
// isolation.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hagness/depwarn/internal/harness"
)

//go:embed schema.sql
var schemaSQL string

// startedAtLayout pads fractional seconds to a fixed width so the TEXT
// ORDER BY in RecentRuns sorts chronologically. RFC3339Nano trims trailing
// zeros, which breaks lexicographic ordering within a second.
const startedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store provides durable storage for suite runs.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path and applies
// pragmas and the schema. Idempotent; pass ":memory:" for an ephemeral
// database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// RunSummary is one row of run history.
type RunSummary struct {
	ID        string
	Suite     string
	StartedAt time.Time
	Total     int
	Passed    int
	Failed    int
	Errored   int
}

// SaveRun writes a suite result and all its case results in one
// transaction.
func (s *Store) SaveRun(ctx context.Context, result *harness.SuiteResult, startedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, suite, started_at, total, passed, failed, errored)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.RunID, result.Suite, startedAt.UTC().Format(startedAtLayout),
		result.Total(), result.Passed, result.Failed, result.Errored,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", result.RunID, err)
	}

	for _, cr := range result.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO case_results (run_id, name, target, outcome, expected, actual, seq)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			result.RunID, cr.Name, cr.Target, string(cr.Outcome), cr.Expected, cr.Actual, cr.Seq,
		)
		if err != nil {
			return fmt.Errorf("insert case %s/%s: %w", result.RunID, cr.Name, err)
		}
	}

	return tx.Commit()
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, suite, started_at, total, passed, failed, errored
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var started string
		if err := rows.Scan(&r.ID, &r.Suite, &started, &r.Total, &r.Passed, &r.Failed, &r.Errored); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, err = time.Parse(startedAtLayout, started)
		if err != nil {
			return nil, fmt.Errorf("parse started_at %q: %w", started, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RunCases returns the case results of one run in execution order.
func (s *Store) RunCases(ctx context.Context, runID string) ([]harness.CaseResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, target, outcome, expected, actual, seq
		 FROM case_results WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query cases for run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []harness.CaseResult
	for rows.Next() {
		var cr harness.CaseResult
		var outcome string
		if err := rows.Scan(&cr.Name, &cr.Target, &outcome, &cr.Expected, &cr.Actual, &cr.Seq); err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		cr.Outcome = harness.Outcome(outcome)
		out = append(out, cr)
	}
	return out, rows.Err()
}
