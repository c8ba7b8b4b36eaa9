// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists extraction runs in SQLite: one row per run with its
// summary counts, and per run the feature record and grade of every case.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/casegrade/pkg/types"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrRunNotFound is returned when no run matches the requested ID.
var ErrRunNotFound = errors.New("run not found")

// Store manages the run database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and creates the schema if it
// does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			input TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			status TEXT NOT NULL,
			records INTEGER NOT NULL DEFAULT 0,
			fallbacks INTEGER NOT NULL DEFAULT 0,
			degraded INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS cases (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			case_id TEXT,
			medications INTEGER NOT NULL,
			procedures INTEGER NOT NULL,
			pain INTEGER NOT NULL,
			diagnoses INTEGER NOT NULL,
			stabilization INTEGER NOT NULL,
			improvement INTEGER NOT NULL,
			documentation INTEGER NOT NULL,
			collaboration INTEGER NOT NULL,
			sentiment INTEGER NOT NULL,
			age INTEGER NOT NULL,
			gender TEXT NOT NULL,
			grade TEXT,
			PRIMARY KEY (run_id, idx)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// SaveRun stores run and one case row per feature record. records supplies
// case identifiers and may be nil; otherwise it must be parallel to
// features.
func (s *Store) SaveRun(ctx context.Context, run types.Run, records []types.CaseRecord, features []types.FeatureRecord) error {
	if records != nil && len(records) != len(features) {
		return fmt.Errorf("have %d case records for %d feature records", len(records), len(features))
	}
	if run.ID == "" {
		run.ID = NewRunID()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, input, started_at, finished_at, status, records, fallbacks, degraded)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Input, formatTime(run.StartedAt), formatTime(run.FinishedAt),
		string(run.Status), run.Records, run.Fallbacks, run.Degraded,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cases (run_id, idx, case_id, medications, procedures, pain, diagnoses,
			stabilization, improvement, documentation, collaboration, sentiment, age, gender)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range features {
		var caseID string
		if records != nil {
			caseID = records[i].ID
		}
		_, err := stmt.ExecContext(ctx,
			run.ID, i, caseID, f.Medications, f.Procedures, f.Pain, f.Diagnoses,
			f.Stabilization, f.Improvement, f.Documentation, f.Collaboration, f.Sentiment,
			f.Age, string(f.Gender),
		)
		if err != nil {
			return fmt.Errorf("inserting case %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// SaveGrades records one grade per stored case of runID, in index order,
// and marks the run graded.
func (s *Store) SaveGrades(ctx context.Context, runID string, grades []types.Grade) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM cases WHERE run_id = ?`, runID).Scan(&n); err != nil {
		return fmt.Errorf("counting cases: %w", err)
	}
	if n != len(grades) {
		return fmt.Errorf("run %s has %d cases, got %d grades", runID, n, len(grades))
	}

	stmt, err := tx.PrepareContext(ctx, `UPDATE cases SET grade = ? WHERE run_id = ? AND idx = ?`)
	if err != nil {
		return fmt.Errorf("preparing update: %w", err)
	}
	defer stmt.Close()

	for i, g := range grades {
		if _, err := stmt.ExecContext(ctx, string(g), runID, i); err != nil {
			return fmt.Errorf("updating grade %d: %w", i, err)
		}
	}

	res, err := tx.ExecContext(ctx, `UPDATE runs SET status = ? WHERE id = ?`, string(types.RunGraded), runID)
	if err != nil {
		return fmt.Errorf("updating run status: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	return tx.Commit()
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]types.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, started_at, finished_at, status, records, fallbacks, degraded
		 FROM runs ORDER BY started_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns the run whose ID equals or uniquely starts with id.
func (s *Store) GetRun(ctx context.Context, id string) (types.Run, error) {
	if id == "" {
		return types.Run{}, ErrRunNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, started_at, finished_at, status, records, fallbacks, degraded
		 FROM runs WHERE id = ? OR substr(id, 1, length(?)) = ? LIMIT 2`, id, id, id)
	if err != nil {
		return types.Run{}, fmt.Errorf("querying run: %w", err)
	}
	defer rows.Close()

	var found []types.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return types.Run{}, err
		}
		if run.ID == id {
			return run, nil
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return types.Run{}, err
	}

	switch len(found) {
	case 0:
		return types.Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return found[0], nil
	default:
		return types.Run{}, fmt.Errorf("run prefix %q is ambiguous", id)
	}
}

// LatestRun returns the most recently started run.
func (s *Store) LatestRun(ctx context.Context) (types.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, input, started_at, finished_at, status, records, fallbacks, degraded
		 FROM runs ORDER BY started_at DESC LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Run{}, ErrRunNotFound
	}
	return run, err
}

// Cases returns the stored cases of runID in index order.
func (s *Store) Cases(ctx context.Context, runID string) ([]types.RunRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, case_id, medications, procedures, pain, diagnoses, stabilization,
			improvement, documentation, collaboration, sentiment, age, gender, grade
		 FROM cases WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying cases: %w", err)
	}
	defer rows.Close()

	var out []types.RunRow
	for rows.Next() {
		var (
			r             types.RunRow
			caseID, grade sql.NullString
			gender        string
		)
		f := &r.Features
		if err := rows.Scan(&r.Index, &caseID, &f.Medications, &f.Procedures, &f.Pain, &f.Diagnoses,
			&f.Stabilization, &f.Improvement, &f.Documentation, &f.Collaboration, &f.Sentiment,
			&f.Age, &gender, &grade); err != nil {
			return nil, fmt.Errorf("scanning case: %w", err)
		}
		r.CaseID = caseID.String
		f.Gender = types.ParseGender(gender)
		r.Grade = types.Grade(grade.String)
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (types.Run, error) {
	var (
		run               types.Run
		started, finished sql.NullString
		status            string
	)
	if err := sc.Scan(&run.ID, &run.Input, &started, &finished, &status,
		&run.Records, &run.Fallbacks, &run.Degraded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Run{}, err
		}
		return types.Run{}, fmt.Errorf("scanning run: %w", err)
	}
	run.Status = types.RunStatus(status)
	run.StartedAt = parseTime(started.String)
	run.FinishedAt = parseTime(finished.String)
	return run, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
