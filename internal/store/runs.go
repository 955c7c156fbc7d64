package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("store: run not found")

// Run is a stored conformance run.
type Run struct {
	ID       string
	Scenario string
	Passed   bool
	// Seq is assigned by WriteRun.
	Seq    int64
	Probes []ProbeRecord
}

// ProbeRecord is one probe's stored observation.
type ProbeRecord struct {
	Name     string
	Source   string
	TypeName string
	TypeOf   bool
	Exact    bool
	Downcast bool
	Passed   bool
}

// WriteRun inserts a run and its probes in one transaction and returns the
// assigned seq. Duplicate run IDs are rejected.
func (s *Store) WriteRun(ctx context.Context, run Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: next seq: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, scenario, passed, seq) VALUES (?, ?, ?, ?)`,
		run.ID, run.Scenario, run.Passed, seq,
	); err != nil {
		return 0, fmt.Errorf("write run %s: %w", run.ID, err)
	}

	for i, p := range run.Probes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO probes (run_id, ord, name, source, type_name, type_of, exact, downcast, passed)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, i, p.Name, p.Source, p.TypeName, p.TypeOf, p.Exact, p.Downcast, p.Passed); err != nil {
			return 0, fmt.Errorf("write probe %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, nil
}

// ReadRun returns a run with its probes, or ErrNotFound.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	run := Run{ID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT scenario, passed, seq FROM runs WHERE id = ?`, id,
	).Scan(&run.Scenario, &run.Passed, &run.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, source, type_name, type_of, exact, downcast, passed
		FROM probes
		WHERE run_id = ?
		ORDER BY ord ASC
	`, id)
	if err != nil {
		return Run{}, fmt.Errorf("query probes: %w", err)
	}
	defer rows.Close()

	run.Probes = []ProbeRecord{}
	for rows.Next() {
		var p ProbeRecord
		if err := rows.Scan(&p.Name, &p.Source, &p.TypeName, &p.TypeOf, &p.Exact, &p.Downcast, &p.Passed); err != nil {
			return Run{}, fmt.Errorf("scan probe: %w", err)
		}
		run.Probes = append(run.Probes, p)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("iterate probes: %w", err)
	}
	return run, nil
}

// ListRuns returns all runs without probes, ordered by seq.
// An empty scenario lists every scenario.
func (s *Store) ListRuns(ctx context.Context, scenario string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scenario, passed, seq
		FROM runs
		WHERE ? = '' OR scenario = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, scenario, scenario)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Scenario, &r.Passed, &r.Seq); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
