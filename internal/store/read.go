package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/roach88/lexc/internal/ir"
)

// EntryRow is one compiled entry as recorded for a run.
type EntryRow struct {
	Key       string       `json:"key"`
	Kind      ir.Formation `json:"kind"`
	Form      string       `json:"form"`
	EntryHash string       `json:"entry_hash"`
}

var runColumns = []string{
	"id", "seq", "specs_dir", "table_hash", "table_version", "compiler_version",
	"entry_count", "error_count", "warning_count", "passes",
}

// selectRuns is the base query for every run read.
func selectRuns() squirrel.SelectBuilder {
	return squirrel.Select(runColumns...).From("runs")
}

// ReadRuns returns every recorded run, oldest first.
// Results are ordered by seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ReadRuns(ctx context.Context) ([]Run, error) {
	return s.queryRuns(ctx, selectRuns().OrderBy("seq ASC", "id COLLATE BINARY ASC"))
}

// ReadRun retrieves a single run by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	return s.queryRun(ctx, selectRuns().Where(squirrel.Eq{"id": id}))
}

// LatestRun returns the run with the highest seq.
// Returns sql.ErrNoRows if the store is empty.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	return s.queryRun(ctx, selectRuns().OrderBy("seq DESC").Limit(1))
}

// FindRunByHash returns the earliest run that produced tableHash.
// Returns sql.ErrNoRows if no run did.
func (s *Store) FindRunByHash(ctx context.Context, tableHash string) (Run, error) {
	return s.queryRun(ctx, selectRuns().
		Where(squirrel.Eq{"table_hash": tableHash}).
		OrderBy("seq ASC").
		Limit(1))
}

func (s *Store) queryRun(ctx context.Context, q squirrel.SelectBuilder) (Run, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return Run{}, fmt.Errorf("build run query: %w", err)
	}
	return scanRun(s.db.QueryRowContext(ctx, query, args...))
}

func (s *Store) queryRuns(ctx context.Context, q squirrel.SelectBuilder) ([]Run, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build runs query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	err := row.Scan(&run.ID, &run.Seq, &run.SpecsDir, &run.TableHash, &run.TableVersion,
		&run.CompilerVersion, &run.Entries, &run.Errors, &run.Warnings, &run.Passes)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	return run, nil
}

// ReadEntries returns the entries recorded for a run, in table order.
//
// Returns an empty slice (not nil) if the run has no entries.
func (s *Store) ReadEntries(ctx context.Context, runID string) ([]EntryRow, error) {
	query, args, err := squirrel.Select("key", "kind", "form", "entry_hash").
		From("run_entries").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("idx ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build entries query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []EntryRow{}
	for rows.Next() {
		var e EntryRow
		var kind string
		if err := rows.Scan(&e.Key, &kind, &e.Form, &e.EntryHash); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Kind = ir.Formation(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// ReadDiagnostics returns a run's diagnostics stream in its original order.
//
// Returns an empty stream (not nil) if the run had no diagnostics.
func (s *Store) ReadDiagnostics(ctx context.Context, runID string) (ir.Diagnostics, error) {
	query, args, err := squirrel.Select("code", "severity", "key", "rule", "form", "refs", "message").
		From("diagnostics").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("idx ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build diagnostics query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query diagnostics: %w", err)
	}
	defer rows.Close()

	diags := ir.Diagnostics{}
	for rows.Next() {
		var d ir.Diagnostic
		var severity, refs string
		if err := rows.Scan(&d.Code, &severity, &d.Key, &d.Rule, &d.Form, &refs, &d.Message); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		d.Severity = ir.Severity(severity)
		if err := json.Unmarshal([]byte(refs), &d.Refs); err != nil {
			return nil, fmt.Errorf("unmarshal diagnostic refs: %w", err)
		}
		if len(d.Refs) == 0 {
			d.Refs = nil
		}
		diags = append(diags, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diagnostics: %w", err)
	}
	return diags, nil
}
