package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/roach88/lexc/internal/ir"
)

// insertBatch bounds the rows per INSERT statement, keeping the bound
// variable count well under SQLite's limit.
const insertBatch = 100

// Run is one recorded compilation.
type Run struct {
	ID              string `json:"id"`
	Seq             int64  `json:"seq"`
	SpecsDir        string `json:"specs_dir"`
	TableHash       string `json:"table_hash"`
	TableVersion    string `json:"table_version"`
	CompilerVersion string `json:"compiler_version"`
	Entries         int    `json:"entries"`
	Errors          int    `json:"errors"`
	Warnings        int    `json:"warnings"`
	Passes          int    `json:"passes"`
}

// RunInput is what WriteRun records.
type RunInput struct {
	SpecsDir    string
	Table       *ir.Table
	Diagnostics ir.Diagnostics
	Passes      int
}

// WriteRun records a compilation in a single transaction and returns the
// stored run. The run's seq is one past the highest recorded seq.
func (s *Store) WriteRun(ctx context.Context, in RunInput) (Run, error) {
	if in.Table == nil {
		return Run{}, fmt.Errorf("write run: table is required")
	}
	hash, err := ir.TableHash(in.Table)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	run := Run{
		ID:              s.ids.Generate(),
		SpecsDir:        in.SpecsDir,
		TableHash:       hash,
		TableVersion:    ir.TableVersion,
		CompilerVersion: ir.CompilerVersion,
		Entries:         in.Table.Len(),
		Errors:          in.Diagnostics.Count(ir.SeverityError),
		Warnings:        in.Diagnostics.Count(ir.SeverityWarning),
		Passes:          in.Passes,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback()

	run.Seq, err = nextSeq(ctx, tx)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	query, args, err := squirrel.Insert("runs").
		Columns("id", "seq", "specs_dir", "table_hash", "table_version", "compiler_version",
			"entry_count", "error_count", "warning_count", "passes").
		Values(run.ID, run.Seq, run.SpecsDir, run.TableHash, run.TableVersion, run.CompilerVersion,
			run.Entries, run.Errors, run.Warnings, run.Passes).
		ToSql()
	if err != nil {
		return Run{}, fmt.Errorf("write run: build insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	if err := writeEntries(ctx, tx, run.ID, in.Table.Entries()); err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}
	if err := writeDiagnostics(ctx, tx, run.ID, in.Diagnostics); err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: commit: %w", err)
	}
	return run, nil
}

// nextSeq returns the logical clock value for a new run.
func nextSeq(ctx context.Context, tx *sql.Tx) (int64, error) {
	query, args, err := squirrel.Select("COALESCE(MAX(seq), 0) + 1").From("runs").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build seq query: %w", err)
	}
	var seq int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	return seq, nil
}

func writeEntries(ctx context.Context, tx *sql.Tx, runID string, entries []*ir.Entry) error {
	for start := 0; start < len(entries); start += insertBatch {
		end := min(start+insertBatch, len(entries))
		insert := squirrel.Insert("run_entries").
			Columns("run_id", "idx", "key", "kind", "form", "entry_hash")
		for i, e := range entries[start:end] {
			hash, err := ir.EntryHash(e)
			if err != nil {
				return fmt.Errorf("entry %q: %w", e.Key, err)
			}
			insert = insert.Values(runID, start+i, e.Key, string(e.Kind), e.Form, hash)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build entries insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert entries: %w", err)
		}
	}
	return nil
}

func writeDiagnostics(ctx context.Context, tx *sql.Tx, runID string, diags ir.Diagnostics) error {
	for start := 0; start < len(diags); start += insertBatch {
		end := min(start+insertBatch, len(diags))
		insert := squirrel.Insert("diagnostics").
			Columns("run_id", "idx", "code", "severity", "key", "rule", "form", "refs", "message")
		for i, d := range diags[start:end] {
			refs, err := ir.MarshalCanonical(ir.Strings(d.Refs))
			if err != nil {
				return fmt.Errorf("diagnostic %d refs: %w", start+i, err)
			}
			insert = insert.Values(runID, start+i, d.Code, string(d.Severity), d.Key, d.Rule, d.Form, string(refs), d.Message)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build diagnostics insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert diagnostics: %w", err)
		}
	}
	return nil
}
