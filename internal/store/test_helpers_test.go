package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/roach88/lexc/internal/ir"
	"github.com/roach88/lexc/internal/testutil"
)

// createTestStore creates a new store in a temp dir with predictable run IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequentialIDGenerator("run")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestTable builds a resolved table from key/form pairs.
func createTestTable(t *testing.T, pairs ...string) *ir.Table {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatalf("createTestTable: odd number of arguments")
	}
	table := ir.NewTable()
	for i := 0; i < len(pairs); i += 2 {
		e := &ir.Entry{Key: pairs[i], Kind: ir.Root, Form: pairs[i+1], Resolved: true}
		if err := table.Add(e); err != nil {
			t.Fatalf("Add(%q) failed: %v", pairs[i], err)
		}
	}
	return table
}

func getTableIndexes(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='index' AND tbl_name=?", table)
	if err != nil {
		t.Fatalf("failed to get indexes for %q: %v", table, err)
	}
	defer rows.Close()

	var indexes []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan index name: %v", err)
		}
		indexes = append(indexes, name)
	}
	return indexes
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
