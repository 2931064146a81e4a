// Package store provides SQLite-backed history of compilation runs.
//
// Every recorded run keeps:
//   - Runs: one row per compilation (table hash, counts, versions)
//   - Run entries: the compiled key → form mapping of that run
//   - Diagnostics: the run's diagnostics stream, in stream order
//
// # Ordering
//
// Runs are ordered by seq, a logical counter assigned by the store, never by
// wall-clock time. Reads order by seq ASC, id ASC COLLATE BINARY, so the
// same database always lists runs the same way.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Entry hashes come from internal/ir and use RFC 8785 canonical JSON and
// SHA-256 with domain separation, so a diff can compare entries by hash.
package store
