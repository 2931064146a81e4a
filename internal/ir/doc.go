// Package ir provides the lexicon data model shared by every compiler stage.
//
// This package contains type definitions and canonical encoding only. All
// other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Entries are addressed by string key, never by pointer between entries
//   - Component references are plain keys resolved through a Table
//   - Table iteration is insertion order; nothing depends on map order
//   - All JSON tags use snake_case
package ir
