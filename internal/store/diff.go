package store

import (
	"context"
	"fmt"
)

// FormChange is an entry present in both runs with different content.
type FormChange struct {
	Key    string `json:"key"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// RunDiff compares the tables of two runs.
type RunDiff struct {
	From    string       `json:"from"`
	To      string       `json:"to"`
	Added   []EntryRow   `json:"added"`
	Removed []EntryRow   `json:"removed"`
	Changed []FormChange `json:"changed"`
}

// Empty reports whether the two runs produced the same entries.
func (d *RunDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// DiffRuns compares the entries recorded for two runs.
//
// Entries are matched by key and compared by entry hash, so a gloss edit
// counts as a change even when the form is the same. Added and Changed
// follow the table order of the later run; Removed follows the earlier one.
func (s *Store) DiffRuns(ctx context.Context, fromID, toID string) (*RunDiff, error) {
	from, err := s.ReadEntries(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("diff runs: %w", err)
	}
	to, err := s.ReadEntries(ctx, toID)
	if err != nil {
		return nil, fmt.Errorf("diff runs: %w", err)
	}

	diff := &RunDiff{
		From:    fromID,
		To:      toID,
		Added:   []EntryRow{},
		Removed: []EntryRow{},
		Changed: []FormChange{},
	}

	before := make(map[string]EntryRow, len(from))
	for _, e := range from {
		before[e.Key] = e
	}
	after := make(map[string]bool, len(to))

	for _, e := range to {
		after[e.Key] = true
		old, ok := before[e.Key]
		switch {
		case !ok:
			diff.Added = append(diff.Added, e)
		case old.EntryHash != e.EntryHash:
			diff.Changed = append(diff.Changed, FormChange{Key: e.Key, Before: old.Form, After: e.Form})
		}
	}
	for _, e := range from {
		if !after[e.Key] {
			diff.Removed = append(diff.Removed, e)
		}
	}

	return diff, nil
}
