package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content hashes.
// The version suffix allows the encoding to change without collisions.
const (
	DomainTable = "lexc/table/v1"
	DomainEntry = "lexc/entry/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// TableHash computes the content hash of a compiled table.
// Two compilations of the same definitions produce the same hash.
func TableHash(t *Table) (string, error) {
	canonical, err := MarshalTable(t)
	if err != nil {
		return "", fmt.Errorf("TableHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTable, canonical), nil
}

// EntryHash computes the content hash of a single entry.
func EntryHash(e *Entry) (string, error) {
	canonical, err := MarshalCanonical(e.Value())
	if err != nil {
		return "", fmt.Errorf("EntryHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainEntry, canonical), nil
}
