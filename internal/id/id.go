// Package id formats and parses journal entry identifiers.
// Entries are numbered per month: "2025-01-003" is the third entry posted
// in January 2025. Each line of an entry carries a letter suffix: the debit
// and credit lines of that entry are "2025-01-003a", "2025-01-003b", etc.
package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatEntryID returns an entry ID like "2025-01-001".
func FormatEntryID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// FormatLineID returns a line ID like "2025-01-001a" (line 0='a', 1='b', ...).
func FormatLineID(entryID string, line int) string {
	return entryID + string(rune('a'+line))
}

// ParseEntryID parses an entry or line ID into year, month, seq.
func ParseEntryID(id string) (year, month, seq int, err error) {
	base := EntryGroup(id)

	parts := strings.SplitN(base, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid entry ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in entry ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in entry ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in entry ID %q: %w", id, err)
	}

	return year, month, seq, nil
}

// EntryGroup strips the line suffix from a line ID.
// "2025-01-001a" -> "2025-01-001"
func EntryGroup(lineID string) string {
	if len(lineID) == 0 {
		return ""
	}
	i := len(lineID)
	for i > 0 && lineID[i-1] >= 'a' && lineID[i-1] <= 'z' {
		i--
	}
	return lineID[:i]
}
