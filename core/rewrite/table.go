// ABOUTME: Ordered correction table and the substring rewrite algorithm it drives
// ABOUTME: Iteration order is part of the contract: later entries see earlier replacements

package rewrite

import (
	"fmt"
	"strings"

	"catalog-suggest/core/domain"
	"catalog-suggest/core/errors"
)

// Table is an immutable, ordered list of corrections.
// It is safe for concurrent use.
type Table struct {
	entries []domain.CorrectionEntry
	exact   map[string]string
}

// NewTable builds a table from entries in the given order.
// Patterns must be non-empty and unique.
func NewTable(entries []domain.CorrectionEntry) (*Table, error) {
	t := &Table{
		entries: make([]domain.CorrectionEntry, 0, len(entries)),
		exact:   make(map[string]string, len(entries)),
	}

	for i, e := range entries {
		if e.Pattern == "" {
			return nil, &errors.ValidationError{
				Field:   "pattern",
				Message: fmt.Sprintf("entry %d has an empty pattern", i),
			}
		}
		if _, dup := t.exact[e.Pattern]; dup {
			return nil, &errors.ValidationError{
				Field:   "pattern",
				Message: fmt.Sprintf("duplicate pattern %q", e.Pattern),
			}
		}
		t.exact[e.Pattern] = e.Replacement
		t.entries = append(t.entries, e)
	}

	return t, nil
}

// MustNewTable is like NewTable but panics on invalid entries.
func MustNewTable(entries []domain.CorrectionEntry) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Entries returns a copy of the entries in iteration order.
func (t *Table) Entries() []domain.CorrectionEntry {
	out := make([]domain.CorrectionEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Rewrite normalizes a raw query.
//
// The query is lowercased. If the whole lowercased query is a pattern, its
// replacement is returned as is. Otherwise every pattern is replaced, in table
// order, everywhere it occurs in the accumulated string. Patterns match inside
// longer words and replacements can feed later patterns.
func (t *Table) Rewrite(query string) string {
	lowered := strings.ToLower(query)

	if replacement, ok := t.exact[lowered]; ok {
		return replacement
	}

	out := lowered
	for _, e := range t.entries {
		out = strings.ReplaceAll(out, e.Pattern, e.Replacement)
	}
	return out
}
