package rewrite

import (
	"strings"

	"catalog-suggest/core/interfaces"
)

// Rewriter applies a correction table and reports applied corrections.
type Rewriter struct {
	table  *Table
	logger interfaces.Logger
}

// NewRewriter creates a rewriter over table. A nil table rewrites with no
// corrections, which still lowercases the query. logger may be nil.
func NewRewriter(table *Table, logger interfaces.Logger) *Rewriter {
	if table == nil {
		table = MustNewTable(nil)
	}
	return &Rewriter{table: table, logger: logger}
}

// Rewrite returns the normalized form of query.
func (r *Rewriter) Rewrite(query string) string {
	out := r.table.Rewrite(query)
	if r.logger != nil && out != strings.ToLower(query) {
		r.logger.Info("Query corrected", map[string]interface{}{
			"query":      query,
			"normalized": out,
		})
	}
	return out
}

// Table returns the underlying correction table.
func (r *Rewriter) Table() *Table {
	return r.table
}
