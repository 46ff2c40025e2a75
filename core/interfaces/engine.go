// ABOUTME: Search engine interfaces consumed by the retrieval client and index setup
// ABOUTME: Engines are black boxes returning score-ordered hits for a structured request

package interfaces

import (
	"context"

	"catalog-suggest/core/domain"
)

// SearchEngine runs a structured query against a full-text index.
// Implementations must return hits in their own score order; callers never re-sort.
type SearchEngine interface {
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
}

// IndexAdmin provisions and populates an index at setup time.
type IndexAdmin interface {
	// Ping reports whether the engine is reachable.
	Ping(ctx context.Context) error

	// CreateIndex creates the index with its autocomplete mapping.
	// An index that already exists is not an error.
	CreateIndex(ctx context.Context, index string) error

	// BulkIndex adds records to the index and returns how many were accepted.
	// Records the engine rejects individually reduce the count without an
	// error; an error means the batch as a whole failed.
	BulkIndex(ctx context.Context, index string, records []domain.CatalogRecord) (int, error)

	// Refresh makes indexed records visible to search.
	Refresh(ctx context.Context, index string) error
}

// Searcher is the retrieval client contract used by the evaluation runner and API.
// An empty result means "no results or error"; the two are not distinguished.
type Searcher interface {
	Search(ctx context.Context, prefix string, topK int) []domain.Candidate
}
