// ABOUTME: Retrieval client rewrites prefixes and queries the search engine for candidates
// ABOUTME: Engine failures degrade to an empty result; engine order is preserved verbatim

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"catalog-suggest/core/domain"
	"catalog-suggest/core/interfaces"
	"catalog-suggest/core/rewrite"
)

const cacheKeyPrefix = "search:v1"

// Options configures the retrieval client.
type Options struct {
	// Index is the engine index to query
	Index string

	// Timeout bounds a single engine round trip; zero means no extra deadline
	Timeout time.Duration

	// CacheTTL is how long successful results stay cached
	CacheTTL time.Duration

	// CacheEnabled turns result caching on when a cache is configured
	CacheEnabled bool
}

// SearchService is the retrieval client.
type SearchService struct {
	deps     interfaces.Dependencies
	rewriter *rewrite.Rewriter
	opts     Options
}

// NewSearchService creates a new retrieval client
func NewSearchService(deps interfaces.Dependencies, rewriter *rewrite.Rewriter, opts Options) *SearchService {
	if rewriter == nil {
		rewriter = rewrite.NewRewriter(rewrite.DefaultTable(), deps.Logger)
	}
	return &SearchService{
		deps:     deps,
		rewriter: rewriter,
		opts:     opts,
	}
}

// Search rewrites prefix and returns at most topK candidates in engine order.
// Any failure is logged and yields an empty slice, so an empty result means
// "no results or error".
func (s *SearchService) Search(ctx context.Context, prefix string, topK int) []domain.Candidate {
	return s.SearchNormalized(ctx, s.Normalize(prefix), topK)
}

// SearchNormalized is Search for a prefix the caller already rewrote with
// Normalize.
func (s *SearchService) SearchNormalized(ctx context.Context, normalized string, topK int) []domain.Candidate {
	if topK <= 0 {
		return []domain.Candidate{}
	}

	candidates, err := s.search(ctx, normalized, topK)
	if err != nil {
		s.logError("Search failed", map[string]interface{}{
			"normalized": normalized,
			"error":      err.Error(),
		})
		return []domain.Candidate{}
	}

	s.logDebug("Search completed", map[string]interface{}{
		"normalized": normalized,
		"hits":       len(candidates),
	})
	return candidates
}

// Normalize exposes the rewrite applied before searching.
func (s *SearchService) Normalize(prefix string) string {
	return s.rewriter.Rewrite(prefix)
}

func (s *SearchService) search(ctx context.Context, normalized string, topK int) ([]domain.Candidate, error) {
	cacheKey := fmt.Sprintf("%s:%s:%d:%s", cacheKeyPrefix, s.opts.Index, topK, normalized)
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	if s.deps.Engine == nil {
		return nil, errors.New("search engine not configured")
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	resp, err := s.deps.Engine.Search(ctx, BuildRequest(s.opts.Index, normalized, topK))
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New("search engine returned no response")
	}

	n := len(resp.Hits)
	if n > topK {
		n = topK
	}
	candidates := make([]domain.Candidate, 0, n)
	for _, hit := range resp.Hits[:n] {
		candidates = append(candidates, domain.CandidateFromRecord(hit.Record, hit.Score))
	}

	s.toCache(ctx, cacheKey, candidates)
	return candidates, nil
}

func (s *SearchService) cacheActive() bool {
	return s.opts.CacheEnabled && s.deps.Cache != nil
}

func (s *SearchService) fromCache(ctx context.Context, key string) ([]domain.Candidate, bool) {
	if !s.cacheActive() {
		return nil, false
	}
	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, false
	}
	var candidates []domain.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, false
	}
	return candidates, true
}

func (s *SearchService) toCache(ctx context.Context, key string, candidates []domain.Candidate) {
	if !s.cacheActive() {
		return
	}
	data, err := json.Marshal(candidates)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, key, data, s.opts.CacheTTL); err != nil {
		s.logDebug("Failed to cache search results", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (s *SearchService) logDebug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}

func (s *SearchService) logError(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Error(msg, fields)
	}
}
