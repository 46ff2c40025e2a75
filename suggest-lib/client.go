// ABOUTME: Embeddable client for catalog suggestions without running the HTTP API
// ABOUTME: Loads catalogs, answers prefix queries and evaluates query logs in-process

package suggest

import (
	"context"
	"io"
	"sync"

	"catalog-suggest/core/catalog"
	"catalog-suggest/core/domain"
	"catalog-suggest/core/evaluation"
	"catalog-suggest/core/indexing"
	"catalog-suggest/core/interfaces"
	"catalog-suggest/core/rewrite"
	"catalog-suggest/core/search"
	"catalog-suggest/infrastructure/engine/embedded"
)

// Candidate is a suggestion returned by Suggest.
type Candidate = domain.Candidate

// Client is the library entry point. It is safe for concurrent use.
type Client struct {
	config   Config
	rewriter *rewrite.Rewriter
	searcher *search.SearchService
	indexer  *indexing.Service

	// ownsEngine is set when the client created the engine and must close it
	ownsEngine *embedded.Engine

	mu     sync.RWMutex
	closed bool
}

// NewClient creates a client. Without WithEngine it keeps an in-memory index.
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()
	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}
	if config.Logger == nil {
		config.Logger = quietLogger{}
	}
	if config.Corrections == nil {
		config.Corrections = rewrite.DefaultTable()
	}

	c := &Client{config: config}
	if config.Engine == nil {
		e := embedded.NewEngine("", config.Logger)
		c.ownsEngine = e
		c.config.Engine = e
	}

	c.rewriter = rewrite.NewRewriter(config.Corrections, config.Logger)
	c.searcher = search.NewSearchService(interfaces.Dependencies{
		Cache:  config.Cache,
		Engine: c.config.Engine,
		Logger: config.Logger,
	}, c.rewriter, search.Options{
		Index:        config.Index,
		Timeout:      config.Timeout,
		CacheTTL:     config.CacheTTL,
		CacheEnabled: config.Cache != nil,
	})
	c.indexer = indexing.NewService(c.config.Engine, config.Logger, indexing.Options{
		Index:        config.Index,
		WaitAttempts: 1,
	})

	return c, nil
}

// Load indexes records, creating the index if needed.
func (c *Client) Load(ctx context.Context, records []domain.CatalogRecord) (*indexing.Result, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	result, err := c.indexer.Load(ctx, records)
	if err != nil {
		return result, classify("load catalog", err)
	}
	return result, nil
}

// LoadXML parses an XML catalog from r and indexes it.
func (c *Client) LoadXML(ctx context.Context, r io.Reader) (*indexing.Result, error) {
	records, err := catalog.Parse(r, "catalog")
	if err != nil {
		return nil, classify("parse catalog", err)
	}
	return c.Load(ctx, records)
}

// Suggest returns up to limit candidates for prefix. Engine failures yield an
// empty slice, as in the HTTP API.
func (c *Client) Suggest(ctx context.Context, prefix string, limit int) ([]Candidate, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return c.searcher.Search(ctx, prefix, limit), nil
}

// Rewrite returns the normalized form of query.
func (c *Client) Rewrite(query string) string {
	return c.rewriter.Rewrite(query)
}

// Evaluate runs a query log with inline judgement and returns the rows with
// their coverage.
func (c *Client) Evaluate(ctx context.Context, rows []domain.QueryRow) ([]domain.EvaluationRow, domain.Coverage, error) {
	if err := c.checkOpen(); err != nil {
		return nil, domain.Coverage{}, err
	}

	runner := evaluation.NewRunner(c.searcher, c.config.Logger, evaluation.Options{
		Workers:         c.config.Workers,
		RatePerSecond:   c.config.RatePerSecond,
		InlineJudgement: true,
	})
	results, err := runner.Run(ctx, rows)
	if err != nil {
		return results, domain.Coverage{}, err
	}
	return results, evaluation.Coverage(results), nil
}

// Close releases the in-memory index if the client created it.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.ownsEngine != nil {
		return c.ownsEngine.Close()
	}
	return nil
}

func (c *Client) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}
