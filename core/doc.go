// Package core contains the business logic of catalog-suggest.
// It has no knowledge of HTTP servers, engines or storage formats.
//
// Sub-packages:
//
// - domain: catalog records, candidates, corrections, evaluation rows
// - rewrite: the ordered correction table and query rewriter
// - search: the retrieval client building the two-strategy disjunctive query
// - judge: the token-overlap relevance heuristic
// - evaluation: the batch runner and coverage computation
// - workers: the bounded, rate limited worker pool used by the runner
// - catalog: XML catalog ingestion
// - indexing: index provisioning against an IndexAdmin
// - errors: typed errors shared by all layers
// - interfaces: contracts for the engine, cache, HTTP client and logger
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:  cache,  // interfaces.Cache, may be nil
//	    Engine: engine, // interfaces.SearchEngine
//	    Logger: logger, // interfaces.Logger
//	}
//	rewriter := rewrite.NewRewriter(rewrite.DefaultTable(), logger)
//	svc := search.NewSearchService(deps, rewriter, search.Options{Index: "catalog"})
//
//	candidates := svc.Search(ctx, "санпелегрино", 3)
package core
