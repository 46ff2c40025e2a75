// Package infrastructure provides concrete implementations of the interfaces
// defined in core: search engines, caches, the HTTP transport, logging and
// report files.
//
// - engine/opensearch: opensearch-go adapter for OpenSearch
// - engine/embedded: in-process bleve index with the same query semantics
// - cache/memory: go-cache backed result cache
// - cache/redis: Redis result cache
// - cache/sqlite: SQLite result cache that survives restarts
// - http/standard: round tripper with per-attempt timeouts and retries for idempotent requests
// - logger/structured: logrus logger with optional lumberjack file rotation
// - report: CSV query logs and evaluation reports
//
// # Engines
//
//	transport := standard.NewTransport(10*time.Second, nil)
//	engine, err := opensearch.NewClient("http://localhost:9200", transport, logger)
//
//	// or, without a server
//	engine, err := embedded.NewEngine("./data/index", logger)
//	defer engine.Close()
//
// # Caches
//
//	cache := memory.NewMemoryCache(10 * time.Minute)
//	cache, err := redis.NewRedisCache(cfg.Cache.Redis)
//	cache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path)
package infrastructure
