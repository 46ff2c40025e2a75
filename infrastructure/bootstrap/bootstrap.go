// ABOUTME: Builds engines, caches, loggers and the rewriter from configuration
// ABOUTME: Shared by the api, setup and evaluate commands so they wire components identically

package bootstrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"catalog-suggest/api/middleware"
	"catalog-suggest/core/interfaces"
	"catalog-suggest/core/rewrite"
	"catalog-suggest/infrastructure/cache/memory"
	"catalog-suggest/infrastructure/cache/redis"
	"catalog-suggest/infrastructure/cache/sqlite"
	"catalog-suggest/infrastructure/engine/embedded"
	"catalog-suggest/infrastructure/engine/opensearch"
	stdhttp "catalog-suggest/infrastructure/http/standard"
	"catalog-suggest/infrastructure/logger/structured"
	"catalog-suggest/pkg/config"
	"catalog-suggest/pkg/featureflags"
)

// Engine is a search engine that can also provision its index.
type Engine interface {
	interfaces.SearchEngine
	interfaces.IndexAdmin
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger builds the structured logger described by cfg.Log.
func NewLogger(cfg *config.Config) *structured.Logger {
	return structured.New(structured.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
}

// NewEngine builds the configured engine. The closer releases embedded indexes.
func NewEngine(cfg *config.Config, logger interfaces.Logger) (Engine, io.Closer, error) {
	switch cfg.Engine.Type {
	case config.EngineEmbedded:
		e := embedded.NewEngine(cfg.Engine.EmbeddedPath, logger)
		return e, e, nil
	case config.EngineOpenSearch:
		logged := &middleware.LoggingRoundTripper{Transport: http.DefaultTransport, Logger: logger}
		client, err := opensearch.NewClient(cfg.Engine.URL, stdhttp.NewTransport(cfg.HTTPTimeout(), logged), logger)
		if err != nil {
			return nil, nil, err
		}
		return client, nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown engine type %q", cfg.Engine.Type)
	}
}

// NewCache builds the configured result cache. A nil cache means caching is off.
// An unreachable Redis falls back to memory rather than failing startup.
func NewCache(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, io.Closer, error) {
	memoryTTL := time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second

	switch cfg.Cache.Type {
	case config.CacheNone:
		return nil, nopCloser{}, nil
	case config.CacheRedis:
		c, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
				"error":   err.Error(),
			})
			return memory.NewMemoryCache(memoryTTL), nopCloser{}, nil
		}
		logger.Info("Using Redis cache", map[string]interface{}{"address": cfg.Cache.Redis.Address})
		return c, c, nil
	case config.CacheSQLite:
		c, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		logger.Info("Using SQLite cache", map[string]interface{}{"path": cfg.Cache.SQLite.Path})
		return c, c, nil
	default:
		logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache(memoryTTL), nopCloser{}, nil
	}
}

// NewRewriter loads the correction table. With corrections disabled the
// rewriter only lowercases.
func NewRewriter(cfg *config.Config, flags featureflags.Manager, logger interfaces.Logger) (*rewrite.Rewriter, error) {
	if flags != nil && !flags.IsEnabled(context.Background(), featureflags.CorrectionsEnabled) {
		logger.Warn("Query corrections disabled", nil)
		return rewrite.NewRewriter(nil, logger), nil
	}

	if cfg.Search.CorrectionsFile == "" {
		return rewrite.NewRewriter(rewrite.DefaultTable(), logger), nil
	}

	table, err := rewrite.LoadTable(cfg.Search.CorrectionsFile)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded correction table", map[string]interface{}{
		"file":    cfg.Search.CorrectionsFile,
		"entries": table.Len(),
	})
	return rewrite.NewRewriter(table, logger), nil
}

// CloseAll closes every closer and returns the first error.
func CloseAll(closers ...io.Closer) error {
	var first error
	for _, c := range closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
