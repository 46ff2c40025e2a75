// ABOUTME: Main entry point for the catalog suggest API server
// ABOUTME: Wires configuration, engine, cache and rewriter into the HTTP handlers

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-suggest/api"
	"catalog-suggest/api/handlers"
	"catalog-suggest/core/interfaces"
	"catalog-suggest/core/search"
	"catalog-suggest/infrastructure/bootstrap"
	"catalog-suggest/pkg/config"
	"catalog-suggest/pkg/featureflags"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := bootstrap.NewLogger(cfg)
	defer logger.Close()

	flags := featureflags.NewEnvManager("")
	ctx := featureflags.WithManager(context.Background(), flags)

	logger.Info("Starting Catalog Suggest API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"engine":     cfg.Engine.Type,
		"index":      cfg.Engine.IndexName,
		"cache_type": cfg.Cache.Type,
	})

	engine, engineCloser, err := bootstrap.NewEngine(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create search engine: %v", err)
	}

	cache, cacheCloser, err := bootstrap.NewCache(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}

	rewriter, err := bootstrap.NewRewriter(cfg, flags, logger)
	if err != nil {
		log.Fatalf("Failed to load corrections: %v", err)
	}

	deps := interfaces.Dependencies{
		Cache:  cache,
		Engine: engine,
		Logger: logger,
	}
	searchService := search.NewSearchService(deps, rewriter, search.Options{
		Index:        cfg.Engine.IndexName,
		Timeout:      cfg.SearchTimeout(),
		CacheTTL:     cfg.CacheTTL(),
		CacheEnabled: featureflags.IsEnabled(ctx, featureflags.SearchCacheEnabled),
	})

	apiConfig := api.APIConfig{Logger: logger}
	if featureflags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		apiConfig.RateLimit = cfg.Server.RateLimit
		apiConfig.RateWindow = time.Duration(cfg.Server.RateWindowSec) * time.Second
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	handlers.NewSuggestHandler(searchService).RegisterRoutes(humaAPI)
	handlers.NewRewriteHandler(rewriter).RegisterRoutes(humaAPI)
	handlers.NewHealthHandler(engine, flags, cfg.Engine.Type, cfg.Engine.IndexName).RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := bootstrap.CloseAll(cacheCloser, engineCloser); err != nil {
		logger.Warn("Failed to release resources", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}
