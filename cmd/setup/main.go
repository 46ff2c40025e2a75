// ABOUTME: Provisions the catalog index: waits for the engine, creates the index and loads an XML catalog
// ABOUTME: Exits non-zero when the engine never comes up, the catalog is malformed, or indexing fails

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"catalog-suggest/core/catalog"
	"catalog-suggest/core/indexing"
	"catalog-suggest/infrastructure/bootstrap"
	"catalog-suggest/pkg/config"
)

func main() {
	catalogPath := flag.String("catalog", "catalog.xml", "XML catalog to index")
	index := flag.String("index", "", "index name (defaults to INDEX_NAME)")
	flag.Parse()

	if err := run(*catalogPath, *index); err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		os.Exit(1)
	}
}

func run(catalogPath, index string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	if index != "" {
		cfg.Engine.IndexName = index
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := bootstrap.NewLogger(cfg)
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	records, err := catalog.LoadFile(catalogPath)
	if err != nil {
		return err
	}
	logger.Info("Catalog loaded", map[string]interface{}{
		"file":    catalogPath,
		"records": len(records),
	})

	engine, closer, err := bootstrap.NewEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	svc := indexing.NewService(engine, logger, indexing.Options{
		Index:        cfg.Engine.IndexName,
		WaitAttempts: cfg.Setup.WaitAttempts,
		WaitInterval: cfg.WaitInterval(),
		BatchSize:    cfg.Setup.BulkBatchSize,
	})

	result, err := svc.Provision(ctx, records)
	if err != nil {
		return err
	}

	fmt.Printf("indexed %d/%d records into %s (%d failed) in %s\n",
		result.Indexed, result.Total, cfg.Engine.IndexName, result.Failed, result.Duration)
	return nil
}
