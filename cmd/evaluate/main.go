// ABOUTME: Batch evaluation tool: replays a query log against the index and reports coverage
// ABOUTME: Subcommands are run (queries CSV to results CSV) and coverage (results CSV to summary)

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"catalog-suggest/core/domain"
	"catalog-suggest/core/evaluation"
	"catalog-suggest/core/interfaces"
	"catalog-suggest/core/search"
	"catalog-suggest/infrastructure/bootstrap"
	"catalog-suggest/infrastructure/report"
	"catalog-suggest/pkg/config"
	"catalog-suggest/pkg/featureflags"
)

const usage = `usage:
  evaluate run      -queries queries.csv -out results.csv [-workers N] [-rate R] [-judge]
  evaluate coverage -results results.csv [-json]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runCommand(os.Args[2:])
	case "coverage":
		err = coverageCommand(os.Args[2:], os.Stdout)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "evaluate %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func runCommand(args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	flags := featureflags.NewEnvManager("")

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	queriesPath := fs.String("queries", "queries.csv", "query log CSV (query,site,type,notes)")
	outPath := fs.String("out", "results.csv", "results CSV to write")
	workers := fs.Int("workers", cfg.Evaluation.Workers, "queries evaluated concurrently")
	rate := fs.Float64("rate", cfg.Evaluation.RatePerSec, "max queries started per second, 0 for no limit")
	inline := fs.Bool("judge", flags.IsEnabled(context.Background(), featureflags.InlineJudgement), "fill the judgement column")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Evaluation.Workers = *workers
	cfg.Evaluation.RatePerSec = *rate
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := bootstrap.NewLogger(cfg)
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rows, err := report.ReadQueriesFile(*queriesPath)
	if err != nil {
		return err
	}

	engine, engineCloser, err := bootstrap.NewEngine(cfg, logger)
	if err != nil {
		return err
	}
	cache, cacheCloser, err := bootstrap.NewCache(cfg, logger)
	if err != nil {
		return err
	}
	defer bootstrap.CloseAll(cacheCloser, engineCloser)

	rewriter, err := bootstrap.NewRewriter(cfg, flags, logger)
	if err != nil {
		return err
	}

	deps := interfaces.Dependencies{Cache: cache, Engine: engine, Logger: logger}
	searcher := search.NewSearchService(deps, rewriter, search.Options{
		Index:        cfg.Engine.IndexName,
		Timeout:      cfg.SearchTimeout(),
		CacheTTL:     cfg.CacheTTL(),
		CacheEnabled: flags.IsEnabled(ctx, featureflags.SearchCacheEnabled),
	})

	runner := evaluation.NewRunner(searcher, logger, evaluation.Options{
		Workers:         cfg.Evaluation.Workers,
		RatePerSecond:   cfg.Evaluation.RatePerSec,
		InlineJudgement: *inline,
	})

	results, err := runner.Run(ctx, rows)
	if err != nil {
		return err
	}

	if err := report.WriteResultsFile(*outPath, results); err != nil {
		return err
	}
	fmt.Printf("evaluated %d queries, results written to %s\n", len(results), *outPath)
	return nil
}

func coverageCommand(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("coverage", flag.ContinueOnError)
	resultsPath := fs.String("results", "results.csv", "results CSV written by run")
	asJSON := fs.Bool("json", false, "print the summary as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rows, err := report.ReadResultsFile(*resultsPath)
	if err != nil {
		return err
	}

	return printCoverage(out, evaluation.Coverage(rows), *asJSON)
}

func printCoverage(out io.Writer, c domain.Coverage, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}
	_, err := fmt.Fprintf(out, "Open queries: %d\nRelevant: %d\nCoverage: %.2f%%\n", c.Total, c.Relevant, c.Percentage)
	return err
}
