// ABOUTME: Evaluation runner replays a query log against the retrieval client
// ABOUTME: Rows are evaluated on a bounded worker pool and returned in input order

package evaluation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"catalog-suggest/core/domain"
	"catalog-suggest/core/interfaces"
	"catalog-suggest/core/judge"
	"catalog-suggest/core/workers"
)

// TopK is how many candidates each evaluated query asks for.
const TopK = 3

// Options configures a Runner.
type Options struct {
	// Workers is the number of queries evaluated concurrently; 1 runs them
	// one after another
	Workers int

	// RatePerSecond throttles how many queries start per second; zero
	// disables throttling
	RatePerSecond float64

	// InlineJudgement fills the judgement column while running
	InlineJudgement bool
}

// Runner evaluates query rows against a Searcher.
type Runner struct {
	searcher interfaces.Searcher
	logger   interfaces.Logger
	opts     Options
	now      func() time.Time
}

// NewRunner creates a runner. logger may be nil.
func NewRunner(searcher interfaces.Searcher, logger interfaces.Logger, opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = workers.DefaultWorkerConfig().MaxWorkers
	}
	return &Runner{
		searcher: searcher,
		logger:   logger,
		opts:     opts,
		now:      time.Now,
	}
}

// Run evaluates every row and returns one output row per input row, in input
// order. Retrieval failures show up as empty top-3 columns and never abort the
// run. Cancelling ctx stops the run; rows not evaluated by then are left
// zero-valued and ctx.Err() is returned.
func (r *Runner) Run(ctx context.Context, rows []domain.QueryRow) ([]domain.EvaluationRow, error) {
	out := make([]domain.EvaluationRow, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	r.logInfo("Evaluation started", map[string]interface{}{
		"queries": len(rows),
		"workers": r.opts.Workers,
	})

	pool := workers.NewQueryWorker(r, workers.WorkerConfig{
		MaxWorkers:    r.opts.Workers,
		QueueSize:     len(rows),
		RatePerSecond: r.opts.RatePerSecond,
	})
	if err := pool.Start(); err != nil {
		return out, err
	}

	results := make(chan workers.QueryResult, len(rows))
	for i, row := range rows {
		job := &workers.QueryJob{
			Index:    i,
			Row:      row,
			Context:  ctx,
			ResultCh: results,
		}
		if err := pool.SubmitJob(job); err != nil {
			break
		}
	}
	_ = pool.Stop()
	close(results)

	completed := 0
	for res := range results {
		if res.Err != nil {
			continue
		}
		out[res.Index] = res.Row
		completed++
	}

	if err := ctx.Err(); err != nil {
		r.logWarn("Evaluation cancelled", map[string]interface{}{
			"completed": completed,
			"queries":   len(rows),
			"error":     err.Error(),
		})
		return out, err
	}

	r.logInfo("Evaluation finished", map[string]interface{}{
		"queries": len(rows),
	})
	return out, nil
}

// Process evaluates a single row.
func (r *Runner) Process(ctx context.Context, row domain.QueryRow) domain.EvaluationRow {
	start := r.now()
	candidates := r.searcher.Search(ctx, row.Query, TopK)
	latency := r.now().Sub(start)

	result := domain.EvaluationRow{
		Query:     row.Query,
		Site:      row.Site,
		Type:      row.Type,
		Notes:     row.Notes,
		Top3:      FormatNames(candidates),
		Top3Score: FormatScores(candidates),
		LatencyMS: FormatLatency(latency),
	}

	if r.opts.InlineJudgement {
		result.Judgement = Judge(result)
	}
	return result
}

// Judge labels an evaluated row with the relevance heuristic.
func Judge(row domain.EvaluationRow) string {
	if judge.IsRelevant(row.Query, row.Notes, judge.SplitTop(row.Top3)) {
		return domain.JudgementRelevant
	}
	return domain.JudgementNotRelevant
}

// FormatNames joins candidate names with the result delimiter.
func FormatNames(candidates []domain.Candidate) string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		if c.Name == "" {
			names[i] = domain.UnknownName
			continue
		}
		names[i] = c.Name
	}
	return strings.Join(names, domain.ResultDelimiter)
}

// FormatScores joins candidate scores, three decimals each.
func FormatScores(candidates []domain.Candidate) string {
	scores := make([]string, len(candidates))
	for i, c := range candidates {
		scores[i] = fmt.Sprintf("%.3f", c.Score)
	}
	return strings.Join(scores, domain.ResultDelimiter)
}

// FormatLatency renders d in milliseconds with two decimals.
func FormatLatency(d time.Duration) string {
	return fmt.Sprintf("%.2f", float64(d)/float64(time.Millisecond))
}

func (r *Runner) logInfo(msg string, fields map[string]interface{}) {
	if r.logger != nil {
		r.logger.Info(msg, fields)
	}
}

func (r *Runner) logWarn(msg string, fields map[string]interface{}) {
	if r.logger != nil {
		r.logger.Warn(msg, fields)
	}
}
