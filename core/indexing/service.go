// ABOUTME: Index provisioning: wait for the engine, create the index, bulk load, refresh
// ABOUTME: Used by the setup command to load an XML catalog into a fresh or existing index

package indexing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-suggest/core/domain"
	"catalog-suggest/core/interfaces"
)

// Options controls provisioning.
type Options struct {
	Index string

	// WaitAttempts is how many pings are tried before giving up
	WaitAttempts int

	// WaitInterval separates consecutive pings
	WaitInterval time.Duration

	// BatchSize caps the records sent per bulk request
	BatchSize int
}

// Result summarises a load.
type Result struct {
	Total    int
	Indexed  int
	Failed   int
	Batches  int
	Duration time.Duration
}

// ErrEngineUnavailable is returned when the engine never answered a ping.
var ErrEngineUnavailable = errors.New("search engine unavailable")

// Service provisions an index through an IndexAdmin.
type Service struct {
	admin  interfaces.IndexAdmin
	logger interfaces.Logger
	opts   Options

	sleep func(ctx context.Context, d time.Duration) error
}

// NewService fills zero options with defaults: 30 attempts, 2s interval, 500 records per batch.
func NewService(admin interfaces.IndexAdmin, logger interfaces.Logger, opts Options) *Service {
	if opts.WaitAttempts <= 0 {
		opts.WaitAttempts = 30
	}
	if opts.WaitInterval <= 0 {
		opts.WaitInterval = 2 * time.Second
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	return &Service{
		admin:  admin,
		logger: logger,
		opts:   opts,
		sleep:  sleepContext,
	}
}

// WaitForEngine pings until the engine answers or attempts run out.
func (s *Service) WaitForEngine(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= s.opts.WaitAttempts; attempt++ {
		lastErr = s.admin.Ping(ctx)
		if lastErr == nil {
			s.logger.Info("search engine is ready", map[string]interface{}{
				"attempt": attempt,
			})
			return nil
		}

		s.logger.Debug("search engine not ready", map[string]interface{}{
			"attempt": attempt,
			"error":   lastErr.Error(),
		})

		if attempt == s.opts.WaitAttempts {
			break
		}
		if err := s.sleep(ctx, s.opts.WaitInterval); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrEngineUnavailable, s.opts.WaitAttempts, lastErr)
}

// Load creates the index and indexes records in batches, then refreshes it.
// A batch that fails outright aborts the load and the result keeps what was
// indexed so far; documents rejected inside a successful batch are counted
// in Failed.
func (s *Service) Load(ctx context.Context, records []domain.CatalogRecord) (*Result, error) {
	start := time.Now()

	if err := s.admin.CreateIndex(ctx, s.opts.Index); err != nil {
		return nil, fmt.Errorf("create index %s: %w", s.opts.Index, err)
	}

	result := &Result{Total: len(records)}
	for from := 0; from < len(records); from += s.opts.BatchSize {
		to := from + s.opts.BatchSize
		if to > len(records) {
			to = len(records)
		}

		n, err := s.admin.BulkIndex(ctx, s.opts.Index, records[from:to])
		result.Indexed += n
		if err != nil {
			return result, fmt.Errorf("bulk index records %d-%d: %w", from, to-1, err)
		}
		result.Batches++
		result.Failed += (to - from) - n
	}

	if err := s.admin.Refresh(ctx, s.opts.Index); err != nil {
		return result, fmt.Errorf("refresh index %s: %w", s.opts.Index, err)
	}

	result.Duration = time.Since(start)
	s.logger.Info("catalog indexed", map[string]interface{}{
		"index":    s.opts.Index,
		"total":    result.Total,
		"indexed":  result.Indexed,
		"failed":   result.Failed,
		"batches":  result.Batches,
		"duration": result.Duration.String(),
	})
	return result, nil
}

// Provision waits for the engine and then loads records.
func (s *Service) Provision(ctx context.Context, records []domain.CatalogRecord) (*Result, error) {
	if err := s.WaitForEngine(ctx); err != nil {
		return nil, err
	}
	return s.Load(ctx, records)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
