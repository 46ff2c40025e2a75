// ABOUTME: Query worker pool runs evaluation queries on a fixed set of goroutines
// ABOUTME: Supports optional outbound throttling and context-aware job submission

package workers

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"catalog-suggest/core/domain"
)

// QueryProcessor evaluates a single query row
type QueryProcessor interface {
	Process(ctx context.Context, row domain.QueryRow) domain.EvaluationRow
}

// QueryJob represents one query row queued for evaluation
type QueryJob struct {
	Index    int
	Row      domain.QueryRow
	Context  context.Context
	ResultCh chan<- QueryResult
}

// QueryResult carries an evaluated row back with its input position
type QueryResult struct {
	Index int
	Row   domain.EvaluationRow
	Err   error
}

// QueryWorker manages a pool of query evaluation goroutines
type QueryWorker struct {
	processor     QueryProcessor
	limiter       *rate.Limiter
	jobQueue      chan *QueryJob
	maxWorkers    int
	submitTimeout time.Duration
	wg            sync.WaitGroup
	mu            sync.Mutex
	running       bool
}

// WorkerConfig holds configuration for the query worker pool
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int

	// RatePerSecond caps how many queries start per second across all
	// workers; zero or less disables throttling
	RatePerSecond float64

	// SubmitTimeout bounds how long SubmitJob waits for queue space; zero
	// waits until the job context is done
	SubmitTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers: 4,
		QueueSize:  100,
	}
}

// NewQueryWorker creates a new query worker pool
func NewQueryWorker(processor QueryProcessor, config WorkerConfig) *QueryWorker {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultWorkerConfig().MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultWorkerConfig().QueueSize
	}

	var limiter *rate.Limiter
	if config.RatePerSecond > 0 {
		burst := int(config.RatePerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RatePerSecond), burst)
	}

	return &QueryWorker{
		processor:     processor,
		limiter:       limiter,
		jobQueue:      make(chan *QueryJob, config.QueueSize),
		maxWorkers:    config.MaxWorkers,
		submitTimeout: config.SubmitTimeout,
	}
}

// Start starts the worker pool
func (qw *QueryWorker) Start() error {
	qw.mu.Lock()
	defer qw.mu.Unlock()

	if qw.running {
		return nil
	}

	for i := 0; i < qw.maxWorkers; i++ {
		qw.wg.Add(1)
		go qw.run()
	}

	qw.running = true
	return nil
}

// Stop lets queued jobs drain and waits for every worker to exit
func (qw *QueryWorker) Stop() error {
	qw.mu.Lock()
	defer qw.mu.Unlock()

	if !qw.running {
		return nil
	}

	close(qw.jobQueue)
	qw.wg.Wait()

	qw.running = false
	return nil
}

// Workers returns the pool size
func (qw *QueryWorker) Workers() int {
	return qw.maxWorkers
}

// SubmitJob submits a job to the worker pool
func (qw *QueryWorker) SubmitJob(job *QueryJob) error {
	qw.mu.Lock()
	if !qw.running {
		qw.mu.Unlock()
		return ErrWorkerNotRunning
	}
	qw.mu.Unlock()

	ctx := job.Context
	if ctx == nil {
		ctx = context.Background()
		job.Context = ctx
	}

	var timeout <-chan time.Time
	if qw.submitTimeout > 0 {
		timer := time.NewTimer(qw.submitTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case qw.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timeout:
		return ErrQueueFull
	}
}

// run is the main loop for each worker
func (qw *QueryWorker) run() {
	defer qw.wg.Done()

	for job := range qw.jobQueue {
		qw.processJob(job)
	}
}

// processJob evaluates a single job and reports the result
func (qw *QueryWorker) processJob(job *QueryJob) {
	result := QueryResult{Index: job.Index}

	if err := job.Context.Err(); err != nil {
		result.Err = err
	} else if qw.limiter != nil {
		result.Err = qw.limiter.Wait(job.Context)
	}
	if result.Err == nil {
		result.Row = qw.processor.Process(job.Context, job.Row)
	}

	if job.ResultCh != nil {
		job.ResultCh <- result
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
