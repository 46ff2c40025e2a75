package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"catalog-suggest/core/domain"
)

type processorFunc func(ctx context.Context, row domain.QueryRow) domain.EvaluationRow

func (f processorFunc) Process(ctx context.Context, row domain.QueryRow) domain.EvaluationRow {
	return f(ctx, row)
}

func echoProcessor() processorFunc {
	return func(ctx context.Context, row domain.QueryRow) domain.EvaluationRow {
		return domain.EvaluationRow{Query: row.Query, Top3: "top-" + row.Query}
	}
}

func TestNewQueryWorker_Defaults(t *testing.T) {
	w := NewQueryWorker(echoProcessor(), WorkerConfig{})

	if w.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", w.Workers())
	}
	if w.limiter != nil {
		t.Error("limiter should be disabled by default")
	}
}

func TestQueryWorker_SubmitBeforeStart(t *testing.T) {
	w := NewQueryWorker(echoProcessor(), DefaultWorkerConfig())

	err := w.SubmitJob(&QueryJob{Context: context.Background()})
	if err != ErrWorkerNotRunning {
		t.Errorf("err = %v, want ErrWorkerNotRunning", err)
	}
}

func TestQueryWorker_ProcessesJobs(t *testing.T) {
	w := NewQueryWorker(echoProcessor(), WorkerConfig{MaxWorkers: 3, QueueSize: 10})
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	queries := []string{"a", "b", "c", "d", "e"}
	results := make(chan QueryResult, len(queries))
	for i, q := range queries {
		job := &QueryJob{Index: i, Row: domain.QueryRow{Query: q}, Context: context.Background(), ResultCh: results}
		if err := w.SubmitJob(job); err != nil {
			t.Fatalf("SubmitJob failed: %v", err)
		}
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	close(results)

	seen := make(map[int]string)
	for r := range results {
		if r.Err != nil {
			t.Errorf("unexpected error for job %d: %v", r.Index, r.Err)
		}
		seen[r.Index] = r.Row.Query
	}
	for i, q := range queries {
		if seen[i] != q {
			t.Errorf("result %d = %q, want %q", i, seen[i], q)
		}
	}
}

func TestQueryWorker_BoundsConcurrency(t *testing.T) {
	var active, peak int32
	processor := processorFunc(func(ctx context.Context, row domain.QueryRow) domain.EvaluationRow {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return domain.EvaluationRow{}
	})

	w := NewQueryWorker(processor, WorkerConfig{MaxWorkers: 2, QueueSize: 20})
	_ = w.Start()
	results := make(chan QueryResult, 10)
	for i := 0; i < 10; i++ {
		_ = w.SubmitJob(&QueryJob{Index: i, Context: context.Background(), ResultCh: results})
	}
	_ = w.Stop()

	if peak > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak)
	}
	if len(results) != 10 {
		t.Errorf("got %d results, want 10", len(results))
	}
}

func TestQueryWorker_CancelledJobSkipsProcessor(t *testing.T) {
	var calls int32
	processor := processorFunc(func(ctx context.Context, row domain.QueryRow) domain.EvaluationRow {
		atomic.AddInt32(&calls, 1)
		return domain.EvaluationRow{}
	})
	w := NewQueryWorker(processor, WorkerConfig{MaxWorkers: 1})
	_ = w.Start()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := make(chan QueryResult, 1)
	w.jobQueue <- &QueryJob{Index: 0, Context: ctx, ResultCh: results}
	_ = w.Stop()

	r := <-results
	if r.Err != context.Canceled {
		t.Errorf("Err = %v, want context.Canceled", r.Err)
	}
	if calls != 0 {
		t.Error("processor should not run for a cancelled job")
	}
}

func TestQueryWorker_SubmitHonoursContext(t *testing.T) {
	block := make(chan struct{})
	processor := processorFunc(func(ctx context.Context, row domain.QueryRow) domain.EvaluationRow {
		<-block
		return domain.EvaluationRow{}
	})
	w := NewQueryWorker(processor, WorkerConfig{MaxWorkers: 1, QueueSize: 1})
	_ = w.Start()
	defer func() {
		close(block)
		_ = w.Stop()
	}()

	// One job occupies the worker, one fills the queue.
	_ = w.SubmitJob(&QueryJob{Context: context.Background()})
	_ = w.SubmitJob(&QueryJob{Context: context.Background()})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	// The first job may not have been picked up yet; retry until blocked.
	var err error
	for i := 0; i < 3 && err == nil; i++ {
		err = w.SubmitJob(&QueryJob{Context: ctx})
	}
	if err != context.DeadlineExceeded {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
}

func TestQueryWorker_SubmitTimeout(t *testing.T) {
	block := make(chan struct{})
	processor := processorFunc(func(ctx context.Context, row domain.QueryRow) domain.EvaluationRow {
		<-block
		return domain.EvaluationRow{}
	})
	w := NewQueryWorker(processor, WorkerConfig{MaxWorkers: 1, QueueSize: 1, SubmitTimeout: 10 * time.Millisecond})
	_ = w.Start()
	defer func() {
		close(block)
		_ = w.Stop()
	}()

	var err error
	for i := 0; i < 4 && err == nil; i++ {
		err = w.SubmitJob(&QueryJob{Context: context.Background()})
	}
	if err != ErrQueueFull {
		t.Errorf("err = %v, want ErrQueueFull", err)
	}
}

func TestQueryWorker_RateLimit(t *testing.T) {
	w := NewQueryWorker(echoProcessor(), WorkerConfig{MaxWorkers: 4, RatePerSecond: 20})
	if w.limiter == nil {
		t.Fatal("limiter should be configured")
	}
	_ = w.Start()

	results := make(chan QueryResult, 25)
	start := time.Now()
	for i := 0; i < 25; i++ {
		_ = w.SubmitJob(&QueryJob{Index: i, Context: context.Background(), ResultCh: results})
	}
	_ = w.Stop()

	// Burst of 20 then 5 more at 20/s is at least 200ms.
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("elapsed = %v, expected throttling", elapsed)
	}
}

func TestQueryWorker_StopIsIdempotent(t *testing.T) {
	w := NewQueryWorker(echoProcessor(), DefaultWorkerConfig())
	_ = w.Start()
	if err := w.Stop(); err != nil {
		t.Fatalf("first Stop failed: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("second Stop failed: %v", err)
	}
}

func TestQueryWorker_SubmitAfterStop(t *testing.T) {
	w := NewQueryWorker(echoProcessor(), DefaultWorkerConfig())
	_ = w.Start()
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	err := w.SubmitJob(&QueryJob{Context: context.Background()})
	if err != ErrWorkerNotRunning {
		t.Errorf("err = %v, want ErrWorkerNotRunning", err)
	}
}
