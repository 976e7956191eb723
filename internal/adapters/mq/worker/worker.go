// Package worker defines worker contracts for asynchronous discovery runs.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Job abstracts what workers read off the queue.
// Using the model.DiscoveryJob type for consistency.
type Job = model.DiscoveryJob

// Runner executes a single discovery job end to end, including session
// bookkeeping. The app service is the production implementation.
type Runner interface {
	RunJob(ctx context.Context, job Job) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes discovery jobs using the provided runner.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining jobs before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing discovery jobs.
type InMemoryWorker struct {
	queue  Queue
	runner Runner
	name   string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Busy tracking shared with the pool
	active *atomic.Int64

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, runner Runner, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		runner:   runner,
		name:     "worker", // default name
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"), // will be updated by options
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "error processing job",
					logger.String("session_id", job.SessionID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	// Signal shutdown
	close(w.shutdown)

	// Wait for worker to finish or context to timeout
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob handles a single discovery job.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) error {
	if w.active != nil {
		metrics.UpdateWorkerActiveCount(int(w.active.Add(1)))
		defer func() {
			metrics.UpdateWorkerActiveCount(int(w.active.Add(-1)))
		}()
	}

	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordWorkerProcessingLatency(float64(latency))
	}()

	if err := w.runner.RunJob(ctx, job); err != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("discovery job %s failed: %w", job.SessionID, err)
	}

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	runner  Runner

	// Shutdown control
	shutdown chan struct{}

	// Busy tracking shared across workers
	active atomic.Int64

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, runner Runner) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    queue,
		runner:   runner,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			runner,
			WithName("worker-"+strconv.Itoa(i)),
			withActiveCounter(&pool.active),
		)
	}

	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerActiveCount(0)

	return pool
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	// Signal shutdown to all workers
	close(p.shutdown)

	// Wait for all workers to finish
	for _, worker := range p.workers {
		select {
		case <-worker.done:
			// Worker finished
		case <-time.After(workerShutdownTimeout):
			// Worker timeout
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// First close the queue to stop new jobs
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	// Signal shutdown to all workers
	close(p.shutdown)

	// Wait for all workers to finish or context to timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
