// Package task provides a bounded background worker pool for fire-and-forget
// jobs, so slow object-store calls never block a request handler.
package task

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// ErrQueueFull is returned by Submit when the job queue is saturated.
var ErrQueueFull = errors.New("task queue is full")

// ErrClosed is returned by Submit after the pool has been closed.
var ErrClosed = errors.New("task pool is closed")

// Pool runs submitted jobs on a fixed number of worker goroutines, buffering
// up to a configurable number of pending jobs. Submit never blocks.
type Pool struct {
	name   string
	jobs   chan func(context.Context)
	eg     *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewPool starts workers goroutines consuming a queue of the given capacity.
// name prefixes worker identifiers in log output.
func NewPool(name string, workers, queue int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queue < 0 {
		queue = 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		name:   name,
		jobs:   make(chan func(context.Context), queue),
		eg:     &errgroup.Group{},
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < workers; i++ {
		worker := fmt.Sprintf("%s-%d", name, i)
		p.eg.Go(func() error {
			p.work(worker)
			return nil
		})
	}
	return p
}

// Submit queues a job for execution. It returns ErrQueueFull when the queue
// is saturated and ErrClosed after Close, without blocking in either case.
func (p *Pool) Submit(job func(context.Context)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	select {
	case p.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting jobs and waits for the workers to exit. With drain
// set, queued jobs are executed first; otherwise they are discarded and any
// running job sees its context cancelled.
func (p *Pool) Close(drain bool) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	if !drain {
		p.cancel()
	}
	_ = p.eg.Wait()
	p.cancel()
}

func (p *Pool) work(worker string) {
	logger := log.With("worker", worker)
	for job := range p.jobs {
		select {
		case <-p.ctx.Done():
			logger.Warn("discarding queued job, pool cancelled")
			continue
		default:
		}
		p.run(logger, job)
	}
}

// run executes a single job, containing panics so one bad job cannot take
// down the worker.
func (p *Pool) run(logger *log.Logger, job func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("recovered panic in background job", "panic", r)
		}
	}()
	job(p.ctx)
}
