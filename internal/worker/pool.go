// Package worker provides a worker pool for running independent jobs in
// parallel.
package worker

import (
	"sync"
	"sync/atomic"
)

// ProcessFunc turns one work item into one result.
type ProcessFunc[T, R any] func(item T) R

// Pool manages a pool of workers. Results arrive in completion order;
// callers that need input order carry an index in T.
type Pool[T, R any] struct {
	numWorkers  int
	bufferSize  int
	workChan    chan T
	resultChan  chan R
	processFunc ProcessFunc[T, R]
	wg          sync.WaitGroup
	stopFlag    atomic.Bool
}

type poolConfig struct {
	numWorkers int
	bufferSize int
}

// PoolOption configures a Pool.
type PoolOption func(*poolConfig)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(c *poolConfig) {
		if n >= 1 {
			c.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(c *poolConfig) {
		if size >= 1 {
			c.bufferSize = size
		}
	}
}

// NewPool creates a new worker pool with the specified number of workers and buffer size.
func NewPool[T, R any](numWorkers, bufferSize int, processFunc ProcessFunc[T, R]) *Pool[T, R] {
	return NewPoolWithOptions(processFunc, WithWorkers(numWorkers), WithBufferSize(bufferSize))
}

// NewPoolWithOptions creates a new worker pool using functional options.
// Default: 1 worker, buffer size of 10.
func NewPoolWithOptions[T, R any](processFunc ProcessFunc[T, R], opts ...PoolOption) *Pool[T, R] {
	cfg := poolConfig{numWorkers: 1, bufferSize: 10}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Pool[T, R]{
		numWorkers:  cfg.numWorkers,
		bufferSize:  cfg.bufferSize,
		workChan:    make(chan T, cfg.bufferSize),
		resultChan:  make(chan R, cfg.bufferSize),
		processFunc: processFunc,
	}
}

// Start starts the worker goroutines.
func (p *Pool[T, R]) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool[T, R]) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // drain without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool[T, R]) Submit(item T) {
	p.workChan <- item
}

// TrySubmit attempts to submit a work item without blocking.
// Returns false if the work channel is full or the pool is stopped.
func (p *Pool[T, R]) TrySubmit(item T) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.workChan <- item:
		return true
	default:
		return false
	}
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool[T, R]) Stop() {
	p.stopFlag.Store(true)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool[T, R]) IsStopped() bool {
	return p.stopFlag.Load()
}

// Close closes the work channel and waits for all workers to finish.
// The result channel is closed once every worker has returned.
func (p *Pool[T, R]) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool[T, R]) Results() <-chan R {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool[T, R]) NumWorkers() int {
	return p.numWorkers
}
