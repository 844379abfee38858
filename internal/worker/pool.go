// Package worker renders batches of PGN games on a pool of goroutines.
package worker

import (
	"context"
	"sync"
	"sync/atomic"
)

// WorkItem is one game of a batch, as the lines SplitGames produced.
type WorkItem struct {
	Lines []string
	Index int // Position in the input
}

// ProcessResult is a rendered game.
type ProcessResult struct {
	Index    int
	Output   string
	Rejected int // Move tokens that became placeholders
	Error    error
}

// ProcessFunc renders one work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool fans work items out to a fixed number of goroutines. Results arrive
// in completion order; Collect restores input order.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool returns a pool with 1 worker and a buffer of 10 unless the
// options say otherwise.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue
		}
		p.resultChan <- p.processFunc(item)
	}
}

// SubmitContext queues an item, blocking while the buffer is full, unless
// the pool is stopped or ctx is done first. It reports whether the item
// was queued.
func (p *Pool) SubmitContext(ctx context.Context, item WorkItem) bool {
	if p.IsStopped() || ctx.Err() != nil {
		return false
	}
	select {
	case p.workChan <- item:
		return true
	case <-ctx.Done():
		return false
	}
}

// Stop makes workers discard the items still queued.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped reports whether Stop was called.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel, waits for the workers and then closes
// the result channel.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// Collect drains the result channel into a slice indexed by WorkItem.Index.
// n is the number of submitted items; slots of items that were discarded
// after Stop stay zero.
func (p *Pool) Collect(n int) []ProcessResult {
	out := make([]ProcessResult, n)
	for r := range p.Results() {
		if r.Index >= 0 && r.Index < n {
			out[r.Index] = r
		}
	}
	return out
}
