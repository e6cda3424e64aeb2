package worker

import (
	"context"
	"errors"
	"sync"
)

var ErrStopped = errors.New("worker pool stopped")

// Gauge is satisfied by prometheus.Gauge.
type Gauge interface {
	Inc()
	Dec()
}

type task func()

// Pool runs jobs on a fixed number of goroutines.
type Pool struct {
	wg    sync.WaitGroup
	jobs  chan task
	depth Gauge

	mu      sync.RWMutex
	stopped bool
}

// depth nil olabilir
func NewPool(n, queue int, depth Gauge) *Pool {
	if n < 1 {
		n = 1
	}
	if queue < 0 {
		queue = 0
	}
	p := &Pool{jobs: make(chan task, queue), depth: depth}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.dec()
				job()
			}
		}()
	}
	return p
}

// Do queues f and blocks until it has run. If ctx ends before a worker picks
// the job up, f is skipped and the context error is returned.
func (p *Pool) Do(ctx context.Context, f func()) error {
	done := make(chan struct{})
	ran := false
	job := func() {
		defer close(done)
		if ctx.Err() != nil {
			return
		}
		ran = true
		f()
	}

	if err := p.enqueue(ctx, job); err != nil {
		return err
	}
	<-done
	if !ran {
		return ctx.Err()
	}
	return nil
}

func (p *Pool) enqueue(ctx context.Context, job task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	p.inc()
	select {
	case p.jobs <- job:
		return nil
	case <-ctx.Done():
		p.dec()
		return ctx.Err()
	}
}

// Stop waits for queued jobs to finish. Later calls to Do return ErrStopped.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		close(p.jobs)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) inc() {
	if p.depth != nil {
		p.depth.Inc()
	}
}

func (p *Pool) dec() {
	if p.depth != nil {
		p.depth.Dec()
	}
}
