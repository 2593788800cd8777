package executor

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed is returned by Go once Close has been called.
var ErrPoolClosed = errors.New("worker pool closed")

// Pool bounds how many children run at once. Work runs on its own
// goroutine, so callers never block on a child; they wait on whatever
// channel the work reports to.
type Pool struct {
	sem    chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// NewPool returns a pool running at most size tasks concurrently. A size
// below 1 is treated as 1.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: make(chan struct{}, size)}
}

// Go waits for a free slot and then runs fn on a new goroutine. If ctx ends
// first, fn is never run and ctx.Err() is returned. Once started, fn runs
// to completion regardless of ctx. After Close, Go returns ErrPoolClosed.
func (p *Pool) Go(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	// The task is counted under mu so that no Add can race with a Wait
	// that follows Close.
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.sem
		return ErrPoolClosed
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer func() {
			<-p.sem
			p.wg.Done()
		}()
		fn()
	}()
	return nil
}

// Close stops the pool from accepting new tasks. Tasks already started keep
// running.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

// Wait blocks until every started task has returned. Call Close first if
// Go may still be called concurrently.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) size() int {
	return cap(p.sem)
}
