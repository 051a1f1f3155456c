package importer

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyImports is returned when every import slot is occupied and the
// wait timeout expires. Callers should retry after a short delay.
var ErrTooManyImports = errors.New("too many concurrent imports, please try again later")

// Limiter bounds how many import jobs run at once in this process.
// Requests that cannot acquire a slot within maxWait fail with
// ErrTooManyImports instead of queueing indefinitely.
type Limiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewLimiter allows at most maxConcurrent simultaneous imports.
func NewLimiter(maxConcurrent int, maxWait time.Duration) *Limiter {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if maxWait <= 0 {
		maxWait = 10 * time.Second
	}
	return &Limiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire blocks for an import slot. The caller must Release exactly once
// after a nil return.
func (l *Limiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyImports
	}
}

// Release frees a previously acquired slot.
func (l *Limiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
	<-l.semaphore
}

// ActiveCount returns the number of imports currently running.
func (l *Limiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// WaitForDrain blocks until every active import completes or the context
// is cancelled. Used during graceful shutdown.
func (l *Limiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.ActiveCount() == 0 {
				return nil
			}
		}
	}
}
