package writelock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// Local is an in process write lock, shared between stores of the same process
type Local struct {
	timeout time.Duration

	mu    sync.Mutex
	locks map[string]*localEntry
}

type localEntry struct {
	sem  *semaphore.Weighted
	held bool
}

var _ WriteLock = &Local{}

// NewLocal a zero timeout fails fast, a negative one waits until ctx is done
func NewLocal(timeout time.Duration) *Local {
	return &Local{
		timeout: timeout,
		locks:   map[string]*localEntry{},
	}
}

func (l *Local) entry(name string) *localEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.locks[name]
	if !ok {
		e = &localEntry{sem: semaphore.NewWeighted(1)}
		l.locks[name] = e
	}
	return e
}

// Acquire ...
func (l *Local) Acquire(ctx context.Context, _ Querier, name string) (bool, error) {
	e := l.entry(name)

	if l.timeout == 0 {
		if !e.sem.TryAcquire(1) {
			return false, nil
		}
	} else {
		lockCtx := ctx
		if l.timeout > 0 {
			var cancel context.CancelFunc
			lockCtx, cancel = context.WithTimeout(ctx, l.timeout)
			defer cancel()
		}
		if err := e.sem.Acquire(lockCtx, 1); err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			return false, nil
		}
	}

	l.mu.Lock()
	e.held = true
	l.mu.Unlock()
	return true, nil
}

// Release ...
func (l *Local) Release(_ context.Context, _ Querier, name string) error {
	e := l.entry(name)

	l.mu.Lock()
	if !e.held {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotHeld, name)
	}
	e.held = false
	l.mu.Unlock()

	e.sem.Release(1)
	return nil
}
