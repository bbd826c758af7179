package writelock

import (
	"context"
	"fmt"
	"time"

	"github.com/QuangTung97/eventstore/pkg/util"
)

// pollInterval between two pg_try_advisory_lock attempts while waiting
const pollInterval = 25 * time.Millisecond

type postgresLock struct {
	timeout  time.Duration
	interval time.Duration
}

// NewPostgres uses session level advisory locks keyed by the 64 bits hash of the name.
// A zero timeout fails fast, a negative one waits until ctx is done.
//
// Waiting polls pg_try_advisory_lock instead of blocking in pg_advisory_lock:
// lib/pq drops the connection when a running query is cancelled,
// which would lose the session the lock belongs to.
func NewPostgres(timeout time.Duration) WriteLock {
	return postgresLock{timeout: timeout, interval: pollInterval}
}

func advisoryKey(name string) int64 {
	return int64(util.Hash64(name))
}

func (l postgresLock) tryAcquire(ctx context.Context, db Querier, key int64) (bool, error) {
	var ok bool
	err := db.GetContext(ctx, &ok, `SELECT pg_try_advisory_lock($1)`, key)
	return ok, err
}

func (l postgresLock) Acquire(ctx context.Context, db Querier, name string) (bool, error) {
	key := advisoryKey(name)

	ok, err := l.tryAcquire(ctx, db, key)
	if err != nil || ok || l.timeout == 0 {
		return ok, err
	}

	var deadline <-chan time.Time
	if l.timeout > 0 {
		deadlineTimer := time.NewTimer(l.timeout)
		defer deadlineTimer.Stop()
		deadline = deadlineTimer.C
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-deadline:
			return false, nil
		case <-ticker.C:
		}

		ok, err := l.tryAcquire(ctx, db, key)
		if err != nil || ok {
			return ok, err
		}
	}
}

func (l postgresLock) Release(ctx context.Context, db Querier, name string) error {
	var ok bool
	err := db.GetContext(ctx, &ok, `SELECT pg_advisory_unlock($1)`, advisoryKey(name))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotHeld, name)
	}
	return nil
}
