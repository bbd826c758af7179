package writelock

import (
	"context"
	"errors"

	"github.com/QuangTung97/eventstore/pkg/util"
)

//go:generate moq -out writelock_mocks.go . WriteLock Querier

// ErrNotHeld when releasing a lock the session does not hold
var ErrNotHeld = errors.New("write lock is not held")

// Querier runs the lock statements, must be the session that appends
type Querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// WriteLock is a named mutual exclusion serializing appends to one table.
// Acquire returns false when the lock could not be obtained in time,
// callers must treat it as a concurrency failure and must not retry silently.
type WriteLock interface {
	Acquire(ctx context.Context, db Querier, name string) (bool, error)
	Release(ctx context.Context, db Querier, name string) error
}

// Name returns the lock token of a physical table
func Name(table string) string {
	return "_lock_" + util.Hash128Hex(table)
}

type noLock struct {
}

// NewNoLock always succeeds, the uniqueness constraint stays the only guard
func NewNoLock() WriteLock {
	return noLock{}
}

func (noLock) Acquire(context.Context, Querier, string) (bool, error) {
	return true, nil
}

func (noLock) Release(context.Context, Querier, string) error {
	return nil
}
