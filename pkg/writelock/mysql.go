package writelock

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"
)

type mysqlLock struct {
	timeout time.Duration
}

// NewMySQL uses GET_LOCK, a negative timeout waits forever, zero fails fast
func NewMySQL(timeout time.Duration) WriteLock {
	return mysqlLock{timeout: timeout}
}

func timeoutSeconds(d time.Duration) int64 {
	if d < 0 {
		return -1
	}
	return int64(math.Ceil(d.Seconds()))
}

func (l mysqlLock) Acquire(ctx context.Context, db Querier, name string) (bool, error) {
	var result sql.NullInt64
	err := db.GetContext(ctx, &result, `SELECT GET_LOCK(?, ?)`, name, timeoutSeconds(l.timeout))
	if err != nil {
		return false, err
	}
	return result.Valid && result.Int64 == 1, nil
}

func (l mysqlLock) Release(ctx context.Context, db Querier, name string) error {
	var result sql.NullInt64
	err := db.GetContext(ctx, &result, `SELECT RELEASE_LOCK(?)`, name)
	if err != nil {
		return err
	}
	if !result.Valid || result.Int64 != 1 {
		return fmt.Errorf("%w: %s", ErrNotHeld, name)
	}
	return nil
}
