package eventstore

import (
	"time"

	"github.com/QuangTung97/eventstore/pkg/sqldialect"
	"github.com/QuangTung97/eventstore/pkg/writelock"
	"github.com/QuangTung97/eventstore/repository"
	"go.uber.org/zap"
)

// DefaultLockTimeout of the advisory write locks
const DefaultLockTimeout = 5 * time.Second

type storeOptions struct {
	writeLock           writelock.WriteLock
	transactionHandling bool
	eventStreamsTable   string
	insertBatchSize     int
	loadBatchSize       int
	autoCreateStream    bool
	logger              *zap.Logger
	metrics             *Metrics
	now                 func() time.Time
}

func defaultWriteLock(d sqldialect.Dialect) writelock.WriteLock {
	return advisoryWriteLock(d, DefaultLockTimeout)
}

func advisoryWriteLock(d sqldialect.Dialect, timeout time.Duration) writelock.WriteLock {
	switch d {
	case sqldialect.MySQL:
		return writelock.NewMySQL(timeout)
	case sqldialect.Postgres:
		return writelock.NewPostgres(timeout)
	default:
		// sqlite serializes writers on the database file
		return writelock.NewNoLock()
	}
}

func defaultStoreOptions(d sqldialect.Dialect) storeOptions {
	return storeOptions{
		writeLock:           defaultWriteLock(d),
		transactionHandling: true,
		eventStreamsTable:   repository.DefaultEventStreamsTable,
		insertBatchSize:     100,
		loadBatchSize:       1000,
		logger:              zap.NewNop(),
		now:                 time.Now,
	}
}

func newStoreOptions(d sqldialect.Dialect, options ...Option) storeOptions {
	opts := defaultStoreOptions(d)
	for _, fn := range options {
		fn(&opts)
	}
	return opts
}

// Option ...
type Option func(opts *storeOptions)

// WithWriteLock replaces the advisory lock of the dialect
func WithWriteLock(lock writelock.WriteLock) Option {
	return func(opts *storeOptions) {
		opts.writeLock = lock
	}
}

// WithTransactionHandling when false the store never begins, commits or rolls back transactions,
// BeginTransaction, Commit and Rollback become no-ops
func WithTransactionHandling(enabled bool) Option {
	return func(opts *storeOptions) {
		opts.transactionHandling = enabled
	}
}

// WithEventStreamsTable ...
func WithEventStreamsTable(table string) Option {
	return func(opts *storeOptions) {
		opts.eventStreamsTable = table
	}
}

// WithInsertBatchSize number of rows of a single INSERT statement
func WithInsertBatchSize(size int) Option {
	return func(opts *storeOptions) {
		if size > 0 {
			opts.insertBatchSize = size
		}
	}
}

// WithLoadBatchSize number of events fetched by each query of Load
func WithLoadBatchSize(size int) Option {
	return func(opts *storeOptions) {
		if size > 0 {
			opts.loadBatchSize = size
		}
	}
}

// WithAutoCreateStream creates missing streams on the first append
func WithAutoCreateStream(enabled bool) Option {
	return func(opts *storeOptions) {
		opts.autoCreateStream = enabled
	}
}

// WithLogger used when the context carries no request logger
func WithLogger(logger *zap.Logger) Option {
	return func(opts *storeOptions) {
		opts.logger = logger
	}
}

// WithMetrics ...
func WithMetrics(m *Metrics) Option {
	return func(opts *storeOptions) {
		opts.metrics = m
	}
}

// WithNow for testing
func WithNow(now func() time.Time) Option {
	return func(opts *storeOptions) {
		opts.now = now
	}
}
