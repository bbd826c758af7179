package eventstore

import (
	"github.com/QuangTung97/eventstore/config"
	"github.com/QuangTung97/eventstore/pkg/sqldialect"
	"github.com/QuangTung97/eventstore/pkg/writelock"
)

// OptionsFromConfig maps the event_store config section to options.
// Call it once per process: stores built with the result share the same in-process lock.
func OptionsFromConfig(d sqldialect.Dialect, conf config.EventStoreConfig) []Option {
	var lock writelock.WriteLock
	switch conf.WriteLock {
	case config.WriteLockLocal:
		lock = writelock.NewLocal(conf.LockTimeout)
	case config.WriteLockNone:
		lock = writelock.NewNoLock()
	default:
		lock = advisoryWriteLock(d, conf.LockTimeout)
	}

	return []Option{
		WithWriteLock(lock),
		WithTransactionHandling(conf.TransactionHandling),
		WithEventStreamsTable(conf.EventStreamsTable),
		WithInsertBatchSize(conf.InsertBatchSize),
		WithLoadBatchSize(conf.LoadBatchSize),
		WithAutoCreateStream(conf.AutoCreateStream),
	}
}
