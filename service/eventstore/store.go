package eventstore

import (
	"context"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/matcher"
	"github.com/QuangTung97/eventstore/pkg/otellib"
	"github.com/QuangTung97/eventstore/pkg/sqldialect"
	"github.com/QuangTung97/eventstore/pkg/strategy"
	"github.com/QuangTung97/eventstore/repository"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:generate otelwrap --out store_wrappers.go . IEventStore

// IEventStore ...
type IEventStore interface {
	Create(ctx context.Context, stream model.Stream) error
	Delete(ctx context.Context, name model.StreamName) error
	HasStream(ctx context.Context, name model.StreamName) (bool, error)

	AppendTo(ctx context.Context, name model.StreamName, events []model.Event) error

	Load(
		ctx context.Context, name model.StreamName, fromNumber int64, count int, m matcher.Matcher,
	) (*EventIterator, error)
	LoadReverse(
		ctx context.Context, name model.StreamName, fromNumber int64, count int, m matcher.Matcher,
	) (*EventIterator, error)

	FetchStreamMetadata(ctx context.Context, name model.StreamName) (model.Metadata, error)
	UpdateStreamMetadata(ctx context.Context, name model.StreamName, metadata model.Metadata) error
	FetchStreamNames(ctx context.Context, prefix string, limit uint64, offset uint64) ([]model.StreamName, error)
	FetchCategoryNames(ctx context.Context, prefix string, limit uint64, offset uint64) ([]string, error)

	BeginTransaction(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store is an append only event store on a single database connection.
// A Store is not safe for concurrent use, concurrent writers use their own stores.
type Store struct {
	conn     repository.Conn
	strategy strategy.PersistenceStrategy
	dialect  sqldialect.Dialect
	streams  repository.StreamRepository
	opts     storeOptions

	tx              repository.Tx
	pendingReleases []string
	closed          bool
}

var _ IEventStore = &Store{}

// Open acquires a dedicated connection of db, owned by the store until Close
func Open(
	ctx context.Context, db *sqlx.DB, s strategy.PersistenceStrategy, options ...Option,
) (*Store, error) {
	conn, err := db.Connx(ctx)
	if err != nil {
		return nil, newStorageError("error during connect", err)
	}
	return New(repository.NewConn(conn), s, options...), nil
}

// New creates a store on conn, the store closes conn on Close
func New(conn repository.Conn, s strategy.PersistenceStrategy, options ...Option) *Store {
	opts := newStoreOptions(s.Dialect(), options...)
	return &Store{
		conn:     conn,
		strategy: s,
		dialect:  s.Dialect(),
		streams:  repository.NewStreamRepository(s.Dialect(), opts.eventStreamsTable),
		opts:     opts,
	}
}

// Strategy ...
func (s *Store) Strategy() strategy.PersistenceStrategy {
	return s.strategy
}

// Close rolls back a dangling transaction and releases the connection.
// Write locks still held by the session are released before the connection goes back to the pool.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.tx != nil {
		if err := s.rollback(context.Background()); err != nil {
			s.opts.logger.Warn("rollback dangling transaction", zap.Error(err))
		}
	}
	return s.conn.Close()
}

// session returns the open transaction, or the connection itself
func (s *Store) session() repository.Executor {
	if s.tx != nil {
		return s.tx
	}
	return s.conn
}

// repoContext carries the current session to the stream repository
func (s *Store) repoContext(ctx context.Context) context.Context {
	return repository.WithExecutor(ctx, s.session())
}

func (s *Store) logger(ctx context.Context) *zap.Logger {
	if logger, ok := otellib.FromContext(ctx); ok {
		return logger
	}
	return s.opts.logger
}

func (s *Store) checkOpen() error {
	if s.closed {
		return ErrClosed
	}
	return nil
}
