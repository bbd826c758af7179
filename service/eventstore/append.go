package eventstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/writelock"
	"go.uber.org/zap"
)

type preparedRows struct {
	columns []string
	values  [][]interface{}
}

// prepareRows maps events to insert rows, usage errors surface here before the database is touched
func (s *Store) prepareRows(events []model.Event) (preparedRows, error) {
	now := s.opts.now()

	result := preparedRows{
		values: make([][]interface{}, 0, len(events)),
	}
	for i, e := range events {
		if e.Version < 1 {
			return preparedRows{}, fmt.Errorf("%w: event %d has version %d", ErrInvalidVersion, i, e.Version)
		}

		columns, err := s.strategy.Columns(e.Normalize(now))
		if err != nil {
			return preparedRows{}, fmt.Errorf("event %d: %w", i, err)
		}

		if result.columns == nil {
			result.columns = make([]string, 0, len(columns))
			for _, c := range columns {
				result.columns = append(result.columns, c.Name)
			}
		}

		values := make([]interface{}, 0, len(columns))
		for _, c := range columns {
			values = append(values, c.Value)
		}
		result.values = append(result.values, values)
	}
	return result, nil
}

// AppendTo appends events in order, an empty slice is a no-op.
// Version collisions fail with ErrConcurrency and nothing of the batch is committed.
func (s *Store) AppendTo(ctx context.Context, name model.StreamName, events []model.Event) (err error) {
	if len(events) == 0 {
		return nil
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	defer func() {
		s.opts.metrics.observeAppend(err, len(events))
	}()

	rows, err := s.prepareRows(events)
	if err != nil {
		return err
	}

	if s.opts.autoCreateStream {
		exists, err := s.HasStream(ctx, name)
		if err != nil {
			return err
		}
		if !exists {
			err := s.create(ctx, model.Stream{Name: name}, rows)
			if !errors.Is(err, ErrStreamExistsAlready) {
				return err
			}
			// created concurrently by another writer
			s.logger(ctx).Info("stream created concurrently", zap.String("stream", name.String()))
		}
	}

	return s.appendRows(ctx, name, rows)
}

// appendRows holds the write lock of the stream table around the insert transaction
func (s *Store) appendRows(ctx context.Context, name model.StreamName, rows preparedRows) error {
	table := s.strategy.TableName(name)
	lockName := writelock.Name(table)
	session := s.session()

	start := time.Now()
	ok, err := s.opts.writeLock.Acquire(ctx, session, lockName)
	s.opts.metrics.observeLockWait(time.Since(start))
	if err != nil {
		return fmt.Errorf("%w: acquire write lock of stream %q: %w", ErrConcurrency, name, err)
	}
	if !ok {
		s.logger(ctx).Warn("write lock not acquired", zap.String("stream", name.String()))
		return fmt.Errorf("%w: write lock of stream %q not acquired", ErrConcurrency, name)
	}
	defer s.releaseLock(ctx, session, lockName)

	err = s.inOwnTransaction(ctx, func() error {
		return s.insertRows(ctx, name, table, rows)
	})
	if errors.Is(err, ErrConcurrency) {
		s.logger(ctx).Info("append conflict", zap.String("stream", name.String()), zap.Error(err))
	}
	return err
}

func (s *Store) releaseLock(ctx context.Context, session writelock.Querier, lockName string) {
	err := s.opts.writeLock.Release(ctx, session, lockName)
	if err == nil {
		return
	}

	s.logger(ctx).Error("release write lock", zap.String("lock", lockName), zap.Error(err))
	if s.tx != nil && session == writelock.Querier(s.tx) {
		// an aborted transaction can not run the release, retried once on the connection when it ends
		s.pendingReleases = append(s.pendingReleases, lockName)
	}
}

func (s *Store) retryPendingReleases(ctx context.Context) {
	names := s.pendingReleases
	s.pendingReleases = nil

	for _, lockName := range names {
		if err := s.opts.writeLock.Release(ctx, s.conn, lockName); err != nil {
			s.logger(ctx).Error("release write lock after transaction", zap.String("lock", lockName), zap.Error(err))
		}
	}
}

func (s *Store) insertQuery(table string, columns []string, values [][]interface{}) (string, []interface{}) {
	quoted := make([]string, 0, len(columns))
	for _, c := range columns {
		quoted = append(quoted, s.dialect.Quote(c))
	}
	placeholders := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(s.dialect.Quote(table))
	b.WriteString(" (")
	b.WriteString(strings.Join(quoted, ", "))
	b.WriteString(") VALUES ")

	args := make([]interface{}, 0, len(columns)*len(values))
	for i, row := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(placeholders)
		args = append(args, row...)
	}
	return s.dialect.Rebind(b.String()), args
}

// insertRows inserts in input order with multi rows statements of at most insertBatchSize rows
func (s *Store) insertRows(ctx context.Context, name model.StreamName, table string, rows preparedRows) error {
	executor := s.session()
	batch := s.opts.insertBatchSize

	for start := 0; start < len(rows.values); start += batch {
		end := start + batch
		if end > len(rows.values) {
			end = len(rows.values)
		}

		query, args := s.insertQuery(table, rows.columns, rows.values[start:end])
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return classifyWriteError(name, StageAppend, s.strategy.UniquenessScope(), err)
		}
	}
	return nil
}
