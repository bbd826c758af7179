package eventstore

import (
	"context"

	"go.uber.org/zap"
)

// BeginTransaction starts a transaction managed by the caller, appends reuse it.
// No-op when transaction handling is disabled.
func (s *Store) BeginTransaction(ctx context.Context) error {
	if !s.opts.transactionHandling {
		return nil
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.tx != nil {
		return ErrTransactionAlreadyStarted
	}
	return s.begin(ctx)
}

// Commit ...
func (s *Store) Commit(ctx context.Context) error {
	if !s.opts.transactionHandling {
		return nil
	}
	if s.tx == nil {
		return ErrTransactionNotStarted
	}
	return s.commit(ctx)
}

// Rollback ...
func (s *Store) Rollback(ctx context.Context) error {
	if !s.opts.transactionHandling {
		return nil
	}
	if s.tx == nil {
		return ErrTransactionNotStarted
	}
	return s.rollback(ctx)
}

// InTransaction ...
func (s *Store) InTransaction() bool {
	return s.tx != nil
}

// Transact runs fn inside a transaction, rolled back when fn returns an error or panics
func (s *Store) Transact(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if err := s.BeginTransaction(ctx); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if s.tx != nil {
				if rollbackErr := s.rollback(ctx); rollbackErr != nil {
					s.logger(ctx).Error("rollback transaction", zap.Error(rollbackErr))
				}
			}
			panic(r)
		}
		if err != nil && s.tx != nil {
			if rollbackErr := s.rollback(ctx); rollbackErr != nil {
				s.logger(ctx).Error("rollback transaction", zap.Error(rollbackErr))
			}
		}
	}()

	if err = fn(ctx); err != nil {
		return err
	}
	return s.Commit(ctx)
}

func (s *Store) begin(ctx context.Context) error {
	tx, err := s.conn.BeginTx(ctx)
	if err != nil {
		return newStorageError(StageTransaction, err)
	}
	s.tx = tx
	return nil
}

func (s *Store) commit(ctx context.Context) error {
	tx := s.tx
	s.tx = nil

	err := tx.Commit()
	s.retryPendingReleases(ctx)
	if err != nil {
		return newStorageError(StageTransaction, err)
	}
	return nil
}

func (s *Store) rollback(ctx context.Context) error {
	tx := s.tx
	s.tx = nil

	err := tx.Rollback()
	s.retryPendingReleases(ctx)
	if err != nil {
		return newStorageError(StageTransaction, err)
	}
	return nil
}

// inOwnTransaction runs fn in a transaction begun by the store, unless the caller has one open
// or transaction handling is disabled. fn must take the session from the store when it runs.
func (s *Store) inOwnTransaction(ctx context.Context, fn func() error) (err error) {
	if !s.opts.transactionHandling || s.tx != nil {
		return fn()
	}

	if err := s.begin(ctx); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if rollbackErr := s.rollback(ctx); rollbackErr != nil {
				s.logger(ctx).Error("rollback own transaction", zap.Error(rollbackErr))
			}
			panic(r)
		}
		if err != nil {
			if rollbackErr := s.rollback(ctx); rollbackErr != nil {
				s.logger(ctx).Error("rollback own transaction", zap.Error(rollbackErr))
			}
			return
		}
		err = s.commit(ctx)
	}()

	return fn()
}
