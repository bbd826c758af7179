package eventstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/sqldialect"
	"github.com/QuangTung97/eventstore/repository"
	"go.uber.org/zap"
)

// Create registers the stream, creates its table and appends its initial events.
// On failure the stream is never observable as present.
func (s *Store) Create(ctx context.Context, stream model.Stream) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	rows, err := s.prepareRows(stream.Events)
	if err != nil {
		return err
	}
	return s.create(ctx, stream, rows)
}

func (s *Store) create(ctx context.Context, stream model.Stream, rows preparedRows) error {
	metadata, err := stream.Metadata.Marshal()
	if err != nil {
		return fmt.Errorf("%w: stream metadata: %v", ErrUsage, err)
	}

	table := s.strategy.TableName(stream.Name)
	row := repository.StreamRow{
		RealStreamName: stream.Name.String(),
		StreamName:     table,
		Metadata:       sql.NullString{Valid: true, String: string(metadata)},
	}
	if category, ok := stream.Name.Category(); ok {
		row.Category = sql.NullString{Valid: true, String: category}
	}

	if s.dialect.TransactionalDDL() && s.opts.transactionHandling && s.tx == nil {
		return s.inOwnTransaction(ctx, func() error {
			if _, _, err := s.createStream(ctx, row, table); err != nil {
				return err
			}
			return s.appendInitial(ctx, stream.Name, rows)
		})
	}

	registered, tableCreated, err := s.createStream(ctx, row, table)
	if err != nil {
		if registered {
			s.cleanupFailedCreate(ctx, row, tableCreated, err)
		}
		return err
	}
	return s.appendInitial(ctx, stream.Name, rows)
}

func (s *Store) appendInitial(ctx context.Context, name model.StreamName, rows preparedRows) error {
	if len(rows.values) == 0 {
		return nil
	}
	return s.appendRows(ctx, name, rows)
}

// createStream inserts the registry row then executes the schema statements.
// The registry row is owned by this call when registered is true,
// tableCreated is true when the CREATE TABLE statement of this call succeeded.
func (s *Store) createStream(
	ctx context.Context, row repository.StreamRow, table string,
) (registered bool, tableCreated bool, err error) {
	repoCtx := s.repoContext(ctx)

	if err := s.streams.Insert(repoCtx, row); err != nil {
		if sqldialect.IsUniqueViolation(err) {
			return false, false, fmt.Errorf("%w: %q", ErrStreamExistsAlready, row.RealStreamName)
		}
		return false, false, newStorageError(StageSchemaCreation, err)
	}

	executed, err := s.streams.CreateTable(repoCtx, s.strategy.Schema(table))
	if err != nil {
		return true, executed > 0, newStorageError(StageSchemaCreation, err)
	}
	return true, true, nil
}

// cleanupFailedCreate removes the registry row, and the table only when this call created it.
// A table existing before the call is never dropped.
func (s *Store) cleanupFailedCreate(
	ctx context.Context, row repository.StreamRow, tableCreated bool, cause error,
) {
	logger := s.logger(ctx).With(zap.String("stream", row.RealStreamName))
	logger.Warn("schema creation failed, removing stream", zap.Error(cause))

	repoCtx := s.repoContext(ctx)
	if _, err := s.streams.Delete(repoCtx, row.RealStreamName); err != nil {
		logger.Error("remove stream registration", zap.Error(err))
	}

	if tableCreated {
		if err := s.streams.DropTable(repoCtx, row.StreamName); err != nil {
			logger.Error("drop partially created table", zap.Error(err))
		}
		return
	}
	if sqldialect.IsTableExists(cause) {
		logger.Warn("unregistered stream table exists, left in place", zap.String("table", row.StreamName))
	}
}

// Delete drops the stream table and its registration, deleting a missing stream is an error
func (s *Store) Delete(ctx context.Context, name model.StreamName) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	return s.inOwnTransaction(ctx, func() error {
		repoCtx := s.repoContext(ctx)

		affected, err := s.streams.Delete(repoCtx, name.String())
		if err != nil {
			return newStorageError(StageDelete, err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: %q", ErrStreamNotFound, name)
		}

		if err := s.streams.DropTable(repoCtx, s.strategy.TableName(name)); err != nil {
			return newStorageError(StageDelete, err)
		}
		return nil
	})
}

// HasStream reports whether both the registration and the table of the stream exist
func (s *Store) HasStream(ctx context.Context, name model.StreamName) (bool, error) {
	if err := s.checkOpen(); err != nil {
		return false, err
	}

	repoCtx := s.repoContext(ctx)

	row, err := s.streams.Find(repoCtx, name.String())
	if err != nil {
		return false, newStorageError(StageLoad, err)
	}
	if !row.Valid {
		return false, nil
	}

	exists, err := s.streams.TableExists(repoCtx, row.Stream.StreamName)
	if err != nil {
		return false, newStorageError(StageLoad, err)
	}
	return exists, nil
}
