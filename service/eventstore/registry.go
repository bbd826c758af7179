package eventstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/sqldialect"
	"github.com/QuangTung97/eventstore/repository"
	"github.com/jmoiron/sqlx"
)

// IRegistry reads and updates registered streams without touching their events
type IRegistry interface {
	FetchStreamMetadata(ctx context.Context, name model.StreamName) (model.Metadata, error)
	UpdateStreamMetadata(ctx context.Context, name model.StreamName, metadata model.Metadata) error
	FetchStreamNames(ctx context.Context, prefix string, limit uint64, offset uint64) ([]model.StreamName, error)
	FetchCategoryNames(ctx context.Context, prefix string, limit uint64, offset uint64) ([]string, error)
}

// Registry runs stream registry operations on a connection pool.
// Unlike a Store it holds no connection and is safe for concurrent use.
type Registry struct {
	provider repository.Provider
	streams  repository.StreamRepository
}

var _ IRegistry = &Registry{}

// NewRegistry only uses the event streams table option
func NewRegistry(db *sqlx.DB, d sqldialect.Dialect, options ...Option) *Registry {
	opts := newStoreOptions(d, options...)
	return &Registry{
		provider: repository.NewProvider(db),
		streams:  repository.NewStreamRepository(d, opts.eventStreamsTable),
	}
}

// FetchStreamMetadata ...
func (r *Registry) FetchStreamMetadata(ctx context.Context, name model.StreamName) (model.Metadata, error) {
	return fetchStreamMetadata(r.provider.Readonly(ctx), r.streams, name)
}

// UpdateStreamMetadata finds and updates the registry row in one transaction
func (r *Registry) UpdateStreamMetadata(ctx context.Context, name model.StreamName, metadata model.Metadata) error {
	data, err := metadata.Marshal()
	if err != nil {
		return fmt.Errorf("%w: stream metadata: %v", ErrUsage, err)
	}

	err = r.provider.Transact(ctx, func(ctx context.Context) error {
		return updateStreamMetadata(ctx, r.streams, name, data)
	})
	if err != nil && !errors.Is(err, ErrStreamNotFound) && !errors.Is(err, ErrStorage) {
		return newStorageError(StageTransaction, err)
	}
	return err
}

// FetchStreamNames ...
func (r *Registry) FetchStreamNames(
	ctx context.Context, prefix string, limit uint64, offset uint64,
) ([]model.StreamName, error) {
	return fetchStreamNames(r.provider.Readonly(ctx), r.streams, prefix, limit, offset)
}

// FetchCategoryNames ...
func (r *Registry) FetchCategoryNames(
	ctx context.Context, prefix string, limit uint64, offset uint64,
) ([]string, error) {
	return fetchCategoryNames(r.provider.Readonly(ctx), r.streams, prefix, limit, offset)
}
