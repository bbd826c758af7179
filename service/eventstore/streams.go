package eventstore

import (
	"context"
	"fmt"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/repository"
)

// FetchStreamMetadata ...
func (s *Store) FetchStreamMetadata(ctx context.Context, name model.StreamName) (model.Metadata, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return fetchStreamMetadata(s.repoContext(ctx), s.streams, name)
}

// UpdateStreamMetadata replaces the metadata of the stream
func (s *Store) UpdateStreamMetadata(ctx context.Context, name model.StreamName, metadata model.Metadata) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	data, err := metadata.Marshal()
	if err != nil {
		return fmt.Errorf("%w: stream metadata: %v", ErrUsage, err)
	}
	return updateStreamMetadata(s.repoContext(ctx), s.streams, name, data)
}

// FetchStreamNames returns registered stream names starting with prefix, ordered by name.
// A zero limit means no limit.
func (s *Store) FetchStreamNames(
	ctx context.Context, prefix string, limit uint64, offset uint64,
) ([]model.StreamName, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return fetchStreamNames(s.repoContext(ctx), s.streams, prefix, limit, offset)
}

// FetchCategoryNames returns distinct categories starting with prefix, ordered by name
func (s *Store) FetchCategoryNames(
	ctx context.Context, prefix string, limit uint64, offset uint64,
) ([]string, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return fetchCategoryNames(s.repoContext(ctx), s.streams, prefix, limit, offset)
}

// the functions below expect the executor carried by ctx

func fetchStreamMetadata(
	ctx context.Context, streams repository.StreamRepository, name model.StreamName,
) (model.Metadata, error) {
	row, err := streams.Find(ctx, name.String())
	if err != nil {
		return nil, newStorageError(StageMetadata, err)
	}
	if !row.Valid {
		return nil, fmt.Errorf("%w: %q", ErrStreamNotFound, name)
	}

	metadata, err := model.UnmarshalMetadata([]byte(row.Stream.Metadata.String))
	if err != nil {
		return nil, newStorageError(StageMetadata, err)
	}
	return metadata, nil
}

func updateStreamMetadata(
	ctx context.Context, streams repository.StreamRepository, name model.StreamName, data []byte,
) error {
	affected, err := streams.UpdateMetadata(ctx, name.String(), string(data))
	if err != nil {
		return newStorageError(StageMetadata, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", ErrStreamNotFound, name)
	}
	return nil
}

func fetchStreamNames(
	ctx context.Context, streams repository.StreamRepository, prefix string, limit uint64, offset uint64,
) ([]model.StreamName, error) {
	names, err := streams.FetchStreamNames(ctx, prefix, limit, offset)
	if err != nil {
		return nil, newStorageError(StageMetadata, err)
	}

	result := make([]model.StreamName, 0, len(names))
	for _, name := range names {
		result = append(result, model.StreamName(name))
	}
	return result, nil
}

func fetchCategoryNames(
	ctx context.Context, streams repository.StreamRepository, prefix string, limit uint64, offset uint64,
) ([]string, error) {
	names, err := streams.FetchCategoryNames(ctx, prefix, limit, offset)
	if err != nil {
		return nil, newStorageError(StageMetadata, err)
	}
	return names, nil
}
