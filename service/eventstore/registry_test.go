package eventstore

import (
	"errors"
	"testing"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Reads_Streams_Of_Store(t *testing.T) {
	st := newStoreTest(t, strategy.NameAggregateStream)
	store := st.open(t)

	for _, name := range []model.StreamName{"user-1", "user-2", "order-1", "audit"} {
		require.NoError(t, store.Create(newContext(), model.Stream{Name: name}))
	}

	registry := NewRegistry(st.tc.DB, st.tc.Dialect)

	names, err := registry.FetchStreamNames(newContext(), "user", 0, 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, []model.StreamName{"user-1", "user-2"}, names)

	names, err = registry.FetchStreamNames(newContext(), "", 2, 1)
	assert.Equal(t, nil, err)
	assert.Equal(t, []model.StreamName{"order-1", "user-1"}, names)

	categories, err := registry.FetchCategoryNames(newContext(), "", 0, 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"order", "user"}, categories)
}

func TestRegistry_Stream_Metadata(t *testing.T) {
	st := newStoreTest(t, strategy.NameAggregateStream)
	store := st.open(t)
	require.NoError(t, store.Create(newContext(), model.Stream{
		Name:     "user-1",
		Metadata: model.Metadata{"owner": "team-a"},
	}))

	registry := NewRegistry(st.tc.DB, st.tc.Dialect)

	metadata, err := registry.FetchStreamMetadata(newContext(), "user-1")
	assert.Equal(t, nil, err)
	assert.Equal(t, model.Metadata{"owner": "team-a"}, metadata)

	err = registry.UpdateStreamMetadata(newContext(), "user-1", model.Metadata{"owner": "team-b"})
	assert.Equal(t, nil, err)

	// visible to the store connection after commit
	metadata, err = store.FetchStreamMetadata(newContext(), "user-1")
	assert.Equal(t, nil, err)
	assert.Equal(t, model.Metadata{"owner": "team-b"}, metadata)

	err = registry.UpdateStreamMetadata(newContext(), "user-9", model.Metadata{})
	assert.True(t, errors.Is(err, ErrStreamNotFound), err)
	assert.True(t, errors.Is(err, ErrUsage))

	_, err = registry.FetchStreamMetadata(newContext(), "user-9")
	assert.True(t, errors.Is(err, ErrStreamNotFound), err)

	err = registry.UpdateStreamMetadata(newContext(), "user-1", model.Metadata{"bad": make(chan int)})
	assert.True(t, errors.Is(err, ErrUsage), err)
}

func TestRegistry_Custom_Streams_Table(t *testing.T) {
	st := newStoreTest(t, strategy.NameAggregateStream)

	registry := NewRegistry(st.tc.DB, st.tc.Dialect, WithEventStreamsTable("missing_streams"))

	_, err := registry.FetchStreamNames(newContext(), "", 0, 0)
	assert.True(t, errors.Is(err, ErrStorage), err)

	var storageErr *StorageError
	assert.True(t, errors.As(err, &storageErr))
	assert.Equal(t, StageMetadata, storageErr.Stage)
}
