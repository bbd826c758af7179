//go:build integration

package eventstore

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/integration"
	"github.com/QuangTung97/eventstore/pkg/matcher"
	"github.com/QuangTung97/eventstore/pkg/strategy"
	"github.com/QuangTung97/eventstore/pkg/writelock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type integrationScenario func(t *testing.T, tc *integration.TestCase)

func runOnServers(t *testing.T, scenario integrationScenario) {
	t.Run("mysql", func(t *testing.T) {
		tc := integration.NewTestCase()
		tc.Reset()
		t.Cleanup(tc.Reset)
		scenario(t, tc)
	})

	t.Run("postgres", func(t *testing.T) {
		tc := integration.NewPostgresTestCase(t)
		scenario(t, tc)
	})
}

func openIntegrationStore(t *testing.T, tc *integration.TestCase, strategyName string, options ...Option) *Store {
	s, err := strategy.New(strategyName, tc.Dialect)
	require.NoError(t, err)

	store, err := Open(newContext(), tc.DB, s, options...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_Integration_Append_Load(t *testing.T) {
	runOnServers(t, func(t *testing.T, tc *integration.TestCase) {
		store := openIntegrationStore(t, tc, strategy.NameAggregateStream, WithLoadBatchSize(3))

		var events []model.Event
		for i := int64(1); i <= 10; i++ {
			events = append(events, newEvent(i, "UserRenamed", fmt.Sprintf(`{"i":%d}`, i)).
				WithMetadata("even", i%2 == 0))
		}
		require.NoError(t, store.Create(newContext(), model.Stream{Name: "user-1", Events: events[:4]}))
		require.NoError(t, store.AppendTo(newContext(), "user-1", events[4:]))

		it, err := store.Load(newContext(), "user-1", 1, 0, matcher.Matcher{})
		require.NoError(t, err)
		loaded, err := it.All(newContext())
		assert.Equal(t, nil, err)
		assert.Equal(t, events, loaded)

		it, err = store.LoadReverse(newContext(), "user-1", 0, 0, matcher.New().With("even", matcher.OpEquals, true))
		require.NoError(t, err)
		loaded, err = it.All(newContext())
		assert.Equal(t, nil, err)
		assert.Equal(t, 5, len(loaded))
		assert.Equal(t, int64(10), loaded[0].Version)

		err = store.AppendTo(newContext(), "user-1", []model.Event{newEvent(10, "UserRenamed", "{}")})
		assert.True(t, errors.Is(err, ErrConcurrency), err)
	})
}

func TestStore_Integration_Single_Stream(t *testing.T) {
	runOnServers(t, func(t *testing.T, tc *integration.TestCase) {
		store := openIntegrationStore(t, tc, strategy.NameSingleStream)

		const name = `Prooph\Model\User`
		require.NoError(t, store.Create(newContext(), model.Stream{Name: name}))

		for i := int64(1); i <= 5; i++ {
			require.NoError(t, store.AppendTo(newContext(), name, []model.Event{newAggregateEvent("one", i, "{}")}))
			require.NoError(t, store.AppendTo(newContext(), name, []model.Event{newAggregateEvent("two", i, "{}")}))
		}

		err := store.AppendTo(newContext(), name, []model.Event{newAggregateEvent("one", 3, "{}")})
		assert.True(t, errors.Is(err, ErrConcurrency), err)

		it, err := store.Load(newContext(), name, 1, 0,
			matcher.New().With(model.MetadataAggregateID, matcher.OpEquals, "two"))
		require.NoError(t, err)
		loaded, err := it.All(newContext())
		assert.Equal(t, nil, err)
		assert.Equal(t, 5, len(loaded))
	})
}

func TestStore_Integration_Create_Failure_Cleanup(t *testing.T) {
	runOnServers(t, func(t *testing.T, tc *integration.TestCase) {
		s, err := strategy.New(strategy.NameAggregateStream, tc.Dialect)
		require.NoError(t, err)

		table := s.TableName("user-1")
		for _, stmt := range s.Schema(table) {
			tc.DB.MustExec(stmt)
		}
		t.Cleanup(func() {
			tc.DB.MustExec(fmt.Sprintf("DROP TABLE IF EXISTS %s", tc.Dialect.Quote(table)))
		})

		store := openIntegrationStore(t, tc, strategy.NameAggregateStream)

		err = store.Create(newContext(), model.Stream{Name: "user-1"})
		assert.True(t, errors.Is(err, ErrStorage), err)

		var storageErr *StorageError
		assert.True(t, errors.As(err, &storageErr))
		assert.Equal(t, StageSchemaCreation, storageErr.Stage)

		exists, err := store.HasStream(newContext(), "user-1")
		assert.Equal(t, nil, err)
		assert.Equal(t, false, exists)

		var count int
		err = tc.DB.Get(&count, fmt.Sprintf("SELECT COUNT(*) FROM %s", tc.Dialect.Quote(table)))
		assert.Equal(t, nil, err)
		assert.Equal(t, 0, count)
	})
}

func TestStore_Integration_Concurrent_Writers(t *testing.T) {
	runOnServers(t, func(t *testing.T, tc *integration.TestCase) {
		require.NoError(t, openIntegrationStore(t, tc, strategy.NameAggregateStream).
			Create(newContext(), model.Stream{Name: "user-1"}))

		const numWriters = 5
		stores := make([]*Store, numWriters)
		for i := range stores {
			stores[i] = openIntegrationStore(t, tc, strategy.NameAggregateStream)
		}

		errs := make([]error, numWriters)
		var wg sync.WaitGroup
		wg.Add(numWriters)
		for i := range stores {
			i := i
			go func() {
				defer wg.Done()
				errs[i] = stores[i].AppendTo(newContext(), "user-1", []model.Event{
					newEvent(1, "UserCreated", "{}"),
					newEvent(2, "UserRenamed", "{}"),
				})
			}()
		}
		wg.Wait()

		success := 0
		for _, err := range errs {
			if err == nil {
				success++
				continue
			}
			assert.True(t, errors.Is(err, ErrConcurrency), err)
		}
		assert.Equal(t, 1, success)

		it, err := stores[0].Load(newContext(), "user-1", 1, 0, matcher.Matcher{})
		require.NoError(t, err)
		loaded, err := it.All(newContext())
		assert.Equal(t, nil, err)
		assert.Equal(t, 2, len(loaded))
	})
}

func TestStore_Integration_Lock_Timeout_Keeps_Connection(t *testing.T) {
	runOnServers(t, func(t *testing.T, tc *integration.TestCase) {
		store := openIntegrationStore(t, tc, strategy.NameAggregateStream,
			WithWriteLock(advisoryWriteLock(tc.Dialect, 100*time.Millisecond)))
		require.NoError(t, store.Create(newContext(), model.Stream{Name: "user-1"}))

		holder, err := tc.DB.Connx(newContext())
		require.NoError(t, err)
		defer func() { _ = holder.Close() }()

		holderLock := advisoryWriteLock(tc.Dialect, 0)
		lockName := writelock.Name(store.strategy.TableName("user-1"))
		ok, err := holderLock.Acquire(newContext(), holder, lockName)
		require.NoError(t, err)
		require.True(t, ok)

		err = store.AppendTo(newContext(), "user-1", []model.Event{newEvent(1, "UserCreated", "{}")})
		assert.True(t, errors.Is(err, ErrConcurrency), err)

		require.NoError(t, holderLock.Release(newContext(), holder, lockName))

		err = store.AppendTo(newContext(), "user-1", []model.Event{newEvent(1, "UserCreated", "{}")})
		assert.Equal(t, nil, err)

		it, err := store.Load(newContext(), "user-1", 1, 0, matcher.Matcher{})
		require.NoError(t, err)
		loaded, err := it.All(newContext())
		assert.Equal(t, nil, err)
		assert.Equal(t, 1, len(loaded))
	})
}
