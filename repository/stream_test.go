package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/integration"
	"github.com/QuangTung97/eventstore/pkg/sqldialect"
	"github.com/QuangTung97/eventstore/pkg/strategy"
	"github.com/stretchr/testify/assert"
)

func newContext() context.Context {
	return context.Background()
}

type streamTest struct {
	tc       *integration.TestCase
	provider Provider
	repo     StreamRepository
}

func newStreamTest(t *testing.T) *streamTest {
	tc := integration.NewSQLiteTestCase(t)
	return &streamTest{
		tc:       tc,
		provider: NewProvider(tc.DB),
		repo:     NewStreamRepository(tc.Dialect, DefaultEventStreamsTable),
	}
}

func newStreamRow(name string) StreamRow {
	row := StreamRow{
		RealStreamName: name,
		StreamName:     strategy.TableName(model.StreamName(name)),
		Metadata:       sql.NullString{Valid: true, String: "{}"},
	}
	for i, c := range name {
		if c == '-' && i > 0 {
			row.Category = sql.NullString{Valid: true, String: name[:i]}
			break
		}
	}
	return row
}

func TestStreamRepository_Insert_Find_Delete(t *testing.T) {
	st := newStreamTest(t)
	ctx := st.provider.Readonly(newContext())

	err := st.repo.Insert(ctx, newStreamRow("user-123"))
	assert.Equal(t, nil, err)

	err = st.repo.Insert(ctx, newStreamRow("user-123"))
	assert.True(t, sqldialect.IsUniqueViolation(err), err)

	row, err := st.repo.Find(ctx, "user-123")
	assert.Equal(t, nil, err)
	assert.Equal(t, NullStreamRow{
		Valid: true,
		Stream: StreamRow{
			No:             1,
			RealStreamName: "user-123",
			StreamName:     "_d5ecfb11836d0806d18f2fd4c815d970bdc54ddc",
			Metadata:       sql.NullString{Valid: true, String: "{}"},
			Category:       sql.NullString{Valid: true, String: "user"},
		},
	}, row)

	row, err = st.repo.Find(ctx, "user-456")
	assert.Equal(t, nil, err)
	assert.Equal(t, false, row.Valid)

	affected, err := st.repo.Delete(ctx, "user-123")
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(1), affected)

	affected, err = st.repo.Delete(ctx, "user-123")
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(0), affected)
}

func TestStreamRepository_UpdateMetadata(t *testing.T) {
	st := newStreamTest(t)
	ctx := st.provider.Readonly(newContext())

	_ = st.repo.Insert(ctx, newStreamRow("user-1"))

	affected, err := st.repo.UpdateMetadata(ctx, "user-1", `{"owner":"me"}`)
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(1), affected)

	affected, err = st.repo.UpdateMetadata(ctx, "user-2", `{}`)
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(0), affected)

	row, _ := st.repo.Find(ctx, "user-1")
	assert.Equal(t, `{"owner":"me"}`, row.Stream.Metadata.String)
}

func TestStreamRepository_Fetch_Names(t *testing.T) {
	st := newStreamTest(t)
	ctx := st.provider.Readonly(newContext())

	for _, name := range []string{"user-2", "user-1", "order-1", "audit", "us_er-1"} {
		assert.Equal(t, nil, st.repo.Insert(ctx, newStreamRow(name)))
	}

	names, err := st.repo.FetchStreamNames(ctx, "", 0, 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"audit", "order-1", "us_er-1", "user-1", "user-2"}, names)

	names, err = st.repo.FetchStreamNames(ctx, "user", 0, 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"user-1", "user-2"}, names)

	names, err = st.repo.FetchStreamNames(ctx, "us_", 0, 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"us_er-1"}, names)

	names, err = st.repo.FetchStreamNames(ctx, "", 2, 1)
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"order-1", "us_er-1"}, names)

	categories, err := st.repo.FetchCategoryNames(ctx, "", 0, 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"order", "us_er", "user"}, categories)

	categories, err = st.repo.FetchCategoryNames(ctx, "o", 10, 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"order"}, categories)
}

func TestStreamRepository_Tables(t *testing.T) {
	st := newStreamTest(t)
	ctx := st.provider.Readonly(newContext())

	table := strategy.TableName("user-1")
	s := strategy.NewAggregateStream(sqldialect.SQLite)

	exists, err := st.repo.TableExists(ctx, table)
	assert.Equal(t, nil, err)
	assert.Equal(t, false, exists)

	n, err := st.repo.CreateTable(ctx, s.Schema(table))
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, n)

	exists, err = st.repo.TableExists(ctx, table)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, exists)

	n, err = st.repo.CreateTable(ctx, s.Schema(table))
	assert.True(t, sqldialect.IsTableExists(err), err)
	assert.Equal(t, 0, n)

	assert.Equal(t, nil, st.repo.DropTable(ctx, table))
	assert.Equal(t, nil, st.repo.DropTable(ctx, table))

	exists, _ = st.repo.TableExists(ctx, table)
	assert.Equal(t, false, exists)
}

func TestProvider_Transact(t *testing.T) {
	st := newStreamTest(t)

	err := st.provider.Transact(newContext(), func(ctx context.Context) error {
		return st.provider.Transact(ctx, func(ctx context.Context) error {
			return st.repo.Insert(ctx, newStreamRow("user-1"))
		})
	})
	assert.Equal(t, nil, err)

	err = st.provider.Transact(newContext(), func(ctx context.Context) error {
		if err := st.repo.Insert(ctx, newStreamRow("user-2")); err != nil {
			return err
		}
		return errors.New("some error")
	})
	assert.Equal(t, errors.New("some error"), err)

	assert.Panics(t, func() {
		_ = st.provider.Transact(newContext(), func(ctx context.Context) error {
			_ = st.repo.Insert(ctx, newStreamRow("user-3"))
			panic("boom")
		})
	})

	names, err := st.repo.FetchStreamNames(st.provider.Readonly(newContext()), "", 0, 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"user-1"}, names)
}

func TestGetExecutor_Missing(t *testing.T) {
	assert.Panics(t, func() {
		GetExecutor(newContext())
	})
}
