package strategy

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/sqldialect"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newEvent(version int64, metadata model.Metadata) model.Event {
	return model.Event{
		ID:        uuid.MustParse("1f6c3a76-4a3b-4e5f-9d3c-2b7a1c0e9f11"),
		Name:      "UserCreated",
		Payload:   []byte(`{"name":"Sandro"}`),
		Metadata:  metadata,
		Version:   version,
		CreatedAt: time.Date(2022, 5, 7, 3, 0, 0, 0, time.UTC),
	}
}

func columnNames(columns []Column) []string {
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, c.Name)
	}
	return names
}

func TestTableName(t *testing.T) {
	name := TableName("Prooph\\Model\\User")
	assert.Equal(t, 41, len(name))
	assert.True(t, strings.HasPrefix(name, "_"))
	assert.Equal(t, name, TableName("Prooph\\Model\\User"))
	assert.NotEqual(t, name, TableName("Prooph\\Model\\Order"))

	long := TableName(model.StreamName(strings.Repeat("a;DROP TABLE x;", 100)))
	assert.Equal(t, 41, len(long))

	assert.Equal(t, "_d5ecfb11836d0806d18f2fd4c815d970bdc54ddc", TableName("user-123"))
}

func TestNew(t *testing.T) {
	s, err := New(NameAggregateStream, sqldialect.MySQL)
	assert.Equal(t, nil, err)
	assert.Equal(t, NameAggregateStream, s.Name())
	assert.Equal(t, sqldialect.MySQL, s.Dialect())

	s, err = New(NameSingleStream, sqldialect.Postgres)
	assert.Equal(t, nil, err)
	assert.Equal(t, NameSingleStream, s.Name())
	assert.Equal(t, sqldialect.Postgres, s.Dialect())

	_, err = New("per_event", sqldialect.MySQL)
	assert.Error(t, err)
}

func TestAggregateStream_Columns(t *testing.T) {
	s := NewAggregateStream(sqldialect.MySQL)

	columns, err := s.Columns(newEvent(3, model.Metadata{"user": "one"}))
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"no", "event_id", "event_name", "payload", "metadata", "created_at"}, columnNames(columns))
	assert.Equal(t, int64(3), columns[0].Value)
	assert.Equal(t, "1f6c3a76-4a3b-4e5f-9d3c-2b7a1c0e9f11", columns[1].Value)
	assert.Equal(t, "UserCreated", columns[2].Value)
	assert.Equal(t, `{"name":"Sandro"}`, columns[3].Value)
	assert.Equal(t, `{"user":"one"}`, columns[4].Value)
	assert.Equal(t, "2022-05-07 03:00:00.000000", columns[5].Value)

	assert.Equal(t, "no", s.VersionColumn())
	assert.Equal(t, []string{"no"}, s.UniquenessScope())
	assert.Equal(t, map[string]string{"_aggregate_version": "no"}, s.IndexedMetadataFields())
}

func TestAggregateStream_Columns_Invalid_Metadata(t *testing.T) {
	s := NewAggregateStream(sqldialect.SQLite)

	_, err := s.Columns(newEvent(1, model.Metadata{"tags": []string{"a"}}))
	assert.True(t, errors.Is(err, model.ErrUsage))
}

func TestAggregateStream_Schema(t *testing.T) {
	table := TableName("user-123")

	for _, d := range []sqldialect.Dialect{sqldialect.MySQL, sqldialect.Postgres, sqldialect.SQLite} {
		schema := NewAggregateStream(d).Schema(table)
		assert.Equal(t, 1, len(schema), d.String())
		assert.True(t, strings.HasPrefix(schema[0], "CREATE TABLE "+d.Quote(table)), d.String())
		assert.Contains(t, schema[0], "PRIMARY KEY", d.String())
	}
}

func TestSingleStream_Columns(t *testing.T) {
	s := NewSingleStream(sqldialect.Postgres)

	columns, err := s.Columns(newEvent(1, model.Metadata{
		model.MetadataAggregateID:   "one",
		model.MetadataAggregateType: "user",
	}))
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{
		"event_id", "event_name", "payload", "metadata", "created_at",
		"aggregate_id", "aggregate_type", "aggregate_version",
	}, columnNames(columns))
	assert.Equal(t, "one", columns[5].Value)
	assert.Equal(t, "user", columns[6].Value)
	assert.Equal(t, int64(1), columns[7].Value)

	columns, err = s.Columns(newEvent(2, model.Metadata{model.MetadataAggregateID: "two"}))
	assert.Equal(t, nil, err)
	assert.Equal(t, nil, columns[6].Value)

	assert.Equal(t, "aggregate_version", s.VersionColumn())
	assert.Equal(t, []string{"aggregate_id", "aggregate_version"}, s.UniquenessScope())
	assert.Equal(t, "aggregate_id", s.IndexedMetadataFields()[model.MetadataAggregateID])
}

func TestSingleStream_Columns_Missing_Aggregate_ID(t *testing.T) {
	s := NewSingleStream(sqldialect.MySQL)

	_, err := s.Columns(newEvent(1, nil))
	assert.Equal(t, ErrMissingAggregateID, err)
	assert.True(t, errors.Is(err, model.ErrUsage))

	_, err = s.Columns(newEvent(1, model.Metadata{model.MetadataAggregateID: ""}))
	assert.Equal(t, ErrMissingAggregateID, err)
}

func TestSingleStream_Schema(t *testing.T) {
	table := TableName("Prooph\\Model\\User")

	schema := NewSingleStream(sqldialect.MySQL).Schema(table)
	assert.Equal(t, 2, len(schema))
	assert.Contains(t, schema[0], "UNIQUE KEY `ix_unique_event` (`aggregate_id`, `aggregate_version`)")

	schema = NewSingleStream(sqldialect.Postgres).Schema(table)
	assert.Equal(t, 3, len(schema))
	assert.Equal(t,
		`CREATE UNIQUE INDEX "`+table+`_unique_event" ON "`+table+`" (aggregate_id, aggregate_version)`,
		schema[1])

	schema = NewSingleStream(sqldialect.SQLite).Schema(table)
	assert.Equal(t, 3, len(schema))
	assert.True(t, strings.HasPrefix(schema[0], `CREATE TABLE "`+table+`"`))
}
