package matcher

import (
	"errors"
	"testing"
	"time"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/sqldialect"
	"github.com/stretchr/testify/assert"
)

var singleStreamIndexed = map[string]string{
	model.MetadataAggregateID:      "aggregate_id",
	model.MetadataAggregateType:    "aggregate_type",
	model.MetadataAggregateVersion: "aggregate_version",
}

func TestMatcher_With_Immutable(t *testing.T) {
	m1 := New().With("a", OpEquals, 1)
	m2 := m1.With("b", OpEquals, 2)
	m3 := m1.WithProperty(PropertyEventName, OpEquals, "UserCreated")

	assert.Equal(t, 1, len(m1.Predicates()))
	assert.Equal(t, 2, len(m2.Predicates()))
	assert.Equal(t, "b", m2.Predicates()[1].Field)
	assert.Equal(t, FieldTypeMessageProperty, m3.Predicates()[1].FieldType)
	assert.True(t, Matcher{}.IsEmpty())
	assert.False(t, m1.IsEmpty())
}

func TestParseOperator(t *testing.T) {
	op, err := ParseOperator("nin")
	assert.Equal(t, nil, err)
	assert.Equal(t, OpNotIn, op)

	op, err = ParseOperator("==")
	assert.Equal(t, nil, err)
	assert.Equal(t, OpEquals, op)

	_, err = ParseOperator("like")
	assert.True(t, errors.Is(err, ErrInvalidPredicate))
	assert.True(t, errors.Is(err, model.ErrUsage))
}

func TestValidate(t *testing.T) {
	table := []struct {
		name  string
		p     Predicate
		valid bool
	}{
		{name: "equals", p: Predicate{Field: "name", Operator: OpEquals, Value: "x"}, valid: true},
		{name: "bad-field", p: Predicate{Field: "na'me", Operator: OpEquals, Value: "x"}},
		{name: "empty-field", p: Predicate{Operator: OpEquals, Value: "x"}},
		{name: "in-scalar", p: Predicate{Field: "a", Operator: OpIn, Value: "x"}},
		{name: "in-nil", p: Predicate{Field: "a", Operator: OpIn}},
		{name: "in-slice", p: Predicate{Field: "a", Operator: OpIn, Value: []string{"x"}}, valid: true},
		{name: "nin-array", p: Predicate{Field: "a", Operator: OpNotIn, Value: [2]int{1, 2}}, valid: true},
		{name: "regex-int", p: Predicate{Field: "a", Operator: OpRegex, Value: 1}},
		{name: "nil-value", p: Predicate{Field: "a", Operator: OpGreaterThan}},
		{name: "unknown-op", p: Predicate{Field: "a", Operator: "~~", Value: 1}},
		{
			name: "unknown-property",
			p:    Predicate{Field: "payload", Operator: OpEquals, Value: "x", FieldType: FieldTypeMessageProperty},
		},
	}

	for _, e := range table {
		t.Run(e.name, func(t *testing.T) {
			err := Validate(e.p)
			if e.valid {
				assert.Equal(t, nil, err)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidPredicate), err)
			}
		})
	}
}

func TestBuildWhere_Empty(t *testing.T) {
	where, args, err := BuildWhere(sqldialect.MySQL, nil, Matcher{})
	assert.Equal(t, nil, err)
	assert.Equal(t, "", where)
	assert.Equal(t, 0, len(args))
}

func TestBuildWhere_Indexed_And_Metadata_MySQL(t *testing.T) {
	m := New().
		With(model.MetadataAggregateID, OpEquals, "one").
		With("name", OpNotEquals, "Sandro").
		With("age", OpGreaterThanEquals, 18)

	where, args, err := BuildWhere(sqldialect.MySQL, singleStreamIndexed, m)
	assert.Equal(t, nil, err)
	assert.Equal(t,
		"`aggregate_id` = ? AND "+
			"JSON_UNQUOTE(JSON_EXTRACT(`metadata`, '$.\"name\"')) <> ? AND "+
			"JSON_UNQUOTE(JSON_EXTRACT(`metadata`, '$.\"age\"')) >= ?",
		where)
	assert.Equal(t, []interface{}{"one", "Sandro", 18}, args)
}

func TestBuildWhere_Postgres_Numeric_Cast(t *testing.T) {
	m := New().With("age", OpLowerThan, 30).With("vip", OpEquals, true)

	where, args, err := BuildWhere(sqldialect.Postgres, nil, m)
	assert.Equal(t, nil, err)
	assert.Equal(t, `CAST("metadata"->>'age' AS NUMERIC) < ? AND "metadata"->>'vip' = ?`, where)
	assert.Equal(t, []interface{}{30, "true"}, args)
}

func TestBuildWhere_In_NotIn(t *testing.T) {
	m := New().
		With(model.MetadataAggregateID, OpIn, []string{"one", "two"}).
		With("tag", OpNotIn, []interface{}{"a"}).
		With("never", OpIn, []string{})

	where, args, err := BuildWhere(sqldialect.SQLite, singleStreamIndexed, m)
	assert.Equal(t, nil, err)
	assert.Equal(t,
		`"aggregate_id" IN (?, ?) AND json_extract("metadata", '$."tag"') NOT IN (?) AND 1 = 0`,
		where)
	assert.Equal(t, []interface{}{"one", "two", "a"}, args)
}

func TestBuildWhere_Property(t *testing.T) {
	at := time.Date(2022, 3, 4, 5, 6, 7, 0, time.UTC)
	m := New().
		WithProperty(PropertyEventName, OpEquals, "UserCreated").
		WithProperty(PropertyCreatedAt, OpGreaterThan, at)

	where, args, err := BuildWhere(sqldialect.MySQL, nil, m)
	assert.Equal(t, nil, err)
	assert.Equal(t, "`event_name` = ? AND `created_at` > ?", where)
	assert.Equal(t, []interface{}{"UserCreated", "2022-03-04 05:06:07.000000"}, args)
}

func TestBuildWhere_Regex(t *testing.T) {
	m := New().With("name", OpRegex, "^San")

	where, args, err := BuildWhere(sqldialect.Postgres, nil, m)
	assert.Equal(t, nil, err)
	assert.Equal(t, `"metadata"->>'name' ~ ?`, where)
	assert.Equal(t, []interface{}{"^San"}, args)

	where, args, err = BuildWhere(sqldialect.SQLite, nil, m)
	assert.Equal(t, nil, err)
	assert.Equal(t, `json_extract("metadata", '$."name"') REGEXP ?`, where)
	assert.Equal(t, []interface{}{"^San"}, args)

	_, _, err = BuildWhere(sqldialect.Dialect(0), nil, m)
	assert.True(t, errors.Is(err, sqldialect.ErrUnsupported))
	assert.True(t, errors.Is(err, model.ErrUsage))
}

func TestBuildWhere_Invalid(t *testing.T) {
	m := New().With("a", OpIn, 1)
	_, _, err := BuildWhere(sqldialect.MySQL, nil, m)
	assert.True(t, errors.Is(err, ErrInvalidPredicate))
}
