package strategy

import (
	"fmt"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/sqldialect"
)

type aggregateStream struct {
	dialect sqldialect.Dialect
}

var _ PersistenceStrategy = aggregateStream{}

// NewAggregateStream stores every aggregate instance in its own table, version is the position
func NewAggregateStream(d sqldialect.Dialect) PersistenceStrategy {
	return aggregateStream{dialect: d}
}

func (s aggregateStream) Name() string {
	return NameAggregateStream
}

func (s aggregateStream) Dialect() sqldialect.Dialect {
	return s.dialect
}

func (s aggregateStream) TableName(stream model.StreamName) string {
	return TableName(stream)
}

func (s aggregateStream) Schema(table string) []string {
	switch s.dialect {
	case sqldialect.Postgres:
		return []string{fmt.Sprintf(`CREATE TABLE %s (
    no BIGINT NOT NULL,
    event_id CHAR(36) NOT NULL,
    event_name VARCHAR(100) NOT NULL,
    payload TEXT NOT NULL,
    metadata JSONB NOT NULL,
    created_at TIMESTAMP(6) NOT NULL,
    PRIMARY KEY (no),
    UNIQUE (event_id)
)`, s.dialect.Quote(table))}

	case sqldialect.SQLite:
		return []string{fmt.Sprintf(`CREATE TABLE %s (
    no INTEGER NOT NULL PRIMARY KEY,
    event_id TEXT NOT NULL UNIQUE,
    event_name TEXT NOT NULL,
    payload TEXT NOT NULL,
    metadata TEXT NOT NULL,
    created_at TEXT NOT NULL
)`, s.dialect.Quote(table))}

	default:
		return []string{fmt.Sprintf("CREATE TABLE %s (\n"+
			"    `no` BIGINT NOT NULL,\n"+
			"    `event_id` CHAR(36) COLLATE utf8mb4_bin NOT NULL,\n"+
			"    `event_name` VARCHAR(100) COLLATE utf8mb4_bin NOT NULL,\n"+
			"    `payload` LONGTEXT COLLATE utf8mb4_bin NOT NULL,\n"+
			"    `metadata` JSON NOT NULL,\n"+
			"    `created_at` DATETIME(6) NOT NULL,\n"+
			"    PRIMARY KEY (`no`),\n"+
			"    UNIQUE KEY `ix_event_id` (`event_id`)\n"+
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin", s.dialect.Quote(table))}
	}
}

func (s aggregateStream) Columns(e model.Event) ([]Column, error) {
	columns, err := eventColumns(e)
	if err != nil {
		return nil, err
	}
	return append([]Column{{Name: "no", Value: e.Version}}, columns...), nil
}

func (s aggregateStream) VersionColumn() string {
	return "no"
}

func (s aggregateStream) IndexedMetadataFields() map[string]string {
	return map[string]string{
		model.MetadataAggregateVersion: "no",
	}
}

func (s aggregateStream) UniquenessScope() []string {
	return []string{"no"}
}
