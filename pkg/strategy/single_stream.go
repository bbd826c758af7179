package strategy

import (
	"fmt"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/sqldialect"
)

type singleStream struct {
	dialect sqldialect.Dialect
}

var _ PersistenceStrategy = singleStream{}

// NewSingleStream stores all instances of an aggregate type in one table,
// versions are unique per _aggregate_id
func NewSingleStream(d sqldialect.Dialect) PersistenceStrategy {
	return singleStream{dialect: d}
}

func (s singleStream) Name() string {
	return NameSingleStream
}

func (s singleStream) Dialect() sqldialect.Dialect {
	return s.dialect
}

func (s singleStream) TableName(stream model.StreamName) string {
	return TableName(stream)
}

func (s singleStream) Schema(table string) []string {
	quoted := s.dialect.Quote(table)

	switch s.dialect {
	case sqldialect.Postgres:
		return []string{
			fmt.Sprintf(`CREATE TABLE %s (
    no BIGSERIAL,
    event_id CHAR(36) NOT NULL,
    event_name VARCHAR(100) NOT NULL,
    payload TEXT NOT NULL,
    metadata JSONB NOT NULL,
    created_at TIMESTAMP(6) NOT NULL,
    aggregate_id VARCHAR(150) NOT NULL,
    aggregate_type VARCHAR(150),
    aggregate_version BIGINT NOT NULL,
    PRIMARY KEY (no),
    UNIQUE (event_id)
)`, quoted),
			fmt.Sprintf(`CREATE UNIQUE INDEX %s ON %s (aggregate_id, aggregate_version)`,
				s.dialect.Quote(table+"_unique_event"), quoted),
			fmt.Sprintf(`CREATE INDEX %s ON %s (aggregate_type, aggregate_id, no)`,
				s.dialect.Quote(table+"_query_aggregate"), quoted),
		}

	case sqldialect.SQLite:
		return []string{
			fmt.Sprintf(`CREATE TABLE %s (
    no INTEGER PRIMARY KEY AUTOINCREMENT,
    event_id TEXT NOT NULL UNIQUE,
    event_name TEXT NOT NULL,
    payload TEXT NOT NULL,
    metadata TEXT NOT NULL,
    created_at TEXT NOT NULL,
    aggregate_id TEXT NOT NULL,
    aggregate_type TEXT,
    aggregate_version INTEGER NOT NULL
)`, quoted),
			fmt.Sprintf(`CREATE UNIQUE INDEX %s ON %s (aggregate_id, aggregate_version)`,
				s.dialect.Quote(table+"_unique_event"), quoted),
			fmt.Sprintf(`CREATE INDEX %s ON %s (aggregate_type, aggregate_id, no)`,
				s.dialect.Quote(table+"_query_aggregate"), quoted),
		}

	default:
		return []string{
			fmt.Sprintf("CREATE TABLE %s (\n"+
				"    `no` BIGINT NOT NULL AUTO_INCREMENT,\n"+
				"    `event_id` CHAR(36) COLLATE utf8mb4_bin NOT NULL,\n"+
				"    `event_name` VARCHAR(100) COLLATE utf8mb4_bin NOT NULL,\n"+
				"    `payload` LONGTEXT COLLATE utf8mb4_bin NOT NULL,\n"+
				"    `metadata` JSON NOT NULL,\n"+
				"    `created_at` DATETIME(6) NOT NULL,\n"+
				"    `aggregate_id` VARCHAR(150) COLLATE utf8mb4_bin NOT NULL,\n"+
				"    `aggregate_type` VARCHAR(150) COLLATE utf8mb4_bin NULL,\n"+
				"    `aggregate_version` BIGINT NOT NULL,\n"+
				"    PRIMARY KEY (`no`),\n"+
				"    UNIQUE KEY `ix_event_id` (`event_id`),\n"+
				"    UNIQUE KEY `ix_unique_event` (`aggregate_id`, `aggregate_version`)\n"+
				") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin", quoted),
			fmt.Sprintf("CREATE INDEX `ix_query_aggregate` ON %s (`aggregate_type`, `aggregate_id`, `no`)", quoted),
		}
	}
}

func (s singleStream) Columns(e model.Event) ([]Column, error) {
	aggregateID, ok := e.AggregateID()
	if !ok {
		return nil, ErrMissingAggregateID
	}

	var aggregateType interface{}
	if t, ok := e.Metadata.String(model.MetadataAggregateType); ok {
		aggregateType = t
	}

	columns, err := eventColumns(e)
	if err != nil {
		return nil, err
	}
	return append(columns,
		Column{Name: "aggregate_id", Value: aggregateID},
		Column{Name: "aggregate_type", Value: aggregateType},
		Column{Name: "aggregate_version", Value: e.Version},
	), nil
}

func (s singleStream) VersionColumn() string {
	return "aggregate_version"
}

func (s singleStream) IndexedMetadataFields() map[string]string {
	return map[string]string{
		model.MetadataAggregateID:      "aggregate_id",
		model.MetadataAggregateType:    "aggregate_type",
		model.MetadataAggregateVersion: "aggregate_version",
	}
}

func (s singleStream) UniquenessScope() []string {
	return []string{"aggregate_id", "aggregate_version"}
}
