package strategy

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/sqldialect"
)

const (
	// NameAggregateStream one table per aggregate instance
	NameAggregateStream = "aggregate_stream"

	// NameSingleStream one table per aggregate type
	NameSingleStream = "single_stream"
)

// ErrMissingAggregateID ...
var ErrMissingAggregateID = fmt.Errorf("%w: missing %s metadata", model.ErrUsage, model.MetadataAggregateID)

// Column is a single column value of an event row
type Column struct {
	Name  string
	Value interface{}
}

// PersistenceStrategy maps streams to physical tables, strategies are stateless
type PersistenceStrategy interface {
	Name() string
	Dialect() sqldialect.Dialect

	// TableName is deterministic and always a valid identifier
	TableName(stream model.StreamName) string

	// Schema returns the DDL statements for the table, the first one creates the table itself
	Schema(table string) []string

	// Columns returns the insert columns of the event, always in the same order
	Columns(e model.Event) ([]Column, error)

	// VersionColumn holds the caller assigned version
	VersionColumn() string

	// IndexedMetadataFields maps metadata keys to the columns storing them
	IndexedMetadataFields() map[string]string

	// UniquenessScope lists the columns of the version uniqueness constraint
	UniquenessScope() []string
}

// New selects a strategy by name
func New(name string, d sqldialect.Dialect) (PersistenceStrategy, error) {
	switch name {
	case NameAggregateStream:
		return NewAggregateStream(d), nil
	case NameSingleStream:
		return NewSingleStream(d), nil
	default:
		return nil, fmt.Errorf("unknown persistence strategy %q", name)
	}
}

// TableName returns "_" followed by the sha1 hex of the stream name
func TableName(stream model.StreamName) string {
	sum := sha1.Sum([]byte(stream))
	return "_" + hex.EncodeToString(sum[:])
}

func eventColumns(e model.Event) ([]Column, error) {
	metadata, err := e.Metadata.Marshal()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUsage, err)
	}
	return []Column{
		{Name: "event_id", Value: e.ID.String()},
		{Name: "event_name", Value: e.Name},
		{Name: "payload", Value: string(e.Payload)},
		{Name: "metadata", Value: string(metadata)},
		{Name: "created_at", Value: sqldialect.FormatTime(e.CreatedAt)},
	}, nil
}
