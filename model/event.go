package model

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable record appended to a stream
type Event struct {
	ID       uuid.UUID
	Name     string
	Payload  []byte
	Metadata Metadata

	// Version is assigned by the caller, the store only enforces its uniqueness
	Version int64

	CreatedAt time.Time
}

// WithMetadata returns a copy of the event with the key set
func (e Event) WithMetadata(key string, value interface{}) Event {
	e.Metadata = e.Metadata.With(key, value)
	return e
}

// AggregateID returns the _aggregate_id metadata as string
func (e Event) AggregateID() (string, bool) {
	return e.Metadata.String(MetadataAggregateID)
}

// Normalize fills the event id and creation time when they are missing
func (e Event) Normalize(now time.Time) Event {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.CreatedAt = e.CreatedAt.UTC()
	if e.Metadata == nil {
		e.Metadata = Metadata{}
	}
	return e
}
