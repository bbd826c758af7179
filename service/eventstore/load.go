package eventstore

import (
	"context"
	"fmt"
	"math"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/matcher"
	"github.com/QuangTung97/eventstore/pkg/sqldialect"
	"github.com/google/uuid"
)

type eventRow struct {
	No        int64           `db:"no"`
	Version   int64           `db:"version"`
	EventID   string          `db:"event_id"`
	EventName string          `db:"event_name"`
	Payload   string          `db:"payload"`
	Metadata  string          `db:"metadata"`
	CreatedAt sqldialect.Time `db:"created_at"`
}

func (r eventRow) toEvent() (model.Event, error) {
	id, err := uuid.Parse(r.EventID)
	if err != nil {
		return model.Event{}, fmt.Errorf("event %d: %w", r.No, err)
	}
	metadata, err := model.UnmarshalMetadata([]byte(r.Metadata))
	if err != nil {
		return model.Event{}, fmt.Errorf("event %d: %w", r.No, err)
	}
	return model.Event{
		ID:        id,
		Name:      r.EventName,
		Payload:   []byte(r.Payload),
		Metadata:  metadata,
		Version:   r.Version,
		CreatedAt: r.CreatedAt.Time,
	}, nil
}

type loadQuery struct {
	name    model.StreamName
	table   string
	where   string
	args    []interface{}
	reverse bool
	batch   int
}

// EventIterator is a lazy, finite sequence of events ordered by position.
// It fetches pages on the session of its store and must not outlive it.
type EventIterator struct {
	store *Store
	query loadQuery

	position  int64
	remaining int // negative when unbounded

	buffer    []eventRow
	exhausted bool

	current model.Event
	err     error
}

// Load returns events with position >= fromNumber in ascending order,
// count <= 0 means no limit, the zero matcher matches every event
func (s *Store) Load(
	ctx context.Context, name model.StreamName, fromNumber int64, count int, m matcher.Matcher,
) (*EventIterator, error) {
	if fromNumber < 1 {
		fromNumber = 1
	}
	return s.load(ctx, name, fromNumber, count, m, false)
}

// LoadReverse returns events with position <= fromNumber in descending order,
// fromNumber <= 0 starts from the last event
func (s *Store) LoadReverse(
	ctx context.Context, name model.StreamName, fromNumber int64, count int, m matcher.Matcher,
) (*EventIterator, error) {
	if fromNumber < 1 {
		fromNumber = math.MaxInt64
	}
	return s.load(ctx, name, fromNumber, count, m, true)
}

func (s *Store) load(
	ctx context.Context, name model.StreamName, fromNumber int64, count int, m matcher.Matcher, reverse bool,
) (*EventIterator, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	where, args, err := matcher.BuildWhere(s.dialect, s.strategy.IndexedMetadataFields(), m)
	if err != nil {
		return nil, err
	}

	remaining := -1
	if count > 0 {
		remaining = count
	}

	it := &EventIterator{
		store: s,
		query: loadQuery{
			name:    name,
			table:   s.strategy.TableName(name),
			where:   where,
			args:    args,
			reverse: reverse,
			batch:   s.opts.loadBatchSize,
		},
		remaining: remaining,
	}

	// position is an exclusive bound
	if reverse {
		it.position = fromNumber
		if fromNumber < math.MaxInt64 {
			it.position++
		}
	} else {
		it.position = fromNumber - 1
	}

	// the first page is fetched right away, a missing stream fails here
	if err := it.fetch(ctx); err != nil {
		return nil, err
	}
	return it, nil
}

func (q loadQuery) sql(d sqldialect.Dialect, versionColumn string, position int64, limit int) (string, []interface{}) {
	op, order := ">", "ASC"
	if q.reverse {
		op, order = "<", "DESC"
	}

	no := d.Quote("no")
	query := fmt.Sprintf(
		"SELECT %s, %s AS version, event_id, event_name, payload, metadata, created_at FROM %s WHERE %s %s ?",
		no, d.Quote(versionColumn), d.Quote(q.table), no, op,
	)

	args := []interface{}{position}
	if q.where != "" {
		query += " AND " + q.where
		args = append(args, q.args...)
	}
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT %d", no, order, limit)
	return d.Rebind(query), args
}

func (it *EventIterator) fetch(ctx context.Context) error {
	limit := it.query.batch
	if it.remaining >= 0 && it.remaining < limit {
		limit = it.remaining
	}
	if limit == 0 {
		it.exhausted = true
		return nil
	}

	s := it.store
	query, args := it.query.sql(s.dialect, s.strategy.VersionColumn(), it.position, limit)

	var rows []eventRow
	err := s.session().SelectContext(ctx, &rows, query, args...)
	if err != nil {
		if sqldialect.IsTableNotFound(err) {
			return fmt.Errorf("%w: %q", ErrStreamNotFound, it.query.name)
		}
		return newStorageError(StageLoad, err)
	}

	if len(rows) < limit {
		it.exhausted = true
	}
	if len(rows) > 0 {
		it.position = rows[len(rows)-1].No
	}
	if it.remaining >= 0 {
		it.remaining -= len(rows)
	}
	it.buffer = rows
	return nil
}

// Next advances to the next event, false at the end of the sequence or on error
func (it *EventIterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}

	if len(it.buffer) == 0 {
		if it.exhausted {
			return false
		}
		if err := it.fetch(ctx); err != nil {
			it.err = err
			return false
		}
		if len(it.buffer) == 0 {
			return false
		}
	}

	row := it.buffer[0]
	it.buffer = it.buffer[1:]

	event, err := row.toEvent()
	if err != nil {
		it.err = newStorageError(StageLoad, err)
		return false
	}
	it.current = event
	return true
}

// Event returns the current event
func (it *EventIterator) Event() model.Event {
	return it.current
}

// Err ...
func (it *EventIterator) Err() error {
	return it.err
}

// All consumes the remaining events
func (it *EventIterator) All(ctx context.Context) ([]model.Event, error) {
	var result []model.Event
	for it.Next(ctx) {
		result = append(result, it.Event())
	}
	return result, it.Err()
}
