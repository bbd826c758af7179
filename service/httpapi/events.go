package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/matcher"
	"github.com/QuangTung97/eventstore/service/eventstore"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventJSON is the wire form of an event, payload is raw JSON
type EventJSON struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Metadata  model.Metadata  `json:"metadata,omitempty"`
	Version   int64           `json:"version"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
}

type eventsResponse struct {
	Events []EventJSON `json:"events"`
}

// DecodeEvents converts wire events, a missing id or creation time is filled by the store
func DecodeEvents(input []EventJSON) ([]model.Event, error) {
	events := make([]model.Event, 0, len(input))
	for i, e := range input {
		event := model.Event{
			Name:     e.Name,
			Payload:  []byte(e.Payload),
			Metadata: e.Metadata,
			Version:  e.Version,
		}
		if e.ID != "" {
			id, err := uuid.Parse(e.ID)
			if err != nil {
				return nil, badRequest("event %d: invalid id %q", i, e.ID)
			}
			event.ID = id
		}
		if e.CreatedAt != nil {
			event.CreatedAt = *e.CreatedAt
		}
		events = append(events, event)
	}
	return events, nil
}

// EncodeEvent ...
func EncodeEvent(e model.Event) EventJSON {
	createdAt := e.CreatedAt

	payload := json.RawMessage(e.Payload)
	if !json.Valid(e.Payload) {
		// payloads not written through this api may be any text
		payload, _ = json.Marshal(string(e.Payload))
	}

	return EventJSON{
		ID:        e.ID.String(),
		Name:      e.Name,
		Payload:   payload,
		Metadata:  e.Metadata,
		Version:   e.Version,
		CreatedAt: &createdAt,
	}
}

// parsePredicate parses "field,op,value", value is decoded as JSON when possible, else kept as a string
func parsePredicate(s string) (string, matcher.Operator, interface{}, error) {
	parts := strings.SplitN(s, ",", 3)
	if len(parts) != 3 {
		return "", "", nil, badRequest("invalid predicate %q, expected field,op,value", s)
	}

	op, err := matcher.ParseOperator(parts[1])
	if err != nil {
		return "", "", nil, err
	}

	var value interface{}
	if err := json.Unmarshal([]byte(parts[2]), &value); err != nil {
		value = parts[2]
	}
	return parts[0], op, value, nil
}

// ParseMatcher builds a matcher from "field,op,value" predicates on metadata and on message properties
func ParseMatcher(metadata []string, properties []string) (matcher.Matcher, error) {
	m := matcher.New()
	for _, s := range metadata {
		field, op, value, err := parsePredicate(s)
		if err != nil {
			return matcher.Matcher{}, err
		}
		m = m.With(field, op, value)
	}
	for _, s := range properties {
		field, op, value, err := parsePredicate(s)
		if err != nil {
			return matcher.Matcher{}, err
		}
		m = m.WithProperty(field, op, value)
	}
	return m, nil
}

func (s *Server) handleAppendEvents(c *gin.Context) {
	var input []EventJSON
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, badRequest("invalid body: %v", err))
		return
	}

	events, err := DecodeEvents(input)
	if err != nil {
		writeError(c, err)
		return
	}

	s.withStore(c, func(ctx context.Context, store eventstore.IEventStore) error {
		if err := store.AppendTo(ctx, streamName(c), events); err != nil {
			return err
		}
		c.Status(http.StatusNoContent)
		return nil
	})
}

func (s *Server) handleLoadEvents(c *gin.Context) {
	var fromNumber int64
	var count int
	var err error

	if v := c.Query("from"); v != "" {
		fromNumber, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(c, badRequest("invalid from %q", v))
			return
		}
	}
	if v := c.Query("count"); v != "" {
		count, err = strconv.Atoi(v)
		if err != nil {
			writeError(c, badRequest("invalid count %q", v))
			return
		}
	}
	reverse := c.Query("reverse") == "true"

	m, err := ParseMatcher(c.QueryArray("match"), c.QueryArray("property"))
	if err != nil {
		writeError(c, err)
		return
	}

	s.withStore(c, func(ctx context.Context, store eventstore.IEventStore) error {
		var it *eventstore.EventIterator
		var err error
		if reverse {
			it, err = store.LoadReverse(ctx, streamName(c), fromNumber, count, m)
		} else {
			it, err = store.Load(ctx, streamName(c), fromNumber, count, m)
		}
		if err != nil {
			return err
		}

		resp := eventsResponse{Events: []EventJSON{}}
		for it.Next(ctx) {
			resp.Events = append(resp.Events, EncodeEvent(it.Event()))
		}
		if err := it.Err(); err != nil {
			return err
		}

		c.JSON(http.StatusOK, resp)
		return nil
	})
}
