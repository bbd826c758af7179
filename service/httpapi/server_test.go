package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/QuangTung97/eventstore/pkg/integration"
	"github.com/QuangTung97/eventstore/pkg/strategy"
	"github.com/QuangTung97/eventstore/service/eventstore"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

type serverTest struct {
	server   *Server
	recorder *tracetest.SpanRecorder
}

func newServerTest(t *testing.T) *serverTest {
	gin.SetMode(gin.TestMode)

	tc := integration.NewSQLiteTestCase(t)
	s, err := strategy.New(strategy.NameAggregateStream, tc.Dialect)
	require.NoError(t, err)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	factory := NewStoreFactory(tc.DB, s, tp)
	return &serverTest{
		server:   NewServer(factory, eventstore.NewRegistry(tc.DB, tc.Dialect), zap.NewNop(), tp),
		recorder: recorder,
	}
}

func (st *serverTest) do(method string, target string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	st.server.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	err := json.Unmarshal(w.Body.Bytes(), dest)
	require.NoError(t, err, w.Body.String())
}

func TestServer_Stream_Lifecycle(t *testing.T) {
	st := newServerTest(t)

	w := st.do(http.MethodPost, "/streams", gin.H{
		"name":     "user-1",
		"metadata": gin.H{"owner": "team-a"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = st.do(http.MethodPost, "/streams", gin.H{"name": "user-1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	var errResp errorResponse
	decodeBody(t, w, &errResp)
	assert.Equal(t, "exists_already", errResp.Kind)

	w = st.do(http.MethodHead, "/streams/user-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = st.do(http.MethodGet, "/streams/user-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var stream streamResponse
	decodeBody(t, w, &stream)
	assert.Equal(t, "user-1", stream.Name)
	assert.Equal(t, "team-a", stream.Metadata["owner"])

	w = st.do(http.MethodPut, "/streams/user-1/metadata", gin.H{"owner": "team-b"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = st.do(http.MethodGet, "/streams/user-1", nil)
	decodeBody(t, w, &stream)
	assert.Equal(t, "team-b", stream.Metadata["owner"])

	w = st.do(http.MethodPut, "/streams/user-9/metadata", gin.H{"owner": "team-b"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = st.do(http.MethodGet, "/streams/user-9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = st.do(http.MethodGet, "/streams?prefix=user", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var names namesResponse
	decodeBody(t, w, &names)
	assert.Equal(t, []string{"user-1"}, names.Names)

	w = st.do(http.MethodGet, "/categories", nil)
	decodeBody(t, w, &names)
	assert.Equal(t, []string{"user"}, names.Names)

	w = st.do(http.MethodDelete, "/streams/user-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = st.do(http.MethodDelete, "/streams/user-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = st.do(http.MethodHead, "/streams/user-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Create_Missing_Name(t *testing.T) {
	st := newServerTest(t)

	w := st.do(http.MethodPost, "/streams", gin.H{"metadata": gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_Append_And_Load(t *testing.T) {
	st := newServerTest(t)

	w := st.do(http.MethodPost, "/streams", gin.H{"name": "user-1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = st.do(http.MethodPost, "/streams/user-1/events", []gin.H{
		{"name": "UserCreated", "version": 1, "payload": gin.H{"name": "John"}, "metadata": gin.H{"tag": "a"}},
		{"name": "UserRenamed", "version": 2, "payload": gin.H{"name": "Sandro"}, "metadata": gin.H{"tag": "b"}},
		{"name": "UserRenamed", "version": 3, "payload": gin.H{"name": "Bradley"}, "metadata": gin.H{"tag": "a"}},
	})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = st.do(http.MethodPost, "/streams/user-1/events", []gin.H{
		{"name": "UserRenamed", "version": 3, "payload": gin.H{}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = st.do(http.MethodPost, "/streams/user-1/events", []gin.H{
		{"name": "UserRenamed", "version": 0},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = st.do(http.MethodPost, "/streams/user-9/events", []gin.H{
		{"name": "UserCreated", "version": 1},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var events eventsResponse

	w = st.do(http.MethodGet, "/streams/user-1/events", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &events)
	assert.Equal(t, 3, len(events.Events))
	assert.Equal(t, `{"name":"Bradley"}`, string(events.Events[2].Payload))

	w = st.do(http.MethodGet, "/streams/user-1/events?reverse=true&count=2", nil)
	decodeBody(t, w, &events)
	assert.Equal(t, 2, len(events.Events))
	assert.Equal(t, int64(3), events.Events[0].Version)
	assert.Equal(t, int64(2), events.Events[1].Version)

	w = st.do(http.MethodGet, "/streams/user-1/events?from=2&match=tag,=,a", nil)
	decodeBody(t, w, &events)
	assert.Equal(t, 1, len(events.Events))
	assert.Equal(t, int64(3), events.Events[0].Version)

	w = st.do(http.MethodGet, "/streams/user-1/events?property=no,in,[1,2]", nil)
	decodeBody(t, w, &events)
	assert.Equal(t, 2, len(events.Events))

	w = st.do(http.MethodGet, "/streams/user-1/events?match=tag,regex,%5Ea", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &events)
	assert.Equal(t, 2, len(events.Events))
	assert.Equal(t, int64(1), events.Events[0].Version)
	assert.Equal(t, int64(3), events.Events[1].Version)

	w = st.do(http.MethodGet, "/streams/user-1/events?match=tag", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = st.do(http.MethodGet, "/streams/user-9/events", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Store_Factory_Error(t *testing.T) {
	gin.SetMode(gin.TestMode)

	factory := func(ctx context.Context) (eventstore.IEventStore, func() error, error) {
		return nil, nil, &eventstore.StorageError{Stage: "error during connect", Err: errors.New("refused")}
	}
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	st := &serverTest{server: NewServer(factory, nil, zap.NewNop(), tp), recorder: recorder}

	w := st.do(http.MethodDelete, "/streams/user-1", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	spans := recorder.Ended()
	assert.Equal(t, 1, len(spans))
	assert.Equal(t, "DELETE /streams/:name", spans[0].Name())
}

func TestServer_Store_Spans(t *testing.T) {
	st := newServerTest(t)

	w := st.do(http.MethodDelete, "/streams/user-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var names []string
	for _, span := range st.recorder.Ended() {
		names = append(names, span.Name())
	}
	assert.Equal(t, []string{"eventstore::Delete", "DELETE /streams/:name"}, names)
}
