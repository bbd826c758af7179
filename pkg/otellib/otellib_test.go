package otellib

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/QuangTung97/eventstore/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestExtract_Without_Logger(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.Equal(t, false, ok)
	assert.NotNil(t, Extract(context.Background()))
}

func TestMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	var found bool
	r := gin.New()
	r.Use(TraceMiddleware(tp), SetTraceInfoMiddleware(zap.NewNop()))
	r.GET("/streams/:name", func(c *gin.Context) {
		_, found = FromContext(c.Request.Context())
		c.Status(http.StatusServiceUnavailable)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/streams/user-1", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, true, found)

	spans := recorder.Ended()
	assert.Equal(t, 1, len(spans))
	assert.Equal(t, "GET /streams/:name", spans[0].Name())
}

func TestInitOtel_Disabled(t *testing.T) {
	tp, shutdown := InitOtel("eventstore", "test", config.JaegerConfig{})
	assert.NotNil(t, tp)
	shutdown()
}
