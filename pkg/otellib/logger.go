package otellib

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type ctxLoggerKey struct{}
type ctxLoggerValue struct {
	logger *zap.Logger
}

var loggerKey ctxLoggerKey

const (
	traceIDField    = "trace.id"
	spanIDField     = "span.id"
	traceFlagsField = "trace.flags"
)

// SetTraceInfoMiddleware puts the logger into the request context, must run after TraceMiddleware
func SetTraceInfoMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ToContext(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// FromContext returns the logger with trace info, false when ctx has no logger
func FromContext(ctx context.Context) (*zap.Logger, bool) {
	val, ok := ctx.Value(loggerKey).(ctxLoggerValue)
	if !ok {
		return nil, false
	}
	sc := trace.SpanContextFromContext(ctx)
	return val.logger.With(
		zap.String(traceIDField, sc.TraceID().String()),
		zap.String(spanIDField, sc.SpanID().String()),
		zap.String(traceFlagsField, sc.TraceFlags().String()),
	), true
}

// Extract ...
func Extract(ctx context.Context) *zap.Logger {
	logger, ok := FromContext(ctx)
	if !ok {
		return zap.NewNop()
	}
	return logger
}

// ToContext ...
func ToContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, ctxLoggerValue{logger: l})
}
