package httpapi

import (
	"context"
	"net/http"

	"github.com/QuangTung97/eventstore/pkg/otellib"
	"github.com/QuangTung97/eventstore/pkg/strategy"
	"github.com/QuangTung97/eventstore/service/eventstore"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// StoreFactory opens a store for a single request, the returned func closes it
type StoreFactory func(ctx context.Context) (eventstore.IEventStore, func() error, error)

// NewStoreFactory opens every store on its own connection of db, wrapped with tracing spans
func NewStoreFactory(
	db *sqlx.DB, s strategy.PersistenceStrategy, tp trace.TracerProvider, options ...eventstore.Option,
) StoreFactory {
	tracer := tp.Tracer("eventstore")

	return func(ctx context.Context) (eventstore.IEventStore, func() error, error) {
		store, err := eventstore.Open(ctx, db, s, options...)
		if err != nil {
			return nil, nil, err
		}
		return eventstore.NewIEventStoreWrapper(store, tracer, "eventstore::"), store.Close, nil
	}
}

// Server ...
type Server struct {
	router   *gin.Engine
	factory  StoreFactory
	registry eventstore.IRegistry
}

// NewServer serves events through stores of factory, registry only routes use registry
func NewServer(
	factory StoreFactory, registry eventstore.IRegistry, logger *zap.Logger, tp trace.TracerProvider,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otellib.TraceMiddleware(tp))
	router.Use(otellib.SetTraceInfoMiddleware(logger))

	s := &Server{
		router:   router,
		factory:  factory,
		registry: registry,
	}
	s.setupRoutes()
	return s
}

// Handler returns the http handler of all routes
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	streams := s.router.Group("/streams")
	{
		streams.POST("", s.handleCreateStream)
		streams.GET("", s.handleFetchStreamNames)

		streams.HEAD("/:name", s.handleHasStream)
		streams.GET("/:name", s.handleFetchStream)
		streams.PUT("/:name/metadata", s.handleUpdateStreamMetadata)
		streams.DELETE("/:name", s.handleDeleteStream)

		streams.POST("/:name/events", s.handleAppendEvents)
		streams.GET("/:name/events", s.handleLoadEvents)
	}

	s.router.GET("/categories", s.handleFetchCategoryNames)

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// withStore runs fn with a store opened for the request, errors are written as responses
func (s *Server) withStore(c *gin.Context, fn func(ctx context.Context, store eventstore.IEventStore) error) {
	ctx := c.Request.Context()

	store, closeFn, err := s.factory(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	defer func() {
		if err := closeFn(); err != nil {
			otellib.Extract(ctx).Warn("close store", zap.Error(err))
		}
	}()

	if err := fn(ctx, store); err != nil {
		writeError(c, err)
	}
}
