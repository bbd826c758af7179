package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/QuangTung97/eventstore/config"
	"github.com/QuangTung97/eventstore/pkg/otellib"
	"github.com/QuangTung97/eventstore/pkg/strategy"
	"github.com/QuangTung97/eventstore/service/eventstore"
	"github.com/QuangTung97/eventstore/service/httpapi"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

func startServer() {
	conf := config.Load()
	logger := config.NewLogger(conf.Log)
	defer func() { _ = logger.Sync() }()

	tracerProvider, shutdown := otellib.InitOtel("eventstore", "local", conf.Jaeger)
	defer shutdown()

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	db, dialect := conf.Database.MustConnect()
	defer func() { _ = db.Close() }()

	s, err := strategy.New(conf.EventStore.Strategy, dialect)
	if err != nil {
		panic(err)
	}

	options := eventstore.OptionsFromConfig(dialect, conf.EventStore)
	options = append(options,
		eventstore.WithLogger(logger),
		eventstore.WithMetrics(eventstore.NewMetrics(prometheus.DefaultRegisterer)),
	)

	if !conf.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	server := httpapi.NewServer(
		httpapi.NewStoreFactory(db, s, tracerProvider, options...),
		eventstore.NewRegistry(db, dialect, options...),
		logger, tracerProvider,
	)

	logger.Info("starting event store server",
		zap.String("dialect", dialect.String()),
		zap.String("strategy", s.Name()),
	)
	startHTTPServer(conf, server.Handler(), logger)
}

func main() {
	rootCmd := cobra.Command{
		Use: "server",
	}
	rootCmd.AddCommand(
		startServerCommand(),
	)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Println(err)
	}
}

func startServerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "start the server",
		Run: func(cmd *cobra.Command, args []string) {
			startServer()
		},
	}
}

func startHTTPServer(conf config.Config, handler http.Handler, logger *zap.Logger) {
	fmt.Println("HTTP:", conf.Server.HTTP.ListenString())

	httpMux := http.NewServeMux()
	httpMux.Handle("/metrics", promhttp.Handler())
	httpMux.Handle("/", handler)

	httpServer := &http.Server{
		Addr:    conf.Server.HTTP.ListenString(),
		Handler: httpMux,
	}

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			panic(err)
		}
		logger.Info("Shutdown HTTP server successfully")
	}()

	//--------------------------------
	// Graceful Shutdown
	//--------------------------------
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	err := httpServer.Shutdown(ctx)
	if err != nil {
		panic(err)
	}

	wg.Wait()
}
