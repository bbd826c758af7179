package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/QuangTung97/eventstore/config"
	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/pkg/matcher"
	"github.com/QuangTung97/eventstore/pkg/strategy"
	"github.com/QuangTung97/eventstore/service/eventstore"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := cobra.Command{
		Use: "bench",
	}
	rootCmd.AddCommand(
		benchAppendCommand(),
	)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Println(err)
	}
}

type benchParams struct {
	numThreads  int
	numElements int
	numStreams  int
	batchSize   int
}

type benchRunner struct {
	db       *sqlx.DB
	strategy strategy.PersistenceStrategy
	options  []eventstore.Option

	conflicts atomic.Int64
	failures  atomic.Int64
}

// appendNext appends a batch after the last version of the stream, retried on conflicts
func (r *benchRunner) appendNext(ctx context.Context, store *eventstore.Store, name model.StreamName, batchSize int) error {
	for {
		it, err := store.LoadReverse(ctx, name, 0, 1, matcher.Matcher{})
		if err != nil {
			return err
		}

		version := int64(0)
		if it.Next(ctx) {
			version = it.Event().Version
		}
		if err := it.Err(); err != nil {
			return err
		}

		events := make([]model.Event, 0, batchSize)
		for i := 0; i < batchSize; i++ {
			version++
			events = append(events, model.Event{
				Name:     "BenchEventHappened",
				Payload:  []byte(`{"bench":true}`),
				// required by the single stream strategy
				Metadata: model.Metadata{model.MetadataAggregateID: name.String()},
				Version:  version,
			})
		}

		err = store.AppendTo(ctx, name, events)
		if errors.Is(err, eventstore.ErrConcurrency) {
			r.conflicts.Add(1)
			continue
		}
		return err
	}
}

func (r *benchRunner) run(params benchParams) {
	ctx := context.Background()
	if params.numStreams < 1 {
		params.numStreams = 1
	}

	streams := make([]model.StreamName, 0, params.numStreams)
	setup, err := eventstore.Open(ctx, r.db, r.strategy, r.options...)
	if err != nil {
		panic(err)
	}
	for i := 0; i < params.numStreams; i++ {
		name := model.StreamName("bench-" + uuid.NewString())
		if err := setup.Create(ctx, model.Stream{Name: name}); err != nil {
			panic(err)
		}
		streams = append(streams, name)
	}
	_ = setup.Close()

	durations := make([][]time.Duration, params.numThreads)

	totalStart := time.Now()

	var wg sync.WaitGroup
	wg.Add(params.numThreads)
	for th := 0; th < params.numThreads; th++ {
		threadIndex := th
		go func() {
			defer wg.Done()

			store, err := eventstore.Open(ctx, r.db, r.strategy, r.options...)
			if err != nil {
				panic(err)
			}
			defer func() { _ = store.Close() }()

			for i := 0; i < params.numElements; i++ {
				name := streams[(threadIndex+i)%len(streams)]

				start := time.Now()
				err := r.appendNext(ctx, store, name, params.batchSize)
				if err != nil {
					r.failures.Add(1)
					fmt.Println(name, err)
				}
				durations[threadIndex] = append(durations[threadIndex], time.Since(start))
			}
		}()
	}
	wg.Wait()
	fmt.Println("TOTAL TIME", time.Since(totalStart))

	history := make([]time.Duration, 0, params.numThreads*params.numElements)

	total := time.Duration(0)
	for _, bucket := range durations {
		for _, d := range bucket {
			total += d
			history = append(history, d)
		}
	}
	numHistory := len(history)
	if numHistory == 0 {
		return
	}
	avg := total / time.Duration(numHistory)

	sort.Slice(history, func(i, j int) bool {
		return history[i] < history[j]
	})

	p50Index := numHistory * 50 / 100
	p90Index := numHistory * 90 / 100
	p95Index := numHistory * 95 / 100
	p99Index := numHistory * 99 / 100
	p999Index := numHistory * 999 / 1000

	fmt.Println("P50:", history[p50Index])
	fmt.Println("P90:", history[p90Index])
	fmt.Println("P95:", history[p95Index])
	fmt.Println("P99:", history[p99Index])
	fmt.Println("P999:", history[p999Index])
	fmt.Println("MAX:", history[numHistory-1])
	fmt.Println("HISTORY LEN:", len(history))

	fmt.Println("AVG:", avg)
	fmt.Println("CONFLICTS:", r.conflicts.Load())
	fmt.Println("FAILURES:", r.failures.Load())
}

func benchAppendCommand() *cobra.Command {
	var params benchParams

	cmd := &cobra.Command{
		Use:   "append",
		Short: "benchmark concurrent appenders on shared streams",
		Run: func(cmd *cobra.Command, args []string) {
			conf := config.Load()
			db, dialect := conf.Database.MustConnect()
			defer func() { _ = db.Close() }()

			s, err := strategy.New(conf.EventStore.Strategy, dialect)
			if err != nil {
				panic(err)
			}

			fmt.Println("DIALECT:", dialect)
			fmt.Println("STRATEGY:", s.Name())
			fmt.Println("WRITE LOCK:", conf.EventStore.WriteLock)

			runner := &benchRunner{
				db:       db,
				strategy: s,
				options:  eventstore.OptionsFromConfig(dialect, conf.EventStore),
			}
			runner.run(params)
		},
	}
	cmd.Flags().IntVar(&params.numThreads, "threads", 50, "number of concurrent appenders")
	cmd.Flags().IntVar(&params.numElements, "appends", 200, "number of appends per appender")
	cmd.Flags().IntVar(&params.numStreams, "streams", 4, "number of shared streams")
	cmd.Flags().IntVar(&params.batchSize, "batch", 5, "number of events per append")
	return cmd
}
