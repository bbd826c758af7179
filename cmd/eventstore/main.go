package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/QuangTung97/eventstore/config"
	"github.com/QuangTung97/eventstore/pkg/strategy"
	"github.com/QuangTung97/eventstore/service/eventstore"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := cobra.Command{
		Use:          "eventstore",
		Short:        "manage streams and events of the event store",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		streamCommand(),
		appendCommand(),
		loadCommand(),
	)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// withStore opens a store from config.yml, runs fn and closes it
func withStore(fn func(ctx context.Context, store *eventstore.Store) error) error {
	conf := config.Load()
	logger := config.NewLogger(conf.Log)
	defer func() { _ = logger.Sync() }()

	db, dialect, err := conf.Database.Connect()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	s, err := strategy.New(conf.EventStore.Strategy, dialect)
	if err != nil {
		return err
	}

	options := eventstore.OptionsFromConfig(dialect, conf.EventStore)
	options = append(options, eventstore.WithLogger(logger))

	ctx := context.Background()
	store, err := eventstore.Open(ctx, db, s, options...)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return fn(ctx, store)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readJSON(file string, dest interface{}) error {
	input := os.Stdin
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		input = f
	}

	if err := json.NewDecoder(input).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", file, err)
	}
	return nil
}
