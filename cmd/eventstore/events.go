package main

import (
	"context"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/service/eventstore"
	"github.com/QuangTung97/eventstore/service/httpapi"
	"github.com/spf13/cobra"
)

func appendCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "append NAME",
		Short: "append a JSON array of events to a stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input []httpapi.EventJSON
			if err := readJSON(file, &input); err != nil {
				return err
			}

			events, err := httpapi.DecodeEvents(input)
			if err != nil {
				return err
			}

			return withStore(func(ctx context.Context, store *eventstore.Store) error {
				return store.AppendTo(ctx, model.StreamName(args[0]), events)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "file with the events, - reads stdin")
	return cmd
}

func loadCommand() *cobra.Command {
	var fromNumber int64
	var count int
	var reverse bool
	var matches []string
	var properties []string

	cmd := &cobra.Command{
		Use:   "load NAME",
		Short: "print the events of a stream as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := httpapi.ParseMatcher(matches, properties)
			if err != nil {
				return err
			}

			return withStore(func(ctx context.Context, store *eventstore.Store) error {
				name := model.StreamName(args[0])

				var it *eventstore.EventIterator
				if reverse {
					it, err = store.LoadReverse(ctx, name, fromNumber, count, m)
				} else {
					it, err = store.Load(ctx, name, fromNumber, count, m)
				}
				if err != nil {
					return err
				}

				for it.Next(ctx) {
					if err := printJSON(httpapi.EncodeEvent(it.Event())); err != nil {
						return err
					}
				}
				return it.Err()
			})
		},
	}
	cmd.Flags().Int64Var(&fromNumber, "from", 0, "first position, 0 starts from the beginning (or the end with --reverse)")
	cmd.Flags().IntVar(&count, "count", 0, "max number of events, 0 means no limit")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "load in descending order")
	cmd.Flags().StringArrayVar(&matches, "match", nil, "metadata predicate field,op,value")
	cmd.Flags().StringArrayVar(&properties, "property", nil, "message property predicate field,op,value")
	return cmd
}
