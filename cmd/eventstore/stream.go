package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/service/eventstore"
	"github.com/spf13/cobra"
)

func streamCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "manage streams",
	}
	cmd.AddCommand(
		streamCreateCommand(),
		streamDeleteCommand(),
		streamHasCommand(),
		streamListCommand(),
		streamCategoriesCommand(),
		streamMetadataCommand(),
	)
	return cmd
}

func parseMetadata(s string) (model.Metadata, error) {
	if s == "" {
		return nil, nil
	}
	var metadata model.Metadata
	if err := json.Unmarshal([]byte(s), &metadata); err != nil {
		return nil, fmt.Errorf("invalid metadata: %w", err)
	}
	return metadata, nil
}

func streamCreateCommand() *cobra.Command {
	var metadataJSON string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "create a stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metadata, err := parseMetadata(metadataJSON)
			if err != nil {
				return err
			}
			return withStore(func(ctx context.Context, store *eventstore.Store) error {
				return store.Create(ctx, model.Stream{
					Name:     model.StreamName(args[0]),
					Metadata: metadata,
				})
			})
		},
	}
	cmd.Flags().StringVar(&metadataJSON, "metadata", "", "stream metadata as a JSON object")
	return cmd
}

func streamDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "delete a stream and all of its events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, store *eventstore.Store) error {
				return store.Delete(ctx, model.StreamName(args[0]))
			})
		},
	}
}

func streamHasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "has NAME",
		Short: "check whether a stream exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, store *eventstore.Store) error {
				exists, err := store.HasStream(ctx, model.StreamName(args[0]))
				if err != nil {
					return err
				}
				fmt.Println(exists)
				return nil
			})
		},
	}
}

type pagingFlags struct {
	prefix string
	limit  uint64
	offset uint64
}

func (f *pagingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "name prefix")
	cmd.Flags().Uint64Var(&f.limit, "limit", 0, "max number of names, 0 means no limit")
	cmd.Flags().Uint64Var(&f.offset, "offset", 0, "number of names to skip")
}

func streamListCommand() *cobra.Command {
	var paging pagingFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list stream names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, store *eventstore.Store) error {
				names, err := store.FetchStreamNames(ctx, paging.prefix, paging.limit, paging.offset)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Println(name)
				}
				return nil
			})
		},
	}
	paging.register(cmd)
	return cmd
}

func streamCategoriesCommand() *cobra.Command {
	var paging pagingFlags

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "list stream categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, store *eventstore.Store) error {
				categories, err := store.FetchCategoryNames(ctx, paging.prefix, paging.limit, paging.offset)
				if err != nil {
					return err
				}
				for _, category := range categories {
					fmt.Println(category)
				}
				return nil
			})
		},
	}
	paging.register(cmd)
	return cmd
}

func streamMetadataCommand() *cobra.Command {
	var setJSON string

	cmd := &cobra.Command{
		Use:   "metadata NAME",
		Short: "print or replace the metadata of a stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := model.StreamName(args[0])

			if setJSON != "" {
				metadata, err := parseMetadata(setJSON)
				if err != nil {
					return err
				}
				return withStore(func(ctx context.Context, store *eventstore.Store) error {
					return store.UpdateStreamMetadata(ctx, name, metadata)
				})
			}

			return withStore(func(ctx context.Context, store *eventstore.Store) error {
				metadata, err := store.FetchStreamMetadata(ctx, name)
				if err != nil {
					return err
				}
				return printJSON(metadata)
			})
		},
	}
	cmd.Flags().StringVar(&setJSON, "set", "", "replace the metadata with this JSON object")
	return cmd
}
