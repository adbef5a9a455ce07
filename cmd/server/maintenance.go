package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nft-maker-one/twitter-clone/internal/database"
	"github.com/nft-maker-one/twitter-clone/internal/repositories"
	"github.com/nft-maker-one/twitter-clone/pkg/config"
)

var errSQLiteMigrate = errors.New("migrate works on PostgreSQL only; SQLite schemas are created on serve")

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the PostgreSQL schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.SQLitePath != "" {
				return errSQLiteMigrate
			}
			return database.MigrateUp(opts.cfg.PostgresConnStr, opts.log)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.SQLitePath != "" {
				return errSQLiteMigrate
			}
			return database.MigrateDown(opts.cfg.PostgresConnStr, steps, opts.log)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	return cmd
}

func newReconcileCommand(opts *rootOptions) *cobra.Command {
	var postID uint
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute drifted post counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := opts.openStore(ctx, false)
			if err != nil {
				return err
			}
			defer config.CloseDB(db, opts.log)

			posts := repositories.NewPostgresPostRepository(db)
			if postID != 0 {
				if err := posts.RecountPost(ctx, postID); err != nil {
					return err
				}
				opts.log.Info("post counters recomputed", zap.Uint("post_id", postID))
				return nil
			}

			fixed, err := posts.ReconcileCounters(ctx)
			if err != nil {
				return err
			}
			opts.log.Info("counters reconciled", zap.Int64("posts_fixed", fixed))
			return nil
		},
	}
	cmd.Flags().UintVar(&postID, "post", 0, "recompute a single post instead of scanning all")
	return cmd
}
