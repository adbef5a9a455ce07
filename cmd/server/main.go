package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nft-maker-one/twitter-clone/internal/database"
	"github.com/nft-maker-one/twitter-clone/internal/logger"
	"github.com/nft-maker-one/twitter-clone/pkg/config"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	SQLitePath string

	cfg *config.Config
	log *zap.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "twitter-clone",
		Short: "Twitter clone API server",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			log, err := logger.New(cfg.Env, cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			opts.cfg, opts.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.SQLitePath, "sqlite", "", "use a SQLite file instead of PostgreSQL (development only)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newReconcileCommand(opts))
	return cmd
}

// openStore connects to the configured store. SQLite gets its schema from the
// models; Postgres is migrated with the embedded SQL when migrate is set.
func (o *rootOptions) openStore(ctx context.Context, migrate bool) (*gorm.DB, error) {
	if o.SQLitePath != "" {
		db, err := config.InitSQLite(ctx, o.SQLitePath, o.cfg, o.log)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			config.CloseDB(db, o.log)
			return nil, fmt.Errorf("failed to create SQLite schema: %w", err)
		}
		return db, nil
	}

	if migrate {
		if err := database.MigrateUp(o.cfg.PostgresConnStr, o.log); err != nil {
			return nil, err
		}
	}
	return config.InitDB(ctx, o.cfg, o.log)
}
