package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"nodeBoard/configs"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

// NewRootCommand creates the nodeboard CLI.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "nodeboard",
		Short:         "Node based AI whiteboard backend",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to config.yaml (default ./config.yaml or ./configs/config.yaml)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newSyncSubscriptionsCommand(opts))
	return cmd
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and whiteboard websockets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *App) error {
				return app.LetsGo()
			})
		},
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *App) error {
				return app.Migrate()
			})
		},
	}
}

func newSyncSubscriptionsCommand(opts *rootOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "sync-subscriptions",
		Short: "Mirror payment provider subscriptions and grant plan credits",
		Long: `Sync every user that has a payment customer id.

Without --interval the command runs once and exits non-zero when any sync
failed. With --interval it keeps running until interrupted.

Example:
  nodeboard sync-subscriptions
  nodeboard sync-subscriptions --interval 1h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *App) error {
				return app.SyncSubscriptions(interval)
			})
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "repeat the sync at this interval (0 runs once)")
	return cmd
}

func withApp(cmd *cobra.Command, opts *rootOptions, run func(app *App) error) error {
	config, err := configs.Load(opts.configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return run(NewApp(ctx, config))
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		return 1
	}
	return 0
}

