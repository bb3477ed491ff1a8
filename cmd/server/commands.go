package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tasks-api",
		Short:         "Task management JSON API",
		Long:          "tasks-api serves a paginated, searchable task API backed by PostgreSQL.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(ctx context.Context, cfg *config.Config, log *slog.Logger, pool *pgxpool.Pool) error {
				if migrate {
					if err := postgres.Migrate(ctx, pool, "up"); err != nil {
						return err
					}
					log.Info("migrations applied")
				}

				app, err := newApplication(cfg, log, pool)
				if err != nil {
					return err
				}
				return app.Run(ctx)
			})
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate {" + strings.Join(postgres.MigrationCommands, "|") + "}",
		Short:     "Run database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: postgres.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(ctx context.Context, _ *config.Config, log *slog.Logger, pool *pgxpool.Pool) error {
				if err := postgres.Migrate(ctx, pool, args[0]); err != nil {
					return err
				}
				log.Info("migration command finished", slog.String("command", args[0]))
				return nil
			})
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(ctx context.Context, _ *config.Config, log *slog.Logger, pool *pgxpool.Pool) error {
				tasks := postgres.NewPostgresTaskStore(pool, log)
				seeded, err := service.NewSeeder(pool, tasks, nil, log).Seed(ctx, service.DefaultSeedPlan())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d tasks\n", len(seeded))
				return nil
			})
		},
	}
}

// withDatabase loads configuration, sets up logging and opens the pool for
// the duration of fn. The context is cancelled on SIGINT or SIGTERM.
func withDatabase(
	parent context.Context,
	fn func(ctx context.Context, cfg *config.Config, log *slog.Logger, pool *pgxpool.Pool) error,
) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	pool, err := postgres.Connect(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, log, pool)
}
