package cli

import (
	"context"
	"fmt"
	"io"

	"dlt-orchestrator/config"
	pgStorage "dlt-orchestrator/internal/adapter/storage/postgres"

	"github.com/spf13/cobra"
)

// MigrateOptions holds flags for the migrate command.
type MigrateOptions struct {
	*RootOptions
	Print bool
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MigrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Long: `Apply the embedded PostgreSQL schema. Every statement is idempotent,
so running it against an up-to-date database changes nothing.

Examples:
  opsctl migrate -c config.yaml
  opsctl migrate --print > schema.sql`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Print, "print", false, "print the schema instead of applying it")

	return cmd
}

func runMigrate(ctx context.Context, opts *MigrateOptions, cmd *cobra.Command) error {
	if opts.Print {
		_, err := io.WriteString(cmd.OutOrStdout(), pgStorage.Schema())
		return err
	}

	cfg, err := opts.LoadConfig(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return WrapExitError(ExitCommandError, fmt.Sprintf("migrate needs the postgres driver, config selects %q", cfg.Database.Driver), nil)
	}

	log := opts.logger(cmd.ErrOrStderr())
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to connect", err)
	}
	defer pool.Close()

	if err := pgStorage.Migrate(ctx, pool, log); err != nil {
		return WrapExitError(ExitFailure, "migration failed", err)
	}

	out := opts.formatter(cmd)
	return out.Success(map[string]string{"database": cfg.Database.DBName}, func(w io.Writer) {
		fmt.Fprintf(w, "schema applied to %s\n", cfg.Database.DBName)
	})
}
