package cli

import (
	"context"
	"fmt"
	"io"

	"dlt-orchestrator/internal/adapter/directory"

	"github.com/spf13/cobra"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	File string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load enterprise policies and users into the database directory",
		Long: `Upsert the enterprises and users of a directory YAML file into the
database-backed directory. The file uses the same format as
directory.source: file.

Examples:
  opsctl seed --file directory.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "directory YAML file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSeed(ctx context.Context, opts *SeedOptions, cmd *cobra.Command) error {
	dir, err := directory.Load(opts.File)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read directory file", err)
	}

	a, err := opts.Open(ctx, opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open engine", err)
	}
	defer a.Close()
	if a.Directory == nil {
		return WrapExitError(ExitCommandError, "seed needs the postgres driver", nil)
	}

	policies := dir.Policies()
	for i := range policies {
		if err := a.Directory.UpsertPolicy(ctx, &policies[i]); err != nil {
			return WrapExitError(ExitFailure, "failed to upsert policy "+policies[i].EnterpriseID.String(), err)
		}
	}
	users := dir.Users()
	for i := range users {
		if err := a.Directory.UpsertUser(ctx, &users[i]); err != nil {
			return WrapExitError(ExitFailure, "failed to upsert user "+users[i].ID.String(), err)
		}
	}

	summary := map[string]int{"enterprises": len(policies), "users": len(users)}
	return opts.formatter(cmd).Success(summary, func(w io.Writer) {
		fmt.Fprintf(w, "seeded %d enterprises and %d users\n", len(policies), len(users))
	})
}
