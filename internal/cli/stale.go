package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"dlt-orchestrator/internal/core/domain"

	"github.com/spf13/cobra"
)

// StaleOptions holds flags for the stale command.
type StaleOptions struct {
	*RootOptions
	OlderThan time.Duration
	Limit     int
}

// NewStaleCommand creates the stale command.
func NewStaleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StaleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stale",
		Short: "List operations stuck awaiting a signature",
		Long: `List PENDING_SIGNATURE operations older than a threshold.

Nothing is changed. Each listed operation blocks its parent until the
wallet reports an outcome or an operator force-completes it.

Examples:
  opsctl stale
  opsctl stale --older-than 6h --limit 20 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStale(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().DurationVar(&opts.OlderThan, "older-than", 0, "age threshold (default engine.stale_after)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 100, "maximum number of operations to list")

	return cmd
}

func runStale(ctx context.Context, opts *StaleOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	a, err := opts.Open(ctx, opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open engine", err)
	}
	defer a.Close()

	olderThan := opts.OlderThan
	if olderThan <= 0 {
		olderThan = a.Config.Engine.StaleAfter
	}
	ops, err := a.Ledger.ListStale(ctx, olderThan, opts.Limit)
	if err != nil {
		_ = out.Failure(err)
		return WrapExitError(ExitFailure, "failed to list stale operations", err)
	}
	if ops == nil {
		ops = []*domain.Operation{}
	}

	return out.Success(ops, func(w io.Writer) {
		if len(ops) == 0 {
			fmt.Fprintf(w, "no operations pending signature for more than %s\n", olderThan)
			return
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTYPE\tPARENT\tSIGNER\tAGE")
		for _, op := range ops {
			age := time.Since(op.CreatedAt).Truncate(time.Second)
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", op.ID, op.Type, op.ParentRef, op.SignerAccountID, age)
		}
		_ = tw.Flush()
	})
}
