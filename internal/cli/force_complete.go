package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// ForceCompleteOptions holds flags for the force-complete command.
type ForceCompleteOptions struct {
	*RootOptions
	Evidence string
	Actor    string
}

// NewForceCompleteCommand creates the force-complete command.
func NewForceCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ForceCompleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "force-complete <operation-id>",
		Short: "Mark an operation SUCCESS on operator evidence",
		Long: `Mark a PENDING_SIGNATURE or PENDING_CONFIRMATION operation SUCCESS.

Use this when the transaction is known to have landed on chain but the
engine never heard about it. The evidence is stored with the audit entry
and the owning saga advances as if the watcher had confirmed.

Examples:
  opsctl force-complete 7d3c... --evidence "0.0.1001@1700000000.1 SUCCESS on hashscan" --actor ops:maria`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForceComplete(cmd.Context(), opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Evidence, "evidence", "", "proof the transaction succeeded (required)")
	_ = cmd.MarkFlagRequired("evidence")
	cmd.Flags().StringVar(&opts.Actor, "actor", "", "operator identity recorded in the audit trail (required)")
	_ = cmd.MarkFlagRequired("actor")

	return cmd
}

func runForceComplete(ctx context.Context, opts *ForceCompleteOptions, cmd *cobra.Command, rawID string) error {
	out := opts.formatter(cmd)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return WrapExitError(ExitCommandError, "operation id must be a UUID", err)
	}

	a, err := opts.Open(ctx, opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open engine", err)
	}
	defer a.Close()

	op, err := a.Reconciler.ForceComplete(ctx, id, opts.Evidence, opts.Actor)
	if err != nil {
		_ = out.Failure(err)
		return WrapExitError(ExitFailure, "force-complete refused", err)
	}

	return out.Success(op, func(w io.Writer) {
		fmt.Fprintf(w, "operation %s is %s\n", op.ID, op.Status)
		fmt.Fprintf(w, "parent: %s\n", op.ParentRef)
	})
}
