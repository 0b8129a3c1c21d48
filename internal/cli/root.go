// Package cli implements opsctl, the operator command line for the engine.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"dlt-orchestrator/config"
	"dlt-orchestrator/internal/app"
	"dlt-orchestrator/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Format     string // "json" | "text"
	Verbose    bool

	// Open builds the engine. Tests replace it.
	Open func(ctx context.Context, opts *RootOptions) (*app.App, error)
	// LoadConfig reads configuration. Tests replace it.
	LoadConfig func(path string) (*config.Config, error)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for opsctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{Open: openApp, LoadConfig: config.Load})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "opsctl",
		Short: "Operator tooling for the DLT orchestration engine",
		Long: `opsctl inspects and repairs the operation ledger.

It talks to the same database as the API server and uses the same
configuration file and DLT_ environment variables.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to config file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log engine activity to stderr")

	cmd.AddCommand(NewForceCompleteCommand(opts))
	cmd.AddCommand(NewStaleCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

func openApp(ctx context.Context, opts *RootOptions) (*app.App, error) {
	cfg, err := opts.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	// Short-lived process: no webhooks.
	cfg.Notify.Enabled = false
	return app.Build(ctx, cfg, opts.logger(io.Discard))
}

func (o *RootOptions) logger(quiet io.Writer) zerolog.Logger {
	if o.Verbose {
		return logger.NewWithWriter("debug", os.Stderr)
	}
	return logger.NewWithWriter("error", quiet)
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
