// Package cli provides the command-line interface for logtab.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"logtab/internal/cli/commands"
	"logtab/pkg/config"
	"logtab/pkg/convert"
	"logtab/pkg/fault"
)

// Execute runs the root command and returns the exit code.
// Enumerated faults print as "Error: <CODE>" and exit 1; anything else
// (flag misuse, unreadable config) prints the full error and exits 2.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		if code, ok := fault.CodeOf(err); ok {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", code)
			return 1
		}
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return commands.ExitCode
}

// RootOptions holds command-line options for the root command.
type RootOptions struct {
	Config string
}

// NewRootCommand creates the root cobra command. Running it with no
// arguments performs the stdin-to-stdout conversion.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	rootCmd := &cobra.Command{
		Use:   "logtab",
		Short: "Convert Apache access logs to TSV",
		Long: `logtab converts Apache Common/Combined access-log lines from stdin into
tab-separated rows on stdout. The bracketed Apache timestamp is re-rendered
as YYYY-MM-DDTHH:MM:SS±HHMM so rows sort chronologically (within one UTC
offset) under a plain lexicographic sort.

A fixed header row is emitted first. Empty input lines pass through as
empty output lines. Any malformed line aborts the conversion; the TSV
written so far must then be treated as incomplete.

Typical use:
  zcat access.log.*.gz | logtab | (read h; echo "$h"; sort)
  tail -f /var/log/apache2/access.log | logtab`,
		// The conversion contract takes no positional arguments; an
		// unrecognized word is rejected before any input is read.
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fault.ErrTooManyArgs
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVar(&opts.Config, "config", "", "Path to YAML config file (optional)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

func runConvert(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadOrDefault(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	c := convert.New(cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
	return c.Run(ctx)
}
