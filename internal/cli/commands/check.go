// Package commands implements the logtab subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"logtab/pkg/config"
	"logtab/pkg/convert"
	"logtab/pkg/fault"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// CheckOptions holds command-line options for the check command.
type CheckOptions struct {
	Config string
	Quiet  bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check [file ...]",
		Short: "Validate access-log lines without converting them",
		Long: `Check parses every input line against the Common/Combined Log Format
grammar and reports the ones that would make a conversion fail, without
emitting any TSV. Reads stdin when no files are given.

Unlike the conversion itself, check does not stop at the first bad line;
it reports every offending line in one pass. Lines the reader cannot
deliver at all (overlong, stream failure) still abort the check.

Exit codes:
  0 - Every line parsed
  1 - At least one line failed
  2 - Runtime error`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "Path to YAML config file (optional)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no per-line detail")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadOrDefault(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	lines := 0
	bad := 0

	if len(args) == 0 {
		result, err := checkStream(ctx, cmd, "stdin", cmd.InOrStdin(), cfg, opts)
		if err != nil {
			return err
		}
		lines += result.Lines
		bad += len(result.Issues)
	} else {
		for _, path := range args {
			f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
			if err != nil {
				return fmt.Errorf("opening log file %s: %w", path, err)
			}
			result, cerr := checkStream(ctx, cmd, path, f, cfg, opts)
			if err := f.Close(); err != nil && cerr == nil {
				cerr = fmt.Errorf("closing %s: %w", path, err)
			}
			if cerr != nil {
				return cerr
			}
			lines += result.Lines
			bad += len(result.Issues)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "checked %d line(s), %d bad\n", lines, bad)

	if bad > 0 {
		ExitCode = 1
	}
	return nil
}

func checkStream(ctx context.Context, cmd *cobra.Command, name string, input io.Reader, cfg *config.Config, opts *CheckOptions) (*convert.CheckResult, error) {
	result, err := convert.Check(ctx, input, cfg.MaxLineBytes)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", name, err)
	}

	if !opts.Quiet {
		for _, issue := range result.Issues {
			code, ok := fault.CodeOf(issue.Err)
			if !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: line %d: %v\n", name, issue.Line, issue.Err)
				continue
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: line %d: %s\n", name, issue.Line, code)
		}
	}

	return result, nil
}
