// Package convert ties the line reader, the field scanner, and the TSV
// sink into the streaming conversion pipeline.
//
// The pipeline is strictly sequential: one line in, one row out, in order.
// The first fault aborts the run; output already flushed for the failing
// line stays where it is.
package convert

import (
	"context"
	"io"

	"logtab/pkg/config"
	"logtab/pkg/reader"
	"logtab/pkg/scan"
	"logtab/pkg/tsv"
)

// Converter runs the conversion pipeline over one input stream.
type Converter struct {
	r      *reader.LineReader
	w      *tsv.Writer
	header bool
}

// New creates a Converter reading from input and writing to output,
// configured by cfg.
func New(input io.Reader, output io.Writer, cfg *config.Config) *Converter {
	return &Converter{
		r:      reader.NewLineReader(input, cfg.MaxLineBytes),
		w:      tsv.NewWriter(output),
		header: cfg.Header,
	}
}

// Run converts the whole stream. It returns nil on clean end of input and
// the first fault otherwise. Cancelling the context stops the run between
// lines; a line being processed always completes or faults on its own.
func (c *Converter) Run(ctx context.Context) error {
	if c.header {
		if err := c.w.Header(scan.FieldNames); err != nil {
			return err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := c.r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		// A bare newline passes through as a bare newline.
		if line == "" {
			if err := c.w.BlankRow(); err != nil {
				return err
			}
			continue
		}

		if err := scan.Row(line, c.w); err != nil {
			// Fields written before the fault stay flushed.
			_ = c.w.Flush()
			return err
		}
	}
}

// Issue is one offending line found by Check.
type Issue struct {
	// Line is the 1-based input line number.
	Line int

	// Err is the fault the scanner reported for that line.
	Err error
}

// CheckResult summarizes a validation-only pass.
type CheckResult struct {
	// Lines is the total number of input lines read.
	Lines int

	// Issues lists the lines that failed the grammar, in input order.
	Issues []Issue
}

// Check runs the scanner over every line without emitting TSV. Unlike Run
// it does not stop at the first bad line; it records the fault and keeps
// going so one pass reports everything. Reader-level faults still abort.
func Check(ctx context.Context, input io.Reader, maxLineBytes int) (*CheckResult, error) {
	r := reader.NewLineReader(input, maxLineBytes)
	w := tsv.NewWriter(io.Discard)
	result := &CheckResult{}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line, err := r.Next()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return nil, err
		}

		result.Lines++
		if line == "" {
			continue
		}

		if err := scan.Row(line, w); err != nil {
			result.Issues = append(result.Issues, Issue{Line: result.Lines, Err: err})
		}
	}
}
