// Package scan decomposes one Apache Common/Combined access-log line into
// its nine fields and re-emits them tab-separated.
//
// The scanner walks the line left to right with a monotonic cursor and
// validates structure as it goes: unquoted fields are runs of non-space
// bytes, the timestamp is a bracketed token handed to apachetime, and the
// request/referrer/agent fields are quote-enclosed. Any structural
// violation stops the scan with a wrong-line-format fault carrying the
// 1-based column where it happened. Fields already extracted may have been
// written before the fault is detected; the converter aborts anyway, so
// nothing is rolled back.
package scan

import (
	"fmt"

	"logtab/pkg/apachetime"
	"logtab/pkg/fault"
	"logtab/pkg/tsv"
)

// FieldNames lists the nine output columns in grammar order.
var FieldNames = []string{
	"host", "identity", "user", "time", "request",
	"status", "bytes", "referrer", "agent",
}

// Row scans one raw line (newline already stripped) and writes its nine
// fields to w as a single TSV row. The input must not be empty; the caller
// handles the empty-line passthrough.
func Row(line string, w *tsv.Writer) error {
	pos := 0

	// (%h) host
	pos = writeToken(line, pos, w)
	pos = skipSpaces(line, pos)
	if err := w.Sep(); err != nil {
		return err
	}

	// (%l) identity
	pos = writeToken(line, pos, w)
	pos = skipSpaces(line, pos)
	if err := w.Sep(); err != nil {
		return err
	}

	// (%u) user
	pos = writeToken(line, pos, w)
	pos = skipSpaces(line, pos)
	if err := w.Sep(); err != nil {
		return err
	}

	// (%t) time
	pos, err := writeTimestamp(line, pos, w)
	if err != nil {
		return err
	}
	pos = skipSpaces(line, pos)
	if err := w.Sep(); err != nil {
		return err
	}

	// ("%r") request line
	pos, err = writeEnclosed(line, pos, '"', '"', w)
	if err != nil {
		return err
	}
	pos = skipSpaces(line, pos)
	if err := w.Sep(); err != nil {
		return err
	}

	// (%s) status code
	pos = writeToken(line, pos, w)
	pos = skipSpaces(line, pos)
	if err := w.Sep(); err != nil {
		return err
	}

	// (%b) bytes sent
	pos = writeToken(line, pos, w)
	pos = skipSpaces(line, pos)
	if err := w.Sep(); err != nil {
		return err
	}

	// Combined Log Format additions.

	// ("%{Referer}i") referrer
	pos, err = writeEnclosed(line, pos, '"', '"', w)
	if err != nil {
		return err
	}
	pos = skipSpaces(line, pos)
	if err := w.Sep(); err != nil {
		return err
	}

	// ("%{User-agent}i") user agent, then nothing but the terminator
	pos, err = writeEnclosed(line, pos, '"', '"', w)
	if err != nil {
		return err
	}
	if pos != len(line) {
		return formatErr(pos)
	}

	return w.EndRow()
}

// writeToken copies the run of non-space bytes starting at pos and returns
// the cursor after it. A cursor already on whitespace or at end of line
// yields an empty field, which the grammar permits.
func writeToken(line string, pos int, w *tsv.Writer) int {
	end := pos
	for end < len(line) && !isSpace(line[end]) {
		end++
	}
	_ = w.Field(line[pos:end])
	return end
}

// writeEnclosed requires the opening delimiter at pos, copies everything up
// to the matching closing delimiter, and returns the cursor past it.
func writeEnclosed(line string, pos int, op, cl byte, w *tsv.Writer) (int, error) {
	if pos >= len(line) || line[pos] != op {
		return pos, formatErr(pos)
	}
	pos++
	end := pos
	for end < len(line) && line[end] != cl {
		end++
	}
	if end >= len(line) {
		return pos, formatErr(end)
	}
	if err := w.Field(line[pos:end]); err != nil {
		return end, err
	}
	return end + 1, nil
}

// writeTimestamp handles the bracketed Apache datetime token: it checks the
// brackets itself and delegates the body to apachetime, writing the
// re-rendered form as the field text.
func writeTimestamp(line string, pos int, w *tsv.Writer) (int, error) {
	if pos >= len(line) || line[pos] != '[' {
		return pos, formatErr(pos)
	}
	pos++

	c, n, err := apachetime.Parse(line[pos:])
	if err != nil {
		return pos, err
	}
	if n == 0 {
		return pos, fault.ErrWrongTimeFormat
	}
	pos += n

	if pos >= len(line) || line[pos] != ']' {
		return pos, formatErr(pos)
	}
	pos++

	rendered, err := c.Render()
	if err != nil {
		return pos, err
	}
	if err := w.Field(rendered); err != nil {
		return pos, err
	}
	return pos, nil
}

// skipSpaces advances past the run of whitespace starting at pos.
func skipSpaces(line string, pos int) int {
	for pos < len(line) && isSpace(line[pos]) {
		pos++
	}
	return pos
}

// isSpace matches the C locale whitespace class. Carriage returns count,
// so CRLF input fails the terminator check instead of slipping through.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func formatErr(pos int) error {
	return fmt.Errorf("column %d: %w", pos+1, fault.ErrWrongLineFormat)
}
