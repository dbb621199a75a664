// Package tsv writes tab-separated rows to an output stream.
//
// Fields are copied byte-for-byte with no quoting or escaping; the writer
// only supplies the separators and row terminators. Rows are flushed as
// they complete so downstream pipe consumers see output line by line.
package tsv

import (
	"bufio"
	"io"
)

// Writer emits TSV rows to an underlying stream.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a Writer on top of output.
func NewWriter(output io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(output)}
}

// Header writes the column-name row.
func (w *Writer) Header(names []string) error {
	for i, name := range names {
		if i > 0 {
			if err := w.w.WriteByte('\t'); err != nil {
				return err
			}
		}
		if _, err := w.w.WriteString(name); err != nil {
			return err
		}
	}
	return w.EndRow()
}

// Field writes one field's text verbatim.
func (w *Writer) Field(s string) error {
	_, err := w.w.WriteString(s)
	return err
}

// Sep writes the separator between two fields of the same row.
func (w *Writer) Sep() error {
	return w.w.WriteByte('\t')
}

// EndRow terminates the current row and flushes it.
func (w *Writer) EndRow() error {
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// BlankRow writes an empty output line. Used for empty input lines, which
// pass through without fields or separators.
func (w *Writer) BlankRow() error {
	return w.EndRow()
}

// Flush forces any buffered partial row out to the underlying stream.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
