// Package reader provides bounded, line-at-a-time reading of the input
// stream.
//
// A line is only accepted once its terminator has been seen within the
// length ceiling; an overlong line or a final line cut off by EOF before
// any newline is a fatal fault, never a silent truncation.
package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"logtab/pkg/fault"
)

// DefaultMaxLineBytes is the contractual line buffer size, terminator
// included: up to 4095 significant characters plus the newline.
const DefaultMaxLineBytes = 4096

// LineReader yields one line per call from an underlying stream.
type LineReader struct {
	br  *bufio.Reader
	max int // significant characters allowed per line, newline excluded
}

// NewLineReader creates a LineReader with the given buffer size in bytes,
// terminator included. Sizes below two bytes fall back to the default.
func NewLineReader(input io.Reader, maxLineBytes int) *LineReader {
	if maxLineBytes < 2 {
		maxLineBytes = DefaultMaxLineBytes
	}
	return &LineReader{
		br:  bufio.NewReader(input),
		max: maxLineBytes - 1,
	}
}

// Next returns the next line with its newline stripped.
// Returns io.EOF on clean end of input. A line whose terminator is not
// found within the ceiling yields ERR_LINE_IS_TOO_LONG; any other stream
// failure yields ERR_INPUT_READ_ERROR.
func (r *LineReader) Next() (string, error) {
	var buf []byte
	for {
		chunk, err := r.br.ReadSlice('\n')
		buf = append(buf, chunk...)

		switch {
		case err == nil:
			line := buf[:len(buf)-1]
			if len(line) > r.max {
				return "", fault.ErrLineIsTooLong
			}
			return string(line), nil

		case errors.Is(err, bufio.ErrBufferFull):
			if len(buf) > r.max {
				return "", fault.ErrLineIsTooLong
			}
			// Terminator may still arrive within the ceiling; keep reading.

		case errors.Is(err, io.EOF):
			if len(buf) == 0 {
				return "", io.EOF
			}
			// Data without a terminator: the newline was never found.
			return "", fault.ErrLineIsTooLong

		default:
			return "", fmt.Errorf("%w: %v", fault.ErrInputReadError, err)
		}
	}
}
