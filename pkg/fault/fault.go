// Package fault defines the fatal error codes reported by logtab.
//
// Every failure the converter can hit maps to one stable symbolic code.
// Codes implement error so they can be returned and wrapped like any other
// error; the CLI prints the bare code as "Error: <CODE>" on stderr.
package fault

import "errors"

// Code is a stable, machine-readable error identifier.
type Code string

// The enumerated fatal conditions. Scripted pipelines match on these
// symbols, so they must never change.
const (
	ErrTooManyArgs                 Code = "ERR_TOO_MANY_ARGS"
	ErrLineIsTooLong               Code = "ERR_LINE_IS_TOO_LONG"
	ErrWrongLineFormat             Code = "ERR_WRONG_LINE_FORMAT"
	ErrInputReadError              Code = "ERR_INPUT_READ_ERROR"
	ErrWrongTimeFormat             Code = "ERR_WRONG_TIME_FORMAT"
	ErrTimeBufferSizeExceeded      Code = "ERR_TIME_BUFFER_SIZE_EXCEEDED"
	ErrFailedToParseMonth          Code = "ERR_FAILED_TO_PARSE_MONTH"
	ErrFailedToParseApacheDatetime Code = "ERR_FAILED_TO_PARSE_APACHE_DATETIME"
)

// Error implements the error interface.
func (c Code) Error() string {
	return string(c)
}

// CodeOf extracts the fault code from an error chain.
// Returns false if no Code is present anywhere in the chain.
func CodeOf(err error) (Code, bool) {
	var c Code
	if errors.As(err, &c) {
		return c, true
	}
	return "", false
}
