// logtab - Apache access-log to TSV converter
//
// logtab reads Apache Common/Combined access-log lines from stdin and
// writes tab-separated rows to stdout, with the timestamp re-rendered in a
// sortable ISO-8601-like form. It is a strict filter: malformed input is a
// fatal error, not a skip.
package main

import (
	"os"

	"logtab/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
