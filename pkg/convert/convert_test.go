package convert

import (
	"context"
	"errors"
	"strings"
	"testing"

	"logtab/pkg/config"
	"logtab/pkg/fault"
)

const header = "host\tidentity\tuser\ttime\trequest\tstatus\tbytes\treferrer\tagent\n"

func runConvert(t *testing.T, input string) (string, error) {
	t.Helper()
	var sb strings.Builder
	c := New(strings.NewReader(input), &sb, config.DefaultConfig())
	err := c.Run(context.Background())
	return sb.String(), err
}

func TestRun_ConcreteExample(t *testing.T) {
	input := `127.0.0.1 - frank [10/Oct/2000:13:55:36 -0700] "GET /apache_pb.gif HTTP/1.0" 200 2326 "http://www.example.com/start.html" "Mozilla/4.08"` + "\n"
	want := header +
		"127.0.0.1\t-\tfrank\t2000-10-10T13:55:36-0700\tGET /apache_pb.gif HTTP/1.0\t200\t2326\thttp://www.example.com/start.html\tMozilla/4.08\n"

	got, err := runConvert(t, input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != want {
		t.Errorf("Run() output = %q\nwant %q", got, want)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	got, err := runConvert(t, "")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != header {
		t.Errorf("Run() output = %q, want header only", got)
	}
}

func TestRun_EmptyLineIdentity(t *testing.T) {
	// Bare newlines pass through as bare newlines, header still first.
	got, err := runConvert(t, "\n\n\n")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != header+"\n\n\n" {
		t.Errorf("Run() output = %q", got)
	}
}

func TestRun_MultipleLines(t *testing.T) {
	input := strings.Join([]string{
		`10.0.0.1 - - [09/Nov/2017:04:03:06 +0200] "GET / HTTP/1.1" 200 3129 "-" "-"`,
		``,
		`10.0.0.2 - - [09/Nov/2017:07:50:26 +0200] "GET /x HTTP/1.1" 404 624 "-" "curl/8.0"`,
	}, "\n") + "\n"

	got, err := runConvert(t, input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	lines := strings.SplitAfter(got, "\n")
	// header, row, blank, row, plus trailing empty split element
	if len(lines) != 5 {
		t.Fatalf("got %d output chunks: %q", len(lines), got)
	}
	if lines[2] != "\n" {
		t.Errorf("blank input line should stay blank, got %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "10.0.0.2\t-\t-\t2017-11-09T07:50:26+0200\t") {
		t.Errorf("second row = %q", lines[3])
	}
}

func TestRun_AbortsOnFirstBadLine(t *testing.T) {
	input := strings.Join([]string{
		`10.0.0.1 - - [09/Nov/2017:04:03:06 +0200] "GET / HTTP/1.1" 200 3129 "-" "-"`,
		`this is not an access log line`,
		`10.0.0.2 - - [09/Nov/2017:07:50:26 +0200] "GET / HTTP/1.1" 200 3129 "-" "-"`,
	}, "\n") + "\n"

	got, err := runConvert(t, input)
	if !errors.Is(err, fault.ErrWrongLineFormat) {
		t.Fatalf("Run() error = %v, want ERR_WRONG_LINE_FORMAT", err)
	}
	// The good first row made it out; the third line was never processed.
	if !strings.Contains(got, "10.0.0.1\t") {
		t.Errorf("first row missing from output: %q", got)
	}
	if strings.Contains(got, "10.0.0.2") {
		t.Errorf("output contains rows after the fatal line: %q", got)
	}
}

func TestRun_LineTooLong(t *testing.T) {
	input := strings.Repeat("a", 5000) + "\n"

	_, err := runConvert(t, input)
	if !errors.Is(err, fault.ErrLineIsTooLong) {
		t.Errorf("Run() error = %v, want ERR_LINE_IS_TOO_LONG", err)
	}
}

func TestRun_HeaderDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Header = false

	var sb strings.Builder
	c := New(strings.NewReader("\n"), &sb, cfg)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sb.String() != "\n" {
		t.Errorf("Run() output = %q, want single newline", sb.String())
	}
}

func TestRun_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sb strings.Builder
	c := New(strings.NewReader("\n\n"), &sb, config.DefaultConfig())
	if err := c.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestCheck(t *testing.T) {
	input := strings.Join([]string{
		`10.0.0.1 - - [09/Nov/2017:04:03:06 +0200] "GET / HTTP/1.1" 200 3129 "-" "-"`,
		`broken line`,
		``,
		`10.0.0.2 - - [09/Xxx/2017:07:50:26 +0200] "GET / HTTP/1.1" 200 3129 "-" "-"`,
		`10.0.0.3 - - [09/Nov/2017:08:00:00 +0200] "GET / HTTP/1.1" 200 3129 "-" "-"`,
	}, "\n") + "\n"

	result, err := Check(context.Background(), strings.NewReader(input), 4096)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if result.Lines != 5 {
		t.Errorf("Lines = %d, want 5", result.Lines)
	}
	if len(result.Issues) != 2 {
		t.Fatalf("got %d issues, want 2: %+v", len(result.Issues), result.Issues)
	}
	if result.Issues[0].Line != 2 || !errors.Is(result.Issues[0].Err, fault.ErrWrongLineFormat) {
		t.Errorf("issue 0 = %+v", result.Issues[0])
	}
	if result.Issues[1].Line != 4 || !errors.Is(result.Issues[1].Err, fault.ErrFailedToParseMonth) {
		t.Errorf("issue 1 = %+v", result.Issues[1])
	}
}

func TestCheck_ReaderFaultAborts(t *testing.T) {
	input := "ok line that is not scanned yet" + strings.Repeat("x", 5000)

	_, err := Check(context.Background(), strings.NewReader(input), 4096)
	if !errors.Is(err, fault.ErrLineIsTooLong) {
		t.Errorf("Check() error = %v, want ERR_LINE_IS_TOO_LONG", err)
	}
}
