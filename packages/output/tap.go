package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/testconsole/packages/script"
)

// TAPFormatter formats replay results in TAP (Test Anything Protocol) format
type TAPFormatter struct {
	writer  io.Writer
	count   int
	results []tapResult
}

type tapResult struct {
	number           int
	name             string
	error            string
	failedAssertions int
}

type TAPOption func(*TAPFormatter)

func NewTAPFormatter(opts ...TAPOption) *TAPFormatter {
	f := &TAPFormatter{
		writer:  os.Stdout,
		results: make([]tapResult, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func TAPWithWriter(w io.Writer) TAPOption {
	return func(f *TAPFormatter) {
		f.writer = w
	}
}

func (f *TAPFormatter) FormatResult(result *script.Result, err error) {
	if result == nil {
		result = &script.Result{}
	}
	f.count++
	tr := tapResult{
		number:           f.count,
		name:             result.Path,
		failedAssertions: result.FailedAssertions,
	}
	if err != nil {
		tr.error = err.Error()
	}
	f.results = append(f.results, tr)
}

func (f *TAPFormatter) FormatError(err error) {
	// Errors are included in individual script results
}

func (f *TAPFormatter) FormatHeader(version string) {
	// Header is written in Flush
}

// Flush writes the accumulated TAP output
func (f *TAPFormatter) Flush(totalDuration time.Duration) error {
	fmt.Fprintf(f.writer, "TAP version 13\n")
	fmt.Fprintf(f.writer, "1..%d\n", f.count)

	for _, r := range f.results {
		switch {
		case r.error != "":
			fmt.Fprintf(f.writer, "not ok %d - %s\n", r.number, r.name)
			fmt.Fprintf(f.writer, "  ---\n")
			fmt.Fprintf(f.writer, "  message: %s\n", escapeYAML(r.error))
			fmt.Fprintf(f.writer, "  severity: error\n")
			fmt.Fprintf(f.writer, "  ...\n")
		case r.failedAssertions > 0:
			fmt.Fprintf(f.writer, "not ok %d - %s\n", r.number, r.name)
			fmt.Fprintf(f.writer, "  ---\n")
			fmt.Fprintf(f.writer, "  failedAssertions: %d\n", r.failedAssertions)
			fmt.Fprintf(f.writer, "  ...\n")
		default:
			fmt.Fprintf(f.writer, "ok %d - %s\n", r.number, r.name)
		}
	}

	fmt.Fprintf(f.writer, "# time %dms\n", totalDuration.Milliseconds())
	return nil
}

func escapeYAML(s string) string {
	// Simple YAML escaping - wrap in quotes if contains special chars
	if strings.ContainsAny(s, ":\n\"'[]{}#&*!|>%@`") {
		s = strings.ReplaceAll(s, "\"", "\\\"")
		return "\"" + s + "\""
	}
	return s
}
