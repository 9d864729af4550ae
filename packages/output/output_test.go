package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/testconsole/packages/console"
	"github.com/abdul-hamid-achik/testconsole/packages/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatHeader("1.0.0")
	f.FormatResult(&script.Result{Path: "ok.jsonl", Executed: 3}, nil)
	assert.Empty(t, buf.String(), "quiet unless verbose")

	f.FormatResult(&script.Result{Path: "bad.jsonl"}, errors.New("line 2: unknown console method"))
	f.FormatError(errors.New("watcher failed"))

	out := buf.String()
	assert.Contains(t, out, "✗ bad.jsonl (line 2: unknown console method)")
	assert.Contains(t, out, "Error: watcher failed")
}

func TestConsoleFormatterVerbose(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true), WithVerbose(true))

	f.FormatHeader("1.0.0")
	f.FormatResult(&script.Result{Path: "ok.jsonl", Executed: 3, Duration: 12 * time.Millisecond}, nil)

	assert.Equal(t, "testconsole 1.0.0\n✓ ok.jsonl (3 calls, 12ms)\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	entries := []console.Entry{{Stream: console.StreamStdout, Text: "hello"}}
	f := NewJSONFormatter(
		JSONWithWriter(&buf),
		JSONWithRunID("run-1"),
		JSONWithEntries(func() []console.Entry { return entries }),
	)

	f.FormatResult(&script.Result{Path: "a.jsonl", Executed: 4}, nil)
	f.FormatResult(&script.Result{Path: "b.jsonl", Executed: 1}, errors.New("boom"))
	require.NoError(t, f.Flush(20*time.Millisecond))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "run-1", out.RunID)
	assert.Equal(t, JSONSummary{Total: 2, Passed: 1, Failed: 1, Calls: 5}, out.Summary)
	require.Len(t, out.Scripts, 2)
	assert.Equal(t, "boom", out.Scripts[1].Error)
	require.Len(t, out.Entries, 1)
	assert.Equal(t, "hello", out.Entries[0].Text)
	assert.Equal(t, 20.0, out.Duration)
}

func TestJSONFormatterGeneratesRunID(t *testing.T) {
	a := NewJSONFormatter()
	b := NewJSONFormatter()
	assert.Len(t, a.RunID(), 36)
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestTAPFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTAPFormatter(TAPWithWriter(&buf))

	f.FormatResult(&script.Result{Path: "a.jsonl"}, nil)
	f.FormatResult(&script.Result{Path: "b.jsonl", FailedAssertions: 2}, nil)
	f.FormatResult(&script.Result{Path: "c.jsonl"}, errors.New("line 1: bad"))
	require.NoError(t, f.Flush(5*time.Millisecond))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "TAP version 13", lines[0])
	assert.Equal(t, "1..3", lines[1])
	assert.Contains(t, lines, "ok 1 - a.jsonl")
	assert.Contains(t, lines, "not ok 2 - b.jsonl")
	assert.Contains(t, lines, "  failedAssertions: 2")
	assert.Contains(t, lines, "not ok 3 - c.jsonl")
	assert.Contains(t, lines, `  message: "line 1: bad"`)
	assert.Equal(t, "# time 5ms", lines[len(lines)-1])
}

func TestFormattersImplementInterfaces(t *testing.T) {
	var _ Formatter = NewConsoleFormatter()
	var _ Formatter = NewJSONFormatter()
	var _ Formatter = NewTAPFormatter()
	var _ Flushable = NewJSONFormatter()
	var _ Flushable = NewTAPFormatter()
}
