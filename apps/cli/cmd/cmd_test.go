package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdul-hamid-achik/testconsole/packages/core/config"
	"github.com/abdul-hamid-achik/testconsole/packages/output"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func resetFlags(t *testing.T) {
	t.Helper()
	configFlag = ""
	hookFlag = ""
	noColorFlag = false
	rateFlag = 0
	outputFlag = "console"
	outputFileFlag = ""
	verboseFlag = 0
	watchFlag = false
	debugFlag = false
	failOnAssertFlag = false
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func stubExit(t *testing.T) *int {
	t.Helper()
	code := -1
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = os.Exit })
	return &code
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReplayCommand(t *testing.T) {
	resetFlags(t)
	code := stubExit(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "worker.jsonl", `{"method":"group","args":["outer"]}
{"method":"log","args":["hello"]}
{"method":"warn","args":["careful"]}
{"method":"groupEnd"}
{"method":"log","args":["done"]}
`)

	stdout, stderr, err := execute(t, "replay", path, "--no-color")
	require.NoError(t, err)
	assert.Equal(t, -1, *code)
	assert.Equal(t, "  outer\n  hello\ndone\n", stdout)
	assert.Equal(t, "  careful\n", stderr)
}

func TestReplayCommandParseFailure(t *testing.T) {
	resetFlags(t)
	code := stubExit(t)
	dir := t.TempDir()
	writeFile(t, dir, "bad.jsonl", `{"method":"table"}`)

	_, stderr, err := execute(t, "replay", dir, "--no-color")
	require.NoError(t, err)
	assert.Equal(t, ExitParseError, *code)
	assert.Contains(t, stderr, "bad.jsonl")
}

func TestReplayCommandReplayFailure(t *testing.T) {
	resetFlags(t)
	code := stubExit(t)
	dir := t.TempDir()
	writeFile(t, dir, "bad.jsonl", `{"method":"table"}`)
	writeFile(t, dir, "missing-value.jsonl", `{"method":"assert"}`)

	_, stderr, err := execute(t, "replay", dir, "--no-color")
	require.NoError(t, err)
	assert.Equal(t, ExitReplayFailure, *code, "replay failures outrank parse failures")
	assert.Contains(t, stderr, "assert requires a value")
}

func TestReplayCommandJSONToStdout(t *testing.T) {
	resetFlags(t)
	code := stubExit(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "worker.jsonl", `{"method":"log","args":["hello"]}
{"method":"error","args":["oops"]}`)

	stdout, stderr, err := execute(t, "replay", path, "--no-color", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, -1, *code)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Len(t, out["entries"], 2)
	assert.Equal(t, "hello\noops\n", stderr)
}

func TestReplayCommandTAPToStdout(t *testing.T) {
	resetFlags(t)
	stubExit(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "worker.jsonl", `{"method":"log","args":["hello"]}`)

	stdout, stderr, err := execute(t, "replay", path, "--no-color", "-o", "tap")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "TAP version 13\n"))
	assert.NotContains(t, stdout, "hello")
	assert.Contains(t, stderr, "hello")
}

func TestReplaySessionRerunTruncatesReport(t *testing.T) {
	resetFlags(t)
	outputFlag = "json"
	dir := t.TempDir()
	first := writeFile(t, dir, "first.jsonl", `{"method":"log","args":["one"]}`)
	second := writeFile(t, dir, "second.jsonl", `{"method":"log","args":["two"]}`)
	report := filepath.Join(dir, "report.json")

	var stdout, stderr bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&stdout)
	c.SetErr(&stderr)
	cfg := config.DefaultConfig()

	for _, file := range []string{first, second} {
		session, err := newReplaySession(c, cfg, zap.NewNop(), report)
		require.NoError(t, err)
		session.run(context.Background(), []string{file})
	}

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	var out output.JSONOutput
	require.NoError(t, json.Unmarshal(data, &out), "report holds a single document")
	require.Len(t, out.Scripts, 1)
	assert.Equal(t, second, out.Scripts[0].Path)
	assert.Equal(t, "one\ntwo\n", stdout.String())
}

func TestReplaySessionWritesHeaderEachRun(t *testing.T) {
	resetFlags(t)
	verboseFlag = 1
	dir := t.TempDir()
	path := writeFile(t, dir, "worker.jsonl", `{"method":"log","args":["x"]}`)

	var stdout, stderr bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&stdout)
	c.SetErr(&stderr)
	cfg := config.DefaultConfig().Merge(&config.Config{NoColor: config.BoolPtr(true)})

	for i := 0; i < 2; i++ {
		session, err := newReplaySession(c, cfg, zap.NewNop(), "")
		require.NoError(t, err)
		summary := session.run(context.Background(), []string{path})
		assert.Equal(t, ExitSuccess, summary.exitCode())
	}

	assert.Equal(t, 2, strings.Count(stderr.String(), "testconsole "+version))
}

func TestReplayCommandFailOnAssert(t *testing.T) {
	resetFlags(t)
	code := stubExit(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "asserts.yaml", "- method: assert\n  value: false\n  args: [boom]\n")

	_, stderr, err := execute(t, "replay", path, "--no-color", "--fail-on-assert")
	require.NoError(t, err)
	assert.Equal(t, ExitAssertionFailure, *code)
	assert.Contains(t, stderr, "AssertionError: boom")
}

func TestReplayCommandJSONReport(t *testing.T) {
	resetFlags(t)
	stubExit(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "worker.jsonl", `{"method":"count","label":"hits"}`)
	report := filepath.Join(dir, "report.json")

	_, _, err := execute(t, "replay", path, "--no-color", "-o", "json", "--output-file", report)
	require.NoError(t, err)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.NotEmpty(t, out["runId"])
	entries, ok := out["entries"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, "hits: 1", entries[0].(map[string]any)["text"])
}

func TestValidateCommand(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yml", "- method: log\n  args: [hi]\n")
	bad := writeFile(t, dir, "bad.jsonl", `{"method":"log","extra":1}`)

	stdout, _, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Valid: "+good+" (1 calls)")

	_, stderr, err := execute(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, stderr, "bad.jsonl")
}

func TestSchemaCommand(t *testing.T) {
	stdout, _, err := execute(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"groupCollapsed"`)
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.jsonl", "")
	writeFile(t, dir, "b.yaml", "")
	writeFile(t, dir, "notes.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
	writeFile(t, filepath.Join(dir, "nested"), "c.ndjson", "")

	files, err := collectFiles([]string{dir})
	require.NoError(t, err)
	assert.Len(t, files, 3)

	_, err = collectFiles([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestBuildHook(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, "x", buildHook(cfg)("log", "x"))

	cfg.Hook = config.HookLabeled
	cfg.NoColor = config.BoolPtr(true)
	assert.Equal(t, "console.log x", buildHook(cfg)("log", "x"))
}
