package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/testconsole/packages/console"
	"github.com/abdul-hamid-achik/testconsole/packages/core/config"
	"github.com/abdul-hamid-achik/testconsole/packages/output"
	"github.com/abdul-hamid-achik/testconsole/packages/script"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file|directory>...",
	Short: "Replay captured console scripts",
	Long: `Replay console calls captured from test workers.

Scripts are JSON Lines (.jsonl, .ndjson) or YAML (.yaml, .yml) files
holding one call per entry, for example:

  {"method":"group","args":["users"]}
  {"method":"log","args":["created %d users",3]}
  {"method":"groupEnd"}

Examples:
  testconsole replay worker-1.jsonl
  testconsole replay ./captured/ --hook labeled
  testconsole replay run.yaml --rate 20 --watch
  testconsole replay ./captured/ -o json --output-file report.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: replayCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	configFlag       string
	hookFlag         string
	noColorFlag      bool
	rateFlag         float64
	outputFlag       string
	outputFileFlag   string
	verboseFlag      int
	watchFlag        bool
	debugFlag        bool
	failOnAssertFlag bool
)

// exit is replaced in tests.
var exit = os.Exit

func init() {
	replayCmd.Flags().StringVar(&configFlag, "config", getEnvString("TESTCONSOLE_CONFIG", ""), "Path to config file (env: TESTCONSOLE_CONFIG)")
	replayCmd.Flags().StringVar(&hookFlag, "hook", getEnvString("TESTCONSOLE_HOOK", ""), "Line format hook: identity, labeled (env: TESTCONSOLE_HOOK)")
	replayCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("TESTCONSOLE_NO_COLOR", false), "Disable colored output (env: TESTCONSOLE_NO_COLOR)")
	replayCmd.Flags().Float64VarP(&rateFlag, "rate", "r", getEnvFloat("TESTCONSOLE_RATE", 0), "Maximum calls replayed per second, 0 for no pacing (env: TESTCONSOLE_RATE)")
	replayCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("TESTCONSOLE_OUTPUT", "console"), "Result format: console, json, tap (env: TESTCONSOLE_OUTPUT)")
	replayCmd.Flags().StringVar(&outputFileFlag, "output-file", getEnvString("TESTCONSOLE_OUTPUT_FILE", ""), "Write results to file (default: stdout) (env: TESTCONSOLE_OUTPUT_FILE)")
	replayCmd.Flags().CountVarP(&verboseFlag, "verbose", "v", "Report every replayed script")
	replayCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch scripts for changes and replay again")
	replayCmd.Flags().BoolVar(&debugFlag, "debug", getEnvBool("TESTCONSOLE_DEBUG", false), "Log diagnostics to stderr (env: TESTCONSOLE_DEBUG)")
	replayCmd.Flags().BoolVar(&failOnAssertFlag, "fail-on-assert", getEnvBool("TESTCONSOLE_FAIL_ON_ASSERT", false), "Exit non-zero when a replayed assert failed (env: TESTCONSOLE_FAIL_ON_ASSERT)")
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// loadReplayConfig reads the config file and applies flags the user set.
func loadReplayConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}

	overrides := &config.Config{Hook: hookFlag}
	if cmd.Flags().Changed("no-color") || noColorFlag {
		overrides.NoColor = config.BoolPtr(noColorFlag)
	}
	if cmd.Flags().Changed("debug") || debugFlag {
		overrides.Debug = config.BoolPtr(debugFlag)
	}
	if rateFlag > 0 {
		overrides.Rate = rateFlag
	}
	cfg = cfg.Merge(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func buildHook(cfg *config.Config) console.FormatHook {
	if cfg.Hook == config.HookLabeled {
		return console.LabeledHook(cfg.GetNoColor())
	}
	return console.Identity
}

func buildFormatter(w io.Writer, errOut io.Writer, noColor bool, entries func() []console.Entry) output.Formatter {
	switch strings.ToLower(outputFlag) {
	case "json":
		return output.NewJSONFormatter(output.JSONWithWriter(w), output.JSONWithEntries(entries))
	case "tap":
		return output.NewTAPFormatter(output.TAPWithWriter(w))
	default:
		return output.NewConsoleFormatter(
			output.WithWriter(errOut),
			output.WithVerbose(verboseFlag > 0),
			output.WithNoColor(noColor),
		)
	}
}

// replaySession replays a set of scripts onto shared, recording sinks.
type replaySession struct {
	cfg       *config.Config
	logger    *zap.Logger
	stdout    *console.Recorder
	stderr    *console.Recorder
	formatter output.Formatter
	results   io.Closer
}

type replaySummary struct {
	parseFailed      int
	failed           int
	failedAssertions int
	duration         time.Duration
}

// isStructuredOutput reports whether results are written as a single document.
func isStructuredOutput() bool {
	switch strings.ToLower(outputFlag) {
	case "json", "tap":
		return true
	}
	return false
}

// newReplaySession opens a fresh results file, truncating any previous run.
// When a structured report goes to stdout, replayed stdout lines are sent to
// stderr so the report stays parseable.
func newReplaySession(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger, reportPath string) (*replaySession, error) {
	s := &replaySession{
		cfg:    cfg,
		logger: logger,
	}

	resultWriter := cmd.OutOrStdout()
	consoleOut := cmd.OutOrStdout()
	if reportPath != "" {
		f, err := os.Create(reportPath)
		if err != nil {
			return nil, fmt.Errorf("cannot create output file: %w", err)
		}
		s.results = f
		resultWriter = f
	} else if isStructuredOutput() {
		consoleOut = cmd.ErrOrStderr()
	}

	s.stdout = console.NewRecorder(console.StreamStdout, console.Tee(console.NewStreamSink(consoleOut)))
	s.stderr = console.NewRecorder(console.StreamStderr, console.Tee(console.NewStreamSink(cmd.ErrOrStderr())))
	s.formatter = buildFormatter(resultWriter, cmd.ErrOrStderr(), cfg.GetNoColor(), func() []console.Entry {
		return console.Merge(s.stdout, s.stderr)
	})
	return s, nil
}

func (s *replaySession) run(ctx context.Context, files []string) replaySummary {
	var summary replaySummary
	start := time.Now()
	s.formatter.FormatHeader(version)

	for _, file := range files {
		parsed, err := script.ParseFile(file)
		if err != nil {
			s.formatter.FormatResult(&script.Result{Path: file}, err)
			summary.parseFailed++
			continue
		}

		// Each script is its own test context with fresh groups, counters and timers.
		c := console.New(s.stdout, s.stderr,
			console.WithFormatHook(buildHook(s.cfg)),
			console.WithNoColor(s.cfg.GetNoColor()),
		)
		executor := script.NewExecutor(c,
			script.WithLogger(s.logger.With(zap.String("script", file))),
			script.WithRate(s.cfg.Rate),
		)

		result, err := executor.Run(ctx, parsed)
		s.formatter.FormatResult(result, err)
		if err != nil {
			summary.failed++
		}
		summary.failedAssertions += result.FailedAssertions
		if ctx.Err() != nil {
			break
		}
	}

	summary.duration = time.Since(start)
	if flushable, ok := s.formatter.(output.Flushable); ok {
		if err := flushable.Flush(summary.duration); err != nil {
			s.formatter.FormatError(fmt.Errorf("failed to write results: %w", err))
		}
	}
	if s.results != nil {
		if err := s.results.Close(); err != nil {
			s.formatter.FormatError(fmt.Errorf("failed to close results: %w", err))
		}
	}
	return summary
}

func (s replaySummary) exitCode() int {
	switch {
	case s.failed > 0:
		return ExitReplayFailure
	case s.parseFailed > 0:
		return ExitParseError
	case failOnAssertFlag && s.failedAssertions > 0:
		return ExitAssertionFailure
	}
	return ExitSuccess
}

func replayCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadReplayConfig(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		exit(ExitConfigError)
		return err
	}

	logger := newLogger(cfg.GetDebug())
	defer func() { _ = logger.Sync() }()

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no script files found (expected %s)", strings.Join(script.Extensions, ", "))
	}

	reportPath := outputFileFlag
	if reportPath == "" {
		reportPath = cfg.Report
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := newReplaySession(cmd, cfg, logger, reportPath)
	if err != nil {
		return err
	}
	summary := session.run(ctx, files)
	logger.Debug("replay finished",
		zap.Int("scripts", len(files)),
		zap.Int("parseFailed", summary.parseFailed),
		zap.Int("failed", summary.failed),
		zap.Duration("duration", summary.duration))

	if !watchFlag {
		if code := summary.exitCode(); code != ExitSuccess {
			exit(code)
		}
		return nil
	}

	return watchScripts(ctx, cmd, args, files, func() {
		rerun, err := newReplaySession(cmd, cfg, logger, reportPath)
		if err != nil {
			session.formatter.FormatError(err)
			return
		}
		rerun.run(ctx, files)
	}, session.formatter)
}

func watchScripts(ctx context.Context, cmd *cobra.Command, args, files []string, rerun func(), formatter output.Formatter) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watchedDirs := make(map[string]bool)
	for _, file := range files {
		dir := filepath.Dir(file)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				formatter.FormatError(fmt.Errorf("failed to watch %s: %w", dir, err))
			}
			watchedDirs[dir] = true
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			_ = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() && !watchedDirs[path] {
					_ = watcher.Add(path)
					watchedDirs[path] = true
				}
				return nil
			})
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) && script.IsScriptFile(event.Name) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				name := event.Name
				debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
					fmt.Fprintf(cmd.ErrOrStderr(), "\n\nFile changed: %s\nReplaying...\n\n", name)
					rerun()
					fmt.Fprintf(cmd.ErrOrStderr(), "\nWatching for changes... (press Ctrl+C to stop)\n")
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			formatter.FormatError(fmt.Errorf("watcher error: %w", err))
		}
	}
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && script.IsScriptFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if script.IsScriptFile(arg) {
			files = append(files, arg)
		}
	}

	return files, nil
}
