package console

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
)

// DefaultLabel is used by Count, CountReset, Time, TimeLog and TimeEnd when
// they are called with an empty label.
const DefaultLabel = "default"

const indentUnit = "  "

// Console writes console-style output to a pair of sinks, tracking group
// depth, counters and timers.
type Console struct {
	stdout  Sink
	stderr  Sink
	hook    FormatHook
	now     func() time.Time
	noColor bool
	bold    *color.Color

	groupDepth int
	counters   map[string]int
	timers     map[string]time.Time
}

// Option configures a Console.
type Option func(*Console)

// WithFormatHook sets the hook every line is passed through before writing.
// A nil hook leaves the identity hook in place.
func WithFormatHook(hook FormatHook) Option {
	return func(c *Console) {
		if hook != nil {
			c.hook = hook
		}
	}
}

// WithClock replaces time.Now for timers.
func WithClock(now func() time.Time) Option {
	return func(c *Console) {
		if now != nil {
			c.now = now
		}
	}
}

// WithNoColor disables bold group titles.
func WithNoColor(noColor bool) Option {
	return func(c *Console) {
		c.noColor = noColor
	}
}

// New creates a Console writing to stdout and stderr. Nil sinks fall back to
// stream sinks over os.Stdout and os.Stderr.
func New(stdout, stderr Sink, opts ...Option) *Console {
	if stdout == nil {
		stdout = NewStreamSink(os.Stdout)
	}
	if stderr == nil {
		stderr = NewStreamSink(os.Stderr)
	}

	c := &Console{
		stdout:   stdout,
		stderr:   stderr,
		hook:     Identity,
		now:      time.Now,
		counters: make(map[string]int),
		timers:   make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.bold = color.New(color.Bold)
	if c.noColor {
		c.bold.DisableColor()
	}
	return c
}

// GroupDepth returns the current nesting level.
func (c *Console) GroupDepth() int {
	return c.groupDepth
}

// Log writes the formatted arguments to stdout.
func (c *Console) Log(args ...any) {
	c.log(KindLog, Format(args...))
}

// Info writes the formatted arguments to stdout.
func (c *Console) Info(args ...any) {
	c.log(KindInfo, Format(args...))
}

// Debug writes the formatted arguments to stdout.
func (c *Console) Debug(args ...any) {
	c.log(KindDebug, Format(args...))
}

// Dirxml writes the formatted arguments to stdout.
func (c *Console) Dirxml(args ...any) {
	c.log(KindDirxml, Format(args...))
}

// Dir inspects value with opts and writes the result to stdout.
func (c *Console) Dir(value any, opts InspectOptions) {
	c.log(KindDir, Inspect(value, opts))
}

// Warn writes the formatted arguments to stderr.
func (c *Console) Warn(args ...any) {
	c.log(KindWarn, Format(args...))
}

// Error writes the formatted arguments to stderr.
func (c *Console) Error(args ...any) {
	c.log(KindError, Format(args...))
}

// Assert writes an assertion failure to stderr when value is false. It
// never panics; the optional args form the failure message.
func (c *Console) Assert(value bool, args ...any) {
	if value {
		return
	}
	c.log(KindAssert, assertionMessage(args))
}

func assertionMessage(args []any) string {
	if len(args) == 0 {
		return "AssertionError: assertion failed"
	}
	return "AssertionError: " + Format(args...)
}

// Count increments the counter for label and logs "<label>: <count>".
func (c *Console) Count(label string) {
	c.count(labelOrDefault(label))
}

func (c *Console) count(label string) {
	c.counters[label]++
	c.log(KindCount, Format(label+": "+strconv.Itoa(c.counters[label])))
}

// CountReset sets the counter for label back to zero.
func (c *Console) CountReset(label string) {
	c.counters[labelOrDefault(label)] = 0
}

// Group opens a nested group. When a title is given it is written in bold,
// already at the new depth.
func (c *Console) Group(args ...any) {
	c.group(KindGroup, args)
}

// GroupCollapsed behaves like Group; there is no collapsed rendering in a
// text stream.
func (c *Console) GroupCollapsed(args ...any) {
	c.group(KindGroupCollapsed, args)
}

func (c *Console) group(kind Kind, args []any) {
	c.groupDepth++
	if hasTitle(args) {
		c.log(kind, c.bold.Sprint(Format(args...)))
	}
}

// hasTitle reports whether a group call carries a title line. Only a bare
// call or a single nil omits it; an empty string still prints an indented
// blank line.
func hasTitle(args []any) bool {
	return !(len(args) == 0 || len(args) == 1 && args[0] == nil)
}

// GroupEnd closes the innermost group. Extra calls at depth zero are ignored.
func (c *Console) GroupEnd() {
	if c.groupDepth > 0 {
		c.groupDepth--
	}
}

// Time starts a timer for label. A timer that is already running keeps its
// original start.
func (c *Console) Time(label string) {
	label = labelOrDefault(label)
	if _, running := c.timers[label]; running {
		return
	}
	c.timers[label] = c.now()
}

// TimeEnd logs the elapsed time for label and stops the timer. Unknown
// labels are ignored.
func (c *Console) TimeEnd(label string) {
	label = labelOrDefault(label)
	start, ok := c.timers[label]
	if !ok {
		return
	}
	elapsed := c.now().Sub(start)
	c.log(KindTime, Format(label+": "+formatElapsed(elapsed)))
	delete(c.timers, label)
}

// TimeLog logs the elapsed time for label followed by data, leaving the
// timer running. Unknown labels are ignored.
func (c *Console) TimeLog(label string, data ...any) {
	label = labelOrDefault(label)
	start, ok := c.timers[label]
	if !ok {
		return
	}
	elapsed := c.now().Sub(start)
	c.log(KindTime, Format(append([]any{label + ": " + formatElapsed(elapsed)}, data...)...))
}

// Buffer returns the captured history. A Console keeps none, so it always
// returns nil; use a Recorder sink to retain output.
func (c *Console) Buffer() []Entry {
	return nil
}

// log writes message to the sink for kind, indented to the current depth.
func (c *Console) log(kind Kind, message string) {
	sink := c.stdout
	if kind.IsStderr() {
		sink = c.stderr
	}
	sink.ClearLine()
	text := c.hook(kind, strings.Repeat(indentUnit, c.groupDepth)+message)
	_, _ = sink.Write([]byte(text + "\n"))
}

func labelOrDefault(label string) string {
	if label == "" {
		return DefaultLabel
	}
	return label
}
