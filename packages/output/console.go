package output

import (
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/testconsole/packages/script"
	"github.com/fatih/color"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool

	green *color.Color
	red   *color.Color
	cyan  *color.Color
	bold  *color.Color
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stderr,
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		cyan:   color.New(color.FgCyan),
		bold:   color.New(color.Bold),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		if !nc {
			return
		}
		for _, c := range []*color.Color{f.green, f.red, f.cyan, f.bold} {
			c.DisableColor()
		}
	}
}

// FormatResult prints a one-line summary for a replayed script. Successful
// runs are only reported in verbose mode so they do not interleave with the
// replayed output.
func (f *ConsoleFormatter) FormatResult(result *script.Result, err error) {
	if result == nil {
		result = &script.Result{}
	}
	if err != nil {
		fmt.Fprintf(f.writer, "%s %s %s\n", f.red.Sprint("✗"), result.Path, f.red.Sprintf("(%v)", err))
		return
	}
	if !f.verbose {
		return
	}
	fmt.Fprintf(f.writer, "%s %s %s\n", f.green.Sprint("✓"), result.Path,
		f.cyan.Sprintf("(%d calls, %dms)", result.Executed, result.Duration.Milliseconds()))
}

func (f *ConsoleFormatter) FormatError(err error) {
	fmt.Fprintf(f.writer, "%s %v\n", f.red.Sprint("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	if !f.verbose {
		return
	}
	fmt.Fprintf(f.writer, "%s %s\n", f.bold.Sprint("testconsole"), version)
}
