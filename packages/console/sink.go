package console

import (
	"io"

	"github.com/mattn/go-isatty"
)

// clearLineSequence moves the cursor to column zero and erases the line.
const clearLineSequence = "\x1b[999D\x1b[K"

// Sink receives console output.
type Sink interface {
	io.Writer
	// ClearLine erases any unterminated line, such as a progress indicator,
	// before the next write.
	ClearLine()
}

// StreamSink writes to an io.Writer. Line clearing is only emitted when the
// writer is a terminal.
type StreamSink struct {
	w   io.Writer
	tty bool
}

// NewStreamSink wraps w. Terminal detection applies to writers exposing a
// file descriptor, such as *os.File.
func NewStreamSink(w io.Writer) *StreamSink {
	s := &StreamSink{w: w}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		s.tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return s
}

func (s *StreamSink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// ClearLine erases the current terminal line.
func (s *StreamSink) ClearLine() {
	if !s.tty {
		return
	}
	_, _ = io.WriteString(s.w, clearLineSequence)
}

// IsTerminal reports whether the wrapped writer is a terminal.
func (s *StreamSink) IsTerminal() bool {
	return s.tty
}
