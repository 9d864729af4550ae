package console

import (
	"sort"
	"strings"
	"time"
)

// Stream names the sink an Entry was written to.
type Stream string

const (
	StreamStdout Stream = "stdout"
	StreamStderr Stream = "stderr"
)

// Entry is one line of retained console output.
type Entry struct {
	Stream Stream    `json:"stream"`
	Text   string    `json:"text"`
	Time   time.Time `json:"time"`
}

// Recorder is a Sink that keeps every line written to it and optionally
// forwards writes to another Sink.
type Recorder struct {
	stream  Stream
	next    Sink
	now     func() time.Time
	partial strings.Builder
	entries []Entry
	clears  int
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// Tee forwards writes and line clears to next.
func Tee(next Sink) RecorderOption {
	return func(r *Recorder) {
		r.next = next
	}
}

// WithRecorderClock replaces time.Now for entry timestamps.
func WithRecorderClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRecorder creates a Recorder tagging entries with stream.
func NewRecorder(stream Stream, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		stream: stream,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Write splits p into lines. A trailing unterminated fragment is held until
// the rest of its line arrives or ClearLine discards it.
func (r *Recorder) Write(p []byte) (int, error) {
	r.partial.Write(p)
	buffered := r.partial.String()
	lines := strings.Split(buffered, "\n")
	r.partial.Reset()
	r.partial.WriteString(lines[len(lines)-1])
	for _, line := range lines[:len(lines)-1] {
		r.entries = append(r.entries, Entry{Stream: r.stream, Text: line, Time: r.now()})
	}

	if r.next != nil {
		return r.next.Write(p)
	}
	return len(p), nil
}

// ClearLine discards any unterminated fragment.
func (r *Recorder) ClearLine() {
	r.clears++
	r.partial.Reset()
	if r.next != nil {
		r.next.ClearLine()
	}
}

// Entries returns a copy of the recorded lines.
func (r *Recorder) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lines returns the text of every recorded line.
func (r *Recorder) Lines() []string {
	lines := make([]string, len(r.entries))
	for i, e := range r.entries {
		lines[i] = e.Text
	}
	return lines
}

// Clears returns how many times ClearLine was called.
func (r *Recorder) Clears() int {
	return r.clears
}

// Reset drops all recorded state.
func (r *Recorder) Reset() {
	r.entries = nil
	r.partial.Reset()
	r.clears = 0
}

// Merge returns the entries of all recorders ordered by time. Entries with
// equal timestamps keep recorder order.
func Merge(recorders ...*Recorder) []Entry {
	var all []Entry
	for _, r := range recorders {
		all = append(all, r.entries...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Time.Before(all[j].Time)
	})
	return all
}
