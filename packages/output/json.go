package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/testconsole/packages/console"
	"github.com/abdul-hamid-achik/testconsole/packages/script"
	"github.com/google/uuid"
)

// JSONOutput represents the complete JSON report
type JSONOutput struct {
	RunID    string          `json:"runId"`
	Summary  JSONSummary     `json:"summary"`
	Scripts  []JSONScript    `json:"scripts"`
	Entries  []console.Entry `json:"entries,omitempty"`
	Duration float64         `json:"duration"`
	Time     string          `json:"time"`
}

// JSONSummary represents the replay summary
type JSONSummary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Calls  int `json:"calls"`
}

// JSONScript represents a single replayed script
type JSONScript struct {
	Path     string  `json:"path"`
	Executed int     `json:"executed"`
	Duration float64 `json:"duration"`
	Error    string  `json:"error,omitempty"`
}

// JSONFormatter collects replay results and writes them as one JSON document
type JSONFormatter struct {
	writer  io.Writer
	runID   string
	entries func() []console.Entry
	now     func() time.Time
	scripts []JSONScript
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer:  os.Stdout,
		runID:   uuid.NewString(),
		now:     time.Now,
		scripts: make([]JSONScript, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

// JSONWithEntries sets where captured console lines are read from at flush.
func JSONWithEntries(source func() []console.Entry) JSONOption {
	return func(f *JSONFormatter) {
		f.entries = source
	}
}

// JSONWithRunID overrides the generated run id.
func JSONWithRunID(id string) JSONOption {
	return func(f *JSONFormatter) {
		f.runID = id
	}
}

// RunID returns the id stamped on the report.
func (f *JSONFormatter) RunID() string {
	return f.runID
}

func (f *JSONFormatter) FormatResult(result *script.Result, err error) {
	if result == nil {
		result = &script.Result{}
	}
	s := JSONScript{
		Path:     result.Path,
		Executed: result.Executed,
		Duration: float64(result.Duration.Milliseconds()),
	}
	if err != nil {
		s.Error = err.Error()
	}
	f.scripts = append(f.scripts, s)
}

func (f *JSONFormatter) FormatError(err error) {
	// Errors are included in individual script results
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	summary := JSONSummary{Total: len(f.scripts)}
	for _, s := range f.scripts {
		if s.Error != "" {
			summary.Failed++
		} else {
			summary.Passed++
		}
		summary.Calls += s.Executed
	}

	output := JSONOutput{
		RunID:    f.runID,
		Summary:  summary,
		Scripts:  f.scripts,
		Duration: float64(totalDuration.Milliseconds()),
		Time:     f.now().Format(time.RFC3339),
	}
	if f.entries != nil {
		output.Entries = f.entries()
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
