package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported script format")

// Method names accepted in scripts.
const (
	MethodLog            = "log"
	MethodInfo           = "info"
	MethodDebug          = "debug"
	MethodDirxml         = "dirxml"
	MethodDir            = "dir"
	MethodError          = "error"
	MethodWarn           = "warn"
	MethodAssert         = "assert"
	MethodCount          = "count"
	MethodCountReset     = "countReset"
	MethodGroup          = "group"
	MethodGroupCollapsed = "groupCollapsed"
	MethodGroupEnd       = "groupEnd"
	MethodTime           = "time"
	MethodTimeEnd        = "timeEnd"
	MethodTimeLog        = "timeLog"
)

// Methods lists every method a script may call.
var Methods = []string{
	MethodLog, MethodInfo, MethodDebug, MethodDirxml, MethodDir,
	MethodError, MethodWarn, MethodAssert,
	MethodCount, MethodCountReset,
	MethodGroup, MethodGroupCollapsed, MethodGroupEnd,
	MethodTime, MethodTimeEnd, MethodTimeLog,
}

// Extensions lists the file extensions ParseFile understands.
var Extensions = []string{".jsonl", ".ndjson", ".yaml", ".yml"}

// Call is a single recorded console call.
type Call struct {
	Line    int
	Method  string
	Label   string
	Args    []any
	Value   *bool
	Options DirOptions
}

// DirOptions mirrors console.InspectOptions for dir calls.
type DirOptions struct {
	Depth      int
	ShowHidden bool
	Compact    bool
}

// Script is a parsed sequence of calls.
type Script struct {
	Path  string
	Calls []Call
}

// ParseError describes a call that could not be accepted.
type ParseError struct {
	Line     int
	Problems []string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, strings.Join(e.Problems, "; "))
	}
	return strings.Join(e.Problems, "; ")
}

// IsScriptFile reports whether path has a script extension.
func IsScriptFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ParseFile reads and parses the script at path, choosing the encoding from
// its extension.
func ParseFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	var s *Script
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		s, err = ParseJSONLines(data)
	case ".yaml", ".yml":
		s, err = ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// ParseJSONLines parses one JSON call object per line. Blank lines are
// skipped.
func ParseJSONLines(data []byte) (*Script, error) {
	s := &Script{}
	for i, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		call, err := decodeCall(i+1, []byte(line))
		if err != nil {
			return nil, err
		}
		s.Calls = append(s.Calls, call)
	}
	return s, nil
}

// ParseYAML parses a YAML list of call objects.
func ParseYAML(data []byte) (*Script, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	s := &Script{}
	if len(doc.Content) == 0 {
		return s, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, &ParseError{Line: root.Line, Problems: []string{"script must be a list of calls"}}
	}

	for _, item := range root.Content {
		var value any
		if err := item.Decode(&value); err != nil {
			return nil, &ParseError{Line: item.Line, Problems: []string{err.Error()}}
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, &ParseError{Line: item.Line, Problems: []string{err.Error()}}
		}
		call, err := decodeCall(item.Line, raw)
		if err != nil {
			return nil, err
		}
		s.Calls = append(s.Calls, call)
	}
	return s, nil
}

func decodeCall(line int, raw []byte) (Call, error) {
	if !gjson.ValidBytes(raw) {
		return Call{}, &ParseError{Line: line, Problems: []string{"invalid JSON"}}
	}
	if problems := validateCall(raw); len(problems) > 0 {
		return Call{}, &ParseError{Line: line, Problems: problems}
	}

	r := gjson.ParseBytes(raw)
	call := Call{
		Line:   line,
		Method: r.Get("method").String(),
		Label:  r.Get("label").String(),
	}
	if args := r.Get("args"); args.IsArray() {
		for _, a := range args.Array() {
			call.Args = append(call.Args, a.Value())
		}
	}
	if v := r.Get("value"); v.Exists() {
		b := v.Bool()
		call.Value = &b
	}
	if opts := r.Get("options"); opts.Exists() {
		call.Options = DirOptions{
			Depth:      int(opts.Get("depth").Int()),
			ShowHidden: opts.Get("showHidden").Bool(),
			Compact:    opts.Get("compact").Bool(),
		}
	}
	return call, nil
}
