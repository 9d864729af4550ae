package console

import (
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// DefaultInspectDepth is the nesting depth used when InspectOptions.Depth is
// zero.
const DefaultInspectDepth = 2

// InspectOptions controls how Inspect renders complex values.
type InspectOptions struct {
	// Depth limits how far nested values are expanded. Zero means
	// DefaultInspectDepth; a negative depth means unlimited.
	Depth int
	// ShowHidden includes types and lengths in the output.
	ShowHidden bool
	// Compact renders on a single line.
	Compact bool
}

// Inspect renders v for display. Strings are single-quoted, numbers and
// booleans are printed plainly, errors print their message and everything
// else is dumped with spew.
func Inspect(v any, opts InspectOptions) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return quote(val)
	case bool:
		return strconv.FormatBool(val)
	case error:
		return val.Error()
	}
	if n, ok := exactNumber(v); ok {
		return n
	}

	cfg := spewConfig(opts)
	if opts.Compact {
		if opts.ShowHidden {
			return cfg.Sprintf("%#+v", v)
		}
		return cfg.Sprintf("%+v", v)
	}
	return strings.TrimRight(cfg.Sdump(v), "\n")
}

func spewConfig(opts InspectOptions) *spew.ConfigState {
	depth := opts.Depth
	switch {
	case depth == 0:
		depth = DefaultInspectDepth + 1
	case depth < 0:
		depth = 0
	default:
		depth++
	}
	return &spew.ConfigState{
		Indent:                  indentUnit,
		MaxDepth:                depth,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
		DisableMethods:          opts.ShowHidden,
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}
