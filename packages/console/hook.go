package console

import (
	"strings"

	"github.com/fatih/color"
)

// FormatHook transforms a line of a given kind before it is written. Hooks
// should be pure.
type FormatHook func(kind Kind, text string) string

// Identity returns text unchanged.
func Identity(_ Kind, text string) string {
	return text
}

// ChainHooks applies hooks in order. Nil hooks are skipped.
func ChainHooks(hooks ...FormatHook) FormatHook {
	return func(kind Kind, text string) string {
		for _, h := range hooks {
			if h != nil {
				text = h(kind, text)
			}
		}
		return text
	}
}

// LabeledHook prefixes each line with a "console.<kind>" tag, coloured by
// severity unless noColor is set. Leading indentation is kept in front of
// the tag.
func LabeledHook(noColor bool) FormatHook {
	palette := map[Kind]*color.Color{
		KindError:  color.New(color.FgRed),
		KindAssert: color.New(color.FgRed),
		KindWarn:   color.New(color.FgYellow),
		KindInfo:   color.New(color.FgCyan),
		KindDebug:  color.New(color.Faint),
		KindTime:   color.New(color.FgMagenta),
	}
	plain := color.New(color.Faint)
	if noColor {
		plain.DisableColor()
		for _, c := range palette {
			c.DisableColor()
		}
	}

	tag := func(kind Kind) string {
		c, ok := palette[kind]
		if !ok {
			c = plain
		}
		return c.Sprint("console."+kind.String()) + " "
	}
	tags := make(map[Kind]string, len(Kinds))
	for _, kind := range Kinds {
		tags[kind] = tag(kind)
	}

	return func(kind Kind, text string) string {
		prefix, ok := tags[kind]
		if !ok {
			prefix = tag(kind)
		}
		body := strings.TrimLeft(text, " ")
		indent := text[:len(text)-len(body)]
		return indent + prefix + body
	}
}
