package console

import (
	"fmt"
	"time"
)

var siPrefixes = []string{"n", "μ", "m", ""}

// FormatTime renders value with a unit chosen from prefixPower, the power of
// ten the value is expressed in (-9 nanoseconds, -6 microseconds,
// -3 milliseconds, 0 seconds). The number is left-padded to padLeft runes.
func FormatTime(value int64, prefixPower, padLeft int) string {
	idx := prefixPower/3 + len(siPrefixes) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > len(siPrefixes)-1 {
		idx = len(siPrefixes) - 1
	}
	return fmt.Sprintf("%*d %ss", padLeft, value, siPrefixes[idx])
}

// formatElapsed reports whole milliseconds, e.g. "12 ms".
func formatElapsed(d time.Duration) string {
	return FormatTime(d.Milliseconds(), -3, 0)
}
