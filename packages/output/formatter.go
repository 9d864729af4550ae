package output

import (
	"time"

	"github.com/abdul-hamid-achik/testconsole/packages/script"
)

// Formatter reports replay results.
type Formatter interface {
	FormatResult(result *script.Result, err error)
	FormatError(err error)
	FormatHeader(version string)
}

// Flushable is implemented by formatters that accumulate results and write
// them at the end of a run.
type Flushable interface {
	Flush(totalDuration time.Duration) error
}
