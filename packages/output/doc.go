// Package output provides formatters for reporting replay results.
//
// Supported output formats:
//   - Console: colored one-line summaries on stderr
//   - JSON: a single report with a run id, per-script results and the
//     captured console lines
//   - TAP: Test Anything Protocol, one test point per script
//
// Each formatter implements the Formatter interface; JSON and TAP also
// implement Flushable because they write once at the end of a run.
package output
