// Package console provides a console-style logger for captured test output.
//
// A Console mirrors the familiar console method surface:
//   - Log, Info, Debug, Dirxml and Dir write to standard output
//   - Warn, Error and failed Assert calls write to standard error
//   - Group, GroupCollapsed and GroupEnd control indentation
//   - Count/CountReset and Time/TimeLog/TimeEnd keep labelled state
//
// Every line is indented two spaces per open group and passed through a
// FormatHook before it reaches a Sink. Sinks clear any partial line (such as
// a progress indicator) before each write.
//
// A Console is not safe for concurrent use.
package console
