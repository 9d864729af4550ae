package cmd

// Exit codes for the testconsole CLI
const (
	// ExitSuccess indicates every script replayed cleanly
	ExitSuccess = 0

	// ExitReplayFailure indicates a script could not be replayed
	ExitReplayFailure = 1

	// ExitParseError indicates a script failed to parse or validate
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitAssertionFailure indicates failed console assertions with --fail-on-assert
	ExitAssertionFailure = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
