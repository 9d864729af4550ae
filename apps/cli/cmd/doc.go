// Package cmd implements the testconsole CLI commands using Cobra.
//
// Available commands:
//   - replay: Replay captured console scripts onto stdout/stderr
//   - validate: Check scripts against the call schema without replaying
//   - schema: Print the JSON schema for a script call
//   - version: Show version information
//   - completion: Generate shell completion scripts
package cmd
