// Package script parses and replays recorded console calls.
//
// Test workers capture console calls and hand them to the parent process as
// a script. Two encodings are supported:
//   - JSON Lines (.jsonl, .ndjson): one call object per line
//   - YAML (.yaml, .yml): a list of call objects
//
// Every call is validated against a JSON schema before it is accepted, and
// an Executor replays the calls onto a console.Console.
package script
