// Package config handles configuration loading and management for testconsole.
//
// It provides functionality for:
//   - Loading configuration from JSON (.testconsole.json, .testconsolerc) or
//     YAML (testconsole.yaml) files
//   - Default configuration values
//   - Merging command-line overrides on top of file settings
package config
