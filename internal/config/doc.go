// Package config manages gitsync configuration.
//
// It handles:
//   - The YAML user configuration file
//   - Environment variable overrides
//   - Defaults for the git binary and log rotation
package config
