// Package git provides low-level Git operations.
//
// It wraps git command execution and provides a Go-friendly interface for:
//   - Remote operations (pull, push)
//   - Commit operations (commit with a message)
//   - Repo state queries (repository root, current branch)
//
// This package should be the only place where direct git commands are executed.
package git
