// Package runtime provides the execution context for gitsync commands.
//
// It encapsulates shared dependencies needed by actions, such as the
// logger, the loaded configuration, the git runner and the prompter.
package runtime
