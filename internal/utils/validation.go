package utils

import (
	"os"

	"github.com/mattn/go-isatty"
)

// EnvNonInteractive forces prompts to read plain lines from stdin
const EnvNonInteractive = "GITSYNC_NON_INTERACTIVE"

// IsInteractive checks if we're in an interactive terminal
func IsInteractive() bool {
	if os.Getenv(EnvNonInteractive) != "" {
		return false
	}
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// PathExists reports whether path names an existing file or directory
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
