// Package tui provides the terminal prompts for gitsync.
//
// Prompts use survey when stdin is a terminal and fall back to reading
// plain lines, so answers can be piped in.
package tui
