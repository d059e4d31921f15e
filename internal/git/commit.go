package git

import (
	"context"
	"strings"

	"github.com/kballard/go-shellquote"
)

// nothingToCommitMarker is what git prints on stdout when the index has no changes
const nothingToCommitMarker = "nothing to commit"

// CommitArgs returns the arguments for committing staged changes with message.
// The message is a single argv element and is never interpreted by a shell.
func CommitArgs(message string) []string {
	return []string{"commit", "-m", message}
}

// Commit records staged changes as a new revision
func Commit(ctx context.Context, r Runner, message string) (Result, error) {
	return r.Run(ctx, CommitArgs(message)...)
}

// NothingToCommit reports whether a commit result says there was nothing to commit
func NothingToCommit(res Result) bool {
	return strings.Contains(res.Stdout, nothingToCommitMarker)
}

// CommandLine renders a git invocation for display, quoting arguments the
// way a POSIX shell would need them.
func CommandLine(args ...string) string {
	return shellquote.Join(append([]string{DefaultBinary}, args...)...)
}
