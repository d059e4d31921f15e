// Package testhelpers provides testing utilities for gitsync,
// including a scene system, Git repository helpers, and custom assertions.
package testhelpers

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// RequireGit skips the test when no git binary is available.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
}

// ExpectCommits asserts that the repository has the expected commit subjects
// on the current branch, newest first. Only the first len(expected) commits are compared.
func ExpectCommits(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	commits, err := repo.ListCurrentBranchCommitMessages()
	require.NoError(t, err, "Failed to list commits")

	if len(commits) < len(expected) {
		require.Fail(t, "Not enough commits", "Expected %d commits, got %d", len(expected), len(commits))
		return
	}

	require.Equal(t, expected, commits[:len(expected)], "Commits do not match")
}

// ExpectInSync asserts that the local branch and the remote branch point at the same commit.
func ExpectInSync(t *testing.T, scene *Scene, branch string) {
	t.Helper()

	local, err := scene.Repo.GetRevision(branch)
	require.NoError(t, err)
	remote, err := scene.RemoteRevision(branch)
	require.NoError(t, err)
	require.Equal(t, remote, local, "local %s is not in sync with remote", branch)
}
