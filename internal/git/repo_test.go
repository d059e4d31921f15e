package git_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gitsync.dev/gitsync/internal/git"
	"gitsync.dev/gitsync/testhelpers"
)

func TestCurrentBranch(t *testing.T) {
	t.Run("reports the checked out branch", func(t *testing.T) {
		testhelpers.RequireGit(t)
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.RunGitCommand("checkout", "-b", "feature/sync")
		})

		branch, err := git.CurrentBranch(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "feature/sync", branch)
	})

	t.Run("finds the repository from a subdirectory", func(t *testing.T) {
		testhelpers.RequireGit(t)
		scene := testhelpers.NewScene(t, nil)
		sub := filepath.Join(scene.Dir, "nested", "dir")
		require.NoError(t, os.MkdirAll(sub, 0750))

		branch, err := git.CurrentBranch(sub)
		require.NoError(t, err)
		require.Equal(t, "main", branch)

		root, err := git.RepoRoot(sub)
		require.NoError(t, err)
		require.Equal(t, scene.Dir, root)
	})

	t.Run("detached head reports the short hash", func(t *testing.T) {
		testhelpers.RequireGit(t)
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.RunGitCommand("checkout", "--detach", "HEAD")
		})
		sha, err := scene.Repo.GetRevision("HEAD")
		require.NoError(t, err)

		branch, err := git.CurrentBranch(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, sha[:7], branch)
	})

	t.Run("plain directory is not a repository", func(t *testing.T) {
		_, err := git.CurrentBranch(t.TempDir())
		require.Error(t, err)
		require.Contains(t, err.Error(), "not a git repository")
	})
}
