package sync_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitsync.dev/gitsync/internal/actions/sync"
	"gitsync.dev/gitsync/internal/config"
	gitsyncerrors "gitsync.dev/gitsync/internal/errors"
	"gitsync.dev/gitsync/internal/git"
	"gitsync.dev/gitsync/internal/output"
	"gitsync.dev/gitsync/internal/runtime"
	"gitsync.dev/gitsync/internal/tui"
	"gitsync.dev/gitsync/testhelpers"
)

// newRealContext builds a context that runs the real git binary in the process cwd
func newRealContext(t *testing.T) (*runtime.Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	splog, err := output.NewSplogWithConfig(output.Options{Writer: &out})
	require.NoError(t, err)
	ctx := runtime.NewContext(splog, config.Default(), git.NewCommandRunner("", ""), tui.NewLinePrompter(strings.NewReader("")))
	return ctx, &out
}

func TestActionIntegration(t *testing.T) {
	t.Run("pulls, commits staged changes and pushes", func(t *testing.T) {
		testhelpers.RequireGit(t)
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.PushFromPeer("peer change"); err != nil {
				return err
			}
			return s.Repo.CreateChange("local change", "local", false)
		})
		ctx, out := newRealContext(t)
		msg := `feat: "quoted" $HOME and 'single'`

		err := sync.Action(ctx, sync.Options{RepoPath: scene.Dir, Message: msg})

		require.NoError(t, err, out.String())
		require.Contains(t, out.String(), "Successfully pulled, committed, and pushed changes.")

		head, err := scene.Repo.HeadCommitMessage()
		require.NoError(t, err)
		require.Equal(t, msg, head)
		testhelpers.ExpectInSync(t, scene, "main")
	})

	t.Run("clean tree skips commit and still pushes", func(t *testing.T) {
		testhelpers.RequireGit(t)
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			// an unpushed commit shows that push ran
			return s.Repo.CreateChangeAndCommit("already committed", "ahead")
		})
		ctx, out := newRealContext(t)

		err := sync.Action(ctx, sync.Options{RepoPath: scene.Dir, Message: "unused"})

		require.NoError(t, err, out.String())
		require.Contains(t, out.String(), "No changes to commit.")
		testhelpers.ExpectCommits(t, scene.Repo, []string{"already committed", "initial"})
		testhelpers.ExpectInSync(t, scene, "main")
	})

	t.Run("pull failure leaves staged changes uncommitted", func(t *testing.T) {
		testhelpers.RequireGit(t)
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.RunGitCommand("remote", "remove", "origin"); err != nil {
				return err
			}
			return s.Repo.CreateChange("staged", "staged", false)
		})
		ctx, out := newRealContext(t)

		err := sync.Action(ctx, sync.Options{RepoPath: scene.Dir, Message: "should not land"})

		require.ErrorIs(t, err, gitsyncerrors.ErrPullFailed)
		require.Contains(t, out.String(), "  (Command: git pull)")
		require.NotContains(t, out.String(), "Committing changes...")
		testhelpers.ExpectCommits(t, scene.Repo, []string{"initial"})
	})
}

func TestActionDebugNamesBranch(t *testing.T) {
	testhelpers.RequireGit(t)
	scene := testhelpers.NewScene(t, nil)
	var out bytes.Buffer
	splog, err := output.NewSplogWithConfig(output.Options{Writer: &out, Debug: true})
	require.NoError(t, err)
	ctx := runtime.NewContext(splog, config.Default(), git.NewCommandRunner("", ""), tui.NewLinePrompter(strings.NewReader("")))

	require.NoError(t, sync.Action(ctx, sync.Options{RepoPath: scene.Dir, Message: "unused"}), out.String())
	require.Contains(t, out.String(), "Syncing branch main in ")
	require.Contains(t, out.String(), "Running git pull")
}
