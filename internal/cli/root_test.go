package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitsync.dev/gitsync/internal/config"
	gitsyncerrors "gitsync.dev/gitsync/internal/errors"
	"gitsync.dev/gitsync/internal/git"
	"gitsync.dev/gitsync/internal/output"
	"gitsync.dev/gitsync/internal/runtime"
	"gitsync.dev/gitsync/internal/tui"
)

// recordingRunner succeeds for every git command and records the arguments
type recordingRunner struct {
	calls [][]string
}

func (r *recordingRunner) Run(_ context.Context, args ...string) (git.Result, error) {
	r.calls = append(r.calls, append([]string(nil), args...))
	return git.Result{}, nil
}

// recordingPrompter answers prompts from a queue and records what was asked
type recordingPrompter struct {
	answers []string
	asked   []string
}

func (p *recordingPrompter) Input(message, _ string) (string, error) {
	p.asked = append(p.asked, message)
	if len(p.answers) == 0 {
		return "", gitsyncerrors.ErrNoInput
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

type cliHarness struct {
	runner   *recordingRunner
	prompter tui.Prompter
	out      *bytes.Buffer
	chdirs   []string
	opts     runtime.Options
}

func newCLIHarness(t *testing.T, prompter tui.Prompter) *cliHarness {
	t.Helper()
	h := &cliHarness{runner: &recordingRunner{}, prompter: prompter, out: &bytes.Buffer{}}

	old := newContext
	t.Cleanup(func() { newContext = old })
	newContext = func(opts runtime.Options) (*runtime.Context, error) {
		h.opts = opts
		splog, err := output.NewSplogWithConfig(output.Options{Writer: h.out})
		if err != nil {
			return nil, err
		}
		ctx := runtime.NewContext(splog, config.Default(), h.runner, h.prompter)
		ctx.Chdir = func(dir string) error {
			h.chdirs = append(h.chdirs, dir)
			return nil
		}
		return ctx, nil
	}
	return h
}

func execute(args ...string) error {
	cmd := NewRootCmd("1.2.3", "abc1234", "2026-01-01")
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}

func TestRootCmd(t *testing.T) {
	t.Run("prompts for repository and message", func(t *testing.T) {
		repo := t.TempDir()
		prompter := &recordingPrompter{answers: []string{repo, "chore: sync"}}
		h := newCLIHarness(t, prompter)

		require.NoError(t, execute())

		require.Equal(t, []string{repoPrompt, messagePrompt}, prompter.asked)
		require.Equal(t, []string{repo}, h.chdirs)
		require.Equal(t, [][]string{{"pull"}, {"commit", "-m", "chore: sync"}, {"push"}}, h.runner.calls)
		require.Contains(t, h.out.String(), "Successfully pulled, committed, and pushed changes.")
	})

	t.Run("flags suppress prompts", func(t *testing.T) {
		repo := t.TempDir()
		prompter := &recordingPrompter{}
		h := newCLIHarness(t, prompter)

		require.NoError(t, execute("--repo", repo, "-m", "from flag"))

		require.Empty(t, prompter.asked)
		require.Equal(t, []string{"commit", "-m", "from flag"}, h.runner.calls[1])
	})

	t.Run("only the missing value is prompted for", func(t *testing.T) {
		prompter := &recordingPrompter{answers: []string{"typed message"}}
		h := newCLIHarness(t, prompter)

		require.NoError(t, execute("-r", t.TempDir()))

		require.Equal(t, []string{messagePrompt}, prompter.asked)
		require.Equal(t, []string{"commit", "-m", "typed message"}, h.runner.calls[1])
	})

	t.Run("explicitly empty message is passed through", func(t *testing.T) {
		h := newCLIHarness(t, &recordingPrompter{})

		require.NoError(t, execute("-r", t.TempDir(), "--message="))

		require.Equal(t, []string{"commit", "-m", ""}, h.runner.calls[1])
	})

	t.Run("piped answers reach the action", func(t *testing.T) {
		repo := t.TempDir()
		h := newCLIHarness(t, tui.NewLinePrompter(strings.NewReader(repo+"\nfrom stdin\n")))

		require.NoError(t, execute())
		require.Equal(t, []string{"commit", "-m", "from stdin"}, h.runner.calls[1])
	})

	t.Run("sync failure is reported once", func(t *testing.T) {
		h := newCLIHarness(t, &recordingPrompter{})
		missing := filepath.Join(t.TempDir(), "missing")

		err := execute("-r", missing, "-m", "x")

		require.ErrorIs(t, err, gitsyncerrors.ErrRepoNotFound)
		require.True(t, IsReported(err))
		require.Empty(t, h.runner.calls)
		require.Equal(t, 1, strings.Count(h.out.String(), "does not exist"))
	})

	t.Run("missing input is not a reported error", func(t *testing.T) {
		newCLIHarness(t, &recordingPrompter{})

		err := execute()

		require.ErrorIs(t, err, gitsyncerrors.ErrNoInput)
		require.False(t, IsReported(err))
	})

	t.Run("persistent flags reach the context", func(t *testing.T) {
		h := newCLIHarness(t, &recordingPrompter{})

		require.NoError(t, execute("-r", t.TempDir(), "-m", "x", "-v", "--config", "/etc/gitsync.yaml", "--log-file", "/tmp/gs.log"))

		require.Equal(t, runtime.Options{ConfigPath: "/etc/gitsync.yaml", LogFile: "/tmp/gs.log", Verbose: true}, h.opts)
	})

	t.Run("positional arguments are rejected", func(t *testing.T) {
		h := newCLIHarness(t, &recordingPrompter{})

		require.Error(t, execute("somewhere"))
		require.Empty(t, h.runner.calls)
	})
}

func TestVersionCmd(t *testing.T) {
	cmd := NewRootCmd("1.2.3", "abc1234", "2026-01-01")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	require.Equal(t, "gitsync 1.2.3 (commit abc1234, built 2026-01-01)\n", out.String())
}
